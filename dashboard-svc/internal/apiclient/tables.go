package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"restodash/dashboard-svc/internal/domain"
)

func tablePath(restaurantID, tableID int) string {
	return fmt.Sprintf("/restaurants/%d/tables/%d", restaurantID, tableID)
}

func (c *Client) ListTables(ctx context.Context, restaurantID int) ([]domain.Table, error) {
	var out []domain.Table
	_, err := c.do(ctx, http.MethodGet, restaurantPath(restaurantID)+"/tables", nil, nil, &out)
	return out, err
}

func (c *Client) CreateTable(ctx context.Context, table *domain.Table) (*domain.Table, error) {
	var out domain.Table
	if _, err := c.do(ctx, http.MethodPost, restaurantPath(table.RestaurantID)+"/tables", nil, table, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTable(ctx context.Context, table *domain.Table) (*domain.Table, error) {
	var out domain.Table
	if _, err := c.do(ctx, http.MethodPut, tablePath(table.RestaurantID, table.ID), nil, table, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTable(ctx context.Context, restaurantID, tableID int) error {
	_, err := c.do(ctx, http.MethodDelete, tablePath(restaurantID, tableID), nil, nil, nil)
	return err
}

func (c *Client) ReorderTables(ctx context.Context, restaurantID int, order []domain.SortItem) error {
	body := map[string][]domain.SortItem{"items": order}
	_, err := c.do(ctx, http.MethodPut, restaurantPath(restaurantID)+"/tables/reorder", nil, body, nil)
	return err
}

// TableQRCode returns the PNG printed on the table.
func (c *Client) TableQRCode(ctx context.Context, restaurantID, tableID int) ([]byte, string, error) {
	return c.raw(ctx, tablePath(restaurantID, tableID)+"/qr-code")
}
