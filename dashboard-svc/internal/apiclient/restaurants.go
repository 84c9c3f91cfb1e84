package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"restodash/dashboard-svc/internal/domain"
)

func restaurantPath(id int) string {
	return fmt.Sprintf("/restaurants/%d", id)
}

func (c *Client) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	var out []domain.Restaurant
	_, err := c.do(ctx, http.MethodGet, "/restaurants", nil, nil, &out)
	return out, err
}

func (c *Client) GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error) {
	var out domain.Restaurant
	if _, err := c.do(ctx, http.MethodGet, restaurantPath(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateRestaurant(ctx context.Context, rest *domain.Restaurant) (*domain.Restaurant, error) {
	var out domain.Restaurant
	if _, err := c.do(ctx, http.MethodPost, "/restaurants", nil, rest, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateRestaurant(ctx context.Context, rest *domain.Restaurant) (*domain.Restaurant, error) {
	var out domain.Restaurant
	if _, err := c.do(ctx, http.MethodPut, restaurantPath(rest.ID), nil, rest, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteRestaurant(ctx context.Context, id int) error {
	_, err := c.do(ctx, http.MethodDelete, restaurantPath(id), nil, nil, nil)
	return err
}

func (c *Client) UpdateWorkingHours(ctx context.Context, restaurantID int, hours []domain.WorkingHour) ([]domain.WorkingHour, error) {
	var out []domain.WorkingHour
	body := map[string][]domain.WorkingHour{"working_hours": hours}
	_, err := c.do(ctx, http.MethodPut, restaurantPath(restaurantID)+"/working-hours", nil, body, &out)
	return out, err
}

// RestaurantQRCode returns the PNG that guests scan to open the restaurant chat.
func (c *Client) RestaurantQRCode(ctx context.Context, restaurantID int) ([]byte, string, error) {
	return c.raw(ctx, restaurantPath(restaurantID)+"/qr-code")
}
