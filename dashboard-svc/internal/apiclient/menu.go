package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"restodash/dashboard-svc/internal/domain"
)

func categoryPath(restaurantID, categoryID int) string {
	return fmt.Sprintf("/restaurants/%d/menu-categories/%d", restaurantID, categoryID)
}

func dishPath(restaurantID, dishID int) string {
	return fmt.Sprintf("/restaurants/%d/dishes/%d", restaurantID, dishID)
}

func (c *Client) ListCategories(ctx context.Context, restaurantID int) ([]domain.MenuCategory, error) {
	var out []domain.MenuCategory
	_, err := c.do(ctx, http.MethodGet, restaurantPath(restaurantID)+"/menu-categories", nil, nil, &out)
	return out, err
}

func (c *Client) CreateCategory(ctx context.Context, cat *domain.MenuCategory) (*domain.MenuCategory, error) {
	var out domain.MenuCategory
	if _, err := c.do(ctx, http.MethodPost, restaurantPath(cat.RestaurantID)+"/menu-categories", nil, cat, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCategory(ctx context.Context, cat *domain.MenuCategory) (*domain.MenuCategory, error) {
	var out domain.MenuCategory
	if _, err := c.do(ctx, http.MethodPut, categoryPath(cat.RestaurantID, cat.ID), nil, cat, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCategory(ctx context.Context, restaurantID, categoryID int) error {
	_, err := c.do(ctx, http.MethodDelete, categoryPath(restaurantID, categoryID), nil, nil, nil)
	return err
}

func (c *Client) ReorderCategories(ctx context.Context, restaurantID int, order []domain.SortItem) error {
	body := map[string][]domain.SortItem{"items": order}
	_, err := c.do(ctx, http.MethodPut, restaurantPath(restaurantID)+"/menu-categories/reorder", nil, body, nil)
	return err
}

// ListDishes lists dishes of a restaurant, narrowed to one category when categoryID > 0.
func (c *Client) ListDishes(ctx context.Context, restaurantID, categoryID int) ([]domain.Dish, error) {
	var query url.Values
	if categoryID > 0 {
		query = url.Values{"category_id": {strconv.Itoa(categoryID)}}
	}
	var out []domain.Dish
	_, err := c.do(ctx, http.MethodGet, restaurantPath(restaurantID)+"/dishes", query, nil, &out)
	return out, err
}

func (c *Client) GetDish(ctx context.Context, restaurantID, dishID int) (*domain.Dish, error) {
	var out domain.Dish
	if _, err := c.do(ctx, http.MethodGet, dishPath(restaurantID, dishID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateDish(ctx context.Context, dish *domain.Dish) (*domain.Dish, error) {
	var out domain.Dish
	if _, err := c.do(ctx, http.MethodPost, restaurantPath(dish.RestaurantID)+"/dishes", nil, dish, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateDish(ctx context.Context, dish *domain.Dish) (*domain.Dish, error) {
	var out domain.Dish
	if _, err := c.do(ctx, http.MethodPut, dishPath(dish.RestaurantID, dish.ID), nil, dish, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteDish(ctx context.Context, restaurantID, dishID int) error {
	_, err := c.do(ctx, http.MethodDelete, dishPath(restaurantID, dishID), nil, nil, nil)
	return err
}

func (c *Client) SetDishAvailability(ctx context.Context, restaurantID, dishID int, available bool) (*domain.Dish, error) {
	var out domain.Dish
	body := map[string]bool{"is_available": available}
	if _, err := c.do(ctx, http.MethodPut, dishPath(restaurantID, dishID)+"/availability", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
