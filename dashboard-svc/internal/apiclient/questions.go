package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"restodash/dashboard-svc/internal/domain"
)

func questionPath(restaurantID, questionID int) string {
	return fmt.Sprintf("/restaurants/%d/questions/%d", restaurantID, questionID)
}

// ListQuestions lists quick questions, narrowed to a chat type when chatType is not empty.
func (c *Client) ListQuestions(ctx context.Context, restaurantID int, chatType domain.QuestionChatType) ([]domain.Question, error) {
	var query url.Values
	if chatType != "" {
		query = url.Values{"chat_type": {string(chatType)}}
	}
	var out []domain.Question
	_, err := c.do(ctx, http.MethodGet, restaurantPath(restaurantID)+"/questions", query, nil, &out)
	return out, err
}

func (c *Client) CreateQuestion(ctx context.Context, q *domain.Question) (*domain.Question, error) {
	var out domain.Question
	if _, err := c.do(ctx, http.MethodPost, restaurantPath(q.RestaurantID)+"/questions", nil, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateQuestion(ctx context.Context, q *domain.Question) (*domain.Question, error) {
	var out domain.Question
	if _, err := c.do(ctx, http.MethodPut, questionPath(q.RestaurantID, q.ID), nil, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteQuestion(ctx context.Context, restaurantID, questionID int) error {
	_, err := c.do(ctx, http.MethodDelete, questionPath(restaurantID, questionID), nil, nil, nil)
	return err
}

// ReorderQuestions sends display_order values; SortItem.SortOrder carries the display order.
func (c *Client) ReorderQuestions(ctx context.Context, restaurantID int, order []domain.SortItem) error {
	type item struct {
		ID           int `json:"id"`
		DisplayOrder int `json:"display_order"`
	}
	items := make([]item, len(order))
	for i, o := range order {
		items[i] = item{ID: o.ID, DisplayOrder: o.SortOrder}
	}
	body := map[string][]item{"items": items}
	_, err := c.do(ctx, http.MethodPut, restaurantPath(restaurantID)+"/questions/reorder", nil, body, nil)
	return err
}
