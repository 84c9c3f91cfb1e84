package apiclient

import (
	"context"
	"net/http"

	"restodash/dashboard-svc/internal/domain"
)

type ExtensionRequestInput struct {
	RequestedDays int    `json:"requested_days"`
	Comment       string `json:"comment,omitempty"`
}

func (c *Client) CurrentSubscription(ctx context.Context) (*domain.Subscription, error) {
	var out domain.Subscription
	if _, err := c.do(ctx, http.MethodGet, "/subscription", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListExtensionRequests(ctx context.Context) ([]domain.ExtensionRequest, error) {
	var out []domain.ExtensionRequest
	_, err := c.do(ctx, http.MethodGet, "/subscription/extension-requests", nil, nil, &out)
	return out, err
}

func (c *Client) CreateExtensionRequest(ctx context.Context, in ExtensionRequestInput) (*domain.ExtensionRequest, error) {
	var out domain.ExtensionRequest
	if _, err := c.do(ctx, http.MethodPost, "/subscription/extension-requests", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
