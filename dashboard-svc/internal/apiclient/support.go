package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"restodash/dashboard-svc/internal/domain"
)

type SupportTicketInput struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (c *Client) ListSupportTickets(ctx context.Context, page int) ([]domain.SupportTicket, *Meta, error) {
	var out []domain.SupportTicket
	meta, err := c.do(ctx, http.MethodGet, "/support-tickets", pageQuery(page), nil, &out)
	return out, meta, err
}

func (c *Client) GetSupportTicket(ctx context.Context, id int) (*domain.SupportTicket, error) {
	var out domain.SupportTicket
	if _, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/support-tickets/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateSupportTicket(ctx context.Context, in SupportTicketInput) (*domain.SupportTicket, error) {
	var out domain.SupportTicket
	if _, err := c.do(ctx, http.MethodPost, "/support-tickets", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
