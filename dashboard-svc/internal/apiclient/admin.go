package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"restodash/dashboard-svc/internal/domain"
)

type ExtensionReview struct {
	Status       domain.ExtensionStatus `json:"status"`
	AdminComment string                 `json:"admin_comment,omitempty"`
}

type TicketReply struct {
	AdminReply string              `json:"admin_reply"`
	Status     domain.TicketStatus `json:"status"`
}

func (c *Client) AdminListOrganizations(ctx context.Context, page int) ([]domain.Organization, *Meta, error) {
	var out []domain.Organization
	meta, err := c.do(ctx, http.MethodGet, "/admin/organizations", pageQuery(page), nil, &out)
	return out, meta, err
}

// AdminListExtensionRequests lists requests of every tenant, filtered by status when set.
func (c *Client) AdminListExtensionRequests(ctx context.Context, status domain.ExtensionStatus, page int) ([]domain.ExtensionRequest, *Meta, error) {
	query := pageQuery(page)
	if status != "" {
		if query == nil {
			query = url.Values{}
		}
		query.Set("status", string(status))
	}
	var out []domain.ExtensionRequest
	meta, err := c.do(ctx, http.MethodGet, "/admin/extension-requests", query, nil, &out)
	return out, meta, err
}

func (c *Client) AdminReviewExtensionRequest(ctx context.Context, id int, review ExtensionReview) (*domain.ExtensionRequest, error) {
	var out domain.ExtensionRequest
	if _, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/extension-requests/%d", id), nil, review, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminListLogs(ctx context.Context, page int) ([]domain.AdminLog, *Meta, error) {
	var out []domain.AdminLog
	meta, err := c.do(ctx, http.MethodGet, "/admin/logs", pageQuery(page), nil, &out)
	return out, meta, err
}

func (c *Client) AdminListSupportTickets(ctx context.Context, page int) ([]domain.SupportTicket, *Meta, error) {
	var out []domain.SupportTicket
	meta, err := c.do(ctx, http.MethodGet, "/admin/support-tickets", pageQuery(page), nil, &out)
	return out, meta, err
}

func (c *Client) AdminReplySupportTicket(ctx context.Context, id int, reply TicketReply) (*domain.SupportTicket, error) {
	var out domain.SupportTicket
	if _, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/support-tickets/%d", id), nil, reply, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
