package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"restodash/dashboard-svc/internal/domain"
)

type InviteMemberRequest struct {
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

func (c *Client) GetOrganization(ctx context.Context) (*domain.Organization, error) {
	var out domain.Organization
	if _, err := c.do(ctx, http.MethodGet, "/organization", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateOrganization(ctx context.Context, org *domain.Organization) (*domain.Organization, error) {
	var out domain.Organization
	if _, err := c.do(ctx, http.MethodPut, "/organization", nil, org, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListMembers(ctx context.Context) ([]domain.TeamMember, error) {
	var out []domain.TeamMember
	_, err := c.do(ctx, http.MethodGet, "/organization/members", nil, nil, &out)
	return out, err
}

func (c *Client) InviteMember(ctx context.Context, req InviteMemberRequest) (*domain.TeamMember, error) {
	var out domain.TeamMember
	if _, err := c.do(ctx, http.MethodPost, "/organization/members", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateMemberRole(ctx context.Context, memberID int, role domain.Role) (*domain.TeamMember, error) {
	var out domain.TeamMember
	body := map[string]domain.Role{"role": role}
	if _, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/organization/members/%d", memberID), nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RemoveMember(ctx context.Context, memberID int) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/organization/members/%d", memberID), nil, nil, nil)
	return err
}
