package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"restodash/dashboard-svc/internal/domain"
)

func chatSessionPath(sessionID int) string {
	return fmt.Sprintf("/chat-sessions/%d", sessionID)
}

func (c *Client) ListChatSessions(ctx context.Context, restaurantID, page int) ([]domain.ChatSession, *Meta, error) {
	var out []domain.ChatSession
	meta, err := c.do(ctx, http.MethodGet, restaurantPath(restaurantID)+"/chat-sessions", pageQuery(page), nil, &out)
	return out, meta, err
}

func (c *Client) GetChatSession(ctx context.Context, sessionID int) (*domain.ChatSession, error) {
	var out domain.ChatSession
	if _, err := c.do(ctx, http.MethodGet, chatSessionPath(sessionID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListChatMessages returns messages of a session, only those with id > afterID when afterID > 0.
func (c *Client) ListChatMessages(ctx context.Context, sessionID, afterID int) ([]domain.ChatMessage, error) {
	var query url.Values
	if afterID > 0 {
		query = url.Values{"after_id": {strconv.Itoa(afterID)}}
	}
	var out []domain.ChatMessage
	_, err := c.do(ctx, http.MethodGet, chatSessionPath(sessionID)+"/messages", query, nil, &out)
	return out, err
}

// SendChatMessage posts a staff reply; the backend stores it with author type "restaurant".
func (c *Client) SendChatMessage(ctx context.Context, sessionID int, content string) (*domain.ChatMessage, error) {
	var out domain.ChatMessage
	body := map[string]string{"content": content}
	if _, err := c.do(ctx, http.MethodPost, chatSessionPath(sessionID)+"/messages", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CloseChatSession(ctx context.Context, sessionID int) error {
	_, err := c.do(ctx, http.MethodPost, chatSessionPath(sessionID)+"/close", nil, nil, nil)
	return err
}
