package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"restodash/dashboard-svc/internal/domain"
	"restodash/dashboard-svc/internal/service"
)

func orgKey(sess *domain.Session, parts ...any) string {
	return service.Key(sess.OrganizationID, parts...)
}

// restaurantKey builds keys like q:org:7:restaurant:3:tables; the key without extra
// parts is the invalidation prefix for that resource.
func restaurantKey(sess *domain.Session, restaurantID int, resource string, parts ...any) string {
	return service.Key(sess.OrganizationID, append([]any{"restaurant", restaurantID, resource}, parts...)...)
}

func (h *Handler) fetch(r *http.Request, key string, ttl time.Duration, dest any, loader func(ctx context.Context) (any, error)) error {
	if ttl <= 0 {
		ttl = h.TTL.Default
	}
	// The backend decides visibility per token, so one user's answer is never served to another.
	if sess, ok := r.Context().Value(sessionKey{}).(*domain.Session); ok {
		key = service.UserScoped(key, sess.User.ID)
	}
	return h.Query.Fetch(r.Context(), key, ttl, dest, loader)
}

func (h *Handler) record(r *http.Request, sess *domain.Session, change service.Change) {
	h.Changes.Record(r.Context(), sess, change)
}

func (h *Handler) cachedRestaurant(r *http.Request, sess *domain.Session, restaurantID int) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	err := h.fetch(r, restaurantKey(sess, restaurantID, "detail"), 0, &rest, func(ctx context.Context) (any, error) {
		return h.backend(sess).GetRestaurant(ctx, restaurantID)
	})
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

// ownedRestaurant loads the restaurant with the caller's token and rejects one
// that belongs to another organization.
func (h *Handler) ownedRestaurant(r *http.Request, sess *domain.Session, restaurantID int) (*domain.Restaurant, error) {
	rest, err := h.cachedRestaurant(r, sess, restaurantID)
	if err != nil {
		return nil, err
	}
	if rest.OrganizationID != sess.OrganizationID {
		return nil, errForbidden
	}
	return rest, nil
}

// ownedTable checks that tableID is one of the restaurant's tables as the caller sees them.
func (h *Handler) ownedTable(r *http.Request, sess *domain.Session, restaurantID, tableID int) error {
	if _, err := h.ownedRestaurant(r, sess, restaurantID); err != nil {
		return err
	}
	tables, err := h.cachedTables(r, sess, restaurantID)
	if err != nil {
		return err
	}
	for _, t := range tables {
		if t.ID == tableID {
			return nil
		}
	}
	return fmt.Errorf("table %d: %w", tableID, errNotFound)
}

func (h *Handler) cachedTables(r *http.Request, sess *domain.Session, restaurantID int) ([]domain.Table, error) {
	var tables []domain.Table
	err := h.fetch(r, restaurantKey(sess, restaurantID, "tables"), 0, &tables, func(ctx context.Context) (any, error) {
		return h.backend(sess).ListTables(ctx, restaurantID)
	})
	return tables, err
}

func (h *Handler) cachedReservations(r *http.Request, sess *domain.Session, restaurantID int, from, to string) ([]domain.Reservation, error) {
	var reservations []domain.Reservation
	err := h.fetch(r, restaurantKey(sess, restaurantID, "reservations", from, to), 0, &reservations, func(ctx context.Context) (any, error) {
		return h.backend(sess).ListReservations(ctx, restaurantID, from, to)
	})
	return reservations, err
}

func (h *Handler) cachedChat(r *http.Request, sess *domain.Session, chatID int) (*domain.ChatSession, error) {
	var chat domain.ChatSession
	err := h.fetch(r, orgKey(sess, "chat", chatID, "detail"), h.TTL.ChatSessions, &chat, func(ctx context.Context) (any, error) {
		return h.backend(sess).GetChatSession(ctx, chatID)
	})
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

func (h *Handler) cachedMessages(r *http.Request, sess *domain.Session, chatID int) ([]domain.ChatMessage, error) {
	var messages []domain.ChatMessage
	err := h.fetch(r, orgKey(sess, "chat", chatID, "messages"), h.TTL.ChatMessages, &messages, func(ctx context.Context) (any, error) {
		return h.backend(sess).ListChatMessages(ctx, chatID, 0)
	})
	return messages, err
}
