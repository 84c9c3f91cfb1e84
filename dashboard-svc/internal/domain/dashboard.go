package domain

import "time"

// Session is the dashboard-side state of one signed-in browser.
type Session struct {
	ID                   string            `json:"id"`
	Token                string            `json:"token"`
	User                 User              `json:"user"`
	OrganizationID       int               `json:"organization_id"`
	SelectedRestaurantID int               `json:"selected_restaurant_id,omitempty"`
	Language             string            `json:"language"`
	AIOverrides          map[int]time.Time `json:"ai_overrides,omitempty"`
	CreatedAt            time.Time         `json:"created_at"`
	ExpiresAt            time.Time         `json:"expires_at"`
}

// Preferences survive logout and are restored on the next login.
type Preferences struct {
	UserID               int       `json:"user_id"`
	Language             string    `json:"language"`
	SelectedRestaurantID int       `json:"selected_restaurant_id"`
	UpdatedAt            time.Time `json:"updated_at"`
}

type AuditEntry struct {
	ID             int       `json:"id"`
	UserID         int       `json:"user_id"`
	OrganizationID int       `json:"organization_id"`
	Action         string    `json:"action"`
	Resource       string    `json:"resource"`
	ResourceID     int       `json:"resource_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// ChangeEvent is published after each successful mutation.
type ChangeEvent struct {
	Type           string    `json:"type"`
	OrganizationID int       `json:"organization_id"`
	RestaurantID   int       `json:"restaurant_id,omitempty"`
	Resource       string    `json:"resource"`
	ResourceID     int       `json:"resource_id,omitempty"`
	Prefixes       []string  `json:"prefixes"`
	Timestamp      time.Time `json:"timestamp"`
}

const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

// SortItem is one entry of a reorder request sent to the backend.
type SortItem struct {
	ID        int `json:"id"`
	SortOrder int `json:"sort_order"`
}
