package domain

import "time"

type Role string

const (
	RoleOwner   Role = "owner"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
	RoleAdmin   Role = "admin"
)

type User struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           Role   `json:"role"`
	OrganizationID int    `json:"organization_id"`
	Language       string `json:"language,omitempty"`
}

type Organization struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	OwnerID   int       `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

type TeamMember struct {
	ID             int       `json:"id"`
	OrganizationID int       `json:"organization_id"`
	UserID         int       `json:"user_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
}

type Restaurant struct {
	ID             int           `json:"id"`
	OrganizationID int           `json:"organization_id"`
	Name           string        `json:"name"`
	Address        string        `json:"address"`
	Phone          string        `json:"phone,omitempty"`
	Description    string        `json:"description"`
	ImageURL       string        `json:"image_url"`
	WorkingHours   []WorkingHour `json:"working_hours"`
	CreatedAt      time.Time     `json:"created_at"`
}

// WorkingHour is keyed by DayOfWeek, 0 = Sunday through 6 = Saturday.
type WorkingHour struct {
	DayOfWeek int    `json:"day_of_week"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
	IsClosed  bool   `json:"is_closed"`
}

type Table struct {
	ID           int    `json:"id"`
	RestaurantID int    `json:"restaurant_id"`
	Name         string `json:"name"`
	Capacity     int    `json:"capacity"`
	SortOrder    int    `json:"sort_order"`
	QRCodeURL    string `json:"qr_code_url,omitempty"`
}

type MenuCategory struct {
	ID           int    `json:"id"`
	RestaurantID int    `json:"restaurant_id"`
	Name         string `json:"name"`
	SortOrder    int    `json:"sort_order"`
}

type Ingredient struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name"`
}

type Allergen struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name"`
}

type Dish struct {
	ID            int          `json:"id"`
	RestaurantID  int          `json:"restaurant_id"`
	CategoryID    int          `json:"category_id"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	Price         float64      `json:"price"`
	ImageURL      string       `json:"image_url"`
	IsAvailable   bool         `json:"is_available"`
	Weight        float64      `json:"weight"`
	Calories      float64      `json:"calories"`
	Proteins      float64      `json:"proteins"`
	Fats          float64      `json:"fats"`
	Carbohydrates float64      `json:"carbohydrates"`
	SortOrder     int          `json:"sort_order"`
	Ingredients   []Ingredient `json:"ingredients"`
	Allergens     []Allergen   `json:"allergens"`
}

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationCompleted ReservationStatus = "completed"
)

// Reservation dates are "2006-01-02" and times are "15:04" in the restaurant's local time.
type Reservation struct {
	ID           int               `json:"id"`
	RestaurantID int               `json:"restaurant_id"`
	TableID      int               `json:"table_id"`
	GuestName    string            `json:"guest_name"`
	GuestPhone   string            `json:"guest_phone"`
	GuestCount   int               `json:"guest_count"`
	Date         string            `json:"date"`
	StartTime    string            `json:"start_time"`
	EndTime      string            `json:"end_time"`
	Status       ReservationStatus `json:"status"`
	Comment      string            `json:"comment,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

type ChatType string

const (
	ChatTypeTable      ChatType = "table"
	ChatTypeRestaurant ChatType = "restaurant"
)

type ChatSession struct {
	ID           int          `json:"id"`
	RestaurantID int          `json:"restaurant_id"`
	TableID      *int         `json:"table_id"`
	Type         ChatType     `json:"type"`
	GuestName    string       `json:"guest_name,omitempty"`
	LastMessage  *ChatMessage `json:"last_message,omitempty"`
	UnreadCount  int          `json:"unread_count"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

type AuthorType string

const (
	AuthorUser       AuthorType = "user"
	AuthorBot        AuthorType = "bot"
	AuthorRestaurant AuthorType = "restaurant"
)

type ChatMessage struct {
	ID         int        `json:"id"`
	SessionID  int        `json:"session_id"`
	AuthorType AuthorType `json:"authorType"`
	Content    string     `json:"content"`
	CreatedAt  time.Time  `json:"created_at"`
}

type QuestionChatType string

const (
	QuestionMenu        QuestionChatType = "menu"
	QuestionReservation QuestionChatType = "reservation"
)

type Question struct {
	ID           int              `json:"id"`
	RestaurantID int              `json:"restaurant_id"`
	ChatType     QuestionChatType `json:"chat_type"`
	Text         string           `json:"text"`
	DisplayOrder int              `json:"display_order"`
}

type Subscription struct {
	ID             int       `json:"id"`
	OrganizationID int       `json:"organization_id"`
	Plan           string    `json:"plan"`
	StartedAt      time.Time `json:"started_at"`
	ExpiresAt      time.Time `json:"expires_at"`
	DaysLeft       int       `json:"daysLeft"`
	IsActive       bool      `json:"isActive"`
}

type ExtensionStatus string

const (
	ExtensionPending   ExtensionStatus = "pending"
	ExtensionApproved  ExtensionStatus = "approved"
	ExtensionRejected  ExtensionStatus = "rejected"
	ExtensionCompleted ExtensionStatus = "completed"
)

type ExtensionRequest struct {
	ID             int             `json:"id"`
	OrganizationID int             `json:"organization_id"`
	SubscriptionID int             `json:"subscription_id"`
	RequestedDays  int             `json:"requested_days"`
	Comment        string          `json:"comment,omitempty"`
	Status         ExtensionStatus `json:"status"`
	AdminComment   string          `json:"admin_comment,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

type TicketStatus string

const (
	TicketInProgress TicketStatus = "in_progress"
	TicketCompleted  TicketStatus = "completed"
)

type SupportTicket struct {
	ID             int          `json:"id"`
	OrganizationID int          `json:"organization_id"`
	Subject        string       `json:"subject"`
	Message        string       `json:"message"`
	Status         TicketStatus `json:"status"`
	AdminReply     string       `json:"admin_reply,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}

type AdminLog struct {
	ID         int       `json:"id"`
	AdminID    int       `json:"admin_id"`
	AdminName  string    `json:"admin_name"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   int       `json:"entity_id"`
	Details    string    `json:"details,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
