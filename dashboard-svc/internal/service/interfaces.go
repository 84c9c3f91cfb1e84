package service

import (
	"context"
	"time"

	"restodash/dashboard-svc/internal/apiclient"
	"restodash/dashboard-svc/internal/domain"
	"restodash/dashboard-svc/internal/storage"
)

type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	InvalidatePrefix(ctx context.Context, prefix string) (int, error)
}

type SessionStore interface {
	Save(ctx context.Context, sess *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	// Update re-reads the session and saves it with mutate applied, so mutations of
	// different fields by concurrent requests do not overwrite each other.
	Update(ctx context.Context, id string, mutate func(*domain.Session)) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}

type PreferencesRepository interface {
	GetPreferences(userID int) (*domain.Preferences, error)
	SavePreferences(prefs *domain.Preferences) error
}

type QRCodeRepository interface {
	GetQRCode(restaurantID, tableID int) ([]byte, error)
	SaveQRCode(restaurantID, tableID int, image []byte) error
	DeleteQRCode(restaurantID, tableID int) error
}

type AuditRepository interface {
	RecordAudit(entry *domain.AuditEntry) error
}

type ChangePublisher interface {
	PublishChange(ctx context.Context, event domain.ChangeEvent) error
}

// Broadcaster pushes a change to the live dashboards of one organization.
type Broadcaster interface {
	BroadcastToOrganization(organizationID int, event domain.ChangeEvent)
}

// AuthBackend is the unauthenticated part of the backend API.
type AuthBackend interface {
	Login(ctx context.Context, req apiclient.LoginRequest) (*apiclient.AuthResult, error)
	Register(ctx context.Context, req apiclient.RegisterRequest) (*apiclient.AuthResult, error)
}

// QRBackend fetches QR images rendered by the backend.
type QRBackend interface {
	TableQRCode(ctx context.Context, restaurantID, tableID int) ([]byte, string, error)
	RestaurantQRCode(ctx context.Context, restaurantID int) ([]byte, string, error)
}

// MessageSource lists chat messages for the live watcher.
type MessageSource interface {
	ListChatMessages(ctx context.Context, sessionID, afterID int) ([]domain.ChatMessage, error)
}

type QueryServiceInterface interface {
	Fetch(ctx context.Context, key string, ttl time.Duration, dest any, loader func(ctx context.Context) (any, error)) error
	Invalidate(ctx context.Context, prefixes ...string)
}

type SessionServiceInterface interface {
	Login(ctx context.Context, req apiclient.LoginRequest, language string) (*domain.Session, error)
	Register(ctx context.Context, req apiclient.RegisterRequest, language string) (*domain.Session, error)
	Get(ctx context.Context, id string) (*domain.Session, error)
	Destroy(ctx context.Context, id string) error
	SelectRestaurant(ctx context.Context, sess *domain.Session, restaurantID int) error
	SetLanguage(ctx context.Context, sess *domain.Session, language string) error
	SetUser(ctx context.Context, sess *domain.Session, user domain.User) error
	EnableAI(ctx context.Context, sess *domain.Session, chatID int) error
	ClearAIOverride(ctx context.Context, sess *domain.Session, chatID int) error
}

type ChangeServiceInterface interface {
	Record(ctx context.Context, sess *domain.Session, change Change)
}

type QRServiceInterface interface {
	TableCode(ctx context.Context, backend QRBackend, restaurantID, tableID int) ([]byte, error)
	RestaurantCode(ctx context.Context, backend QRBackend, restaurantID int) ([]byte, error)
	Forget(restaurantID, tableID int)
}

type ConsumerInterface interface {
	Start(ctx context.Context)
	ProcessEvent(ctx context.Context, event domain.ChangeEvent)
}

var (
	_ Cache                 = (*storage.RedisCache)(nil)
	_ SessionStore          = (*storage.RedisSessionStore)(nil)
	_ PreferencesRepository = (*storage.PostgresRepository)(nil)
	_ QRCodeRepository      = (*storage.PostgresRepository)(nil)
	_ AuditRepository       = (*storage.PostgresRepository)(nil)
	_ ChangePublisher       = (*storage.KafkaPublisher)(nil)
	_ AuthBackend           = (*apiclient.Client)(nil)
	_ QRBackend             = (*apiclient.Client)(nil)
	_ MessageSource         = (*apiclient.Client)(nil)
)
