package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"restodash/dashboard-svc/internal/apiclient"
	"restodash/dashboard-svc/internal/domain"
	"restodash/dashboard-svc/internal/storage"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrNoSession       = errors.New("no active session")
	ErrSessionExpired  = errors.New("session expired")
	ErrUnknownLanguage = errors.New("unsupported language")
)

const DefaultLanguage = "en"

var SupportedLanguages = []string{"en", "ru", "uz"}

func IsSupportedLanguage(lang string) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

type SessionService struct {
	backend AuthBackend
	store   SessionStore
	prefs   PreferencesRepository
	ttl     time.Duration
	log     logrus.FieldLogger
	now     func() time.Time
}

func NewSessionService(backend AuthBackend, store SessionStore, prefs PreferencesRepository, ttl time.Duration, log logrus.FieldLogger) *SessionService {
	return &SessionService{
		backend: backend,
		store:   store,
		prefs:   prefs,
		ttl:     ttl,
		log:     log.WithField("component", "session"),
		now:     time.Now,
	}
}

func (s *SessionService) Login(ctx context.Context, req apiclient.LoginRequest, language string) (*domain.Session, error) {
	res, err := s.backend.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.open(ctx, res, language)
}

func (s *SessionService) Register(ctx context.Context, req apiclient.RegisterRequest, language string) (*domain.Session, error) {
	res, err := s.backend.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.open(ctx, res, language)
}

// open creates a dashboard session for a fresh backend token. Saved preferences win
// over the language the login form was shown in.
func (s *SessionService) open(ctx context.Context, res *apiclient.AuthResult, language string) (*domain.Session, error) {
	now := s.now()
	sess := &domain.Session{
		ID:             uuid.NewString(),
		Token:          res.Token,
		User:           res.User,
		OrganizationID: res.User.OrganizationID,
		Language:       DefaultLanguage,
		CreatedAt:      now,
		ExpiresAt:      now.Add(s.ttl),
	}
	if res.Organization != nil {
		sess.OrganizationID = res.Organization.ID
	}
	if IsSupportedLanguage(res.User.Language) {
		sess.Language = res.User.Language
	}
	if IsSupportedLanguage(language) {
		sess.Language = language
	}

	if exp, ok := TokenExpiry(res.Token); ok && exp.Before(sess.ExpiresAt) {
		sess.ExpiresAt = exp
	}

	prefs, err := s.prefs.GetPreferences(res.User.ID)
	if err != nil {
		s.log.WithError(err).WithField("user_id", res.User.ID).Warn("could not load preferences")
	} else if prefs != nil {
		if IsSupportedLanguage(prefs.Language) {
			sess.Language = prefs.Language
		}
		sess.SelectedRestaurantID = prefs.SelectedRestaurantID
	}

	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.log.WithFields(logrus.Fields{"user_id": sess.User.ID, "organization_id": sess.OrganizationID}).Info("session opened")
	return sess, nil
}

// Get resolves a dashboard bearer. A session whose backend token has expired is
// destroyed and reported as ErrSessionExpired.
func (s *SessionService) Get(ctx context.Context, id string) (*domain.Session, error) {
	if id == "" {
		return nil, ErrNoSession
	}
	sess, err := s.store.Get(ctx, id)
	if errors.Is(err, storage.ErrSessionNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	if exp, ok := TokenExpiry(sess.Token); ok && !s.now().Before(exp) {
		if err := s.store.Delete(ctx, id); err != nil {
			s.log.WithError(err).Warn("could not delete expired session")
		}
		return nil, ErrSessionExpired
	}
	return sess, nil
}

func (s *SessionService) Destroy(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

func (s *SessionService) SelectRestaurant(ctx context.Context, sess *domain.Session, restaurantID int) error {
	err := s.update(ctx, sess, func(stored *domain.Session) {
		stored.SelectedRestaurantID = restaurantID
	})
	if err != nil {
		return err
	}
	s.persist(sess)
	return nil
}

func (s *SessionService) SetLanguage(ctx context.Context, sess *domain.Session, language string) error {
	if !IsSupportedLanguage(language) {
		return fmt.Errorf("%w: %q", ErrUnknownLanguage, language)
	}
	err := s.update(ctx, sess, func(stored *domain.Session) {
		stored.Language = language
	})
	if err != nil {
		return err
	}
	s.persist(sess)
	return nil
}

// SetUser refreshes the cached user after a profile or role change.
func (s *SessionService) SetUser(ctx context.Context, sess *domain.Session, user domain.User) error {
	return s.update(ctx, sess, func(stored *domain.Session) {
		stored.User = user
		if user.OrganizationID != 0 {
			stored.OrganizationID = user.OrganizationID
		}
	})
}

// EnableAI records that staff handed the chat back to the bot.
func (s *SessionService) EnableAI(ctx context.Context, sess *domain.Session, chatID int) error {
	at := s.now()
	return s.update(ctx, sess, func(stored *domain.Session) {
		if stored.AIOverrides == nil {
			stored.AIOverrides = map[int]time.Time{}
		}
		stored.AIOverrides[chatID] = at
	})
}

func (s *SessionService) ClearAIOverride(ctx context.Context, sess *domain.Session, chatID int) error {
	if _, ok := sess.AIOverrides[chatID]; !ok {
		return nil
	}
	return s.update(ctx, sess, func(stored *domain.Session) {
		delete(stored.AIOverrides, chatID)
	})
}

// update changes one field of the stored session and refreshes sess with the
// result, which also carries whatever other requests wrote meanwhile.
func (s *SessionService) update(ctx context.Context, sess *domain.Session, mutate func(*domain.Session)) error {
	updated, err := s.store.Update(ctx, sess.ID, mutate)
	if errors.Is(err, storage.ErrSessionNotFound) {
		return ErrNoSession
	}
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	*sess = *updated
	return nil
}

// persist stores preferences. Errors are logged, not returned.
func (s *SessionService) persist(sess *domain.Session) {
	prefs := &domain.Preferences{
		UserID:               sess.User.ID,
		Language:             sess.Language,
		SelectedRestaurantID: sess.SelectedRestaurantID,
	}
	if err := s.prefs.SavePreferences(prefs); err != nil {
		s.log.WithError(err).WithField("user_id", sess.User.ID).Warn("could not save preferences")
	}
}

// TokenExpiry reads the exp claim of a backend JWT without verifying it. Opaque
// tokens report false.
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

var _ SessionServiceInterface = (*SessionService)(nil)
