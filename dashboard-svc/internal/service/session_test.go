package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"restodash/dashboard-svc/internal/apiclient"
	"restodash/dashboard-svc/internal/domain"
	"restodash/dashboard-svc/internal/mocks"
	"restodash/dashboard-svc/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return token
}

func newSessionService(t *testing.T) (*SessionService, *mocks.AuthBackend, *mocks.SessionStore, *mocks.PreferencesRepository) {
	backend := mocks.NewAuthBackend(t)
	store := mocks.NewSessionStore(t)
	prefs := mocks.NewPreferencesRepository(t)
	svc := NewSessionService(backend, store, prefs, 24*time.Hour, discardLogger())
	return svc, backend, store, prefs
}

func TestSessionService_Login(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		token        string
		language     string
		prefs        *domain.Preferences
		prefsErr     error
		wantLanguage string
		wantRest     int
		wantExpires  time.Time
	}{
		{
			name:         "opaque_token_defaults",
			token:        "12|opaque",
			wantLanguage: "en",
			wantExpires:  now.Add(24 * time.Hour),
		},
		{
			name:         "form_language",
			token:        "12|opaque",
			language:     "uz",
			wantLanguage: "uz",
			wantExpires:  now.Add(24 * time.Hour),
		},
		{
			name:         "preferences_restored",
			token:        "12|opaque",
			language:     "en",
			prefs:        &domain.Preferences{UserID: 5, Language: "ru", SelectedRestaurantID: 9},
			wantLanguage: "ru",
			wantRest:     9,
			wantExpires:  now.Add(24 * time.Hour),
		},
		{
			name:         "preferences_unavailable",
			token:        "12|opaque",
			prefsErr:     errors.New("db down"),
			wantLanguage: "en",
			wantExpires:  now.Add(24 * time.Hour),
		},
		{
			name:         "jwt_expiry_caps_ttl",
			token:        signedToken(t, now.Add(2*time.Hour)),
			wantLanguage: "en",
			wantExpires:  now.Add(2 * time.Hour),
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			svc, backend, store, prefs := newSessionService(t)
			svc.now = func() time.Time { return now }

			req := apiclient.LoginRequest{Email: "owner@test.uz", Password: "secret123"}
			backend.On("Login", ctx, req).Return(&apiclient.AuthResult{
				Token:        testCase.token,
				User:         domain.User{ID: 5, Role: domain.RoleOwner, OrganizationID: 2},
				Organization: &domain.Organization{ID: 2},
			}, nil).Once()
			prefs.On("GetPreferences", 5).Return(testCase.prefs, testCase.prefsErr).Once()
			store.On("Save", ctx, mock.AnythingOfType("*domain.Session")).Return(nil).Once()

			sess, err := svc.Login(ctx, req, testCase.language)
			require.NoError(t, err)
			assert.NotEmpty(t, sess.ID)
			assert.Equal(t, testCase.token, sess.Token)
			assert.Equal(t, 2, sess.OrganizationID)
			assert.Equal(t, testCase.wantLanguage, sess.Language)
			assert.Equal(t, testCase.wantRest, sess.SelectedRestaurantID)
			assert.WithinDuration(t, testCase.wantExpires, sess.ExpiresAt, time.Second)
		})
	}
}

func TestSessionService_LoginBackendError(t *testing.T) {
	svc, backend, _, _ := newSessionService(t)
	backendErr := &apiclient.Error{Kind: apiclient.KindValidation, Status: 422, Messages: []string{"Invalid credentials"}}
	backend.On("Login", mock.Anything, mock.Anything).Return(nil, backendErr).Once()

	_, err := svc.Login(context.Background(), apiclient.LoginRequest{}, "")
	assert.Equal(t, apiclient.KindValidation, apiclient.KindOf(err))
}

func TestSessionService_Get(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("empty_id", func(t *testing.T) {
		svc, _, _, _ := newSessionService(t)
		_, err := svc.Get(ctx, "")
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("unknown", func(t *testing.T) {
		svc, _, store, _ := newSessionService(t)
		store.On("Get", ctx, "nope").Return(nil, storage.ErrSessionNotFound).Once()
		_, err := svc.Get(ctx, "nope")
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("valid", func(t *testing.T) {
		svc, _, store, _ := newSessionService(t)
		sess := &domain.Session{ID: "s1", Token: signedToken(t, now.Add(time.Hour))}
		store.On("Get", ctx, "s1").Return(sess, nil).Once()
		got, err := svc.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, sess, got)
	})

	t.Run("backend_token_expired", func(t *testing.T) {
		svc, _, store, _ := newSessionService(t)
		sess := &domain.Session{ID: "s2", Token: signedToken(t, now.Add(-time.Minute))}
		store.On("Get", ctx, "s2").Return(sess, nil).Once()
		store.On("Delete", ctx, "s2").Return(nil).Once()
		_, err := svc.Get(ctx, "s2")
		assert.ErrorIs(t, err, ErrSessionExpired)
	})
}

// storedAs makes the mocked store apply mutations to a copy of stored.
func storedAs(stored domain.Session) func(context.Context, string, func(*domain.Session)) (*domain.Session, error) {
	return func(_ context.Context, _ string, mutate func(*domain.Session)) (*domain.Session, error) {
		cp := stored
		mutate(&cp)
		return &cp, nil
	}
}

func TestSessionService_SetLanguage(t *testing.T) {
	ctx := context.Background()
	svc, _, store, prefs := newSessionService(t)
	sess := &domain.Session{ID: "s1", User: domain.User{ID: 5}, SelectedRestaurantID: 3, Language: "en"}

	err := svc.SetLanguage(ctx, sess, "de")
	assert.ErrorIs(t, err, ErrUnknownLanguage)

	store.On("Update", ctx, "s1", mock.Anything).Return(storedAs(*sess)).Once()
	prefs.On("SavePreferences", &domain.Preferences{UserID: 5, Language: "ru", SelectedRestaurantID: 3}).Return(nil).Once()
	require.NoError(t, svc.SetLanguage(ctx, sess, "ru"))
	assert.Equal(t, "ru", sess.Language)
}

func TestSessionService_SelectRestaurant(t *testing.T) {
	ctx := context.Background()
	svc, _, store, prefs := newSessionService(t)
	sess := &domain.Session{ID: "s1", User: domain.User{ID: 5}, Language: "uz"}

	store.On("Update", ctx, "s1", mock.Anything).Return(storedAs(*sess)).Once()
	prefs.On("SavePreferences", mock.Anything).Return(errors.New("db down")).Once()

	require.NoError(t, svc.SelectRestaurant(ctx, sess, 11))
	assert.Equal(t, 11, sess.SelectedRestaurantID)
}

func TestSessionService_UpdateErrors(t *testing.T) {
	ctx := context.Background()

	testTable := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "session_gone", err: storage.ErrSessionNotFound, wantErr: ErrNoSession},
		{name: "redis_down", err: errors.New("connection refused")},
	}

	for _, testCase := range testTable {
		t.Run(testCase.name, func(t *testing.T) {
			svc, _, store, _ := newSessionService(t)
			sess := &domain.Session{ID: "s1", User: domain.User{ID: 5}, Language: "en"}
			store.On("Update", ctx, "s1", mock.Anything).Return(nil, testCase.err).Once()

			err := svc.SetLanguage(ctx, sess, "ru")

			require.Error(t, err)
			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
			}
			assert.Equal(t, "en", sess.Language)
		})
	}
}

func TestSessionService_AIOverride(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	svc, _, store, _ := newSessionService(t)
	svc.now = func() time.Time { return now }
	sess := &domain.Session{ID: "s1"}

	store.On("Update", ctx, "s1", mock.Anything).Return(storedAs(*sess)).Once()
	require.NoError(t, svc.EnableAI(ctx, sess, 40))
	assert.Equal(t, now, sess.AIOverrides[40])

	store.On("Update", ctx, "s1", mock.Anything).Return(storedAs(domain.Session{ID: "s1", AIOverrides: map[int]time.Time{40: now}})).Once()
	require.NoError(t, svc.ClearAIOverride(ctx, sess, 40))
	assert.NotContains(t, sess.AIOverrides, 40)

	// clearing a missing override does not touch the store
	require.NoError(t, svc.ClearAIOverride(ctx, sess, 41))
}

func TestSessionService_ConcurrentMutationsKeepEachOther(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	prefs := mocks.NewPreferencesRepository(t)
	prefs.On("SavePreferences", mock.Anything).Return(nil)
	svc := NewSessionService(mocks.NewAuthBackend(t), storage.NewRedisSessionStore(client), prefs, 24*time.Hour, discardLogger())

	now := time.Now()
	stored := &domain.Session{
		ID:          "s1",
		User:        domain.User{ID: 5},
		Language:    "en",
		AIOverrides: map[int]time.Time{40: now},
		ExpiresAt:   now.Add(time.Hour),
	}
	require.NoError(t, storage.NewRedisSessionStore(client).Save(ctx, stored))

	// two requests loaded the same session before either wrote it
	poll, _ := svc.store.Get(ctx, "s1")
	settings, _ := svc.store.Get(ctx, "s1")

	require.NoError(t, svc.SetLanguage(ctx, settings, "uz"))
	require.NoError(t, svc.SelectRestaurant(ctx, settings, 3))
	require.NoError(t, svc.ClearAIOverride(ctx, poll, 40))

	got, err := svc.store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "uz", got.Language)
	assert.Equal(t, 3, got.SelectedRestaurantID)
	assert.NotContains(t, got.AIOverrides, 40)
	assert.Equal(t, "uz", poll.Language)
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)

	got, ok := TokenExpiry(signedToken(t, exp))
	require.True(t, ok)
	assert.True(t, exp.Equal(got))

	_, ok = TokenExpiry("1|plain-sanctum-token")
	assert.False(t, ok)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "5"}).SignedString([]byte("k"))
	require.NoError(t, err)
	_, ok = TokenExpiry(noExp)
	assert.False(t, ok)
}
