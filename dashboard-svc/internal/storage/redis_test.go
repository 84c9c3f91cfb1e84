package storage

import (
	"context"
	"testing"
	"time"

	"restodash/dashboard-svc/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisCache_GetSet(t *testing.T) {
	mr, client := newMiniRedis(t)
	cache := NewRedisCache(client, time.Minute)
	ctx := context.Background()

	var tables []domain.Table
	hit, err := cache.Get(ctx, "q:org:1:restaurant:2:tables", &tables)
	require.NoError(t, err)
	assert.False(t, hit)

	want := []domain.Table{{ID: 1, Name: "T1", Capacity: 4}}
	require.NoError(t, cache.Set(ctx, "q:org:1:restaurant:2:tables", want, 0))
	assert.Equal(t, time.Minute, mr.TTL("q:org:1:restaurant:2:tables"))

	hit, err = cache.Get(ctx, "q:org:1:restaurant:2:tables", &tables)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, want, tables)

	require.NoError(t, cache.Set(ctx, "q:org:1:restaurant:2:chats", []int{1}, 10*time.Second))
	mr.FastForward(11 * time.Second)
	var ids []int
	hit, err = cache.Get(ctx, "q:org:1:restaurant:2:chats", &ids)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisCache_GetCorrupt(t *testing.T) {
	mr, client := newMiniRedis(t)
	cache := NewRedisCache(client, time.Minute)
	require.NoError(t, mr.Set("q:org:1:restaurants", "{broken"))

	var out []domain.Restaurant
	hit, err := cache.Get(context.Background(), "q:org:1:restaurants", &out)
	assert.Error(t, err)
	assert.False(t, hit)
}

func TestRedisCache_InvalidatePrefix(t *testing.T) {
	mr, client := newMiniRedis(t)
	cache := NewRedisCache(client, time.Minute)
	ctx := context.Background()

	for _, key := range []string{
		"q:org:1:restaurant:2:tables",
		"q:org:1:restaurant:2:dishes:0",
		"q:org:1:restaurant:3:tables",
		"q:org:10:restaurant:2:tables",
	} {
		require.NoError(t, cache.Set(ctx, key, 1, 0))
	}

	deleted, err := cache.InvalidatePrefix(ctx, "q:org:1:restaurant:2:")
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)
	assert.True(t, mr.Exists("q:org:1:restaurant:3:tables"))
	assert.True(t, mr.Exists("q:org:10:restaurant:2:tables"))

	deleted, err = cache.InvalidatePrefix(ctx, "q:org:1:restaurant:2:")
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestRedisSessionStore(t *testing.T) {
	mr, client := newMiniRedis(t)
	store := NewRedisSessionStore(client)
	ctx := context.Background()

	sess := &domain.Session{
		ID:        "abc",
		Token:     "backend-token",
		User:      domain.User{ID: 5, Role: domain.RoleOwner},
		Language:  "en",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, store.Save(ctx, sess))
	assert.True(t, mr.TTL("session:abc") > 59*time.Minute)

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "backend-token", got.Token)
	assert.Equal(t, 5, got.User.ID)

	require.NoError(t, store.Delete(ctx, "abc"))
	_, err = store.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisSessionStore_Update(t *testing.T) {
	ctx := context.Background()

	testTable := []struct {
		name         string
		sessionID    string
		concurrent   bool
		wantErr      error
		wantLanguage string
		wantRest     int
	}{
		{name: "applies_mutation", sessionID: "abc", wantLanguage: "uz"},
		{name: "retries_after_concurrent_write", sessionID: "abc", concurrent: true, wantLanguage: "uz", wantRest: 9},
		{name: "missing_session", sessionID: "gone", wantErr: ErrSessionNotFound},
	}

	for _, testCase := range testTable {
		t.Run(testCase.name, func(t *testing.T) {
			mr, client := newMiniRedis(t)
			store := NewRedisSessionStore(client)
			require.NoError(t, store.Save(ctx, &domain.Session{ID: "abc", Language: "en", ExpiresAt: time.Now().Add(time.Hour)}))

			attempts := 0
			got, err := store.Update(ctx, testCase.sessionID, func(sess *domain.Session) {
				attempts++
				if testCase.concurrent && attempts == 1 {
					// another request selects a restaurant between our read and write
					require.NoError(t, store.Save(ctx, &domain.Session{ID: "abc", Language: "en", SelectedRestaurantID: 9, ExpiresAt: time.Now().Add(time.Hour)}))
				}
				sess.Language = "uz"
			})

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.wantLanguage, got.Language)
			assert.Equal(t, testCase.wantRest, got.SelectedRestaurantID)
			if testCase.concurrent {
				assert.Equal(t, 2, attempts)
			}

			stored, err := store.Get(ctx, "abc")
			require.NoError(t, err)
			assert.Equal(t, testCase.wantLanguage, stored.Language)
			assert.Equal(t, testCase.wantRest, stored.SelectedRestaurantID)
			assert.True(t, mr.TTL("session:abc") > 59*time.Minute)
		})
	}
}

func TestRedisSessionStore_SaveExpired(t *testing.T) {
	_, client := newMiniRedis(t)
	store := NewRedisSessionStore(client)

	err := store.Save(context.Background(), &domain.Session{ID: "old", ExpiresAt: time.Now().Add(-time.Second)})
	assert.Error(t, err)
}
