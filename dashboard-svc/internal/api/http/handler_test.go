package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"restodash/dashboard-svc/internal/apiclient"
	"restodash/dashboard-svc/internal/domain"
	"restodash/dashboard-svc/internal/live"
	"restodash/dashboard-svc/internal/mocks"
	"restodash/dashboard-svc/internal/service"
	"restodash/dashboard-svc/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, time.June, 1, 10, 0, 0, 0, time.UTC)

type backendCall struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   []byte
}

// fakeBackend is the restaurant REST API as seen by apiclient.
type fakeBackend struct {
	srv    *httptest.Server
	router *mux.Router

	mu    sync.Mutex
	calls []backendCall
}

func newFakeBackend(t *testing.T) *fakeBackend {
	fb := &fakeBackend{router: mux.NewRouter()}
	fb.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))
		fb.mu.Lock()
		fb.calls = append(fb.calls, backendCall{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Auth:   r.Header.Get("Authorization"),
			Body:   body,
		})
		fb.mu.Unlock()
		fb.router.ServeHTTP(w, r)
	}))
	t.Cleanup(fb.srv.Close)
	return fb
}

func (fb *fakeBackend) reply(method, path string, status int, data any, messages ...string) {
	fb.router.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if messages == nil {
			messages = []string{}
		}
		json.NewEncoder(w).Encode(map[string]any{"code": status, "messages": messages, "data": data})
	}).Methods(method)
}

// replyPerToken answers path by the caller's Authorization header; unknown tokens get 401.
func (fb *fakeBackend) replyPerToken(method, path string, byToken map[string]func(w http.ResponseWriter)) {
	fb.router.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		write, ok := byToken[token]
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		write(w)
	}).Methods(method)
}

func envelopeWriter(status int, data any) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{"code": status, "messages": []string{}, "data": data})
	}
}

func (fb *fakeBackend) replyRaw(method, path, contentType string, body []byte) {
	fb.router.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Write(body)
	}).Methods(method)
}

func (fb *fakeBackend) callsTo(method, path string) []backendCall {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	var out []backendCall
	for _, c := range fb.calls {
		if c.Method == method && c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

type fixture struct {
	backend   *fakeBackend
	sessions  *mocks.SessionServiceInterface
	audit     *mocks.AuditRepository
	publisher *mocks.ChangePublisher
	qrRepo    *mocks.QRCodeRepository
	qrGen     *mocks.QRGenerator
	redis     *miniredis.Miniredis
	handler   *Handler
	router    *mux.Router
}

func setupTestRouter(t *testing.T) *fixture {
	log, _ := test.NewNullLogger()
	f := &fixture{
		backend:   newFakeBackend(t),
		sessions:  mocks.NewSessionServiceInterface(t),
		audit:     mocks.NewAuditRepository(t),
		publisher: mocks.NewChangePublisher(t),
		qrRepo:    mocks.NewQRCodeRepository(t),
		qrGen:     mocks.NewQRGenerator(t),
		redis:     miniredis.RunT(t),
	}

	client := redis.NewClient(&redis.Options{Addr: f.redis.Addr()})
	t.Cleanup(func() { client.Close() })

	query := service.NewQueryService(storage.NewRedisCache(client, time.Minute), log)
	changes := service.NewChangeService(query, f.audit, f.publisher, log)
	qr := service.NewQRService(f.qrRepo, f.qrGen, log)
	backend := apiclient.New(f.backend.srv.URL, f.backend.srv.Client(), log)

	f.handler = NewHandler(f.sessions, query, changes, qr, backend, storage.NewLocalUploader(t.TempDir()), live.NewHub(log), TTLs{
		Default:      time.Minute,
		ChatSessions: 10 * time.Second,
		ChatMessages: 5 * time.Second,
	}, log)
	f.handler.now = func() time.Time { return fixedNow }

	f.router = mux.NewRouter()
	f.handler.RegisterRoutes(f.router)
	return f
}

func ownerSession() *domain.Session {
	return &domain.Session{
		ID:             "sess-1",
		Token:          "backend-token",
		User:           domain.User{ID: 5, Name: "Aziz", Email: "aziz@plov.uz", Role: domain.RoleOwner, OrganizationID: 7},
		OrganizationID: 7,
		Language:       "ru",
		CreatedAt:      fixedNow,
		ExpiresAt:      fixedNow.Add(24 * time.Hour),
	}
}

func (f *fixture) signIn(sess *domain.Session) *domain.Session {
	f.sessions.On("Get", mock.Anything, sess.ID).Return(sess, nil)
	return sess
}

func staffSession() *domain.Session {
	return &domain.Session{
		ID:             "sess-2",
		Token:          "staff-token",
		User:           domain.User{ID: 6, Name: "Dilnoza", Email: "dilnoza@plov.uz", Role: domain.RoleStaff, OrganizationID: 7},
		OrganizationID: 7,
		Language:       "ru",
		CreatedAt:      fixedNow,
		ExpiresAt:      fixedNow.Add(24 * time.Hour),
	}
}

func (f *fixture) expectChange() {
	f.audit.On("RecordAudit", mock.AnythingOfType("*domain.AuditEntry")).Return(nil).Once()
	f.publisher.On("PublishChange", mock.Anything, mock.AnythingOfType("domain.ChangeEvent")).Return(nil).Once()
}

func (f *fixture) do(method, target, body string) *httptest.ResponseRecorder {
	return f.doAs("sess-1", method, target, body)
}

func (f *fixture) doAs(sessionID, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+sessionID)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

type testEnvelope struct {
	Code     int             `json:"code"`
	Messages []string        `json:"messages"`
	Data     json.RawMessage `json:"data"`
	Meta     json.RawMessage `json:"meta"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) testEnvelope {
	t.Helper()
	var env testEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	env := decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, dest))
}
