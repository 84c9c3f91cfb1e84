package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"restodash/dashboard-svc/internal/apiclient"
	"restodash/dashboard-svc/internal/domain"
)

var errForbidden = errors.New("forbidden")

type sessionKey struct{}

type sessionHandler func(w http.ResponseWriter, r *http.Request, sess *domain.Session)

// bearer reads the dashboard session id. Browsers cannot set headers on websocket
// upgrades, so /ws also accepts ?token=.
func bearer(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return r.URL.Query().Get("token")
}

func (h *Handler) authenticated(next sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := h.Sessions.Get(r.Context(), bearer(r))
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		r = r.WithContext(context.WithValue(r.Context(), sessionKey{}, sess))
		next(w, r, sess)
	}
}

func (h *Handler) admin(next sessionHandler) http.HandlerFunc {
	return h.authenticated(func(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
		if sess.User.Role != domain.RoleAdmin {
			h.writeError(w, r, errForbidden)
			return
		}
		next(w, r, sess)
	})
}

// dropSession ends the dashboard session after the backend rejected its token.
func (h *Handler) dropSession(r *http.Request) {
	sess, ok := r.Context().Value(sessionKey{}).(*domain.Session)
	if !ok {
		return
	}
	if err := h.Sessions.Destroy(r.Context(), sess.ID); err != nil {
		h.log.WithError(err).WithField("user_id", sess.User.ID).Warn("could not destroy session")
	}
}

// backend is the API client acting as the session's user.
func (h *Handler) backend(sess *domain.Session) *apiclient.Client {
	return h.Backend.WithToken(sess.Token, sess.Language)
}
