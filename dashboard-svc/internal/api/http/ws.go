package httpapi

import (
	"net/http"

	"restodash/dashboard-svc/internal/domain"
	"restodash/dashboard-svc/internal/live"
)

// serveWS upgrades an authenticated dashboard to the live channel. Chat watches poll
// the backend with the connecting user's token.
func (h *Handler) serveWS(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Debug("websocket upgrade failed")
		return
	}

	watcher := live.NewChatWatcher(h.backend(sess), h.TTL.ChatMessages, h.log)
	client := live.NewClient(h.Hub, conn, sess.OrganizationID, sess.User.ID, watcher, h.log)
	client.Serve(r.Context())
}
