package httpapi

import (
	"context"
	"io"
	"net/http"
	"time"

	"restodash/dashboard-svc/internal/apiclient"
	"restodash/dashboard-svc/internal/domain"
	"restodash/dashboard-svc/internal/live"
	"restodash/dashboard-svc/internal/service"
	"restodash/dashboard-svc/internal/validation"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

type Uploader interface {
	Upload(ctx context.Context, name, contentType string, body io.Reader) (string, error)
}

// ActivityLog reads the local audit trail of dashboard mutations.
type ActivityLog interface {
	ListAudit(organizationID int, since time.Time, limit int) ([]domain.AuditEntry, error)
}

type TTLs struct {
	Default      time.Duration
	ChatSessions time.Duration
	ChatMessages time.Duration
}

type Handler struct {
	Sessions  service.SessionServiceInterface
	Query     service.QueryServiceInterface
	Changes   service.ChangeServiceInterface
	QR        service.QRServiceInterface
	Backend   *apiclient.Client
	Validator *validation.Validator
	Uploader  Uploader
	Hub       *live.Hub
	Activity  ActivityLog
	TTL       TTLs

	log      logrus.FieldLogger
	upgrader websocket.Upgrader
	now      func() time.Time
}

func NewHandler(
	sessions service.SessionServiceInterface,
	query service.QueryServiceInterface,
	changes service.ChangeServiceInterface,
	qr service.QRServiceInterface,
	backend *apiclient.Client,
	uploader Uploader,
	hub *live.Hub,
	ttl TTLs,
	log logrus.FieldLogger,
) *Handler {
	return &Handler{
		Sessions:  sessions,
		Query:     query,
		Changes:   changes,
		QR:        qr,
		Backend:   backend,
		Validator: validation.New(),
		Uploader:  uploader,
		Hub:       hub,
		TTL:       ttl,
		log:       log.WithField("component", "http"),
		now:       time.Now,
	}
}

// AllowOrigins restricts websocket upgrades to the dashboard origins.
func (h *Handler) AllowOrigins(origins []string) {
	allowed := map[string]bool{}
	for _, o := range origins {
		allowed[o] = true
	}
	h.upgrader.CheckOrigin = func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || allowed[origin]
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/ws", h.authenticated(h.serveWS)).Methods("GET")

	r.HandleFunc("/api/auth/login", h.login).Methods("POST")
	r.HandleFunc("/api/auth/register", h.register).Methods("POST")
	r.HandleFunc("/api/auth/logout", h.authenticated(h.logout)).Methods("POST")
	r.HandleFunc("/api/auth/me", h.authenticated(h.me)).Methods("GET")
	r.HandleFunc("/api/auth/password", h.authenticated(h.changePassword)).Methods("POST")

	r.HandleFunc("/api/session", h.authenticated(h.getSession)).Methods("GET")
	r.HandleFunc("/api/session/restaurant", h.authenticated(h.selectRestaurant)).Methods("PUT")
	r.HandleFunc("/api/session/language", h.authenticated(h.setLanguage)).Methods("PUT")

	r.HandleFunc("/api/organization", h.authenticated(h.getOrganization)).Methods("GET")
	r.HandleFunc("/api/organization", h.authenticated(h.updateOrganization)).Methods("PUT")
	r.HandleFunc("/api/organization/activity", h.authenticated(h.listActivity)).Methods("GET")
	r.HandleFunc("/api/organization/members", h.authenticated(h.listMembers)).Methods("GET")
	r.HandleFunc("/api/organization/members", h.authenticated(h.inviteMember)).Methods("POST")
	r.HandleFunc("/api/organization/members/{id}", h.authenticated(h.updateMemberRole)).Methods("PUT")
	r.HandleFunc("/api/organization/members/{id}", h.authenticated(h.removeMember)).Methods("DELETE")

	r.HandleFunc("/api/restaurants", h.authenticated(h.listRestaurants)).Methods("GET")
	r.HandleFunc("/api/restaurants", h.authenticated(h.createRestaurant)).Methods("POST")
	r.HandleFunc("/api/restaurants/{rid}", h.authenticated(h.getRestaurant)).Methods("GET")
	r.HandleFunc("/api/restaurants/{rid}", h.authenticated(h.updateRestaurant)).Methods("PUT")
	r.HandleFunc("/api/restaurants/{rid}", h.authenticated(h.deleteRestaurant)).Methods("DELETE")
	r.HandleFunc("/api/restaurants/{rid}/working-hours", h.authenticated(h.updateWorkingHours)).Methods("PUT")
	r.HandleFunc("/api/restaurants/{rid}/image", h.authenticated(h.uploadRestaurantImage)).Methods("POST")
	r.HandleFunc("/api/restaurants/{rid}/qrcode", h.authenticated(h.restaurantQRCode)).Methods("GET")

	r.HandleFunc("/api/restaurants/{rid}/tables", h.authenticated(h.listTables)).Methods("GET")
	r.HandleFunc("/api/restaurants/{rid}/tables", h.authenticated(h.createTable)).Methods("POST")
	r.HandleFunc("/api/restaurants/{rid}/tables/order", h.authenticated(h.reorderTables)).Methods("PUT")
	r.HandleFunc("/api/restaurants/{rid}/tables/status", h.authenticated(h.tableStatuses)).Methods("GET")
	r.HandleFunc("/api/restaurants/{rid}/tables/{tid:[0-9]+}", h.authenticated(h.updateTable)).Methods("PUT")
	r.HandleFunc("/api/restaurants/{rid}/tables/{tid:[0-9]+}", h.authenticated(h.deleteTable)).Methods("DELETE")
	r.HandleFunc("/api/restaurants/{rid}/tables/{tid:[0-9]+}/qrcode", h.authenticated(h.tableQRCode)).Methods("GET")

	r.HandleFunc("/api/restaurants/{rid}/categories", h.authenticated(h.listCategories)).Methods("GET")
	r.HandleFunc("/api/restaurants/{rid}/categories", h.authenticated(h.createCategory)).Methods("POST")
	r.HandleFunc("/api/restaurants/{rid}/categories/order", h.authenticated(h.reorderCategories)).Methods("PUT")
	r.HandleFunc("/api/restaurants/{rid}/categories/{cid:[0-9]+}", h.authenticated(h.updateCategory)).Methods("PUT")
	r.HandleFunc("/api/restaurants/{rid}/categories/{cid:[0-9]+}", h.authenticated(h.deleteCategory)).Methods("DELETE")

	r.HandleFunc("/api/restaurants/{rid}/dishes", h.authenticated(h.listDishes)).Methods("GET")
	r.HandleFunc("/api/restaurants/{rid}/dishes", h.authenticated(h.createDish)).Methods("POST")
	r.HandleFunc("/api/restaurants/{rid}/dishes/{did}", h.authenticated(h.getDish)).Methods("GET")
	r.HandleFunc("/api/restaurants/{rid}/dishes/{did}", h.authenticated(h.updateDish)).Methods("PUT")
	r.HandleFunc("/api/restaurants/{rid}/dishes/{did}", h.authenticated(h.deleteDish)).Methods("DELETE")
	r.HandleFunc("/api/restaurants/{rid}/dishes/{did}/availability", h.authenticated(h.setDishAvailability)).Methods("PUT")
	r.HandleFunc("/api/restaurants/{rid}/dishes/{did}/image", h.authenticated(h.uploadDishImage)).Methods("POST")

	r.HandleFunc("/api/restaurants/{rid}/reservations", h.authenticated(h.listReservations)).Methods("GET")
	r.HandleFunc("/api/restaurants/{rid}/reservations", h.authenticated(h.createReservation)).Methods("POST")
	r.HandleFunc("/api/restaurants/{rid}/reservations/week", h.authenticated(h.reservationWeek)).Methods("GET")
	r.HandleFunc("/api/restaurants/{rid}/reservations/{resid:[0-9]+}", h.authenticated(h.getReservation)).Methods("GET")
	r.HandleFunc("/api/restaurants/{rid}/reservations/{resid:[0-9]+}", h.authenticated(h.updateReservation)).Methods("PUT")
	r.HandleFunc("/api/restaurants/{rid}/reservations/{resid:[0-9]+}", h.authenticated(h.deleteReservation)).Methods("DELETE")
	r.HandleFunc("/api/restaurants/{rid}/reservations/{resid:[0-9]+}/status", h.authenticated(h.updateReservationStatus)).Methods("PUT")
	r.HandleFunc("/api/restaurants/{rid}/availability", h.authenticated(h.availability)).Methods("GET")

	r.HandleFunc("/api/restaurants/{rid}/chats", h.authenticated(h.listChats)).Methods("GET")
	r.HandleFunc("/api/chats/{sid}", h.authenticated(h.getChat)).Methods("GET")
	r.HandleFunc("/api/chats/{sid}/messages", h.authenticated(h.listChatMessages)).Methods("GET")
	r.HandleFunc("/api/chats/{sid}/messages", h.authenticated(h.sendChatMessage)).Methods("POST")
	r.HandleFunc("/api/chats/{sid}/close", h.authenticated(h.closeChat)).Methods("POST")
	r.HandleFunc("/api/chats/{sid}/handoff", h.authenticated(h.chatHandoff)).Methods("GET")
	r.HandleFunc("/api/chats/{sid}/ai", h.authenticated(h.enableAI)).Methods("POST")

	r.HandleFunc("/api/restaurants/{rid}/questions", h.authenticated(h.listQuestions)).Methods("GET")
	r.HandleFunc("/api/restaurants/{rid}/questions", h.authenticated(h.createQuestion)).Methods("POST")
	r.HandleFunc("/api/restaurants/{rid}/questions/order", h.authenticated(h.reorderQuestions)).Methods("PUT")
	r.HandleFunc("/api/restaurants/{rid}/questions/{qid:[0-9]+}", h.authenticated(h.updateQuestion)).Methods("PUT")
	r.HandleFunc("/api/restaurants/{rid}/questions/{qid:[0-9]+}", h.authenticated(h.deleteQuestion)).Methods("DELETE")

	r.HandleFunc("/api/subscription", h.authenticated(h.getSubscription)).Methods("GET")
	r.HandleFunc("/api/subscription/extensions", h.authenticated(h.listExtensions)).Methods("GET")
	r.HandleFunc("/api/subscription/extensions", h.authenticated(h.requestExtension)).Methods("POST")

	r.HandleFunc("/api/support/tickets", h.authenticated(h.listTickets)).Methods("GET")
	r.HandleFunc("/api/support/tickets", h.authenticated(h.createTicket)).Methods("POST")
	r.HandleFunc("/api/support/tickets/{id}", h.authenticated(h.getTicket)).Methods("GET")

	r.HandleFunc("/api/admin/organizations", h.admin(h.adminOrganizations)).Methods("GET")
	r.HandleFunc("/api/admin/extensions", h.admin(h.adminExtensions)).Methods("GET")
	r.HandleFunc("/api/admin/extensions/{id}", h.admin(h.adminReviewExtension)).Methods("PUT")
	r.HandleFunc("/api/admin/logs", h.admin(h.adminLogs)).Methods("GET")
	r.HandleFunc("/api/admin/tickets", h.admin(h.adminTickets)).Methods("GET")
	r.HandleFunc("/api/admin/tickets/{id}", h.admin(h.adminReplyTicket)).Methods("PUT")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "dashboard-svc",
		"timestamp": h.now().Format(time.RFC3339),
	}, nil)
}
