package httpapi

import (
	"context"
	"net/http"

	"restodash/dashboard-svc/internal/apiclient"
	"restodash/dashboard-svc/internal/domain"
	"restodash/dashboard-svc/internal/service"
	"restodash/dashboard-svc/internal/validation"
)

// adminPage caches a list together with its pagination meta.
type adminPage[T any] struct {
	Items []T             `json:"items"`
	Meta  *apiclient.Meta `json:"meta"`
}

func adminList[T any](h *Handler, w http.ResponseWriter, r *http.Request, key string, load func(ctx context.Context) ([]T, *apiclient.Meta, error)) {
	var out adminPage[T]
	err := h.fetch(r, key, 0, &out, func(ctx context.Context) (any, error) {
		items, meta, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return adminPage[T]{Items: items, Meta: meta}, nil
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, out.Items, out.Meta)
}

func (h *Handler) adminOrganizations(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	page := queryInt(r, "page")
	adminList(h, w, r, service.AdminKey("organizations", page), func(ctx context.Context) ([]domain.Organization, *apiclient.Meta, error) {
		return h.backend(sess).AdminListOrganizations(ctx, page)
	})
}

func (h *Handler) adminExtensions(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	page := queryInt(r, "page")
	status := domain.ExtensionStatus(r.URL.Query().Get("status"))
	adminList(h, w, r, service.AdminKey("extensions", status, page), func(ctx context.Context) ([]domain.ExtensionRequest, *apiclient.Meta, error) {
		return h.backend(sess).AdminListExtensionRequests(ctx, status, page)
	})
}

func (h *Handler) adminLogs(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	page := queryInt(r, "page")
	adminList(h, w, r, service.AdminKey("logs", page), func(ctx context.Context) ([]domain.AdminLog, *apiclient.Meta, error) {
		return h.backend(sess).AdminListLogs(ctx, page)
	})
}

func (h *Handler) adminTickets(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	page := queryInt(r, "page")
	adminList(h, w, r, service.AdminKey("tickets", page), func(ctx context.Context) ([]domain.SupportTicket, *apiclient.Meta, error) {
		return h.backend(sess).AdminListSupportTickets(ctx, page)
	})
}

func (h *Handler) adminReviewExtension(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var form validation.ExtensionReviewForm
	if err := h.decode(r, &form); err != nil {
		h.writeError(w, r, err)
		return
	}
	req, err := h.backend(sess).AdminReviewExtensionRequest(r.Context(), id, apiclient.ExtensionReview{
		Status:       domain.ExtensionStatus(form.Status),
		AdminComment: form.AdminComment,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.record(r, sess, service.Change{
		Action:     domain.EventUpdated,
		Resource:   "extension_request",
		ResourceID: id,
		Prefixes: []string{
			service.AdminKey("extensions"),
			service.AdminKey("logs"),
			service.Key(req.OrganizationID, "extensions"),
			service.Key(req.OrganizationID, "subscription"),
		},
	})
	writeData(w, http.StatusOK, req, nil, "Extension request "+form.Status)
}

func (h *Handler) adminReplyTicket(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var form validation.TicketReplyForm
	if err := h.decode(r, &form); err != nil {
		h.writeError(w, r, err)
		return
	}
	ticket, err := h.backend(sess).AdminReplySupportTicket(r.Context(), id, apiclient.TicketReply{
		AdminReply: form.AdminReply,
		Status:     domain.TicketStatus(form.Status),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.record(r, sess, service.Change{
		Action:     domain.EventUpdated,
		Resource:   "support_ticket",
		ResourceID: id,
		Prefixes: []string{
			service.AdminKey("tickets"),
			service.AdminKey("logs"),
			service.Key(ticket.OrganizationID, "tickets"),
		},
	})
	writeData(w, http.StatusOK, ticket, nil, "Reply sent")
}
