package httpapi

import (
	"context"
	"net/http"

	"restodash/dashboard-svc/internal/apiclient"
	"restodash/dashboard-svc/internal/domain"
	"restodash/dashboard-svc/internal/service"
	"restodash/dashboard-svc/internal/validation"
)

func (h *Handler) getSubscription(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	var sub domain.Subscription
	err := h.fetch(r, orgKey(sess, "subscription"), 0, &sub, func(ctx context.Context) (any, error) {
		return h.backend(sess).CurrentSubscription(ctx)
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	// days_left and is_active are derived per request, never cached
	service.DeriveSubscription(&sub, h.now())
	writeData(w, http.StatusOK, sub, nil)
}

func (h *Handler) listExtensions(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	var requests []domain.ExtensionRequest
	err := h.fetch(r, orgKey(sess, "extensions"), 0, &requests, func(ctx context.Context) (any, error) {
		return h.backend(sess).ListExtensionRequests(ctx)
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, requests, nil)
}

func (h *Handler) requestExtension(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	var form validation.ExtensionRequestForm
	if err := h.decode(r, &form); err != nil {
		h.writeError(w, r, err)
		return
	}
	req, err := h.backend(sess).CreateExtensionRequest(r.Context(), apiclient.ExtensionRequestInput{
		RequestedDays: form.RequestedDays,
		Comment:       form.Comment,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.record(r, sess, service.Change{
		Action:     domain.EventCreated,
		Resource:   "extension_request",
		ResourceID: req.ID,
		Prefixes:   []string{orgKey(sess, "extensions"), service.AdminKey("extensions")},
	})
	writeData(w, http.StatusCreated, req, nil, "Extension request sent")
}

type ticketPage struct {
	Tickets []domain.SupportTicket `json:"tickets"`
	Meta    *apiclient.Meta        `json:"meta"`
}

func (h *Handler) listTickets(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	page := queryInt(r, "page")
	var out ticketPage
	err := h.fetch(r, orgKey(sess, "tickets", "page", page), 0, &out, func(ctx context.Context) (any, error) {
		tickets, meta, err := h.backend(sess).ListSupportTickets(ctx, page)
		if err != nil {
			return nil, err
		}
		return ticketPage{Tickets: tickets, Meta: meta}, nil
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, out.Tickets, out.Meta)
}

func (h *Handler) getTicket(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var ticket domain.SupportTicket
	err = h.fetch(r, orgKey(sess, "tickets", "id", id), 0, &ticket, func(ctx context.Context) (any, error) {
		return h.backend(sess).GetSupportTicket(ctx, id)
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, ticket, nil)
}

func (h *Handler) createTicket(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	var form validation.SupportTicketForm
	if err := h.decode(r, &form); err != nil {
		h.writeError(w, r, err)
		return
	}
	ticket, err := h.backend(sess).CreateSupportTicket(r.Context(), apiclient.SupportTicketInput{
		Subject: form.Subject,
		Message: form.Message,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.record(r, sess, service.Change{
		Action:     domain.EventCreated,
		Resource:   "support_ticket",
		ResourceID: ticket.ID,
		Prefixes:   []string{orgKey(sess, "tickets"), service.AdminKey("tickets")},
	})
	writeData(w, http.StatusCreated, ticket, nil, "Ticket submitted")
}
