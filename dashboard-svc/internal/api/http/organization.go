package httpapi

import (
	"context"
	"net/http"

	"restodash/dashboard-svc/internal/apiclient"
	"restodash/dashboard-svc/internal/domain"
	"restodash/dashboard-svc/internal/service"
	"restodash/dashboard-svc/internal/validation"
)

func (h *Handler) getOrganization(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	var org domain.Organization
	err := h.fetch(r, orgKey(sess, "organization"), 0, &org, func(ctx context.Context) (any, error) {
		return h.backend(sess).GetOrganization(ctx)
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, org, nil)
}

func (h *Handler) updateOrganization(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	var form validation.OrganizationForm
	if err := h.decode(r, &form); err != nil {
		h.writeError(w, r, err)
		return
	}
	org, err := h.backend(sess).UpdateOrganization(r.Context(), &domain.Organization{
		ID:    sess.OrganizationID,
		Name:  form.Name,
		Phone: form.Phone,
		Email: form.Email,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.record(r, sess, service.Change{
		Action:     domain.EventUpdated,
		Resource:   "organization",
		ResourceID: org.ID,
		Prefixes:   []string{orgKey(sess, "organization")},
	})
	writeData(w, http.StatusOK, org, nil, "Organization updated")
}

func (h *Handler) listMembers(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	var members []domain.TeamMember
	err := h.fetch(r, orgKey(sess, "members"), 0, &members, func(ctx context.Context) (any, error) {
		return h.backend(sess).ListMembers(ctx)
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, members, nil)
}

func (h *Handler) inviteMember(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	var form validation.InviteMemberForm
	if err := h.decode(r, &form); err != nil {
		h.writeError(w, r, err)
		return
	}
	member, err := h.backend(sess).InviteMember(r.Context(), apiclient.InviteMemberRequest{
		Name:  form.Name,
		Email: form.Email,
		Role:  domain.Role(form.Role),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.record(r, sess, service.Change{
		Action:     domain.EventCreated,
		Resource:   "member",
		ResourceID: member.ID,
		Prefixes:   []string{orgKey(sess, "members")},
	})
	writeData(w, http.StatusCreated, member, nil, "Invitation sent")
}

func (h *Handler) updateMemberRole(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var form validation.MemberRoleForm
	if err := h.decode(r, &form); err != nil {
		h.writeError(w, r, err)
		return
	}
	member, err := h.backend(sess).UpdateMemberRole(r.Context(), id, domain.Role(form.Role))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.record(r, sess, service.Change{
		Action:     domain.EventUpdated,
		Resource:   "member",
		ResourceID: id,
		Prefixes:   []string{orgKey(sess, "members")},
	})
	writeData(w, http.StatusOK, member, nil, "Role updated")
}

func (h *Handler) removeMember(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.backend(sess).RemoveMember(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.record(r, sess, service.Change{
		Action:     domain.EventDeleted,
		Resource:   "member",
		ResourceID: id,
		Prefixes:   []string{orgKey(sess, "members")},
	})
	writeMessage(w, http.StatusOK, "Member removed")
}

const (
	activityDays  = 7
	activityLimit = 100
)

// listActivity shows the dashboard's own audit trail of the last ?days= days.
func (h *Handler) listActivity(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	if sess.User.Role != domain.RoleOwner && sess.User.Role != domain.RoleAdmin {
		h.writeError(w, r, errForbidden)
		return
	}
	days := queryInt(r, "days")
	if days <= 0 || days > 90 {
		days = activityDays
	}
	entries := []domain.AuditEntry{}
	if h.Activity != nil {
		var err error
		entries, err = h.Activity.ListAudit(sess.OrganizationID, h.now().AddDate(0, 0, -days), activityLimit)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
	}
	writeData(w, http.StatusOK, entries, nil)
}
