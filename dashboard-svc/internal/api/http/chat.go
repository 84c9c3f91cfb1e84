package httpapi

import (
	"context"
	"net/http"
	"time"

	"restodash/dashboard-svc/internal/apiclient"
	"restodash/dashboard-svc/internal/domain"
	"restodash/dashboard-svc/internal/service"
	"restodash/dashboard-svc/internal/validation"
)

type chatPage struct {
	Sessions []domain.ChatSession `json:"sessions"`
	Meta     *apiclient.Meta      `json:"meta"`
}

// listChats is polled by the dashboard; the short TTL bounds backend load.
func (h *Handler) listChats(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	rid, err := pathInt(r, "rid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	page := queryInt(r, "page")
	var out chatPage
	err = h.fetch(r, restaurantKey(sess, rid, "chats", page), h.TTL.ChatSessions, &out, func(ctx context.Context) (any, error) {
		sessions, meta, err := h.backend(sess).ListChatSessions(ctx, rid, page)
		if err != nil {
			return nil, err
		}
		return chatPage{Sessions: sessions, Meta: meta}, nil
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, out.Sessions, out.Meta)
}

func (h *Handler) getChat(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	sid, err := pathInt(r, "sid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	chat, err := h.cachedChat(r, sess, sid)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, chat, nil)
}

func (h *Handler) listChatMessages(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	sid, err := pathInt(r, "sid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	messages, err := h.cachedMessages(r, sess, sid)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if after := queryInt(r, "after_id"); after > 0 {
		fresh := []domain.ChatMessage{}
		for _, m := range messages {
			if m.ID > after {
				fresh = append(fresh, m)
			}
		}
		messages = fresh
	}
	writeData(w, http.StatusOK, messages, nil)
}

// sendChatMessage posts as the restaurant, which also hands the chat to staff.
func (h *Handler) sendChatMessage(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	sid, err := pathInt(r, "sid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var form validation.ChatMessageForm
	if err := h.decode(r, &form); err != nil {
		h.writeError(w, r, err)
		return
	}
	chat, err := h.cachedChat(r, sess, sid)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	msg, err := h.backend(sess).SendChatMessage(r.Context(), sid, form.Content)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.Sessions.ClearAIOverride(r.Context(), sess, sid); err != nil {
		h.log.WithError(err).WithField("chat_id", sid).Warn("could not clear AI override")
	}
	h.chatChanged(r, sess, domain.EventCreated, "chat_message", chat.RestaurantID, sid, msg.ID)
	writeData(w, http.StatusCreated, msg, nil)
}

func (h *Handler) closeChat(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	sid, err := pathInt(r, "sid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	chat, err := h.cachedChat(r, sess, sid)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.backend(sess).CloseChatSession(r.Context(), sid); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.chatChanged(r, sess, domain.EventUpdated, "chat_session", chat.RestaurantID, sid, sid)
	writeMessage(w, http.StatusOK, "Chat closed")
}

func (h *Handler) chatHandoff(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	sid, err := pathInt(r, "sid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	state, err := h.handoffState(r, sess, sid)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, state, nil)
}

// enableAI hands the chat back to the bot. The flag lives only in the dashboard session.
func (h *Handler) enableAI(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	sid, err := pathInt(r, "sid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.Sessions.EnableAI(r.Context(), sess, sid); err != nil {
		h.writeError(w, r, err)
		return
	}
	state, err := h.handoffState(r, sess, sid)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, state, nil, "AI assistant enabled")
}

func (h *Handler) handoffState(r *http.Request, sess *domain.Session, sid int) (service.HandoffState, error) {
	messages, err := h.cachedMessages(r, sess, sid)
	if err != nil {
		return service.HandoffState{}, err
	}

	var enabledAt *time.Time
	if at, ok := sess.AIOverrides[sid]; ok {
		if service.OverrideSuperseded(messages, at) {
			if err := h.Sessions.ClearAIOverride(r.Context(), sess, sid); err != nil {
				h.log.WithError(err).WithField("chat_id", sid).Warn("could not clear AI override")
			}
		} else {
			enabledAt = &at
		}
	}
	return service.Handoff(messages, enabledAt), nil
}

func (h *Handler) chatChanged(r *http.Request, sess *domain.Session, action, resource string, rid, sid, id int) {
	prefixes := []string{service.ChatPrefix(sess.OrganizationID, sid)}
	if rid > 0 {
		prefixes = append(prefixes, restaurantKey(sess, rid, "chats"))
	}
	h.record(r, sess, service.Change{
		Action:       action,
		Resource:     resource,
		ResourceID:   id,
		RestaurantID: rid,
		Prefixes:     prefixes,
	})
}
