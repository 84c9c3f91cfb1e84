package httpapi

import (
	"context"
	"net/http"

	"restodash/dashboard-svc/internal/domain"
	"restodash/dashboard-svc/internal/service"
	"restodash/dashboard-svc/internal/validation"
)

func (h *Handler) listQuestions(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	rid, err := pathInt(r, "rid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	chatType := domain.QuestionChatType(r.URL.Query().Get("chat_type"))
	switch chatType {
	case "", domain.QuestionMenu, domain.QuestionReservation:
	default:
		h.writeError(w, r, badRequest("unknown chat type %q", chatType))
		return
	}

	var questions []domain.Question
	err = h.fetch(r, restaurantKey(sess, rid, "questions", chatType), 0, &questions, func(ctx context.Context) (any, error) {
		return h.backend(sess).ListQuestions(ctx, rid, chatType)
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, questions, nil)
}

func (h *Handler) createQuestion(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	rid, err := pathInt(r, "rid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var form validation.QuestionForm
	if err := h.decode(r, &form); err != nil {
		h.writeError(w, r, err)
		return
	}
	q, err := h.backend(sess).CreateQuestion(r.Context(), &domain.Question{
		RestaurantID: rid,
		ChatType:     domain.QuestionChatType(form.ChatType),
		Text:         form.Text,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.questionsChanged(r, sess, domain.EventCreated, rid, q.ID)
	writeData(w, http.StatusCreated, q, nil, "Question created")
}

func (h *Handler) updateQuestion(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	rid, err := pathInt(r, "rid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	qid, err := pathInt(r, "qid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var form validation.QuestionForm
	if err := h.decode(r, &form); err != nil {
		h.writeError(w, r, err)
		return
	}
	q, err := h.backend(sess).UpdateQuestion(r.Context(), &domain.Question{
		ID:           qid,
		RestaurantID: rid,
		ChatType:     domain.QuestionChatType(form.ChatType),
		Text:         form.Text,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.questionsChanged(r, sess, domain.EventUpdated, rid, qid)
	writeData(w, http.StatusOK, q, nil, "Question updated")
}

func (h *Handler) deleteQuestion(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	rid, err := pathInt(r, "rid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	qid, err := pathInt(r, "qid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.backend(sess).DeleteQuestion(r.Context(), rid, qid); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.questionsChanged(r, sess, domain.EventDeleted, rid, qid)
	writeMessage(w, http.StatusOK, "Question deleted")
}

// reorderQuestions orders within one chat type, passed as ?chat_type=.
func (h *Handler) reorderQuestions(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	rid, err := pathInt(r, "rid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var form validation.ReorderForm
	if err := h.decode(r, &form); err != nil {
		h.writeError(w, r, err)
		return
	}
	chatType := domain.QuestionChatType(r.URL.Query().Get("chat_type"))
	questions, err := h.backend(sess).ListQuestions(r.Context(), rid, chatType)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	order := service.Reorder(service.QuestionSortItems(questions), form.IDs)
	if err := h.backend(sess).ReorderQuestions(r.Context(), rid, order); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.questionsChanged(r, sess, domain.EventUpdated, rid, 0)
	writeData(w, http.StatusOK, order, nil, "Order saved")
}

func (h *Handler) questionsChanged(r *http.Request, sess *domain.Session, action string, rid, id int) {
	h.record(r, sess, service.Change{
		Action:       action,
		Resource:     "question",
		ResourceID:   id,
		RestaurantID: rid,
		Prefixes:     []string{restaurantKey(sess, rid, "questions")},
	})
}
