package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"restodash/dashboard-svc/internal/apiclient"
	"restodash/dashboard-svc/internal/service"
	"restodash/dashboard-svc/internal/validation"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const loginPath = "/login"

// Envelope mirrors the backend response shape so the browser decodes both the same way.
type Envelope struct {
	Code     int         `json:"code"`
	Messages []string    `json:"messages"`
	Data     interface{} `json:"data"`
	Meta     interface{} `json:"meta,omitempty"`
}

type redirectMeta struct {
	Redirect string `json:"redirect"`
}

var (
	errBadRequest = errors.New("bad request")
	errNotFound   = errors.New("not found")
)

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

func writeJSON(w http.ResponseWriter, status int, env Envelope) {
	if env.Messages == nil {
		env.Messages = []string{}
	}
	env.Code = status
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(env)
}

func writeData(w http.ResponseWriter, status int, data interface{}, meta *apiclient.Meta, messages ...string) {
	env := Envelope{Data: data, Messages: messages}
	if meta != nil {
		env.Meta = meta
	}
	writeJSON(w, status, env)
}

func writeMessage(w http.ResponseWriter, status int, messages ...string) {
	writeJSON(w, status, Envelope{Messages: messages})
}

// writeError maps every failure to one dashboard response and logs it once.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	messages := []string{"Something went wrong. Please try again later."}
	var meta interface{}
	var kind string

	var apiErr *apiclient.Error
	var fieldErrs validation.Errors
	switch {
	case errors.As(err, &fieldErrs):
		status, kind = http.StatusUnprocessableEntity, "validation"
		messages = fieldErrs.Messages()
	case errors.As(err, &apiErr):
		kind = string(apiErr.Kind)
		messages = []string{apiErr.UserMessage()}
		switch apiErr.Kind {
		case apiclient.KindValidation:
			status = http.StatusUnprocessableEntity
			if len(apiErr.Messages) > 0 {
				messages = apiErr.Messages
			}
		case apiclient.KindUnauthorized:
			status = http.StatusUnauthorized
			meta = redirectMeta{Redirect: loginPath}
			h.dropSession(r)
		case apiclient.KindForbidden:
			status = http.StatusForbidden
		case apiclient.KindNotFound:
			status = http.StatusNotFound
		default:
			status = http.StatusBadGateway
		}
	case errors.Is(err, service.ErrNoSession), errors.Is(err, service.ErrSessionExpired):
		status, kind = http.StatusUnauthorized, "unauthorized"
		messages = []string{"Your session has expired. Please sign in again."}
		meta = redirectMeta{Redirect: loginPath}
	case errors.Is(err, errForbidden):
		status, kind = http.StatusForbidden, "forbidden"
		messages = []string{"You do not have permission to do this."}
	case errors.Is(err, service.ErrInvalidTransition), errors.Is(err, service.ErrUnknownLanguage), errors.Is(err, service.ErrInvalidDate):
		status, kind = http.StatusUnprocessableEntity, "validation"
		messages = []string{err.Error()}
	case errors.Is(err, errNotFound):
		status, kind = http.StatusNotFound, "not_found"
		messages = []string{"The requested item was not found."}
	case errors.Is(err, errBadRequest):
		status, kind = http.StatusBadRequest, "validation"
		messages = []string{err.Error()}
	}

	entry := h.log.WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"status": status,
		"kind":   kind,
	}).WithError(err)
	if status >= 500 {
		entry.Error("request failed")
	} else {
		entry.Debug("request rejected")
	}

	writeJSON(w, status, Envelope{Messages: messages, Meta: meta})
}

// decode reads a JSON body and runs the form rules on it.
func (h *Handler) decode(r *http.Request, form any) error {
	if err := json.NewDecoder(r.Body).Decode(form); err != nil {
		return badRequest("invalid JSON: %v", err)
	}
	return h.Validator.Struct(form)
}

func pathInt(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || id <= 0 {
		return 0, badRequest("invalid %s", name)
	}
	return id, nil
}

func queryInt(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v < 0 {
		return 0
	}
	return v
}
