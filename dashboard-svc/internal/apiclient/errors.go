package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

type Kind string

const (
	KindNetwork      Kind = "network"
	KindValidation   Kind = "validation"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindServer       Kind = "server"
)

var defaultMessages = map[Kind]string{
	KindNetwork:      "Could not reach the server. Check your connection and try again.",
	KindValidation:   "Some fields are invalid.",
	KindUnauthorized: "Your session has expired. Please sign in again.",
	KindForbidden:    "You do not have permission to do this.",
	KindNotFound:     "The requested item was not found.",
	KindServer:       "Something went wrong on the server. Please try again later.",
}

// Error is a classified backend failure.
type Error struct {
	Kind     Kind
	Status   int
	Messages []string
	Err      error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (%d)", msg, e.Status)
	}
	if len(e.Messages) > 0 {
		msg += ": " + strings.Join(e.Messages, "; ")
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return "backend " + msg
}

func (e *Error) Unwrap() error { return e.Err }

// UserMessage is the text to show in a toast.
func (e *Error) UserMessage() string {
	if len(e.Messages) > 0 && e.Messages[0] != "" {
		return e.Messages[0]
	}
	return defaultMessages[e.Kind]
}

// Classify maps an HTTP status to an error kind.
func Classify(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return KindValidation
	case status == http.StatusNotFound:
		return KindNotFound
	default:
		return KindServer
	}
}

func errorFromResponse(status int, body []byte) *Error {
	apiErr := &Error{Kind: Classify(status), Status: status}
	var env Envelope
	if err := json.Unmarshal(body, &env); err == nil {
		apiErr.Messages = env.Messages
	}
	return apiErr
}

// KindOf returns the kind of a backend error, or "" for other errors.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}

func IsUnauthorized(err error) bool { return KindOf(err) == KindUnauthorized }

func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// Messages accepts a single string, a list of strings, or a field -> messages object.
type Messages []string

func (m *Messages) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*m = list
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*m = nil
		} else {
			*m = Messages{single}
		}
		return nil
	}

	var byField map[string]json.RawMessage
	if err := json.Unmarshal(data, &byField); err != nil {
		// null and unexpected shapes carry no usable text
		*m = nil
		return nil
	}
	fields := make([]string, 0, len(byField))
	for field := range byField {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var out Messages
	for _, field := range fields {
		var nested Messages
		if err := nested.UnmarshalJSON(byField[field]); err == nil {
			out = append(out, nested...)
		}
	}
	*m = out
	return nil
}
