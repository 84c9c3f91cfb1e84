package httpapi

import (
	"net/http"
	"time"

	"restodash/dashboard-svc/internal/apiclient"
	"restodash/dashboard-svc/internal/domain"
	"restodash/dashboard-svc/internal/service"
	"restodash/dashboard-svc/internal/validation"
)

// sessionView is what the browser keeps; Token is the dashboard bearer, never the
// backend token.
type sessionView struct {
	Token                string      `json:"token"`
	User                 domain.User `json:"user"`
	OrganizationID       int         `json:"organization_id"`
	SelectedRestaurantID int         `json:"selected_restaurant_id"`
	Language             string      `json:"language"`
	ExpiresAt            time.Time   `json:"expires_at"`
}

func viewOf(sess *domain.Session) sessionView {
	return sessionView{
		Token:                sess.ID,
		User:                 sess.User,
		OrganizationID:       sess.OrganizationID,
		SelectedRestaurantID: sess.SelectedRestaurantID,
		Language:             sess.Language,
		ExpiresAt:            sess.ExpiresAt,
	}
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var form validation.LoginForm
	if err := h.decode(r, &form); err != nil {
		h.writeError(w, r, err)
		return
	}
	sess, err := h.Sessions.Login(r.Context(), apiclient.LoginRequest{Email: form.Email, Password: form.Password}, form.Language)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, viewOf(sess), nil, "Signed in")
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var form validation.RegisterForm
	if err := h.decode(r, &form); err != nil {
		h.writeError(w, r, err)
		return
	}
	sess, err := h.Sessions.Register(r.Context(), apiclient.RegisterRequest{
		Name:                 form.Name,
		Email:                form.Email,
		Password:             form.Password,
		PasswordConfirmation: form.PasswordConfirmation,
		OrganizationName:     form.OrganizationName,
	}, form.Language)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, viewOf(sess), nil, "Account created")
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	if err := h.backend(sess).Logout(r.Context()); err != nil && !apiclient.IsUnauthorized(err) {
		h.log.WithError(err).WithField("user_id", sess.User.ID).Warn("backend logout failed")
	}
	if err := h.Sessions.Destroy(r.Context(), sess.ID); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Signed out")
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	user, err := h.backend(sess).Me(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.Sessions.SetUser(r.Context(), sess, *user); err != nil {
		h.log.WithError(err).WithField("user_id", user.ID).Warn("could not refresh session user")
	}
	writeData(w, http.StatusOK, user, nil)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	var form validation.ChangePasswordForm
	if err := h.decode(r, &form); err != nil {
		h.writeError(w, r, err)
		return
	}
	err := h.backend(sess).ChangePassword(r.Context(), apiclient.ChangePasswordRequest{
		CurrentPassword:      form.CurrentPassword,
		Password:             form.Password,
		PasswordConfirmation: form.PasswordConfirmation,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.record(r, sess, service.Change{Action: domain.EventUpdated, Resource: "password", ResourceID: sess.User.ID})
	writeMessage(w, http.StatusOK, "Password changed")
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	writeData(w, http.StatusOK, viewOf(sess), nil)
}

func (h *Handler) selectRestaurant(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	var form validation.SelectRestaurantForm
	if err := h.decode(r, &form); err != nil {
		h.writeError(w, r, err)
		return
	}
	// the backend answers 403/404 for restaurants outside the organization
	if _, err := h.cachedRestaurant(r, sess, form.RestaurantID); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.Sessions.SelectRestaurant(r.Context(), sess, form.RestaurantID); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, viewOf(sess), nil)
}

func (h *Handler) setLanguage(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	var form validation.LanguageForm
	if err := h.decode(r, &form); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.Sessions.SetLanguage(r.Context(), sess, form.Language); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, viewOf(sess), nil)
}
