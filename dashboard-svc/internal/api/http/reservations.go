package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"restodash/dashboard-svc/internal/domain"
	"restodash/dashboard-svc/internal/service"
	"restodash/dashboard-svc/internal/validation"
)

// reservationView adds the status buttons the dashboard may show.
type reservationView struct {
	domain.Reservation
	AllowedTransitions []domain.ReservationStatus `json:"allowed_transitions"`
}

func viewReservation(res domain.Reservation) reservationView {
	return reservationView{Reservation: res, AllowedTransitions: service.AllowedTransitions(res.Status)}
}

func (h *Handler) listReservations(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	rid, err := pathInt(r, "rid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	from, to := r.URL.Query().Get("date_from"), r.URL.Query().Get("date_to")
	for _, d := range []string{from, to} {
		if _, err := time.Parse(service.DateLayout, d); d != "" && err != nil {
			h.writeError(w, r, badRequest("invalid date %q", d))
			return
		}
	}
	reservations, err := h.cachedReservations(r, sess, rid, from, to)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	views := make([]reservationView, 0, len(reservations))
	for _, res := range reservations {
		views = append(views, viewReservation(res))
	}
	writeData(w, http.StatusOK, views, nil)
}

func (h *Handler) getReservation(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	rid, err := pathInt(r, "rid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resid, err := pathInt(r, "resid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var res domain.Reservation
	err = h.fetch(r, restaurantKey(sess, rid, "reservations", "id", resid), 0, &res, func(ctx context.Context) (any, error) {
		return h.backend(sess).GetReservation(ctx, rid, resid)
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, viewReservation(res), nil)
}

func reservationFromForm(form validation.ReservationForm, rid int) *domain.Reservation {
	return &domain.Reservation{
		RestaurantID: rid,
		TableID:      form.TableID,
		GuestName:    form.GuestName,
		GuestPhone:   form.GuestPhone,
		GuestCount:   form.GuestCount,
		Date:         form.Date,
		StartTime:    form.StartTime,
		EndTime:      form.EndTime,
		Comment:      form.Comment,
	}
}

func (h *Handler) createReservation(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	rid, err := pathInt(r, "rid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var form validation.ReservationForm
	if err := h.decode(r, &form); err != nil {
		h.writeError(w, r, err)
		return
	}
	in := reservationFromForm(form, rid)
	in.Status = domain.ReservationPending
	res, err := h.backend(sess).CreateReservation(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.reservationsChanged(r, sess, domain.EventCreated, rid, res.ID)
	writeData(w, http.StatusCreated, viewReservation(*res), nil, "Reservation created")
}

func (h *Handler) updateReservation(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	rid, err := pathInt(r, "rid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resid, err := pathInt(r, "resid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var form validation.ReservationForm
	if err := h.decode(r, &form); err != nil {
		h.writeError(w, r, err)
		return
	}
	current, err := h.backend(sess).GetReservation(r.Context(), rid, resid)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	in := reservationFromForm(form, rid)
	in.ID = resid
	in.Status = current.Status
	res, err := h.backend(sess).UpdateReservation(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.reservationsChanged(r, sess, domain.EventUpdated, rid, resid)
	writeData(w, http.StatusOK, viewReservation(*res), nil, "Reservation updated")
}

// updateReservationStatus rejects transitions locally before the backend sees them.
func (h *Handler) updateReservationStatus(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	rid, err := pathInt(r, "rid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resid, err := pathInt(r, "resid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var form validation.ReservationStatusForm
	if err := h.decode(r, &form); err != nil {
		h.writeError(w, r, err)
		return
	}
	next, _ := service.ParseReservationStatus(form.Status)

	current, err := h.backend(sess).GetReservation(r.Context(), rid, resid)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := service.CheckTransition(current.Status, next); err != nil {
		h.writeError(w, r, err)
		return
	}

	res, err := h.backend(sess).UpdateReservationStatus(r.Context(), rid, resid, next)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.reservationsChanged(r, sess, domain.EventUpdated, rid, resid)
	writeData(w, http.StatusOK, viewReservation(*res), nil, "Reservation "+string(next))
}

func (h *Handler) deleteReservation(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	rid, err := pathInt(r, "rid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resid, err := pathInt(r, "resid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.backend(sess).DeleteReservation(r.Context(), rid, resid); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.reservationsChanged(r, sess, domain.EventDeleted, rid, resid)
	writeMessage(w, http.StatusOK, "Reservation deleted")
}

func (h *Handler) reservationWeek(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	rid, err := pathInt(r, "rid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	q := validation.WeekQuery{Start: r.URL.Query().Get("start")}
	if q.Start == "" {
		q.Start = h.now().Format(service.DateLayout)
	}
	if err := h.Validator.Struct(q); err != nil {
		h.writeError(w, r, err)
		return
	}
	start, _ := time.Parse(service.DateLayout, q.Start)
	end := start.AddDate(0, 0, 6).Format(service.DateLayout)

	tables, err := h.cachedTables(r, sess, rid)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	reservations, err := h.cachedReservations(r, sess, rid, q.Start, end)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, service.WeekGrid(start, tables, reservations), nil)
}

func (h *Handler) availability(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	rid, err := pathInt(r, "rid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	guests, _ := strconv.Atoi(r.URL.Query().Get("guests"))
	q := validation.AvailabilityQuery{Date: r.URL.Query().Get("date"), Guests: guests}
	if err := h.Validator.Struct(q); err != nil {
		h.writeError(w, r, err)
		return
	}

	rest, err := h.cachedRestaurant(r, sess, rid)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	tables, err := h.cachedTables(r, sess, rid)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	reservations, err := h.cachedReservations(r, sess, rid, q.Date, q.Date)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	slots, err := service.Availability(q.Date, q.Guests, *rest, tables, reservations, service.SlotOptions{Now: h.now()})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, slots, nil)
}

func (h *Handler) reservationsChanged(r *http.Request, sess *domain.Session, action string, rid, id int) {
	h.record(r, sess, service.Change{
		Action:       action,
		Resource:     "reservation",
		ResourceID:   id,
		RestaurantID: rid,
		Prefixes:     []string{restaurantKey(sess, rid, "reservations")},
	})
}
