package httpapi

import (
	"context"
	"net/http"
	"strconv"

	"restodash/dashboard-svc/internal/domain"
	"restodash/dashboard-svc/internal/service"
	"restodash/dashboard-svc/internal/validation"
)

func (h *Handler) listRestaurants(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	var restaurants []domain.Restaurant
	err := h.fetch(r, orgKey(sess, "restaurants"), 0, &restaurants, func(ctx context.Context) (any, error) {
		return h.backend(sess).ListRestaurants(ctx)
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, restaurants, nil)
}

func (h *Handler) createRestaurant(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	var form validation.RestaurantForm
	if err := h.decode(r, &form); err != nil {
		h.writeError(w, r, err)
		return
	}
	rest, err := h.backend(sess).CreateRestaurant(r.Context(), &domain.Restaurant{
		OrganizationID: sess.OrganizationID,
		Name:           form.Name,
		Address:        form.Address,
		Phone:          form.Phone,
		Description:    form.Description,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.record(r, sess, service.Change{
		Action:       domain.EventCreated,
		Resource:     "restaurant",
		ResourceID:   rest.ID,
		RestaurantID: rest.ID,
		Prefixes:     []string{orgKey(sess, "restaurants")},
	})
	writeData(w, http.StatusCreated, rest, nil, "Restaurant created")
}

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	rid, err := pathInt(r, "rid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	rest, err := h.cachedRestaurant(r, sess, rid)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, rest, nil)
}

func (h *Handler) updateRestaurant(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	rid, err := pathInt(r, "rid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var form validation.RestaurantForm
	if err := h.decode(r, &form); err != nil {
		h.writeError(w, r, err)
		return
	}
	current, err := h.backend(sess).GetRestaurant(r.Context(), rid)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	current.Name = form.Name
	current.Address = form.Address
	current.Phone = form.Phone
	current.Description = form.Description

	rest, err := h.backend(sess).UpdateRestaurant(r.Context(), current)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.restaurantChanged(r, sess, domain.EventUpdated, rest.ID)
	writeData(w, http.StatusOK, rest, nil, "Restaurant updated")
}

func (h *Handler) deleteRestaurant(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	rid, err := pathInt(r, "rid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.backend(sess).DeleteRestaurant(r.Context(), rid); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.record(r, sess, service.Change{
		Action:       domain.EventDeleted,
		Resource:     "restaurant",
		ResourceID:   rid,
		RestaurantID: rid,
		Prefixes:     []string{orgKey(sess, "restaurants"), service.RestaurantPrefix(sess.OrganizationID, rid)},
	})
	h.QR.Forget(rid, 0)
	if sess.SelectedRestaurantID == rid {
		if err := h.Sessions.SelectRestaurant(r.Context(), sess, 0); err != nil {
			h.log.WithError(err).Warn("could not clear selected restaurant")
		}
	}
	writeMessage(w, http.StatusOK, "Restaurant deleted")
}

func (h *Handler) updateWorkingHours(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	rid, err := pathInt(r, "rid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var form validation.WorkingHoursForm
	if err := h.decode(r, &form); err != nil {
		h.writeError(w, r, err)
		return
	}
	hours := make([]domain.WorkingHour, 0, len(form.Hours))
	for _, wh := range form.Hours {
		hour := domain.WorkingHour{DayOfWeek: wh.DayOfWeek, IsClosed: wh.IsClosed}
		if !wh.IsClosed {
			hour.OpenTime = wh.OpenTime
			hour.CloseTime = wh.CloseTime
		}
		hours = append(hours, hour)
	}

	saved, err := h.backend(sess).UpdateWorkingHours(r.Context(), rid, hours)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.restaurantChanged(r, sess, domain.EventUpdated, rid)
	writeData(w, http.StatusOK, saved, nil, "Working hours saved")
}

func (h *Handler) uploadRestaurantImage(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	rid, err := pathInt(r, "rid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	current, err := h.backend(sess).GetRestaurant(r.Context(), rid)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	imageURL, err := h.receiveImage(r, "restaurant_"+strconv.Itoa(rid))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	current.ImageURL = imageURL
	rest, err := h.backend(sess).UpdateRestaurant(r.Context(), current)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.restaurantChanged(r, sess, domain.EventUpdated, rid)
	writeData(w, http.StatusOK, rest, nil, "Image uploaded successfully")
}

func (h *Handler) restaurantQRCode(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	rid, err := pathInt(r, "rid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if _, err := h.ownedRestaurant(r, sess, rid); err != nil {
		h.writeError(w, r, err)
		return
	}
	image, err := h.QR.RestaurantCode(r.Context(), h.backend(sess), rid)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writePNG(w, image)
}

func (h *Handler) restaurantChanged(r *http.Request, sess *domain.Session, action string, rid int) {
	h.record(r, sess, service.Change{
		Action:       action,
		Resource:     "restaurant",
		ResourceID:   rid,
		RestaurantID: rid,
		Prefixes:     []string{orgKey(sess, "restaurants"), restaurantKey(sess, rid, "detail")},
	})
}
