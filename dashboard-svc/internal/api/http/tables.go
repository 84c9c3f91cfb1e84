package httpapi

import (
	"net/http"

	"restodash/dashboard-svc/internal/domain"
	"restodash/dashboard-svc/internal/service"
	"restodash/dashboard-svc/internal/validation"
)

func (h *Handler) listTables(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	rid, err := pathInt(r, "rid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	tables, err := h.cachedTables(r, sess, rid)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, tables, nil)
}

func (h *Handler) createTable(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	rid, err := pathInt(r, "rid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var form validation.TableForm
	if err := h.decode(r, &form); err != nil {
		h.writeError(w, r, err)
		return
	}
	table, err := h.backend(sess).CreateTable(r.Context(), &domain.Table{RestaurantID: rid, Name: form.Name, Capacity: form.Capacity})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.tablesChanged(r, sess, domain.EventCreated, rid, table.ID)
	writeData(w, http.StatusCreated, table, nil, "Table created")
}

func (h *Handler) updateTable(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	rid, err := pathInt(r, "rid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	tid, err := pathInt(r, "tid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var form validation.TableForm
	if err := h.decode(r, &form); err != nil {
		h.writeError(w, r, err)
		return
	}
	table, err := h.backend(sess).UpdateTable(r.Context(), &domain.Table{ID: tid, RestaurantID: rid, Name: form.Name, Capacity: form.Capacity})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.tablesChanged(r, sess, domain.EventUpdated, rid, tid)
	writeData(w, http.StatusOK, table, nil, "Table updated")
}

func (h *Handler) deleteTable(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	rid, err := pathInt(r, "rid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	tid, err := pathInt(r, "tid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.backend(sess).DeleteTable(r.Context(), rid, tid); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.QR.Forget(rid, tid)
	h.tablesChanged(r, sess, domain.EventDeleted, rid, tid)
	writeMessage(w, http.StatusOK, "Table deleted")
}

func (h *Handler) reorderTables(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
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
	tables, err := h.backend(sess).ListTables(r.Context(), rid)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	order := service.Reorder(service.TableSortItems(tables), form.IDs)
	if err := h.backend(sess).ReorderTables(r.Context(), rid, order); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.tablesChanged(r, sess, domain.EventUpdated, rid, 0)
	writeData(w, http.StatusOK, order, nil, "Order saved")
}

func (h *Handler) tableStatuses(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	rid, err := pathInt(r, "rid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	tables, err := h.cachedTables(r, sess, rid)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	now := h.now()
	today := now.Format(service.DateLayout)
	reservations, err := h.cachedReservations(r, sess, rid, today, today)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, service.TableStatuses(now, tables, reservations), nil)
}

func (h *Handler) tableQRCode(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	rid, err := pathInt(r, "rid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	tid, err := pathInt(r, "tid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.ownedTable(r, sess, rid, tid); err != nil {
		h.writeError(w, r, err)
		return
	}
	image, err := h.QR.TableCode(r.Context(), h.backend(sess), rid, tid)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writePNG(w, image)
}

func (h *Handler) tablesChanged(r *http.Request, sess *domain.Session, action string, rid, tid int) {
	h.record(r, sess, service.Change{
		Action:       action,
		Resource:     "table",
		ResourceID:   tid,
		RestaurantID: rid,
		Prefixes:     []string{restaurantKey(sess, rid, "tables")},
	})
}
