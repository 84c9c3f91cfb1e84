package httpapi

import (
	"context"
	"net/http"
	"strconv"

	"restodash/dashboard-svc/internal/domain"
	"restodash/dashboard-svc/internal/service"
	"restodash/dashboard-svc/internal/validation"
)

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	rid, err := pathInt(r, "rid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var categories []domain.MenuCategory
	err = h.fetch(r, restaurantKey(sess, rid, "categories"), 0, &categories, func(ctx context.Context) (any, error) {
		return h.backend(sess).ListCategories(ctx, rid)
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, categories, nil)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	rid, err := pathInt(r, "rid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var form validation.CategoryForm
	if err := h.decode(r, &form); err != nil {
		h.writeError(w, r, err)
		return
	}
	cat, err := h.backend(sess).CreateCategory(r.Context(), &domain.MenuCategory{RestaurantID: rid, Name: form.Name})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.menuChanged(r, sess, domain.EventCreated, "category", rid, cat.ID)
	writeData(w, http.StatusCreated, cat, nil, "Category created")
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	rid, err := pathInt(r, "rid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	cid, err := pathInt(r, "cid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var form validation.CategoryForm
	if err := h.decode(r, &form); err != nil {
		h.writeError(w, r, err)
		return
	}
	cat, err := h.backend(sess).UpdateCategory(r.Context(), &domain.MenuCategory{ID: cid, RestaurantID: rid, Name: form.Name})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.menuChanged(r, sess, domain.EventUpdated, "category", rid, cid)
	writeData(w, http.StatusOK, cat, nil, "Category updated")
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	rid, err := pathInt(r, "rid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	cid, err := pathInt(r, "cid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.backend(sess).DeleteCategory(r.Context(), rid, cid); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.menuChanged(r, sess, domain.EventDeleted, "category", rid, cid)
	writeMessage(w, http.StatusOK, "Category deleted")
}

func (h *Handler) reorderCategories(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
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
	categories, err := h.backend(sess).ListCategories(r.Context(), rid)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	order := service.Reorder(service.CategorySortItems(categories), form.IDs)
	if err := h.backend(sess).ReorderCategories(r.Context(), rid, order); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.menuChanged(r, sess, domain.EventUpdated, "category", rid, 0)
	writeData(w, http.StatusOK, order, nil, "Order saved")
}

func (h *Handler) listDishes(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	rid, err := pathInt(r, "rid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	categoryID := queryInt(r, "category_id")
	var dishes []domain.Dish
	err = h.fetch(r, restaurantKey(sess, rid, "dishes", "category", categoryID), 0, &dishes, func(ctx context.Context) (any, error) {
		return h.backend(sess).ListDishes(ctx, rid, categoryID)
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, dishes, nil)
}

func (h *Handler) getDish(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	rid, err := pathInt(r, "rid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	did, err := pathInt(r, "did")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var dish domain.Dish
	err = h.fetch(r, restaurantKey(sess, rid, "dishes", "id", did), 0, &dish, func(ctx context.Context) (any, error) {
		return h.backend(sess).GetDish(ctx, rid, did)
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, dish, nil)
}

func dishFromForm(form validation.DishForm, rid int) *domain.Dish {
	dish := &domain.Dish{
		RestaurantID:  rid,
		CategoryID:    form.CategoryID,
		Name:          form.Name,
		Description:   form.Description,
		Price:         form.Price,
		Weight:        form.Weight,
		Calories:      form.Calories,
		Proteins:      form.Proteins,
		Fats:          form.Fats,
		Carbohydrates: form.Carbohydrates,
		IsAvailable:   true,
		Ingredients:   []domain.Ingredient{},
		Allergens:     []domain.Allergen{},
	}
	if form.IsAvailable != nil {
		dish.IsAvailable = *form.IsAvailable
	}
	for _, name := range form.Ingredients {
		dish.Ingredients = append(dish.Ingredients, domain.Ingredient{Name: name})
	}
	for _, name := range form.Allergens {
		dish.Allergens = append(dish.Allergens, domain.Allergen{Name: name})
	}
	return dish
}

func (h *Handler) createDish(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	rid, err := pathInt(r, "rid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var form validation.DishForm
	if err := h.decode(r, &form); err != nil {
		h.writeError(w, r, err)
		return
	}
	dish, err := h.backend(sess).CreateDish(r.Context(), dishFromForm(form, rid))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.menuChanged(r, sess, domain.EventCreated, "dish", rid, dish.ID)
	writeData(w, http.StatusCreated, dish, nil, "Dish created")
}

func (h *Handler) updateDish(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	rid, err := pathInt(r, "rid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	did, err := pathInt(r, "did")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var form validation.DishForm
	if err := h.decode(r, &form); err != nil {
		h.writeError(w, r, err)
		return
	}
	current, err := h.backend(sess).GetDish(r.Context(), rid, did)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	next := dishFromForm(form, rid)
	next.ID = did
	next.ImageURL = current.ImageURL
	next.SortOrder = current.SortOrder
	if form.IsAvailable == nil {
		next.IsAvailable = current.IsAvailable
	}

	dish, err := h.backend(sess).UpdateDish(r.Context(), next)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.menuChanged(r, sess, domain.EventUpdated, "dish", rid, did)
	writeData(w, http.StatusOK, dish, nil, "Dish updated")
}

func (h *Handler) deleteDish(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	rid, err := pathInt(r, "rid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	did, err := pathInt(r, "did")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.backend(sess).DeleteDish(r.Context(), rid, did); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.menuChanged(r, sess, domain.EventDeleted, "dish", rid, did)
	writeMessage(w, http.StatusOK, "Dish deleted")
}

func (h *Handler) setDishAvailability(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	rid, err := pathInt(r, "rid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	did, err := pathInt(r, "did")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var form validation.AvailabilityForm
	if err := h.decode(r, &form); err != nil {
		h.writeError(w, r, err)
		return
	}
	dish, err := h.backend(sess).SetDishAvailability(r.Context(), rid, did, *form.IsAvailable)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.menuChanged(r, sess, domain.EventUpdated, "dish", rid, did)
	writeData(w, http.StatusOK, dish, nil, "Availability updated")
}

func (h *Handler) uploadDishImage(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	rid, err := pathInt(r, "rid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	did, err := pathInt(r, "did")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	current, err := h.backend(sess).GetDish(r.Context(), rid, did)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	imageURL, err := h.receiveImage(r, "dish_"+strconv.Itoa(rid)+"_"+strconv.Itoa(did))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	current.ImageURL = imageURL
	dish, err := h.backend(sess).UpdateDish(r.Context(), current)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.menuChanged(r, sess, domain.EventUpdated, "dish", rid, did)
	writeData(w, http.StatusOK, dish, nil, "Image uploaded successfully")
}

// menuChanged drops dishes with categories since a category change affects dish lists.
func (h *Handler) menuChanged(r *http.Request, sess *domain.Session, action, resource string, rid, id int) {
	h.record(r, sess, service.Change{
		Action:       action,
		Resource:     resource,
		ResourceID:   id,
		RestaurantID: rid,
		Prefixes:     []string{restaurantKey(sess, rid, "categories"), restaurantKey(sess, rid, "dishes")},
	})
}
