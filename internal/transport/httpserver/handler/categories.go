package handler

import (
	"context"
	"errors"
	"net/http"

	budgetdomain "budget-app-go/internal/domain/budget"
	"budget-app-go/internal/domain/palette"
	"budget-app-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	data, err := h.loadCategories(r.Context(), user)
	if err != nil {
		h.internalError(w, "categories.list: load page failed", err, "user_id", user.ID)
		return
	}
	h.render(w, http.StatusOK, "categories.html", data)
}

// CreateCategory is posted from both the categories page and the modal on
// the index page. next picks the page to return to.
func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form := categoryForm{
		CircleID: formValue(r.PostForm, "circle"),
		Name:     formValue(r.PostForm, "name"),
		Icon:     formValue(r.PostForm, "icon"),
		Color:    formValue(r.PostForm, "color"),
	}
	next := safeNext(formValue(r.PostForm, "next"), "/categories")

	_, err := h.Budget.CreateCategory(r.Context(), budgetdomain.CategoryInput{
		UserID:   user.ID,
		CircleID: form.CircleID,
		Name:     form.Name,
		Icon:     form.Icon,
		Color:    form.Color,
	})
	if err == nil {
		redirect(w, r, next)
		return
	}

	ferr, ok := classify(err)
	if !ok {
		h.internalError(w, "categories.create: create failed", err, "user_id", user.ID, "circle_id", form.CircleID)
		return
	}
	h.log.BusinessError("categories.create: rejected", err, "user_id", user.ID, "circle_id", form.CircleID)

	if next == "/" {
		data, err := h.loadIndex(r.Context(), user)
		if err != nil {
			h.internalError(w, "categories.create: load page failed", err, "user_id", user.ID)
			return
		}
		data.Category = form
		data.Message = "The category was not created: " + ferr.message
		ferr.apply(&data.page)
		h.render(w, ferr.status, "index.html", data)
		return
	}

	data, err := h.loadCategories(r.Context(), user)
	if err != nil {
		h.internalError(w, "categories.create: load page failed", err, "user_id", user.ID)
		return
	}
	data.Category = form
	ferr.apply(&data.page)
	h.render(w, ferr.status, "categories.html", data)
}

func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	categoryID := chi.URLParam(r, "id")

	err := h.Budget.DeleteCategory(r.Context(), user.ID, categoryID)
	if err != nil {
		if errors.Is(err, budgetdomain.ErrCategoryNotFound) {
			h.notFound(w, "categories.delete: category not found", err, "user_id", user.ID, "category_id", categoryID)
			return
		}
		h.categoriesError(w, r, user, "categories.delete", err, "category_id", categoryID)
		return
	}
	redirect(w, r, "/categories")
}

func (h *Handlers) CreateSubCategory(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	categoryID := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	_, err := h.Budget.CreateSubCategory(r.Context(), user.ID, categoryID, formValue(r.PostForm, "name"))
	if err != nil {
		if errors.Is(err, budgetdomain.ErrCategoryNotFound) {
			h.notFound(w, "subcategories.create: category not found", err, "user_id", user.ID, "category_id", categoryID)
			return
		}
		h.categoriesError(w, r, user, "subcategories.create", err, "category_id", categoryID)
		return
	}
	redirect(w, r, "/categories")
}

func (h *Handlers) DeleteSubCategory(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	subCategoryID := chi.URLParam(r, "id")

	err := h.Budget.DeleteSubCategory(r.Context(), user.ID, subCategoryID)
	if err != nil {
		if errors.Is(err, budgetdomain.ErrSubCategoryNotFound) {
			h.notFound(w, "subcategories.delete: sub-category not found", err, "user_id", user.ID, "sub_category_id", subCategoryID)
			return
		}
		h.internalError(w, "subcategories.delete: delete failed", err, "user_id", user.ID, "sub_category_id", subCategoryID)
		return
	}
	redirect(w, r, "/categories")
}

// categoriesError re-renders the categories page with the message of an
// expected failure.
func (h *Handlers) categoriesError(w http.ResponseWriter, r *http.Request, user middleware.User, action string, err error, args ...any) {
	args = append([]any{"user_id", user.ID}, args...)
	ferr, ok := classify(err)
	if !ok {
		h.internalError(w, action+": failed", err, args...)
		return
	}
	h.log.BusinessError(action+": rejected", err, args...)

	data, loadErr := h.loadCategories(r.Context(), user)
	if loadErr != nil {
		h.internalError(w, action+": load page failed", loadErr, args...)
		return
	}
	data.Message = ferr.message
	h.render(w, ferr.status, "categories.html", data)
}

func (h *Handlers) loadCategories(ctx context.Context, user middleware.User) (categoriesPage, error) {
	choices, err := h.choices(ctx, user.ID)
	if err != nil {
		return categoriesPage{}, err
	}
	circles, err := h.Circles.ListForUser(ctx, user.ID)
	if err != nil {
		return categoriesPage{}, err
	}
	return categoriesPage{
		page:     newPage("Categories", &user),
		Choices:  choices,
		Circles:  circles,
		Category: categoryForm{Icon: palette.DefaultIcon, Color: palette.DefaultColor},
		Colors:   palette.Colors,
		Icons:    palette.Icons,
		Next:     "/categories",
	}, nil
}
