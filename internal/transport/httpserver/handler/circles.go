package handler

import (
	"context"
	"net/http"

	circlesdomain "budget-app-go/internal/domain/circles"
	"budget-app-go/internal/domain/palette"
	"budget-app-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

func (h *Handlers) ListCircles(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	data, err := h.loadCircles(r.Context(), user)
	if err != nil {
		h.internalError(w, "circles.list: load page failed", err, "user_id", user.ID)
		return
	}
	h.render(w, http.StatusOK, "circles.html", data)
}

func (h *Handlers) CreateCircle(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form := circleForm{
		Name:  formValue(r.PostForm, "name"),
		Icon:  formValue(r.PostForm, "icon"),
		Color: formValue(r.PostForm, "color"),
	}
	_, err := h.Circles.Create(r.Context(), circlesdomain.CreateCircleInput{
		AdminID: user.ID,
		Name:    form.Name,
		Icon:    form.Icon,
		Color:   form.Color,
	})
	if err == nil {
		redirect(w, r, "/circles")
		return
	}

	ferr, ok := classify(err)
	if !ok {
		h.internalError(w, "circles.create: create failed", err, "user_id", user.ID)
		return
	}
	h.log.BusinessError("circles.create: rejected", err, "user_id", user.ID)

	data, err := h.loadCircles(r.Context(), user)
	if err != nil {
		h.internalError(w, "circles.create: load page failed", err, "user_id", user.ID)
		return
	}
	data.Form = form
	ferr.apply(&data.page)
	h.render(w, ferr.status, "circles.html", data)
}

func (h *Handlers) DeleteCircle(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	circleID := chi.URLParam(r, "id")

	if err := h.Circles.Delete(r.Context(), user.ID, circleID); err != nil {
		h.circlesError(w, r, user, "circles.delete", err, "circle_id", circleID)
		return
	}
	redirect(w, r, "/circles")
}

func (h *Handlers) AddMember(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	circleID := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	username := formValue(r.PostForm, "username")

	if _, err := h.Circles.AddMember(r.Context(), user.ID, circleID, username); err != nil {
		h.circlesError(w, r, user, "circles.add_member", err, "circle_id", circleID, "username", username)
		return
	}
	redirect(w, r, "/circles")
}

// RemoveMember lets the admin remove a member and a member leave.
func (h *Handlers) RemoveMember(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	circleID := chi.URLParam(r, "id")
	memberID := chi.URLParam(r, "user_id")

	if err := h.Circles.RemoveMember(r.Context(), user.ID, circleID, memberID); err != nil {
		h.circlesError(w, r, user, "circles.remove_member", err, "circle_id", circleID, "member_id", memberID)
		return
	}
	redirect(w, r, "/circles")
}

func (h *Handlers) circlesError(w http.ResponseWriter, r *http.Request, user middleware.User, action string, err error, args ...any) {
	args = append([]any{"user_id", user.ID}, args...)
	if isNotFound(err) {
		h.notFound(w, action+": not found", err, args...)
		return
	}
	ferr, ok := classify(err)
	if !ok {
		h.internalError(w, action+": failed", err, args...)
		return
	}
	h.log.BusinessError(action+": rejected", err, args...)

	data, loadErr := h.loadCircles(r.Context(), user)
	if loadErr != nil {
		h.internalError(w, action+": load page failed", loadErr, args...)
		return
	}
	data.Message = ferr.message
	h.render(w, ferr.status, "circles.html", data)
}

func (h *Handlers) loadCircles(ctx context.Context, user middleware.User) (circlesPage, error) {
	circles, err := h.Circles.ListForUser(ctx, user.ID)
	if err != nil {
		return circlesPage{}, err
	}
	return circlesPage{
		page:    newPage("Circles", &user),
		Circles: circles,
		Form:    circleForm{Icon: palette.DefaultIcon, Color: palette.DefaultColor},
		Colors:  palette.Colors,
		Icons:   palette.Icons,
	}, nil
}
