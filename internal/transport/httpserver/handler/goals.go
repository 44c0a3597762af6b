package handler

import (
	"context"
	"net/http"

	budgetdomain "budget-app-go/internal/domain/budget"
	"budget-app-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

func (h *Handlers) ListGoals(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	data, err := h.loadGoals(r.Context(), user)
	if err != nil {
		h.internalError(w, "goals.list: load page failed", err, "user_id", user.ID)
		return
	}
	h.render(w, http.StatusOK, "goals.html", data)
}

func (h *Handlers) CreateGoal(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form := goalForm{
		CategoryID:    formValue(r.PostForm, "category"),
		SubCategoryID: formValue(r.PostForm, "sub_category"),
		Amount:        formValue(r.PostForm, "amount"),
		PeriodType:    formValue(r.PostForm, "period_type"),
		Period:        formValue(r.PostForm, "period"),
	}
	errs := map[string]string{}
	amount, err := budgetdomain.ParseAmount(form.Amount)
	if err != nil {
		errs["amount"] = "Enter an amount between 0 and 99999999.99."
	}
	period, err := parseIntParam(form.Period, 0)
	if err != nil || period == 0 {
		errs["period"] = "Period must be a positive number."
	}

	var rejected *formError
	if len(errs) == 0 {
		_, err := h.Budget.CreateGoal(r.Context(), budgetdomain.GoalInput{
			UserID:        user.ID,
			CategoryID:    form.CategoryID,
			SubCategoryID: form.SubCategoryID,
			AmountCents:   amount,
			PeriodType:    budgetdomain.PeriodType(form.PeriodType),
			Period:        period,
		})
		if err == nil {
			redirect(w, r, "/goals")
			return
		}
		ferr, ok := classify(err)
		if !ok {
			h.internalError(w, "goals.create: create failed", err, "user_id", user.ID)
			return
		}
		h.log.BusinessError("goals.create: rejected", err, "user_id", user.ID)
		rejected = &ferr
	}

	data, err := h.loadGoals(r.Context(), user)
	if err != nil {
		h.internalError(w, "goals.create: load page failed", err, "user_id", user.ID)
		return
	}
	data.Form = form
	data.Errors = errs
	data.Message = correctErrorsMessage
	if rejected != nil {
		rejected.apply(&data.page)
	}
	h.render(w, http.StatusUnprocessableEntity, "goals.html", data)
}

func (h *Handlers) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	goalID := chi.URLParam(r, "id")

	if err := h.Budget.DeleteGoal(r.Context(), user.ID, goalID); err != nil {
		if isNotFound(err) {
			h.notFound(w, "goals.delete: goal not found", err, "user_id", user.ID, "goal_id", goalID)
			return
		}
		h.internalError(w, "goals.delete: delete failed", err, "user_id", user.ID, "goal_id", goalID)
		return
	}
	redirect(w, r, "/goals")
}

func (h *Handlers) loadGoals(ctx context.Context, user middleware.User) (goalsPage, error) {
	goals, err := h.Budget.ListGoals(ctx, user.ID)
	if err != nil {
		return goalsPage{}, err
	}
	choices, err := h.choices(ctx, user.ID)
	if err != nil {
		return goalsPage{}, err
	}
	return goalsPage{
		page:    newPage("Goals", &user),
		Goals:   goals,
		Choices: choices,
		Form:    goalForm{PeriodType: string(budgetdomain.PeriodFixed), Period: "1"},
	}, nil
}
