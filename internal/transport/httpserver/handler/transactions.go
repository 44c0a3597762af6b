package handler

import (
	"context"
	"net/http"

	budgetdomain "budget-app-go/internal/domain/budget"
	"budget-app-go/internal/domain/palette"
	"budget-app-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

const correctErrorsMessage = "Please correct the errors below."

// Index lists the user's transactions with the new-transaction and
// new-category forms.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	data, err := h.loadIndex(r.Context(), user)
	if err != nil {
		h.internalError(w, "transactions.index: load page failed", err, "user_id", user.ID)
		return
	}

	defaultCategory, err := h.Budget.DefaultCategory(r.Context(), user.ID)
	if err != nil {
		h.internalError(w, "transactions.index: default category failed", err, "user_id", user.ID)
		return
	}
	if defaultCategory != nil {
		data.Form.CategoryID = defaultCategory.ID
	}

	h.render(w, http.StatusOK, "index.html", data)
}

func (h *Handlers) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form, input, errs := parseTransactionForm(r.PostForm, user.ID)
	var rejected *formError
	if len(errs) == 0 {
		_, err := h.Budget.CreateTransaction(r.Context(), input)
		if err == nil {
			redirect(w, r, "/")
			return
		}
		ferr, ok := classify(err)
		if !ok {
			h.internalError(w, "transactions.create: create failed", err, "user_id", user.ID)
			return
		}
		h.log.BusinessError("transactions.create: rejected", err, "user_id", user.ID)
		rejected = &ferr
	}

	data, err := h.loadIndex(r.Context(), user)
	if err != nil {
		h.internalError(w, "transactions.create: load page failed", err, "user_id", user.ID)
		return
	}
	data.Form = form
	data.Errors = errs
	data.Message = correctErrorsMessage
	if rejected != nil {
		rejected.apply(&data.page)
	}
	h.render(w, http.StatusUnprocessableEntity, "index.html", data)
}

func (h *Handlers) EditTransaction(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	transactionID := chi.URLParam(r, "id")

	transaction, err := h.Budget.GetTransaction(r.Context(), user.ID, transactionID)
	if err != nil {
		if isNotFound(err) {
			h.notFound(w, "transactions.edit: transaction not found", err, "user_id", user.ID, "transaction_id", transactionID)
			return
		}
		h.internalError(w, "transactions.edit: get transaction failed", err, "user_id", user.ID, "transaction_id", transactionID)
		return
	}

	choices, err := h.choices(r.Context(), user.ID)
	if err != nil {
		h.internalError(w, "transactions.edit: list categories failed", err, "user_id", user.ID)
		return
	}

	h.render(w, http.StatusOK, "edit_transaction.html", editPage{
		page:    newPage("Edit transaction", &user),
		Form:    transactionFormFrom(transaction),
		Choices: choices,
		Units:   recurrenceUnits,
	})
}

func (h *Handlers) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	transactionID := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form, input, errs := parseTransactionForm(r.PostForm, user.ID)
	form.ID = transactionID
	var rejected *formError
	if len(errs) == 0 {
		_, err := h.Budget.UpdateTransaction(r.Context(), transactionID, input)
		if err == nil {
			redirect(w, r, "/")
			return
		}
		if isNotFound(err) {
			h.notFound(w, "transactions.update: transaction not found", err, "user_id", user.ID, "transaction_id", transactionID)
			return
		}
		ferr, ok := classify(err)
		if !ok {
			h.internalError(w, "transactions.update: update failed", err, "user_id", user.ID, "transaction_id", transactionID)
			return
		}
		h.log.BusinessError("transactions.update: rejected", err, "user_id", user.ID, "transaction_id", transactionID)
		rejected = &ferr
	}

	choices, err := h.choices(r.Context(), user.ID)
	if err != nil {
		h.internalError(w, "transactions.update: list categories failed", err, "user_id", user.ID)
		return
	}

	data := editPage{
		page:    newPage("Edit transaction", &user),
		Form:    form,
		Choices: choices,
		Units:   recurrenceUnits,
	}
	data.Errors = errs
	data.Message = correctErrorsMessage
	if rejected != nil {
		rejected.apply(&data.page)
	}
	h.render(w, http.StatusUnprocessableEntity, "edit_transaction.html", data)
}

func (h *Handlers) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	transactionID := chi.URLParam(r, "id")

	if err := h.Budget.DeleteTransaction(r.Context(), user.ID, transactionID); err != nil {
		if isNotFound(err) {
			h.notFound(w, "transactions.delete: transaction not found", err, "user_id", user.ID, "transaction_id", transactionID)
			return
		}
		h.internalError(w, "transactions.delete: delete failed", err, "user_id", user.ID, "transaction_id", transactionID)
		return
	}
	redirect(w, r, "/")
}

func (h *Handlers) loadIndex(ctx context.Context, user middleware.User) (indexPage, error) {
	transactions, err := h.Budget.ListTransactions(ctx, user.ID)
	if err != nil {
		return indexPage{}, err
	}
	upcoming, err := h.Budget.UpcomingOccurrences(ctx, user.ID, h.upcomingDays)
	if err != nil {
		return indexPage{}, err
	}
	choices, err := h.choices(ctx, user.ID)
	if err != nil {
		return indexPage{}, err
	}
	circles, err := h.Circles.ListForUser(ctx, user.ID)
	if err != nil {
		return indexPage{}, err
	}

	return indexPage{
		page:         newPage("Transactions", &user),
		Transactions: transactions,
		Upcoming:     upcoming,
		Choices:      choices,
		Circles:      circles,
		Form: transactionForm{
			Type:     string(budgetdomain.TypeExpense),
			Date:     formatDate(h.Budget.Today()),
			Units:    string(budgetdomain.DefaultRecurrenceUnit),
			Interval: "1",
		},
		Category: categoryForm{Icon: palette.DefaultIcon, Color: palette.DefaultColor},
		Units:    recurrenceUnits,
		Colors:   palette.Colors,
		Icons:    palette.Icons,
		Next:     "/",
	}, nil
}

func (h *Handlers) choices(ctx context.Context, userID string) ([]budgetdomain.CategoryChoice, error) {
	choices, err := h.Budget.CategoryChoices(ctx, userID)
	if err != nil {
		return nil, err
	}
	return budgetdomain.GroupByCircle(choices), nil
}

// parseTransactionForm collects field errors for values that cannot be
// parsed. Domain validation happens in the service.
func parseTransactionForm(values map[string][]string, authorID string) (transactionForm, budgetdomain.TransactionInput, map[string]string) {
	form := transactionForm{
		Type:          formValue(values, "type"),
		Amount:        formValue(values, "amount"),
		Date:          formValue(values, "date_of_transaction"),
		CategoryID:    formValue(values, "category"),
		SubCategoryID: formValue(values, "sub_category"),
		Description:   formValue(values, "description"),
		Comment:       formValue(values, "comment"),
		Recurrence:    isChecked(formValue(values, "recurrence")),
		Units:         formValue(values, "units_of_recurrence"),
		Interval:      formValue(values, "interval_of_recurrence"),
		EndDate:       formValue(values, "recurrence_end_date"),
	}
	input := budgetdomain.TransactionInput{
		AuthorID:          authorID,
		CategoryID:        form.CategoryID,
		SubCategoryID:     form.SubCategoryID,
		Type:              budgetdomain.TransactionType(form.Type),
		Description:       form.Description,
		Comment:           form.Comment,
		Recurrence:        form.Recurrence,
		UnitsOfRecurrence: budgetdomain.RecurrenceUnit(form.Units),
	}
	errs := map[string]string{}

	amount, err := budgetdomain.ParseAmount(form.Amount)
	if err != nil {
		errs["amount"] = "Enter an amount between 0 and 99999999.99."
	}
	input.AmountCents = amount

	date, err := parseDateRequired(form.Date)
	if err != nil {
		errs["date_of_transaction"] = "Enter a valid date."
	}
	input.DateOfTransaction = date

	interval, err := parseIntParam(form.Interval, budgetdomain.DefaultRecurrenceInterval)
	if err != nil || interval == 0 {
		errs["interval_of_recurrence"] = "Interval must be a positive number."
	}
	input.IntervalOfRecurrence = interval

	endDate, err := parseDateParam(form.EndDate)
	if err != nil {
		errs["recurrence_end_date"] = "Enter a valid date."
	}
	input.RecurrenceEndDate = endDate

	return form, input, errs
}

func isChecked(value string) bool {
	switch value {
	case "true", "on", "1":
		return true
	default:
		return false
	}
}
