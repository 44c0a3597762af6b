package handler

import (
	"errors"
	"net/http"

	budgetdomain "budget-app-go/internal/domain/budget"
	circlesdomain "budget-app-go/internal/domain/circles"
	"budget-app-go/internal/domain/palette"
	userdomain "budget-app-go/internal/domain/user"
)

// formError is an expected failure shown next to a form field.
type formError struct {
	status  int
	field   string
	message string
}

// classify maps domain errors to form errors. ok is false for errors that
// should surface as 500.
func classify(err error) (formError, bool) {
	var verr *budgetdomain.ValidationError
	if errors.As(err, &verr) {
		return formError{status: http.StatusUnprocessableEntity, field: verr.Field, message: verr.Message}, true
	}

	switch {
	case errors.Is(err, userdomain.ErrInvalidCredentials):
		return formError{http.StatusUnauthorized, "", "Invalid username and/or password."}, true
	case errors.Is(err, userdomain.ErrPasswordMismatch):
		return formError{http.StatusBadRequest, "confirmation", "Passwords must match."}, true
	case errors.Is(err, userdomain.ErrUsernameTaken):
		return formError{http.StatusBadRequest, "username", "Username already taken."}, true
	case errors.Is(err, userdomain.ErrInvalidUsername):
		return formError{http.StatusBadRequest, "username", "Use letters, digits and @/./+/-/_ only."}, true
	case errors.Is(err, userdomain.ErrPasswordTooShort):
		return formError{http.StatusBadRequest, "password", "Password is too short."}, true

	case errors.Is(err, budgetdomain.ErrCategoryNotFound):
		return formError{http.StatusUnprocessableEntity, "category", "Select a valid category."}, true
	case errors.Is(err, budgetdomain.ErrSubCategoryNotFound):
		return formError{http.StatusUnprocessableEntity, "sub_category", "Select a sub-category of the chosen category."}, true
	case errors.Is(err, budgetdomain.ErrCircleNotFound), errors.Is(err, circlesdomain.ErrCircleNotFound):
		return formError{http.StatusUnprocessableEntity, "circle", "Select one of your circles."}, true
	case errors.Is(err, budgetdomain.ErrCategoryNameTaken):
		return formError{http.StatusUnprocessableEntity, "name", "A category with this name already exists in the circle."}, true
	case errors.Is(err, budgetdomain.ErrInvalidName), errors.Is(err, circlesdomain.ErrInvalidCircleName):
		return formError{http.StatusUnprocessableEntity, "name", "Enter a name of at most 100 characters."}, true
	case errors.Is(err, budgetdomain.ErrInvalidAmount):
		return formError{http.StatusUnprocessableEntity, "amount", "Enter an amount between 0 and 99999999.99."}, true
	case errors.Is(err, budgetdomain.ErrInvalidPeriod):
		return formError{http.StatusUnprocessableEntity, "period", "Enter a positive period and a fixed or rolling type."}, true
	case errors.Is(err, palette.ErrInvalidColor):
		return formError{http.StatusUnprocessableEntity, "color", "Pick one of the listed colors."}, true
	case errors.Is(err, palette.ErrInvalidIcon):
		return formError{http.StatusUnprocessableEntity, "icon", "Use a single emoji."}, true

	case errors.Is(err, circlesdomain.ErrUserNotFound):
		return formError{http.StatusUnprocessableEntity, "username", "No user with that username."}, true
	case errors.Is(err, circlesdomain.ErrAlreadyMember):
		return formError{http.StatusUnprocessableEntity, "username", "That user is already a member."}, true
	case errors.Is(err, circlesdomain.ErrNotAdmin), errors.Is(err, budgetdomain.ErrNotCircleAdmin):
		return formError{http.StatusForbidden, "", "Only the circle admin can do that."}, true
	case errors.Is(err, circlesdomain.ErrCannotRemoveAdmin):
		return formError{http.StatusUnprocessableEntity, "", "The circle admin cannot be removed."}, true
	}
	return formError{}, false
}

// isNotFound covers lookups of records that are missing or not visible to
// the current user.
func isNotFound(err error) bool {
	return errors.Is(err, budgetdomain.ErrTransactionNotFound) ||
		errors.Is(err, budgetdomain.ErrGoalNotFound) ||
		errors.Is(err, circlesdomain.ErrCircleNotFound) ||
		errors.Is(err, circlesdomain.ErrMemberNotFound)
}

func (f formError) apply(p *page) {
	if f.field == "" {
		p.Message = f.message
		return
	}
	if p.Errors == nil {
		p.Errors = map[string]string{}
	}
	p.Errors[f.field] = f.message
}
