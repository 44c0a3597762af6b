package budget

import "errors"

var (
	ErrTransactionNotFound       = errors.New("transaction not found")
	ErrCategoryNotFound          = errors.New("category not found")
	ErrSubCategoryNotFound       = errors.New("sub-category not found")
	ErrCircleNotFound            = errors.New("circle not found")
	ErrGoalNotFound              = errors.New("goal not found")
	ErrNotCircleAdmin            = errors.New("not circle admin")
	ErrCategoryNameTaken         = errors.New("category name already exists in circle")
	ErrInvalidAmount             = errors.New("invalid amount")
	ErrInvalidTransactionType    = errors.New("invalid transaction type")
	ErrInvalidRecurrenceUnit     = errors.New("invalid recurrence unit")
	ErrInvalidRecurrenceInterval = errors.New("invalid recurrence interval")
	ErrRecurrenceEndNotAfterDate = errors.New("recurrence end date not after transaction date")
	ErrTextTooLong               = errors.New("text too long")
	ErrInvalidName               = errors.New("invalid name")
	ErrInvalidDate               = errors.New("invalid date")
	ErrInvalidPeriod             = errors.New("invalid period")
)

// ValidationError carries a message safe to show next to a form field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}
