package handler

import (
	"strconv"

	budgetdomain "budget-app-go/internal/domain/budget"
	circlesdomain "budget-app-go/internal/domain/circles"
	"budget-app-go/internal/domain/palette"
	"budget-app-go/internal/transport/httpserver/middleware"
)

var recurrenceUnits = []budgetdomain.RecurrenceUnit{
	budgetdomain.UnitDays,
	budgetdomain.UnitWeeks,
	budgetdomain.UnitMonths,
	budgetdomain.UnitYears,
}

type page struct {
	Title   string
	User    *middleware.User
	Message string
	Errors  map[string]string
}

func newPage(title string, user *middleware.User) page {
	return page{Title: title, User: user, Errors: map[string]string{}}
}

type authPage struct {
	page
	Username     string
	Email        string
	DemoUsername string
}

type transactionForm struct {
	ID            string
	Type          string
	Amount        string
	Date          string
	CategoryID    string
	SubCategoryID string
	Description   string
	Comment       string
	Recurrence    bool
	Units         string
	Interval      string
	EndDate       string
}

type categoryForm struct {
	CircleID string
	Name     string
	Icon     string
	Color    string
}

type circleForm struct {
	Name  string
	Icon  string
	Color string
}

type goalForm struct {
	CategoryID    string
	SubCategoryID string
	Amount        string
	PeriodType    string
	Period        string
}

type indexPage struct {
	page
	Transactions []budgetdomain.TransactionView
	Upcoming     []budgetdomain.Occurrence
	Choices      []budgetdomain.CategoryChoice
	Circles      []circlesdomain.CircleWithMembers
	Form         transactionForm
	Category     categoryForm
	Units        []budgetdomain.RecurrenceUnit
	Colors       []palette.Choice
	Icons        []palette.Choice
	Next         string
}

type editPage struct {
	page
	Form    transactionForm
	Choices []budgetdomain.CategoryChoice
	Units   []budgetdomain.RecurrenceUnit
}

type categoriesPage struct {
	page
	Choices  []budgetdomain.CategoryChoice
	Circles  []circlesdomain.CircleWithMembers
	Category categoryForm
	Colors   []palette.Choice
	Icons    []palette.Choice
	Next     string
}

type circlesPage struct {
	page
	Circles []circlesdomain.CircleWithMembers
	Form    circleForm
	Colors  []palette.Choice
	Icons   []palette.Choice
}

type goalsPage struct {
	page
	Goals   []budgetdomain.GoalView
	Choices []budgetdomain.CategoryChoice
	Form    goalForm
}

func transactionFormFrom(tx *budgetdomain.Transaction) transactionForm {
	form := transactionForm{
		ID:          tx.ID,
		Type:        string(tx.Type),
		Amount:      budgetdomain.FormatAmount(tx.AmountCents),
		Date:        formatDate(tx.DateOfTransaction),
		CategoryID:  tx.CategoryID,
		Description: derefString(tx.Description),
		Comment:     derefString(tx.Comment),
		Recurrence:  tx.Recurrence,
		Units:       string(budgetdomain.DefaultRecurrenceUnit),
		Interval:    "1",
		EndDate:     formatDatePtr(tx.RecurrenceEndDate),
	}
	if tx.SubCategoryID != nil {
		form.SubCategoryID = *tx.SubCategoryID
	}
	if tx.UnitsOfRecurrence != nil {
		form.Units = string(*tx.UnitsOfRecurrence)
	}
	if tx.IntervalOfRecurrence != nil {
		form.Interval = strconv.Itoa(*tx.IntervalOfRecurrence)
	}
	return form
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
