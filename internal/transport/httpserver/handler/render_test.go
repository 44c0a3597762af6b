package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	budgetdomain "budget-app-go/internal/domain/budget"
	circlesdomain "budget-app-go/internal/domain/circles"
	"budget-app-go/internal/domain/palette"
	"budget-app-go/internal/transport/httpserver/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleChoices() []budgetdomain.CategoryChoice {
	return []budgetdomain.CategoryChoice{
		{
			Category:   budgetdomain.Category{ID: "cat-1", CircleID: "c-1", Name: "Groceries", Icon: "🍔", Color: "#3366FF"},
			CircleName: "Family",
			SubCategories: []budgetdomain.SubCategory{
				{ID: "sub-1", CategoryID: "cat-1", Name: "Market"},
			},
		},
		{
			Category:   budgetdomain.Category{ID: "cat-2", CircleID: "c-2", Name: "Miscellaneous", Icon: "🏠", Color: "#FF5733"},
			CircleName: "Personal",
		},
	}
}

func sampleCircles() []circlesdomain.CircleWithMembers {
	return []circlesdomain.CircleWithMembers{
		{
			Circle: circlesdomain.Circle{ID: "c-1", Name: "Family", AdminID: "u-1", Icon: "🏠", Color: "#33FF57"},
			Members: []circlesdomain.MemberProfile{
				{UserID: "u-1", Username: "alice"},
				{UserID: "u-2", Username: "bob"},
			},
		},
	}
}

func render(t *testing.T, name string, data any) string {
	t.Helper()
	views, err := NewRenderer()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, views.Render(rec, http.StatusOK, name, data))
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	return rec.Body.String()
}

func TestRenderIndex(t *testing.T) {
	user := &middleware.User{ID: "u-1", Username: "alice"}
	description := "Weekly shop"
	monthly := budgetdomain.UnitMonths
	interval := 2
	end := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	data := indexPage{
		page: newPage("Transactions", user),
		Transactions: []budgetdomain.TransactionView{{
			Transaction: budgetdomain.Transaction{
				ID:                   "tx-1",
				Type:                 budgetdomain.TypeExpense,
				DateOfTransaction:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
				AmountCents:          1250,
				Description:          &description,
				Recurrence:           true,
				UnitsOfRecurrence:    &monthly,
				IntervalOfRecurrence: &interval,
				RecurrenceEndDate:    &end,
			},
			CategoryName:    "Groceries",
			SubCategoryName: "Market",
			CircleName:      "Family",
		}},
		Upcoming: []budgetdomain.Occurrence{{TransactionID: "tx-1", Date: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), AmountCents: 1250, CategoryName: "Groceries"}},
		Choices:  sampleChoices(),
		Circles:  sampleCircles(),
		Form:     transactionForm{Type: "expense", CategoryID: "cat-1", Units: "months", Interval: "1"},
		Category: categoryForm{Icon: palette.DefaultIcon, Color: palette.DefaultColor},
		Units:    recurrenceUnits,
		Colors:   palette.Colors,
		Icons:    palette.Icons,
		Next:     "/",
	}
	data.Errors["amount"] = "Enter an amount between 0 and 99999999.99."

	body := render(t, "index.html", data)
	assert.Contains(t, body, "every 2 months until 2026-12-31")
	assert.Contains(t, body, "Weekly shop")
	assert.Contains(t, body, "-12.50")
	assert.Contains(t, body, `<optgroup label="Family">`)
	assert.Contains(t, body, `<option value="cat-1" selected>`)
	assert.Contains(t, body, `data-category="cat-1"`)
	assert.Contains(t, body, "Enter an amount between 0 and 99999999.99.")
	assert.Contains(t, body, "/transactions/tx-1/edit")
}

func TestRenderAuthPages(t *testing.T) {
	body := render(t, "login.html", authPage{page: newPage("Log in", nil), Username: "alice", DemoUsername: "demo"})
	assert.Contains(t, body, `value="alice"`)
	assert.Contains(t, body, "demo")
	assert.Contains(t, body, `href="/register"`)

	body = render(t, "register.html", authPage{page: page{Title: "Register", Message: "Passwords must match."}})
	assert.Contains(t, body, "Passwords must match.")
}

func TestRenderEditPage(t *testing.T) {
	user := &middleware.User{ID: "u-1", Username: "alice"}
	body := render(t, "edit_transaction.html", editPage{
		page:    newPage("Edit transaction", user),
		Form:    transactionForm{ID: "tx-9", Type: "income", Amount: "10.00", Recurrence: true, Units: "weeks"},
		Choices: sampleChoices(),
		Units:   recurrenceUnits,
	})
	assert.Contains(t, body, `action="/transactions/tx-9"`)
	assert.Contains(t, body, `<option value="weeks" selected>`)
}

func TestRenderCategoriesCirclesGoals(t *testing.T) {
	user := &middleware.User{ID: "u-2", Username: "bob"}

	body := render(t, "categories.html", categoriesPage{
		page:    newPage("Categories", user),
		Choices: sampleChoices(),
		Circles: sampleCircles(),
		Colors:  palette.Colors,
		Icons:   palette.Icons,
		Next:    "/categories",
	})
	assert.Contains(t, body, "/categories/cat-1/subcategories")
	assert.Contains(t, body, "/subcategories/sub-1/delete")

	body = render(t, "circles.html", circlesPage{
		page:    newPage("Circles", user),
		Circles: sampleCircles(),
		Colors:  palette.Colors,
		Icons:   palette.Icons,
	})
	assert.Contains(t, body, "/circles/c-1/members/u-2/delete")
	assert.Contains(t, body, "Leave")
	assert.NotContains(t, body, "/circles/c-1/delete", "only the admin sees delete")

	body = render(t, "goals.html", goalsPage{
		page: newPage("Goals", user),
		Goals: []budgetdomain.GoalView{{
			Goal:         budgetdomain.Goal{ID: "g-1", AmountCents: 40000, PeriodType: budgetdomain.PeriodRolling, Period: 30},
			CategoryName: "Groceries",
		}},
		Choices: sampleChoices(),
		Form:    goalForm{PeriodType: "fixed", Period: "1"},
	})
	assert.Contains(t, body, "400.00")
	assert.Contains(t, body, "/goals/g-1/delete")
}

func TestRenderUnknownTemplate(t *testing.T) {
	views, err := NewRenderer()
	require.NoError(t, err)
	assert.Error(t, views.Render(httptest.NewRecorder(), http.StatusOK, "missing.html", nil))
}

func TestDescribeRecurrence(t *testing.T) {
	days := budgetdomain.UnitDays
	one := 1

	assert.Empty(t, describeRecurrence(budgetdomain.Transaction{}))
	assert.Equal(t, "every month", describeRecurrence(budgetdomain.Transaction{Recurrence: true}))
	assert.Equal(t, "every day", describeRecurrence(budgetdomain.Transaction{Recurrence: true, UnitsOfRecurrence: &days, IntervalOfRecurrence: &one}))
}
