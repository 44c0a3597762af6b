package budget_test

import (
	"context"
	"testing"
	"time"

	"budget-app-go/internal/db/dbtest"
	budgetdomain "budget-app-go/internal/domain/budget"
	budgetstore "budget-app-go/internal/repository/sqlstore/budget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var today = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// seed builds two circles: Family (admin u-1, member u-2) and Other (admin u-3).
func seed(t *testing.T) *gorm.DB {
	t.Helper()
	gormDB := dbtest.NewSQLite(t)
	dbtest.InsertUser(t, gormDB, "u-1", "alice")
	dbtest.InsertUser(t, gormDB, "u-2", "bob")
	dbtest.InsertUser(t, gormDB, "u-3", "carol")

	statements := []string{
		"INSERT INTO circles (id, name, admin_id, icon, color) VALUES ('c-family', 'Family', 'u-1', '🏠', '#FF5733')",
		"INSERT INTO circles (id, name, admin_id, icon, color) VALUES ('c-other', 'Other', 'u-3', '🏠', '#FF5733')",
		"INSERT INTO circle_members (circle_id, user_id) VALUES ('c-family', 'u-1'), ('c-family', 'u-2'), ('c-other', 'u-3')",
		"INSERT INTO categories (id, circle_id, name, icon, color) VALUES ('cat-food', 'c-family', 'Groceries', '🛒', '#FF5733')",
		"INSERT INTO categories (id, circle_id, name, icon, color) VALUES ('cat-rent', 'c-family', 'Housing', '🏠', '#33FF57')",
		"INSERT INTO categories (id, circle_id, name, icon, color) VALUES ('cat-hidden', 'c-other', 'Hidden', '🏠', '#FF5733')",
		"INSERT INTO sub_categories (id, category_id, name) VALUES ('sub-market', 'cat-food', 'Market')",
	}
	for _, statement := range statements {
		require.NoError(t, gormDB.Exec(statement).Error)
	}
	return gormDB
}

func newService(gormDB *gorm.DB) *budgetdomain.Service {
	return budgetdomain.NewService(budgetstore.New(gormDB)).
		WithClock(func() time.Time { return today }, time.UTC)
}

func TestTransactionRoundTrip(t *testing.T) {
	svc := newService(seed(t))
	ctx := context.Background()

	end := date(2026, 12, 1)
	created, err := svc.CreateTransaction(ctx, budgetdomain.TransactionInput{
		AuthorID:          "u-2",
		CategoryID:        "cat-food",
		SubCategoryID:     "sub-market",
		DateOfTransaction: date(2026, 3, 1),
		AmountCents:       1999,
		Description:       "Veg",
		Recurrence:        true,
		RecurrenceEndDate: &end,
	})
	require.NoError(t, err)

	views, err := svc.ListTransactions(ctx, "u-2")
	require.NoError(t, err)
	require.Len(t, views, 1)
	view := views[0]
	assert.Equal(t, created.ID, view.ID)
	assert.Equal(t, "Groceries", view.CategoryName)
	assert.Equal(t, "🛒", view.CategoryIcon)
	assert.Equal(t, "Family", view.CircleName)
	assert.Equal(t, "Market", view.SubCategoryName)
	assert.Equal(t, int64(1999), view.AmountCents)
	assert.True(t, view.DateOfTransaction.Equal(date(2026, 3, 1)))
	require.NotNil(t, view.RecurrenceEndDate)
	assert.True(t, view.RecurrenceEndDate.Equal(end))

	others, err := svc.ListTransactions(ctx, "u-1")
	require.NoError(t, err)
	assert.Empty(t, others, "transactions are author scoped")

	_, err = svc.GetTransaction(ctx, "u-1", created.ID)
	assert.ErrorIs(t, err, budgetdomain.ErrTransactionNotFound)
}

func TestUpdateTransactionClearsOptionalFields(t *testing.T) {
	svc := newService(seed(t))
	ctx := context.Background()

	input := budgetdomain.TransactionInput{
		AuthorID:          "u-1",
		CategoryID:        "cat-food",
		SubCategoryID:     "sub-market",
		DateOfTransaction: date(2026, 3, 1),
		AmountCents:       500,
		Comment:           "first",
	}
	created, err := svc.CreateTransaction(ctx, input)
	require.NoError(t, err)

	input.CategoryID = "cat-rent"
	input.SubCategoryID = ""
	input.Comment = ""
	input.AmountCents = 700
	_, err = svc.UpdateTransaction(ctx, created.ID, input)
	require.NoError(t, err)

	stored, err := svc.GetTransaction(ctx, "u-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "cat-rent", stored.CategoryID)
	assert.Nil(t, stored.SubCategoryID)
	assert.Nil(t, stored.Comment)
	assert.Equal(t, int64(700), stored.AmountCents)
}

func TestCategoryChoicesAreScopedByCircle(t *testing.T) {
	svc := newService(seed(t))
	ctx := context.Background()

	choices, err := svc.CategoryChoices(ctx, "u-2")
	require.NoError(t, err)
	require.Len(t, choices, 2)
	assert.Equal(t, "Groceries", choices[0].Name)
	assert.Equal(t, "Family", choices[0].CircleName)
	require.Len(t, choices[0].SubCategories, 1)
	assert.Equal(t, "Housing", choices[1].Name)

	choices, err = svc.CategoryChoices(ctx, "u-3")
	require.NoError(t, err)
	require.Len(t, choices, 1)
	assert.Equal(t, "Hidden", choices[0].Name)
}

func TestDefaultCategoryCountsAllAuthors(t *testing.T) {
	svc := newService(seed(t))
	ctx := context.Background()

	category, err := svc.DefaultCategory(ctx, "u-1")
	require.NoError(t, err)
	assert.Nil(t, category)

	for i, author := range []string{"u-1", "u-2", "u-2"} {
		_, err := svc.CreateTransaction(ctx, budgetdomain.TransactionInput{
			AuthorID:          author,
			CategoryID:        "cat-rent",
			DateOfTransaction: date(2026, 2, 1+i),
			AmountCents:       100,
		})
		require.NoError(t, err)
	}
	_, err = svc.CreateTransaction(ctx, budgetdomain.TransactionInput{
		AuthorID:          "u-1",
		CategoryID:        "cat-food",
		DateOfTransaction: date(2026, 2, 1),
		AmountCents:       100,
	})
	require.NoError(t, err)

	category, err = svc.DefaultCategory(ctx, "u-1")
	require.NoError(t, err)
	require.NotNil(t, category)
	assert.Equal(t, "cat-rent", category.ID)

	category, err = svc.DefaultCategory(ctx, "u-3")
	require.NoError(t, err)
	assert.Nil(t, category)
}

func TestDeleteSubCategoryKeepsTransactions(t *testing.T) {
	gormDB := seed(t)
	svc := newService(gormDB)
	ctx := context.Background()

	created, err := svc.CreateTransaction(ctx, budgetdomain.TransactionInput{
		AuthorID:          "u-1",
		CategoryID:        "cat-food",
		SubCategoryID:     "sub-market",
		DateOfTransaction: date(2026, 3, 1),
		AmountCents:       100,
	})
	require.NoError(t, err)
	_, err = svc.CreateGoal(ctx, budgetdomain.GoalInput{
		UserID:        "u-1",
		CategoryID:    "cat-food",
		SubCategoryID: "sub-market",
		AmountCents:   1000,
		PeriodType:    budgetdomain.PeriodFixed,
		Period:        1,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSubCategory(ctx, "u-2", "sub-market"))

	stored, err := svc.GetTransaction(ctx, "u-1", created.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.SubCategoryID)

	goals, err := svc.ListGoals(ctx, "u-1")
	require.NoError(t, err)
	assert.Empty(t, goals)
}

func TestDeleteCategoryCascades(t *testing.T) {
	gormDB := seed(t)
	svc := newService(gormDB)
	ctx := context.Background()

	_, err := svc.CreateTransaction(ctx, budgetdomain.TransactionInput{
		AuthorID:          "u-2",
		CategoryID:        "cat-food",
		DateOfTransaction: date(2026, 3, 1),
		AmountCents:       100,
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteCategory(ctx, "u-2", "cat-food"), budgetdomain.ErrNotCircleAdmin)
	require.NoError(t, svc.DeleteCategory(ctx, "u-1", "cat-food"))

	for _, table := range []string{"transactions", "sub_categories"} {
		var count int64
		require.NoError(t, gormDB.Table(table).Count(&count).Error)
		assert.Zero(t, count, table)
	}
}

func TestCreateCategoryUniquePerCircle(t *testing.T) {
	svc := newService(seed(t))
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, budgetdomain.CategoryInput{UserID: "u-2", CircleID: "c-family", Name: "Groceries"})
	assert.ErrorIs(t, err, budgetdomain.ErrCategoryNameTaken)

	_, err = svc.CreateCategory(ctx, budgetdomain.CategoryInput{UserID: "u-3", CircleID: "c-other", Name: "Groceries"})
	assert.NoError(t, err)

	_, err = svc.CreateCategory(ctx, budgetdomain.CategoryInput{UserID: "u-3", CircleID: "c-family", Name: "Sneaky"})
	assert.ErrorIs(t, err, budgetdomain.ErrCircleNotFound)
}

func TestStoreRejectsDuplicateCategoryName(t *testing.T) {
	gormDB := seed(t)
	store := budgetstore.New(gormDB)
	ctx := context.Background()

	err := store.CreateCategory(ctx, &budgetdomain.Category{ID: "cat-dup", CircleID: "c-family", Name: "Groceries", Icon: "🛒", Color: "#FF5733"})
	assert.ErrorIs(t, err, budgetdomain.ErrCategoryNameTaken)

	require.NoError(t, store.CreateCategory(ctx, &budgetdomain.Category{ID: "cat-other", CircleID: "c-other", Name: "Groceries", Icon: "🛒", Color: "#FF5733"}))

	var count int64
	require.NoError(t, gormDB.Model(&budgetdomain.Category{}).Where("circle_id = ? AND name = ?", "c-family", "Groceries").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpcomingOccurrencesFromStore(t *testing.T) {
	svc := newService(seed(t))
	ctx := context.Background()

	_, err := svc.CreateTransaction(ctx, budgetdomain.TransactionInput{
		AuthorID:          "u-1",
		CategoryID:        "cat-rent",
		DateOfTransaction: date(2026, 1, 12),
		AmountCents:       90000,
		Recurrence:        true,
	})
	require.NoError(t, err)

	upcoming, err := svc.UpcomingOccurrences(ctx, "u-1", 60)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.True(t, upcoming[0].Date.Equal(date(2026, 3, 12)))
	assert.True(t, upcoming[1].Date.Equal(date(2026, 4, 12)))
	assert.Equal(t, "Housing", upcoming[0].CategoryName)
}
