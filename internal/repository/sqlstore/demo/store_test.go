package demo_test

import (
	"context"
	"testing"
	"time"

	"budget-app-go/internal/db/dbtest"
	budgetdomain "budget-app-go/internal/domain/budget"
	demodomain "budget-app-go/internal/domain/demo"
	budgetstore "budget-app-go/internal/repository/sqlstore/budget"
	demostore "budget-app-go/internal/repository/sqlstore/demo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func count(t *testing.T, gormDB *gorm.DB, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, gormDB.Table(table).Count(&n).Error)
	return n
}

func TestResetAgainstSQLite(t *testing.T) {
	gormDB := dbtest.NewSQLite(t)
	dbtest.InsertUser(t, gormDB, "demo-id", "demo")
	dbtest.InsertUser(t, gormDB, "other-id", "other")
	require.NoError(t, gormDB.Exec("INSERT INTO circles (id, name, admin_id, icon, color) VALUES ('c-other', 'Neighbours', 'other-id', '🏠', '#FF5733')").Error)
	require.NoError(t, gormDB.Exec("INSERT INTO circle_members (circle_id, user_id) VALUES ('c-other', 'other-id'), ('c-other', 'demo-id')").Error)

	now := func() time.Time { return time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC) }
	svc := demodomain.NewService(demostore.New(gormDB), nil).WithClock(now, time.UTC)
	ctx := context.Background()

	first, err := svc.Reset(ctx, "demo-id")
	require.NoError(t, err)
	assert.Empty(t, first.Skipped)

	counts := map[string]int64{}
	for _, table := range []string{"circles", "categories", "sub_categories", "transactions"} {
		counts[table] = count(t, gormDB, table)
	}
	assert.Equal(t, int64(3), counts["circles"])
	assert.Equal(t, int64(first.Transactions), counts["transactions"])

	second, err := svc.Reset(ctx, "demo-id")
	require.NoError(t, err)
	assert.Equal(t, first.Transactions, second.Transactions)
	for table, want := range counts {
		assert.Equal(t, want, count(t, gormDB, table), table)
	}

	budget := budgetdomain.NewService(budgetstore.New(gormDB)).WithClock(now, time.UTC)
	views, err := budget.ListTransactions(ctx, "demo-id")
	require.NoError(t, err)
	require.NotEmpty(t, views)
	assert.True(t, views[0].DateOfTransaction.Equal(time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)))

	def, err := budget.DefaultCategory(ctx, "demo-id")
	require.NoError(t, err)
	require.NotNil(t, def)
	assert.Equal(t, "Groceries", def.Name)
}

func TestFindCategoryPrefersOwnCircles(t *testing.T) {
	gormDB := dbtest.NewSQLite(t)
	dbtest.InsertUser(t, gormDB, "demo-id", "demo")
	dbtest.InsertUser(t, gormDB, "other-id", "other")
	statements := []string{
		"INSERT INTO circles (id, name, admin_id, icon, color) VALUES ('c-mine', 'Mine', 'demo-id', '🏠', '#FF5733'), ('c-shared', 'Shared', 'other-id', '🏠', '#FF5733'), ('c-foreign', 'Foreign', 'other-id', '🏠', '#FF5733')",
		"INSERT INTO circle_members (circle_id, user_id) VALUES ('c-shared', 'demo-id')",
		"INSERT INTO categories (id, circle_id, name, icon, color) VALUES ('a-shared', 'c-shared', 'Pet', '🏠', '#FF5733'), ('b-mine', 'c-mine', 'Pet', '🏠', '#FF5733'), ('c-foreign-cat', 'c-foreign', 'Boat', '🏠', '#FF5733')",
	}
	for _, statement := range statements {
		require.NoError(t, gormDB.Exec(statement).Error)
	}
	store := demostore.New(gormDB)
	ctx := context.Background()

	category, err := store.FindCategoryByName(ctx, "demo-id", "Pet")
	require.NoError(t, err)
	assert.Equal(t, "b-mine", category.ID)

	_, err = store.FindCategoryByName(ctx, "demo-id", "Boat")
	assert.ErrorIs(t, err, budgetdomain.ErrCategoryNotFound)
}
