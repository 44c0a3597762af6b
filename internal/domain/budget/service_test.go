package budget

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

func newTestBudgetService(repo Repository) *Service {
	return NewService(repo).WithClock(func() time.Time { return fixedNow }, time.UTC)
}

func seededRepo() *fakeBudgetRepo {
	repo := newFakeBudgetRepo()
	repo.addCircle("c-family", "Family", "u-1", "u-2")
	repo.addCircle("c-other", "Other", "u-3")
	repo.addCategory("cat-food", "c-family", "Groceries")
	repo.addCategory("cat-rent", "c-family", "Housing")
	repo.addCategory("cat-hidden", "c-other", "Hidden")
	repo.subs["sub-market"] = &SubCategory{ID: "sub-market", CategoryID: "cat-food", Name: "Market"}
	return repo
}

func validInput() TransactionInput {
	return TransactionInput{
		AuthorID:          "u-1",
		CategoryID:        "cat-food",
		DateOfTransaction: date(2026, 3, 1),
		AmountCents:       1250,
		Description:       "  weekly shop ",
	}
}

func TestCreateTransactionAppliesDefaults(t *testing.T) {
	repo := seededRepo()
	svc := newTestBudgetService(repo)

	created, err := svc.CreateTransaction(context.Background(), validInput())
	require.NoError(t, err)

	stored := repo.transactions[created.ID]
	require.NotNil(t, stored)
	assert.Equal(t, TypeExpense, stored.Type)
	assert.Equal(t, date(2026, 3, 10), stored.DateOfUpdate)
	assert.Equal(t, "weekly shop", *stored.Description)
	assert.Nil(t, stored.Comment)
	assert.Equal(t, UnitMonths, *stored.UnitsOfRecurrence)
	assert.Equal(t, 1, *stored.IntervalOfRecurrence)
	assert.Nil(t, stored.SubCategoryID)
}

func TestCreateTransactionRejectsEndDateNotAfterDate(t *testing.T) {
	repo := seededRepo()
	svc := newTestBudgetService(repo)

	for _, end := range []time.Time{date(2026, 3, 1), date(2026, 2, 28)} {
		input := validInput()
		input.Recurrence = true
		input.RecurrenceEndDate = &end

		_, err := svc.CreateTransaction(context.Background(), input)
		assert.ErrorIs(t, err, ErrRecurrenceEndNotAfterDate)
	}
	assert.Empty(t, repo.transactions, "nothing persisted")
}

func TestCreateTransactionValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*TransactionInput)
		want   error
	}{
		{"negative amount", func(in *TransactionInput) { in.AmountCents = -1 }, ErrInvalidAmount},
		{"too large amount", func(in *TransactionInput) { in.AmountCents = MaxAmountCents + 1 }, ErrInvalidAmount},
		{"bad type", func(in *TransactionInput) { in.Type = "transfer" }, ErrInvalidTransactionType},
		{"bad unit", func(in *TransactionInput) { in.UnitsOfRecurrence = "hours" }, ErrInvalidRecurrenceUnit},
		{"bad interval", func(in *TransactionInput) { in.IntervalOfRecurrence = -2 }, ErrInvalidRecurrenceInterval},
		{"missing date", func(in *TransactionInput) { in.DateOfTransaction = time.Time{} }, ErrInvalidDate},
		{"long comment", func(in *TransactionInput) { in.Comment = string(make([]rune, 101)) + "x" }, ErrTextTooLong},
		{"hidden category", func(in *TransactionInput) { in.CategoryID = "cat-hidden" }, ErrCategoryNotFound},
		{"no category", func(in *TransactionInput) { in.CategoryID = "" }, ErrCategoryNotFound},
		{"foreign sub-category", func(in *TransactionInput) {
			in.CategoryID = "cat-rent"
			in.SubCategoryID = "sub-market"
		}, ErrSubCategoryNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := seededRepo()
			svc := newTestBudgetService(repo)
			input := validInput()
			tc.mutate(&input)

			_, err := svc.CreateTransaction(context.Background(), input)
			assert.ErrorIs(t, err, tc.want)
			assert.Empty(t, repo.transactions)
		})
	}
}

func TestCreateTransactionByCircleMember(t *testing.T) {
	repo := seededRepo()
	svc := newTestBudgetService(repo)

	input := validInput()
	input.AuthorID = "u-2"
	input.SubCategoryID = "sub-market"
	input.Type = TypeIncome

	created, err := svc.CreateTransaction(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "sub-market", *created.SubCategoryID)
	assert.Equal(t, TypeIncome, created.Type)
}

func TestUpdateTransactionStampsDateOfUpdate(t *testing.T) {
	repo := seededRepo()
	svc := newTestBudgetService(repo)
	ctx := context.Background()

	created, err := svc.CreateTransaction(ctx, validInput())
	require.NoError(t, err)
	repo.transactions[created.ID].DateOfUpdate = date(2020, 1, 1)

	input := validInput()
	input.AmountCents = 999
	input.CategoryID = "cat-rent"
	updated, err := svc.UpdateTransaction(ctx, created.ID, input)
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, int64(999), repo.transactions[created.ID].AmountCents)
	assert.Equal(t, "cat-rent", repo.transactions[created.ID].CategoryID)
	assert.Equal(t, date(2026, 3, 10), repo.transactions[created.ID].DateOfUpdate)
}

func TestUpdateAndDeleteAreAuthorScoped(t *testing.T) {
	repo := seededRepo()
	svc := newTestBudgetService(repo)
	ctx := context.Background()

	created, err := svc.CreateTransaction(ctx, validInput())
	require.NoError(t, err)

	input := validInput()
	input.AuthorID = "u-2"
	_, err = svc.UpdateTransaction(ctx, created.ID, input)
	assert.ErrorIs(t, err, ErrTransactionNotFound)

	assert.ErrorIs(t, svc.DeleteTransaction(ctx, "u-2", created.ID), ErrTransactionNotFound)
	require.NoError(t, svc.DeleteTransaction(ctx, "u-1", created.ID))
	assert.Empty(t, repo.transactions)
}

type recordingPublisher struct {
	keys []string
	err  error
}

func (p *recordingPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	p.keys = append(p.keys, routingKey)
	return p.err
}

func TestTransactionEventsArePublished(t *testing.T) {
	repo := seededRepo()
	publisher := &recordingPublisher{}
	svc := newTestBudgetService(repo).WithPublisher(publisher, nil)
	ctx := context.Background()

	created, err := svc.CreateTransaction(ctx, validInput())
	require.NoError(t, err)
	_, err = svc.UpdateTransaction(ctx, created.ID, validInput())
	require.NoError(t, err)
	require.NoError(t, svc.DeleteTransaction(ctx, "u-1", created.ID))

	assert.Equal(t, []string{EventTransactionCreated, EventTransactionUpdated, EventTransactionDeleted}, publisher.keys)
}

func TestPublishFailureDoesNotFailWrite(t *testing.T) {
	repo := seededRepo()
	publisher := &recordingPublisher{err: errors.New("broker down")}
	svc := newTestBudgetService(repo).WithPublisher(publisher, nil)

	_, err := svc.CreateTransaction(context.Background(), validInput())
	require.NoError(t, err)
	assert.Len(t, repo.transactions, 1)
}

func TestUpcomingOccurrences(t *testing.T) {
	repo := seededRepo()
	svc := newTestBudgetService(repo)
	ctx := context.Background()

	monthly := validInput()
	monthly.Recurrence = true
	monthly.DateOfTransaction = date(2026, 1, 15)
	_, err := svc.CreateTransaction(ctx, monthly)
	require.NoError(t, err)

	weekly := validInput()
	weekly.Recurrence = true
	weekly.UnitsOfRecurrence = UnitWeeks
	weekly.DateOfTransaction = date(2026, 3, 3)
	end := date(2026, 3, 20)
	weekly.RecurrenceEndDate = &end
	_, err = svc.CreateTransaction(ctx, weekly)
	require.NoError(t, err)

	_, err = svc.CreateTransaction(ctx, validInput())
	require.NoError(t, err)

	got, err := svc.UpcomingOccurrences(ctx, "u-1", 30)
	require.NoError(t, err)

	dates := make([]time.Time, 0, len(got))
	for _, occurrence := range got {
		dates = append(dates, occurrence.Date)
		assert.Equal(t, "Groceries", occurrence.CategoryName)
	}
	assert.Equal(t, []time.Time{date(2026, 3, 10), date(2026, 3, 15), date(2026, 3, 17)}, dates)
}

func TestTodayUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	late := time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC)
	svc := NewService(newFakeBudgetRepo()).WithClock(func() time.Time { return late }, loc)

	assert.Equal(t, date(2026, 3, 11), svc.Today())
}
