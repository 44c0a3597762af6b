package budget

import (
	"context"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"budget-app-go/pkg/logger"
	"github.com/google/uuid"
)

const (
	maxTextLength          = 100
	defaultChoicesCacheTTL = time.Minute
)

type Service struct {
	repo      Repository
	cache     ChoicesCache
	cacheTTL  time.Duration
	publisher Publisher
	log       logger.Logger
	now       func() time.Time
	location  *time.Location

	// cacheGen moves before every cache drop so a load that raced one is
	// not kept.
	cacheGen atomic.Uint64
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:      repo,
		cache:     noopChoicesCache{},
		cacheTTL:  defaultChoicesCacheTTL,
		publisher: noopPublisher{},
		log:       logger.Discard(),
		now:       time.Now,
		location:  time.UTC,
	}
}

func (s *Service) WithCache(cache ChoicesCache, ttl time.Duration) *Service {
	if cache != nil {
		s.cache = cache
	}
	if ttl > 0 {
		s.cacheTTL = ttl
	}
	return s
}

// WithPublisher sends transaction events to publisher. Publish failures are
// logged and never fail the write.
func (s *Service) WithPublisher(publisher Publisher, log logger.Logger) *Service {
	if publisher != nil {
		s.publisher = publisher
	}
	if log != nil {
		s.log = log
	}
	return s
}

func (s *Service) WithClock(now func() time.Time, location *time.Location) *Service {
	if now != nil {
		s.now = now
	}
	if location != nil {
		s.location = location
	}
	return s
}

// Today is the current calendar date in the configured location, as UTC midnight.
func (s *Service) Today() time.Time {
	return dateOnly(s.now().In(s.location))
}

func (s *Service) ListTransactions(ctx context.Context, userID string) ([]TransactionView, error) {
	return s.repo.ListTransactionsByAuthor(ctx, userID)
}

func (s *Service) GetTransaction(ctx context.Context, userID, transactionID string) (*Transaction, error) {
	return s.repo.GetTransactionByID(ctx, userID, transactionID)
}

func (s *Service) CreateTransaction(ctx context.Context, input TransactionInput) (*Transaction, error) {
	transaction, err := s.buildTransaction(input)
	if err != nil {
		return nil, err
	}
	transaction.ID = uuid.NewString()

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := checkCategoryRefs(ctx, tx, input.AuthorID, transaction); err != nil {
			return err
		}
		return tx.CreateTransaction(ctx, transaction)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, EventTransactionCreated, transaction)
	return transaction, nil
}

// UpdateTransaction rewrites an authored transaction and stamps
// date_of_update with today.
func (s *Service) UpdateTransaction(ctx context.Context, transactionID string, input TransactionInput) (*Transaction, error) {
	updated, err := s.buildTransaction(input)
	if err != nil {
		return nil, err
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		existing, err := tx.GetTransactionByID(ctx, input.AuthorID, transactionID)
		if err != nil {
			return err
		}
		if err := checkCategoryRefs(ctx, tx, input.AuthorID, updated); err != nil {
			return err
		}

		updated.ID = existing.ID
		updated.CreatedAt = existing.CreatedAt
		return tx.UpdateTransaction(ctx, updated)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, EventTransactionUpdated, updated)
	return updated, nil
}

func (s *Service) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	deleted, err := s.repo.DeleteTransaction(ctx, userID, transactionID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTransactionNotFound
	}

	s.publish(ctx, EventTransactionDeleted, &Transaction{ID: transactionID, AuthorID: userID})
	return nil
}

// UpcomingOccurrences expands the user's recurring transactions over the
// next days, starting today.
func (s *Service) UpcomingOccurrences(ctx context.Context, userID string, days int) ([]Occurrence, error) {
	if days <= 0 {
		return []Occurrence{}, nil
	}

	recurring, err := s.repo.ListRecurringByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}

	from := s.Today()
	to := from.AddDate(0, 0, days)

	result := make([]Occurrence, 0)
	for _, view := range recurring {
		dates, err := Occurrences(view.Transaction, from, to)
		if err != nil {
			s.log.BusinessError("transactions.upcoming: skip invalid schedule", err, "transaction_id", view.ID)
			continue
		}
		for _, d := range dates {
			result = append(result, Occurrence{
				TransactionID: view.ID,
				Date:          d,
				Type:          view.Type,
				AmountCents:   view.AmountCents,
				Description:   deref(view.Description),
				CategoryName:  view.CategoryName,
				CategoryIcon:  view.CategoryIcon,
			})
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}

// buildTransaction validates input and applies field defaults. It does not
// touch the store.
func (s *Service) buildTransaction(input TransactionInput) (*Transaction, error) {
	if strings.TrimSpace(input.CategoryID) == "" {
		return nil, invalid("category", "Select a category.", ErrCategoryNotFound)
	}

	txType := input.Type
	if txType == "" {
		txType = TypeExpense
	}
	if txType != TypeExpense && txType != TypeIncome {
		return nil, invalid("type", "Select expense or income.", ErrInvalidTransactionType)
	}

	if input.DateOfTransaction.IsZero() {
		return nil, invalid("date_of_transaction", "Enter a valid date.", ErrInvalidDate)
	}
	if input.AmountCents < 0 || input.AmountCents > MaxAmountCents {
		return nil, invalid("amount", "Enter an amount between 0 and 99999999.99.", ErrInvalidAmount)
	}

	description, err := optionalText("description", input.Description)
	if err != nil {
		return nil, err
	}
	comment, err := optionalText("comment", input.Comment)
	if err != nil {
		return nil, err
	}

	unit := input.UnitsOfRecurrence
	if unit == "" {
		unit = DefaultRecurrenceUnit
	}
	if _, err := ParseRecurrenceUnit(string(unit)); err != nil {
		return nil, invalid("units_of_recurrence", "Select days, weeks, months or years.", err)
	}
	interval := input.IntervalOfRecurrence
	if interval == 0 {
		interval = DefaultRecurrenceInterval
	}
	if interval < 1 {
		return nil, invalid("interval_of_recurrence", "Interval must be a positive number.", ErrInvalidRecurrenceInterval)
	}

	txDate := dateOnly(input.DateOfTransaction)
	var endDate *time.Time
	if input.RecurrenceEndDate != nil {
		end := dateOnly(*input.RecurrenceEndDate)
		endDate = &end
	}
	if err := ValidateRecurrence(txDate, endDate); err != nil {
		return nil, err
	}

	transaction := &Transaction{
		CategoryID:           input.CategoryID,
		AuthorID:             input.AuthorID,
		Type:                 txType,
		DateOfTransaction:    txDate,
		DateOfUpdate:         s.Today(),
		AmountCents:          input.AmountCents,
		Description:          description,
		Comment:              comment,
		Recurrence:           input.Recurrence,
		UnitsOfRecurrence:    &unit,
		IntervalOfRecurrence: &interval,
		RecurrenceEndDate:    endDate,
	}
	if sub := strings.TrimSpace(input.SubCategoryID); sub != "" {
		transaction.SubCategoryID = &sub
	}
	return transaction, nil
}

func (s *Service) publish(ctx context.Context, routingKey string, transaction *Transaction) {
	event := TransactionEvent{
		TransactionID: transaction.ID,
		AuthorID:      transaction.AuthorID,
		CategoryID:    transaction.CategoryID,
		Type:          transaction.Type,
		AmountCents:   transaction.AmountCents,
		OccurredAt:    s.now().UTC(),
	}
	if !transaction.DateOfTransaction.IsZero() {
		event.DateOfTransaction = transaction.DateOfTransaction.Format(time.DateOnly)
	}
	if err := s.publisher.Publish(ctx, routingKey, event); err != nil {
		s.log.InternalError("transactions.publish: event not delivered", err, "routing_key", routingKey, "transaction_id", transaction.ID)
	}
}

// checkCategoryRefs keeps transactions inside the user's visible categories
// and the sub-category inside its category.
func checkCategoryRefs(ctx context.Context, tx Repository, userID string, transaction *Transaction) error {
	if _, err := tx.GetVisibleCategory(ctx, userID, transaction.CategoryID); err != nil {
		return err
	}
	if transaction.SubCategoryID == nil {
		return nil
	}
	sub, err := tx.GetSubCategory(ctx, *transaction.SubCategoryID)
	if err != nil {
		return err
	}
	if sub.CategoryID != transaction.CategoryID {
		return ErrSubCategoryNotFound
	}
	return nil
}

func optionalText(field, value string) (*string, error) {
	text := strings.TrimSpace(value)
	if text == "" {
		return nil, nil
	}
	if len([]rune(text)) > maxTextLength {
		return nil, invalid(field, "Use at most 100 characters.", ErrTextTooLong)
	}
	return &text, nil
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
