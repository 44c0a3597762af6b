package demo

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	budgetdomain "budget-app-go/internal/domain/budget"
	circlesdomain "budget-app-go/internal/domain/circles"
	"budget-app-go/pkg/logger"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

//go:embed demo_transactions.csv
var defaultTemplate []byte

// Service rebuilds the demo account from a fixed set of circles and a
// transaction template.
type Service struct {
	repo         Repository
	log          logger.Logger
	now          func() time.Time
	location     *time.Location
	templatePath string
	invalidators []circlesdomain.Invalidator
	group        singleflight.Group
}

func NewService(repo Repository, log logger.Logger) *Service {
	if log == nil {
		log = logger.Discard()
	}
	return &Service{
		repo:     repo,
		log:      log,
		now:      time.Now,
		location: time.UTC,
	}
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

// WithTemplateFile reads rows from path instead of the embedded template.
func (s *Service) WithTemplateFile(path string) *Service {
	s.templatePath = path
	return s
}

// WithInvalidator registers caches that hold circles or categories derived
// from the store. A reset drops them for every user, since other members of
// the removed circles lose their view too.
func (s *Service) WithInvalidator(invalidators ...circlesdomain.Invalidator) *Service {
	s.invalidators = append(s.invalidators, invalidators...)
	return s
}

// Reset wipes the user's data and seeds it again. Concurrent resets for the
// same user share one run, which outlives any single caller's cancellation.
func (s *Service) Reset(ctx context.Context, userID string) (*Report, error) {
	shared := context.WithoutCancel(ctx)
	results := s.group.DoChan(userID, func() (any, error) {
		return s.reset(shared, userID)
	})

	var result singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result = <-results:
	}
	if result.Err != nil {
		return nil, result.Err
	}
	report := *result.Val.(*Report)
	report.Skipped = append([]SkippedRow(nil), report.Skipped...)
	return &report, nil
}

func (s *Service) reset(ctx context.Context, userID string) (*Report, error) {
	rows, err := s.loadTemplate()
	if err != nil {
		return nil, err
	}

	today := s.today()
	report := &Report{}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		*report = Report{}
		if err := tx.DeleteUserData(ctx, userID); err != nil {
			return fmt.Errorf("delete demo data: %w", err)
		}
		if err := seedCircles(ctx, tx, userID, report); err != nil {
			return err
		}

		transactions, skipped, err := s.buildTransactions(ctx, tx, userID, rows, today)
		if err != nil {
			return err
		}
		report.Skipped = skipped
		if len(transactions) > 0 {
			if err := tx.CreateTransactions(ctx, transactions); err != nil {
				return fmt.Errorf("create demo transactions: %w", err)
			}
		}
		report.Transactions = len(transactions)
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, invalidator := range s.invalidators {
		invalidator.InvalidateUsers()
	}

	s.log.Info("demo.reset: seeded",
		"user_id", userID,
		"circles", report.Circles,
		"categories", report.Categories,
		"transactions", report.Transactions,
		"skipped", len(report.Skipped),
	)
	return report, nil
}

func (s *Service) loadTemplate() ([]templateRow, error) {
	var source io.Reader = bytes.NewReader(defaultTemplate)
	if s.templatePath != "" {
		file, err := os.Open(s.templatePath)
		if err != nil {
			return nil, fmt.Errorf("open demo template: %w", err)
		}
		defer file.Close()
		source = file
	}
	return parseTemplate(source)
}

func (s *Service) today() time.Time {
	y, m, d := s.now().In(s.location).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedCircles(ctx context.Context, tx Repository, userID string, report *Report) error {
	for _, seed := range circleSeeds {
		circle := &circlesdomain.Circle{
			ID:      uuid.NewString(),
			Name:    seed.name,
			AdminID: userID,
			Icon:    seed.icon,
			Color:   seed.color,
		}
		if err := tx.CreateCircle(ctx, circle); err != nil {
			return fmt.Errorf("create circle %s: %w", seed.name, err)
		}
		if err := tx.AddMember(ctx, &circlesdomain.Member{CircleID: circle.ID, UserID: userID}); err != nil {
			return fmt.Errorf("add member to %s: %w", seed.name, err)
		}
		report.Circles++

		for _, categorySeed := range seed.categories {
			category := &budgetdomain.Category{
				ID:       uuid.NewString(),
				CircleID: circle.ID,
				Name:     categorySeed.name,
				Icon:     categorySeed.icon,
				Color:    categorySeed.color,
			}
			if err := tx.CreateCategory(ctx, category); err != nil {
				return fmt.Errorf("create category %s: %w", categorySeed.name, err)
			}
			report.Categories++

			for _, name := range categorySeed.subCategories {
				sub := &budgetdomain.SubCategory{
					ID:         uuid.NewString(),
					CategoryID: category.ID,
					Name:       name,
				}
				if err := tx.CreateSubCategory(ctx, sub); err != nil {
					return fmt.Errorf("create sub-category %s: %w", name, err)
				}
				report.SubCategories++
			}
		}
	}
	return nil
}

func (s *Service) buildTransactions(ctx context.Context, tx Repository, userID string, rows []templateRow, today time.Time) ([]budgetdomain.Transaction, []SkippedRow, error) {
	categories := make(map[string]*budgetdomain.Category)
	transactions := make([]budgetdomain.Transaction, 0, len(rows))
	skipped := make([]SkippedRow, 0)

	skip := func(row templateRow, reason string) {
		s.log.Warn("demo.reset: skip template row", "line", row.Line, "reason", reason)
		skipped = append(skipped, SkippedRow{Line: row.Line, Reason: reason})
	}

	for _, row := range rows {
		if row.Err != nil {
			skip(row, row.Err.Error())
			continue
		}

		category, ok := categories[row.Category]
		if !ok {
			found, err := tx.FindCategoryByName(ctx, userID, row.Category)
			if err != nil && !errors.Is(err, budgetdomain.ErrCategoryNotFound) {
				return nil, nil, err
			}
			category = found
			categories[row.Category] = found
		}
		if category == nil {
			skip(row, fmt.Sprintf("category %q not found", row.Category))
			continue
		}

		transaction := budgetdomain.Transaction{
			ID:                uuid.NewString(),
			CategoryID:        category.ID,
			AuthorID:          userID,
			Type:              row.Type,
			DateOfTransaction: shift(row.Date, today),
			AmountCents:       row.AmountCents,
			Recurrence:        row.Recurrence,
		}
		transaction.DateOfUpdate = transaction.DateOfTransaction

		if row.SubCategory != "" {
			sub, err := tx.FindSubCategoryByName(ctx, category.ID, row.SubCategory)
			if errors.Is(err, budgetdomain.ErrSubCategoryNotFound) {
				skip(row, fmt.Sprintf("sub-category %q not found in %q", row.SubCategory, row.Category))
				continue
			}
			if err != nil {
				return nil, nil, err
			}
			transaction.SubCategoryID = &sub.ID
		}

		if row.Description != "" {
			description := row.Description
			transaction.Description = &description
		}
		if row.Comment != "" {
			comment := row.Comment
			transaction.Comment = &comment
		}
		unit := row.UnitsOfRecurrence
		interval := row.IntervalOfRecurrence
		transaction.UnitsOfRecurrence = &unit
		transaction.IntervalOfRecurrence = &interval
		if row.RecurrenceEndDate != nil {
			end := shift(*row.RecurrenceEndDate, today)
			transaction.RecurrenceEndDate = &end
		}

		transactions = append(transactions, transaction)
	}
	return transactions, skipped, nil
}
