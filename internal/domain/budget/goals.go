package budget

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

func (s *Service) ListGoals(ctx context.Context, userID string) ([]GoalView, error) {
	return s.repo.ListGoals(ctx, userID)
}

func (s *Service) CreateGoal(ctx context.Context, input GoalInput) (*Goal, error) {
	if input.AmountCents < 0 || input.AmountCents > MaxAmountCents {
		return nil, invalid("amount", "Enter an amount between 0 and 99999999.99.", ErrInvalidAmount)
	}
	periodType := input.PeriodType
	if periodType != PeriodRolling && periodType != PeriodFixed {
		return nil, invalid("period_type", "Select rolling or fixed.", ErrInvalidPeriod)
	}
	if input.Period < 1 {
		return nil, invalid("period", "Period must be a positive number.", ErrInvalidPeriod)
	}

	goal := Goal{
		ID:          uuid.NewString(),
		CategoryID:  input.CategoryID,
		AmountCents: input.AmountCents,
		PeriodType:  periodType,
		Period:      input.Period,
	}
	if sub := strings.TrimSpace(input.SubCategoryID); sub != "" {
		goal.SubCategoryID = &sub
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.GetVisibleCategory(ctx, input.UserID, input.CategoryID); err != nil {
			return err
		}
		if goal.SubCategoryID != nil {
			sub, err := tx.GetSubCategory(ctx, *goal.SubCategoryID)
			if err != nil {
				return err
			}
			if sub.CategoryID != goal.CategoryID {
				return ErrSubCategoryNotFound
			}
		}
		return tx.CreateGoal(ctx, &goal)
	})
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func (s *Service) DeleteGoal(ctx context.Context, userID, goalID string) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		goal, err := tx.GetGoal(ctx, goalID)
		if err != nil {
			return err
		}
		if _, err := tx.GetVisibleCategory(ctx, userID, goal.CategoryID); err != nil {
			if errors.Is(err, ErrCategoryNotFound) {
				return ErrGoalNotFound
			}
			return err
		}
		return tx.DeleteGoal(ctx, goalID)
	})
}
