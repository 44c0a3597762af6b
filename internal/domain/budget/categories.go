package budget

import (
	"context"
	"errors"
	"sort"
	"strings"

	"budget-app-go/internal/domain/palette"
	"github.com/google/uuid"
)

const maxNameLength = 100

// CategoryChoices returns the categories the user may pick in forms, with
// their circle name and sub-categories.
func (s *Service) CategoryChoices(ctx context.Context, userID string) ([]CategoryChoice, error) {
	if cached, ok := s.cache.GetByUserID(userID); ok {
		return cached, nil
	}

	gen := s.cacheGen.Load()
	choices, err := s.repo.ListVisibleCategories(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(choices))
	for _, choice := range choices {
		ids = append(ids, choice.ID)
	}
	subs, err := s.repo.ListSubCategories(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range choices {
		choices[i].SubCategories = subs[choices[i].ID]
	}

	s.cache.SetByUserID(userID, choices, s.cacheTTL)
	if s.cacheGen.Load() != gen {
		s.cache.DeleteByUserID(userID)
	}
	return choices, nil
}

// DefaultCategory picks the visible category with the most transactions.
// Ties go to the lower name, then the lower id. It returns nil when the user
// has no categories or none of them has a transaction.
func (s *Service) DefaultCategory(ctx context.Context, userID string) (*Category, error) {
	usage, err := s.repo.CategoryUsage(ctx, userID)
	if err != nil {
		return nil, err
	}
	return pickDefaultCategory(usage), nil
}

func pickDefaultCategory(usage []CategoryUsage) *Category {
	var best *CategoryUsage
	for i := range usage {
		candidate := &usage[i]
		if candidate.TransactionCount <= 0 {
			continue
		}
		if best == nil || ranksBefore(candidate, best) {
			best = candidate
		}
	}
	if best == nil {
		return nil
	}
	category := best.Category
	return &category
}

func ranksBefore(a, b *CategoryUsage) bool {
	if a.TransactionCount != b.TransactionCount {
		return a.TransactionCount > b.TransactionCount
	}
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.ID < b.ID
}

func (s *Service) CreateCategory(ctx context.Context, input CategoryInput) (*Category, error) {
	name, err := normalizeName(input.Name)
	if err != nil {
		return nil, err
	}
	icon, err := palette.NormalizeIcon(input.Icon)
	if err != nil {
		return nil, invalid("icon", "Pick a single emoji icon.", err)
	}
	color, err := palette.NormalizeColor(input.Color)
	if err != nil {
		return nil, invalid("color", "Pick a color from the palette.", err)
	}

	category := Category{
		ID:       uuid.NewString(),
		CircleID: input.CircleID,
		Name:     name,
		Icon:     icon,
		Color:    color,
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		visible, err := tx.IsCircleVisible(ctx, input.UserID, input.CircleID)
		if err != nil {
			return err
		}
		if !visible {
			return ErrCircleNotFound
		}

		count, err := tx.CountCategoriesByName(ctx, input.CircleID, name)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrCategoryNameTaken
		}
		return tx.CreateCategory(ctx, &category)
	})
	if err != nil {
		return nil, err
	}

	s.InvalidateUsers()
	return &category, nil
}

// DeleteCategory removes the category with its sub-categories, goals and
// transactions. Only the circle admin may do it.
func (s *Service) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		category, err := tx.GetVisibleCategory(ctx, userID, categoryID)
		if err != nil {
			return err
		}
		admin, err := tx.IsCircleAdmin(ctx, userID, category.CircleID)
		if err != nil {
			return err
		}
		if !admin {
			return ErrNotCircleAdmin
		}
		return tx.DeleteCategory(ctx, categoryID)
	})
	if err != nil {
		return err
	}

	s.InvalidateUsers()
	return nil
}

func (s *Service) CreateSubCategory(ctx context.Context, userID, categoryID, name string) (*SubCategory, error) {
	normalized, err := normalizeName(name)
	if err != nil {
		return nil, err
	}

	sub := SubCategory{
		ID:         uuid.NewString(),
		CategoryID: categoryID,
		Name:       normalized,
	}
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.GetVisibleCategory(ctx, userID, categoryID); err != nil {
			return err
		}
		return tx.CreateSubCategory(ctx, &sub)
	})
	if err != nil {
		return nil, err
	}

	s.InvalidateUsers()
	return &sub, nil
}

func (s *Service) DeleteSubCategory(ctx context.Context, userID, subCategoryID string) error {
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		sub, err := tx.GetSubCategory(ctx, subCategoryID)
		if err != nil {
			return err
		}
		if _, err := tx.GetVisibleCategory(ctx, userID, sub.CategoryID); err != nil {
			if errors.Is(err, ErrCategoryNotFound) {
				return ErrSubCategoryNotFound
			}
			return err
		}
		return tx.DeleteSubCategory(ctx, subCategoryID)
	})
	if err != nil {
		return err
	}

	s.InvalidateUsers()
	return nil
}

// InvalidateUsers drops cached category choices after circle changes.
func (s *Service) InvalidateUsers(userIDs ...string) {
	s.cacheGen.Add(1)
	if len(userIDs) == 0 {
		s.cache.Clear()
		return
	}
	for _, id := range userIDs {
		s.cache.DeleteByUserID(id)
	}
}

// GroupByCircle orders choices by circle then category name for rendering.
func GroupByCircle(choices []CategoryChoice) []CategoryChoice {
	sorted := make([]CategoryChoice, len(choices))
	copy(sorted, choices)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CircleName != sorted[j].CircleName {
			return sorted[i].CircleName < sorted[j].CircleName
		}
		return sorted[i].Name < sorted[j].Name
	})
	return sorted
}

func normalizeName(value string) (string, error) {
	name := strings.TrimSpace(value)
	if name == "" || len([]rune(name)) > maxNameLength {
		return "", invalid("name", "Enter a name of at most 100 characters.", ErrInvalidName)
	}
	return name, nil
}
