package demo

import (
	"context"
	"errors"

	budgetdomain "budget-app-go/internal/domain/budget"
	circlesdomain "budget-app-go/internal/domain/circles"
	demodomain "budget-app-go/internal/domain/demo"
	"gorm.io/gorm"
)

const transactionBatchSize = 200

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Transaction(ctx context.Context, fn func(demodomain.Repository) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// DeleteUserData deletes authored transactions first so rows the user filed
// under circles they only belong to go as well.
func (s *Store) DeleteUserData(ctx context.Context, userID string) error {
	db := s.db.WithContext(ctx)
	if err := db.Where("author_id = ?", userID).Delete(&budgetdomain.Transaction{}).Error; err != nil {
		return err
	}
	return db.Where("admin_id = ?", userID).Delete(&circlesdomain.Circle{}).Error
}

func (s *Store) CreateCircle(ctx context.Context, circle *circlesdomain.Circle) error {
	return s.db.WithContext(ctx).Create(circle).Error
}

func (s *Store) AddMember(ctx context.Context, member *circlesdomain.Member) error {
	return s.db.WithContext(ctx).Create(member).Error
}

func (s *Store) CreateCategory(ctx context.Context, category *budgetdomain.Category) error {
	return s.db.WithContext(ctx).Create(category).Error
}

func (s *Store) CreateSubCategory(ctx context.Context, subCategory *budgetdomain.SubCategory) error {
	return s.db.WithContext(ctx).Create(subCategory).Error
}

func (s *Store) FindCategoryByName(ctx context.Context, userID, name string) (*budgetdomain.Category, error) {
	var category budgetdomain.Category
	err := s.db.WithContext(ctx).
		Table("categories").
		Select("categories.*").
		Joins("join circles on circles.id = categories.circle_id").
		Where("categories.name = ?", name).
		Where("circles.admin_id = ? OR circles.id IN (SELECT circle_id FROM circle_members WHERE user_id = ?)", userID, userID).
		Order(gorm.Expr("CASE WHEN circles.admin_id = ? THEN 0 ELSE 1 END, categories.created_at asc, categories.id asc", userID)).
		Take(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, budgetdomain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *Store) FindSubCategoryByName(ctx context.Context, categoryID, name string) (*budgetdomain.SubCategory, error) {
	var sub budgetdomain.SubCategory
	err := s.db.WithContext(ctx).
		Where("category_id = ? AND name = ?", categoryID, name).
		Order("id asc").
		Take(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, budgetdomain.ErrSubCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *Store) CreateTransactions(ctx context.Context, transactions []budgetdomain.Transaction) error {
	return s.db.WithContext(ctx).CreateInBatches(transactions, transactionBatchSize).Error
}
