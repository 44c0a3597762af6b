package budget

import (
	"context"
	"errors"

	budgetdomain "budget-app-go/internal/domain/budget"
	"gorm.io/gorm"
)

// visibleCircles matches circles a user administers or belongs to. It takes
// the user id twice.
const visibleCircles = "SELECT id FROM circles WHERE admin_id = ? UNION SELECT circle_id FROM circle_members WHERE user_id = ?"

const transactionViewColumns = "transactions.*, " +
	"categories.name AS category_name, categories.icon AS category_icon, categories.color AS category_color, " +
	"circles.name AS circle_name, COALESCE(sub_categories.name, '') AS sub_category_name"

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Transaction(ctx context.Context, fn func(budgetdomain.Repository) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func (s *Store) transactionViews(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("transactions").
		Select(transactionViewColumns).
		Joins("join categories on categories.id = transactions.category_id").
		Joins("join circles on circles.id = categories.circle_id").
		Joins("left join sub_categories on sub_categories.id = transactions.sub_category_id")
}

func (s *Store) ListTransactionsByAuthor(ctx context.Context, authorID string) ([]budgetdomain.TransactionView, error) {
	var views []budgetdomain.TransactionView
	if err := s.transactionViews(ctx).
		Where("transactions.author_id = ?", authorID).
		Order("transactions.date_of_transaction desc, transactions.created_at desc").
		Scan(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

func (s *Store) ListRecurringByAuthor(ctx context.Context, authorID string) ([]budgetdomain.TransactionView, error) {
	var views []budgetdomain.TransactionView
	if err := s.transactionViews(ctx).
		Where("transactions.author_id = ? AND transactions.recurrence = ?", authorID, true).
		Order("transactions.date_of_transaction asc, transactions.id asc").
		Scan(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

func (s *Store) GetTransactionByID(ctx context.Context, authorID, transactionID string) (*budgetdomain.Transaction, error) {
	var transaction budgetdomain.Transaction
	if err := s.db.WithContext(ctx).
		Where("id = ? AND author_id = ?", transactionID, authorID).
		First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, budgetdomain.ErrTransactionNotFound
		}
		return nil, err
	}
	return &transaction, nil
}

func (s *Store) CreateTransaction(ctx context.Context, transaction *budgetdomain.Transaction) error {
	return s.db.WithContext(ctx).Create(transaction).Error
}

func (s *Store) UpdateTransaction(ctx context.Context, transaction *budgetdomain.Transaction) error {
	result := s.db.WithContext(ctx).
		Model(&budgetdomain.Transaction{}).
		Where("id = ? AND author_id = ?", transaction.ID, transaction.AuthorID).
		Select("*").
		Omit("id", "author_id", "created_at").
		Updates(transaction)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return budgetdomain.ErrTransactionNotFound
	}
	return nil
}

func (s *Store) DeleteTransaction(ctx context.Context, authorID, transactionID string) (bool, error) {
	result := s.db.WithContext(ctx).Delete(&budgetdomain.Transaction{}, "id = ? AND author_id = ?", transactionID, authorID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *Store) ListVisibleCategories(ctx context.Context, userID string) ([]budgetdomain.CategoryChoice, error) {
	var choices []budgetdomain.CategoryChoice
	if err := s.db.WithContext(ctx).
		Table("categories").
		Select("categories.*, circles.name AS circle_name").
		Joins("join circles on circles.id = categories.circle_id").
		Where("categories.circle_id IN ("+visibleCircles+")", userID, userID).
		Order("circles.name asc, categories.name asc, categories.id asc").
		Scan(&choices).Error; err != nil {
		return nil, err
	}
	return choices, nil
}

func (s *Store) ListSubCategories(ctx context.Context, categoryIDs []string) (map[string][]budgetdomain.SubCategory, error) {
	result := make(map[string][]budgetdomain.SubCategory, len(categoryIDs))
	if len(categoryIDs) == 0 {
		return result, nil
	}

	var subs []budgetdomain.SubCategory
	if err := s.db.WithContext(ctx).
		Where("category_id IN ?", categoryIDs).
		Order("name asc, id asc").
		Find(&subs).Error; err != nil {
		return nil, err
	}
	for _, sub := range subs {
		result[sub.CategoryID] = append(result[sub.CategoryID], sub)
	}
	return result, nil
}

func (s *Store) GetVisibleCategory(ctx context.Context, userID, categoryID string) (*budgetdomain.Category, error) {
	var category budgetdomain.Category
	if err := s.db.WithContext(ctx).
		Where("id = ? AND circle_id IN ("+visibleCircles+")", categoryID, userID, userID).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, budgetdomain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// CategoryUsage counts every transaction filed under each visible category,
// whoever authored it.
func (s *Store) CategoryUsage(ctx context.Context, userID string) ([]budgetdomain.CategoryUsage, error) {
	var usage []budgetdomain.CategoryUsage
	if err := s.db.WithContext(ctx).
		Table("categories").
		Select("categories.*, COUNT(transactions.id) AS transaction_count").
		Joins("left join transactions on transactions.category_id = categories.id").
		Where("categories.circle_id IN ("+visibleCircles+")", userID, userID).
		Group("categories.id").
		Order("transaction_count desc, categories.name asc, categories.id asc").
		Scan(&usage).Error; err != nil {
		return nil, err
	}
	return usage, nil
}

func (s *Store) IsCircleVisible(ctx context.Context, userID, circleID string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Table("circles").
		Where("id = ? AND id IN ("+visibleCircles+")", circleID, userID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) IsCircleAdmin(ctx context.Context, userID, circleID string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Table("circles").
		Where("id = ? AND admin_id = ?", circleID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) CountCategoriesByName(ctx context.Context, circleID, name string) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&budgetdomain.Category{}).
		Where("circle_id = ? AND name = ?", circleID, name).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) CreateCategory(ctx context.Context, category *budgetdomain.Category) error {
	err := s.db.WithContext(ctx).Create(category).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return budgetdomain.ErrCategoryNameTaken
	}
	return err
}

func (s *Store) DeleteCategory(ctx context.Context, categoryID string) error {
	return s.db.WithContext(ctx).Delete(&budgetdomain.Category{}, "id = ?", categoryID).Error
}

func (s *Store) GetSubCategory(ctx context.Context, subCategoryID string) (*budgetdomain.SubCategory, error) {
	var sub budgetdomain.SubCategory
	if err := s.db.WithContext(ctx).Where("id = ?", subCategoryID).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, budgetdomain.ErrSubCategoryNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (s *Store) CreateSubCategory(ctx context.Context, subCategory *budgetdomain.SubCategory) error {
	return s.db.WithContext(ctx).Create(subCategory).Error
}

func (s *Store) DeleteSubCategory(ctx context.Context, subCategoryID string) error {
	return s.db.WithContext(ctx).Delete(&budgetdomain.SubCategory{}, "id = ?", subCategoryID).Error
}

func (s *Store) ListGoals(ctx context.Context, userID string) ([]budgetdomain.GoalView, error) {
	var goals []budgetdomain.GoalView
	if err := s.db.WithContext(ctx).
		Table("goals").
		Select("goals.*, categories.name AS category_name, categories.icon AS category_icon, " +
			"circles.name AS circle_name, COALESCE(sub_categories.name, '') AS sub_category_name").
		Joins("join categories on categories.id = goals.category_id").
		Joins("join circles on circles.id = categories.circle_id").
		Joins("left join sub_categories on sub_categories.id = goals.sub_category_id").
		Where("categories.circle_id IN ("+visibleCircles+")", userID, userID).
		Order("circles.name asc, categories.name asc, goals.created_at asc").
		Scan(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

func (s *Store) GetGoal(ctx context.Context, goalID string) (*budgetdomain.Goal, error) {
	var goal budgetdomain.Goal
	if err := s.db.WithContext(ctx).Where("id = ?", goalID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, budgetdomain.ErrGoalNotFound
		}
		return nil, err
	}
	return &goal, nil
}

func (s *Store) CreateGoal(ctx context.Context, goal *budgetdomain.Goal) error {
	return s.db.WithContext(ctx).Create(goal).Error
}

func (s *Store) DeleteGoal(ctx context.Context, goalID string) error {
	return s.db.WithContext(ctx).Delete(&budgetdomain.Goal{}, "id = ?", goalID).Error
}
