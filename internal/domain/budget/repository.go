package budget

import "context"

// Repository scopes reads to what a user can see: categories under circles
// they administer or belong to, and transactions they authored.
type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	ListTransactionsByAuthor(ctx context.Context, authorID string) ([]TransactionView, error)
	ListRecurringByAuthor(ctx context.Context, authorID string) ([]TransactionView, error)
	GetTransactionByID(ctx context.Context, authorID, transactionID string) (*Transaction, error)
	CreateTransaction(ctx context.Context, transaction *Transaction) error
	UpdateTransaction(ctx context.Context, transaction *Transaction) error
	DeleteTransaction(ctx context.Context, authorID, transactionID string) (bool, error)

	ListVisibleCategories(ctx context.Context, userID string) ([]CategoryChoice, error)
	ListSubCategories(ctx context.Context, categoryIDs []string) (map[string][]SubCategory, error)
	GetVisibleCategory(ctx context.Context, userID, categoryID string) (*Category, error)
	CategoryUsage(ctx context.Context, userID string) ([]CategoryUsage, error)
	IsCircleVisible(ctx context.Context, userID, circleID string) (bool, error)
	IsCircleAdmin(ctx context.Context, userID, circleID string) (bool, error)
	CountCategoriesByName(ctx context.Context, circleID, name string) (int64, error)
	CreateCategory(ctx context.Context, category *Category) error
	DeleteCategory(ctx context.Context, categoryID string) error
	GetSubCategory(ctx context.Context, subCategoryID string) (*SubCategory, error)
	CreateSubCategory(ctx context.Context, subCategory *SubCategory) error
	DeleteSubCategory(ctx context.Context, subCategoryID string) error

	ListGoals(ctx context.Context, userID string) ([]GoalView, error)
	GetGoal(ctx context.Context, goalID string) (*Goal, error)
	CreateGoal(ctx context.Context, goal *Goal) error
	DeleteGoal(ctx context.Context, goalID string) error
}
