package demo

import (
	"context"

	budgetdomain "budget-app-go/internal/domain/budget"
	circlesdomain "budget-app-go/internal/domain/circles"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	// DeleteUserData removes the user's transactions and every circle the
	// user administers, with everything filed under those circles.
	DeleteUserData(ctx context.Context, userID string) error
	CreateCircle(ctx context.Context, circle *circlesdomain.Circle) error
	AddMember(ctx context.Context, member *circlesdomain.Member) error
	CreateCategory(ctx context.Context, category *budgetdomain.Category) error
	CreateSubCategory(ctx context.Context, subCategory *budgetdomain.SubCategory) error
	// FindCategoryByName matches exactly among the user's visible circles,
	// preferring circles the user administers.
	FindCategoryByName(ctx context.Context, userID, name string) (*budgetdomain.Category, error)
	FindSubCategoryByName(ctx context.Context, categoryID, name string) (*budgetdomain.SubCategory, error)
	CreateTransactions(ctx context.Context, transactions []budgetdomain.Transaction) error
}
