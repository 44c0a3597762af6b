package budget

import (
	"context"
	"sort"
)

type fakeCircle struct {
	name    string
	adminID string
	members map[string]bool
}

type fakeBudgetRepo struct {
	circles      map[string]*fakeCircle
	categories   map[string]*Category
	subs         map[string]*SubCategory
	transactions map[string]*Transaction
	goals        map[string]*Goal
	usageCalls   int
}

func newFakeBudgetRepo() *fakeBudgetRepo {
	return &fakeBudgetRepo{
		circles:      make(map[string]*fakeCircle),
		categories:   make(map[string]*Category),
		subs:         make(map[string]*SubCategory),
		transactions: make(map[string]*Transaction),
		goals:        make(map[string]*Goal),
	}
}

func (r *fakeBudgetRepo) addCircle(id, name, adminID string, members ...string) {
	circle := &fakeCircle{name: name, adminID: adminID, members: map[string]bool{adminID: true}}
	for _, member := range members {
		circle.members[member] = true
	}
	r.circles[id] = circle
}

func (r *fakeBudgetRepo) addCategory(id, circleID, name string) {
	r.categories[id] = &Category{ID: id, CircleID: circleID, Name: name, Icon: "🏠", Color: "#FF5733"}
}

func (r *fakeBudgetRepo) visible(userID, circleID string) bool {
	circle, ok := r.circles[circleID]
	if !ok {
		return false
	}
	return circle.adminID == userID || circle.members[userID]
}

func (r *fakeBudgetRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeBudgetRepo) view(tx *Transaction) TransactionView {
	view := TransactionView{Transaction: *tx}
	if category, ok := r.categories[tx.CategoryID]; ok {
		view.CategoryName = category.Name
		view.CategoryIcon = category.Icon
		view.CategoryColor = category.Color
		if circle, ok := r.circles[category.CircleID]; ok {
			view.CircleName = circle.name
		}
	}
	if tx.SubCategoryID != nil {
		if sub, ok := r.subs[*tx.SubCategoryID]; ok {
			view.SubCategoryName = sub.Name
		}
	}
	return view
}

func (r *fakeBudgetRepo) ListTransactionsByAuthor(ctx context.Context, authorID string) ([]TransactionView, error) {
	result := make([]TransactionView, 0)
	for _, tx := range r.transactions {
		if tx.AuthorID == authorID {
			result = append(result, r.view(tx))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].DateOfTransaction.After(result[j].DateOfTransaction)
	})
	return result, nil
}

func (r *fakeBudgetRepo) ListRecurringByAuthor(ctx context.Context, authorID string) ([]TransactionView, error) {
	all, _ := r.ListTransactionsByAuthor(ctx, authorID)
	result := make([]TransactionView, 0)
	for _, view := range all {
		if view.Recurrence {
			result = append(result, view)
		}
	}
	return result, nil
}

func (r *fakeBudgetRepo) GetTransactionByID(ctx context.Context, authorID, transactionID string) (*Transaction, error) {
	tx, ok := r.transactions[transactionID]
	if !ok || tx.AuthorID != authorID {
		return nil, ErrTransactionNotFound
	}
	copied := *tx
	return &copied, nil
}

func (r *fakeBudgetRepo) CreateTransaction(ctx context.Context, transaction *Transaction) error {
	stored := *transaction
	r.transactions[transaction.ID] = &stored
	return nil
}

func (r *fakeBudgetRepo) UpdateTransaction(ctx context.Context, transaction *Transaction) error {
	stored := *transaction
	r.transactions[transaction.ID] = &stored
	return nil
}

func (r *fakeBudgetRepo) DeleteTransaction(ctx context.Context, authorID, transactionID string) (bool, error) {
	tx, ok := r.transactions[transactionID]
	if !ok || tx.AuthorID != authorID {
		return false, nil
	}
	delete(r.transactions, transactionID)
	return true, nil
}

func (r *fakeBudgetRepo) ListVisibleCategories(ctx context.Context, userID string) ([]CategoryChoice, error) {
	result := make([]CategoryChoice, 0)
	for _, category := range r.categories {
		if r.visible(userID, category.CircleID) {
			result = append(result, CategoryChoice{Category: *category, CircleName: r.circles[category.CircleID].name})
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *fakeBudgetRepo) ListSubCategories(ctx context.Context, categoryIDs []string) (map[string][]SubCategory, error) {
	wanted := make(map[string]bool, len(categoryIDs))
	for _, id := range categoryIDs {
		wanted[id] = true
	}
	result := make(map[string][]SubCategory)
	for _, sub := range r.subs {
		if wanted[sub.CategoryID] {
			result[sub.CategoryID] = append(result[sub.CategoryID], *sub)
		}
	}
	return result, nil
}

func (r *fakeBudgetRepo) GetVisibleCategory(ctx context.Context, userID, categoryID string) (*Category, error) {
	category, ok := r.categories[categoryID]
	if !ok || !r.visible(userID, category.CircleID) {
		return nil, ErrCategoryNotFound
	}
	copied := *category
	return &copied, nil
}

func (r *fakeBudgetRepo) CategoryUsage(ctx context.Context, userID string) ([]CategoryUsage, error) {
	r.usageCalls++
	counts := make(map[string]int64)
	for _, tx := range r.transactions {
		counts[tx.CategoryID]++
	}
	result := make([]CategoryUsage, 0)
	for _, category := range r.categories {
		if r.visible(userID, category.CircleID) {
			result = append(result, CategoryUsage{Category: *category, TransactionCount: counts[category.ID]})
		}
	}
	return result, nil
}

func (r *fakeBudgetRepo) IsCircleVisible(ctx context.Context, userID, circleID string) (bool, error) {
	return r.visible(userID, circleID), nil
}

func (r *fakeBudgetRepo) IsCircleAdmin(ctx context.Context, userID, circleID string) (bool, error) {
	circle, ok := r.circles[circleID]
	return ok && circle.adminID == userID, nil
}

func (r *fakeBudgetRepo) CountCategoriesByName(ctx context.Context, circleID, name string) (int64, error) {
	var count int64
	for _, category := range r.categories {
		if category.CircleID == circleID && category.Name == name {
			count++
		}
	}
	return count, nil
}

func (r *fakeBudgetRepo) CreateCategory(ctx context.Context, category *Category) error {
	stored := *category
	r.categories[category.ID] = &stored
	return nil
}

func (r *fakeBudgetRepo) DeleteCategory(ctx context.Context, categoryID string) error {
	delete(r.categories, categoryID)
	for id, sub := range r.subs {
		if sub.CategoryID == categoryID {
			delete(r.subs, id)
		}
	}
	for id, tx := range r.transactions {
		if tx.CategoryID == categoryID {
			delete(r.transactions, id)
		}
	}
	for id, goal := range r.goals {
		if goal.CategoryID == categoryID {
			delete(r.goals, id)
		}
	}
	return nil
}

func (r *fakeBudgetRepo) GetSubCategory(ctx context.Context, subCategoryID string) (*SubCategory, error) {
	sub, ok := r.subs[subCategoryID]
	if !ok {
		return nil, ErrSubCategoryNotFound
	}
	copied := *sub
	return &copied, nil
}

func (r *fakeBudgetRepo) CreateSubCategory(ctx context.Context, subCategory *SubCategory) error {
	stored := *subCategory
	r.subs[subCategory.ID] = &stored
	return nil
}

func (r *fakeBudgetRepo) DeleteSubCategory(ctx context.Context, subCategoryID string) error {
	delete(r.subs, subCategoryID)
	return nil
}

func (r *fakeBudgetRepo) ListGoals(ctx context.Context, userID string) ([]GoalView, error) {
	result := make([]GoalView, 0)
	for _, goal := range r.goals {
		category, ok := r.categories[goal.CategoryID]
		if ok && r.visible(userID, category.CircleID) {
			result = append(result, GoalView{Goal: *goal, CategoryName: category.Name})
		}
	}
	return result, nil
}

func (r *fakeBudgetRepo) GetGoal(ctx context.Context, goalID string) (*Goal, error) {
	goal, ok := r.goals[goalID]
	if !ok {
		return nil, ErrGoalNotFound
	}
	copied := *goal
	return &copied, nil
}

func (r *fakeBudgetRepo) CreateGoal(ctx context.Context, goal *Goal) error {
	stored := *goal
	r.goals[goal.ID] = &stored
	return nil
}

func (r *fakeBudgetRepo) DeleteGoal(ctx context.Context, goalID string) error {
	delete(r.goals, goalID)
	return nil
}
