package inmemory

import (
	"time"

	budgetdomain "budget-app-go/internal/domain/budget"
)

type InMemoryChoicesCache struct {
	items *ttlMap[[]budgetdomain.CategoryChoice]
}

func NewInMemoryChoicesCache() *InMemoryChoicesCache {
	return &InMemoryChoicesCache{
		items: newTTLMap[[]budgetdomain.CategoryChoice](),
	}
}

func (c *InMemoryChoicesCache) GetByUserID(userID string) ([]budgetdomain.CategoryChoice, bool) {
	choices, ok := c.items.get(userID)
	if !ok {
		return nil, false
	}
	return cloneChoices(choices), true
}

func (c *InMemoryChoicesCache) SetByUserID(userID string, choices []budgetdomain.CategoryChoice, ttl time.Duration) {
	c.items.set(userID, cloneChoices(choices), ttl)
}

func (c *InMemoryChoicesCache) DeleteByUserID(userID string) {
	c.items.delete(userID)
}

func (c *InMemoryChoicesCache) Clear() {
	c.items.clear()
}

func cloneChoices(choices []budgetdomain.CategoryChoice) []budgetdomain.CategoryChoice {
	if choices == nil {
		return nil
	}
	cloned := make([]budgetdomain.CategoryChoice, len(choices))
	for i := range choices {
		cloned[i] = choices[i]
		if choices[i].SubCategories != nil {
			cloned[i].SubCategories = append([]budgetdomain.SubCategory(nil), choices[i].SubCategories...)
		}
	}
	return cloned
}
