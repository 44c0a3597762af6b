package inmemory

import (
	"testing"
	"time"

	budgetdomain "budget-app-go/internal/domain/budget"
	circlesdomain "budget-app-go/internal/domain/circles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLMapExpires(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	m := newTTLMap[int]()
	m.now = func() time.Time { return now }

	m.set("a", 1, time.Minute)
	value, ok := m.get("a")
	require.True(t, ok)
	assert.Equal(t, 1, value)

	now = now.Add(time.Minute)
	_, ok = m.get("a")
	assert.False(t, ok)
	assert.Empty(t, m.items)

	m.set("b", 2, 0)
	_, ok = m.get("b")
	assert.False(t, ok)
}

func TestChoicesCacheReturnsCopies(t *testing.T) {
	cache := NewInMemoryChoicesCache()
	choices := []budgetdomain.CategoryChoice{{
		Category:      budgetdomain.Category{ID: "cat-1", Name: "Food"},
		SubCategories: []budgetdomain.SubCategory{{ID: "sub-1", Name: "Market"}},
	}}
	cache.SetByUserID("u-1", choices, time.Minute)

	choices[0].SubCategories[0].Name = "changed"
	cached, ok := cache.GetByUserID("u-1")
	require.True(t, ok)
	assert.Equal(t, "Market", cached[0].SubCategories[0].Name)

	cached[0].Name = "mutated"
	again, _ := cache.GetByUserID("u-1")
	assert.Equal(t, "Food", again[0].Name)

	cache.DeleteByUserID("u-1")
	_, ok = cache.GetByUserID("u-1")
	assert.False(t, ok)
}

func TestCirclesCacheClear(t *testing.T) {
	cache := NewInMemoryCirclesCache()
	circles := []circlesdomain.CircleWithMembers{{
		Circle:  circlesdomain.Circle{ID: "c-1", Name: "Family"},
		Members: []circlesdomain.MemberProfile{{UserID: "u-1", Username: "alice"}},
	}}
	cache.SetByUserID("u-1", circles, time.Minute)
	cache.SetByUserID("u-2", circles, time.Minute)

	circles[0].Members[0].Username = "changed"
	cached, ok := cache.GetByUserID("u-2")
	require.True(t, ok)
	assert.Equal(t, "alice", cached[0].Members[0].Username)

	cache.Clear()
	_, ok = cache.GetByUserID("u-1")
	assert.False(t, ok)
	_, ok = cache.GetByUserID("u-2")
	assert.False(t, ok)
}
