package inmemory

import (
	"time"

	circlesdomain "budget-app-go/internal/domain/circles"
)

type InMemoryCirclesCache struct {
	items *ttlMap[[]circlesdomain.CircleWithMembers]
}

func NewInMemoryCirclesCache() *InMemoryCirclesCache {
	return &InMemoryCirclesCache{
		items: newTTLMap[[]circlesdomain.CircleWithMembers](),
	}
}

func (c *InMemoryCirclesCache) GetByUserID(userID string) ([]circlesdomain.CircleWithMembers, bool) {
	circles, ok := c.items.get(userID)
	if !ok {
		return nil, false
	}
	return cloneCircles(circles), true
}

func (c *InMemoryCirclesCache) SetByUserID(userID string, circles []circlesdomain.CircleWithMembers, ttl time.Duration) {
	c.items.set(userID, cloneCircles(circles), ttl)
}

func (c *InMemoryCirclesCache) DeleteByUserID(userID string) {
	c.items.delete(userID)
}

func (c *InMemoryCirclesCache) Clear() {
	c.items.clear()
}

func cloneCircles(circles []circlesdomain.CircleWithMembers) []circlesdomain.CircleWithMembers {
	if circles == nil {
		return nil
	}
	cloned := make([]circlesdomain.CircleWithMembers, len(circles))
	for i := range circles {
		cloned[i] = circles[i]
		if circles[i].Members != nil {
			cloned[i].Members = append([]circlesdomain.MemberProfile(nil), circles[i].Members...)
		}
	}
	return cloned
}
