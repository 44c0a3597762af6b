package circles

import "time"

// Cache holds the circles visible to a user.
type Cache interface {
	GetByUserID(userID string) ([]CircleWithMembers, bool)
	SetByUserID(userID string, circles []CircleWithMembers, ttl time.Duration)
	DeleteByUserID(userID string)
	Clear()
}

type noopCache struct{}

func (noopCache) GetByUserID(string) ([]CircleWithMembers, bool) {
	return nil, false
}

func (noopCache) SetByUserID(string, []CircleWithMembers, time.Duration) {}

func (noopCache) DeleteByUserID(string) {}

func (noopCache) Clear() {}

// Invalidator is told which users' derived data went stale after a
// membership or circle change.
type Invalidator interface {
	InvalidateUsers(userIDs ...string)
}

type noopInvalidator struct{}

func (noopInvalidator) InvalidateUsers(...string) {}
