package budget

import "time"

type ChoicesCache interface {
	GetByUserID(userID string) ([]CategoryChoice, bool)
	SetByUserID(userID string, choices []CategoryChoice, ttl time.Duration)
	DeleteByUserID(userID string)
	Clear()
}

type noopChoicesCache struct{}

func (noopChoicesCache) GetByUserID(string) ([]CategoryChoice, bool) {
	return nil, false
}

func (noopChoicesCache) SetByUserID(string, []CategoryChoice, time.Duration) {}

func (noopChoicesCache) DeleteByUserID(string) {}

func (noopChoicesCache) Clear() {}
