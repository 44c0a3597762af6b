package circles

import (
	"context"
	"strings"
	"time"

	"budget-app-go/internal/domain/palette"
	"github.com/google/uuid"
)

const (
	maxCircleNameLength = 100
	defaultCacheTTL     = time.Minute
)

type Service struct {
	repo        Repository
	cache       Cache
	cacheTTL    time.Duration
	invalidator Invalidator
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:        repo,
		cache:       noopCache{},
		cacheTTL:    defaultCacheTTL,
		invalidator: noopInvalidator{},
	}
}

func (s *Service) WithCache(cache Cache, ttl time.Duration) *Service {
	if cache != nil {
		s.cache = cache
	}
	if ttl > 0 {
		s.cacheTTL = ttl
	}
	return s
}

// WithInvalidator registers a consumer of membership changes, such as the
// category choices cache.
func (s *Service) WithInvalidator(invalidator Invalidator) *Service {
	if invalidator != nil {
		s.invalidator = invalidator
	}
	return s
}

// ListForUser returns circles the user administers or belongs to, with members.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]CircleWithMembers, error) {
	if cached, ok := s.cache.GetByUserID(userID); ok {
		return cached, nil
	}

	circles, err := s.repo.ListCirclesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(circles))
	for _, circle := range circles {
		ids = append(ids, circle.ID)
	}
	members, err := s.repo.ListMembers(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]CircleWithMembers, 0, len(circles))
	for _, circle := range circles {
		result = append(result, CircleWithMembers{Circle: circle, Members: members[circle.ID]})
	}

	s.cache.SetByUserID(userID, result, s.cacheTTL)
	return result, nil
}

func (s *Service) Create(ctx context.Context, input CreateCircleInput) (*Circle, error) {
	circle, err := newCircle(input)
	if err != nil {
		return nil, err
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		return createWithAdmin(ctx, tx, circle)
	})
	if err != nil {
		return nil, err
	}

	s.changed(input.AdminID)
	return circle, nil
}

// SetupPersonalSpace gives a freshly registered user a "Personal" circle
// holding a single "Miscellaneous" category.
func (s *Service) SetupPersonalSpace(ctx context.Context, userID string) (*Circle, error) {
	circle, err := newCircle(CreateCircleInput{
		AdminID: userID,
		Name:    PersonalCircleName,
		Icon:    palette.DefaultIcon,
		Color:   palette.DefaultColor,
	})
	if err != nil {
		return nil, err
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := createWithAdmin(ctx, tx, circle); err != nil {
			return err
		}
		return tx.CreateStarterCategory(ctx, &StarterCategory{
			ID:       uuid.NewString(),
			CircleID: circle.ID,
			Name:     PersonalDefaultCategory,
			Icon:     palette.DefaultIcon,
			Color:    palette.DefaultColor,
		})
	})
	if err != nil {
		return nil, err
	}

	s.changed(userID)
	return circle, nil
}

// AddMember adds the user with the given username. Only the admin may do it.
func (s *Service) AddMember(ctx context.Context, actorID, circleID, username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", ErrUserNotFound
	}

	var memberID string
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		circle, err := tx.GetCircle(ctx, circleID)
		if err != nil {
			return err
		}
		if circle.AdminID != actorID {
			return ErrNotAdmin
		}

		memberID, err = tx.GetUserIDByUsername(ctx, username)
		if err != nil {
			return err
		}

		already, err := tx.IsMember(ctx, circleID, memberID)
		if err != nil {
			return err
		}
		if already {
			return ErrAlreadyMember
		}

		return tx.AddMember(ctx, &Member{CircleID: circleID, UserID: memberID})
	})
	if err != nil {
		return "", err
	}

	s.changed(actorID, memberID)
	return memberID, nil
}

// RemoveMember lets the admin remove anyone but themselves, and lets a
// member leave.
func (s *Service) RemoveMember(ctx context.Context, actorID, circleID, userID string) error {
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		circle, err := tx.GetCircle(ctx, circleID)
		if err != nil {
			return err
		}
		if circle.AdminID == userID {
			return ErrCannotRemoveAdmin
		}
		if circle.AdminID != actorID && actorID != userID {
			return ErrNotAdmin
		}

		deleted, err := tx.DeleteMember(ctx, circleID, userID)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrMemberNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.changed(actorID, userID)
	return nil
}

// Delete removes the circle. Categories, sub-categories, goals and
// transactions under it go with it.
func (s *Service) Delete(ctx context.Context, actorID, circleID string) error {
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		circle, err := tx.GetCircle(ctx, circleID)
		if err != nil {
			return err
		}
		if circle.AdminID != actorID {
			return ErrNotAdmin
		}
		return tx.DeleteCircle(ctx, circleID)
	})
	if err != nil {
		return err
	}

	s.cache.Clear()
	s.invalidator.InvalidateUsers()
	return nil
}

// InvalidateUsers drops cached circles for the given users, or for everyone
// when called without arguments.
func (s *Service) InvalidateUsers(userIDs ...string) {
	if len(userIDs) == 0 {
		s.cache.Clear()
		return
	}
	for _, id := range userIDs {
		s.cache.DeleteByUserID(id)
	}
}

func (s *Service) changed(userIDs ...string) {
	if len(userIDs) == 0 {
		return
	}
	// Membership changes reshape every member's view of the circle.
	s.cache.Clear()
	s.invalidator.InvalidateUsers(userIDs...)
}

func createWithAdmin(ctx context.Context, tx Repository, circle *Circle) error {
	if err := tx.CreateCircle(ctx, circle); err != nil {
		return err
	}
	return tx.AddMember(ctx, &Member{CircleID: circle.ID, UserID: circle.AdminID})
}

func newCircle(input CreateCircleInput) (*Circle, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || len([]rune(name)) > maxCircleNameLength {
		return nil, ErrInvalidCircleName
	}
	icon, err := palette.NormalizeIcon(input.Icon)
	if err != nil {
		return nil, err
	}
	color, err := palette.NormalizeColor(input.Color)
	if err != nil {
		return nil, err
	}

	return &Circle{
		ID:      uuid.NewString(),
		Name:    name,
		AdminID: input.AdminID,
		Icon:    icon,
		Color:   color,
	}, nil
}
