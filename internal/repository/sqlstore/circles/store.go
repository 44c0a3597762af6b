package circles

import (
	"context"
	"errors"
	"time"

	circlesdomain "budget-app-go/internal/domain/circles"
	userdomain "budget-app-go/internal/domain/user"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Transaction(ctx context.Context, fn func(circlesdomain.Repository) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func (s *Store) CreateCircle(ctx context.Context, circle *circlesdomain.Circle) error {
	return s.db.WithContext(ctx).Create(circle).Error
}

func (s *Store) GetCircle(ctx context.Context, circleID string) (*circlesdomain.Circle, error) {
	var circle circlesdomain.Circle
	if err := s.db.WithContext(ctx).Where("id = ?", circleID).First(&circle).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, circlesdomain.ErrCircleNotFound
		}
		return nil, err
	}
	return &circle, nil
}

func (s *Store) ListCirclesByUser(ctx context.Context, userID string) ([]circlesdomain.Circle, error) {
	var circles []circlesdomain.Circle
	if err := s.db.WithContext(ctx).
		Where("admin_id = ? OR id IN (?)", userID,
			s.db.Model(&circlesdomain.Member{}).Select("circle_id").Where("user_id = ?", userID)).
		Order("name asc, id asc").
		Find(&circles).Error; err != nil {
		return nil, err
	}
	return circles, nil
}

func (s *Store) ListMembers(ctx context.Context, circleIDs []string) (map[string][]circlesdomain.MemberProfile, error) {
	result := make(map[string][]circlesdomain.MemberProfile, len(circleIDs))
	if len(circleIDs) == 0 {
		return result, nil
	}

	type memberRow struct {
		CircleID string    `gorm:"column:circle_id"`
		UserID   string    `gorm:"column:user_id"`
		Username string    `gorm:"column:username"`
		JoinedAt time.Time `gorm:"column:joined_at"`
	}

	var rows []memberRow
	if err := s.db.WithContext(ctx).
		Table("circle_members").
		Select("circle_members.circle_id, circle_members.user_id, users.username, circle_members.joined_at").
		Joins("join users on users.id = circle_members.user_id").
		Where("circle_members.circle_id IN ?", circleIDs).
		Order("circle_members.joined_at asc, users.username asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.CircleID] = append(result[row.CircleID], circlesdomain.MemberProfile{
			UserID:   row.UserID,
			Username: row.Username,
			JoinedAt: row.JoinedAt,
		})
	}
	return result, nil
}

func (s *Store) AddMember(ctx context.Context, member *circlesdomain.Member) error {
	err := s.db.WithContext(ctx).Create(member).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return circlesdomain.ErrAlreadyMember
	}
	return err
}

func (s *Store) IsMember(ctx context.Context, circleID, userID string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&circlesdomain.Member{}).
		Where("circle_id = ? AND user_id = ?", circleID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) DeleteMember(ctx context.Context, circleID, userID string) (bool, error) {
	result := s.db.WithContext(ctx).Delete(&circlesdomain.Member{}, "circle_id = ? AND user_id = ?", circleID, userID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteCircle relies on ON DELETE CASCADE for members, categories and
// everything filed under them.
func (s *Store) DeleteCircle(ctx context.Context, circleID string) error {
	return s.db.WithContext(ctx).Delete(&circlesdomain.Circle{}, "id = ?", circleID).Error
}

func (s *Store) GetUserIDByUsername(ctx context.Context, username string) (string, error) {
	var user userdomain.User
	if err := s.db.WithContext(ctx).Select("id").Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", circlesdomain.ErrUserNotFound
		}
		return "", err
	}
	return user.ID, nil
}

func (s *Store) CreateStarterCategory(ctx context.Context, category *circlesdomain.StarterCategory) error {
	return s.db.WithContext(ctx).Create(category).Error
}
