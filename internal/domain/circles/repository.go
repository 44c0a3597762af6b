package circles

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	CreateCircle(ctx context.Context, circle *Circle) error
	GetCircle(ctx context.Context, circleID string) (*Circle, error)
	ListCirclesByUser(ctx context.Context, userID string) ([]Circle, error)
	ListMembers(ctx context.Context, circleIDs []string) (map[string][]MemberProfile, error)
	AddMember(ctx context.Context, member *Member) error
	IsMember(ctx context.Context, circleID, userID string) (bool, error)
	DeleteMember(ctx context.Context, circleID, userID string) (bool, error)
	DeleteCircle(ctx context.Context, circleID string) error
	GetUserIDByUsername(ctx context.Context, username string) (string, error)
	CreateStarterCategory(ctx context.Context, category *StarterCategory) error
}
