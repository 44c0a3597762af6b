package circles

import "time"

const (
	PersonalCircleName      = "Personal"
	PersonalDefaultCategory = "Miscellaneous"
)

type Circle struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:100;not null"`
	AdminID   string    `gorm:"type:uuid;not null;index"`
	Icon      string    `gorm:"not null"`
	Color     string    `gorm:"size:7;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

type Member struct {
	CircleID string    `gorm:"type:uuid;primaryKey"`
	UserID   string    `gorm:"type:uuid;primaryKey"`
	JoinedAt time.Time `gorm:"autoCreateTime"`
}

func (Member) TableName() string {
	return "circle_members"
}

// StarterCategory is the category row written when a circle is bootstrapped.
type StarterCategory struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	CircleID  string    `gorm:"type:uuid;not null"`
	Name      string    `gorm:"size:100;not null"`
	Icon      string    `gorm:"not null"`
	Color     string    `gorm:"size:7;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (StarterCategory) TableName() string {
	return "categories"
}

type MemberProfile struct {
	UserID   string
	Username string
	JoinedAt time.Time
}

type CircleWithMembers struct {
	Circle
	Members []MemberProfile
}

type CreateCircleInput struct {
	AdminID string
	Name    string
	Icon    string
	Color   string
}
