package budget

import "time"

type TransactionType string

const (
	TypeExpense TransactionType = "expense"
	TypeIncome  TransactionType = "income"
)

type RecurrenceUnit string

const (
	UnitDays   RecurrenceUnit = "days"
	UnitWeeks  RecurrenceUnit = "weeks"
	UnitMonths RecurrenceUnit = "months"
	UnitYears  RecurrenceUnit = "years"
)

type PeriodType string

const (
	PeriodRolling PeriodType = "rolling"
	PeriodFixed   PeriodType = "fixed"
)

const (
	DefaultRecurrenceUnit     = UnitMonths
	DefaultRecurrenceInterval = 1
)

type Category struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	CircleID  string    `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"size:100;not null"`
	Icon      string    `gorm:"not null"`
	Color     string    `gorm:"size:7;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

type SubCategory struct {
	ID         string    `gorm:"type:uuid;primaryKey"`
	CategoryID string    `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"size:100;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (SubCategory) TableName() string {
	return "sub_categories"
}

type Transaction struct {
	ID                   string          `gorm:"type:uuid;primaryKey"`
	CategoryID           string          `gorm:"type:uuid;not null;index"`
	SubCategoryID        *string         `gorm:"type:uuid"`
	AuthorID             string          `gorm:"type:uuid;not null;index"`
	Type                 TransactionType `gorm:"size:7;not null"`
	DateOfTransaction    time.Time       `gorm:"type:date;not null"`
	DateOfUpdate         time.Time       `gorm:"type:date;not null"`
	AmountCents          int64           `gorm:"not null"`
	Description          *string         `gorm:"size:100"`
	Comment              *string         `gorm:"size:100"`
	Recurrence           bool            `gorm:"not null"`
	UnitsOfRecurrence    *RecurrenceUnit `gorm:"size:6"`
	IntervalOfRecurrence *int
	RecurrenceEndDate    *time.Time `gorm:"type:date"`
	CreatedAt            time.Time  `gorm:"autoCreateTime"`
	UpdatedAt            time.Time  `gorm:"autoUpdateTime"`
}

type Goal struct {
	ID            string     `gorm:"type:uuid;primaryKey"`
	CategoryID    string     `gorm:"type:uuid;not null;index"`
	SubCategoryID *string    `gorm:"type:uuid"`
	AmountCents   int64      `gorm:"not null"`
	PeriodType    PeriodType `gorm:"size:7;not null"`
	Period        int        `gorm:"not null"`
	CreatedAt     time.Time  `gorm:"autoCreateTime"`
}

// CategoryChoice is a category the user may file transactions under.
type CategoryChoice struct {
	Category
	CircleName    string
	SubCategories []SubCategory `gorm:"-"`
}

type CategoryUsage struct {
	Category
	TransactionCount int64
}

type TransactionView struct {
	Transaction
	CategoryName    string
	CategoryIcon    string
	CategoryColor   string
	CircleName      string
	SubCategoryName string
}

type GoalView struct {
	Goal
	CategoryName    string
	CategoryIcon    string
	CircleName      string
	SubCategoryName string
}

type Occurrence struct {
	TransactionID string
	Date          time.Time
	Type          TransactionType
	AmountCents   int64
	Description   string
	CategoryName  string
	CategoryIcon  string
}

type TransactionInput struct {
	AuthorID             string
	CategoryID           string
	SubCategoryID        string
	Type                 TransactionType
	DateOfTransaction    time.Time
	AmountCents          int64
	Description          string
	Comment              string
	Recurrence           bool
	UnitsOfRecurrence    RecurrenceUnit
	IntervalOfRecurrence int
	RecurrenceEndDate    *time.Time
}

type CategoryInput struct {
	UserID   string
	CircleID string
	Name     string
	Icon     string
	Color    string
}

type GoalInput struct {
	UserID        string
	CategoryID    string
	SubCategoryID string
	AmountCents   int64
	PeriodType    PeriodType
	Period        int
}
