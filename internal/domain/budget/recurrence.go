package budget

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

const recurrenceEndMessage = "Recurrence end date must be after the date of transaction."

// ValidateRecurrence rejects an end date that is not strictly after the
// transaction date. A missing end date is always valid.
func ValidateRecurrence(dateOfTransaction time.Time, recurrenceEndDate *time.Time) error {
	if recurrenceEndDate == nil {
		return nil
	}
	if !dateOnly(*recurrenceEndDate).After(dateOnly(dateOfTransaction)) {
		return invalid("recurrence_end_date", recurrenceEndMessage, ErrRecurrenceEndNotAfterDate)
	}
	return nil
}

func ParseRecurrenceUnit(value string) (RecurrenceUnit, error) {
	switch unit := RecurrenceUnit(value); unit {
	case UnitDays, UnitWeeks, UnitMonths, UnitYears:
		return unit, nil
	default:
		return "", ErrInvalidRecurrenceUnit
	}
}

func (u RecurrenceUnit) frequency() (rrule.Frequency, error) {
	switch u {
	case UnitDays:
		return rrule.DAILY, nil
	case UnitWeeks:
		return rrule.WEEKLY, nil
	case UnitMonths:
		return rrule.MONTHLY, nil
	case UnitYears:
		return rrule.YEARLY, nil
	default:
		return 0, ErrInvalidRecurrenceUnit
	}
}

// Schedule builds the RFC 5545 rule for a recurring transaction. Monthly
// rules anchored on the 29th-31st skip months that lack that day.
func Schedule(tx Transaction) (*rrule.RRule, error) {
	if !tx.Recurrence {
		return nil, fmt.Errorf("transaction %s is not recurring", tx.ID)
	}

	unit := DefaultRecurrenceUnit
	if tx.UnitsOfRecurrence != nil {
		unit = *tx.UnitsOfRecurrence
	}
	freq, err := unit.frequency()
	if err != nil {
		return nil, err
	}

	interval := DefaultRecurrenceInterval
	if tx.IntervalOfRecurrence != nil {
		interval = *tx.IntervalOfRecurrence
	}
	if interval < 1 {
		return nil, ErrInvalidRecurrenceInterval
	}

	option := rrule.ROption{
		Freq:     freq,
		Interval: interval,
		Dtstart:  dateOnly(tx.DateOfTransaction),
	}
	if tx.RecurrenceEndDate != nil {
		option.Until = dateOnly(*tx.RecurrenceEndDate)
	}
	return rrule.NewRRule(option)
}

// Occurrences lists the dates of a recurring transaction between from and
// to, both inclusive.
func Occurrences(tx Transaction, from, to time.Time) ([]time.Time, error) {
	rule, err := Schedule(tx)
	if err != nil {
		return nil, err
	}
	return rule.Between(dateOnly(from), dateOnly(to), true), nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
