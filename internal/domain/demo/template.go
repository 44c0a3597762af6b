package demo

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	budgetdomain "budget-app-go/internal/domain/budget"
)

const (
	templateDateLayout = "02/01/2006"
	maxTextLength      = 100
)

var requiredColumns = []string{"type", "category", "date_of_transaction", "recurrence", "amount"}

// templateRow is one parsed line of the seed template. Err is set when the
// line could not be parsed; the rest of the fields are then unreliable.
type templateRow struct {
	Line                 int
	Type                 budgetdomain.TransactionType
	Category             string
	SubCategory          string
	Date                 time.Time
	Description          string
	Comment              string
	Recurrence           bool
	UnitsOfRecurrence    budgetdomain.RecurrenceUnit
	IntervalOfRecurrence int
	RecurrenceEndDate    *time.Time
	AmountCents          int64
	Err                  error
}

// parseTemplate reads a semicolon-delimited template with a header row.
// Columns are matched by header name.
func parseTemplate(r io.Reader) ([]templateRow, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrTemplateHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read template header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		columns[name] = i
	}
	missing := make([]string, 0)
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrTemplateHeader, strings.Join(missing, ", "))
	}

	rows := make([]templateRow, 0)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				rows = append(rows, templateRow{Line: parseErr.StartLine, Err: err})
				continue
			}
			return nil, fmt.Errorf("read template: %w", err)
		}
		if blank(record) {
			continue
		}
		line, _ := reader.FieldPos(0)

		get := func(name string) string {
			i, ok := columns[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}
		rows = append(rows, parseRow(line, get))
	}
	return rows, nil
}

func parseRow(line int, get func(string) string) templateRow {
	row := templateRow{
		Line:        line,
		Category:    get("category"),
		SubCategory: get("sub_category"),
		Description: get("description"),
		Comment:     get("comment"),
	}

	if len([]rune(row.Description)) > maxTextLength || len([]rune(row.Comment)) > maxTextLength {
		row.Err = budgetdomain.ErrTextTooLong
		return row
	}

	switch txType := budgetdomain.TransactionType(strings.ToLower(get("type"))); txType {
	case budgetdomain.TypeExpense, budgetdomain.TypeIncome:
		row.Type = txType
	default:
		row.Err = fmt.Errorf("type %q: %w", get("type"), budgetdomain.ErrInvalidTransactionType)
		return row
	}

	if row.Category == "" {
		row.Err = errors.New("category is empty")
		return row
	}

	date, err := time.Parse(templateDateLayout, get("date_of_transaction"))
	if err != nil {
		row.Err = fmt.Errorf("date_of_transaction: %w", err)
		return row
	}
	row.Date = date

	row.Recurrence = strings.EqualFold(get("recurrence"), "true")

	row.UnitsOfRecurrence = budgetdomain.DefaultRecurrenceUnit
	if value := get("units_of_recurrence"); value != "" {
		unit, err := budgetdomain.ParseRecurrenceUnit(strings.ToLower(value))
		if err != nil {
			row.Err = fmt.Errorf("units_of_recurrence %q: %w", value, err)
			return row
		}
		row.UnitsOfRecurrence = unit
	}

	row.IntervalOfRecurrence = budgetdomain.DefaultRecurrenceInterval
	if value := get("interval_of_recurrence"); value != "" {
		interval, err := strconv.Atoi(value)
		if err != nil || interval < 1 {
			row.Err = fmt.Errorf("interval_of_recurrence %q: %w", value, budgetdomain.ErrInvalidRecurrenceInterval)
			return row
		}
		row.IntervalOfRecurrence = interval
	}

	if value := get("recurrence_end_date"); value != "" {
		end, err := time.Parse(templateDateLayout, value)
		if err != nil {
			row.Err = fmt.Errorf("recurrence_end_date: %w", err)
			return row
		}
		row.RecurrenceEndDate = &end
	}

	amount, err := budgetdomain.ParseAmount(get("amount"))
	if err != nil {
		row.Err = fmt.Errorf("amount %q: %w", get("amount"), err)
		return row
	}
	row.AmountCents = amount

	if err := budgetdomain.ValidateRecurrence(row.Date, row.RecurrenceEndDate); err != nil {
		row.Err = err
	}
	return row
}

func blank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

// shift moves date by the distance between the anchor and today.
func shift(date, today time.Time) time.Time {
	offset := int(Anchor.Sub(date).Hours() / 24)
	return today.AddDate(0, 0, -offset)
}
