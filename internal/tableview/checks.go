package tableview

import (
	"fmt"
	"strings"

	"github.com/LucasCaro97/aserradero-tesoreria/constants"
	"github.com/LucasCaro97/aserradero-tesoreria/internal/entity"
)

// Sort keys accepted by CheckOrder.
const (
	SortByDueDate = "vencimiento"
	SortByAmount  = "monto"
	SortByNumber  = "numero"
)

func WithStatus(status constants.CheckStatus) func(entity.Check) bool {
	return func(c entity.Check) bool { return c.Status == status }
}

func WithDirection(direction constants.CheckDirection) func(entity.Check) bool {
	return func(c entity.Check) bool { return c.Direction == direction }
}

// ValidateRange rejects a from date after the to date. Zero dates are open ends.
func ValidateRange(from, to entity.Date) error {
	if !from.IsZero() && !to.IsZero() && from.After(to.Time) {
		return fmt.Errorf("date range: from %s is after to %s", from, to)
	}
	return nil
}

// DueBetween keeps checks due in [from, to]; zero bounds are open. Checks
// without a due date only pass an unbounded range.
func DueBetween(from, to entity.Date) (func(entity.Check) bool, error) {
	if err := ValidateRange(from, to); err != nil {
		return nil, err
	}
	if from.IsZero() && to.IsZero() {
		return nil, nil
	}
	return func(c entity.Check) bool {
		if c.DueDate.IsZero() {
			return false
		}
		if !from.IsZero() && c.DueDate.Before(from.Time) {
			return false
		}
		if !to.IsZero() && c.DueDate.After(to.Time) {
			return false
		}
		return true
	}, nil
}

// CheckOrder returns the comparator for a sort key; unknown keys are an error.
func CheckOrder(key string) (func(a, b entity.Check) int, error) {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", SortByDueDate:
		return func(a, b entity.Check) int { return a.DueDate.Compare(b.DueDate.Time) }, nil
	case SortByAmount:
		return func(a, b entity.Check) int { return a.Amount.Cmp(b.Amount) }, nil
	case SortByNumber:
		return func(a, b entity.Check) int { return strings.Compare(a.Number, b.Number) }, nil
	}
	return nil, fmt.Errorf("unknown sort key %q (use %s, %s or %s)", key, SortByDueDate, SortByAmount, SortByNumber)
}
