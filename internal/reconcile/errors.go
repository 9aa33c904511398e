package reconcile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/LucasCaro97/aserradero-tesoreria/internal/money"
)

// Kind classifies a failed validation.
type Kind string

const (
	KindInvalidAmount    Kind = "INVALID_AMOUNT"
	KindNoChecksSelected Kind = "NO_CHECKS_SELECTED"
	KindStaleSelection   Kind = "STALE_CHECK_SELECTION"
	KindAmountMismatch   Kind = "AMOUNT_MISMATCH"
	KindUnexpectedChecks Kind = "UNEXPECTED_CHECKS_FOR_METHOD"
)

// Sentinels for errors.Is.
var (
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrNoChecksSelected    = errors.New("check-based payment method requires at least one check")
	ErrStaleCheckSelection = errors.New("selected checks are no longer available")
	ErrAmountMismatch      = errors.New("selected checks do not add up to the amount")
	ErrUnexpectedChecks    = errors.New("checks linked to a payment method that does not settle with checks")
)

var sentinels = map[Kind]error{
	KindInvalidAmount:    ErrInvalidAmount,
	KindNoChecksSelected: ErrNoChecksSelected,
	KindStaleSelection:   ErrStaleCheckSelection,
	KindAmountMismatch:   ErrAmountMismatch,
	KindUnexpectedChecks: ErrUnexpectedChecks,
}

// Error is a validation failure returned as a value.
// Expected and Actual are set for KindAmountMismatch; CheckIDs for
// KindStaleSelection and KindUnexpectedChecks.
type Error struct {
	Kind     Kind
	Expected money.Money
	Actual   money.Money
	CheckIDs []int64
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindAmountMismatch:
		return fmt.Sprintf("%s: %v (expected %s, selected %s)", e.Kind, sentinels[e.Kind], e.Expected.Format(), e.Actual.Format())
	case KindStaleSelection, KindUnexpectedChecks:
		return fmt.Sprintf("%s: %v (checks %s)", e.Kind, sentinels[e.Kind], joinIDs(e.CheckIDs))
	}
	return fmt.Sprintf("%s: %v", e.Kind, sentinels[e.Kind])
}

func (e *Error) Unwrap() error { return sentinels[e.Kind] }

// Fatal reports a caller bug rather than something the user can fix.
func (e *Error) Fatal() bool { return e.Kind == KindUnexpectedChecks }

// IsFatal reports whether err carries a fatal reconciliation failure.
func IsFatal(err error) bool {
	var rerr *Error
	return errors.As(err, &rerr) && rerr.Fatal()
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, ",")
}
