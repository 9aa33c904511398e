// Package form models the income/expense registration form as an immutable
// value. Each transition returns a new Transaction; the reconciliation rules
// themselves live in package reconcile.
package form

import (
	"errors"
	"strings"

	"github.com/LucasCaro97/aserradero-tesoreria/constants"
	"github.com/LucasCaro97/aserradero-tesoreria/internal/entity"
	"github.com/LucasCaro97/aserradero-tesoreria/internal/money"
	"github.com/LucasCaro97/aserradero-tesoreria/internal/reconcile"
)

// ErrNoPaymentMethod is returned by Build when no method was chosen.
var ErrNoPaymentMethod = errors.New("payment method is required")

// Transaction is the state of one registration form session.
type Transaction struct {
	kind        constants.TransactionKind
	amount      money.Money
	date        entity.Date
	observation string
	method      *entity.PaymentMethod
	available   map[int64]entity.Check
	selection   reconcile.Selection
}

// New starts an empty form for income or expense.
func New(kind constants.TransactionKind) Transaction {
	return Transaction{kind: kind}
}

func (f Transaction) WithAmount(m money.Money) Transaction {
	f.amount = m
	return f
}

func (f Transaction) WithDate(d entity.Date) Transaction {
	f.date = d
	return f
}

func (f Transaction) WithObservation(s string) Transaction {
	f.observation = strings.TrimSpace(s)
	return f
}

// WithMethod sets the payment method. Switching to a different method
// discards the current check selection.
func (f Transaction) WithMethod(m *entity.PaymentMethod) Transaction {
	if !sameMethod(f.method, m) {
		f.selection = f.selection.Clear()
	}
	if m != nil {
		cp := *m
		m = &cp
	}
	f.method = m
	return f
}

// WithAvailableChecks replaces the list of checks offered for selection.
// Selected ids that disappear are kept so Validate can report them.
func (f Transaction) WithAvailableChecks(checks []entity.Check) Transaction {
	f.available = entity.IndexChecks(checks)
	return f
}

// ToggleCheck selects or deselects a check.
func (f Transaction) ToggleCheck(id int64) Transaction {
	f.selection = f.selection.Toggle(id)
	return f
}

// Reset keeps the kind and clears everything else.
func (f Transaction) Reset() Transaction {
	return New(f.kind)
}

func (f Transaction) Kind() constants.TransactionKind { return f.kind }
func (f Transaction) Amount() money.Money { return f.amount }
func (f Transaction) Date() entity.Date { return f.date }
func (f Transaction) Method() *entity.PaymentMethod { return f.method }
func (f Transaction) Selection() reconcile.Selection { return f.selection }

// Available is the indexed list of checks currently offered. Callers must not modify it.
func (f Transaction) Available() map[int64]entity.Check { return f.available }

// IsCheckBased reports whether the current method requires checks.
func (f Transaction) IsCheckBased() bool { return reconcile.IsCheckBased(f.method) }

// SelectedTotal is the sum of the selected checks still available.
func (f Transaction) SelectedTotal() money.Money {
	return f.selection.TotalAmount(f.available)
}

// Difference is amount minus the selected total; zero once reconciled.
func (f Transaction) Difference() money.Money {
	return f.amount.Sub(f.SelectedTotal())
}

// Validate runs the reconciliation rule on the current state.
func (f Transaction) Validate() error {
	return reconcile.Validate(f.amount, f.method, f.selection, f.available)
}

// Build validates the form and produces the submission for dailyRecordID.
func (f Transaction) Build(dailyRecordID int64) (entity.Transaction, error) {
	if err := f.Validate(); err != nil {
		return entity.Transaction{}, err
	}
	if f.method == nil {
		return entity.Transaction{}, ErrNoPaymentMethod
	}
	linked := []int64{}
	if f.IsCheckBased() {
		linked = f.selection.OrderedIDs()
	}
	return entity.Transaction{
		Kind:            f.kind,
		Amount:          f.amount,
		PaymentMethodID: f.method.ID,
		DailyRecordID:   dailyRecordID,
		Observation:     f.observation,
		LinkedCheckIDs:  linked,
	}, nil
}

func sameMethod(a, b *entity.PaymentMethod) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID
}
