package reconcile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucasCaro97/aserradero-tesoreria/internal/common"
	"github.com/LucasCaro97/aserradero-tesoreria/internal/entity"
	"github.com/LucasCaro97/aserradero-tesoreria/internal/money"
)

var (
	chequeMethod   = &entity.PaymentMethod{ID: 3, Name: "Cheque Propio", Active: true}
	efectivoMethod = &entity.PaymentMethod{ID: 1, Name: "Efectivo", Active: true}
)

func portfolio(amounts ...string) map[int64]entity.Check {
	checks := make([]entity.Check, len(amounts))
	for i, a := range amounts {
		checks[i] = entity.Check{ID: int64(i + 1), Number: fmt.Sprintf("%08d", i+1), Amount: money.MustParse(a)}
	}
	return entity.IndexChecks(checks)
}

// assertKind extracts the reconcile error, checks its kind and returns it.
func assertKind(t *testing.T, err error, want Kind) *Error {
	t.Helper()
	require.Error(t, err)

	var rerr *Error
	require.True(t, errors.As(err, &rerr), "expected *reconcile.Error, got %T: %v", err, err)
	assert.Equal(t, want, rerr.Kind)
	return rerr
}

func TestValidate_InvalidAmount(t *testing.T) {
	for _, amount := range []string{"0", "-1", "-0.01"} {
		err := Validate(money.MustParse(amount), efectivoMethod, Selection{}, nil)
		assertKind(t, err, KindInvalidAmount)
		assert.ErrorIs(t, err, ErrInvalidAmount)

		// amount is checked before anything else
		err = Validate(money.MustParse(amount), chequeMethod, Selection{}, nil)
		assertKind(t, err, KindInvalidAmount)
	}
}

func TestValidate_NonCheckMethodWithoutChecks(t *testing.T) {
	for _, amount := range []string{"0.01", "1", "15000.50", "99999999.99"} {
		assert.NoError(t, Validate(money.MustParse(amount), efectivoMethod, Selection{}, nil))
	}
	assert.NoError(t, Validate(money.FromInt(10), nil, Selection{}, nil), "absent method is not check-based")
}

func TestValidate_NoChecksSelected(t *testing.T) {
	for _, amount := range []string{"0.01", "15000.50", "1000000"} {
		err := Validate(money.MustParse(amount), chequeMethod, Selection{}, portfolio("100"))
		assertKind(t, err, KindNoChecksSelected)
		assert.ErrorIs(t, err, ErrNoChecksSelected)
	}
}

func TestValidate_ExactSumSucceeds(t *testing.T) {
	available := portfolio("10000.25", "5000.25")
	err := Validate(money.MustParse("15000.50"), chequeMethod, SelectionFrom(1, 2), available)
	assert.NoError(t, err)
}

func TestValidate_ManySmallChecks(t *testing.T) {
	amounts := make([]string, 40)
	for i := range amounts {
		amounts[i] = "0.10"
	}
	available := portfolio(amounts...)
	sel := Selection{}
	for id := range available {
		sel = sel.Toggle(id)
	}
	assert.NoError(t, Validate(money.FromInt(4), chequeMethod, sel, available))
}

func TestValidate_AmountMismatch(t *testing.T) {
	available := portfolio("10000.26", "5000.25")
	err := Validate(money.MustParse("15000.50"), chequeMethod, SelectionFrom(1, 2), available)

	rerr := assertKind(t, err, KindAmountMismatch)
	assert.ErrorIs(t, err, ErrAmountMismatch)
	assert.Equal(t, "15000.50", rerr.Expected.Format())
	assert.Equal(t, "15000.51", rerr.Actual.Format())
	assert.Contains(t, err.Error(), "expected 15000.50, selected 15000.51")
	assert.False(t, rerr.Fatal())
}

func TestValidate_MismatchAboveEpsilon(t *testing.T) {
	tests := []struct{ amount, check string }{
		{"100", "100.000002"},
		{"100", "99.99"},
		{"100", "200"},
	}
	for _, tt := range tests {
		err := Validate(money.MustParse(tt.amount), chequeMethod, SelectionFrom(1), portfolio(tt.check))
		assertKind(t, err, KindAmountMismatch)
	}

	// within tolerance still passes
	assert.NoError(t, Validate(money.FromInt(100), chequeMethod, SelectionFrom(1), portfolio("100.0000009")))
}

func TestValidate_StaleSelection(t *testing.T) {
	available := portfolio("10000.25")
	err := Validate(money.MustParse("10000.25"), chequeMethod, SelectionFrom(1, 42), available)

	rerr := assertKind(t, err, KindStaleSelection)
	assert.ErrorIs(t, err, ErrStaleCheckSelection)
	assert.Equal(t, []int64{42}, rerr.CheckIDs)
}

func TestValidate_UnexpectedChecksIsFatal(t *testing.T) {
	err := Validate(money.FromInt(100), efectivoMethod, SelectionFrom(2, 1), portfolio("50", "50"))

	rerr := assertKind(t, err, KindUnexpectedChecks)
	assert.ErrorIs(t, err, ErrUnexpectedChecks)
	assert.True(t, rerr.Fatal())
	assert.True(t, IsFatal(fmt.Errorf("register: %w", err)))
	assert.Equal(t, []int64{1, 2}, rerr.CheckIDs)
}

func TestReconciler_DelegatesToValidate(t *testing.T) {
	r := NewReconciler(nil)
	ctx := context.Background()
	available := portfolio("10000.25", "5000.25")

	assert.NoError(t, r.Validate(ctx, money.MustParse("15000.50"), chequeMethod, SelectionFrom(1, 2), available))
	assertKind(t, r.Validate(ctx, money.MustParse("15000.50"), chequeMethod, SelectionFrom(1), available), KindAmountMismatch)
	assertKind(t, r.Validate(ctx, money.FromInt(1), nil, SelectionFrom(1), available), KindUnexpectedChecks)
}

// ctxHandler records the request id seen by each log call.
type ctxHandler struct {
	slog.Handler
	seen *[]string
}

func (h ctxHandler) Handle(ctx context.Context, rec slog.Record) error {
	*h.seen = append(*h.seen, rec.Message+":"+common.RequestIDFromContext(ctx))
	return nil
}

func TestReconciler_LogsWithCallerContext(t *testing.T) {
	var seen []string
	base := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug})
	r := NewReconciler(slog.New(ctxHandler{Handler: base, seen: &seen}))
	ctx := common.WithRequestID(context.Background(), "req-42")
	available := portfolio("100")

	require.NoError(t, r.Validate(ctx, money.FromInt(100), chequeMethod, SelectionFrom(1), available))
	require.Error(t, r.Validate(ctx, money.FromInt(99), chequeMethod, SelectionFrom(1), available))
	assert.Equal(t, []string{"reconcile.ok:req-42", "reconcile.rejected:req-42"}, seen)
}
