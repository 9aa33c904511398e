package reconcile

import (
	"context"
	"log/slog"

	"github.com/LucasCaro97/aserradero-tesoreria/internal/entity"
	"github.com/LucasCaro97/aserradero-tesoreria/internal/money"
)

// Validate checks a candidate transaction. It has no side effects; failures
// come back as *Error.
func Validate(amount money.Money, method *entity.PaymentMethod, selection Selection, available map[int64]entity.Check) error {
	if !amount.IsPositive() {
		return &Error{Kind: KindInvalidAmount}
	}

	if !IsCheckBased(method) {
		if !selection.IsEmpty() {
			return &Error{Kind: KindUnexpectedChecks, CheckIDs: selection.OrderedIDs()}
		}
		return nil
	}

	if selection.IsEmpty() {
		return &Error{Kind: KindNoChecksSelected}
	}
	if missing := selection.Missing(available); len(missing) > 0 {
		return &Error{Kind: KindStaleSelection, CheckIDs: missing}
	}

	total := selection.TotalAmount(available)
	if !money.IsReconciled(total, amount) {
		return &Error{Kind: KindAmountMismatch, Expected: amount, Actual: total}
	}
	return nil
}

// Reconciler is Validate with logging, for service code.
type Reconciler struct {
	logger *slog.Logger
}

func NewReconciler(logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{logger: logger}
}

func (r *Reconciler) Validate(ctx context.Context, amount money.Money, method *entity.PaymentMethod, selection Selection, available map[int64]entity.Check) error {
	err := Validate(amount, method, selection, available)
	methodID := int64(0)
	if method != nil {
		methodID = method.ID
	}
	if err != nil {
		level := slog.LevelInfo
		if IsFatal(err) {
			level = slog.LevelError
		}
		r.logger.Log(ctx, level, "reconcile.rejected",
			"method_id", methodID,
			"amount", amount.Format(),
			"checks", selection.Len(),
			"error", err,
		)
		return err
	}
	r.logger.DebugContext(ctx, "reconcile.ok",
		"method_id", methodID,
		"amount", amount.Format(),
		"checks", selection.Len(),
		"check_based", IsCheckBased(method),
	)
	return nil
}
