package registration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/LucasCaro97/aserradero-tesoreria/constants"
	"github.com/LucasCaro97/aserradero-tesoreria/internal/common"
	"github.com/LucasCaro97/aserradero-tesoreria/internal/entity"
	"github.com/LucasCaro97/aserradero-tesoreria/internal/form"
	"github.com/LucasCaro97/aserradero-tesoreria/internal/ledger"
	"github.com/LucasCaro97/aserradero-tesoreria/internal/money"
	"github.com/LucasCaro97/aserradero-tesoreria/internal/reconcile"
)

// Gateway is the part of the ledger backend the service needs. *ledger.Client satisfies it.
type Gateway interface {
	GetPaymentMethod(ctx context.Context, id int64) (*entity.PaymentMethod, error)
	ListPendingChecks(ctx context.Context, direction constants.CheckDirection) ([]entity.Check, error)
	ListRecentRecords(ctx context.Context, n int) ([]entity.DailyRecord, error)
	CreateRecord(ctx context.Context, date entity.Date) (entity.DailyRecord, error)
	CreateTransaction(ctx context.Context, tx entity.Transaction) (entity.CreatedTransaction, error)
}

// Request is one income or expense to register.
type Request struct {
	Kind            constants.TransactionKind
	Amount          money.Money
	PaymentMethodID int64
	Date            entity.Date
	Observation     string
	CheckIDs        []int64
}

// Result is what got stored.
type Result struct {
	Record      entity.DailyRecord
	Transaction entity.CreatedTransaction
}

const maxObservationLength = 255

// knownKind accepts only the exact backend kinds; "ingreso" is not INGRESO.
func knownKind(fieldName string, value interface{}) *common.ValidationError {
	if k, ok := value.(constants.TransactionKind); ok && k.Valid() {
		return nil
	}
	return &common.ValidationError{
		Field:   fieldName,
		Value:   value,
		Message: fmt.Sprintf("must be %s or %s", constants.Income, constants.Expense),
	}
}

type Service struct {
	gateway       Gateway
	reconciler    *reconcile.Reconciler
	recentRecords int
	logger        *slog.Logger
}

type Option func(*Service)

// WithRecentRecords sets how many recent daily records are searched before creating one.
func WithRecentRecords(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.recentRecords = n
		}
	}
}

func NewService(gateway Gateway, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		gateway:       gateway,
		reconciler:    reconcile.NewReconciler(logger),
		recentRecords: 10,
		logger:        logger,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// AvailableChecks lists the pending checks that can settle a transaction of kind.
func (s *Service) AvailableChecks(ctx context.Context, kind constants.TransactionKind) ([]entity.Check, error) {
	return s.gateway.ListPendingChecks(ctx, kind.SettlingDirection())
}

// EnsureDailyRecord returns the daily record for date, creating it when the
// recent list does not have it yet.
func (s *Service) EnsureDailyRecord(ctx context.Context, date entity.Date) (entity.DailyRecord, error) {
	if rec, ok, err := s.findRecent(ctx, date); err != nil || ok {
		return rec, err
	}

	rec, err := s.gateway.CreateRecord(ctx, date)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, ledger.ErrDuplicateRecordForDate) {
		return entity.DailyRecord{}, err
	}
	// created concurrently by someone else; pick the existing one
	existing, ok, lerr := s.findRecent(ctx, date)
	if lerr != nil {
		return entity.DailyRecord{}, lerr
	}
	if !ok {
		return entity.DailyRecord{}, err
	}
	s.logger.Info("registration.record.reused", "record_id", existing.ID, "date", date.String())
	return existing, nil
}

func (s *Service) findRecent(ctx context.Context, date entity.Date) (entity.DailyRecord, bool, error) {
	recent, err := s.gateway.ListRecentRecords(ctx, s.recentRecords)
	if err != nil {
		return entity.DailyRecord{}, false, fmt.Errorf("list recent records: %w", err)
	}
	for _, r := range recent {
		if r.Date.SameDay(date) {
			return r, true, nil
		}
	}
	return entity.DailyRecord{}, false, nil
}

// Register validates req and, when it reconciles, stores it under the daily
// record of req.Date. Nothing is written when validation fails.
func (s *Service) Register(ctx context.Context, req Request) (Result, error) {
	start := time.Now()

	v := common.NewValidator().
		Field("kind", req.Kind, knownKind).
		Field("amount", req.Amount, common.PositiveAmount).
		Field("payment_method_id", req.PaymentMethodID, common.Required).
		Field("date", req.Date, common.Required).
		Field("observation", req.Observation, common.MaxLength(maxObservationLength))
	if err := v.Err(); err != nil {
		return Result{}, err
	}

	method, err := s.gateway.GetPaymentMethod(ctx, req.PaymentMethodID)
	if err != nil {
		return Result{}, fmt.Errorf("resolve payment method: %w", err)
	}
	if !method.Active {
		return Result{}, common.NewAppError("VALIDATION_ERROR", fmt.Sprintf("payment method %q is inactive", method.Name), common.ErrValidation)
	}

	f := form.New(req.Kind).
		WithAmount(req.Amount).
		WithDate(req.Date).
		WithObservation(req.Observation).
		WithMethod(method)

	if f.IsCheckBased() {
		checks, err := s.AvailableChecks(ctx, req.Kind)
		if err != nil {
			return Result{}, fmt.Errorf("list pending checks: %w", err)
		}
		f = f.WithAvailableChecks(checks)
	}
	for _, id := range reconcile.SelectionFrom(req.CheckIDs...).OrderedIDs() {
		f = f.ToggleCheck(id)
	}

	if err := s.reconciler.Validate(ctx, f.Amount(), f.Method(), f.Selection(), f.Available()); err != nil {
		return Result{}, err
	}

	rec, err := s.EnsureDailyRecord(ctx, req.Date)
	if err != nil {
		return Result{}, fmt.Errorf("daily record %s: %w", req.Date, err)
	}

	tx, err := f.Build(rec.ID)
	if err != nil {
		return Result{}, err
	}
	created, err := s.gateway.CreateTransaction(ctx, tx)
	if err != nil {
		return Result{}, fmt.Errorf("create %s: %w", req.Kind, err)
	}

	s.logger.Info("registration.register.ok",
		"kind", req.Kind,
		"id", created.ID,
		"record_id", rec.ID,
		"amount", req.Amount.Format(),
		"method", method.Name,
		"checks", len(tx.LinkedCheckIDs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return Result{Record: rec, Transaction: created}, nil
}
