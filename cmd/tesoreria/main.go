package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/LucasCaro97/aserradero-tesoreria/constants"
	"github.com/LucasCaro97/aserradero-tesoreria/internal/common"
	"github.com/LucasCaro97/aserradero-tesoreria/internal/export"
	"github.com/LucasCaro97/aserradero-tesoreria/internal/ledger"
	"github.com/LucasCaro97/aserradero-tesoreria/internal/reconcile"
	"github.com/LucasCaro97/aserradero-tesoreria/internal/registration"
)

const (
	exitOK         = 0
	exitValidation = 1
	exitFailure    = 2
	exitFatal      = 3
)

const usage = `usage: tesoreria <command> [flags]

commands:
  records        list the most recent daily records
  record-create  open the daily record of a date
  methods        list payment methods
  banks          list banks
  checks         list checks with filters, sorting and paging
  income         register an income
  expense        register an expense
  export-checks  write the check portfolio to an XLSX file
`

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

type app struct {
	cfg      *common.Config
	ledger   *ledger.Client
	register *registration.Service
	exporter *export.Service
	logger   *slog.Logger
}

func main() {
	if len(os.Args) < 2 {
		printError(usage)
		os.Exit(exitValidation)
	}

	cfg, err := common.LoadConfig()
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(exitFailure)
	}
	if err := cfg.Validate(); err != nil {
		printError("Error: %v\n", err)
		os.Exit(exitValidation)
	}

	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := ledger.NewClient(ledger.Config{
		BaseURL: cfg.Ledger.BaseURL,
		Token:   cfg.Ledger.Token,
		Timeout: cfg.Ledger.Timeout,
	}, logger)

	a := &app{
		cfg:      cfg,
		ledger:   client,
		register: registration.NewService(client, logger, registration.WithRecentRecords(cfg.Ledger.RecentRecords)),
		exporter: export.NewService(logger),
		logger:   logger,
	}

	err = a.run(ctx, os.Args[1], os.Args[2:])
	if err != nil {
		printError("Error: %v\n", err)
	}
	stop()
	os.Exit(exitCode(err))
}

func newLogger(cfg common.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level}
	if cfg.JSON {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "records":
		return a.records(ctx, args)
	case "record-create":
		return a.recordCreate(ctx, args)
	case "methods":
		return a.methods(ctx, args)
	case "banks":
		return a.banks(ctx, args)
	case "checks":
		return a.checks(ctx, args)
	case "income":
		return a.transaction(ctx, constants.Income, args)
	case "expense":
		return a.transaction(ctx, constants.Expense, args)
	case "export-checks":
		return a.exportChecks(ctx, args)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	}
	return usageError{fmt.Sprintf("unknown command %q\n\n%s", cmd, usage)}
}

// usageError is a bad invocation; it exits like a validation failure.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var rerr *reconcile.Error
	if errors.As(err, &rerr) {
		if rerr.Fatal() {
			return exitFatal
		}
		return exitValidation
	}
	var uerr usageError
	if errors.As(err, &uerr) ||
		errors.Is(err, common.ErrValidation) ||
		errors.Is(err, common.ErrInvalidInput) ||
		errors.Is(err, ledger.ErrDuplicateRecordForDate) {
		return exitValidation
	}
	return exitFailure
}
