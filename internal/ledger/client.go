// Package ledger is the HTTP client for the back-office REST API: daily
// financial records, checks, payment methods, banks and income/expense entries.
//
// Every call is a single request. Nothing is retried or cached; failures come
// back as *APIError (the backend answered non-2xx) or as a wrapped transport error.
package ledger

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Paths of the backend resources.
const (
	pathPaymentMethods = "/medio-de-pago"
	pathChecks         = "/cheques"
	pathBanks          = "/banco"
	pathRecords        = "/registro-financiero"
	pathRecentRecords  = "/registro-financiero/sorted-top10-desc"
	pathIncome         = "/ingreso"
	pathExpense        = "/egreso"
)

// Config for the ledger client.
type Config struct {
	BaseURL string        // e.g. http://localhost:8080
	Token   string        // bearer token; empty sends no Authorization header
	Timeout time.Duration // http client timeout
}

type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}
