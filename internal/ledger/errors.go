package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/LucasCaro97/aserradero-tesoreria/internal/common"
)

// duplicateMarker is what the backend puts in errorMessage when a daily
// record already exists for the requested date.
const duplicateMarker = "Ya existe"

var (
	// ErrDuplicateRecordForDate: a daily record already exists for that date.
	ErrDuplicateRecordForDate = errors.New("daily record already exists for date")
	// ErrContract: the backend answered 2xx with a body that does not match the expected shape.
	ErrContract = errors.New("unexpected response from ledger backend")
)

// APIError is a non-2xx answer from the backend, kept verbatim.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string // errorMessage from the body when present
	Body    []byte
	kind    error
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = strings.TrimSpace(string(e.Body))
	}
	if msg == "" {
		return fmt.Sprintf("ledger %s %s: status %d", e.Method, e.Path, e.Status)
	}
	return fmt.Sprintf("ledger %s %s: status %d: %s", e.Method, e.Path, e.Status, msg)
}

func (e *APIError) Unwrap() []error {
	if e.kind != nil {
		return []error{e.kind, common.ErrGateway}
	}
	return []error{common.ErrGateway}
}

// newAPIError extracts errorMessage (or message) from a JSON error body.
func newAPIError(method, path string, status int, body []byte) *APIError {
	e := &APIError{Method: method, Path: path, Status: status, Body: body}
	var payload struct {
		ErrorMessage string `json:"errorMessage"`
		Message      string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		e.Message = payload.ErrorMessage
		if e.Message == "" {
			e.Message = payload.Message
		}
	}
	return e
}

// contractError wraps a schema or decode failure.
func contractError(path string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrContract, path, err)
}
