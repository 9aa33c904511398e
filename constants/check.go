package constants

import "strings"

// CheckDirection tells whether a check was issued by us or received from a third party.
type CheckDirection string

const (
	CheckIssued   CheckDirection = "EMITIDO"
	CheckReceived CheckDirection = "RECIBIDO"
)

// CheckDirections holds the allowed values for the direction field.
var CheckDirections = []string{string(CheckIssued), string(CheckReceived)}

// ParseCheckDirection normalizes user input ("emitido", " Recibido ") to a direction.
func ParseCheckDirection(input string) (CheckDirection, bool) {
	switch CheckDirection(strings.ToUpper(strings.TrimSpace(input))) {
	case CheckIssued:
		return CheckIssued, true
	case CheckReceived:
		return CheckReceived, true
	}
	return "", false
}

// TransactionKind distinguishes income from expense entries.
type TransactionKind string

const (
	Income  TransactionKind = "INGRESO"
	Expense TransactionKind = "EGRESO"
)

// Valid reports whether k is exactly one of the backend kinds.
func (k TransactionKind) Valid() bool {
	return k == Income || k == Expense
}

// SettlingDirection is the check direction that can settle a transaction of this kind:
// income is paid with received checks, expenses with our own issued checks.
func (k TransactionKind) SettlingDirection() CheckDirection {
	if k == Income {
		return CheckReceived
	}
	return CheckIssued
}
