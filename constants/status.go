package constants

// CheckStatus is the lifecycle state of a check as stored by the ledger backend.
type CheckStatus string

// Stable values (the backend sends these exact strings).
const (
	CheckStatusPending   CheckStatus = "PENDIENTE"  // in portfolio, not yet used
	CheckStatusDelivered CheckStatus = "ENTREGADO"  // endorsed to a third party
	CheckStatusDeposited CheckStatus = "DEPOSITADO" // deposited, waiting clearing
	CheckStatusCashed    CheckStatus = "COBRADO"    // cleared
	CheckStatusRejected  CheckStatus = "RECHAZADO"  // bounced
	CheckStatusVoided    CheckStatus = "ANULADO"
)

var allCheckStatuses = []CheckStatus{
	CheckStatusPending,
	CheckStatusDelivered,
	CheckStatusDeposited,
	CheckStatusCashed,
	CheckStatusRejected,
	CheckStatusVoided,
}

// CheckStatuses returns every known status as strings, in lifecycle order.
func CheckStatuses() []string {
	out := make([]string, len(allCheckStatuses))
	for i, s := range allCheckStatuses {
		out[i] = string(s)
	}
	return out
}

// Eligible reports whether a check in this status can be linked to a new transaction.
func (s CheckStatus) Eligible() bool {
	return s == CheckStatusPending
}

// Valid reports whether s is one of the known statuses.
func (s CheckStatus) Valid() bool {
	for _, known := range allCheckStatuses {
		if s == known {
			return true
		}
	}
	return false
}
