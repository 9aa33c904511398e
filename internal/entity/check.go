package entity

import (
	"github.com/LucasCaro97/aserradero-tesoreria/constants"
	"github.com/LucasCaro97/aserradero-tesoreria/internal/money"
)

// Check is a check owned by the backend ledger; the client only references it by id.
type Check struct {
	ID        int64                    `json:"id"`
	Number    string                   `json:"numero"`
	Amount    money.Money              `json:"monto"`
	DueDate   Date                     `json:"fechaVencimiento"`
	Status    constants.CheckStatus    `json:"estado"`
	Direction constants.CheckDirection `json:"tipo"`
	Bank      string                   `json:"banco,omitempty"`
	Drawer    string                   `json:"librador,omitempty"`
}

// IndexChecks keys checks by id. Later duplicates win.
func IndexChecks(checks []Check) map[int64]Check {
	out := make(map[int64]Check, len(checks))
	for _, c := range checks {
		out[c.ID] = c
	}
	return out
}
