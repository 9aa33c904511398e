package entity

import "github.com/LucasCaro97/aserradero-tesoreria/constants"

// PaymentMethod is a settlement channel defined by the administrative catalog.
type PaymentMethod struct {
	ID     int64                       `json:"id"`
	Name   string                      `json:"nombre"`
	Active bool                        `json:"activo"`
	Kind   constants.PaymentMethodKind `json:"tipo,omitempty"`
}

// Bank is a bank registered in the catalog.
type Bank struct {
	ID     int64  `json:"id"`
	Name   string `json:"nombre"`
	Active bool   `json:"activo"`
}
