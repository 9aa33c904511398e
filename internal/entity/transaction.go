package entity

import (
	"github.com/LucasCaro97/aserradero-tesoreria/constants"
	"github.com/LucasCaro97/aserradero-tesoreria/internal/money"
)

// DailyRecord anchors every transaction of a calendar date.
type DailyRecord struct {
	ID   int64 `json:"id"`
	Date Date  `json:"fecha"`
}

// Transaction is an income or expense line ready for submission.
// LinkedCheckIDs is empty unless the payment method is check-based.
type Transaction struct {
	Kind            constants.TransactionKind `json:"-"`
	Amount          money.Money               `json:"monto"`
	PaymentMethodID int64                     `json:"idMedioDePago"`
	DailyRecordID   int64                     `json:"idRegistroDiario"`
	Observation     string                    `json:"observacion"`
	LinkedCheckIDs  []int64                   `json:"idChequesVinculados"`
}

// CreatedTransaction is the backend's echo of a stored transaction.
type CreatedTransaction struct {
	ID int64 `json:"id"`
	Transaction
}
