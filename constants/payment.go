package constants

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// PaymentMethodKind is the explicit settlement type of a payment method.
// The empty value means the backend did not send one.
type PaymentMethodKind string

const (
	PaymentKindUnspecified PaymentMethodKind = ""
	PaymentKindCash        PaymentMethodKind = "EFECTIVO"
	PaymentKindTransfer    PaymentMethodKind = "TRANSFERENCIA"
	PaymentKindCheck       PaymentMethodKind = "CHEQUE"
	PaymentKindCard        PaymentMethodKind = "TARJETA"
	PaymentKindOther       PaymentMethodKind = "OTRO"
)

// CanonicalizePaymentKind maps loose input to a known kind. Unknown input yields
// PaymentKindUnspecified so name-based classification still applies.
func CanonicalizePaymentKind(input string) PaymentMethodKind {
	switch k := PaymentMethodKind(strings.ToUpper(strings.TrimSpace(input))); k {
	case PaymentKindCash, PaymentKindTransfer, PaymentKindCheck, PaymentKindCard, PaymentKindOther:
		return k
	}
	return PaymentKindUnspecified
}

// UnmarshalJSON canonicalizes the backend value; null, lowercase and unknown
// spellings never reach callers raw.
func (k *PaymentMethodKind) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*k = PaymentKindUnspecified
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("decode payment method kind: %w", err)
	}
	*k = CanonicalizePaymentKind(s)
	return nil
}
