// Package reconcile decides whether a transaction may be submitted given its
// amount, payment method and the checks selected to settle it.
package reconcile

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/LucasCaro97/aserradero-tesoreria/constants"
	"github.com/LucasCaro97/aserradero-tesoreria/internal/entity"
)

const checkToken = "cheque"

// IsCheckBased reports whether the method settles with linked checks.
// The explicit Kind wins; methods without one fall back to matching "cheque"
// in the case-folded name, which is how the catalog was historically tagged.
func IsCheckBased(method *entity.PaymentMethod) bool {
	if method == nil {
		return false
	}
	if kind := constants.CanonicalizePaymentKind(string(method.Kind)); kind != constants.PaymentKindUnspecified {
		return kind == constants.PaymentKindCheck
	}
	return nameMentionsCheck(method.Name)
}

func nameMentionsCheck(name string) bool {
	// cases.Caser is stateful; build one per call.
	return strings.Contains(cases.Fold().String(name), checkToken)
}
