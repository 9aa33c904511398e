package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LucasCaro97/aserradero-tesoreria/constants"
	"github.com/LucasCaro97/aserradero-tesoreria/internal/entity"
)

func TestIsCheckBased_ByName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"CHEQUE BANCO NACION", true},
		{"cheque", true},
		{"Cheque Propio", true},
		{"Cheques de terceros", true},
		{"Efectivo", false},
		{"Transferencia", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCheckBased(&entity.PaymentMethod{ID: 1, Name: tt.name}))
		})
	}
}

func TestIsCheckBased_Nil(t *testing.T) {
	assert.False(t, IsCheckBased(nil))
}

func TestIsCheckBased_ExplicitKindWins(t *testing.T) {
	// The name alone would misclassify this one.
	cash := &entity.PaymentMethod{Name: "Efectivo para Cheques", Kind: constants.PaymentKindCash}
	assert.False(t, IsCheckBased(cash))

	check := &entity.PaymentMethod{Name: "Valores diferidos", Kind: constants.PaymentKindCheck}
	assert.True(t, IsCheckBased(check))
}

func TestIsCheckBased_LooseKindIsCanonicalized(t *testing.T) {
	tests := []struct {
		name string
		kind constants.PaymentMethodKind
		want bool
	}{
		{"Valores diferidos", "cheque", true},
		{"Cheque Banco", "DIFERIDO", true}, // unknown kind, name decides
		{"Caja", " efectivo ", false},
		{"Cheque de terceros", "efectivo", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, IsCheckBased(&entity.PaymentMethod{Name: tt.name, Kind: tt.kind}))
		})
	}
}
