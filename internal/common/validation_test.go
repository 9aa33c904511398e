package common

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucasCaro97/aserradero-tesoreria/internal/entity"
	"github.com/LucasCaro97/aserradero-tesoreria/internal/money"
)

func TestValidator(t *testing.T) {
	v := NewValidator().
		Field("amount", money.Zero, PositiveAmount).
		Field("method", int64(0), Required).
		Field("date", entity.Date{}, Required).
		Field("from", "2026-13-01", ISODate).
		Field("direction", "recibido", OneOf("EMITIDO", "RECIBIDO")).
		Field("observation", strings.Repeat("ñ", 4), MaxLength(4))

	require.True(t, v.HasErrors())
	fields := make([]string, 0, len(v.Errors()))
	for _, e := range v.Errors() {
		fields = append(fields, e.Field)
	}
	assert.Equal(t, []string{"amount", "method", "date", "from"}, fields)

	err := v.Err()
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "VALIDATION_ERROR", CodeOf(err))
	assert.Contains(t, err.Error(), "must be greater than zero")
}

func TestValidator_NoErrors(t *testing.T) {
	v := NewValidator().
		Field("amount", money.FromInt(10), PositiveAmount).
		Field("name", "Caja", Required).
		Field("from", "", ISODate)
	assert.False(t, v.HasErrors())
	assert.NoError(t, v.Err())
	assert.Empty(t, v.ErrorMessage())
}

func TestRules(t *testing.T) {
	assert.NotNil(t, Required("x", "   "))
	assert.NotNil(t, Required("x", nil))
	assert.NotNil(t, PositiveAmount("x", "10"))
	assert.NotNil(t, PositiveAmount("x", money.FromInt(-1)))
	assert.NotNil(t, OneOf("A", "B")("x", "C"))
	assert.NotNil(t, MaxLength(2)("x", "abc"))
	assert.Nil(t, ISODate("x", "2026-10-14"))
	assert.NotNil(t, ISODate("x", 20261014))
}

func TestErrors(t *testing.T) {
	err := NotFoundErrorf("payment method %d", 7)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "NOT_FOUND: payment method 7: resource not found", err.Error())

	wrapped := fmt.Errorf("resolve: %w", err)
	assert.ErrorIs(t, wrapped, ErrNotFound)
	assert.Equal(t, "NOT_FOUND", CodeOf(wrapped))
	assert.Equal(t, "", CodeOf(context.Canceled))
}

func TestRequestIDContext(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", RequestIDFromContext(ctx))
	assert.Equal(t, "", RequestIDFromContext(context.Background()))
}
