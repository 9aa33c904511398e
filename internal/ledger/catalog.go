package ledger

import (
	"context"

	"github.com/LucasCaro97/aserradero-tesoreria/internal/common"
	"github.com/LucasCaro97/aserradero-tesoreria/internal/entity"
)

func (c *Client) ListPaymentMethods(ctx context.Context) ([]entity.PaymentMethod, error) {
	var methods []entity.PaymentMethod
	if err := c.getValidated(ctx, pathPaymentMethods, schemaMethodList, &methods); err != nil {
		return nil, err
	}
	return methods, nil
}

// GetPaymentMethod resolves id against the full catalog; the backend has no
// single-item endpoint.
func (c *Client) GetPaymentMethod(ctx context.Context, id int64) (*entity.PaymentMethod, error) {
	methods, err := c.ListPaymentMethods(ctx)
	if err != nil {
		return nil, err
	}
	for i := range methods {
		if methods[i].ID == id {
			return &methods[i], nil
		}
	}
	return nil, common.NotFoundErrorf("payment method %d", id)
}

func (c *Client) ListBanks(ctx context.Context) ([]entity.Bank, error) {
	var banks []entity.Bank
	if err := c.getValidated(ctx, pathBanks, schemaBankList, &banks); err != nil {
		return nil, err
	}
	return banks, nil
}
