package ledger

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/LucasCaro97/aserradero-tesoreria/constants"
	"github.com/LucasCaro97/aserradero-tesoreria/internal/entity"
)

// CreateIncome submits an income line (POST /ingreso).
func (c *Client) CreateIncome(ctx context.Context, tx entity.Transaction) (entity.CreatedTransaction, error) {
	return c.postTransaction(ctx, pathIncome, tx)
}

// CreateExpense submits an expense line (POST /egreso).
func (c *Client) CreateExpense(ctx context.Context, tx entity.Transaction) (entity.CreatedTransaction, error) {
	return c.postTransaction(ctx, pathExpense, tx)
}

// CreateTransaction dispatches on tx.Kind.
func (c *Client) CreateTransaction(ctx context.Context, tx entity.Transaction) (entity.CreatedTransaction, error) {
	switch tx.Kind {
	case constants.Income:
		return c.CreateIncome(ctx, tx)
	case constants.Expense:
		return c.CreateExpense(ctx, tx)
	}
	return entity.CreatedTransaction{}, fmt.Errorf("unknown transaction kind %q", tx.Kind)
}

func (c *Client) postTransaction(ctx context.Context, path string, tx entity.Transaction) (entity.CreatedTransaction, error) {
	if tx.LinkedCheckIDs == nil {
		// the backend expects [] rather than null
		tx.LinkedCheckIDs = []int64{}
	}
	raw, err := c.send(ctx, http.MethodPost, path, tx)
	if err != nil {
		return entity.CreatedTransaction{}, err
	}

	out := entity.CreatedTransaction{Transaction: tx}
	if len(bytes.TrimSpace(raw)) == 0 {
		// some endpoints answer 201 with no body
		return out, nil
	}
	if err := decodeValidated(path, raw, schemaTransaction, &out); err != nil {
		// The write already happened. Report it with ID 0 instead of failing.
		c.logger.Warn("ledger.transaction.echo_invalid",
			"kind", tx.Kind,
			"path", path,
			"daily_record_id", tx.DailyRecordID,
			"error", err,
		)
		out = entity.CreatedTransaction{Transaction: tx}
		return out, nil
	}
	out.Kind = tx.Kind
	c.logger.Info("ledger.transaction.created",
		"kind", tx.Kind,
		"id", out.ID,
		"amount", tx.Amount.Format(),
		"daily_record_id", tx.DailyRecordID,
		"checks", len(tx.LinkedCheckIDs),
	)
	return out, nil
}
