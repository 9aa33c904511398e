package ledger

import (
	"context"

	"github.com/LucasCaro97/aserradero-tesoreria/constants"
	"github.com/LucasCaro97/aserradero-tesoreria/internal/entity"
)

// ListChecks returns every check the backend knows about.
func (c *Client) ListChecks(ctx context.Context) ([]entity.Check, error) {
	var checks []entity.Check
	if err := c.getValidated(ctx, pathChecks, schemaCheckList, &checks); err != nil {
		return nil, err
	}
	return checks, nil
}

// ListPendingChecks returns the checks of the given direction that can still
// be linked to a transaction.
func (c *Client) ListPendingChecks(ctx context.Context, direction constants.CheckDirection) ([]entity.Check, error) {
	all, err := c.ListChecks(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Check, 0, len(all))
	for _, ch := range all {
		if ch.Status.Eligible() && ch.Direction == direction {
			out = append(out, ch)
		}
	}
	c.logger.Debug("ledger.checks.pending", "direction", direction, "total", len(all), "eligible", len(out))
	return out, nil
}
