package ledger

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/LucasCaro97/aserradero-tesoreria/internal/entity"
)

// ListRecentRecords returns up to n daily records, most recent date first.
// n <= 0 returns everything the backend sent.
func (c *Client) ListRecentRecords(ctx context.Context, n int) ([]entity.DailyRecord, error) {
	var records []entity.DailyRecord
	if err := c.getValidated(ctx, pathRecentRecords, schemaRecordList, &records); err != nil {
		return nil, err
	}
	slices.SortStableFunc(records, func(a, b entity.DailyRecord) int {
		return b.Date.Compare(a.Date.Time)
	})
	if n > 0 && len(records) > n {
		records = records[:n]
	}
	return records, nil
}

// CreateRecord registers the daily record for date. When one already exists
// the error matches ErrDuplicateRecordForDate.
func (c *Client) CreateRecord(ctx context.Context, date entity.Date) (entity.DailyRecord, error) {
	body := map[string]string{"fecha": date.String()}
	raw, err := c.send(ctx, http.MethodPost, pathRecords, body)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && isDuplicate(apiErr) {
			apiErr.kind = ErrDuplicateRecordForDate
			c.logger.Info("ledger.record.duplicate", "date", date.String())
		}
		return entity.DailyRecord{}, err
	}

	var rec entity.DailyRecord
	if err := decodeValidated(pathRecords, raw, schemaRecord, &rec); err != nil {
		return entity.DailyRecord{}, err
	}
	c.logger.Info("ledger.record.created", "record_id", rec.ID, "date", rec.Date.String())
	return rec, nil
}

func isDuplicate(e *APIError) bool {
	if e.Status/100 != 4 && e.Status/100 != 5 {
		return false
	}
	if e.Message != "" {
		return strings.Contains(e.Message, duplicateMarker)
	}
	return strings.Contains(string(e.Body), duplicateMarker)
}
