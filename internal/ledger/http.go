package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/LucasCaro97/aserradero-tesoreria/internal/common"
)

// send performs one JSON request against path and returns the raw 2xx body.
// A non-2xx answer is returned as *APIError.
func (c *Client) send(ctx context.Context, method, path string, body any) ([]byte, error) {
	reqID := common.RequestIDFromContext(ctx)
	if reqID == "" {
		reqID = uuid.New().String()
	}
	start := time.Now()

	var payload io.Reader
	size := 0
	if body != nil {
		bs, err := json.Marshal(body)
		if err != nil {
			c.logger.Error("ledger.http.encode_error", "req_id", reqID, "error", err)
			return nil, fmt.Errorf("encode json: %w", err)
		}
		payload = bytes.NewReader(bs)
		size = len(bs)
	}

	url := c.cfg.BaseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		c.logger.Error("ledger.http.build_request_error", "req_id", reqID, "error", err)
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", reqID)
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	c.logger.Debug("ledger.http.request",
		"req_id", reqID,
		"method", method,
		"url", url,
		"content_length", size,
	)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("ledger.http.send_error", "req_id", reqID, "method", method, "path", path, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return nil, fmt.Errorf("ledger %s %s: %w", method, path, err)
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			c.logger.Warn("ledger.http.response_body_close_error", "req_id", reqID, "error", err)
		}
	}(resp.Body)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("ledger.http.read_error", "req_id", reqID, "error", err)
		return nil, fmt.Errorf("ledger %s %s: read body: %w", method, path, err)
	}

	c.logger.Info("ledger.http.response",
		"req_id", reqID,
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode/100 != 2 {
		return nil, newAPIError(method, path, resp.StatusCode, raw)
	}
	return raw, nil
}

// getValidated fetches path, checks the body against schema and decodes it into out.
func (c *Client) getValidated(ctx context.Context, path string, schema schemaName, out any) error {
	raw, err := c.send(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return decodeValidated(path, raw, schema, out)
}

func decodeValidated(path string, raw []byte, schema schemaName, out any) error {
	if err := validateAgainst(schema, raw); err != nil {
		return contractError(path, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return contractError(path, err)
	}
	return nil
}
