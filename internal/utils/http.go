package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// MaxResponseBodySize caps how much of a response body is read into memory.
const MaxResponseBodySize = 10 << 20

// PostJSON sends body as a JSON POST to url and returns the status code and
// the raw response body. Any HTTP status is returned without error; only
// transport failures (connection, context, body read) are reported as errors.
// A non-empty apiKey is sent as a bearer token.
func PostJSON(ctx context.Context, client *http.Client, url, apiKey string, body []byte) (int, []byte, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	res, err := client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("error sending request: %w", err)
	}
	defer CloseWithLog(res.Body)

	respBody, err := io.ReadAll(io.LimitReader(res.Body, MaxResponseBodySize))
	if err != nil {
		return res.StatusCode, nil, fmt.Errorf("error reading response body: %w", err)
	}

	return res.StatusCode, respBody, nil
}

// CloseWithLog closes c and logs, rather than returns, a close failure so it
// can be deferred without masking the caller's primary error.
func CloseWithLog(c io.Closer) {
	if err := c.Close(); err != nil {
		slog.Warn("failed to close resource", "error", err.Error())
	}
}
