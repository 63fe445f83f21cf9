package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const maxErrorBody = 512

// postJSON sends body as JSON to url and decodes a 2xx response into out.
// Non-2xx statuses become classified ServiceErrors.
func postJSON(ctx context.Context, client *http.Client, provider, url string, headers map[string]string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return &ServiceError{Provider: provider, Kind: KindTransport, Message: "sending request", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ServiceError{Provider: provider, Kind: KindTransport, Message: "reading response", Err: err}
	}

	if err := statusError(provider, resp.StatusCode, data); err != nil {
		return err
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &ServiceError{Provider: provider, Kind: KindResponse, Message: "parsing response", Err: err}
	}
	return nil
}

func statusError(provider string, code int, body []byte) error {
	if code >= 200 && code < 300 {
		return nil
	}
	se := &ServiceError{Provider: provider, StatusCode: code, Message: truncate(string(body), maxErrorBody)}
	switch {
	case code == http.StatusTooManyRequests:
		se.Kind = KindRateLimit
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		se.Kind = KindAuth
	case code >= 500:
		se.Kind = KindServer
	default:
		se.Kind = KindRequest
	}
	return se
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
