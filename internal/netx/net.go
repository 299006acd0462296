// Package netx holds the JSON-over-HTTP plumbing shared by the backend API
// client and the news search client.
package netx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/newsexplorer/internal/common"
)

// maxErrorBody caps how much of a failed response body is kept.
const maxErrorBody = 4 << 10

// StatusError is returned for any non-2xx response. Message is taken from a
// JSON {"message": "..."} body when present.
type StatusError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("http %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("http %d", e.StatusCode)
}

// Request describes one JSON call.
type Request struct {
	Method string
	URL    string
	Header http.Header
	// Body is JSON-encoded when non-nil.
	Body any
}

// DoJSON performs r with c and decodes a 2xx JSON response into out (which
// may be nil to discard the body). Transport failures wrap
// common.ErrNetworkFailure; non-2xx responses yield *StatusError.
func DoJSON(ctx context.Context, c *http.Client, r Request, out any) error {
	var body io.Reader
	if r.Body != nil {
		b, err := json.Marshal(r.Body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, r.URL, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	for k, vs := range r.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if r.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", common.ErrNetworkFailure, r.Method, r.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return CheckResponse(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// CheckResponse turns a non-2xx response into *StatusError and returns nil
// for 2xx. The body is read but not closed.
func CheckResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return nil
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	se := &StatusError{StatusCode: resp.StatusCode, Body: b}
	var msg struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(b, &msg) == nil {
		se.Message = msg.Message
		if se.Message == "" {
			se.Message = msg.Error
		}
	}
	return se
}
