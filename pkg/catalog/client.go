// Package catalog is the HTTP client for the remote e-commerce API that owns
// products, categories, search, orders and payments. The storefront never
// writes catalog data; it reads the catalog and submits orders.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

var (
	// ErrUnavailable means the API gave no usable response at all.
	ErrUnavailable = errors.New("catalog API unreachable")
	// ErrTimeout means the call ran out of time before the API answered.
	ErrTimeout = errors.New("catalog API timed out")
)

// NotFoundError reports a 404 for a specific resource, so callers can show
// a "not found" page instead of a generic failure.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// BadRequestError carries the API's field-level 400 messages, flattened into
// one displayable list.
type BadRequestError struct {
	Messages []string
}

func (e *BadRequestError) Error() string {
	return "catalog API rejected request: " + strings.Join(e.Messages, "; ")
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return fmt.Errorf("%w: %s %s", ErrTimeout, method, path)
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &NotFoundError{Resource: path}
	case resp.StatusCode == http.StatusBadRequest:
		return &BadRequestError{Messages: flattenFieldErrors(data)}
	case resp.StatusCode >= 400:
		return fmt.Errorf("catalog API returned status %d for %s %s", resp.StatusCode, method, path)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode catalog response: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var timeout interface{ Timeout() bool }
	return errors.As(err, &timeout) && timeout.Timeout()
}

// flattenFieldErrors turns a DRF-style 400 body ({"field": ["msg", ...]})
// into a flat message list. Unrecognized bodies collapse to a single line.
func flattenFieldErrors(data []byte) []string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return []string{strings.TrimSpace(string(data))}
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var messages []string
	for _, key := range keys {
		var list []string
		if err := json.Unmarshal(fields[key], &list); err == nil {
			messages = append(messages, list...)
			continue
		}
		var single string
		if err := json.Unmarshal(fields[key], &single); err == nil {
			messages = append(messages, single)
			continue
		}
		messages = append(messages, fmt.Sprintf("%s: %s", key, string(fields[key])))
	}
	if len(messages) == 0 {
		messages = []string{strings.TrimSpace(string(data))}
	}
	return messages
}
