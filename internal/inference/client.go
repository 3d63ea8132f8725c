package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RetryPolicy controls per-mirror retry behaviour. Statuses listed in
// RetryableStatusCodes (typically 503 while a model is cold-starting) are
// retried against the same mirror after Backoff, up to MaxAttempts total.
// Any other failure moves on to the next mirror.
type RetryPolicy struct {
	MaxAttempts          int
	Backoff              time.Duration
	RetryableStatusCodes []int
}

// DefaultRetryPolicy retries a loading model once after a short pause.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:          2,
		Backoff:              2 * time.Second,
		RetryableStatusCodes: []int{http.StatusServiceUnavailable},
	}
}

func (p RetryPolicy) retryable(status int) bool {
	for _, code := range p.RetryableStatusCodes {
		if code == status {
			return true
		}
	}
	return false
}

// GatewayError is returned when every mirror has been exhausted without a
// successful response. Message carries the last observed failure.
type GatewayError struct {
	Model   string
	Message string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("inference gateway: model %s: %s", e.Model, e.Message)
}

// payload is the request body accepted by the hosted inference API.
type payload struct {
	Inputs     string         `json:"inputs"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// Client calls a remote hosted model over an ordered list of mirror base
// URLs. Mirrors are tried strictly in order; they may share upstream rate
// limits, so there is no concurrent fan-out.
type Client struct {
	httpClient *http.Client
	mirrors    []string
	apiKey     string
	retry      RetryPolicy

	// sleep is swappable for tests.
	sleep func(time.Duration)
}

// New creates an inference client. mirrors must contain at least one base URL;
// requests go to {mirror}/{modelID}.
func New(mirrors []string, apiKey string, retry RetryPolicy) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		mirrors:    mirrors,
		apiKey:     apiKey,
		retry:      retry,
		sleep:      time.Sleep,
	}
}

// Call posts inputs to the model on each mirror in order and returns the raw
// JSON body of the first successful response. It returns a *GatewayError once
// all mirrors are exhausted.
func (c *Client) Call(ctx context.Context, modelID string, inputs string, parameters map[string]any) (json.RawMessage, error) {
	body, err := json.Marshal(payload{Inputs: inputs, Parameters: parameters})
	if err != nil {
		return nil, fmt.Errorf("marshal inference payload: %w", err)
	}

	lastFailure := "no mirrors configured"
	for _, mirror := range c.mirrors {
		url := mirror + "/" + modelID
		for attempt := 1; attempt <= c.retry.MaxAttempts; attempt++ {
			raw, status, err := c.post(ctx, url, body)
			if err != nil {
				lastFailure = err.Error()
				break // transport fault, next mirror
			}
			if status >= 200 && status < 300 {
				return raw, nil
			}
			lastFailure = fmt.Sprintf("%s returned status %d: %s", url, status, truncate(raw, 200))
			if !c.retry.retryable(status) || attempt == c.retry.MaxAttempts {
				break
			}
			select {
			case <-ctx.Done():
				return nil, &GatewayError{Model: modelID, Message: ctx.Err().Error()}
			default:
			}
			c.sleep(c.retry.Backoff)
		}
	}

	return nil, &GatewayError{Model: modelID, Message: lastFailure}
}

func (c *Client) post(ctx context.Context, url string, body []byte) (json.RawMessage, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	return raw, resp.StatusCode, nil
}

func truncate(b []byte, max int) string {
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
