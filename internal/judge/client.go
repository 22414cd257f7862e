// internal/judge/client.go
package judge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"time"
)

const genericFailureMessage = "evaluation service returned an unreadable error response"

type evalRequest struct {
	Messages []Message `json:"messages"`
}

// failureBody is the structured error shape the evaluation service uses for
// non-success responses when it can.
type failureBody struct {
	Detail string `json:"detail"`
}

// Client talks to the evaluation service over its single HTTP contract:
// POST {messages: [...]} -> Result JSON on success, {detail} on failure.
//
// The client performs exactly one request per call. Transient failures are
// surfaced to the caller as a *Failure, never retried or masked here; the
// only time bound is the transport timeout.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates an evaluation client for the given endpoint.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConns:        10,
			},
		},
	}
}

// Evaluate sends the wire transcript and decodes the structured result.
// All failure modes come back as a *Failure; the second return value is nil
// exactly when the first is non-nil.
func (c *Client) Evaluate(ctx context.Context, transcript []Message) (*Result, *Failure) {
	if len(transcript) == 0 {
		return nil, &Failure{Message: "nothing to evaluate: empty transcript"}
	}

	body, err := json.Marshal(evalRequest{Messages: transcript})
	if err != nil {
		return nil, &Failure{Message: fmt.Sprintf("encode request: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &Failure{Message: fmt.Sprintf("build request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[judge] request failed: %v", err)
		return nil, &Failure{Message: fmt.Sprintf("evaluation request failed: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Failure{Message: failureMessage(resp)}
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Printf("[judge] undecodable success response: %v", err)
		return nil, &Failure{Message: fmt.Sprintf("malformed evaluation response: %v", err)}
	}

	return &result, nil
}

// failureMessage extracts the best available message from a non-success
// response: structured detail first, then raw body text, then a generic
// message when the body is empty or unreadable.
func failureMessage(resp *http.Response) string {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(bytes.TrimSpace(raw)) == 0 {
		return fmt.Sprintf("%s (HTTP %d)", genericFailureMessage, resp.StatusCode)
	}

	var fb failureBody
	if err := json.Unmarshal(raw, &fb); err == nil && fb.Detail != "" {
		return fb.Detail
	}

	return strings.TrimSpace(string(raw))
}
