package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"openrouter-chat/internal/retry"
)

// DefaultBaseURL is the OpenRouter API root.
const DefaultBaseURL = "https://openrouter.ai/api/v1"

// DefaultTemperature is used when Params.Temperature is unset.
const DefaultTemperature = 0.7

// logPreviewLimit bounds payload and reply previews in log output.
const logPreviewLimit = 500

// Client is a client for the OpenRouter chat completions API. It holds
// only immutable configuration, so a single instance is safe for
// concurrent use.
type Client struct {
	BaseURL string
	APIKey  string
	Model   string
	Retry   retry.Policy

	client *http.Client
	logger *slog.Logger
}

// NewClient creates a new OpenRouter client with the default retry policy.
func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		Retry:   retry.DefaultPolicy(),
		client:  http.DefaultClient,
		logger:  slog.Default(),
	}
}

// SendRequest issues a single blocking POST to the completions endpoint.
// A 200 response returns the raw JSON body. Any other status returns a
// *RemoteError; a network failure returns a *TransportError. Both paths
// are logged.
func (c *Client) SendRequest(ctx context.Context, messages []ChatMessage, params Params) (RawResponse, error) {
	url := fmt.Sprintf("%s/chat/completions", c.BaseURL)

	model := params.Model
	if model == "" {
		model = c.Model
	}
	temperature := params.Temperature
	if temperature == 0 {
		temperature = DefaultTemperature
	}

	payload := completionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: temperature,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	c.logger.InfoContext(ctx, "calling chat completions", "model", model)
	c.logger.InfoContext(ctx, "request payload", "payload", truncate(string(body), logPreviewLimit))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "chat completions call failed", "error", err)
		return nil, &TransportError{Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to read response body", "error", err)
		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.ErrorContext(ctx, "chat completions returned error status",
			"status", resp.StatusCode, "body", truncate(string(raw), logPreviewLimit))
		return nil, &RemoteError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	c.logger.InfoContext(ctx, "chat completions call succeeded")
	return RawResponse(raw), nil
}

// GetCompletion wraps SendRequest with the retry policy and extracts the
// assistant's reply from the response.
//
// Only transport failures are retried. A non-200 response or a 200 body
// without choices[0].message.content is returned immediately as a
// *RemoteError or *ShapeError; exhausted retries return the last
// *TransportError.
func (c *Client) GetCompletion(ctx context.Context, messages []ChatMessage, params Params) (string, error) {
	var raw RawResponse

	err := c.Retry.Do(ctx, IsRetryable, func() error {
		var sendErr error
		raw, sendErr = c.SendRequest(ctx, messages, params)
		return sendErr
	})
	if err != nil {
		return "", err
	}

	content, err := extractContent(raw)
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to extract completion", "error", err)
		return "", err
	}

	c.logger.DebugContext(ctx, "completion extracted", "content", truncate(content, logPreviewLimit))
	return content, nil
}

// extractContent pulls choices[0].message.content out of a raw response
// body. A missing field is a *ShapeError.
func extractContent(raw RawResponse) (string, error) {
	var envelope completionEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return "", &ShapeError{Reason: fmt.Sprintf("undecodable body: %v", err)}
	}
	if len(envelope.Choices) == 0 {
		return "", &ShapeError{Reason: "no choices in response"}
	}
	return envelope.Choices[0].Message.Content, nil
}

// truncate shortens s to at most n bytes for log output.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
