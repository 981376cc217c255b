package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"hostbridge/internal/errors"
)

// Client forwards prompts to a local generate endpoint. It performs exactly
// one POST per query: no retry, no streaming.
type Client struct {
	endpoint string
	model    string
	http     *http.Client
}

// NewClient returns a client for endpoint and model. A nil httpClient uses
// http.DefaultClient.
func NewClient(endpoint, model string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint: endpoint,
		model:    model,
		http:     httpClient,
	}
}

// Endpoint returns the configured endpoint URL
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Model returns the configured model id
func (c *Client) Model() string {
	return c.model
}

// Query sends prompt and returns the server's response field
func (c *Client) Query(ctx context.Context, prompt string) (*Response, error) {
	errFactory := errors.New()

	body, err := json.Marshal(Request{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return nil, errFactory.Wrap(errors.ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errFactory.Wrap(errors.ErrInferenceRequest, err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, errFactory.Wrap(errors.ErrInferenceRequest, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errFactory.Wrap(errors.ErrInferenceRequest, err)
	}

	var wire wireResponse
	decodeErr := json.Unmarshal(raw, &wire)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		detail := res.Status
		if decodeErr == nil && wire.Error != "" {
			detail = fmt.Sprintf("%s: %s", res.Status, wire.Error)
		}
		return nil, errFactory.Wrap(errors.ErrInferenceStatus, fmt.Errorf("%s", detail))
	}

	if decodeErr != nil {
		return nil, errFactory.Wrap(errors.ErrInferenceDecode, decodeErr)
	}
	if wire.Response == nil {
		return nil, errFactory.Wrap(errors.ErrInferenceDecode, fmt.Errorf("missing field `response`"))
	}

	return &Response{Response: *wire.Response}, nil
}
