package monday

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/courseloft/syllaboard/internal/core/domain"
)

// transport executes GraphQL requests against one endpoint.
type transport struct {
	client   *http.Client
	endpoint string
}

func newTransport(endpoint string, timeout time.Duration) *transport {
	return &transport{
		client:   &http.Client{Timeout: timeout},
		endpoint: endpoint,
	}
}

// graphqlRequest is the standard GraphQL POST body.
type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// graphqlResponse is the standard GraphQL response envelope. The errors
// array must be checked even on HTTP 200: monday.com reports mutation
// failures there without changing the status code.
type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// execute runs one query and returns the raw data payload.
func (t *transport) execute(ctx context.Context, query string, variables map[string]any, token string) (json.RawMessage, error) {
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", token)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var envelope graphqlResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &domain.ExternalAPIError{StatusCode: resp.StatusCode}
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(envelope.Errors) > 0 {
		apiErr := &domain.ExternalAPIError{StatusCode: resp.StatusCode}
		for _, e := range envelope.Errors {
			apiErr.Errors = append(apiErr.Errors, domain.ProviderError{Message: e.Message})
		}
		return nil, apiErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domain.ExternalAPIError{StatusCode: resp.StatusCode}
	}

	return envelope.Data, nil
}
