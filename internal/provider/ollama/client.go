package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/lumiai/lumi-router/internal/domain"
)

// Client wraps the HTTP client for the Ollama chat API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Ollama HTTP client.
func NewClient(config Config) *Client {
	return &Client{
		baseURL: config.BaseURL,
		httpClient: &http.Client{
			Timeout: time.Duration(config.Timeout) * time.Second,
		},
	}
}

// Ollama API request/response structures.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  chatOptions   `json:"options"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
	TopP        float64 `json:"top_p"`
}

type chatResponse struct {
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	PromptEvalCount int `json:"prompt_eval_count"`
	EvalCount       int `json:"eval_count"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Chat sends a non-streaming chat request. Failures always come back as
// typed *domain.UpstreamError values so callers can branch on kind instead
// of error text.
func (c *Client) Chat(ctx context.Context, req chatRequest) (*chatResponse, error) {
	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/api/chat",
		bytes.NewReader(reqBody),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, c.transportError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp)
	}

	var chatResp chatResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&chatResp); decodeErr != nil {
		return nil, &domain.UpstreamError{
			Kind:    domain.UpstreamBadResponse,
			Message: fmt.Sprintf("failed to decode response: %v", decodeErr),
			Cause:   decodeErr,
		}
	}

	return &chatResp, nil
}

// transportError classifies a failure that happened before any HTTP status
// was received.
func (c *Client) transportError(ctx context.Context, err error) error {
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		// The caller abandoned the request; not a backend failure.
		return fmt.Errorf("request canceled: %w", err)
	}

	kind := domain.UpstreamConnection
	if errors.Is(err, context.DeadlineExceeded) {
		kind = domain.UpstreamTimeout
	}

	return &domain.UpstreamError{
		Kind:    kind,
		Message: err.Error(),
		Cause:   err,
	}
}

// statusError parses a structured error body, falling back to a generic
// status-code message when parsing fails.
func (c *Client) statusError(resp *http.Response) error {
	message := fmt.Sprintf("Ollama returned status %d", resp.StatusCode)

	var errResp errorResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&errResp); decodeErr == nil && errResp.Error != "" {
		message = errResp.Error
	}

	return &domain.UpstreamError{
		Kind:       domain.ClassifyStatus(resp.StatusCode),
		StatusCode: resp.StatusCode,
		Message:    message,
	}
}
