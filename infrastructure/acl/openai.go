// Package acl contains anti-corruption-layer clients for external services.
package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/xinran093/synthesisAI-V2/infrastructure/config"
	"github.com/xinran093/synthesisAI-V2/pkg/errors"
)

// chatMessage is one message in the OpenAI chat format.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// OpenAIClient is the chat-completion collaborator. It is treated as an
// opaque black box: one request, no retry, no streaming. A circuit breaker
// sheds calls while the upstream is failing; breaker-open surfaces like any
// other upstream error.
type OpenAIClient struct {
	baseURL    string
	apiKey     string
	model      string
	maxTokens  int
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     *zap.Logger
}

// NewOpenAIClient creates a client from the OpenAI configuration section.
func NewOpenAIClient(cfg config.OpenAI, logger *zap.Logger) *OpenAIClient {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: "openai-chat",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.8
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &OpenAIClient{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		maxTokens:  cfg.MaxTokens,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    breaker,
		logger:     logger,
	}
}

// Complete sends the user's text as a single-message chat completion and
// returns the assistant's reply. Upstream failures surface verbatim.
func (c *OpenAIClient) Complete(ctx context.Context, text string) (string, error) {
	if c.apiKey == "" {
		return "", errors.NewExternalError("openai", fmt.Errorf("API key not configured"))
	}

	result, err := c.breaker.Execute(func() (any, error) {
		return c.complete(ctx, text)
	})
	if err != nil {
		if appErr := errors.GetAppError(err); appErr != nil {
			return "", appErr
		}
		return "", errors.NewExternalError("openai", err)
	}
	return result.(string), nil
}

func (c *OpenAIClient) complete(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:     c.model,
		Messages:  []chatMessage{{Role: "user", Content: text}},
		MaxTokens: c.maxTokens,
	})
	if err != nil {
		return "", errors.Wrap(err, "encoding chat request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "building chat request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.NewNetworkError("calling chat completion", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.NewNetworkError("reading chat response", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return "", errors.NewExternalError("openai", fmt.Errorf("unparseable response (status %d)", resp.StatusCode))
	}
	if parsed.Error != nil {
		return "", errors.NewExternalError("openai", fmt.Errorf("%s", parsed.Error.Message))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 || len(parsed.Choices) == 0 {
		return "", errors.NewExternalError("openai", fmt.Errorf("status %d with no completion", resp.StatusCode))
	}

	return parsed.Choices[0].Message.Content, nil
}
