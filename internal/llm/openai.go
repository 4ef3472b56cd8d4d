package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 60 * time.Second

// ClientConfig holds OpenAI-compatible client configuration.
type ClientConfig struct {
	// BaseURL is the API root (for example: https://api.openai.com/v1).
	BaseURL string
	// APIKey is sent as a bearer token.
	APIKey string
	// Model is the model identifier used for every request.
	Model string
	// Temperature is the sampling temperature.
	Temperature float64
	// MaxTokens caps completion length.
	MaxTokens int
	// Timeout is the per-request timeout. Defaults to 60s.
	Timeout time.Duration
}

// Client calls an OpenAI-compatible chat-completions API.
type Client struct {
	cfg        ClientConfig
	httpClient *http.Client
}

// NewClient creates a chat-completions client.
func NewClient(cfg ClientConfig) (*Client, error) {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("llm: BaseURL is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("llm: Model is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type wireTool struct {
	Type     string       `json:"type"`
	Function wireFunction `json:"function"`
}

type wireFunction struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

type completionRequest struct {
	Model       string     `json:"model"`
	Temperature float64    `json:"temperature"`
	MaxTokens   int        `json:"max_tokens,omitempty"`
	Messages    []Message  `json:"messages"`
	Tools       []wireTool `json:"tools,omitempty"`
	ToolChoice  string     `json:"tool_choice,omitempty"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content   string `json:"content"`
			ToolCalls []struct {
				Function struct {
					Name      string `json:"name"`
					Arguments string `json:"arguments"`
				} `json:"function"`
			} `json:"tool_calls"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Chat implements Provider.
func (c *Client) Chat(ctx context.Context, messages []Message) (Completion, error) {
	return c.complete(ctx, messages, nil)
}

// ChatWithTools implements Provider.
func (c *Client) ChatWithTools(ctx context.Context, messages []Message, tools []ToolDescriptor) (Completion, error) {
	return c.complete(ctx, messages, tools)
}

func (c *Client) complete(ctx context.Context, messages []Message, tools []ToolDescriptor) (Completion, error) {
	reqBody := completionRequest{
		Model:       c.cfg.Model,
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
		Messages:    messages,
	}
	for _, tool := range tools {
		reqBody.Tools = append(reqBody.Tools, wireTool{
			Type: "function",
			Function: wireFunction{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  tool.Parameters,
			},
		})
	}
	if len(reqBody.Tools) > 0 {
		reqBody.ToolChoice = "auto"
	}

	encoded, err := json.Marshal(reqBody)
	if err != nil {
		return Completion{}, fmt.Errorf("encoding completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(encoded))
	if err != nil {
		return Completion{}, fmt.Errorf("building completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Completion{}, fmt.Errorf("calling model: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return Completion{}, fmt.Errorf("reading model response: %w", err)
	}

	var decoded completionResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return Completion{}, fmt.Errorf("decoding model response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		if decoded.Error != nil && decoded.Error.Message != "" {
			return Completion{}, fmt.Errorf("model call failed (status %d): %s", resp.StatusCode, decoded.Error.Message)
		}
		return Completion{}, fmt.Errorf("model call failed with status %d", resp.StatusCode)
	}
	if len(decoded.Choices) == 0 {
		return Completion{}, fmt.Errorf("model response has no choices")
	}

	choice := decoded.Choices[0].Message
	completion := Completion{Text: choice.Content}
	for _, call := range choice.ToolCalls {
		args := map[string]any{}
		if strings.TrimSpace(call.Function.Arguments) != "" {
			if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
				return Completion{}, fmt.Errorf("decoding tool call arguments for %s: %w", call.Function.Name, err)
			}
		}
		completion.ToolCalls = append(completion.ToolCalls, ToolCall{
			Name: call.Function.Name,
			Args: args,
		})
	}
	return completion, nil
}
