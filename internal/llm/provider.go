// Package llm abstracts the language-model capability behind a Provider
// interface and implements it for OpenAI-compatible chat-completion APIs.
package llm

import "context"

// Message roles on the chat-completions wire.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one chat message sent to the model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ToolDescriptor describes one callable tool to the model. Parameters is a
// JSON-schema-shaped object.
type ToolDescriptor struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// ToolCall is one tool invocation requested by the model.
type ToolCall struct {
	Name string
	Args map[string]any
}

// Completion is the model's reply: either direct text, or one or more
// requested tool calls (a single turn may carry several).
type Completion struct {
	Text      string
	ToolCalls []ToolCall
}

// Provider is the opaque model capability.
type Provider interface {
	// Chat requests a plain completion.
	Chat(ctx context.Context, messages []Message) (Completion, error)
	// ChatWithTools requests a completion with tools the model may invoke.
	ChatWithTools(ctx context.Context, messages []Message, tools []ToolDescriptor) (Completion, error)
}
