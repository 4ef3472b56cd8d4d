package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/openportal/portald/internal/llm"
)

// Handler executes one tool. Validation, authorization, and not-found
// conditions are reported in the returned string (it is shown to the end
// user); the error return is reserved for infrastructure faults.
type Handler interface {
	Name() string
	Handle(ctx context.Context, args map[string]any, actor string) (string, error)
}

// Result is one dispatched tool outcome.
type Result struct {
	// Text is the user-facing tool output.
	Text string
	// Label is the attribution label from the contract ("HR policy tool").
	Label string
	// Known is false when the model requested a tool that does not exist.
	Known bool
}

// Runner routes model-requested tool calls to typed handlers.
type Runner struct {
	contract *Contract
	handlers map[string]Handler
	logger   zerolog.Logger
}

// NewRunner builds a runner from the contract and handler set. Every
// handler must be declared in the contract.
func NewRunner(contract *Contract, logger zerolog.Logger, handlers ...Handler) (*Runner, error) {
	byName := make(map[string]Handler, len(handlers))
	for _, handler := range handlers {
		name := handler.Name()
		if _, declared := contract.Lookup(name); !declared {
			return nil, fmt.Errorf("handler %q is not declared in the tool contract", name)
		}
		if _, exists := byName[name]; exists {
			return nil, fmt.Errorf("duplicate handler %q", name)
		}
		byName[name] = handler
	}
	for _, spec := range contract.List() {
		if _, exists := byName[spec.Name]; !exists {
			return nil, fmt.Errorf("contract tool %q has no handler", spec.Name)
		}
	}

	return &Runner{
		contract: contract,
		handlers: byName,
		logger:   logger.With().Str("component", "tools").Logger(),
	}, nil
}

// Contract returns the parsed tool contract backing this runner.
func (r *Runner) Contract() *Contract {
	return r.contract
}

// Dispatch executes one model-requested tool call on behalf of actor. An
// unrecognized tool name yields a graceful placeholder result, not an
// error: one bad call must not fail the whole turn.
func (r *Runner) Dispatch(ctx context.Context, call llm.ToolCall, actor string) (Result, error) {
	name := strings.TrimSpace(call.Name)

	handler, ok := r.handlers[name]
	if !ok {
		r.logger.Warn().Str("tool", name).Msg("model requested unknown tool")
		return Result{
			Text:  fmt.Sprintf("I'm sorry, I don't know how to handle the request: %s.", name),
			Known: false,
		}, nil
	}
	spec, _ := r.contract.Lookup(name)

	text, err := handler.Handle(ctx, call.Args, actor)
	if err != nil {
		return Result{}, fmt.Errorf("tool %s: %w", name, err)
	}
	return Result{Text: text, Label: spec.Label, Known: true}, nil
}

// decodeArgs converts loosely-typed model arguments into a typed request
// struct via a JSON round trip. Unknown fields are ignored: the model is
// not trusted to match the schema exactly.
func decodeArgs(args map[string]any, out any) error {
	if args == nil {
		args = map[string]any{}
	}
	encoded, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encoding tool arguments: %w", err)
	}
	if err := json.Unmarshal(encoded, out); err != nil {
		return fmt.Errorf("decoding tool arguments: %w", err)
	}
	return nil
}
