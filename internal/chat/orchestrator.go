// Package chat orchestrates one portal chat turn: tool selection, tool
// dispatch, answer synthesis, and final rendering.
package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/openportal/portald/internal/audit"
	"github.com/openportal/portald/internal/llm"
	"github.com/openportal/portald/internal/markdown"
	"github.com/openportal/portald/internal/tools"
)

const fallbackAnswer = "I'm sorry, I'm not able to process your request right now."

// Orchestrator drives the model-and-tools loop for one chat message.
type Orchestrator struct {
	provider llm.Provider
	runner   *tools.Runner
	renderer *markdown.Renderer
	audit    *audit.Logger
	logger   zerolog.Logger
	now      func() time.Time
}

// NewOrchestrator wires the orchestrator. auditLogger may be nil.
func NewOrchestrator(provider llm.Provider, runner *tools.Runner, renderer *markdown.Renderer, auditLogger *audit.Logger, logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		provider: provider,
		runner:   runner,
		renderer: renderer,
		audit:    auditLogger,
		logger:   logger.With().Str("component", "chat").Logger(),
		now:      time.Now,
	}
}

// ProcessMessage answers one user message and returns sanitized HTML. An
// error means an infrastructure fault (model or store unavailable); the
// transport layer turns it into a processing-failure response. Everything
// the user can get wrong is answered in-band as a normal reply.
func (o *Orchestrator) ProcessMessage(ctx context.Context, message, username string) (string, error) {
	requestID := uuid.NewString()
	logger := o.logger.With().Str("request_id", requestID).Str("user", username).Logger()

	completion, err := o.provider.ChatWithTools(ctx,
		llm.ToolSelectionMessages(message, username, o.now()),
		o.runner.Contract().Descriptors(),
	)
	if err != nil {
		logger.Error().Err(err).Msg("tool selection call failed")
		return "", fmt.Errorf("selecting tools: %w", err)
	}

	if len(completion.ToolCalls) == 0 {
		return o.renderer.Render(completion.Text), nil
	}

	results := make([]tools.Result, 0, len(completion.ToolCalls))
	for _, call := range completion.ToolCalls {
		result, err := o.executeCall(ctx, logger, requestID, call, message, username)
		if err != nil {
			return "", err
		}
		results = append(results, result)
	}

	answer, err := o.compose(ctx, logger, results)
	if err != nil {
		return "", err
	}
	return o.renderer.Render(answer), nil
}

// executeCall dispatches one tool call and, for policy lookups, synthesizes
// a direct answer from the returned excerpts.
func (o *Orchestrator) executeCall(ctx context.Context, logger zerolog.Logger, requestID string, call llm.ToolCall, message, username string) (tools.Result, error) {
	started := o.now()
	result, err := o.runner.Dispatch(ctx, call, username)
	o.auditCall(requestID, username, call, err, o.now().Sub(started))
	if err != nil {
		logger.Error().Err(err).Str("tool", call.Name).Msg("tool call failed")
		return tools.Result{}, fmt.Errorf("dispatching %s: %w", call.Name, err)
	}

	if call.Name == tools.ToolHRPolicy && result.Known {
		synthesized, err := o.provider.Chat(ctx, llm.RAGMessages(message, result.Text, username, o.now()))
		if err != nil {
			logger.Error().Err(err).Msg("policy synthesis call failed")
			return tools.Result{}, fmt.Errorf("synthesizing policy answer: %w", err)
		}
		result.Text = synthesized.Text
	}
	return result, nil
}

// compose turns dispatched tool results into the final markdown answer,
// including the attribution note naming the tools that produced it.
func (o *Orchestrator) compose(ctx context.Context, logger zerolog.Logger, results []tools.Result) (string, error) {
	texts := make([]string, 0, len(results))
	labels := make([]string, 0, len(results))
	for _, result := range results {
		if strings.TrimSpace(result.Text) == "" {
			continue
		}
		texts = append(texts, result.Text)
		if result.Known {
			labels = append(labels, result.Label)
		}
	}

	switch len(texts) {
	case 0:
		return fallbackAnswer, nil
	case 1:
		return texts[0] + attribution(labels), nil
	default:
		merged, err := o.provider.Chat(ctx, llm.MergeMessages(strings.Join(texts, "\n\n")))
		if err != nil {
			logger.Error().Err(err).Msg("merge call failed")
			return "", fmt.Errorf("merging tool results: %w", err)
		}
		return merged.Text + attribution(labels), nil
	}
}

func attribution(labels []string) string {
	if len(labels) == 0 {
		return ""
	}
	return fmt.Sprintf("\n\n*Generated by [%s]*", strings.Join(labels, ", "))
}

func (o *Orchestrator) auditCall(requestID, username string, call llm.ToolCall, err error, duration time.Duration) {
	if o.audit == nil {
		return
	}
	outcome := "success"
	detail := ""
	if err != nil {
		outcome = "error"
		detail = err.Error()
	}
	o.audit.Complete(audit.ToolCallCompletion{
		RequestID:   requestID,
		Actor:       username,
		ToolName:    call.Name,
		Arguments:   call.Args,
		Outcome:     outcome,
		ErrorDetail: detail,
		Duration:    duration,
	})
}
