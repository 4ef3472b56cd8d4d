// Package audit provides structured audit logging for chatbot tool calls.
package audit

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var (
	bearerTokenPattern = regexp.MustCompile(`(?i)\bBearer\s+[A-Za-z0-9\-._~+/]+=*`)
	keyValuePattern    = regexp.MustCompile(`(?i)\b(token|secret|password|authorization|api[_-]?key)\s*[:=]\s*([^\s,;]+)`)
)

// ToolCallCompletion captures one finalized tool-call outcome.
type ToolCallCompletion struct {
	RequestID   string
	Actor       string
	ToolName    string
	Arguments   map[string]any
	Outcome     string
	ErrorDetail string
	Duration    time.Duration
}

// ArgumentSummary is a redacted summary of tool-call arguments. Only the
// fields needed to answer "who asked what about whom" are kept.
type ArgumentSummary struct {
	Subject   string `json:"subject,omitempty"`
	InfoType  string `json:"info_type,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// Logger emits structured audit entries.
type Logger struct {
	logger zerolog.Logger
}

// NewLogger creates an audit logger.
func NewLogger(logger zerolog.Logger) *Logger {
	return &Logger{
		logger: logger.With().Str("component", "audit").Logger(),
	}
}

// Complete writes a single completion log entry for one tool call.
func (l *Logger) Complete(event ToolCallCompletion) {
	if l == nil {
		return
	}

	outcome := strings.TrimSpace(event.Outcome)
	if outcome == "" {
		outcome = "error"
	}

	tool := strings.TrimSpace(event.ToolName)
	if tool == "" {
		tool = "unknown"
	}

	duration := event.Duration
	if duration < 0 {
		duration = 0
	}

	entry := l.logger.Info().
		Str("event", "chat.tool_call.completed").
		Str("request_id", strings.TrimSpace(event.RequestID)).
		Str("actor", strings.TrimSpace(event.Actor)).
		Str("tool", tool).
		Str("outcome", outcome).
		Int64("duration_ms", duration.Milliseconds()).
		Interface("arguments", SummarizeArguments(event.Arguments))

	if redactedError := RedactSensitiveText(event.ErrorDetail); redactedError != "" {
		entry = entry.Str("error_detail", redactedError)
	}

	entry.Msg("tool call completed")
}

// SummarizeArguments builds a compact argument summary. Free-text fields
// such as policy queries are deliberately left out of the audit stream.
func SummarizeArguments(args map[string]any) ArgumentSummary {
	if args == nil {
		return ArgumentSummary{}
	}
	return ArgumentSummary{
		Subject:   readString(args, "username"),
		InfoType:  readString(args, "infoType"),
		StartDate: readString(args, "startDate"),
		EndDate:   readString(args, "endDate"),
	}
}

// RedactSensitiveText removes obvious secrets from free-text error details.
func RedactSensitiveText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	redacted := bearerTokenPattern.ReplaceAllString(trimmed, "Bearer [REDACTED]")
	redacted = keyValuePattern.ReplaceAllStringFunc(redacted, func(match string) string {
		parts := strings.SplitN(match, ":", 2)
		if len(parts) == 2 {
			return fmt.Sprintf("%s: [REDACTED]", strings.TrimSpace(parts[0]))
		}
		parts = strings.SplitN(match, "=", 2)
		if len(parts) == 2 {
			return fmt.Sprintf("%s=[REDACTED]", strings.TrimSpace(parts[0]))
		}
		return "[REDACTED]"
	})
	return redacted
}

func readString(args map[string]any, key string) string {
	raw, ok := args[key]
	if !ok {
		return ""
	}
	asString, ok := raw.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(asString)
}
