package audit

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestLoggerComplete_EmitsOneStructuredEntry(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	auditLogger := NewLogger(logger)

	auditLogger.Complete(ToolCallCompletion{
		RequestID: "req-1",
		Actor:     "john",
		ToolName:  "personal_info_query",
		Arguments: map[string]any{
			"username": "alice",
			"infoType": "vacation_days",
			"token":    "super-secret",
		},
		Outcome:  "success",
		Duration: 250 * time.Millisecond,
	})

	lines := splitJSONLines(t, buf.String())
	require.Len(t, lines, 1)

	entry := lines[0]
	require.Equal(t, "chat.tool_call.completed", entry["event"])
	require.Equal(t, "req-1", entry["request_id"])
	require.Equal(t, "john", entry["actor"])
	require.Equal(t, "personal_info_query", entry["tool"])
	require.Equal(t, "success", entry["outcome"])
	require.EqualValues(t, 250, entry["duration_ms"])

	arguments, ok := entry["arguments"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "alice", arguments["subject"])
	require.Equal(t, "vacation_days", arguments["info_type"])
	_, hasToken := arguments["token"]
	require.False(t, hasToken)
}

func TestLoggerComplete_EmptyOutcomeReadsAsError(t *testing.T) {
	var buf bytes.Buffer
	auditLogger := NewLogger(zerolog.New(&buf))

	auditLogger.Complete(ToolCallCompletion{
		ToolName:    "hr_policy_query",
		ErrorDetail: "policy lookup failed: token=xyz123",
	})

	lines := splitJSONLines(t, buf.String())
	require.Len(t, lines, 1)
	require.Equal(t, "error", lines[0]["outcome"])
	require.Contains(t, lines[0]["error_detail"], "token=[REDACTED]")
	require.NotContains(t, lines[0]["error_detail"], "xyz123")
}

func TestRedactSensitiveText_RedactsTokenLikeSegments(t *testing.T) {
	raw := "request failed: Authorization: Bearer abc.def.ghi token=xyz123 api_key=sk-live-1"
	redacted := RedactSensitiveText(raw)

	require.NotContains(t, redacted, "abc.def.ghi")
	require.NotContains(t, redacted, "xyz123")
	require.NotContains(t, redacted, "sk-live-1")
	require.Contains(t, redacted, "Authorization: [REDACTED]")
	require.Contains(t, redacted, "token=[REDACTED]")
	require.Contains(t, redacted, "api_key=[REDACTED]")
}

func TestSummarizeArguments_DropsFreeTextFields(t *testing.T) {
	summary := SummarizeArguments(map[string]any{
		"username":  "bob",
		"infoType":  "vacation_days",
		"startDate": "2023-06-15",
		"endDate":   "2023-06-20",
		"query":     "what is the dress code for interviews",
	})

	require.Equal(t, "bob", summary.Subject)
	require.Equal(t, "vacation_days", summary.InfoType)
	require.Equal(t, "2023-06-15", summary.StartDate)
	require.Equal(t, "2023-06-20", summary.EndDate)

	encoded, err := json.Marshal(summary)
	require.NoError(t, err)
	require.NotContains(t, string(encoded), "dress code")
}

func splitJSONLines(t *testing.T, payload string) []map[string]any {
	t.Helper()

	rawLines := bytes.Split(bytes.TrimSpace([]byte(payload)), []byte("\n"))
	lines := make([]map[string]any, 0, len(rawLines))
	for _, raw := range rawLines {
		if len(bytes.TrimSpace(raw)) == 0 {
			continue
		}
		var item map[string]any
		require.NoError(t, json.Unmarshal(raw, &item))
		lines = append(lines, item)
	}
	return lines
}
