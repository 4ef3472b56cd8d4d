package llm

import (
	"fmt"
	"time"
)

const toolSelectionSystemPrompt = `You are a helpful assistant for an employee portal.
Today is %s. You are talking to %s.

Answer employee questions about company policies, vacation requests, and
general topics. Use the available tools when the question needs company
data: look up HR policies, look up a user's personal information, or submit
a vacation request. A single message may need more than one tool. When no
tool applies, answer directly, professionally, and in under 150 words.`

const ragSystemPrompt = `You are a helpful assistant for an employee portal.
Today is %s. You are talking to %s.

Answer the user's question using only the HR policy excerpts below. Give a
direct, concise answer rather than quoting the documents. If the excerpts
do not cover the question, say so and suggest contacting HR.

HR policy excerpts:
%s`

const mergeSystemPrompt = `You are a helpful assistant for an employee portal.
The user's request produced several partial results, separated by blank
lines below. Merge them into one coherent, well-formatted answer. Keep all
facts, drop nothing, and do not add new information.

Partial results:
%s`

// FormatDate renders t the way prompts present the current date.
func FormatDate(t time.Time) string {
	return t.Format("Monday, January 2, 2006")
}

// ToolSelectionMessages builds the first-pass prompt asking the model to
// answer directly or pick tools.
func ToolSelectionMessages(message, username string, now time.Time) []Message {
	return []Message{
		{Role: RoleSystem, Content: fmt.Sprintf(toolSelectionSystemPrompt, FormatDate(now), username)},
		{Role: RoleUser, Content: message},
	}
}

// RAGMessages builds the grounded-generation prompt that turns raw policy
// excerpts into a direct answer to the original question.
func RAGMessages(question, documents, username string, now time.Time) []Message {
	return []Message{
		{Role: RoleSystem, Content: fmt.Sprintf(ragSystemPrompt, FormatDate(now), username, documents)},
		{Role: RoleUser, Content: question},
	}
}

// MergeMessages builds the prompt that combines multiple tool results into
// one coherent answer.
func MergeMessages(combinedResults string) []Message {
	return []Message{
		{Role: RoleSystem, Content: fmt.Sprintf(mergeSystemPrompt, combinedResults)},
		{Role: RoleUser, Content: "Merge the partial results into one answer."},
	}
}
