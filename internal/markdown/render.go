// Package markdown renders chatbot replies to sanitized HTML.
package markdown

import (
	"bytes"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	ghtml "github.com/yuin/goldmark/renderer/html"
)

// Renderer converts markdown replies to HTML suitable for embedding in
// the portal web page.
type Renderer struct {
	engine goldmark.Markdown
	policy *bluemonday.Policy
}

// NewRenderer builds a renderer with GitHub-flavored extensions and a
// user-generated-content sanitization policy.
func NewRenderer() *Renderer {
	return &Renderer{
		engine: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(ghtml.WithHardWraps()),
		),
		policy: bluemonday.UGCPolicy(),
	}
}

// Render converts source markdown to sanitized HTML wrapped in the
// markdown-content container the web clients style against. A rendering
// failure degrades to escaped plain text rather than dropping the reply.
func (r *Renderer) Render(source string) string {
	var rendered bytes.Buffer
	if err := r.engine.Convert([]byte(source), &rendered); err != nil {
		return wrap(html.EscapeString(source))
	}
	return wrap(r.policy.Sanitize(rendered.String()))
}

func wrap(body string) string {
	return `<div class="markdown-content">` + strings.TrimSpace(body) + `</div>`
}
