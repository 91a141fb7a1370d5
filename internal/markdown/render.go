// Package markdown converts untrusted Markdown (AI feedback, card answers)
// into HTML safe for direct embedding. Rendering is a pure function of the
// input and a fixed allow-list.
package markdown

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Table),
			// WithUnsafe lets raw HTML through to the sanitizer, which strips
			// disallowed tags as elements instead of escaping them to visible
			// brackets. WithHardWraps turns single newlines into <br>.
			goldmark.WithRendererOptions(
				htmlrenderer.WithHardWraps(),
				htmlrenderer.WithUnsafe(),
			),
		),
		policy: newPolicy(),
	}
}

func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"h1", "h2", "h3",
		"p", "pre", "br",
		"em", "strong",
		"ul", "ol", "li",
		"table", "thead", "tbody", "tr", "th", "td",
	)
	p.AllowAttrs("class").OnElements("code", "span")
	p.AllowAttrs("href", "title", "rel").OnElements("a")
	p.AllowAttrs("src", "alt", "title").OnElements("img")
	// Scheme filtering is mandatory: javascript:-class URLs must not survive.
	p.AllowURLSchemes("http", "https", "mailto")
	return p
}

// Render converts Markdown to sanitized HTML. Empty or whitespace-only input
// yields the empty string.
func (r *Renderer) Render(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(md), &buf); err != nil {
		// Convert only fails on writer errors, which bytes.Buffer never
		// produces. Sanitize the source text directly as a last resort.
		return r.policy.Sanitize(md)
	}
	return r.policy.Sanitize(buf.String())
}

// Clean runs only the HTML sanitization stage. Cleaning already-clean HTML is
// idempotent.
func (r *Renderer) Clean(html string) string {
	return r.policy.Sanitize(html)
}
