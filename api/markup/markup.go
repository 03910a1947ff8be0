// Package markup turns user-supplied text into safe HTML for templates and
// strips markup from form input before it is stored.
package markup

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	strict *bluemonday.Policy
}

func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Linkify,
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithHardWraps(),
		),
	)

	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)

	return &Renderer{
		md:     md,
		policy: policy,
		strict: bluemonday.StrictPolicy(),
	}
}

func (r *Renderer) ToHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}
	return r.policy.Sanitize(buf.String()), nil
}

// StripTags removes every HTML element from s and returns plain text. The
// strict policy entity-encodes its output, which is undone here so the value
// is escaped exactly once when it reaches a template.
func (r *Renderer) StripTags(s string) string {
	return html.UnescapeString(r.strict.Sanitize(s))
}

var defaultRenderer = NewRenderer()

// Render converts Markdown to sanitized HTML. On a conversion failure the
// escaped source text is returned instead.
func Render(markdown string) template.HTML {
	if strings.TrimSpace(markdown) == "" {
		return ""
	}
	out, err := defaultRenderer.ToHTML(markdown)
	if err != nil {
		return template.HTML(template.HTMLEscapeString(markdown))
	}
	return template.HTML(out)
}

func StripTags(s string) string {
	return defaultRenderer.StripTags(s)
}
