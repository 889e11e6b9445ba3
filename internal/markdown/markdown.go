package markdown

import (
	"bytes"
	"html/template"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/taskmate/web-services/pkg/logger"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

var policy = bluemonday.UGCPolicy()

// Render converts author-authored markdown into sanitized HTML. Conversion
// is one-directional and runs on every render; long-form pages are cheap
// enough that a cache layer isn't worth the invalidation story.
func Render(source string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		logger.Errorf("markdown: convert failed: %v", err)
		return template.HTML("")
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes()))
}

var (
	markupTokens = regexp.MustCompile("[#*_`>~\\[\\]()!-]+")
	whitespace   = regexp.MustCompile(`\s+`)
)

// Excerpt derives a best-effort plain-text preview from raw markdown:
// markup tokens stripped, whitespace collapsed, truncated to limit runes
// with a trailing ellipsis marker when the text was longer.
func Excerpt(source string, limit int) string {
	text := markupTokens.ReplaceAllString(source, " ")
	text = strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
	if limit <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return strings.TrimSpace(string(runes[:limit])) + "…"
}
