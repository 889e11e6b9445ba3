package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderBasic(t *testing.T) {
	out := string(Render("# Title\n\nSome **bold** text."))
	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "<strong>bold</strong>")
}

func TestRenderStripsScripts(t *testing.T) {
	out := string(Render("hello <script>alert(1)</script> world"))
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "hello")
}

func TestExcerptStripsAndTruncates(t *testing.T) {
	got := Excerpt("# Title\n\nSome **bold** text.", 20)
	assert.Equal(t, "Title Some bold text…", got)
}

func TestExcerptShortInputUntouched(t *testing.T) {
	assert.Equal(t, "Title hello", Excerpt("# Title\n\nhello", 80))
}

func TestExcerptCollapsesWhitespace(t *testing.T) {
	got := Excerpt("a\n\n\nb\t\tc   d", 0)
	assert.Equal(t, "a b c d", got)
}

func TestExcerptRuneSafe(t *testing.T) {
	// multi-byte input must not be cut mid-rune
	got := Excerpt("سلام دنیا، این یک متن آزمایشی طولانی است", 10)
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.LessOrEqual(t, len([]rune(got)), 11)
}
