package content

import (
	"embed"

	"github.com/taskmate/web-services/internal/locale"
)

//go:embed guide/*.md
var guideFS embed.FS

// Guide returns the long-form guide document for the locale, falling back to
// the default locale's document when no localized one has been authored.
func Guide(l locale.Locale) string {
	if b, err := guideFS.ReadFile("guide/guide." + l.String() + ".md"); err == nil {
		return string(b)
	}
	b, err := guideFS.ReadFile("guide/guide." + locale.Default.String() + ".md")
	if err != nil {
		return ""
	}
	return string(b)
}
