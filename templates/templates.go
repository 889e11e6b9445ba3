package templates

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/taskmate/web-services/internal/i18n"
	"github.com/taskmate/web-services/internal/locale"
)

//go:embed site/*.tmpl console/*.tmpl static
var embedded embed.FS

func funcs() template.FuncMap {
	return template.FuncMap{
		"t": i18n.T,
		"switchPath": func(path, to string) string {
			return locale.SwitchPath(path, locale.Locale(to))
		},
	}
}

// Site parses the marketing site template set.
func Site() *template.Template {
	return template.Must(template.New("site").Funcs(funcs()).ParseFS(embedded, "site/*.tmpl"))
}

// Console parses the admin console template set.
func Console() *template.Template {
	return template.Must(template.New("console").Funcs(funcs()).ParseFS(embedded, "console/*.tmpl"))
}

// Static serves the embedded stylesheets.
func Static() http.FileSystem {
	sub, err := fs.Sub(embedded, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
