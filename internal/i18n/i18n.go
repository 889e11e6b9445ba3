package i18n

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/taskmate/web-services/internal/locale"
	"github.com/taskmate/web-services/pkg/logger"
)

//go:embed locales/*.json
var localeFS embed.FS

var catalogs = mustLoadCatalogs()

func mustLoadCatalogs() map[locale.Locale]map[string]string {
	out := make(map[locale.Locale]map[string]string, len(locale.Supported))
	for _, l := range locale.Supported {
		b, err := localeFS.ReadFile("locales/" + l.String() + ".json")
		if err != nil {
			panic(fmt.Sprintf("i18n: missing catalog for %s: %v", l, err))
		}
		var m map[string]string
		if err := json.Unmarshal(b, &m); err != nil {
			panic(fmt.Sprintf("i18n: invalid catalog for %s: %v", l, err))
		}
		out[l] = m
	}
	return out
}

// T translates key for the given locale. Missing keys fall back to the
// default locale's catalog, then to the key itself. Positional args are
// applied with fmt.Sprintf when present.
func T(l locale.Locale, key string, args ...interface{}) string {
	msg, ok := catalogs[l][key]
	if !ok {
		msg, ok = catalogs[locale.Default][key]
	}
	if !ok {
		logger.Debugf("i18n: missing key %q (locale=%s)", key, l)
		msg = key
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}
