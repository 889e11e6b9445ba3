package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale is one of the supported UI languages.
type Locale string

const (
	English Locale = "en"
	Persian Locale = "fa"
	Arabic  Locale = "ar"
)

// Default is the locale every unrecognized request resolves to.
const Default = English

// Supported lists the closed locale set, default first.
var Supported = []Locale{English, Persian, Arabic}

var tags = []language.Tag{language.English, language.Persian, language.Arabic}

var matcher = language.NewMatcher(tags)

// IsSupported reports whether code names a supported locale exactly.
func IsSupported(code string) bool {
	switch Locale(code) {
	case English, Persian, Arabic:
		return true
	}
	return false
}

// Normalize maps an arbitrary language code to a supported locale.
// Region subtags are stripped ("fa-IR" -> fa); unknown codes map to Default.
func Normalize(code string) Locale {
	code = strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexAny(code, "-_"); i >= 0 {
		code = code[:i]
	}
	if IsSupported(code) {
		return Locale(code)
	}
	return Default
}

// Dir returns the text direction attribute value for the locale.
func (l Locale) Dir() string {
	switch l {
	case Persian, Arabic:
		return "rtl"
	}
	return "ltr"
}

// RTL reports whether the locale renders right-to-left.
func (l Locale) RTL() bool { return l.Dir() == "rtl" }

func (l Locale) String() string { return string(l) }

// FromAcceptLanguage negotiates the best supported locale for an
// Accept-Language header value. Empty or unparseable headers yield Default.
func FromAcceptLanguage(header string) Locale {
	if strings.TrimSpace(header) == "" {
		return Default
	}
	desired, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(desired) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(desired...)
	if conf == language.No {
		return Default
	}
	return Supported[idx]
}

// SplitPath extracts the locale prefix from a request path.
// "/fa/pricing" -> (fa, "/pricing", true); "/pricing" -> (Default, "", false).
func SplitPath(path string) (Locale, string, bool) {
	trimmed := strings.TrimPrefix(path, "/")
	seg, rest, _ := strings.Cut(trimmed, "/")
	if !IsSupported(seg) {
		return Default, "", false
	}
	return Locale(seg), "/" + rest, true
}

// SwitchPath rewrites only the locale segment of path, preserving the rest,
// so switching language keeps the reader on the same page. Paths without a
// recognized prefix are re-rooted at the target locale's home.
func SwitchPath(path string, to Locale) string {
	_, rest, ok := SplitPath(path)
	if !ok {
		return strings.TrimSuffix("/"+to.String()+path, "/")
	}
	return strings.TrimSuffix("/"+to.String()+rest, "/")
}
