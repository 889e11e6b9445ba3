package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taskmate/web-services/internal/locale"
)

func TestTranslate(t *testing.T) {
	assert.Equal(t, "Pricing", T(locale.English, "nav.pricing"))
	assert.Equal(t, "قیمت‌ها", T(locale.Persian, "nav.pricing"))
	assert.Equal(t, "الأسعار", T(locale.Arabic, "nav.pricing"))
}

func TestTranslateFallsBackToDefaultLocale(t *testing.T) {
	// every supported locale resolves keys present only in the default catalog
	for _, l := range locale.Supported {
		assert.NotEqual(t, "", T(l, "home.title"))
	}
}

func TestTranslateUnknownKeyReturnsKey(t *testing.T) {
	assert.Equal(t, "does.not.exist", T(locale.Persian, "does.not.exist"))
}

func TestCatalogsCoverAllLocales(t *testing.T) {
	for _, l := range locale.Supported {
		assert.NotEmpty(t, catalogs[l], "catalog missing for %s", l)
	}
}
