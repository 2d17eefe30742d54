package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakaymarket/storefront-backend/pkg/enums"
)

func newCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := New(enums.LanguageEnglish)
	require.NoError(t, err)
	return c
}

func TestNewRejectsUnknownFallback(t *testing.T) {
	_, err := New("de")
	require.Error(t, err)
}

func TestTranslate(t *testing.T) {
	c := newCatalog(t)
	assert.Equal(t, "Add to cart", c.T(enums.LanguageEnglish, "product.addToCart"))
	assert.Equal(t, "Ajoute nan panye", c.T(enums.LanguageCreole, "product.addToCart"))
	assert.Equal(t, "Todas las categorías", c.T(enums.LanguageSpanish, "categories.allCategories"))
	assert.Equal(t, "S'abonner", c.T(enums.LanguageFrench, "newsletter.subscribe"))
}

func TestTranslateFallbacks(t *testing.T) {
	c := newCatalog(t)
	assert.Equal(t, "Login", c.T("xx", "auth.login"))
	assert.Equal(t, "missing.key", c.T(enums.LanguageFrench, "missing.key"))
}

func TestEveryLanguageCoversEveryKey(t *testing.T) {
	c := newCatalog(t)
	keys := c.Keys()
	require.NotEmpty(t, keys)
	for _, lang := range enums.Languages() {
		for _, key := range keys {
			_, ok := c.dicts[lang][key]
			assert.True(t, ok, "%s missing %s", lang, key)
		}
	}
}

func TestMatch(t *testing.T) {
	c := newCatalog(t)
	cases := map[string]enums.Language{
		"":                     enums.LanguageEnglish,
		"fr-CA,fr;q=0.9":       enums.LanguageFrench,
		"es-419":               enums.LanguageSpanish,
		"ht":                   enums.LanguageCreole,
		"de-DE":                enums.LanguageEnglish,
		"de;q=0.9, es;q=0.8":   enums.LanguageSpanish,
		"not a valid header;;": enums.LanguageEnglish,
	}
	for header, want := range cases {
		assert.Equal(t, want, c.Match(header), "header %q", header)
	}
}

func TestDictionaryIsACopy(t *testing.T) {
	c := newCatalog(t)
	dict := c.Dictionary(enums.LanguageCreole)
	assert.Equal(t, "Tout Kategori", dict["categories.allCategories"])
	dict["categories.allCategories"] = "changed"
	assert.Equal(t, "Tout Kategori", c.T(enums.LanguageCreole, "categories.allCategories"))
}
