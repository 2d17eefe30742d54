package i18n

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/lakaymarket/storefront-backend/pkg/enums"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// Catalog holds the flattened UI dictionaries keyed as "section.key".
type Catalog struct {
	fallback enums.Language
	dicts    map[enums.Language]map[string]string
	langs    []enums.Language
	matcher  language.Matcher
}

// New loads the embedded dictionaries. fallback must be a supported language.
func New(fallback enums.Language) (*Catalog, error) {
	if !fallback.IsValid() {
		return nil, fmt.Errorf("unsupported fallback language %q", fallback)
	}

	c := &Catalog{fallback: fallback, dicts: map[enums.Language]map[string]string{}}
	for _, lang := range enums.Languages() {
		raw, err := localeFS.ReadFile("locales/" + lang.String() + ".yaml")
		if err != nil {
			return nil, fmt.Errorf("reading %s dictionary: %w", lang, err)
		}
		var sections map[string]map[string]string
		if err := yaml.Unmarshal(raw, &sections); err != nil {
			return nil, fmt.Errorf("decoding %s dictionary: %w", lang, err)
		}
		flat := make(map[string]string)
		for section, entries := range sections {
			for key, value := range entries {
				flat[section+"."+key] = value
			}
		}
		c.dicts[lang] = flat
	}

	// The matcher falls back to its first tag, so the fallback language leads.
	c.langs = append(c.langs, fallback)
	for _, lang := range enums.Languages() {
		if lang != fallback {
			c.langs = append(c.langs, lang)
		}
	}
	tags := make([]language.Tag, 0, len(c.langs))
	for _, lang := range c.langs {
		tags = append(tags, language.Make(lang.String()))
	}
	c.matcher = language.NewMatcher(tags)
	return c, nil
}

// Fallback returns the default language.
func (c *Catalog) Fallback() enums.Language {
	return c.fallback
}

// T translates key, falling back to the default language and then to the key itself.
func (c *Catalog) T(lang enums.Language, key string) string {
	if v, ok := c.dicts[lang][key]; ok {
		return v
	}
	if v, ok := c.dicts[c.fallback][key]; ok {
		return v
	}
	return key
}

// Match picks the best supported language for an Accept-Language header.
func (c *Catalog) Match(acceptLanguage string) enums.Language {
	if strings.TrimSpace(acceptLanguage) == "" {
		return c.fallback
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return c.fallback
	}
	_, idx, conf := c.matcher.Match(tags...)
	if conf == language.No {
		return c.fallback
	}
	return c.langs[idx]
}

// Dictionary returns a copy of the flattened dictionary for lang, with
// missing keys filled from the default language.
func (c *Catalog) Dictionary(lang enums.Language) map[string]string {
	out := make(map[string]string, len(c.dicts[c.fallback]))
	for k, v := range c.dicts[c.fallback] {
		out[k] = v
	}
	for k, v := range c.dicts[lang] {
		out[k] = v
	}
	return out
}

// Keys lists every key of the default dictionary in sorted order.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.dicts[c.fallback]))
	for k := range c.dicts[c.fallback] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
