package enums

import (
	"fmt"
	"strings"
)

// Language is a storefront UI language code.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageSpanish Language = "es"
	LanguageFrench  Language = "fr"
	LanguageCreole  Language = "ht"
)

var validLanguages = []Language{
	LanguageEnglish,
	LanguageSpanish,
	LanguageFrench,
	LanguageCreole,
}

func (l Language) String() string {
	return string(l)
}

// IsValid reports whether the language has a dictionary.
func (l Language) IsValid() bool {
	for _, candidate := range validLanguages {
		if candidate == l {
			return true
		}
	}
	return false
}

// Languages returns the supported languages in display order.
func Languages() []Language {
	out := make([]Language, len(validLanguages))
	copy(out, validLanguages)
	return out
}

// ParseLanguage converts the raw string to Language.
func ParseLanguage(value string) (Language, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validLanguages {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid language %q", value)
}
