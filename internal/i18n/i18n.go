// Package i18n provides the portal's bilingual message catalog. Lookups fall
// back to the default language and then to the raw key, so a missing entry
// never blanks out a label.
package i18n

import (
	"strings"
	"sync"
)

// Language is a supported catalog language.
type Language string

const (
	English Language = "en"
	Spanish Language = "es"
)

// ParseLanguage maps a raw tag onto a supported language.
func ParseLanguage(raw string) (Language, bool) {
	switch Language(strings.ToLower(strings.TrimSpace(raw))) {
	case English:
		return English, true
	case Spanish:
		return Spanish, true
	}
	return "", false
}

// Translator resolves message keys against the active language. The active
// language is process-wide and safe for concurrent use.
type Translator struct {
	mu       sync.RWMutex
	active   Language
	fallback Language
	catalogs map[Language]map[string]string
}

// New builds a translator with the embedded catalogs. An unknown default
// falls back to English.
func New(defaultLanguage string) *Translator {
	lang, ok := ParseLanguage(defaultLanguage)
	if !ok {
		lang = English
	}
	return &Translator{
		active:   lang,
		fallback: English,
		catalogs: map[Language]map[string]string{
			English: englishCatalog,
			Spanish: spanishCatalog,
		},
	}
}

// Language returns the active language.
func (t *Translator) Language() Language {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active
}

// SetLanguage switches the active language. Unknown tags are rejected.
func (t *Translator) SetLanguage(raw string) bool {
	lang, ok := ParseLanguage(raw)
	if !ok {
		return false
	}
	t.mu.Lock()
	t.active = lang
	t.mu.Unlock()
	return true
}

// Languages lists the supported language tags.
func (t *Translator) Languages() []Language {
	return []Language{English, Spanish}
}

// T resolves a key in the active language, substituting {placeholder}
// occurrences from replacements. Missing keys fall back to the default
// language, then to the key itself.
func (t *Translator) T(key string, replacements map[string]string) string {
	t.mu.RLock()
	active := t.active
	t.mu.RUnlock()

	message, ok := t.catalogs[active][key]
	if !ok {
		message, ok = t.catalogs[t.fallback][key]
	}
	if !ok {
		message = key
	}
	for name, value := range replacements {
		message = strings.ReplaceAll(message, "{"+name+"}", value)
	}
	return message
}

// Catalog returns a copy of the active language's full catalog, with default
// language entries filling any gaps.
func (t *Translator) Catalog() map[string]string {
	t.mu.RLock()
	active := t.active
	t.mu.RUnlock()

	out := make(map[string]string, len(t.catalogs[t.fallback]))
	for key, value := range t.catalogs[t.fallback] {
		out[key] = value
	}
	for key, value := range t.catalogs[active] {
		out[key] = value
	}
	return out
}
