// Package i18n provides key-based string lookup per locale. Catalogs are
// embedded JSON files, one per supported locale. Lookup falls back to the
// default locale and finally to the key itself, so a missing translation is
// never a request failure.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Translator resolves dot-notation keys against per-locale catalogs.
type Translator struct {
	bundle        *goi18n.Bundle
	defaultLocale string
	supported     []string
	catalogs      map[string]map[string]string
	matcher       language.Matcher
}

// New loads every embedded catalog. defaultLocale must be one of them.
func New(defaultLocale string) (*Translator, error) {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("i18n: read locales: %w", err)
	}

	defaultTag, err := language.Parse(defaultLocale)
	if err != nil {
		return nil, fmt.Errorf("i18n: default locale %q: %w", defaultLocale, err)
	}

	bundle := goi18n.NewBundle(defaultTag)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	t := &Translator{
		bundle:        bundle,
		defaultLocale: defaultLocale,
		catalogs:      make(map[string]map[string]string),
	}

	tags := []language.Tag{defaultTag}
	for _, entry := range entries {
		name := entry.Name()
		locale := name[:len(name)-len(".json")]

		raw, err := localeFS.ReadFile("locales/" + name)
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", name, err)
		}

		var catalog map[string]string
		if err := json.Unmarshal(raw, &catalog); err != nil {
			return nil, fmt.Errorf("i18n: parse %s: %w", name, err)
		}
		t.catalogs[locale] = catalog

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			return nil, fmt.Errorf("i18n: load %s: %w", name, err)
		}

		t.supported = append(t.supported, locale)
		if locale != defaultLocale {
			tag, err := language.Parse(locale)
			if err != nil {
				return nil, fmt.Errorf("i18n: locale %q: %w", locale, err)
			}
			tags = append(tags, tag)
		}
	}
	sort.Strings(t.supported)

	if _, ok := t.catalogs[defaultLocale]; !ok {
		return nil, fmt.Errorf("i18n: default locale %q has no catalog", defaultLocale)
	}

	t.matcher = language.NewMatcher(tags)
	return t, nil
}

// T translates key into locale. Unsupported locales resolve against the
// default catalog; unknown keys return the key itself.
func (t *Translator) T(locale, key string, data map[string]interface{}) string {
	if !t.IsSupported(locale) {
		locale = t.defaultLocale
	}

	localizer := goi18n.NewLocalizer(t.bundle, locale, t.defaultLocale)
	msg, err := localizer.Localize(&goi18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil || msg == "" {
		return key
	}
	return msg
}

// Translations returns the full catalog for a locale.
func (t *Translator) Translations(locale string) (map[string]string, bool) {
	catalog, ok := t.catalogs[locale]
	if !ok {
		return nil, false
	}
	out := make(map[string]string, len(catalog))
	for k, v := range catalog {
		out[k] = v
	}
	return out, true
}

// Supported returns the sorted list of supported locales.
func (t *Translator) Supported() []string {
	out := make([]string, len(t.supported))
	copy(out, t.supported)
	return out
}

// DefaultLocale returns the fallback locale.
func (t *Translator) DefaultLocale() string {
	return t.defaultLocale
}

// IsSupported reports whether a catalog exists for locale.
func (t *Translator) IsSupported(locale string) bool {
	_, ok := t.catalogs[locale]
	return ok
}

// MatchAcceptLanguage picks the best supported locale for an Accept-Language
// header value, falling back to the default locale.
func (t *Translator) MatchAcceptLanguage(header string) string {
	if header == "" {
		return t.defaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return t.defaultLocale
	}
	_, index, conf := t.matcher.Match(tags...)
	if conf == language.No {
		return t.defaultLocale
	}
	// Matcher tag order mirrors the order catalogs were registered in:
	// the default locale first, then the remaining locales.
	ordered := t.orderedLocales()
	if index < 0 || index >= len(ordered) {
		return t.defaultLocale
	}
	return ordered[index]
}

func (t *Translator) orderedLocales() []string {
	out := []string{t.defaultLocale}
	for _, loc := range t.supported {
		if loc != t.defaultLocale {
			out = append(out, loc)
		}
	}
	return out
}
