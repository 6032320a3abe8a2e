package i18n

import (
	"strings"
	"testing"
)

func newTranslator(t *testing.T) *Translator {
	t.Helper()
	tr, err := New("en")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return tr
}

func TestTranslator_KnownKeyInEveryLocale(t *testing.T) {
	tr := newTranslator(t)

	seen := make(map[string]bool)
	for _, locale := range tr.Supported() {
		msg := tr.T(locale, "auth.invalid_credentials", nil)
		if msg == "" || msg == "auth.invalid_credentials" {
			t.Fatalf("locale %s: expected a translation, got %q", locale, msg)
		}
		seen[locale] = true
	}

	for _, want := range []string{"en", "es", "fr", "de", "pl"} {
		if !seen[want] {
			t.Fatalf("locale %s missing from supported set %v", want, tr.Supported())
		}
	}
}

func TestTranslator_UnknownKeyFallsBackToKey(t *testing.T) {
	tr := newTranslator(t)

	if got := tr.T("es", "no.such.key", nil); got != "no.such.key" {
		t.Fatalf("expected key echoed back, got %q", got)
	}
}

func TestTranslator_UnknownLocaleUsesDefault(t *testing.T) {
	tr := newTranslator(t)

	want := tr.T("en", "general.welcome", nil)
	if got := tr.T("xx", "general.welcome", nil); got != want {
		t.Fatalf("expected default-locale message %q, got %q", want, got)
	}
}

func TestTranslator_TemplateData(t *testing.T) {
	tr := newTranslator(t)

	got := tr.T("en", "i18n.locale_not_supported", map[string]any{"Locale": "xx"})
	if got == "i18n.locale_not_supported" {
		t.Fatalf("expected rendered message, got the key")
	}
	if want := "xx"; !strings.Contains(got, want) {
		t.Fatalf("expected %q in message, got %q", want, got)
	}
}

func TestTranslator_Translations(t *testing.T) {
	tr := newTranslator(t)

	catalog, ok := tr.Translations("de")
	if !ok {
		t.Fatalf("expected german catalog")
	}
	if catalog["general.welcome"] == "" {
		t.Fatalf("expected general.welcome in german catalog")
	}

	if _, ok := tr.Translations("xx"); ok {
		t.Fatalf("expected unsupported locale to report !ok")
	}

	// Returned catalogs are copies; mutations must not leak.
	catalog["general.welcome"] = "mutated"
	fresh, _ := tr.Translations("de")
	if fresh["general.welcome"] == "mutated" {
		t.Fatalf("catalog mutation leaked into the translator")
	}
}

func TestTranslator_MatchAcceptLanguage(t *testing.T) {
	tr := newTranslator(t)

	cases := []struct {
		header string
		want   string
	}{
		{"es-MX,es;q=0.9,en;q=0.5", "es"},
		{"fr-FR", "fr"},
		{"da, en-GB;q=0.8", "en"},
	}
	for _, tc := range cases {
		if got := tr.MatchAcceptLanguage(tc.header); got != tc.want {
			t.Fatalf("header %q: expected %q, got %q", tc.header, tc.want, got)
		}
	}

	// Malformed headers fall back to the default locale.
	if got := tr.MatchAcceptLanguage("not a header;;;"); got != "en" {
		t.Fatalf("expected default locale for malformed header, got %q", got)
	}
}
