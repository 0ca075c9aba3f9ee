package translation_test

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formschema/pkg/translation"
)

func TestNormalizeLocale(t *testing.T) {
	cases := map[string]string{
		"fr_CA": "fr-CA",
		"en":    "en",
		" de ":  "de",
		"":      "",
	}
	for input, want := range cases {
		if got := translation.NormalizeLocale(input); got != want {
			t.Fatalf("NormalizeLocale(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestLocaleChain_IncludesParents(t *testing.T) {
	if diff := cmp.Diff([]string{"fr-CA", "fr"}, translation.LocaleChain("fr_CA")); diff != "" {
		t.Fatalf("chain mismatch (-want +got):\n%s", diff)
	}
	if chain := translation.LocaleChain(""); chain != nil {
		t.Fatalf("expected empty chain, got %v", chain)
	}
}

func TestCatalog_TransFallsBackThroughLocales(t *testing.T) {
	catalog := translation.NewCatalog(translation.WithFallbackLocale("en"))
	catalog.Add("fr", "messages", map[string]any{"save": "Enregistrer"})
	catalog.Add("en", "messages", map[string]any{"save": "Save", "cancel": "Cancel"})

	if got := catalog.Trans("save", nil, "", "fr_CA"); got != "Enregistrer" {
		t.Fatalf("expected parent locale hit, got %#v", got)
	}
	if got := catalog.Trans("cancel", nil, "", "fr_CA"); got != "Cancel" {
		t.Fatalf("expected fallback locale hit, got %#v", got)
	}
	if got := catalog.Trans("missing", nil, "", "fr"); got != "missing" {
		t.Fatalf("expected id on miss, got %#v", got)
	}
}

func TestCatalog_EmptyLocaleUsesDefaultLocale(t *testing.T) {
	catalog := translation.NewCatalog()
	catalog.Add("en", "messages", map[string]any{"user.email": "Email"})
	catalog.Add("de", "messages", map[string]any{"user.email": "E-Mail"})

	if got := catalog.Trans("user.email", nil, "", ""); got != "Email" {
		t.Fatalf("expected default locale hit, got %#v", got)
	}

	german := translation.NewCatalog(translation.WithDefaultLocale("de_DE"))
	german.Add("de", "messages", map[string]any{"user.email": "E-Mail"})
	if german.DefaultLocale() != "de-DE" {
		t.Fatalf("unexpected default locale %q", german.DefaultLocale())
	}
	if got := german.Trans("user.email", nil, "", " "); got != "E-Mail" {
		t.Fatalf("expected parent of default locale, got %#v", got)
	}
}

func TestCatalog_SubstitutesParams(t *testing.T) {
	catalog := translation.NewCatalog()
	catalog.Add("en", "", map[string]any{"hello": "Hello %name%, {count} new"})

	got := catalog.Trans("hello", map[string]any{"%name%": "Ada", "{count}": 2}, "", "en")
	if got != "Hello Ada, 2 new" {
		t.Fatalf("unexpected substitution %#v", got)
	}
}

func TestSubstitute_PrefersLongerKeys(t *testing.T) {
	got := translation.Substitute("%name% / %name_full%", map[string]any{"%name%": "A", "%name_full%": "Ada L"})
	if got != "A / Ada L" {
		t.Fatalf("unexpected substitution %q", got)
	}
}

func TestLoadCatalogFS(t *testing.T) {
	catalog, err := translation.LoadCatalogFS(os.DirFS("testdata/catalogs"))
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	if diff := cmp.Diff([]string{"en", "fr"}, catalog.Locales()); diff != "" {
		t.Fatalf("locales mismatch (-want +got):\n%s", diff)
	}
	if got := catalog.Trans("user.email", nil, "", "en"); got != "Email address" {
		t.Fatalf("expected flattened yaml id, got %#v", got)
	}
	if got := catalog.Trans("user.email", nil, "user_form", "fr"); got != "Adresse e-mail" {
		t.Fatalf("expected domain specific entry, got %#v", got)
	}
	if got := catalog.Trans("generic.name", nil, "messages", "fr"); got != "Nom" {
		t.Fatalf("expected json catalog entry, got %#v", got)
	}
	if got := catalog.Trans("count", nil, "", "en"); got != 3 {
		t.Fatalf("expected raw scalar value, got %#v", got)
	}
}
