package enums

import "testing"

func TestParseCurrency(t *testing.T) {
	got, err := ParseCurrency(" htg ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != CurrencyHTG {
		t.Fatalf("expected HTG, got %s", got)
	}
	if _, err := ParseCurrency("BTC"); err == nil {
		t.Fatal("expected error for unsupported currency")
	}
}

func TestParseTierMode(t *testing.T) {
	for raw, want := range map[string]TierMode{"range": TierModeRange, "EXACT": TierModeExact} {
		got, err := ParseTierMode(raw)
		if err != nil {
			t.Fatalf("ParseTierMode(%q): %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseTierMode(%q) = %s, want %s", raw, got, want)
		}
	}
	if _, err := ParseTierMode("fuzzy"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestLanguagesAreValid(t *testing.T) {
	langs := Languages()
	if len(langs) != 4 {
		t.Fatalf("expected 4 languages, got %d", len(langs))
	}
	for _, l := range langs {
		if !l.IsValid() {
			t.Fatalf("language %s reported invalid", l)
		}
	}
	langs[0] = "xx"
	if Languages()[0] != LanguageEnglish {
		t.Fatal("Languages must return a copy")
	}
}

func TestParseCategory(t *testing.T) {
	if _, err := ParseCategory("flash-deals"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseCategory("flower"); err == nil {
		t.Fatal("expected error for unknown category")
	}
}
