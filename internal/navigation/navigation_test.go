package navigation

import (
	"testing"

	"github.com/lakaymarket/storefront-backend/internal/i18n"
	"github.com/lakaymarket/storefront-backend/pkg/enums"
)

func TestMenuLocalizesCategoriesAndTabs(t *testing.T) {
	catalog, err := i18n.New(enums.LanguageEnglish)
	if err != nil {
		t.Fatalf("i18n.New: %v", err)
	}
	menu := NewService(catalog).Menu(enums.LanguageCreole)

	if len(menu.Categories) != 9 {
		t.Fatalf("expected 9 categories, got %d", len(menu.Categories))
	}
	last := menu.Categories[len(menu.Categories)-1]
	if last.ID != enums.CategoryAll || last.Label != "Tout Kategori" || last.Path != "/categories" {
		t.Fatalf("unexpected all-categories entry %+v", last)
	}
	if menu.Categories[0].Label != "Mòd" || menu.Categories[0].Path != "/categories/fashion" {
		t.Fatalf("unexpected first category %+v", menu.Categories[0])
	}

	if len(menu.Tabs) != 5 {
		t.Fatalf("expected 5 tabs, got %d", len(menu.Tabs))
	}
	if menu.Tabs[0].Path != "/for-you" || menu.Tabs[0].Label != "Pou Ou" {
		t.Fatalf("unexpected first tab %+v", menu.Tabs[0])
	}
	if menu.BrowseBy != "Navige pa" {
		t.Fatalf("unexpected browse label %q", menu.BrowseBy)
	}
}
