package navigation

import (
	"github.com/lakaymarket/storefront-backend/pkg/enums"
)

// Translator resolves dictionary keys for a language.
type Translator interface {
	T(lang enums.Language, key string) string
}

type CategoryItem struct {
	ID    enums.Category `json:"id"`
	Label string         `json:"label"`
	Path  string         `json:"path"`
}

type TabItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Path  string `json:"path"`
}

// Menu is the localized navigation served to the storefront shell.
type Menu struct {
	Language      enums.Language `json:"language"`
	BrowseBy      string         `json:"browse_by"`
	Categories    []CategoryItem `json:"categories"`
	Tabs          []TabItem      `json:"tabs"`
	SearchPrompt  string         `json:"search_prompt"`
	LanguageLabel string         `json:"language_label"`
}

var categories = []enums.Category{
	enums.CategoryFashion,
	enums.CategorySports,
	enums.CategoryHome,
	enums.CategoryTools,
	enums.CategoryGaming,
	enums.CategoryBaby,
	enums.CategoryAuto,
	enums.CategoryElectronics,
	enums.CategoryAll,
}

var tabs = []struct {
	id   string
	path string
}{
	{"recommendations", "/for-you"},
	{"posts", "/posts"},
	{"shops", "/shops"},
	{"trending", "/trending"},
	{"videos", "/videos"},
}

type Service struct {
	tr Translator
}

func NewService(tr Translator) *Service {
	return &Service{tr: tr}
}

func (s *Service) Menu(lang enums.Language) Menu {
	menu := Menu{
		Language:      lang,
		BrowseBy:      s.tr.T(lang, "categories.browseBy"),
		SearchPrompt:  s.tr.T(lang, "header.search"),
		LanguageLabel: s.tr.T(lang, "header.language"),
		Categories:    make([]CategoryItem, 0, len(categories)),
		Tabs:          make([]TabItem, 0, len(tabs)),
	}
	for _, c := range categories {
		menu.Categories = append(menu.Categories, CategoryItem{
			ID:    c,
			Label: s.tr.T(lang, categoryKey(c)),
			Path:  categoryPath(c),
		})
	}
	for _, tab := range tabs {
		menu.Tabs = append(menu.Tabs, TabItem{
			ID:    tab.id,
			Label: s.tr.T(lang, "home."+tab.id),
			Path:  tab.path,
		})
	}
	return menu
}

func categoryKey(c enums.Category) string {
	if c == enums.CategoryAll {
		return "categories.allCategories"
	}
	return "categories." + c.String()
}

func categoryPath(c enums.Category) string {
	if c == enums.CategoryAll {
		return "/categories"
	}
	return "/categories/" + c.String()
}
