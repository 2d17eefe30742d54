package enums

import "fmt"

// Category represents the storefront browse categories.
type Category string

const (
	CategoryFashion     Category = "fashion"
	CategorySports      Category = "sports"
	CategoryHome        Category = "home"
	CategoryTools       Category = "tools"
	CategoryGaming      Category = "gaming"
	CategoryBaby        Category = "baby"
	CategoryAuto        Category = "auto"
	CategoryElectronics Category = "electronics"
	CategoryFlashDeals  Category = "flash-deals"
	CategoryAll         Category = "all"
)

var validCategories = []Category{
	CategoryFashion,
	CategorySports,
	CategoryHome,
	CategoryTools,
	CategoryGaming,
	CategoryBaby,
	CategoryAuto,
	CategoryElectronics,
	CategoryFlashDeals,
	CategoryAll,
}

func (c Category) String() string {
	return string(c)
}

// IsValid reports whether the category is recognized.
func (c Category) IsValid() bool {
	for _, candidate := range validCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCategory converts the raw string to Category.
func ParseCategory(value string) (Category, error) {
	for _, candidate := range validCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid category %q", value)
}
