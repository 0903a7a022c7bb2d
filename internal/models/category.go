package models

import "fmt"

// Category is the closed set of feedback topics.
type Category string

const (
	CategoryProduct Category = "product"
	CategoryService Category = "service"
	CategorySupport Category = "support"
	CategoryOverall Category = "overall"
)

// Categories lists every category in declaration order.
var Categories = []Category{CategoryProduct, CategoryService, CategorySupport, CategoryOverall}

// ParseCategory decodes a raw value, rejecting anything outside the enumeration.
func ParseCategory(raw string) (Category, error) {
	for _, c := range Categories {
		if string(c) == raw {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", raw)
}

// CategoryNames returns the wire values of Categories.
func CategoryNames() []string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = string(c)
	}
	return names
}

// String returns the wire value.
func (c Category) String() string {
	return string(c)
}
