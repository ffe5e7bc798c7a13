package models

import "strings"

// Category classifies an expense for display.
type Category string

const (
	CategoryFood      Category = "food"
	CategoryTransport Category = "transport"
	CategoryLodging   Category = "lodging"
	CategoryActivity  Category = "activity"
	CategoryOther     Category = "other"
)

// ParseCategory returns the category named s, or CategoryOther when s is
// empty or unknown.
func ParseCategory(s string) Category {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case CategoryFood, CategoryTransport, CategoryLodging, CategoryActivity:
		return c
	default:
		return CategoryOther
	}
}

// Label returns a human-readable name for c.
func (c Category) Label() string {
	switch c {
	case CategoryFood:
		return "Food & drink"
	case CategoryTransport:
		return "Transport"
	case CategoryLodging:
		return "Lodging"
	case CategoryActivity:
		return "Activity"
	default:
		return "Other"
	}
}

// Icon returns an emoji for c.
func (c Category) Icon() string {
	switch c {
	case CategoryFood:
		return "🍚"
	case CategoryTransport:
		return "🚗"
	case CategoryLodging:
		return "🏨"
	case CategoryActivity:
		return "🎡"
	default:
		return "💰"
	}
}
