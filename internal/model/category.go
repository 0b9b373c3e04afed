package model

import (
	"errors"
	"fmt"
	"strings"
)

// Category is one of the three fixed groupings.
type Category string

const (
	Restaurants Category = "restaurants"
	Travel      Category = "travel"
	Sports      Category = "sports"
)

// Categories lists every category in display order.
var Categories = []Category{Restaurants, Travel, Sports}

var ErrUnknownCategory = errors.New("unknown category")

// Valid reports whether c belongs to the closed category set.
func (c Category) Valid() bool {
	switch c {
	case Restaurants, Travel, Sports:
		return true
	}
	return false
}

// Title is the human label used by renderers.
func (c Category) Title() string {
	switch c {
	case Restaurants:
		return "Restaurants"
	case Travel:
		return "Travel"
	case Sports:
		return "Sports"
	}
	return string(c)
}

// ParseCategory accepts a full name or an unambiguous prefix, case-insensitive.
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", fmt.Errorf("%w: empty", ErrUnknownCategory)
	}
	var match Category
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
		if strings.HasPrefix(string(c), s) {
			if match != "" {
				return "", fmt.Errorf("%w: %q is ambiguous", ErrUnknownCategory, s)
			}
			match = c
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return match, nil
}
