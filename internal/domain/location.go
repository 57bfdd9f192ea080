package domain

import "strings"

// Location is a parsed "City, State, Country" triple. Country is always
// present (worldwide sentinel by default); city and state are independently
// optional.
type Location struct {
	City    string
	State   string
	Country Country
}

func (l Location) String() string {
	var parts []string
	if l.City != "" {
		parts = append(parts, l.City)
	}
	if l.State != "" {
		parts = append(parts, l.State)
	}
	parts = append(parts, l.Country.String())
	return strings.Join(parts, ", ")
}
