package entity

import "strings"

// Boroughs recognized by the site. Borough is stored as a plain string but
// inbound writes are validated against this set.
var validBoroughs = map[string]struct{}{
	"manhattan":     {},
	"brooklyn":      {},
	"queens":        {},
	"bronx":         {},
	"staten_island": {},
}

// ValidateBorough checks that the borough is one of the recognized values.
// Comparison is case-insensitive; stored values are lowercase.
func ValidateBorough(borough string) error {
	if borough == "" {
		return &ValidationError{Field: "borough", Message: "is required"}
	}
	if _, ok := validBoroughs[strings.ToLower(borough)]; !ok {
		return &ValidationError{Field: "borough", Message: "must be a known borough"}
	}
	return nil
}

// NormalizeBorough lowercases a borough value for storage and filtering.
func NormalizeBorough(borough string) string {
	return strings.ToLower(strings.TrimSpace(borough))
}
