package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	slugInvalid  = regexp.MustCompile("[^a-z0-9 -]+")
	slugCollapse = regexp.MustCompile("-+")
)

// GenerateSlug converts a string into a URL-friendly slug.
// e.g. "Samsung WindFree 18000 BTU!" -> "samsung-windfree-18000-btu"
func GenerateSlug(input string) string {
	s := strings.ToLower(input)

	// Keep a-z, 0-9, space, hyphen
	s = slugInvalid.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, " ", "-")
	s = slugCollapse.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	return s
}

// ParseInt parses a string to int with a fallback default value
func ParseInt(s string, defaultVal int) int {
	if s == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return val
}

// ParseFloat parses a string to float64 with a fallback default value
func ParseFloat(s string, defaultVal float64) float64 {
	if s == "" {
		return defaultVal
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return defaultVal
	}
	return val
}
