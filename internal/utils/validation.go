package utils

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"communityconnect.org/internal/geo"
)

// MaxRadiusKm bounds radius searches to the surrounding district.
const MaxRadiusKm = 500.0

var (
	// Detect potentially dangerous characters - focused on injection patterns
	dangerousPattern = regexp.MustCompile(`[<>]|--|\/\*|\*\/|;.*--`)

	// Detect HTML/script tags
	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
)

// ValidateID parses a business id. Ids are positive integers.
func ValidateID(id string) (int64, error) {
	if id == "" {
		return 0, errors.New("id cannot be empty")
	}

	if len(id) > 19 {
		return 0, errors.New("id too long (max 19 digits)")
	}

	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return 0, errors.New("id must be a positive integer")
	}

	return n, nil
}

// ValidateQuery validates search query strings
func ValidateQuery(query string) error {
	// Empty queries are allowed
	if query == "" {
		return nil
	}

	if len(query) > 200 {
		return errors.New("query too long (max 200 characters)")
	}

	if dangerousPattern.MatchString(query) {
		return errors.New("query contains invalid characters")
	}

	return nil
}

// ValidateRadius validates radius values for location searches, in kilometers
func ValidateRadius(radiusKm float64) error {
	if math.IsNaN(radiusKm) || math.IsInf(radiusKm, 0) {
		return errors.New("radius must be a finite number")
	}

	if radiusKm < 0 {
		return errors.New("radius must be non-negative")
	}

	if radiusKm > MaxRadiusKm {
		return fmt.Errorf("radius too large (max %g km)", MaxRadiusKm)
	}

	return nil
}

// ValidateLimit checks that a requested result count is within [1, max].
func ValidateLimit(limit, max int) error {
	if limit < 1 {
		return errors.New("limit must be at least 1")
	}
	if limit > max {
		return fmt.Errorf("limit too large (max %d)", max)
	}
	return nil
}

// SanitizeInput removes HTML tags and other potentially dangerous content
func SanitizeInput(input string) string {
	sanitized := htmlTagPattern.ReplaceAllString(input, "")
	return strings.TrimSpace(sanitized)
}

// ValidateLocationParams validates a complete set of location parameters.
// A zero radius means no radius was requested.
func ValidateLocationParams(lat, lon, radiusKm float64) map[string][]string {
	fieldErrors := make(map[string][]string)

	if err := geo.ValidateLatitude(lat); err != nil {
		fieldErrors["lat"] = append(fieldErrors["lat"], err.Error())
	}

	if err := geo.ValidateLongitude(lon); err != nil {
		fieldErrors["lon"] = append(fieldErrors["lon"], err.Error())
	}

	if radiusKm != 0 {
		if err := ValidateRadius(radiusKm); err != nil {
			fieldErrors["radius"] = append(fieldErrors["radius"], err.Error())
		}
	}

	return fieldErrors
}

// ValidateAndSanitizeQuery validates and sanitizes a search query
func ValidateAndSanitizeQuery(query string) (string, error) {
	if err := ValidateQuery(query); err != nil {
		return "", err
	}

	return SanitizeInput(query), nil
}
