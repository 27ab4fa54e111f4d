package archive

import (
	"fmt"
	"strings"
)

// Per-tool row-limit caps, matching the archive-friendly bounds the tools
// advertise in their schemas.
const (
	MaxMostMassiveLimit = 500
	MaxHabitableLimit   = 100
	MaxByMethodLimit    = 200
	MaxNearestLimit     = 100
	MaxAdvancedLimit    = 200

	maxNameLength = 100

	// The first confirmed exoplanet detections were published in 1989.
	minDiscoveryYear = 1989
	maxDiscoveryYear = 2100
)

// DiscoveryMethods enumerates the discoverymethod values the archive uses.
var DiscoveryMethods = []string{
	"Transit",
	"Radial Velocity",
	"Imaging",
	"Microlensing",
	"Astrometry",
	"Eclipse Timing Variations",
	"Transit Timing Variations",
	"Pulsar Timing",
	"Pulsation Timing Variations",
	"Orbital Brightness Modulation",
	"Disk Kinematics",
}

// Locales enumerates the disc_locale values the archive uses.
var Locales = []string{"Ground", "Space", "Multiple Locales"}

// SortColumns enumerates the columns advanced_search may order by.
var SortColumns = []string{
	"pl_name",
	"pl_masse",
	"pl_rade",
	"pl_orbper",
	"pl_eqt",
	"sy_dist",
	"disc_year",
}

// ValidateLimit checks that a row limit is positive and within the tool's cap.
func ValidateLimit(field string, n, max int) error {
	if n <= 0 {
		return &ValidationError{Field: field, Message: fmt.Sprintf("must be greater than 0, got %d", n)}
	}
	if n > max {
		return &ValidationError{Field: field, Message: fmt.Sprintf("must not exceed %d, got %d", max, n)}
	}
	return nil
}

// ValidatePlanetName trims and checks a planet name, returning the normalized
// form.
func ValidatePlanetName(field, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &ValidationError{Field: field, Message: "must not be empty"}
	}
	if len(name) > maxNameLength {
		return "", &ValidationError{Field: field, Message: fmt.Sprintf("must not exceed %d characters", maxNameLength)}
	}
	return name, nil
}

// ValidateDiscoveryMethod checks a method against the archive's enumeration,
// returning the canonical spelling.
func ValidateDiscoveryMethod(method string) (string, error) {
	method = strings.TrimSpace(method)
	for _, m := range DiscoveryMethods {
		if strings.EqualFold(m, method) {
			return m, nil
		}
	}
	return "", &ValidationError{
		Field:   "method",
		Message: fmt.Sprintf("unknown discovery method %q, expected one of: %s", method, strings.Join(DiscoveryMethods, ", ")),
	}
}

// ValidateLocale checks a discovery locale, returning the canonical spelling.
func ValidateLocale(locale string) (string, error) {
	locale = strings.TrimSpace(locale)
	for _, l := range Locales {
		if strings.EqualFold(l, locale) {
			return l, nil
		}
	}
	return "", &ValidationError{
		Field:   "locale",
		Message: fmt.Sprintf("unknown locale %q, expected one of: %s", locale, strings.Join(Locales, ", ")),
	}
}

// ValidateSortColumn checks a sort column against the allowlist, returning the
// canonical spelling.
func ValidateSortColumn(col string) (string, error) {
	col = strings.TrimSpace(col)
	for _, c := range SortColumns {
		if strings.EqualFold(c, col) {
			return c, nil
		}
	}
	return "", &ValidationError{
		Field:   "sortBy",
		Message: fmt.Sprintf("unknown sort column %q, expected one of: %s", col, strings.Join(SortColumns, ", ")),
	}
}

// ValidateRange checks an optional numeric range: both bounds non-negative and
// min not above max. loField/hiField name the parameters in errors.
func ValidateRange(loField, hiField string, lo, hi *float64) error {
	if lo != nil && *lo < 0 {
		return &ValidationError{Field: loField, Message: fmt.Sprintf("must not be negative, got %v", *lo)}
	}
	if hi != nil && *hi < 0 {
		return &ValidationError{Field: hiField, Message: fmt.Sprintf("must not be negative, got %v", *hi)}
	}
	if lo != nil && hi != nil && *lo > *hi {
		return &ValidationError{Field: loField, Message: fmt.Sprintf("must not exceed %s (%v > %v)", hiField, *lo, *hi)}
	}
	return nil
}

// ValidateYear checks an optional discovery year for plausibility.
func ValidateYear(field string, year *int) error {
	if year == nil {
		return nil
	}
	if *year < minDiscoveryYear || *year > maxDiscoveryYear {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be between %d and %d, got %d", minDiscoveryYear, maxDiscoveryYear, *year),
		}
	}
	return nil
}

// ValidateYearRange checks an optional start/end discovery-year pair.
func ValidateYearRange(startField, endField string, start, end *int) error {
	if err := ValidateYear(startField, start); err != nil {
		return err
	}
	if err := ValidateYear(endField, end); err != nil {
		return err
	}
	if start != nil && end != nil && *start > *end {
		return &ValidationError{Field: startField, Message: fmt.Sprintf("must not exceed %s (%d > %d)", endField, *start, *end)}
	}
	return nil
}
