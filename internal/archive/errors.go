package archive

import (
	"fmt"
	"strings"
)

// ValidationError reports a rejected tool parameter. Field names the offending
// parameter so the caller can correct it and retry.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// MissingDataError reports a planet record that lacks the columns a derived
// metric needs. It fails only the record it names; siblings in the same batch
// are unaffected.
type MissingDataError struct {
	Planet  string
	Columns []string
}

// Error implements the error interface.
func (e *MissingDataError) Error() string {
	return fmt.Sprintf("planet %q has no value for %s", e.Planet, strings.Join(e.Columns, ", "))
}
