package mcptools

import "github.com/astrotools/exoquery/internal/archive"

// --- MCP Tool Input Types ---
// These structs define the JSON schema for each MCP tool's input.
// The MCP Go SDK auto-generates JSON schemas from struct tags.

// GetExoplanetInput is the input for the get_exoplanet MCP tool.
type GetExoplanetInput struct {
	Name string `json:"name" jsonschema:"exact planet name as listed in the archive (e.g. Kepler-442 b, Proxima Cen b)"`
}

// MostMassiveInput is the input for the list_most_massive MCP tool.
type MostMassiveInput struct {
	Limit int `json:"limit" jsonschema:"number of planets to return (max: 500). Note: 1 Jupiter mass is about 318 Earth masses"`
}

// FindHabitableInput is the input for the find_habitable MCP tool.
type FindHabitableInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of candidates to return (default: 10, max: 100)"`
}

// ByDiscoveryMethodInput is the input for the search_by_discovery_method MCP tool.
type ByDiscoveryMethodInput struct {
	Method string `json:"method" jsonschema:"discovery method: Transit, Radial Velocity, Imaging, Microlensing, Astrometry, Eclipse Timing Variations, Transit Timing Variations, Pulsar Timing, Pulsation Timing Variations, Orbital Brightness Modulation, or Disk Kinematics"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of results (default: 20, max: 200)"`
}

// DiscoveryTimelineInput is the input for the discovery_timeline MCP tool.
type DiscoveryTimelineInput struct {
	StartYear int `json:"startYear,omitempty" jsonschema:"first year to include (default: first discovery)"`
	EndYear   int `json:"endYear,omitempty" jsonschema:"last year to include (default: most recent)"`
}

// NearestInput is the input for the nearest_exoplanets MCP tool.
type NearestInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"number of planets to return (default: 10, max: 100)"`
}

// AdvancedSearchInput is the input for the advanced_search MCP tool. All
// filters are optional and combine with AND.
type AdvancedSearchInput struct {
	MassMin     *float64 `json:"massMin,omitempty" jsonschema:"minimum mass in Earth masses"`
	MassMax     *float64 `json:"massMax,omitempty" jsonschema:"maximum mass in Earth masses"`
	PeriodMin   *float64 `json:"periodMin,omitempty" jsonschema:"minimum orbital period in days"`
	PeriodMax   *float64 `json:"periodMax,omitempty" jsonschema:"maximum orbital period in days"`
	MaxDistance *float64 `json:"maxDistance,omitempty" jsonschema:"maximum distance from Earth in parsecs"`
	MinYear     *int     `json:"minYear,omitempty" jsonschema:"earliest discovery year"`
	Method      string   `json:"method,omitempty" jsonschema:"discovery method (see search_by_discovery_method)"`
	Locale      string   `json:"locale,omitempty" jsonschema:"discovery locale: Ground, Space, or Multiple Locales"`
	SortBy      string   `json:"sortBy,omitempty" jsonschema:"sort column: pl_name, pl_masse, pl_rade, pl_orbper, pl_eqt, sy_dist, or disc_year (default: disc_year descending)"`
	Descending  bool     `json:"descending,omitempty" jsonschema:"sort in descending order"`
	Limit       int      `json:"limit,omitempty" jsonschema:"maximum number of results (default: 50, max: 200)"`
}

// MethodStatsInput is the input for the discovery_method_stats MCP tool.
type MethodStatsInput struct{}

// CompareWithEarthInput is the input for the compare_with_earth MCP tool.
type CompareWithEarthInput struct {
	Name string `json:"name" jsonschema:"exact planet name to compare against Earth"`
}

// EscapeVelocityInput is the input for the escape_velocity MCP tool.
type EscapeVelocityInput struct {
	Name string `json:"name" jsonschema:"exact planet name to compute escape velocity for"`
}

// --- MCP Tool Output Types ---
// Outputs share the {status, count, data, message} envelope; the tools below
// extend it where they carry derived data.

// HabitableCandidate is one find_habitable result: the archive row plus the
// habitability screen verdict and escape-velocity metrics when the row has
// the columns to compute them.
type HabitableCandidate struct {
	archive.PlanetRecord
	Habitability   *archive.HabitabilityAssessment `json:"habitability,omitempty"`
	EscapeVelocity *archive.EscapeVelocity         `json:"escape_velocity,omitempty"`
}

// FindHabitableOutput is the result of the find_habitable MCP tool. Skipped
// lists rows whose metrics could not be derived; the rows themselves are
// still in Data.
type FindHabitableOutput struct {
	archive.Envelope[HabitableCandidate]
	Skipped []archive.SkippedRecord `json:"skipped,omitempty"`
}

// EscapeVelocityOutput is the result of the escape_velocity MCP tool. Context
// carries reference escape velocities of familiar bodies in km/s.
type EscapeVelocityOutput struct {
	archive.Envelope[archive.EscapeVelocity]
	Context map[string]float64 `json:"context,omitempty"`
}
