// Package archive models rows of the NASA Exoplanet Archive pscomppars table
// and the query construction, validation, and derived-metric logic over them.
package archive

// TableName is the Planetary Systems Composite Parameters table queried by
// every tool.
const TableName = "pscomppars"

// PlanetRecord is one row from pscomppars. Numeric columns are pointers
// because the archive reports many of them as null (pl_masse and pl_rade in
// particular); a nil field means the archive has no value for that planet.
// pl_masse is frequently a minimum mass (M*sin i) depending on the discovery
// method.
type PlanetRecord struct {
	Name            string   `json:"pl_name"`
	HostName        string   `json:"hostname,omitempty"`
	Mass            *float64 `json:"pl_masse"`             // Earth masses
	Radius          *float64 `json:"pl_rade"`              // Earth radii
	OrbitalPeriod   *float64 `json:"pl_orbper"`            // days
	SemiMajorAxis   *float64 `json:"pl_orbsmax,omitempty"` // AU
	EqTemperature   *float64 `json:"pl_eqt"`               // Kelvin
	Distance        *float64 `json:"sy_dist"`              // parsecs
	DiscoveryMethod string   `json:"discoverymethod,omitempty"`
	DiscoveryYear   *int     `json:"disc_year"`
	DiscoveryRef    string   `json:"disc_refname,omitempty"`
	PublicationDate string   `json:"disc_pubdate,omitempty"`
	Locale          string   `json:"disc_locale,omitempty"`
	Facility        string   `json:"disc_facility,omitempty"`
	Telescope       string   `json:"disc_telescope,omitempty"`
	Instrument      string   `json:"disc_instrument,omitempty"`
}

// YearStats is one row of the discovery timeline aggregate: how many planets
// were announced in a year and how varied the methods and facilities were.
type YearStats struct {
	Year        int `json:"disc_year"`
	Discoveries int `json:"num_discoveries"`
	Methods     int `json:"num_methods"`
	Facilities  int `json:"num_facilities"`
}

// MethodStats is one row of the per-discovery-method aggregate.
type MethodStats struct {
	Method      string  `json:"discoverymethod"`
	Discoveries int     `json:"num_discoveries"`
	Percentage  float64 `json:"pct_of_total"`
}
