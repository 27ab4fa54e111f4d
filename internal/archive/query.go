package archive

import (
	"fmt"
	"strconv"
	"strings"
)

// Goldilocks bounds shared by the habitable-planets ADQL filter and the
// per-record habitability screen. These are empirically chosen heuristics for
// "could plausibly hold liquid water", not a scientific validation.
const (
	HabitableMassMin   = 0.5   // Earth masses; below this, likely too small to hold an atmosphere
	HabitableMassMax   = 10.0  // Earth masses; above this, likely a gas envelope
	HabitablePeriodMin = 50.0  // days
	HabitablePeriodMax = 500.0 // days
	HabitableTempMin   = 200.0 // Kelvin
	HabitableTempMax   = 320.0 // Kelvin
)

// SortDirection is the ORDER BY direction of a QuerySpec.
type SortDirection string

// Sort directions.
const (
	Ascending  SortDirection = "ASC"
	Descending SortDirection = "DESC"
)

// QuerySpec is a validated, ready-to-render ADQL query against pscomppars.
// It is built per tool invocation and discarded after the query runs.
//
// ADQL applies TOP before ORDER BY is evaluated against the full result set,
// so a flat "SELECT TOP n ... ORDER BY x" does not return the global top n.
// The builder renders the ordering in an inner subquery and applies the row
// limit in the outer query via the ROWNUM pseudo-column, which the archive's
// Oracle-backed TAP service evaluates after the inner ordering.
type QuerySpec struct {
	Columns    []string
	Filters    []string
	SortColumn string // column name or expression; empty means no ordering
	Direction  SortDirection
	Limit      int // 0 means no row limit
}

// ADQL renders the query as a single-line ADQL statement. Ordered queries get
// a deterministic tie-break on pl_name so identical queries return identical
// rows.
func (q *QuerySpec) ADQL() string {
	cols := strings.Join(q.Columns, ", ")

	var where string
	if len(q.Filters) > 0 {
		where = " WHERE " + strings.Join(q.Filters, " AND ")
	}

	inner := fmt.Sprintf("SELECT %s FROM %s%s", cols, TableName, where)
	if q.SortColumn != "" {
		inner += fmt.Sprintf(" ORDER BY %s %s", q.SortColumn, q.Direction)
		if q.SortColumn != "pl_name" {
			inner += ", pl_name ASC"
		}
	}

	if q.Limit <= 0 {
		return inner
	}
	return fmt.Sprintf("SELECT %s FROM ( %s ) WHERE ROWNUM <= %d", cols, inner, q.Limit)
}

// escapeLiteral doubles single quotes so user-supplied strings cannot break
// out of an ADQL string literal.
func escapeLiteral(v string) string {
	return strings.ReplaceAll(v, "'", "''")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Filter helpers. Each renders one WHERE predicate.

// EqualsString renders an exact string-match predicate with the literal
// escaped.
func EqualsString(col, val string) string {
	return fmt.Sprintf("%s = '%s'", col, escapeLiteral(val))
}

// NotNull renders an IS NOT NULL predicate.
func NotNull(col string) string {
	return col + " IS NOT NULL"
}

// GreaterEqual renders a numeric >= predicate.
func GreaterEqual(col string, v float64) string {
	return fmt.Sprintf("%s >= %s", col, formatFloat(v))
}

// LessEqual renders a numeric <= predicate.
func LessEqual(col string, v float64) string {
	return fmt.Sprintf("%s <= %s", col, formatFloat(v))
}

// Between renders an exclusive numeric range as two predicates.
func Between(col string, lo, hi float64) []string {
	return []string{
		fmt.Sprintf("%s > %s", col, formatFloat(lo)),
		fmt.Sprintf("%s < %s", col, formatFloat(hi)),
	}
}

// detailColumns is the full column set for name lookups; the derived-metric
// tools reuse it since it is a superset of what they need.
var detailColumns = []string{
	"pl_name", "hostname", "pl_masse", "pl_rade", "pl_orbper", "pl_orbsmax",
	"pl_eqt", "discoverymethod", "disc_year", "disc_refname", "disc_pubdate",
	"disc_locale", "disc_facility", "disc_telescope", "disc_instrument",
	"sy_dist",
}

// PlanetByNameQuery looks up a planet by exact name. No ordering or limit: the
// archive holds one composite row per planet.
func PlanetByNameQuery(name string) *QuerySpec {
	return &QuerySpec{
		Columns: detailColumns,
		Filters: []string{EqualsString("pl_name", name)},
	}
}

// MostMassiveQuery returns the top planets by mass.
func MostMassiveQuery(limit int) *QuerySpec {
	return &QuerySpec{
		Columns:    []string{"pl_name", "pl_masse", "pl_orbper", "disc_locale", "disc_year"},
		Filters:    []string{NotNull("pl_masse")},
		SortColumn: "pl_masse",
		Direction:  Descending,
		Limit:      limit,
	}
}

// HabitableZoneQuery returns planets inside the Goldilocks bounds, the ones
// closest in mass to Earth first.
func HabitableZoneQuery(limit int) *QuerySpec {
	filters := []string{
		NotNull("pl_masse"),
		NotNull("pl_orbper"),
		NotNull("pl_eqt"),
	}
	filters = append(filters, Between("pl_masse", HabitableMassMin, HabitableMassMax)...)
	filters = append(filters, Between("pl_orbper", HabitablePeriodMin, HabitablePeriodMax)...)
	filters = append(filters, Between("pl_eqt", HabitableTempMin, HabitableTempMax)...)

	return &QuerySpec{
		Columns:    []string{"pl_name", "pl_masse", "pl_rade", "pl_orbper", "pl_eqt", "sy_dist", "disc_year"},
		Filters:    filters,
		SortColumn: "ABS(pl_masse - 1.0)",
		Direction:  Ascending,
		Limit:      limit,
	}
}

// ByDiscoveryMethodQuery returns planets found by one method, newest first.
func ByDiscoveryMethodQuery(method string, limit int) *QuerySpec {
	return &QuerySpec{
		Columns: []string{
			"pl_name", "pl_masse", "pl_rade", "pl_orbper", "discoverymethod",
			"disc_year", "disc_facility", "disc_locale",
		},
		Filters:    []string{EqualsString("discoverymethod", method)},
		SortColumn: "disc_year",
		Direction:  Descending,
		Limit:      limit,
	}
}

// NearestQuery returns the planets closest to Earth by system distance.
func NearestQuery(limit int) *QuerySpec {
	return &QuerySpec{
		Columns: []string{
			"pl_name", "sy_dist", "pl_masse", "pl_rade", "pl_orbper", "pl_eqt",
			"disc_year", "disc_locale",
		},
		Filters:    []string{NotNull("sy_dist")},
		SortColumn: "sy_dist",
		Direction:  Ascending,
		Limit:      limit,
	}
}

// AdvancedFilters holds the optional predicates of the advanced_search tool.
// Nil pointers and empty strings mean "no constraint". Method, Locale and
// SortBy must already be validated against their enumerations.
type AdvancedFilters struct {
	MassMin     *float64
	MassMax     *float64
	PeriodMin   *float64
	PeriodMax   *float64
	MaxDistance *float64
	MinYear     *int
	Method      string
	Locale      string
	SortBy      string // default disc_year
	Descending  bool
}

// AdvancedSearchQuery combines the given filters into one limited query.
func AdvancedSearchQuery(f AdvancedFilters, limit int) *QuerySpec {
	var filters []string
	if f.MassMin != nil {
		filters = append(filters, GreaterEqual("pl_masse", *f.MassMin))
	}
	if f.MassMax != nil {
		filters = append(filters, LessEqual("pl_masse", *f.MassMax))
	}
	if f.PeriodMin != nil {
		filters = append(filters, GreaterEqual("pl_orbper", *f.PeriodMin))
	}
	if f.PeriodMax != nil {
		filters = append(filters, LessEqual("pl_orbper", *f.PeriodMax))
	}
	if f.MaxDistance != nil {
		filters = append(filters, LessEqual("sy_dist", *f.MaxDistance))
	}
	if f.MinYear != nil {
		filters = append(filters, fmt.Sprintf("disc_year >= %d", *f.MinYear))
	}
	if f.Method != "" {
		filters = append(filters, EqualsString("discoverymethod", f.Method))
	}
	if f.Locale != "" {
		filters = append(filters, EqualsString("disc_locale", f.Locale))
	}

	sortColumn := f.SortBy
	direction := Ascending
	if sortColumn == "" {
		sortColumn = "disc_year"
		direction = Descending
	} else if f.Descending {
		direction = Descending
	}

	return &QuerySpec{
		Columns: []string{
			"pl_name", "pl_masse", "pl_rade", "pl_orbper", "sy_dist", "pl_eqt",
			"discoverymethod", "disc_year", "disc_locale", "disc_facility",
		},
		Filters:    filters,
		SortColumn: sortColumn,
		Direction:  direction,
		Limit:      limit,
	}
}

// DiscoveryTimelineQuery renders the per-year discovery aggregate. Aggregates
// carry no row limit, so no ROWNUM wrapper is needed.
func DiscoveryTimelineQuery(startYear, endYear *int) string {
	var conds []string
	if startYear != nil {
		conds = append(conds, fmt.Sprintf("disc_year >= %d", *startYear))
	}
	if endYear != nil {
		conds = append(conds, fmt.Sprintf("disc_year <= %d", *endYear))
	}
	var where string
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}
	return fmt.Sprintf(
		"SELECT disc_year, COUNT(*) AS num_discoveries, "+
			"COUNT(DISTINCT discoverymethod) AS num_methods, "+
			"COUNT(DISTINCT disc_facility) AS num_facilities "+
			"FROM %s%s GROUP BY disc_year ORDER BY disc_year ASC",
		TableName, where)
}

// DiscoveryMethodStatsQuery renders the per-method aggregate with each
// method's share of the total.
func DiscoveryMethodStatsQuery() string {
	return fmt.Sprintf(
		"SELECT discoverymethod, COUNT(*) AS num_discoveries, "+
			"ROUND(COUNT(*) * 100.0 / SUM(COUNT(*)) OVER (), 2) AS pct_of_total "+
			"FROM %s WHERE discoverymethod IS NOT NULL "+
			"GROUP BY discoverymethod ORDER BY num_discoveries DESC",
		TableName)
}
