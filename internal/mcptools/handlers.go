package mcptools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/astrotools/exoquery/internal/archive"
)

// Default row limits applied when a tool is called without one.
const (
	defaultHabitableLimit = 10
	defaultByMethodLimit  = 20
	defaultNearestLimit   = 10
	defaultAdvancedLimit  = 50
)

// Querier executes an ADQL statement and decodes the JSON row array into
// result. *tap.Client satisfies it.
type Querier interface {
	Query(ctx context.Context, adql string, result any) error
}

// ExoplanetService holds the TAP client used by the MCP tool handlers. The
// service is stateless across calls: every tool invocation performs exactly
// one live query and nothing is cached between invocations.
type ExoplanetService struct {
	tap Querier
	log zerolog.Logger
}

// NewExoplanetService creates an ExoplanetService backed by the given TAP
// querier.
func NewExoplanetService(q Querier, logger zerolog.Logger) *ExoplanetService {
	return &ExoplanetService{tap: q, log: logger}
}

// fetch runs one query and logs the outcome. Errors are returned for the
// caller to wrap into an error envelope.
func (s *ExoplanetService) fetch(ctx context.Context, tool, adql string, result any) error {
	s.log.Debug().Str("tool", tool).Str("adql", adql).Msg("tap query")
	if err := s.tap.Query(ctx, adql, result); err != nil {
		s.log.Error().Err(err).Str("tool", tool).Msg("tap query failed")
		return err
	}
	return nil
}

// GetExoplanet returns the full archive row for one planet by exact name.
func (s *ExoplanetService) GetExoplanet(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetExoplanetInput,
) (*mcp.CallToolResult, archive.Envelope[archive.PlanetRecord], error) {
	name, err := archive.ValidatePlanetName("name", input.Name)
	if err != nil {
		return nil, archive.Failure[archive.PlanetRecord](err), nil
	}

	var rows []archive.PlanetRecord
	if err := s.fetch(ctx, "get_exoplanet", archive.PlanetByNameQuery(name).ADQL(), &rows); err != nil {
		return nil, archive.Failure[archive.PlanetRecord](err), nil
	}

	env := archive.Success(rows)
	if env.Count == 0 {
		env.Message = fmt.Sprintf("no planet named %q in the archive", name)
	}
	return nil, env, nil
}

// ListMostMassive returns the top planets by mass in Earth masses.
func (s *ExoplanetService) ListMostMassive(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MostMassiveInput,
) (*mcp.CallToolResult, archive.Envelope[archive.PlanetRecord], error) {
	if err := archive.ValidateLimit("limit", input.Limit, archive.MaxMostMassiveLimit); err != nil {
		return nil, archive.Failure[archive.PlanetRecord](err), nil
	}

	var rows []archive.PlanetRecord
	if err := s.fetch(ctx, "list_most_massive", archive.MostMassiveQuery(input.Limit).ADQL(), &rows); err != nil {
		return nil, archive.Failure[archive.PlanetRecord](err), nil
	}
	return nil, archive.Success(rows), nil
}

// FindHabitable returns Goldilocks-zone candidates with escape-velocity
// metrics attached where the archive has mass and radius. Rows missing either
// column are reported as skipped but remain in the result.
func (s *ExoplanetService) FindHabitable(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindHabitableInput,
) (*mcp.CallToolResult, FindHabitableOutput, error) {
	limit := input.Limit
	if limit == 0 {
		limit = defaultHabitableLimit
	}
	if err := archive.ValidateLimit("limit", limit, archive.MaxHabitableLimit); err != nil {
		return nil, FindHabitableOutput{Envelope: archive.Failure[HabitableCandidate](err)}, nil
	}

	var rows []archive.PlanetRecord
	if err := s.fetch(ctx, "find_habitable", archive.HabitableZoneQuery(limit).ADQL(), &rows); err != nil {
		return nil, FindHabitableOutput{Envelope: archive.Failure[HabitableCandidate](err)}, nil
	}

	candidates := make([]HabitableCandidate, 0, len(rows))
	var skipped []archive.SkippedRecord
	for _, rec := range rows {
		c := HabitableCandidate{PlanetRecord: rec}
		if hab, err := archive.AssessHabitability(rec); err != nil {
			skipped = append(skipped, archive.SkippedRecord{PlanetName: rec.Name, Reason: err.Error()})
		} else {
			c.Habitability = hab
		}
		if ev, err := archive.ComputeEscapeVelocity(rec); err != nil {
			skipped = append(skipped, archive.SkippedRecord{PlanetName: rec.Name, Reason: err.Error()})
		} else {
			c.EscapeVelocity = ev
		}
		candidates = append(candidates, c)
	}

	return nil, FindHabitableOutput{
		Envelope: archive.Success(candidates),
		Skipped:  skipped,
	}, nil
}

// SearchByDiscoveryMethod returns planets found by one discovery method,
// newest first.
func (s *ExoplanetService) SearchByDiscoveryMethod(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ByDiscoveryMethodInput,
) (*mcp.CallToolResult, archive.Envelope[archive.PlanetRecord], error) {
	method, err := archive.ValidateDiscoveryMethod(input.Method)
	if err != nil {
		return nil, archive.Failure[archive.PlanetRecord](err), nil
	}

	limit := input.Limit
	if limit == 0 {
		limit = defaultByMethodLimit
	}
	if err := archive.ValidateLimit("limit", limit, archive.MaxByMethodLimit); err != nil {
		return nil, archive.Failure[archive.PlanetRecord](err), nil
	}

	var rows []archive.PlanetRecord
	if err := s.fetch(ctx, "search_by_discovery_method", archive.ByDiscoveryMethodQuery(method, limit).ADQL(), &rows); err != nil {
		return nil, archive.Failure[archive.PlanetRecord](err), nil
	}
	return nil, archive.Success(rows), nil
}

// DiscoveryTimeline returns per-year discovery statistics for an optional
// year range.
func (s *ExoplanetService) DiscoveryTimeline(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DiscoveryTimelineInput,
) (*mcp.CallToolResult, archive.Envelope[archive.YearStats], error) {
	var start, end *int
	if input.StartYear != 0 {
		start = &input.StartYear
	}
	if input.EndYear != 0 {
		end = &input.EndYear
	}
	if err := archive.ValidateYearRange("startYear", "endYear", start, end); err != nil {
		return nil, archive.Failure[archive.YearStats](err), nil
	}

	var rows []archive.YearStats
	if err := s.fetch(ctx, "discovery_timeline", archive.DiscoveryTimelineQuery(start, end), &rows); err != nil {
		return nil, archive.Failure[archive.YearStats](err), nil
	}
	return nil, archive.Success(rows), nil
}

// NearestExoplanets returns the planets closest to Earth by system distance.
func (s *ExoplanetService) NearestExoplanets(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input NearestInput,
) (*mcp.CallToolResult, archive.Envelope[archive.PlanetRecord], error) {
	limit := input.Limit
	if limit == 0 {
		limit = defaultNearestLimit
	}
	if err := archive.ValidateLimit("limit", limit, archive.MaxNearestLimit); err != nil {
		return nil, archive.Failure[archive.PlanetRecord](err), nil
	}

	var rows []archive.PlanetRecord
	if err := s.fetch(ctx, "nearest_exoplanets", archive.NearestQuery(limit).ADQL(), &rows); err != nil {
		return nil, archive.Failure[archive.PlanetRecord](err), nil
	}
	return nil, archive.Success(rows), nil
}

// AdvancedSearch combines optional filters into a single query with an
// allowlisted sort column.
func (s *ExoplanetService) AdvancedSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AdvancedSearchInput,
) (*mcp.CallToolResult, archive.Envelope[archive.PlanetRecord], error) {
	fail := func(err error) (*mcp.CallToolResult, archive.Envelope[archive.PlanetRecord], error) {
		return nil, archive.Failure[archive.PlanetRecord](err), nil
	}

	limit := input.Limit
	if limit == 0 {
		limit = defaultAdvancedLimit
	}
	if err := archive.ValidateLimit("limit", limit, archive.MaxAdvancedLimit); err != nil {
		return fail(err)
	}
	if err := archive.ValidateRange("massMin", "massMax", input.MassMin, input.MassMax); err != nil {
		return fail(err)
	}
	if err := archive.ValidateRange("periodMin", "periodMax", input.PeriodMin, input.PeriodMax); err != nil {
		return fail(err)
	}
	if err := archive.ValidateRange("maxDistance", "maxDistance", nil, input.MaxDistance); err != nil {
		return fail(err)
	}
	if err := archive.ValidateYear("minYear", input.MinYear); err != nil {
		return fail(err)
	}

	filters := archive.AdvancedFilters{
		MassMin:     input.MassMin,
		MassMax:     input.MassMax,
		PeriodMin:   input.PeriodMin,
		PeriodMax:   input.PeriodMax,
		MaxDistance: input.MaxDistance,
		MinYear:     input.MinYear,
		Descending:  input.Descending,
	}
	if input.Method != "" {
		method, err := archive.ValidateDiscoveryMethod(input.Method)
		if err != nil {
			return fail(err)
		}
		filters.Method = method
	}
	if input.Locale != "" {
		locale, err := archive.ValidateLocale(input.Locale)
		if err != nil {
			return fail(err)
		}
		filters.Locale = locale
	}
	if input.SortBy != "" {
		col, err := archive.ValidateSortColumn(input.SortBy)
		if err != nil {
			return fail(err)
		}
		filters.SortBy = col
	}

	var rows []archive.PlanetRecord
	if err := s.fetch(ctx, "advanced_search", archive.AdvancedSearchQuery(filters, limit).ADQL(), &rows); err != nil {
		return fail(err)
	}
	return nil, archive.Success(rows), nil
}

// DiscoveryMethodStats returns per-method discovery counts with each method's
// share of the total.
func (s *ExoplanetService) DiscoveryMethodStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ MethodStatsInput,
) (*mcp.CallToolResult, archive.Envelope[archive.MethodStats], error) {
	var rows []archive.MethodStats
	if err := s.fetch(ctx, "discovery_method_stats", archive.DiscoveryMethodStatsQuery(), &rows); err != nil {
		return nil, archive.Failure[archive.MethodStats](err), nil
	}
	return nil, archive.Success(rows), nil
}

// CompareWithEarth returns one planet's row expressed against Earth: orbital
// period in Earth years and a mass-class interpretation. pl_masse and pl_rade
// are already in Earth units in pscomppars.
func (s *ExoplanetService) CompareWithEarth(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CompareWithEarthInput,
) (*mcp.CallToolResult, archive.Envelope[archive.EarthComparison], error) {
	name, err := archive.ValidatePlanetName("name", input.Name)
	if err != nil {
		return nil, archive.Failure[archive.EarthComparison](err), nil
	}

	var rows []archive.PlanetRecord
	if err := s.fetch(ctx, "compare_with_earth", archive.PlanetByNameQuery(name).ADQL(), &rows); err != nil {
		return nil, archive.Failure[archive.EarthComparison](err), nil
	}
	if len(rows) == 0 {
		env := archive.Success([]archive.EarthComparison{})
		env.Message = fmt.Sprintf("no planet named %q in the archive", name)
		return nil, env, nil
	}

	return nil, archive.Success([]archive.EarthComparison{archive.CompareWithEarth(rows[0])}), nil
}

// EscapeVelocity computes v = sqrt(2GM/R) for one planet and classifies the
// result against Earth's 11.2 km/s.
func (s *ExoplanetService) EscapeVelocity(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input EscapeVelocityInput,
) (*mcp.CallToolResult, EscapeVelocityOutput, error) {
	name, err := archive.ValidatePlanetName("name", input.Name)
	if err != nil {
		return nil, EscapeVelocityOutput{Envelope: archive.Failure[archive.EscapeVelocity](err)}, nil
	}

	var rows []archive.PlanetRecord
	if err := s.fetch(ctx, "escape_velocity", archive.PlanetByNameQuery(name).ADQL(), &rows); err != nil {
		return nil, EscapeVelocityOutput{Envelope: archive.Failure[archive.EscapeVelocity](err)}, nil
	}
	if len(rows) == 0 {
		env := archive.Success([]archive.EscapeVelocity{})
		env.Message = fmt.Sprintf("no planet named %q in the archive", name)
		return nil, EscapeVelocityOutput{Envelope: env}, nil
	}

	ev, err := archive.ComputeEscapeVelocity(rows[0])
	if err != nil {
		return nil, EscapeVelocityOutput{Envelope: archive.Failure[archive.EscapeVelocity](err)}, nil
	}

	return nil, EscapeVelocityOutput{
		Envelope: archive.Success([]archive.EscapeVelocity{*ev}),
		Context:  archive.EscapeVelocityContext,
	}, nil
}
