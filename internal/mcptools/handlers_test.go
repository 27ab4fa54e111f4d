package mcptools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrotools/exoquery/internal/archive"
	"github.com/astrotools/exoquery/internal/tap"
)

// fakeQuerier records the ADQL it receives and answers with canned JSON rows
// or a canned error.
type fakeQuerier struct {
	adql string
	rows string
	err  error
}

func (f *fakeQuerier) Query(_ context.Context, adql string, result any) error {
	f.adql = adql
	if f.err != nil {
		return f.err
	}
	return json.Unmarshal([]byte(f.rows), result)
}

func newTestService(q *fakeQuerier) *ExoplanetService {
	return NewExoplanetService(q, zerolog.Nop())
}

func TestGetExoplanet_Success(t *testing.T) {
	q := &fakeQuerier{rows: `[{"pl_name":"Kepler-442 b","pl_masse":2.36,"pl_rade":1.34,"discoverymethod":"Transit","disc_year":2015}]`}
	svc := newTestService(q)

	_, env, err := svc.GetExoplanet(context.Background(), nil, GetExoplanetInput{Name: "Kepler-442 b"})
	require.NoError(t, err)

	assert.Equal(t, archive.StatusSuccess, env.Status)
	assert.Equal(t, 1, env.Count)
	require.Len(t, env.Data, 1)
	assert.Equal(t, "Kepler-442 b", env.Data[0].Name)
	assert.Contains(t, q.adql, "pl_name = 'Kepler-442 b'")
}

// TestGetExoplanet_ValidationFailure checks that a bad name never reaches the
// TAP client and surfaces inside the envelope, not as a handler error.
func TestGetExoplanet_ValidationFailure(t *testing.T) {
	q := &fakeQuerier{}
	svc := newTestService(q)

	_, env, err := svc.GetExoplanet(context.Background(), nil, GetExoplanetInput{Name: "   "})
	require.NoError(t, err, "validation failures stay inside the envelope")

	assert.Equal(t, archive.StatusError, env.Status)
	assert.Contains(t, env.Message, "name")
	assert.Empty(t, q.adql, "no query may be issued for invalid input")
}

func TestGetExoplanet_NotFound(t *testing.T) {
	q := &fakeQuerier{rows: `[]`}
	svc := newTestService(q)

	_, env, err := svc.GetExoplanet(context.Background(), nil, GetExoplanetInput{Name: "Tatooine"})
	require.NoError(t, err)

	assert.Equal(t, archive.StatusSuccess, env.Status, "an empty result is not an error")
	assert.Equal(t, 0, env.Count)
	assert.Contains(t, env.Message, "Tatooine")
}

// TestGetExoplanet_ServiceError checks that a TAP failure surfaces as an
// error envelope carrying the service error text.
func TestGetExoplanet_ServiceError(t *testing.T) {
	q := &fakeQuerier{err: &tap.ServiceError{Kind: tap.ErrUpstream, StatusCode: 503, Message: "service unavailable"}}
	svc := newTestService(q)

	_, env, err := svc.GetExoplanet(context.Background(), nil, GetExoplanetInput{Name: "Kepler-442 b"})
	require.NoError(t, err)

	assert.Equal(t, archive.StatusError, env.Status)
	assert.Contains(t, env.Message, "HTTP 503")
}

func TestListMostMassive_LimitValidation(t *testing.T) {
	q := &fakeQuerier{}
	svc := newTestService(q)

	for _, limit := range []int{0, -1, 501} {
		_, env, err := svc.ListMostMassive(context.Background(), nil, MostMassiveInput{Limit: limit})
		require.NoError(t, err)
		assert.Equal(t, archive.StatusError, env.Status, "limit %d", limit)
		assert.Contains(t, env.Message, "limit")
	}
	assert.Empty(t, q.adql)
}

func TestListMostMassive_Success(t *testing.T) {
	q := &fakeQuerier{rows: `[{"pl_name":"HD 100546 b","pl_masse":3178.0},{"pl_name":"Kepler-442 b","pl_masse":2.36}]`}
	svc := newTestService(q)

	_, env, err := svc.ListMostMassive(context.Background(), nil, MostMassiveInput{Limit: 2})
	require.NoError(t, err)

	assert.Equal(t, 2, env.Count)
	assert.Contains(t, q.adql, "ORDER BY pl_masse DESC")
	assert.Contains(t, q.adql, "ROWNUM <= 2")
}

// TestFindHabitable_PartialFailure checks record-level partial failure: a row
// without a radius stays in the results but is flagged as skipped, while its
// siblings carry escape-velocity metrics.
func TestFindHabitable_PartialFailure(t *testing.T) {
	q := &fakeQuerier{rows: `[
		{"pl_name":"Kepler-442 b","pl_masse":2.36,"pl_rade":1.34,"pl_orbper":112.3,"pl_eqt":233},
		{"pl_name":"Kepler-1652 b","pl_masse":1.3,"pl_rade":null,"pl_orbper":38.1,"pl_eqt":268}
	]`}
	svc := newTestService(q)

	_, out, err := svc.FindHabitable(context.Background(), nil, FindHabitableInput{Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, archive.StatusSuccess, out.Status)
	require.Equal(t, 2, out.Count, "rows missing metric inputs still count as results")

	require.NotNil(t, out.Data[0].EscapeVelocity)
	assert.InDelta(t, 14.84, out.Data[0].EscapeVelocity.VelocityKms, 0.01)
	require.NotNil(t, out.Data[0].Habitability)
	assert.True(t, out.Data[0].Habitability.Habitable)

	assert.Nil(t, out.Data[1].EscapeVelocity)
	require.NotNil(t, out.Data[1].Habitability, "the screen needs no radius")
	require.Len(t, out.Skipped, 1)
	assert.Equal(t, "Kepler-1652 b", out.Skipped[0].PlanetName)
	assert.Contains(t, out.Skipped[0].Reason, "pl_rade")
}

func TestFindHabitable_DefaultLimit(t *testing.T) {
	q := &fakeQuerier{rows: `[]`}
	svc := newTestService(q)

	_, _, err := svc.FindHabitable(context.Background(), nil, FindHabitableInput{})
	require.NoError(t, err)
	assert.Contains(t, q.adql, "ROWNUM <= 10")
}

func TestSearchByDiscoveryMethod(t *testing.T) {
	q := &fakeQuerier{rows: `[{"pl_name":"TOI-700 d","discoverymethod":"Transit","disc_year":2020}]`}
	svc := newTestService(q)

	_, env, err := svc.SearchByDiscoveryMethod(context.Background(), nil, ByDiscoveryMethodInput{Method: "transit"})
	require.NoError(t, err)

	assert.Equal(t, 1, env.Count)
	assert.Contains(t, q.adql, "discoverymethod = 'Transit'", "canonical spelling is queried")
	assert.Contains(t, q.adql, "ROWNUM <= 20", "default limit applies")

	_, env, err = svc.SearchByDiscoveryMethod(context.Background(), nil, ByDiscoveryMethodInput{Method: "Telepathy"})
	require.NoError(t, err)
	assert.Equal(t, archive.StatusError, env.Status)
	assert.Contains(t, env.Message, "method")
}

func TestDiscoveryTimeline(t *testing.T) {
	q := &fakeQuerier{rows: `[
		{"disc_year":2010,"num_discoveries":97,"num_methods":5,"num_facilities":22},
		{"disc_year":2011,"num_discoveries":135,"num_methods":6,"num_facilities":25}
	]`}
	svc := newTestService(q)

	_, env, err := svc.DiscoveryTimeline(context.Background(), nil, DiscoveryTimelineInput{StartYear: 2010, EndYear: 2011})
	require.NoError(t, err)

	assert.Equal(t, 2, env.Count)
	assert.Equal(t, 2010, env.Data[0].Year)
	assert.Equal(t, 97, env.Data[0].Discoveries)
	assert.Contains(t, q.adql, "disc_year >= 2010 AND disc_year <= 2011")

	_, env, err = svc.DiscoveryTimeline(context.Background(), nil, DiscoveryTimelineInput{StartYear: 2020, EndYear: 2010})
	require.NoError(t, err)
	assert.Equal(t, archive.StatusError, env.Status)
}

func TestAdvancedSearch(t *testing.T) {
	q := &fakeQuerier{rows: `[]`}
	svc := newTestService(q)

	massMin, massMax := 1.0, 10.0
	_, env, err := svc.AdvancedSearch(context.Background(), nil, AdvancedSearchInput{
		MassMin: &massMin,
		MassMax: &massMax,
		Locale:  "space",
		SortBy:  "pl_masse",
	})
	require.NoError(t, err)

	assert.Equal(t, archive.StatusSuccess, env.Status)
	assert.Contains(t, q.adql, "pl_masse >= 1")
	assert.Contains(t, q.adql, "disc_locale = 'Space'")
	assert.Contains(t, q.adql, "ORDER BY pl_masse ASC")
	assert.Contains(t, q.adql, "ROWNUM <= 50", "default limit applies")
}

func TestAdvancedSearch_Validation(t *testing.T) {
	q := &fakeQuerier{}
	svc := newTestService(q)

	_, env, err := svc.AdvancedSearch(context.Background(), nil, AdvancedSearchInput{SortBy: "pl_name; DROP TABLE pscomppars"})
	require.NoError(t, err)
	assert.Equal(t, archive.StatusError, env.Status)
	assert.Contains(t, env.Message, "sortBy")

	// Inverted range: min above max.
	massMin, massMax := 10.0, 1.0
	_, env, err = svc.AdvancedSearch(context.Background(), nil, AdvancedSearchInput{MassMin: &massMin, MassMax: &massMax})
	require.NoError(t, err)
	assert.Equal(t, archive.StatusError, env.Status)
	assert.Contains(t, env.Message, "massMin")

	assert.Empty(t, q.adql)
}

func TestDiscoveryMethodStats(t *testing.T) {
	q := &fakeQuerier{rows: `[
		{"discoverymethod":"Transit","num_discoveries":4300,"pct_of_total":74.12},
		{"discoverymethod":"Radial Velocity","num_discoveries":1100,"pct_of_total":18.96}
	]`}
	svc := newTestService(q)

	_, env, err := svc.DiscoveryMethodStats(context.Background(), nil, MethodStatsInput{})
	require.NoError(t, err)

	assert.Equal(t, 2, env.Count)
	assert.Equal(t, "Transit", env.Data[0].Method)
	assert.InDelta(t, 74.12, env.Data[0].Percentage, 0.001)
}

func TestCompareWithEarth(t *testing.T) {
	q := &fakeQuerier{rows: `[{"pl_name":"Kepler-442 b","pl_masse":2.36,"pl_rade":1.34,"pl_orbper":112.3}]`}
	svc := newTestService(q)

	_, env, err := svc.CompareWithEarth(context.Background(), nil, CompareWithEarthInput{Name: "Kepler-442 b"})
	require.NoError(t, err)

	require.Equal(t, 1, env.Count)
	cmp := env.Data[0]
	require.NotNil(t, cmp.EarthYears)
	assert.InDelta(t, 0.31, *cmp.EarthYears, 0.001)
	assert.Equal(t, "Mini-Neptuno", cmp.Interpretation)
}

func TestEscapeVelocity_Success(t *testing.T) {
	q := &fakeQuerier{rows: `[{"pl_name":"Kepler-442 b","pl_masse":2.36,"pl_rade":1.34}]`}
	svc := newTestService(q)

	_, out, err := svc.EscapeVelocity(context.Background(), nil, EscapeVelocityInput{Name: "Kepler-442 b"})
	require.NoError(t, err)

	assert.Equal(t, archive.StatusSuccess, out.Status)
	require.Equal(t, 1, out.Count)
	assert.InDelta(t, 14.84, out.Data[0].VelocityKms, 0.01)
	assert.Equal(t, "Difícil de escapar", out.Data[0].Difficulty)
	assert.Equal(t, 11.2, out.Context["earth"], "reference velocities ride along")
}

// TestEscapeVelocity_MissingData checks that a planet without mass or radius
// yields an error envelope naming the absent columns.
func TestEscapeVelocity_MissingData(t *testing.T) {
	q := &fakeQuerier{rows: `[{"pl_name":"HD 100546 b","pl_masse":null,"pl_rade":7.9}]`}
	svc := newTestService(q)

	_, out, err := svc.EscapeVelocity(context.Background(), nil, EscapeVelocityInput{Name: "HD 100546 b"})
	require.NoError(t, err)

	assert.Equal(t, archive.StatusError, out.Status)
	assert.Contains(t, out.Message, "pl_masse")
}

func TestEscapeVelocity_NotFound(t *testing.T) {
	q := &fakeQuerier{rows: `[]`}
	svc := newTestService(q)

	_, out, err := svc.EscapeVelocity(context.Background(), nil, EscapeVelocityInput{Name: "Arrakis"})
	require.NoError(t, err)

	assert.Equal(t, archive.StatusSuccess, out.Status)
	assert.Equal(t, 0, out.Count)
	assert.Contains(t, out.Message, "Arrakis")
}
