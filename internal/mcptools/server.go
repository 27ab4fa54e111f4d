// Package mcptools exposes the exoplanet archive tools over the Model Context
// Protocol.
package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"
)

// version is set by the linker at build time.
var version = "dev"

// NewExoplanetMCPServer creates an MCP server with all 10 exoplanet tools
// registered.
func NewExoplanetMCPServer(svc *ExoplanetService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "exoquery",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_exoplanet",
		Description: "Get the full archive record for one exoplanet by exact name: mass, radius, orbit, equilibrium temperature, distance, and discovery provenance (method, year, facility, telescope, instrument, publication).",
	}, svc.GetExoplanet)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_most_massive",
		Description: "List the most massive known exoplanets, ordered by mass in Earth masses descending.",
	}, svc.ListMostMassive)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_habitable",
		Description: "Find potentially habitable exoplanets inside Goldilocks-zone bounds (mass, orbital period, equilibrium temperature), ordered by how close the mass is to Earth's. Attaches escape-velocity metrics where computable. A heuristic screen, not a scientific validation.",
	}, svc.FindHabitable)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_by_discovery_method",
		Description: "Search exoplanets discovered with a specific method (Transit, Radial Velocity, Imaging, Microlensing, and others), newest discoveries first.",
	}, svc.SearchByDiscoveryMethod)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "discovery_timeline",
		Description: "Discovery statistics per year: number of planets found, distinct methods used, and distinct facilities involved. Optionally bounded by a year range.",
	}, svc.DiscoveryTimeline)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "nearest_exoplanets",
		Description: "List the exoplanets closest to Earth, ordered by system distance in parsecs.",
	}, svc.NearestExoplanets)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "advanced_search",
		Description: "Search exoplanets with combined filters: mass range, orbital period range, maximum distance, earliest discovery year, discovery method, locale (Ground/Space), and a sortable result column.",
	}, svc.AdvancedSearch)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "discovery_method_stats",
		Description: "Aggregate statistics over all discovery methods: planet count per method and each method's percentage of the catalog.",
	}, svc.DiscoveryMethodStats)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "compare_with_earth",
		Description: "Compare one exoplanet with Earth: mass and radius in Earth units, orbital period in Earth years, and a mass-class interpretation (super-Earth, mini-Neptune, gas giant).",
	}, svc.CompareWithEarth)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "escape_velocity",
		Description: "Compute an exoplanet's escape velocity v = sqrt(2GM/R) in km/s, its ratio against Earth's 11.2 km/s, surface gravity vs Earth, a qualitative difficulty label, and reference velocities of familiar bodies.",
	}, svc.EscapeVelocity)

	return server
}

// RunStdio serves the MCP tools over stdio, blocking until stdin closes or
// the context is cancelled.
func RunStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves the MCP tools over the streamable HTTP transport on addr,
// shutting down gracefully when the context is cancelled.
func RunHTTP(ctx context.Context, server *mcp.Server, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-ctx.Done()
		return httpServer.Shutdown(context.Background())
	})
	g.Go(func() error {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	return g.Wait()
}
