package oasis

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/paulmach/orb"

	"github.com/Egglessbonek/project-oasis/contour"
	"github.com/Egglessbonek/project-oasis/geo"
	"github.com/Egglessbonek/project-oasis/internal/logging"
	"github.com/Egglessbonek/project-oasis/internal/metrics"
	"github.com/Egglessbonek/project-oasis/raster"
	"github.com/Egglessbonek/project-oasis/solver"
	"github.com/Egglessbonek/project-oasis/types"
)

// Engine computes weight-proportional service areas inside a boundary.
//
// An Engine is immutable after construction and safe for concurrent use;
// each ComputeServiceAreas call works on its own state.
type Engine struct {
	cfg        Config
	projection *geo.Projection
	logger     types.Logger
	metrics    types.MetricsCollector
}

// NewEngine creates an Engine from the given configuration.
//
// Missing configuration values are filled with production defaults before
// validation, so a zero Config is usable. The passed Config is not
// retained; the engine keeps its own copy.
//
// Parameters:
//   - cfg: Engine configuration (defaults applied in place)
//   - opts: Optional logger and metrics collector
//
// Returns:
//   - *Engine: Ready-to-use engine
//   - error: Wraps ErrInvalidConfig on bad settings, or the projection
//     construction error
//
// Example:
//
//	cfg := oasis.DefaultConfig()
//	engine, err := oasis.NewEngine(&cfg, oasis.WithLogger(logger))
func NewEngine(cfg *Config, opts ...Option) (*Engine, error) {
	SetDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := &engineOptions{
		logger:  logging.NewNop(),
		metrics: metrics.NewNop(),
	}
	for _, opt := range opts {
		opt(options)
	}

	projection, err := geo.NewProjection()
	if err != nil {
		return nil, err
	}

	return &Engine{
		cfg:        *cfg,
		projection: projection,
		logger:     options.logger,
		metrics:    options.metrics,
	}, nil
}

// ComputeServiceAreas divides the request's boundary among its sites.
//
// The pipeline projects boundary and sites to the planar equal-area CRS,
// rasterizes the boundary interior, balances the samples among the sites
// in proportion to their weights, vectorizes each site's region, and
// projects the rings back to geographic coordinates.
//
// A non-converged solve is not an error: the result carries the
// best-effort regions with Converged set to false. When every weight is
// zero the result maps each site ID to an empty region slice.
//
// Parameters:
//   - ctx: Context checked between solver iterations
//   - req: Sites, weights, and the boundary ring
//
// Returns:
//   - *Result: Per-site geographic rings plus solver diagnostics
//   - error: Validation errors (ErrMismatchedInputs, ErrInvalidBoundary,
//     ErrInvalidCoordinate, ErrInvalidWeight), ErrProjection,
//     ErrEmptyRegion, or the context's error
func (e *Engine) ComputeServiceAreas(ctx context.Context, req *types.Request) (*types.Result, error) {
	started := time.Now()

	boundary, err := validateRequest(req)
	if err != nil {
		return nil, err
	}

	result, err := e.compute(ctx, req, boundary)
	if err != nil {
		e.metrics.RecordSolveOutcome("error")
		return nil, err
	}

	e.metrics.RecordSolveDuration(time.Since(started).Seconds())
	e.metrics.RecordSolveIterations(result.Iterations)
	e.metrics.RecordInsideSamples(result.InsideSamples)

	return result, nil
}

func (e *Engine) compute(ctx context.Context, req *types.Request, boundary orb.Ring) (*types.Result, error) {
	planarBoundary, err := e.projection.ToPlanar([]orb.Point(boundary))
	if err != nil {
		return nil, err
	}

	planarSites, err := e.projection.ToPlanar(req.Locations)
	if err != nil {
		return nil, err
	}

	grid, err := raster.Build(orb.Ring(planarBoundary), e.cfg.Resolution)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("boundary rasterized",
		"resolution", e.cfg.Resolution,
		"insideSamples", len(grid.Inside),
		"sites", len(req.SiteIDs),
	)

	assignment, err := solver.Balance(ctx, planarSites, req.Weights, grid.Inside, solver.Params{
		MaxIterations: e.cfg.MaxIterations,
		Tolerance:     e.cfg.Tolerance,
		DampingFactor: e.cfg.DampingFactor,
	}, e.logger)
	if err != nil {
		return nil, err
	}

	result := &types.Result{
		Regions:       make(map[string][]orb.Ring, len(req.SiteIDs)),
		Converged:     assignment.Converged,
		Iterations:    assignment.Iterations,
		MaxError:      assignment.MaxError,
		InsideSamples: len(grid.Inside),
	}

	if assignment.Iterations == 0 {
		// All weights were zero; nothing was assigned.
		for _, id := range req.SiteIDs {
			result.Regions[id] = nil
		}
		e.metrics.RecordSolveOutcome("degenerate")

		return result, nil
	}

	regions := contour.Extract(assignment, grid, len(req.SiteIDs), e.cfg.SimplificationTolerance)
	for i, id := range req.SiteIDs {
		rings := make([]orb.Ring, 0, len(regions[i]))
		for _, ring := range regions[i] {
			geographic, err := e.projection.ToGeographic([]orb.Point(ring))
			if err != nil {
				return nil, err
			}
			rings = append(rings, orb.Ring(geographic))
		}
		result.Regions[id] = rings
	}

	if assignment.Converged {
		e.metrics.RecordSolveOutcome("converged")
	} else {
		e.metrics.RecordSolveOutcome("exhausted")
	}

	e.logger.Info("service areas computed",
		"sites", len(req.SiteIDs),
		"iterations", result.Iterations,
		"converged", result.Converged,
		"maxError", result.MaxError,
	)

	return result, nil
}

// validateRequest checks the request and returns the closed boundary ring.
func validateRequest(req *types.Request) (orb.Ring, error) {
	n := len(req.SiteIDs)
	if len(req.Locations) != n || len(req.Weights) != n {
		return nil, fmt.Errorf("%w: %d ids, %d locations, %d weights",
			types.ErrMismatchedInputs, n, len(req.Locations), len(req.Weights))
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: at least one site is required", types.ErrMismatchedInputs)
	}

	for i, pt := range req.Locations {
		if !finitePoint(pt) {
			return nil, fmt.Errorf("%w: site %q location (%g, %g)",
				types.ErrInvalidCoordinate, req.SiteIDs[i], pt[0], pt[1])
		}
	}
	for i, w := range req.Weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return nil, fmt.Errorf("%w: site %q weight %g",
				types.ErrInvalidWeight, req.SiteIDs[i], w)
		}
	}

	return closeBoundary(req.Boundary)
}

// closeBoundary validates the boundary ring and ensures the first vertex
// is repeated as the last.
func closeBoundary(boundary orb.Ring) (orb.Ring, error) {
	for _, pt := range boundary {
		if !finitePoint(pt) {
			return nil, fmt.Errorf("%w: boundary vertex (%g, %g)",
				types.ErrInvalidCoordinate, pt[0], pt[1])
		}
	}

	ring := boundary
	if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
		ring = make(orb.Ring, len(boundary)+1)
		copy(ring, boundary)
		ring[len(ring)-1] = ring[0]
	}

	distinct := make(map[orb.Point]struct{}, len(ring))
	for _, pt := range ring {
		distinct[pt] = struct{}{}
	}
	if len(distinct) < 3 {
		return nil, fmt.Errorf("%w: got %d distinct vertices", types.ErrInvalidBoundary, len(distinct))
	}

	return ring, nil
}

func finitePoint(pt orb.Point) bool {
	return !math.IsNaN(pt[0]) && !math.IsNaN(pt[1]) && !math.IsInf(pt[0], 0) && !math.IsInf(pt[1], 0)
}
