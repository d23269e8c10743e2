// Package oasis divides a geographic boundary among weighted sites into
// contiguous service areas whose areas are proportional to the weights.
//
// The engine projects the boundary and sites to an equal-area planar CRS,
// rasterizes the boundary interior into a uniform sample grid, balances
// the samples among the sites with a damped multiplicatively-weighted
// Voronoi iteration, vectorizes each site's cells with marching squares,
// and projects the resulting rings back to geographic coordinates.
//
// Basic usage:
//
//	cfg := oasis.DefaultConfig()
//	engine, err := oasis.NewEngine(&cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := engine.ComputeServiceAreas(ctx, &oasis.Request{
//	    SiteIDs:   []string{"w1", "w2"},
//	    Locations: []orb.Point{{121.52, 25.03}, {121.56, 25.05}},
//	    Weights:   []float64{150, 300},
//	    Boundary:  boundary,
//	})
//
// Each entry in result.Regions holds the geographic rings of one site's
// service area, keyed by site ID. Subpackages geo, raster, solver, and
// contour expose the pipeline stages individually; store and worker add
// PostGIS persistence and NATS-driven recalculation on top of the engine.
package oasis
