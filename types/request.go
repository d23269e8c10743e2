package types

import "github.com/paulmach/orb"

// Request holds the inputs for one service-area computation.
//
// SiteIDs, Locations, and Weights are parallel slices; element i of each
// describes the same site. Locations and the Boundary ring are geographic
// WGS84 coordinates in (lon, lat) order. The boundary is a single ring;
// it may be supplied open (first != last) and is closed internally.
//
// A Request is consumed by one computation call and never retained, so
// callers may reuse or mutate it after the call returns.
type Request struct {
	// SiteIDs are opaque, caller-assigned site identifiers.
	SiteIDs []string

	// Locations are the geographic positions of the sites, in (lon, lat) order.
	Locations []orb.Point

	// Weights are the nonnegative capacity proxies of the sites. A site with
	// weight zero participates but is assigned (almost) no area.
	Weights []float64

	// Boundary is the enclosing polygon ring in (lon, lat) order.
	Boundary orb.Ring
}

// Result holds the output of one service-area computation.
type Result struct {
	// Regions maps each site ID to zero or more closed geographic rings
	// (first point repeated as last). A site that was assigned no area maps
	// to an empty slice. Regions with disjoint parts yield multiple rings;
	// callers decide whether to keep all of them or only the largest.
	Regions map[string][]orb.Ring

	// Converged reports whether the solver reached the configured tolerance.
	// When false the regions are the best-effort state after the iteration
	// budget was exhausted.
	Converged bool

	// Iterations is the number of solver iterations performed.
	Iterations int

	// MaxError is the largest per-site proportional error after the final
	// iteration.
	MaxError float64

	// InsideSamples is the number of grid samples that fell inside the
	// boundary, the denominator of all proportional errors.
	InsideSamples int
}
