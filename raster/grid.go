// Package raster builds the sampling grid that the solver assigns.
//
// The grid covers the boundary's padded bounding box with an evenly spaced
// lattice and masks out every sample that falls outside the boundary ring.
package raster

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/Egglessbonek/project-oasis/types"
)

// padFraction is the bounding-box padding applied on each axis, as a
// fraction of the axis extent. It keeps sites and region contours away
// from the exact lattice edge.
const padFraction = 0.05

// Grid is the sampling lattice over a boundary's padded bounding box.
//
// The lattice is Resolution x Resolution points; X and Y hold the axis
// coordinates, and Mask marks the lattice points inside the boundary in
// row-major order (index = row*Resolution + col, row follows Y).
type Grid struct {
	// X and Y are the evenly spaced axis coordinates, each of length
	// Resolution.
	X []float64
	Y []float64

	// Mask marks inside-boundary lattice points, row-major.
	Mask []bool

	// Inside lists the planar coordinates of the masked points, in
	// row-major lattice order.
	Inside []orb.Point

	// InsideIndex holds the row-major lattice index of each Inside point.
	InsideIndex []int

	// Resolution is the number of samples per axis.
	Resolution int
}

// Build rasterizes a planar boundary ring.
//
// The bounding box is padded by 5% of its extent on each axis, sampled with
// resolution points per axis, and each lattice point is tested against the
// boundary with an even-odd point-in-polygon test.
//
// Parameters:
//   - boundary: Closed planar boundary ring
//   - resolution: Samples per axis (must be >= 2)
//
// Returns:
//   - *Grid: The sampling grid with a non-empty inside mask
//   - error: Wraps types.ErrInvalidConfig for a bad resolution, or
//     types.ErrEmptyRegion when no lattice point falls inside the boundary
func Build(boundary orb.Ring, resolution int) (*Grid, error) {
	if resolution < 2 {
		return nil, fmt.Errorf("%w: resolution must be >= 2, got %d", types.ErrInvalidConfig, resolution)
	}

	if math.Abs(planar.Area(boundary)) == 0 {
		return nil, fmt.Errorf("%w: boundary has zero area", types.ErrEmptyRegion)
	}

	bound := boundary.Bound()
	padX := (bound.Max[0] - bound.Min[0]) * padFraction
	padY := (bound.Max[1] - bound.Min[1]) * padFraction

	g := &Grid{
		X:          linspace(bound.Min[0]-padX, bound.Max[0]+padX, resolution),
		Y:          linspace(bound.Min[1]-padY, bound.Max[1]+padY, resolution),
		Mask:       make([]bool, resolution*resolution),
		Resolution: resolution,
	}

	for row := 0; row < resolution; row++ {
		y := g.Y[row]
		for col := 0; col < resolution; col++ {
			pt := orb.Point{g.X[col], y}
			if !planar.RingContains(boundary, pt) {
				continue
			}
			idx := row*resolution + col
			g.Mask[idx] = true
			g.Inside = append(g.Inside, pt)
			g.InsideIndex = append(g.InsideIndex, idx)
		}
	}

	if len(g.Inside) == 0 {
		return nil, fmt.Errorf("%w: degenerate boundary or resolution %d too coarse", types.ErrEmptyRegion, resolution)
	}

	return g, nil
}

// linspace returns n evenly spaced values from lo to hi inclusive.
func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi

	return out
}
