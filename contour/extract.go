package contour

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"

	"github.com/Egglessbonek/project-oasis/raster"
	"github.com/Egglessbonek/project-oasis/solver"
)

// Extract vectorizes each site's assigned region.
//
// The tolerance is the Douglas-Peucker threshold in pixel (grid cell)
// units; zero disables simplification. Rings that simplification would
// collapse below four vertices keep their unsimplified shape.
//
// Parameters:
//   - a: Solver assignment over the grid's inside samples
//   - g: The sampling grid the assignment was computed on
//   - siteCount: Number of sites (length of the per-site result)
//   - tolerance: Simplification tolerance in pixel units
//
// Returns:
//   - [][]orb.Ring: Per site, zero or more closed planar rings
func Extract(a *solver.Assignment, g *raster.Grid, siteCount int, tolerance float64) [][]orb.Ring {
	out := make([][]orb.Ring, siteCount)
	mask := make([]bool, g.Resolution*g.Resolution)

	for site := 0; site < siteCount; site++ {
		for i := range mask {
			mask[i] = false
		}
		assigned := false
		for j, s := range a.Sites {
			if s == site {
				mask[g.InsideIndex[j]] = true
				assigned = true
			}
		}
		if !assigned {
			continue
		}

		for _, ring := range traceRings(mask, g.Resolution) {
			if tolerance > 0 {
				ring = simplifyRing(ring, tolerance)
			}
			out[site] = append(out[site], toPlanar(ring, g.X, g.Y))
		}
	}

	return out
}

// simplifyRing applies Douglas-Peucker to a closed pixel-space ring.
func simplifyRing(ring orb.Ring, tolerance float64) orb.Ring {
	simplified, ok := simplify.DouglasPeucker(tolerance).Simplify(ring.Clone()).(orb.Ring)
	if !ok || len(simplified) < 4 {
		return ring
	}

	return simplified
}

// toPlanar maps pixel coordinates (x=column, y=row) to planar coordinates
// by linear interpolation against the grid axis arrays.
func toPlanar(ring orb.Ring, xAxis, yAxis []float64) orb.Ring {
	out := make(orb.Ring, len(ring))
	for i, pt := range ring {
		out[i] = orb.Point{
			interpolate(xAxis, pt[0]),
			interpolate(yAxis, pt[1]),
		}
	}

	return out
}

// interpolate returns the axis coordinate at fractional index v, clamped
// to the axis range.
func interpolate(axis []float64, v float64) float64 {
	if v <= 0 {
		return axis[0]
	}
	last := len(axis) - 1
	if v >= float64(last) {
		return axis[last]
	}
	i := int(v)
	frac := v - float64(i)

	return axis[i] + frac*(axis[i+1]-axis[i])
}
