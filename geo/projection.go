// Package geo converts coordinates between the geographic WGS84 CRS and a
// planar equal-area CRS.
//
// The raster stage approximates area proportionality by counting grid
// samples, which is only valid when every sample represents the same
// real-world area. All planar work therefore happens in an equal-area
// projection, and only the inputs and outputs are geographic.
package geo

import (
	"fmt"
	"math"

	"github.com/ctessum/geom/proj"
	"github.com/paulmach/orb"
	"github.com/puzpuzpuz/xsync/v4"

	"github.com/Egglessbonek/project-oasis/types"
)

const (
	// GeographicCRS is WGS84 longitude/latitude (EPSG:4326).
	GeographicCRS = "+proj=longlat +datum=WGS84 +no_defs"

	// EqualAreaCRS is a world Albers equal-area projection in meters.
	// Any equal-area CRS satisfies the sample-count proportionality
	// requirement; Albers keeps distortion moderate across the latitudes
	// where boundaries realistically live.
	EqualAreaCRS = "+proj=aea +lat_1=-30 +lat_2=30 +lat_0=0 +lon_0=0 +x_0=0 +y_0=0 +datum=WGS84 +units=m +no_defs"
)

// srCache holds parsed spatial references keyed by their proj4 definition.
// Parsing is pure string work but not free, and projections are created on
// every engine construction.
var srCache = xsync.NewMap[string, *proj.SR]()

func parseSR(def string) (*proj.SR, error) {
	if sr, ok := srCache.Load(def); ok {
		return sr, nil
	}

	sr, err := proj.Parse(def)
	if err != nil {
		return nil, fmt.Errorf("parsing spatial reference %q: %w", def, err)
	}

	actual, _ := srCache.LoadOrStore(def, sr)

	return actual, nil
}

// Projection transforms point batches between WGS84 lon/lat and the
// planar equal-area CRS.
//
// A Projection is immutable after construction and safe for concurrent use.
type Projection struct {
	forward proj.Transformer
	inverse proj.Transformer
}

// NewProjection creates a Projection between GeographicCRS and EqualAreaCRS.
//
// Returns:
//   - *Projection: Ready-to-use projection pair
//   - error: Non-nil when either CRS definition cannot be parsed or the
//     transform cannot be constructed
func NewProjection() (*Projection, error) {
	geographic, err := parseSR(GeographicCRS)
	if err != nil {
		return nil, err
	}

	planar, err := parseSR(EqualAreaCRS)
	if err != nil {
		return nil, err
	}

	forward, err := geographic.NewTransform(planar)
	if err != nil {
		return nil, fmt.Errorf("creating forward transform: %w", err)
	}

	inverse, err := planar.NewTransform(geographic)
	if err != nil {
		return nil, fmt.Errorf("creating inverse transform: %w", err)
	}

	return &Projection{forward: forward, inverse: inverse}, nil
}

// ToPlanar projects geographic (lon, lat) points to planar (x, y) meters.
//
// Parameters:
//   - points: Geographic points in (lon, lat) order
//
// Returns:
//   - []orb.Point: Projected points, same length and order as the input
//   - error: Wraps types.ErrProjection when any point is outside the valid
//     domain of the CRS
func (p *Projection) ToPlanar(points []orb.Point) ([]orb.Point, error) {
	return transform(p.forward, points)
}

// ToGeographic projects planar (x, y) points back to geographic (lon, lat).
//
// Parameters:
//   - points: Planar points in meters
//
// Returns:
//   - []orb.Point: Geographic points, same length and order as the input
//   - error: Wraps types.ErrProjection on out-of-domain input
func (p *Projection) ToGeographic(points []orb.Point) ([]orb.Point, error) {
	return transform(p.inverse, points)
}

func transform(t proj.Transformer, points []orb.Point) ([]orb.Point, error) {
	out := make([]orb.Point, len(points))
	for i, pt := range points {
		x, y, err := t(pt[0], pt[1])
		if err != nil {
			return nil, fmt.Errorf("%w: point %d (%g, %g): %v", types.ErrProjection, i, pt[0], pt[1], err)
		}
		if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
			return nil, fmt.Errorf("%w: point %d (%g, %g) is outside the CRS domain", types.ErrProjection, i, pt[0], pt[1])
		}
		out[i] = orb.Point{x, y}
	}

	return out, nil
}
