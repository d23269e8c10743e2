package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/planar"

	"github.com/Egglessbonek/project-oasis/types"
)

// Well statuses that participate in a computation. Broken wells stay on
// the map with weight zero so neighboring areas absorb their demand;
// statuses outside this set (e.g. "planned") are excluded entirely.
const (
	StatusCompleted = "completed"
	StatusBuilding  = "building"
	StatusBroken    = "broken"
)

// Queries against the areas/wells schema described in the package doc.
const (
	loadBoundaryQuery = `SELECT ST_AsText(boundary) FROM areas WHERE id = $1`

	loadWellsQuery = `SELECT id, status, capacity, ST_AsText(location)
		 FROM wells
		 WHERE area_id = $1 AND status IN ($2, $3, $4)
		 ORDER BY id`

	saveAreaQuery  = `UPDATE wells SET service_area = ST_GeomFromEWKT($1) WHERE id = $2 AND area_id = $3`
	clearAreaQuery = `UPDATE wells SET service_area = NULL WHERE id = $1 AND area_id = $2`
)

// Postgres implements Store on top of a PostGIS database.
type Postgres struct {
	db     *sql.DB
	logger types.Logger
}

var _ Store = (*Postgres)(nil)

// NewPostgres creates a Store backed by the given database handle.
//
// The handle is borrowed, not owned; closing it remains the caller's
// responsibility.
//
// Parameters:
//   - db: Open database handle (lib/pq with PostGIS)
//   - logger: Receives per-operation debug logs
//
// Returns:
//   - *Postgres: Ready-to-use store
func NewPostgres(db *sql.DB, logger types.Logger) *Postgres {
	return &Postgres{db: db, logger: logger}
}

// LoadComputation implements Store.
func (p *Postgres) LoadComputation(ctx context.Context, areaID string) (*types.Request, error) {
	var boundaryWKT string
	err := p.db.QueryRowContext(ctx, loadBoundaryQuery, areaID).Scan(&boundaryWKT)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", types.ErrAreaNotFound, areaID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading area %s: %w", areaID, err)
	}

	boundary, err := parseBoundary(boundaryWKT)
	if err != nil {
		return nil, fmt.Errorf("area %s: %w", areaID, err)
	}

	rows, err := p.db.QueryContext(ctx, loadWellsQuery,
		areaID, StatusCompleted, StatusBuilding, StatusBroken,
	)
	if err != nil {
		return nil, fmt.Errorf("loading wells for area %s: %w", areaID, err)
	}
	defer rows.Close()

	req := &types.Request{Boundary: boundary}
	for rows.Next() {
		var (
			id, status, locationWKT string
			capacity                float64
		)
		if err := rows.Scan(&id, &status, &capacity, &locationWKT); err != nil {
			return nil, fmt.Errorf("scanning well for area %s: %w", areaID, err)
		}

		location, err := wkt.UnmarshalPoint(locationWKT)
		if err != nil {
			return nil, fmt.Errorf("well %s location: %w", id, err)
		}

		req.SiteIDs = append(req.SiteIDs, id)
		req.Locations = append(req.Locations, location)
		req.Weights = append(req.Weights, weightFor(status, capacity))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("loading wells for area %s: %w", areaID, err)
	}

	p.logger.Debug("computation loaded", "areaID", areaID, "wells", len(req.SiteIDs))

	return req, nil
}

// SaveServiceAreas implements Store.
func (p *Postgres) SaveServiceAreas(ctx context.Context, areaID string, result *types.Result) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("saving areas for %s: %w", areaID, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	for wellID, rings := range result.Regions {
		primary := PrimaryRing(rings)
		if primary == nil {
			_, err = tx.ExecContext(ctx, clearAreaQuery, wellID, areaID)
		} else {
			_, err = tx.ExecContext(ctx, saveAreaQuery, regionEWKT(primary), wellID, areaID)
		}
		if err != nil {
			return fmt.Errorf("saving well %s: %w", wellID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("saving areas for %s: %w", areaID, err)
	}

	p.logger.Debug("service areas saved", "areaID", areaID, "wells", len(result.Regions))

	return nil
}

// weightFor maps a well's status and capacity to its computation weight.
// A broken well keeps its position but no weight.
func weightFor(status string, capacity float64) float64 {
	if status == StatusBroken {
		return 0
	}

	return capacity
}

// PrimaryRing returns the largest ring by absolute planar area, or nil
// when the slice is empty. The largest ring is the region's main body;
// smaller satellite rings are artifacts of the raster resolution.
func PrimaryRing(rings []orb.Ring) orb.Ring {
	var best orb.Ring
	bestArea := 0.0
	for _, ring := range rings {
		area := math.Abs(planar.Area(ring))
		if best == nil || area > bestArea {
			best = ring
			bestArea = area
		}
	}

	return best
}

// regionEWKT renders a closed ring as an EWKT polygon in WGS84.
func regionEWKT(ring orb.Ring) string {
	closed := ring
	if len(closed) > 0 && closed[0] != closed[len(closed)-1] {
		closed = append(closed.Clone(), closed[0])
	}

	return "SRID=4326;" + wkt.MarshalString(orb.Polygon{closed})
}

// parseBoundary converts a polygon WKT string to its exterior ring.
func parseBoundary(s string) (orb.Ring, error) {
	polygon, err := wkt.UnmarshalPolygon(s)
	if err != nil {
		return nil, fmt.Errorf("parsing boundary: %w", err)
	}
	if len(polygon) == 0 {
		return nil, fmt.Errorf("parsing boundary: empty polygon")
	}

	return polygon[0], nil
}
