// Package store persists service-area computations in PostGIS.
//
// It expects two tables:
//
//	areas (
//	    id       TEXT PRIMARY KEY,
//	    boundary GEOMETRY(POLYGON, 4326) NOT NULL
//	)
//
//	wells (
//	    id           TEXT PRIMARY KEY,
//	    area_id      TEXT NOT NULL REFERENCES areas(id),
//	    status       TEXT NOT NULL,
//	    capacity     DOUBLE PRECISION NOT NULL,
//	    location     GEOMETRY(POINT, 4326) NOT NULL,
//	    service_area GEOMETRY(POLYGON, 4326)
//	)
//
// LoadComputation turns an area row and its wells into a computation
// request; SaveServiceAreas writes the computed polygons back to the
// wells, keeping only the largest ring per well. Geometry crosses the
// wire as WKT/EWKT text so no PostGIS binary driver is needed.
package store
