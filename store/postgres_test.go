package store

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"
)

func TestQueries_TargetSchemaTables(t *testing.T) {
	// The boundary lives in the areas table; service_area is a column of
	// wells, not a table of its own.
	require.Contains(t, loadBoundaryQuery, "FROM areas")
	require.NotContains(t, loadBoundaryQuery, "service_area")
	require.Contains(t, loadWellsQuery, "FROM wells")
	require.Contains(t, saveAreaQuery, "UPDATE wells SET service_area")
	require.Contains(t, clearAreaQuery, "UPDATE wells SET service_area = NULL")
}

func TestWeightFor(t *testing.T) {
	require.Equal(t, 150.0, weightFor(StatusCompleted, 150))
	require.Equal(t, 80.0, weightFor(StatusBuilding, 80))
	require.Equal(t, 0.0, weightFor(StatusBroken, 500))
}

func TestPrimaryRing(t *testing.T) {
	small := orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}
	large := orb.Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}

	t.Run("picks largest by area", func(t *testing.T) {
		require.Equal(t, large, PrimaryRing([]orb.Ring{small, large}))
		require.Equal(t, large, PrimaryRing([]orb.Ring{large, small}))
	})

	t.Run("single ring", func(t *testing.T) {
		require.Equal(t, small, PrimaryRing([]orb.Ring{small}))
	})

	t.Run("empty slice", func(t *testing.T) {
		require.Nil(t, PrimaryRing(nil))
	})
}

func TestRegionEWKT(t *testing.T) {
	ring := orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 0}}

	s := regionEWKT(ring)

	require.Equal(t, "SRID=4326;POLYGON((0 0,1 0,1 1,0 0))", s)
}

func TestRegionEWKT_ClosesOpenRing(t *testing.T) {
	ring := orb.Ring{{0, 0}, {1, 0}, {1, 1}}

	s := regionEWKT(ring)

	require.Equal(t, "SRID=4326;POLYGON((0 0,1 0,1 1,0 0))", s)
}

func TestParseBoundary(t *testing.T) {
	ring, err := parseBoundary("POLYGON((0 0,4 0,4 4,0 4,0 0))")

	require.NoError(t, err)
	require.Equal(t, orb.Ring{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {0, 0}}, ring)
}

func TestParseBoundary_Invalid(t *testing.T) {
	_, err := parseBoundary("POINT(1 2)")
	require.Error(t, err)
}
