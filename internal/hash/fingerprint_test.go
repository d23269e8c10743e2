package hash

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"

	"github.com/Egglessbonek/project-oasis/types"
)

func sampleRequest() *types.Request {
	return &types.Request{
		SiteIDs:   []string{"w-1", "w-2"},
		Locations: []orb.Point{{30.1, 50.2}, {30.3, 50.4}},
		Weights:   []float64{10, 20},
		Boundary:  orb.Ring{{30, 50}, {31, 50}, {31, 51}, {30, 51}, {30, 50}},
	}
}

func TestRequest_Deterministic(t *testing.T) {
	a := Request(sampleRequest())
	b := Request(sampleRequest())

	require.Equal(t, a, b)
}

func TestRequest_SensitiveToChanges(t *testing.T) {
	base := Request(sampleRequest())

	t.Run("site id change", func(t *testing.T) {
		req := sampleRequest()
		req.SiteIDs[1] = "w-3"
		require.NotEqual(t, base, Request(req))
	})

	t.Run("location change", func(t *testing.T) {
		req := sampleRequest()
		req.Locations[0][1] += 1e-9
		require.NotEqual(t, base, Request(req))
	})

	t.Run("weight change", func(t *testing.T) {
		req := sampleRequest()
		req.Weights[0] = 11
		require.NotEqual(t, base, Request(req))
	})

	t.Run("boundary change", func(t *testing.T) {
		req := sampleRequest()
		req.Boundary[2] = orb.Point{31.5, 51}
		require.NotEqual(t, base, Request(req))
	})
}

func TestRequest_SectionBoundaries(t *testing.T) {
	// Moving a value between adjacent sections must change the hash even
	// though the flat value sequence is related.
	a := &types.Request{
		SiteIDs:   []string{"x"},
		Locations: []orb.Point{{1, 2}},
		Weights:   []float64{3},
	}
	b := &types.Request{
		SiteIDs:   []string{"x"},
		Locations: []orb.Point{{1, 2}, {3, 0}},
		Weights:   nil,
	}

	require.NotEqual(t, Request(a), Request(b))
}
