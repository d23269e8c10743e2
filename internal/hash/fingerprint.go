// Package hash computes stable fingerprints of computation inputs.
//
// A fingerprint identifies the exact inputs of one service-area
// computation, so the worker can skip a recalculation whose inputs have
// not changed since the last run.
package hash

import (
	"encoding/binary"
	"math"

	"github.com/zeebo/xxh3"

	"github.com/Egglessbonek/project-oasis/types"
)

// requestSeed separates request fingerprints from other xxh3 uses.
const requestSeed = 0x6f617369732f7631 // "oasis/v1"

// Request computes a 64-bit fingerprint of a computation request.
//
// Values are folded into a single xxh3 hash using the previous hash as the
// seed for the next value, so no intermediate buffer is built. Section
// lengths are folded in between slices to keep e.g. a boundary vertex from
// colliding with a site location.
//
// Parameters:
//   - req: The request to fingerprint (must be non-nil)
//
// Returns:
//   - uint64: Stable fingerprint; equal inputs always produce equal values
func Request(req *types.Request) uint64 {
	h := uint64(requestSeed)

	h = foldInt(h, len(req.SiteIDs))
	for _, id := range req.SiteIDs {
		h = xxh3.HashStringSeed(id, h)
	}

	h = foldInt(h, len(req.Locations))
	for _, p := range req.Locations {
		h = foldFloat(h, p[0])
		h = foldFloat(h, p[1])
	}

	h = foldInt(h, len(req.Weights))
	for _, w := range req.Weights {
		h = foldFloat(h, w)
	}

	h = foldInt(h, len(req.Boundary))
	for _, p := range req.Boundary {
		h = foldFloat(h, p[0])
		h = foldFloat(h, p[1])
	}

	return h
}

func foldInt(seed uint64, v int) uint64 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(v)) //nolint:gosec
	return xxh3.HashSeed(b[:], seed)
}

func foldFloat(seed uint64, v float64) uint64 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
	return xxh3.HashSeed(b[:], seed)
}
