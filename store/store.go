package store

import (
	"context"

	"github.com/Egglessbonek/project-oasis/types"
)

// Store loads computation inputs and persists computed service areas.
//
// Implementations must be safe for concurrent use.
type Store interface {
	// LoadComputation assembles the computation request for one area:
	// its boundary plus the sites and weights of its wells.
	//
	// Parameters:
	//   - ctx: Context for query cancellation
	//   - areaID: Service area identifier
	//
	// Returns:
	//   - *types.Request: Ready-to-compute request
	//   - error: types.ErrAreaNotFound when the area does not exist
	LoadComputation(ctx context.Context, areaID string) (*types.Request, error)

	// SaveServiceAreas writes the computed region of every site in the
	// result back to its well row, atomically per area.
	//
	// Parameters:
	//   - ctx: Context for query cancellation
	//   - areaID: Service area identifier the result belongs to
	//   - result: Computation output keyed by well ID
	//
	// Returns:
	//   - error: Non-nil when the transaction fails; nothing is written
	SaveServiceAreas(ctx context.Context, areaID string, result *types.Result) error
}
