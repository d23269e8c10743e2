package solver

import (
	"context"
	"math"

	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/floats"

	"github.com/Egglessbonek/project-oasis/types"
)

const (
	// Unassigned marks a sample that no site owns. It only appears when
	// every site weight is zero.
	Unassigned = -1

	// ZeroWeightEpsilon is the multiplicative factor pinned to sites whose
	// weight is zero or negative. It keeps the weighted distance finite and
	// well-ordered while making such sites lose every contested sample, so
	// they end up with (almost) no area instead of breaking the iteration.
	ZeroWeightEpsilon = 1e-9
)

// Params are the iteration controls for Balance.
type Params struct {
	// MaxIterations bounds the number of assignment/correction rounds.
	MaxIterations int

	// Tolerance is the convergence threshold on the largest per-site
	// proportional error.
	Tolerance float64

	// DampingFactor (0, 1] scales each multiplicative correction. Values
	// below 1 trade convergence speed for stability.
	DampingFactor float64
}

// Assignment is the solver output.
type Assignment struct {
	// Sites holds, per inside sample, the winning site index, or
	// Unassigned when all weights were zero. Order matches the sample
	// slice passed to Balance.
	Sites []int

	// Counts holds the number of samples assigned to each site.
	Counts []int

	// Iterations is the number of rounds performed.
	Iterations int

	// Converged reports whether MaxError dropped below the tolerance.
	Converged bool

	// MaxError is the largest per-site proportional error after the last
	// round.
	MaxError float64
}

// Balance assigns every sample to exactly one site so that per-site sample
// counts approximate the weight proportions.
//
// Sites with negative weights are treated as zero-weight. When the total
// weight is zero the result is fully unassigned, which is defined behavior
// rather than an error. When the iteration budget runs out before the
// tolerance is met, the last assignment is returned as a best effort and a
// warning is logged; the call still succeeds.
//
// Ties on the weighted distance break toward the lowest site index, so
// results are deterministic for identical inputs.
//
// The context is only checked between iterations; a round that has started
// always runs to completion.
//
// Parameters:
//   - ctx: Context checked between iterations
//   - sites: Planar site positions
//   - weights: Per-site weights, parallel to sites
//   - samples: Planar positions of the inside-boundary grid samples
//   - params: Iteration controls
//   - logger: Receives the non-convergence warning and degenerate notices
//
// Returns:
//   - *Assignment: Final assignment, converged or best-effort
//   - error: Only the context's error, when canceled between iterations
func Balance(ctx context.Context, sites []orb.Point, weights []float64, samples []orb.Point, params Params, logger types.Logger) (*Assignment, error) {
	n := len(sites)
	safe := make([]float64, n)
	for i, w := range weights {
		safe[i] = math.Max(w, 0)
	}
	total := floats.Sum(safe)

	a := &Assignment{
		Sites:  make([]int, len(samples)),
		Counts: make([]int, n),
	}

	if total == 0 {
		for i := range a.Sites {
			a.Sites[i] = Unassigned
		}
		a.Converged = true
		logger.Warn("all site weights are zero; returning unassigned grid", "sites", n)

		return a, nil
	}

	// Target sample count per site.
	targets := make([]float64, n)
	copy(targets, safe)
	floats.Scale(float64(len(samples))/total, targets)

	factors := make([]float64, n)
	for i := range factors {
		factors[i] = 1.0
		if weights[i] <= 0 {
			factors[i] = ZeroWeightEpsilon
		}
	}

	invSq := make([]float64, n)
	errs := make([]float64, n)

	for iter := 1; iter <= params.MaxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// Comparisons use squared distance scaled by 1/factor^2, which
		// orders identically to distance/factor and avoids the sqrt.
		for i, f := range factors {
			invSq[i] = 1 / (f * f)
		}

		for j, s := range samples {
			best := 0
			bestDist := math.Inf(1)
			for i, site := range sites {
				dx := s[0] - site[0]
				dy := s[1] - site[1]
				d := (dx*dx + dy*dy) * invSq[i]
				if d < bestDist {
					bestDist = d
					best = i
				}
			}
			a.Sites[j] = best
		}

		for i := range a.Counts {
			a.Counts[i] = 0
		}
		for _, s := range a.Sites {
			a.Counts[s]++
		}

		for i := range errs {
			errs[i] = math.Abs(float64(a.Counts[i])-targets[i]) / float64(len(samples))
		}
		a.MaxError = floats.Max(errs)
		a.Iterations = iter

		if a.MaxError < params.Tolerance {
			a.Converged = true
			break
		}
		if iter == params.MaxIterations {
			break
		}

		for i := range factors {
			actual := math.Max(float64(a.Counts[i]), 1)
			factors[i] *= math.Pow(targets[i]/actual, params.DampingFactor)
			if weights[i] <= 0 {
				factors[i] = ZeroWeightEpsilon
			}
		}
	}

	if !a.Converged {
		logger.Warn("solver exhausted iteration budget",
			"iterations", a.Iterations,
			"maxError", a.MaxError,
			"tolerance", params.Tolerance,
		)
	}

	return a, nil
}
