// Package solver assigns grid samples to weighted sites.
//
// The solver approximates a multiplicatively-weighted Voronoi (power)
// diagram without computing it analytically: every inside-boundary grid
// sample is assigned to the site with the smallest factor-scaled distance,
// and the per-site factors are adjusted iteratively until each site's
// sample count is proportional to its weight.
//
// The iteration is a damped fixed-point update on the multiplicative
// factor. The damping factor (< 1) prevents oscillation, the tolerance
// bounds the achieved area-proportion accuracy, and the iteration budget
// bounds worst-case cost. Each iteration scans every (site, sample) pair,
// which dominates total cost.
package solver
