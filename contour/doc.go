// Package contour extracts vector boundaries from the assignment raster.
//
// For each site, the assigned cells form a binary mask. The mask's
// iso-contours at the 0.5 level are traced with marching squares, yielding
// closed pixel-space rings; the rings are simplified with Douglas-Peucker
// in pixel units and mapped back to planar coordinates by interpolating
// against the grid's axis arrays.
//
// A site whose region decomposes into disjoint parts yields one ring per
// part; nothing is discarded here. Callers that need a single polygon per
// site choose which ring to keep.
package contour
