package contour

import "github.com/paulmach/orb"

// Marching-squares segment table. Cell corner bits: tl=8, tr=4, br=2, bl=1.
// Edge slots: 0=top, 1=right, 2=bottom, 3=left. Each entry lists the edge
// pairs connected by a contour segment crossing the cell. The two saddle
// cases (5 and 10) are resolved by keeping the diagonal blobs separated,
// which is consistent for both and guarantees every mixed edge is used by
// exactly two segments overall.
var segmentTable = [16][][2]int{
	0:  nil,
	1:  {{3, 2}},
	2:  {{2, 1}},
	3:  {{3, 1}},
	4:  {{0, 1}},
	5:  {{0, 1}, {3, 2}},
	6:  {{0, 2}},
	7:  {{3, 0}},
	8:  {{3, 0}},
	9:  {{0, 2}},
	10: {{3, 0}, {2, 1}},
	11: {{0, 1}},
	12: {{3, 1}},
	13: {{2, 1}},
	14: {{3, 2}},
	15: nil,
}

// traceRings extracts the closed 0.5-level contours of a binary mask.
//
// The mask is a resolution x resolution row-major lattice. Lattice points
// outside the array are treated as zero, so a region touching the border
// still produces closed rings. Returned ring vertices are pixel
// coordinates (x=column, y=row) with crossings at edge midpoints, and the
// first vertex is repeated as the last.
func traceRings(mask []bool, resolution int) []orb.Ring {
	value := func(row, col int) int {
		if row < 0 || col < 0 || row >= resolution || col >= resolution {
			return 0
		}
		if mask[row*resolution+col] {
			return 1
		}

		return 0
	}

	// Edge keys: lattice corners are shifted by +1 so virtual border cells
	// index cleanly. Horizontal edge (row,col)-(row,col+1) and vertical
	// edge (row,col)-(row+1,col) get distinct key spaces.
	n := resolution + 2
	hKey := func(row, col int) int { return (row+1)*n + (col + 1) }
	vKey := func(row, col int) int { return n*n + (row+1)*n + (col + 1) }

	type segment struct{ a, b int }
	var segs []segment
	edgeSegs := make(map[int][]int)

	for row := -1; row < resolution; row++ {
		for col := -1; col < resolution; col++ {
			tl := value(row, col)
			tr := value(row, col+1)
			br := value(row+1, col+1)
			bl := value(row+1, col)
			idx := tl<<3 | tr<<2 | br<<1 | bl
			if idx == 0 || idx == 15 {
				continue
			}

			edgeKeys := [4]int{
				hKey(row, col),   // top
				vKey(row, col+1), // right
				hKey(row+1, col), // bottom
				vKey(row, col),   // left
			}
			for _, pair := range segmentTable[idx] {
				segs = append(segs, segment{a: edgeKeys[pair[0]], b: edgeKeys[pair[1]]})
				id := len(segs) - 1
				edgeSegs[segs[id].a] = append(edgeSegs[segs[id].a], id)
				edgeSegs[segs[id].b] = append(edgeSegs[segs[id].b], id)
			}
		}
	}

	midpoint := func(key int) orb.Point {
		vertical := false
		if key >= n*n {
			key -= n * n
			vertical = true
		}
		row := float64(key/n) - 1
		col := float64(key%n) - 1
		if vertical {
			return orb.Point{col, row + 0.5}
		}

		return orb.Point{col + 0.5, row}
	}

	// Chain segments into closed loops. Every contour edge belongs to
	// exactly two segments, so walking from segment to segment through
	// shared edges always returns to the start.
	visited := make([]bool, len(segs))
	var rings []orb.Ring
	for start := range segs {
		if visited[start] {
			continue
		}
		visited[start] = true

		startEdge := segs[start].a
		ring := orb.Ring{midpoint(startEdge), midpoint(segs[start].b)}
		current := segs[start].b

		for current != startEdge {
			next := -1
			for _, id := range edgeSegs[current] {
				if !visited[id] {
					next = id
					break
				}
			}
			if next == -1 {
				// Open chain; cannot happen for a well-formed mask, but a
				// truncated walk must not loop forever.
				break
			}
			visited[next] = true
			if segs[next].a == current {
				current = segs[next].b
			} else {
				current = segs[next].a
			}
			ring = append(ring, midpoint(current))
		}

		if len(ring) >= 4 && ring[0] == ring[len(ring)-1] {
			rings = append(rings, ring)
		}
	}

	return rings
}
