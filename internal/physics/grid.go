package physics

import "math"

// MaxGridDim bounds the number of cells per axis. Past it the cells grow,
// which keeps the 3x3x3 neighborhood exhaustive.
const MaxGridDim = 64

// SpatialGrid is a uniform 3D bucket grid over the box [-half, half]^3.
// Buckets hold particle indices and keep their backing arrays between
// rebuilds; only a change of dimension reallocates.
type SpatialGrid struct {
	half     float32
	cellSize float32
	dim      int
	cells    [][]int
}

// Rebuild clears the grid and buckets every particle by position. Positions
// must already lie inside the box. When the cell size would need more than
// MaxGridDim cells per axis the cells are enlarged, which changes the order
// pairs are visited in compared with an unbounded grid.
func (g *SpatialGrid) Rebuild(boxSize, cellSize float32, particles []Particle) {
	dim := int(math.Floor(float64(boxSize/cellSize))) + 1
	if dim > MaxGridDim {
		dim = MaxGridDim
		cellSize = boxSize / float32(MaxGridDim-1)
	}
	if dim < 1 {
		dim = 1
	}

	g.half = 0.5 * boxSize
	g.cellSize = cellSize

	if dim != g.dim || len(g.cells) != dim*dim*dim {
		g.dim = dim
		g.cells = make([][]int, dim*dim*dim)
	} else {
		for i := range g.cells {
			g.cells[i] = g.cells[i][:0]
		}
	}

	for i := range particles {
		ci, cj, ck := g.CellOf(particles[i].Position.X, particles[i].Position.Y, particles[i].Position.Z)
		idx := g.index(ci, cj, ck)
		g.cells[idx] = append(g.cells[idx], i)
	}
}

func (g *SpatialGrid) Dim() int          { return g.dim }
func (g *SpatialGrid) CellSize() float32 { return g.cellSize }

// CellOf maps a position to its cell coordinates, clamped to the grid.
func (g *SpatialGrid) CellOf(x, y, z float32) (int, int, int) {
	return g.axisIndex(x), g.axisIndex(y), g.axisIndex(z)
}

func (g *SpatialGrid) axisIndex(v float32) int {
	i := int(math.Floor(float64((v + g.half) / g.cellSize)))
	if i < 0 {
		return 0
	}
	if i >= g.dim {
		return g.dim - 1
	}
	return i
}

func (g *SpatialGrid) index(i, j, k int) int {
	return (i*g.dim+j)*g.dim + k
}

// Bucket returns the indices stored in cell (i, j, k).
func (g *SpatialGrid) Bucket(i, j, k int) []int {
	return g.cells[g.index(i, j, k)]
}

// Neighbors calls fn for every index in the 27 cells around (i, j, k).
// Cells outside [0, dim) are skipped, so boundary cells see fewer neighbors.
func (g *SpatialGrid) Neighbors(i, j, k int, fn func(idx int)) {
	for gi := i - 1; gi <= i+1; gi++ {
		if gi < 0 || gi >= g.dim {
			continue
		}
		for gj := j - 1; gj <= j+1; gj++ {
			if gj < 0 || gj >= g.dim {
				continue
			}
			for gk := k - 1; gk <= k+1; gk++ {
				if gk < 0 || gk >= g.dim {
					continue
				}
				for _, idx := range g.cells[g.index(gi, gj, gk)] {
					fn(idx)
				}
			}
		}
	}
}
