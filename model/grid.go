package model

import (
	"math/rand/v2"
	"strings"
)

const (
	// DefaultSideLength replaces non-positive side lengths.
	DefaultSideLength = 10

	// InitialDensity is the probability that a seeded cell starts alive.
	InitialDensity = 0.3
)

// Grid is a square toroidal board stored row-major: index = row*side + col.
type Grid struct {
	side  int
	cells []bool
}

// NewGrid creates an all-dead grid. Side lengths <= 0 become DefaultSideLength.
func NewGrid(sideLength int) *Grid {
	if sideLength <= 0 {
		sideLength = DefaultSideLength
	}
	return &Grid{
		side:  sideLength,
		cells: make([]bool, sideLength*sideLength),
	}
}

// NewRandomGrid creates a grid where every cell is alive with InitialDensity,
// drawn in index order from a PCG source seeded with seed.
func NewRandomGrid(seed int64, sideLength int) *Grid {
	g := NewGrid(sideLength)
	g.Randomize(rand.New(rand.NewPCG(uint64(seed), 0)), InitialDensity)
	return g
}

// SideLength returns the number of cells along one edge.
func (g *Grid) SideLength() int {
	return g.side
}

// Len returns the total number of cells.
func (g *Grid) Len() int {
	return len(g.cells)
}

// Index maps (row, col) to a flat index, wrapping both coordinates.
func (g *Grid) Index(row, col int) int {
	return wrap(row, g.side)*g.side + wrap(col, g.side)
}

// Coords is the inverse of Index for an in-range index.
func (g *Grid) Coords(i int) (row, col int) {
	return i / g.side, i % g.side
}

// Get returns the state of the cell at (row, col) on the torus.
func (g *Grid) Get(row, col int) bool {
	return g.cells[g.Index(row, col)]
}

// Set sets the cell at (row, col) on the torus.
func (g *Grid) Set(row, col int, alive bool) {
	g.cells[g.Index(row, col)] = alive
}

// At returns the state of the cell at flat index i.
func (g *Grid) At(i int) bool {
	return g.cells[i]
}

// Clear kills every cell
func (g *Grid) Clear() {
	clear(g.cells)
}

// reset resizes the grid for reuse from a pool and clears it.
func (g *Grid) reset(sideLength int) {
	n := sideLength * sideLength
	g.side = sideLength
	if cap(g.cells) < n {
		g.cells = make([]bool, n)
		return
	}
	g.cells = g.cells[:n]
	clear(g.cells)
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	cells := make([]bool, len(g.cells))
	copy(cells, g.cells)
	return &Grid{side: g.side, cells: cells}
}

// CountNeighbors counts the live cells among the eight toroidal neighbors of
// flat index i. Positions that wrap onto the same cell are counted once per
// offset, so on a 1x1 grid a live cell has 8 neighbors: itself.
func (g *Grid) CountNeighbors(i int) int {
	row, col := g.Coords(i)
	count := 0
	for dr := -1; dr <= 1; dr++ {
		r := wrap(row+dr, g.side) * g.side
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if g.cells[r+wrap(col+dc, g.side)] {
				count++
			}
		}
	}
	return count
}

// Equal reports whether both grids have the same size and cells. It stops at
// the first mismatch.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.side != other.side {
		return false
	}
	for i, alive := range g.cells {
		if other.cells[i] != alive {
			return false
		}
	}
	return true
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for _, alive := range g.cells {
		if alive {
			count++
		}
	}
	return
}

// Randomize sets every cell alive with the given probability, serially in
// index order so the result depends only on the source's state.
func (g *Grid) Randomize(rng *rand.Rand, density float64) {
	for i := range g.cells {
		g.cells[i] = rng.Float64() < density
	}
}

// AddGlider adds a glider pattern with its top-left corner at (row, col)
func (g *Grid) AddGlider(row, col int) {
	pattern := [][]bool{
		{false, true, false},
		{false, false, true},
		{true, true, true},
	}

	for dr, line := range pattern {
		for dc, cell := range line {
			g.Set(row+dr, col+dc, cell)
		}
	}
}

// AddBlinker adds a horizontal blinker starting at (row, col)
func (g *Grid) AddBlinker(row, col int) {
	g.Set(row, col, true)
	g.Set(row, col+1, true)
	g.Set(row, col+2, true)
}

// String renders the grid with '#' for live and '.' for dead cells.
func (g *Grid) String() string {
	return renderCells(g.cells, g.side, "#", ".")
}

func renderCells(cells []bool, side int, live, dead string) string {
	var b strings.Builder
	for i, alive := range cells {
		if alive {
			b.WriteString(live)
		} else {
			b.WriteString(dead)
		}
		if (i+1)%side == 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// wrap folds v into [0, n) for any integer v.
func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
