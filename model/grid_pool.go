package model

import "sync"

// GridToPool returns a grid to the pool for reuse
func GridToPool(grid *Grid, pool *GridPool) {
	if pool == nil || grid == nil {
		return
	}

	pool.Put(grid)
}

// GridPool recycles generation buffers between steps.
type GridPool struct {
	pool sync.Pool
}

func NewGridPool() *GridPool {
	return &GridPool{
		pool: sync.Pool{
			New: func() any {
				return &Grid{}
			},
		},
	}
}

// Get retrieves an all-dead grid of the given side length.
func (p *GridPool) Get(sideLength int) *Grid {
	if sideLength <= 0 {
		sideLength = DefaultSideLength
	}
	g := p.pool.Get().(*Grid)
	g.reset(sideLength)
	return g
}

// Put returns a grid to the pool, clearing its state
func (p *GridPool) Put(g *Grid) {
	g.Clear()
	p.pool.Put(g)
}

// getGrid takes a fresh all-dead grid from pool, or allocates one when pool is nil.
func getGrid(pool *GridPool, sideLength int) *Grid {
	if pool != nil {
		return pool.Get(sideLength)
	}
	return NewGrid(sideLength)
}
