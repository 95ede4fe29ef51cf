package model

import (
	"log/slog"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/torus-life/rules"
)

// State is the engine's run gate.
type State int

const (
	Running State = iota
	Stopped
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// StopReason records why the engine left the Running state.
type StopReason int

const (
	StopReasonNone StopReason = iota
	StopReasonFixedPoint
	StopReasonPaused
)

func (r StopReason) String() string {
	switch r {
	case StopReasonFixedPoint:
		return "fixed point"
	case StopReasonPaused:
		return "paused"
	default:
		return "none"
	}
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers sets how many goroutines scan a step. n <= 0 uses runtime.NumCPU.
func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = n }
}

// WithGridPool makes the engine recycle generation buffers through pool.
func WithGridPool(pool *GridPool) Option {
	return func(e *Engine) { e.pool = pool }
}

// WithLogger sets the engine's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Engine owns the current and next generations, the generation counter and
// the observers. Steps are serialized; accessors may be called concurrently.
type Engine struct {
	stepMu sync.Mutex // serializes Step

	mu         sync.RWMutex // guards everything below
	current    *Grid
	next       *Grid
	generation int
	state      State
	reason     StopReason
	observers  map[SubscriptionID]Observer
	order      []SubscriptionID
	nextID     SubscriptionID

	side         int
	tickInterval time.Duration
	workers      int
	pool         *GridPool
	logger       *slog.Logger
}

// NewEngine seeds a sideLength x sideLength torus where each cell is alive
// with probability InitialDensity. Side lengths <= 0 become DefaultSideLength.
// tickInterval is only carried for the driver.
func NewEngine(seed int64, sideLength int, tickInterval time.Duration, opts ...Option) *Engine {
	return newEngine(NewRandomGrid(seed, sideLength), tickInterval, opts)
}

// NewEngineFromGrid starts from a copy of g.
func NewEngineFromGrid(g *Grid, tickInterval time.Duration, opts ...Option) *Engine {
	return newEngine(g.Clone(), tickInterval, opts)
}

func newEngine(current *Grid, tickInterval time.Duration, opts []Option) *Engine {
	e := &Engine{
		current:      current,
		side:         current.SideLength(),
		state:        Running,
		observers:    make(map[SubscriptionID]Observer),
		tickInterval: tickInterval,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.next = getGrid(e.pool, e.side)
	return e
}

// Step computes the next generation. When it differs from the current one it
// is committed, the counter is incremented, observers are notified and Step
// returns true. Otherwise the engine stops at a fixed point and returns false.
func (e *Engine) Step() bool {
	e.stepMu.Lock()
	defer e.stepMu.Unlock()

	// current and next are only replaced under stepMu, so they can be read
	// here without mu.
	cur, next := e.current, e.next
	e.scan(cur, next)

	if next.Equal(cur) {
		e.mu.Lock()
		e.state = Stopped
		e.reason = StopReasonFixedPoint
		gen := e.generation
		e.mu.Unlock()

		e.logger.Info("fixed point reached",
			slog.Int("generation", gen),
			slog.Int("population", cur.CountLivingCells()),
		)
		return false
	}

	e.mu.Lock()
	e.current = next
	e.next = getGrid(e.pool, e.side)
	e.generation++
	payload := e.snapshotLocked()
	observers := e.observersLocked()
	e.mu.Unlock()

	GridToPool(cur, e.pool)

	e.logger.Debug("generation committed",
		slog.Int("generation", payload.Number),
		slog.Int("observers", len(observers)),
	)
	for _, o := range observers {
		o.OnGeneration(payload)
	}
	return true
}

// scan fills next from cur. Each worker owns a disjoint range of rows, and
// Wait is the barrier before next may be read.
func (e *Engine) scan(cur, next *Grid) {
	var (
		eg            errgroup.Group
		side          = cur.SideLength()
		numWorkers    = e.numWorkers(side)
		rowsPerWorker = (side + numWorkers - 1) / numWorkers // Ceiling division
	)

	for i := range numWorkers {
		var (
			start = i * rowsPerWorker * side
			end   = min(start+rowsPerWorker*side, cur.Len())
		)
		if start >= cur.Len() {
			break
		}

		eg.Go(func() error {
			for idx := start; idx < end; idx++ {
				next.cells[idx] = rules.ApplyConwayRules(cur.CountNeighbors(idx), cur.At(idx))
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		e.logger.Error("error in parallel processing", slog.Any("error", err))
	}
}

func (e *Engine) numWorkers(side int) int {
	n := e.workers
	if n <= 0 {
		n = runtime.NumCPU()
	}
	return max(1, min(n, side))
}

// Subscribe registers o for generation-ready notifications.
func (e *Engine) Subscribe(o Observer) SubscriptionID {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	id := e.nextID
	e.observers[id] = o
	e.order = append(e.order, id)
	return id
}

// Unsubscribe removes an observer. It reports whether id was registered.
func (e *Engine) Unsubscribe(id SubscriptionID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.observers[id]; !ok {
		return false
	}
	delete(e.observers, id)
	for i, v := range e.order {
		if v == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
	return true
}

// Start opens the run gate. It also resumes after a fixed point, in which
// case the next Step simply stops the engine again.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = Running
	e.reason = StopReasonNone
}

// Stop closes the run gate as a pause.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == Stopped {
		return
	}
	e.state = Stopped
	e.reason = StopReasonPaused
}

// Running reports whether the driver should keep calling Step.
func (e *Engine) Running() bool {
	return e.State() == Running
}

// State returns the current run state.
func (e *Engine) State() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// StopReason returns why the engine is stopped, or StopReasonNone while running.
func (e *Engine) StopReason() StopReason {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.reason
}

// Current returns a snapshot of the current generation.
func (e *Engine) Current() Generation {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshotLocked()
}

// Generation returns the number of committed steps.
func (e *Engine) Generation() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.generation
}

// SideLength returns the grid's side length.
func (e *Engine) SideLength() int {
	return e.side
}

// TickInterval returns the interval the driver should step at.
func (e *Engine) TickInterval() time.Duration {
	return e.tickInterval
}

func (e *Engine) snapshotLocked() Generation {
	cells := make([]bool, e.current.Len())
	copy(cells, e.current.cells)
	return Generation{
		Number:     e.generation,
		SideLength: e.current.SideLength(),
		Cells:      cells,
	}
}

func (e *Engine) observersLocked() []Observer {
	observers := make([]Observer, 0, len(e.order))
	for _, id := range e.order {
		observers = append(observers, e.observers[id])
	}
	return observers
}
