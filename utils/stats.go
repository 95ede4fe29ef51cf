package utils

import (
	"sync"
	"time"
)

// Stats for performance monitoring
type Stats struct {
	mu sync.Mutex

	GenerationsPerSecond float64
	AveragePopulation    float64
	TotalGenerations     int
	StartTime            time.Time
	ActiveCells          int

	lastUpdate time.Time
}

func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

// Update records a generation observed duration after the previous one.
func (s *Stats) Update(generation int, population int, duration time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.TotalGenerations = generation
	s.ActiveCells = population
	if duration > 0 {
		s.GenerationsPerSecond = 1.0 / duration.Seconds()
	}

	// Simple moving average for population
	if s.AveragePopulation == 0 {
		s.AveragePopulation = float64(population)
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(population) * 0.1)
	}
}

// Observe updates the stats using the wall time since the previous call.
func (s *Stats) Observe(generation, population int) {
	s.mu.Lock()
	now := time.Now()
	last := s.lastUpdate
	if last.IsZero() {
		last = s.StartTime
	}
	s.lastUpdate = now
	s.mu.Unlock()

	s.Update(generation, population, now.Sub(last))
}

// Snapshot returns a copy safe to read while the engine keeps running.
func (s *Stats) Snapshot() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		GenerationsPerSecond: s.GenerationsPerSecond,
		AveragePopulation:    s.AveragePopulation,
		TotalGenerations:     s.TotalGenerations,
		StartTime:            s.StartTime,
		ActiveCells:          s.ActiveCells,
	}
}
