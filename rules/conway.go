package rules

// MaxNeighbors is the size of the Moore neighborhood.
const MaxNeighbors = 8

/*
ApplyConwayRules decides whether a cell is alive in the next generation.

A live cell survives with 2 or 3 live neighbors, a dead cell is born with
exactly 3, and every other cell is dead: (alive && neighbors == 2) || neighbors == 3
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	switch {
	case neighbors == 3:
		return true
	case neighbors == 2:
		return alive
	default:
		return false
	}
}
