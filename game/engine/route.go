package engine

import "fmt"

// UnreachableError is returned by ResolveRoute when no drawn track
// connects two consecutive waypoints. It names the first blocked pair;
// later pairs are not evaluated.
type UnreachableError struct {
	From Coord
	To   Coord
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("no track connects (%d,%d) to (%d,%d)", e.From.X, e.From.Y, e.To.X, e.To.Y)
}

// ResolveRoute computes the full cell path a train must traverse to visit
// the given waypoints in order, following drawn track edges only. Each
// consecutive waypoint pair is connected by an unweighted shortest path;
// segments are concatenated with the shared boundary cell appearing once.
//
// A single waypoint resolves to itself. Consecutive duplicate waypoints
// contribute nothing (the train is already there). The first pair with no
// connecting track fails the whole resolution with *UnreachableError.
func ResolveRoute(waypoints []Coord, g *TrackGraph) ([]Coord, error) {
	if len(waypoints) == 0 {
		return nil, fmt.Errorf("route request must contain at least one waypoint")
	}

	path := []Coord{waypoints[0]}
	for i := 1; i < len(waypoints); i++ {
		from, to := waypoints[i-1], waypoints[i]
		if from == to {
			continue
		}

		segment := shortestPath(from, to, g)
		if segment == nil {
			return nil, &UnreachableError{From: from, To: to}
		}
		// The segment starts at the previous waypoint, which is already
		// the tail of the accumulated path.
		path = append(path, segment[1:]...)
	}

	return path, nil
}

// shortestPath runs a breadth-first search from from to to over the track
// graph and returns one shortest cell path, or nil when to is unreachable.
// The queue keeps a head index instead of re-slicing so dequeue is O(1).
func shortestPath(from, to Coord, g *TrackGraph) []Coord {
	if from == to {
		return []Coord{from}
	}

	visited := map[Coord]bool{from: true}
	parent := make(map[Coord]Coord)
	queue := []Coord{from}
	head := 0

	for head < len(queue) {
		current := queue[head]
		head++

		for _, next := range g.Neighbors(current) {
			if visited[next] {
				continue
			}
			visited[next] = true
			parent[next] = current

			if next == to {
				return reconstructPath(from, to, parent)
			}
			queue = append(queue, next)
		}
	}

	return nil
}

// reconstructPath walks the BFS parent links back from to and returns the
// path in from-to order.
func reconstructPath(from, to Coord, parent map[Coord]Coord) []Coord {
	reversed := []Coord{to}
	for current := to; current != from; {
		current = parent[current]
		reversed = append(reversed, current)
	}

	path := make([]Coord, len(reversed))
	for i, c := range reversed {
		path[len(path)-1-i] = c
	}
	return path
}
