package engine

import (
	"fmt"
	"sort"
)

// CollisionError is returned by graph mutators when an endpoint of the
// requested edge is an obstacle cell. No mutation happens in that case.
type CollisionError struct {
	Cell Coord
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("collision: cell (%d,%d) is blocked by an obstacle", e.Cell.X, e.Cell.Y)
}

// edgeKey is the canonical unordered-pair key for edge attributes.
// A always orders before B.
type edgeKey struct {
	A, B Coord
}

func newEdgeKey(a, b Coord) edgeKey {
	if b.Less(a) {
		a, b = b, a
	}
	return edgeKey{A: a, B: b}
}

// TrackGraph is the player-editable undirected graph of drawn track
// segments. Adjacency is kept symmetric at all times: b is a neighbor of
// a iff a is a neighbor of b. Every edge carries exactly one color.
//
// TrackGraph is not safe for concurrent use; callers serialize edits and
// route resolution (the service layer gates edits while a simulation is
// running).
type TrackGraph struct {
	adjacency map[Coord]map[Coord]bool
	colors    map[edgeKey]Color
	obstacles map[Coord]bool
}

// NewTrackGraph creates an empty track graph over a level's obstacle set
func NewTrackGraph(obstacles []Obstacle) *TrackGraph {
	g := &TrackGraph{
		adjacency: make(map[Coord]map[Coord]bool),
		colors:    make(map[edgeKey]Color),
		obstacles: make(map[Coord]bool),
	}
	for _, o := range obstacles {
		g.obstacles[o.Coord()] = true
	}
	return g
}

// IsObstacle reports whether c is an impassable level cell
func (g *TrackGraph) IsObstacle(c Coord) bool {
	return g.obstacles[c]
}

// Connect adds the undirected edge a-b with the given color. Adding an
// existing edge is a no-op except that the edge is recolored, so redrawing
// with a different active line recolors without an explicit remove.
// Connecting a cell to itself is ignored; the graph never holds self-loops.
func (g *TrackGraph) Connect(a, b Coord, color Color) error {
	if err := g.checkObstacles(a, b); err != nil {
		return err
	}
	if a == b {
		return nil
	}

	g.addNeighbor(a, b)
	g.addNeighbor(b, a)
	g.colors[newEdgeKey(a, b)] = color
	return nil
}

// Disconnect removes the undirected edge a-b and its color. Removing an
// absent edge is a no-op, not an error.
func (g *TrackGraph) Disconnect(a, b Coord) error {
	if err := g.checkObstacles(a, b); err != nil {
		return err
	}

	g.removeNeighbor(a, b)
	g.removeNeighbor(b, a)
	delete(g.colors, newEdgeKey(a, b))
	return nil
}

// Neighbors returns the cells directly connected to a. The result is a
// copy; mutating it does not affect the graph. An unconnected cell yields
// an empty slice.
func (g *TrackGraph) Neighbors(a Coord) []Coord {
	set := g.adjacency[a]
	if len(set) == 0 {
		return nil
	}
	neighbors := make([]Coord, 0, len(set))
	for n := range set {
		neighbors = append(neighbors, n)
	}
	return neighbors
}

// HasEdge reports whether the undirected edge a-b exists
func (g *TrackGraph) HasEdge(a, b Coord) bool {
	return g.adjacency[a][b]
}

// EdgeColor returns the color of edge a-b, if the edge exists
func (g *TrackGraph) EdgeColor(a, b Coord) (Color, bool) {
	color, ok := g.colors[newEdgeKey(a, b)]
	return color, ok
}

// EdgeCount returns the number of undirected edges
func (g *TrackGraph) EdgeCount() int {
	return len(g.colors)
}

// Edges returns every edge in canonical order, sorted for deterministic
// output (state snapshots and persistence)
func (g *TrackGraph) Edges() []TrackEdge {
	edges := make([]TrackEdge, 0, len(g.colors))
	for key, color := range g.colors {
		edges = append(edges, TrackEdge{A: key.A, B: key.B, Color: color})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].A != edges[j].A {
			return edges[i].A.Less(edges[j].A)
		}
		return edges[i].B.Less(edges[j].B)
	})
	return edges
}

// Clear resets the graph to empty. Obstacles are level data and survive
func (g *TrackGraph) Clear() {
	g.adjacency = make(map[Coord]map[Coord]bool)
	g.colors = make(map[edgeKey]Color)
}

func (g *TrackGraph) checkObstacles(a, b Coord) error {
	if g.obstacles[a] {
		return &CollisionError{Cell: a}
	}
	if g.obstacles[b] {
		return &CollisionError{Cell: b}
	}
	return nil
}

func (g *TrackGraph) addNeighbor(from, to Coord) {
	set := g.adjacency[from]
	if set == nil {
		set = make(map[Coord]bool)
		g.adjacency[from] = set
	}
	set[to] = true
}

func (g *TrackGraph) removeNeighbor(from, to Coord) {
	set := g.adjacency[from]
	if set == nil {
		return
	}
	delete(set, to)
	if len(set) == 0 {
		delete(g.adjacency, from)
	}
}
