package engine

import (
	"errors"
	"testing"
)

// validatePath checks that every consecutive pair in path is an edge of g
func validatePath(t *testing.T, path []Coord, g *TrackGraph) {
	t.Helper()
	for i := 1; i < len(path); i++ {
		if !g.HasEdge(path[i-1], path[i]) {
			t.Errorf("Path step %v -> %v is not a graph edge", path[i-1], path[i])
		}
	}
}

func TestResolveRoute_EmptyGraphUnreachable(t *testing.T) {
	g := NewTrackGraph(nil)
	s1 := Coord{X: 0, Y: 0}
	s2 := Coord{X: 3, Y: 3}

	_, err := ResolveRoute([]Coord{s1, s2}, g)
	if err == nil {
		t.Fatal("Expected unreachable error on empty graph")
	}

	var unreachable *UnreachableError
	if !errors.As(err, &unreachable) {
		t.Fatalf("Expected *UnreachableError, got %T", err)
	}
	if unreachable.From != s1 || unreachable.To != s2 {
		t.Errorf("Expected blocked pair (%v,%v), got (%v,%v)", s1, s2, unreachable.From, unreachable.To)
	}
}

func TestResolveRoute_TwoEdgePath(t *testing.T) {
	g := NewTrackGraph(nil)
	g.Connect(Coord{X: 0, Y: 0}, Coord{X: 1, Y: 0}, ColorRed)
	g.Connect(Coord{X: 1, Y: 0}, Coord{X: 1, Y: 1}, ColorRed)

	path, err := ResolveRoute([]Coord{{X: 0, Y: 0}, {X: 1, Y: 1}}, g)
	if err != nil {
		t.Fatalf("ResolveRoute failed: %v", err)
	}

	want := []Coord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}
	if len(path) != len(want) {
		t.Fatalf("Expected path of %d cells, got %d: %v", len(want), len(path), path)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Errorf("Path[%d] = %v, want %v", i, path[i], want[i])
		}
	}
}

func TestResolveRoute_DisconnectBreaksRoute(t *testing.T) {
	g := NewTrackGraph(nil)
	a := Coord{X: 0, Y: 0}
	b := Coord{X: 1, Y: 0}
	g.Connect(a, b, ColorRed)
	g.Disconnect(a, b)

	_, err := ResolveRoute([]Coord{a, b}, g)
	var unreachable *UnreachableError
	if !errors.As(err, &unreachable) {
		t.Fatalf("Expected *UnreachableError after disconnect, got %v", err)
	}
}

func TestResolveRoute_SingleWaypoint(t *testing.T) {
	g := NewTrackGraph(nil)
	s := Coord{X: 4, Y: 2}

	path, err := ResolveRoute([]Coord{s}, g)
	if err != nil {
		t.Fatalf("ResolveRoute failed: %v", err)
	}
	if len(path) != 1 || path[0] != s {
		t.Errorf("Expected trivial path [%v], got %v", s, path)
	}
}

func TestResolveRoute_RoundTripToSelf(t *testing.T) {
	g := NewTrackGraph(nil)
	s := Coord{X: 2, Y: 2}

	// Consecutive duplicate waypoints need no track at all
	path, err := ResolveRoute([]Coord{s, s}, g)
	if err != nil {
		t.Fatalf("ResolveRoute failed: %v", err)
	}
	if len(path) != 1 || path[0] != s {
		t.Errorf("Expected [%v] for round trip to self, got %v", s, path)
	}
}

func TestResolveRoute_EmptyWaypoints(t *testing.T) {
	g := NewTrackGraph(nil)
	if _, err := ResolveRoute(nil, g); err == nil {
		t.Error("Expected error for empty waypoint list")
	}
}

func TestResolveRoute_ShortestPathLength(t *testing.T) {
	// A straight line of length 4 plus a longer detour; BFS must take the
	// line.
	g := NewTrackGraph(nil)
	for x := 0; x < 4; x++ {
		g.Connect(Coord{X: x, Y: 0}, Coord{X: x + 1, Y: 0}, ColorRed)
	}
	// Detour below the line
	g.Connect(Coord{X: 0, Y: 0}, Coord{X: 0, Y: 1}, ColorBlue)
	g.Connect(Coord{X: 0, Y: 1}, Coord{X: 2, Y: 1}, ColorBlue)
	g.Connect(Coord{X: 2, Y: 1}, Coord{X: 4, Y: 1}, ColorBlue)
	g.Connect(Coord{X: 4, Y: 1}, Coord{X: 4, Y: 0}, ColorBlue)

	path, err := ResolveRoute([]Coord{{X: 0, Y: 0}, {X: 4, Y: 0}}, g)
	if err != nil {
		t.Fatalf("ResolveRoute failed: %v", err)
	}
	if len(path) != 5 {
		t.Errorf("Expected shortest path of 5 cells, got %d: %v", len(path), path)
	}
	validatePath(t, path, g)
}

func TestResolveRoute_MultiSegmentConcatenation(t *testing.T) {
	g := NewTrackGraph(nil)
	s1 := Coord{X: 0, Y: 0}
	s2 := Coord{X: 2, Y: 0}
	s3 := Coord{X: 2, Y: 2}
	g.Connect(s1, Coord{X: 1, Y: 0}, ColorRed)
	g.Connect(Coord{X: 1, Y: 0}, s2, ColorRed)
	g.Connect(s2, Coord{X: 2, Y: 1}, ColorRed)
	g.Connect(Coord{X: 2, Y: 1}, s3, ColorRed)

	path, err := ResolveRoute([]Coord{s1, s2, s3}, g)
	if err != nil {
		t.Fatalf("ResolveRoute failed: %v", err)
	}

	// Segment boundary cell s2 appears exactly once
	count := 0
	for _, c := range path {
		if c == s2 {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Expected waypoint %v exactly once in path, got %d times: %v", s2, count, path)
	}

	// No duplicate consecutive cells anywhere
	for i := 1; i < len(path); i++ {
		if path[i] == path[i-1] {
			t.Errorf("Duplicate consecutive cell %v at index %d", path[i], i)
		}
	}
	validatePath(t, path, g)

	// Waypoints visited in order
	idx2, idx3 := -1, -1
	for i, c := range path {
		if c == s2 && idx2 == -1 {
			idx2 = i
		}
		if c == s3 && idx3 == -1 {
			idx3 = i
		}
	}
	if path[0] != s1 || idx2 == -1 || idx3 == -1 || idx2 > idx3 {
		t.Errorf("Waypoints not visited in order: %v", path)
	}
}

func TestResolveRoute_FirstFailureWins(t *testing.T) {
	// s1-s2 disconnected, s2-s3 connected; the reported pair must be the
	// first one and the second pair must not matter.
	g := NewTrackGraph(nil)
	s1 := Coord{X: 0, Y: 0}
	s2 := Coord{X: 5, Y: 5}
	s3 := Coord{X: 6, Y: 5}
	g.Connect(s2, s3, ColorRed)

	_, err := ResolveRoute([]Coord{s1, s2, s3}, g)
	var unreachable *UnreachableError
	if !errors.As(err, &unreachable) {
		t.Fatalf("Expected *UnreachableError, got %v", err)
	}
	if unreachable.From != s1 || unreachable.To != s2 {
		t.Errorf("Expected first blocked pair (%v,%v), got (%v,%v)", s1, s2, unreachable.From, unreachable.To)
	}
}

func TestResolveRoute_CyclicGraphTerminates(t *testing.T) {
	// A cycle with no path to the target; the visited set must bound the
	// search.
	g := NewTrackGraph(nil)
	cycle := []Coord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	for i := range cycle {
		g.Connect(cycle[i], cycle[(i+1)%len(cycle)], ColorRed)
	}

	_, err := ResolveRoute([]Coord{{X: 0, Y: 0}, {X: 7, Y: 7}}, g)
	var unreachable *UnreachableError
	if !errors.As(err, &unreachable) {
		t.Fatalf("Expected *UnreachableError on cyclic graph, got %v", err)
	}
}

func TestResolveRoute_DiagonalEdgesTraversable(t *testing.T) {
	// Diagonal edges are ordinary edges to the resolver
	g := NewTrackGraph(nil)
	g.Connect(Coord{X: 0, Y: 0}, Coord{X: 1, Y: 1}, ColorYellow)
	g.Connect(Coord{X: 1, Y: 1}, Coord{X: 2, Y: 2}, ColorYellow)

	path, err := ResolveRoute([]Coord{{X: 0, Y: 0}, {X: 2, Y: 2}}, g)
	if err != nil {
		t.Fatalf("ResolveRoute failed: %v", err)
	}
	if len(path) != 3 {
		t.Errorf("Expected 3 cells over diagonal edges, got %v", path)
	}
}
