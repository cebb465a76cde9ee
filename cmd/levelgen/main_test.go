package main

import (
	"strings"
	"testing"
)

func TestGenerate_Defaults(t *testing.T) {
	opts := GenOptions{
		Name:     "Test",
		Width:    12,
		Height:   12,
		Stations: 4,
		Density:  0.15,
		Seed:     42,
	}

	level, err := generate(opts)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if level.Width != 12 || level.Height != 12 {
		t.Errorf("Expected 12x12 grid, got %dx%d", level.Width, level.Height)
	}
	if len(level.Stations) != 4 {
		t.Errorf("Expected 4 stations, got %d", len(level.Stations))
	}
	if len(level.RouteRequest) != 5 {
		t.Errorf("Expected 5 route stops, got %d", len(level.RouteRequest))
	}
	if level.RouteRequest[0] != level.RouteRequest[len(level.RouteRequest)-1] {
		t.Error("Expected route to return to the first station")
	}
	for _, key := range []string{"welcome", "blocked", "completed", "collision"} {
		if _, ok := level.Messages[key]; !ok {
			t.Errorf("Missing message %q", key)
		}
	}
	if strings.Count(level.Messages["blocked"], "%s") != 2 {
		t.Errorf("Blocked message must carry two %%s placeholders, got %q", level.Messages["blocked"])
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	opts := GenOptions{Name: "Det", Width: 10, Height: 10, Stations: 3, Density: 0.2, Seed: 7}

	a, err := generate(opts)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	b, err := generate(opts)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if len(a.Obstacles) != len(b.Obstacles) {
		t.Fatalf("Same seed produced %d vs %d obstacles", len(a.Obstacles), len(b.Obstacles))
	}
	for i := range a.Stations {
		if a.Stations[i] != b.Stations[i] {
			t.Errorf("Station %d differs between runs: %v vs %v", i, a.Stations[i], b.Stations[i])
		}
	}
}

func TestGenerate_StationsInBoundsAndUnique(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 99, 12345} {
		level, err := generate(GenOptions{Name: "S", Width: 8, Height: 6, Stations: 5, Density: 0.1, Seed: seed})
		if err != nil {
			t.Fatalf("seed %d: generate failed: %v", seed, err)
		}

		seen := map[[2]int]bool{}
		for _, st := range level.Stations {
			if st.X < 0 || st.X >= level.Width || st.Y < 0 || st.Y >= level.Height {
				t.Errorf("seed %d: station %s at (%d,%d) out of bounds", seed, st.ID, st.X, st.Y)
			}
			cell := [2]int{st.X, st.Y}
			if seen[cell] {
				t.Errorf("seed %d: two stations share cell (%d,%d)", seed, st.X, st.Y)
			}
			seen[cell] = true
		}
	}
}

func TestGenerate_ObstaclesAvoidStations(t *testing.T) {
	level, err := generate(GenOptions{Name: "O", Width: 16, Height: 16, Stations: 6, Density: 0.3, Seed: 11})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	stations := map[[2]int]bool{}
	for _, st := range level.Stations {
		stations[[2]int{st.X, st.Y}] = true
	}
	for _, ob := range level.Obstacles {
		if stations[[2]int{ob.X, ob.Y}] {
			t.Errorf("Obstacle at (%d,%d) sits on a station", ob.X, ob.Y)
		}
		if ob.Type != "river" && ob.Type != "building" {
			t.Errorf("Unexpected obstacle type %q", ob.Type)
		}
	}
}

func TestGenerate_StationsStayConnected(t *testing.T) {
	for _, seed := range []int64{5, 17, 101} {
		opts := GenOptions{Name: "C", Width: 14, Height: 14, Stations: 6, Density: 0.4, Seed: seed}
		level, err := generate(opts)
		if err != nil {
			t.Fatalf("seed %d: generate failed: %v", seed, err)
		}

		if !allStationsConnected(opts, level.Stations, level.Obstacles) {
			t.Errorf("seed %d: generated level has a cut-off station", seed)
		}
	}
}

func TestGenerate_RejectsBadOptions(t *testing.T) {
	cases := []GenOptions{
		{Width: 3, Height: 10, Stations: 3, Density: 0.1, Seed: 1},
		{Width: 10, Height: 65, Stations: 3, Density: 0.1, Seed: 1},
		{Width: 10, Height: 10, Stations: 1, Density: 0.1, Seed: 1},
		{Width: 10, Height: 10, Stations: 99, Density: 0.1, Seed: 1},
		{Width: 10, Height: 10, Stations: 3, Density: 0.9, Seed: 1},
	}

	for i, opts := range cases {
		if _, err := generate(opts); err == nil {
			t.Errorf("case %d: expected error for %+v", i, opts)
		}
	}
}

func TestBuildCommand_Flags(t *testing.T) {
	cmd := buildCommand()

	if cmd.Name != "levelgen" {
		t.Errorf("Expected command name 'levelgen', got %q", cmd.Name)
	}

	want := []string{"name", "width", "height", "stations", "obstacle-density", "seed", "out"}
	got := map[string]bool{}
	for _, f := range cmd.Flags {
		for _, n := range f.Names() {
			got[n] = true
		}
	}
	for _, n := range want {
		if !got[n] {
			t.Errorf("Missing flag %q", n)
		}
	}
}
