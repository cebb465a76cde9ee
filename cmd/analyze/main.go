// Command analyze prints quick, human-readable heuristics about level files
// in the project's levels directory. It summarizes dimensions, obstacle
// density, station spread, and the cheapest possible track cost of the route
// request, and highlights stations with too few buildable neighbors.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// AnalysisLevel is a light struct for reading level files used by analysis.
type AnalysisLevel struct {
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	Width        int                `json:"width"`
	Height       int                `json:"height"`
	Stations     []AnalysisStation  `json:"stations"`
	Obstacles    []AnalysisObstacle `json:"obstacles"`
	RouteRequest []string           `json:"route_request"`
	Messages     map[string]string  `json:"messages"`
}

// AnalysisStation is a named grid cell the route request refers to.
type AnalysisStation struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// AnalysisObstacle is a cell that cannot carry track.
type AnalysisObstacle struct {
	Type string `json:"type"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// AnalysisPoint denotes a grid coordinate used during analysis output.
type AnalysisPoint struct {
	X, Y int
}

func main() {
	files, err := filepath.Glob(filepath.Join("levels", "*.json"))
	if err != nil || len(files) == 0 {
		fmt.Printf("No level files found: %v\n", err)
		return
	}

	for _, file := range files {
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(file))
		analyzeLevel(file)
	}
}

func analyzeLevel(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		return
	}

	var level AnalysisLevel
	if err := json.Unmarshal(data, &level); err != nil {
		fmt.Printf("Error parsing JSON: %v\n", err)
		return
	}

	fmt.Printf("Name: %s\n", level.Name)
	fmt.Printf("Grid Size: %d x %d\n", level.Width, level.Height)
	fmt.Printf("Stations: %d\n", len(level.Stations))
	fmt.Printf("Route Stops: %d\n", len(level.RouteRequest))

	totalCells := level.Width * level.Height
	if totalCells > 0 {
		density := float64(len(level.Obstacles)) / float64(totalCells) * 100
		fmt.Printf("Obstacles: %d (%.1f%% of grid)\n", len(level.Obstacles), density)
		if density > 30 {
			fmt.Printf("⚠️  WARNING: obstacle density above 30%%, routes may be hard to lay\n")
		}
	}

	byID := map[string]AnalysisPoint{}
	for _, st := range level.Stations {
		byID[st.ID] = AnalysisPoint{st.X, st.Y}
	}

	// Cheapest conceivable route cost: sum of Manhattan distances between
	// consecutive route stops, ignoring obstacles. Actual track layouts can
	// only cost more.
	minEdges := 0
	routeOK := true
	for i := 1; i < len(level.RouteRequest); i++ {
		from, okFrom := byID[level.RouteRequest[i-1]]
		to, okTo := byID[level.RouteRequest[i]]
		if !okFrom || !okTo {
			fmt.Printf("⚠️  WARNING: route references unknown station %q or %q\n", level.RouteRequest[i-1], level.RouteRequest[i])
			routeOK = false
			continue
		}
		minEdges += abs(from.X-to.X) + abs(from.Y-to.Y)
	}
	if routeOK && len(level.RouteRequest) > 1 {
		fmt.Printf("Minimum track edges for route (no obstacles): %d\n", minEdges)
	}

	obstacles := map[AnalysisPoint]bool{}
	for _, ob := range level.Obstacles {
		obstacles[AnalysisPoint{ob.X, ob.Y}] = true
	}

	// A station with a single buildable neighbor is a chokepoint; one with
	// none can never join a route at all.
	cramped := 0
	for _, st := range level.Stations {
		free := freeNeighbors(level, obstacles, AnalysisPoint{st.X, st.Y})
		switch {
		case free == 0:
			fmt.Printf("⚠️  CRITICAL: station %s at (%d,%d) has no buildable neighbors!\n", st.ID, st.X, st.Y)
			cramped++
		case free == 1:
			fmt.Printf("⚠️  WARNING: station %s at (%d,%d) has a single buildable neighbor\n", st.ID, st.X, st.Y)
			cramped++
		}
	}
	if cramped == 0 {
		fmt.Printf("✅ All stations have at least two buildable neighbors\n")
	}
}

// freeNeighbors counts the 4-directional neighbors of p that are in bounds
// and not blocked by an obstacle.
func freeNeighbors(level AnalysisLevel, obstacles map[AnalysisPoint]bool, p AnalysisPoint) int {
	free := 0
	for _, d := range []AnalysisPoint{{0, -1}, {0, 1}, {-1, 0}, {1, 0}} {
		n := AnalysisPoint{p.X + d.X, p.Y + d.Y}
		if n.X < 0 || n.X >= level.Width || n.Y < 0 || n.Y >= level.Height {
			continue
		}
		if obstacles[n] {
			continue
		}
		free++
	}
	return free
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
