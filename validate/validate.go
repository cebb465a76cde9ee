// Command validate provides a small CLI that validates level JSON files in
// the ../levels directory. It checks:
//   - JSON structure and required fields
//   - Grid dimensions within the supported range (4 to 64)
//   - Station IDs are unique and every station sits inside the grid
//   - Obstacles are in bounds and never share a cell with a station
//   - The route request references known stations and has 2 to 32 stops
//   - Required message keys (blocked must embed two %s placeholders)
//   - Connectivity: all stations sit in one buildable region, so no route
//     request is doomed by obstacles alone
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	minGridSize   = 4
	maxGridSize   = 64
	minStations   = 2
	maxRouteStops = 32
)

// Level mirrors the JSON schema for a level definition.
type Level struct {
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Width        int               `json:"width"`
	Height       int               `json:"height"`
	Stations     []Station         `json:"stations"`
	Obstacles    []Obstacle        `json:"obstacles"`
	RouteRequest []string          `json:"route_request"`
	Messages     map[string]string `json:"messages"`
}

// Station is a named cell the route request refers to by ID.
type Station struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// Obstacle blocks a cell from carrying track.
type Obstacle struct {
	Type string `json:"type"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateLevel loads and validates a single level JSON file. It performs
// structural checks, station/obstacle placement validation, route and message
// presence, and a reachability analysis over buildable cells.
func validateLevel(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var level Level
	if err := json.Unmarshal(data, &level); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if level.Name == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "Missing required field: name")
	}
	if level.Description == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "Missing required field: description")
	}

	if level.Width < minGridSize || level.Width > maxGridSize {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Width %d outside allowed range %d-%d", level.Width, minGridSize, maxGridSize))
	}
	if level.Height < minGridSize || level.Height > maxGridSize {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Height %d outside allowed range %d-%d", level.Height, minGridSize, maxGridSize))
	}
	if !result.Valid {
		return result
	}

	inBounds := func(x, y int) bool {
		return x >= 0 && x < level.Width && y >= 0 && y < level.Height
	}

	if len(level.Stations) < minStations {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Need at least %d stations, found %d", minStations, len(level.Stations)))
	}

	seenIDs := map[string]bool{}
	stationCells := map[string]string{}
	for _, st := range level.Stations {
		if st.ID == "" {
			result.Valid = false
			result.Errors = append(result.Errors, "Station with empty ID")
			continue
		}
		if seenIDs[st.ID] {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Duplicate station ID: %s", st.ID))
		}
		seenIDs[st.ID] = true
		if !inBounds(st.X, st.Y) {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Station %s at (%d,%d) is outside the grid", st.ID, st.X, st.Y))
			continue
		}
		key := fmt.Sprintf("%d,%d", st.X, st.Y)
		if other, ok := stationCells[key]; ok {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Stations %s and %s share cell (%d,%d)", other, st.ID, st.X, st.Y))
		}
		stationCells[key] = st.ID
	}

	obstacleCells := map[string]bool{}
	for _, ob := range level.Obstacles {
		if !inBounds(ob.X, ob.Y) {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Obstacle at (%d,%d) is outside the grid", ob.X, ob.Y))
			continue
		}
		key := fmt.Sprintf("%d,%d", ob.X, ob.Y)
		if id, ok := stationCells[key]; ok {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Obstacle at (%d,%d) sits on station %s", ob.X, ob.Y, id))
		}
		obstacleCells[key] = true
	}

	if len(level.RouteRequest) < 2 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Route request needs at least 2 stops, found %d", len(level.RouteRequest)))
	}
	if len(level.RouteRequest) > maxRouteStops {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Route request has %d stops, maximum is %d", len(level.RouteRequest), maxRouteStops))
	}
	for _, id := range level.RouteRequest {
		if !seenIDs[id] {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Route request references unknown station: %s", id))
		}
	}

	requiredMessages := []string{"welcome", "blocked", "completed", "collision"}
	for _, msg := range requiredMessages {
		if _, ok := level.Messages[msg]; !ok {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Missing required message: %s", msg))
		}
	}
	if blocked, ok := level.Messages["blocked"]; ok && strings.Count(blocked, "%s") != 2 {
		result.Valid = false
		result.Errors = append(result.Errors, "Message 'blocked' must contain exactly two %s placeholders")
	}

	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Grid: %dx%d", level.Width, level.Height))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Stations: %d, Obstacles: %d", len(level.Stations), len(level.Obstacles)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Route: %s", strings.Join(level.RouteRequest, " -> ")))
		result = validateConnectivity(level, obstacleCells, result)
	}

	return result
}

// validateConnectivity flood-fills from the first station over buildable
// (non-obstacle) cells with 4-directional movement and reports any station
// that cannot be reached. An unreachable station means no track layout can
// ever satisfy a route request that visits it.
func validateConnectivity(level Level, obstacles map[string]bool, result ValidationResult) ValidationResult {
	if len(level.Stations) == 0 {
		return result
	}

	start := level.Stations[0]
	visited := map[string]bool{}
	queue := [][2]int{{start.X, start.Y}}
	visited[fmt.Sprintf("%d,%d", start.X, start.Y)] = true

	for len(queue) > 0 {
		cell := queue[0]
		queue = queue[1:]
		x, y := cell[0], cell[1]

		for _, d := range [][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}} {
			nx, ny := x+d[0], y+d[1]
			if nx < 0 || nx >= level.Width || ny < 0 || ny >= level.Height {
				continue
			}
			key := fmt.Sprintf("%d,%d", nx, ny)
			if visited[key] || obstacles[key] {
				continue
			}
			visited[key] = true
			queue = append(queue, [2]int{nx, ny})
		}
	}

	unreachable := []string{}
	for _, st := range level.Stations[1:] {
		if !visited[fmt.Sprintf("%d,%d", st.X, st.Y)] {
			unreachable = append(unreachable, fmt.Sprintf("Station %s at (%d,%d)", st.ID, st.X, st.Y))
		}
	}

	if len(unreachable) > 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Connectivity failure: %d/%d stations cut off by obstacles", len(unreachable), len(level.Stations)-1))
		for _, st := range unreachable {
			result.Errors = append(result.Errors, fmt.Sprintf("Unreachable: %s", st))
		}
	} else {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Connectivity: All %d stations share one buildable region", len(level.Stations)))
	}

	return result
}

// main scans ../levels for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	levelsDir := "../levels"
	files, err := filepath.Glob(filepath.Join(levelsDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding level files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateLevel(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All levels are valid!")
	} else {
		fmt.Println("❌ Some levels have errors")
		os.Exit(1)
	}
}
