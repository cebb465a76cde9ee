package engine

// Color labels a drawn track edge with the line color the player used
type Color string

const (
	ColorRed    Color = "red"
	ColorBlue   Color = "blue"
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"

	// Validation constants
	MinGridSize   = 4
	MaxGridSize   = 64
	MinStations   = 2
	MaxRouteStops = 32
)

// Coord identifies a single grid cell by its integer coordinates.
// It is a value type so it can be used directly as a map key.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Less reports whether c orders before other, comparing X then Y.
// Used to canonicalize unordered cell pairs.
func (c Coord) Less(other Coord) bool {
	if c.X != other.X {
		return c.X < other.X
	}
	return c.Y < other.Y
}

// Station is a level-defined stop the train must be able to reach
type Station struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// Coord returns the station's grid cell
func (s Station) Coord() Coord {
	return Coord{X: s.X, Y: s.Y}
}

// Obstacle is an impassable level-defined cell. Track edges may never
// touch an obstacle cell.
type Obstacle struct {
	Type string `json:"type"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// Coord returns the obstacle's grid cell
func (o Obstacle) Coord() Coord {
	return Coord{X: o.X, Y: o.Y}
}

// LevelMessages holds the user-facing strings for a level
type LevelMessages struct {
	Welcome   string `json:"welcome"`
	Departing string `json:"departing"`
	Blocked   string `json:"blocked"`
	Completed string `json:"completed"`
	Collision string `json:"collision"`
}

// LevelConfig represents a level definition loaded from JSON
type LevelConfig struct {
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Width        int           `json:"width"`
	Height       int           `json:"height"`
	Stations     []Station     `json:"stations"`
	Obstacles    []Obstacle    `json:"obstacles"`
	RouteRequest []string      `json:"route_request"`
	Messages     LevelMessages `json:"messages"`
}

// TrackEdge is one undirected edge of the track graph in canonical order
// (A orders before B)
type TrackEdge struct {
	A     Coord `json:"a"`
	B     Coord `json:"b"`
	Color Color `json:"color"`
}

// EditHistoryEntry records a single player edit command
type EditHistoryEntry struct {
	Action     string `json:"action"` // "connect", "disconnect" or "clear"
	A          Coord  `json:"a"`
	B          Coord  `json:"b"`
	Color      Color  `json:"color,omitempty"`
	Success    bool   `json:"success"`
	Timestamp  int64  `json:"timestamp"`
	EditNumber int    `json:"edit_number"`
}

// LevelState is a snapshot of a level session consumed by the API,
// websocket and persistence layers
type LevelState struct {
	LevelName    string      `json:"level_name"`
	Width        int         `json:"width"`
	Height       int         `json:"height"`
	Stations     []Station   `json:"stations"`
	Obstacles    []Obstacle  `json:"obstacles"`
	RouteRequest []string    `json:"route_request"`
	Edges        []TrackEdge `json:"edges"`
	EdgeCount    int         `json:"edge_count"`
	TotalEdits   int         `json:"total_edits"`
	Message      string      `json:"message"`
}
