package sim

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ffrraannccoo/Tejedor-de-subtes/game/engine"
)

// DefaultTickInterval is the cadence between train position emissions
const DefaultTickInterval = 120 * time.Millisecond

// ErrSimulationActive is returned by Start while a previous run is still
// resolving or animating
var ErrSimulationActive = errors.New("a simulation is already running")

// State identifies where the driver is in its run lifecycle
type State string

const (
	StateIdle      State = "idle"
	StateResolving State = "resolving"
	StateAnimating State = "animating"
	StateCompleted State = "completed"
	StateBlocked   State = "blocked"
)

// Listener receives the events of a simulation run. Callbacks are invoked
// from the driver's goroutine; implementations must not block for long.
type Listener interface {
	OnPosition(runID string, pos engine.Coord, step, total int)
	OnBlocked(runID string, from, to engine.Station)
	OnCompleted(runID string)
}

// Driver walks a resolved route path at a fixed cadence, emitting one
// train position per path cell. It is a small state machine:
//
//	Idle -> Resolving -> Animating -> Completed
//	                 \-> Blocked
//
// Completed and Blocked are terminal; a fresh Start re-enters Resolving.
// Cancellation is cooperative: the animating goroutine checks its context
// at every tick and stops emitting once it is cancelled.
type Driver struct {
	mu       sync.Mutex
	state    State
	runID    string
	interval time.Duration
	cancel   context.CancelFunc
	listener Listener
}

// NewDriver creates a driver delivering events to listener. A non-positive
// interval selects DefaultTickInterval.
func NewDriver(listener Listener, interval time.Duration) *Driver {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Driver{
		state:    StateIdle,
		interval: interval,
		listener: listener,
	}
}

// State returns the driver's current state
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// RunID returns the identifier of the latest run, or "" before the first
// Start
func (d *Driver) RunID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.runID
}

// Active reports whether a run is currently resolving or animating
func (d *Driver) Active() bool {
	s := d.State()
	return s == StateResolving || s == StateAnimating
}

// Start resolves the level's requested route and, on success, begins
// animating the train in a background goroutine. The returned run ID tags
// every event of this run.
//
// Resolution happens synchronously: if the route is blocked the driver
// transitions to Blocked, notifies the listener, and returns the
// *engine.UnreachableError. While a previous run is still active, Start
// fails with ErrSimulationActive.
func (d *Driver) Start(ctx context.Context, eng *engine.LevelEngine) (string, error) {
	d.mu.Lock()
	if d.state == StateResolving || d.state == StateAnimating {
		d.mu.Unlock()
		return "", ErrSimulationActive
	}
	runID := uuid.NewString()
	d.runID = runID
	d.state = StateResolving
	d.mu.Unlock()

	path, err := eng.ResolveRoute()
	if err != nil {
		d.mu.Lock()
		d.state = StateBlocked
		d.mu.Unlock()

		var unreachable *engine.UnreachableError
		if errors.As(err, &unreachable) {
			from := stationForCell(eng, unreachable.From)
			to := stationForCell(eng, unreachable.To)
			d.listener.OnBlocked(runID, from, to)
		}
		return runID, err
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.mu.Lock()
	d.state = StateAnimating
	d.cancel = cancel
	d.mu.Unlock()

	go d.animate(runCtx, runID, path)
	return runID, nil
}

// Cancel abandons an in-progress run. The animating goroutine observes the
// cancellation at its next tick and emits nothing further, including the
// completion callback. Cancelling an idle or finished driver is a no-op.
func (d *Driver) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	if d.state == StateResolving || d.state == StateAnimating {
		d.state = StateIdle
	}
}

func (d *Driver) animate(ctx context.Context, runID string, path []engine.Coord) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	// abort returns the driver to Idle when this run was abandoned before
	// finishing, so a fresh Start is possible afterwards
	abort := func() {
		d.mu.Lock()
		if d.state == StateAnimating && d.runID == runID {
			d.state = StateIdle
			d.cancel = nil
		}
		d.mu.Unlock()
	}

	for i, pos := range path {
		if i > 0 {
			select {
			case <-ctx.Done():
				abort()
				return
			case <-ticker.C:
			}
		}
		if ctx.Err() != nil {
			abort()
			return
		}
		d.listener.OnPosition(runID, pos, i+1, len(path))
	}

	if ctx.Err() != nil {
		abort()
		return
	}

	d.mu.Lock()
	if d.state == StateAnimating {
		d.state = StateCompleted
		d.cancel = nil
	}
	d.mu.Unlock()

	d.listener.OnCompleted(runID)
}

// stationForCell maps a waypoint cell back to its station for blocked
// reporting. Waypoints always sit on stations, but fall back to a
// coordinate name rather than panic on a contract violation.
func stationForCell(eng *engine.LevelEngine, c engine.Coord) engine.Station {
	if s, ok := eng.StationAt(c); ok {
		return s
	}
	return engine.Station{Name: fmt.Sprintf("(%d,%d)", c.X, c.Y), X: c.X, Y: c.Y}
}
