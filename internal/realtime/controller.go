// Package realtime drives debounced recalculation for an interactive
// form. Every input change restarts a single debounce timer; only the
// most recent input set is ever computed, and a calculation that loses
// the race to a newer input commits nothing.
package realtime

import (
	"context"
	"sync"
	"time"

	"github.com/kmoss/sprout/internal/dosage"
	"github.com/kmoss/sprout/internal/estimator"
	"github.com/kmoss/sprout/internal/logging"
)

// DefaultDebounce is the delay between the last input change and the
// recalculation it triggers.
const DefaultDebounce = 300 * time.Millisecond

// State is the controller's position in its input/recompute cycle.
type State int

const (
	// Idle means no input has arrived yet.
	Idle State = iota
	// PendingDebounce means an input arrived and the timer is armed.
	PendingDebounce
	// Calculating means the timer fired and computation is in flight.
	Calculating
	// Succeeded means the latest calculation completed.
	Succeeded
	// Failed means the latest calculation returned an error.
	Failed
)

// String returns the human-readable label for a State.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case PendingDebounce:
		return "pending-debounce"
	case Calculating:
		return "calculating"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Snapshot is a point-in-time view of the controller for rendering.
// Result is the last successful calculation and survives both a new
// input arriving and a subsequent failure, so the UI never flashes an
// empty state during recomputation.
type Snapshot struct {
	State  State
	Result *estimator.Result
	Err    string
}

// Calculator runs one calculation. *estimator.Engine satisfies this.
type Calculator interface {
	Calculate(ctx context.Context, in dosage.Inputs) (*estimator.Result, error)
}

// Controller owns the debounce timer and the settled result state for
// one form instance. Instances are independent; no state is shared
// between controllers.
type Controller struct {
	calc     Calculator
	debounce time.Duration
	ctx      context.Context
	onChange func(Snapshot)

	mu         sync.Mutex
	timer      *time.Timer
	generation uint64
	state      State
	pending    dosage.Inputs
	result     *estimator.Result
	lastErr    string
	closed     bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithDebounce overrides the debounce window. Zero or negative durations
// fire on the next timer tick, which tests use to make collapsing
// observable without long sleeps.
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) { c.debounce = d }
}

// WithOnChange registers a callback invoked after every state
// transition, outside the controller's lock.
func WithOnChange(fn func(Snapshot)) Option {
	return func(c *Controller) { c.onChange = fn }
}

// New creates a Controller that computes with calc. ctx carries the
// logger and flows into every calculation.
func New(ctx context.Context, calc Calculator, opts ...Option) *Controller {
	c := &Controller{
		calc:     calc,
		debounce: DefaultDebounce,
		ctx:      ctx,
		state:    Idle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetInputs records a new input value set and (re)arms the debounce
// timer. A pending calculation for older inputs is abandoned: its timer
// is stopped, and if it already fired, its commit is rejected by the
// generation check. Calls after Close are ignored.
func (c *Controller) SetInputs(in dosage.Inputs) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	c.pending = in
	c.generation++
	gen := c.generation
	c.state = PendingDebounce

	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, func() {
		c.fire(gen)
	})
	c.mu.Unlock()

	c.notify()
}

// fire runs the calculation armed for generation gen. Stale generations
// and closed controllers return without touching state.
func (c *Controller) fire(gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.generation {
		c.mu.Unlock()
		return
	}
	in := c.pending
	c.state = Calculating
	c.mu.Unlock()

	c.notify()

	result, err := c.calc.Calculate(c.ctx, in)

	c.mu.Lock()
	if c.closed || gen != c.generation {
		// A newer input arrived while computing; discard this result.
		c.mu.Unlock()
		return
	}
	if err != nil {
		c.state = Failed
		c.lastErr = err.Error()
		logging.FromContext(c.ctx).Warn().
			Str("component", "realtime").
			Err(err).
			Msg("recalculation failed")
	} else {
		c.state = Succeeded
		c.result = result
		c.lastErr = ""
	}
	c.mu.Unlock()

	c.notify()
}

// Snapshot returns the current state, last successful result, and last
// error message.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{State: c.state, Result: c.result, Err: c.lastErr}
}

// Close cancels any pending timer and bars all future transitions. A
// timer callback that already started cannot commit after Close; this is
// a cancellation contract, not best-effort cleanup.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.generation++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) notify() {
	if c.onChange == nil {
		return
	}
	c.onChange(c.Snapshot())
}
