package timeline

import (
	"sync"
	"time"

	"github.com/hammamikhairi/gitakids/internal/logger"
)

// State is the lifecycle position of a Controller.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
)

// String returns a human-readable state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Option configures a Controller.
type Option func(*Controller)

// WithAutoStart starts the first run as soon as the controller is built.
func WithAutoStart() Option {
	return func(c *Controller) {
		c.autoStart = true
	}
}

// WithClock replaces the system clock.
func WithClock(clock Clock) Option {
	return func(c *Controller) {
		c.clock = clock
	}
}

// WithLogger sets the logger used for phase diagnostics.
func WithLogger(log *logger.Logger) Option {
	return func(c *Controller) {
		c.log = log
	}
}

// WithPhaseHook registers a function called on the ticking goroutine each
// time a phase begins.
func WithPhaseHook(fn func(index int, name string)) Option {
	return func(c *Controller) {
		c.phaseHook = fn
	}
}

// Controller replays a fixed list of phases and reports completion once per
// run. It does no work on its own: the host calls Tick from its frame loop.
// All methods are safe for concurrent use; callbacks run outside the lock on
// the goroutine that called Tick.
type Controller struct {
	phases     []Phase
	starts     []time.Duration // phase start offsets from run start
	durations  []time.Duration
	initial    Values
	onComplete func()
	clock      Clock
	log        *logger.Logger
	phaseHook  func(int, string)
	autoStart  bool

	mu         sync.Mutex
	state      State
	values     Values
	phase      int  // phase in progress; len(phases) once all have settled
	entered    bool // phase has begun (its gap is over)
	runStart   time.Time
	generation uint64
}

// New validates the phases and builds a controller. Invalid configuration
// returns an error wrapping domain.ErrInvalidConfiguration and nothing is
// started.
func New(phases []Phase, onComplete func(), opts ...Option) (*Controller, error) {
	checked, err := validatePhases(phases)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		phases:     checked,
		starts:     make([]time.Duration, len(checked)),
		durations:  make([]time.Duration, len(checked)),
		initial:    Values{},
		onComplete: onComplete,
		clock:      SystemClock{},
		log:        logger.New(logger.LevelOff, nil),
	}
	for _, opt := range opts {
		opt(c)
	}

	var offset time.Duration
	for i, p := range checked {
		offset += p.Gap
		c.starts[i] = offset
		c.durations[i] = p.Duration()
		offset += c.durations[i]

		for _, t := range p.Tracks {
			if _, seen := c.initial[t.Property]; !seen {
				c.initial[t.Property] = t.From
			}
		}
	}
	c.values = c.initial.clone()

	if c.autoStart {
		c.Start()
	}
	return c, nil
}

// Start begins a run. It is a no-op while a run is in progress; from idle or
// completed it resets every property and replays from phase 0.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateRunning {
		return
	}
	c.values = c.initial.clone()
	c.phase = 0
	c.entered = false
	c.runStart = c.clock.Now()
	c.generation++
	c.state = StateRunning
	c.log.Debug("timeline run %d started (%d phases, %s)", c.generation, len(c.phases), c.totalLocked())
}

// Tick samples the clock and advances the run. On the tick that settles the
// final phase it invokes the completion callback. It reports whether the
// controller wants further ticks.
func (c *Controller) Tick() bool {
	c.mu.Lock()
	if c.state != StateRunning {
		c.mu.Unlock()
		return false
	}
	done, entered := c.advanceLocked(c.clock.Now())
	if done {
		c.state = StateCompleted
		c.log.Debug("timeline run %d completed", c.generation)
	}
	hook := c.phaseHook
	onComplete := c.onComplete
	c.mu.Unlock()

	if hook != nil {
		for _, i := range entered {
			hook(i, c.phases[i].Name)
		}
	}
	if done && onComplete != nil {
		onComplete()
	}
	return !done
}

// Cancel stops the run. Values are sampled one last time and then stay
// frozen; the completion callback is not invoked for this run.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateRunning {
		return
	}
	c.advanceLocked(c.clock.Now())
	c.state = StateIdle
	c.log.Debug("timeline run %d canceled in phase %d", c.generation, c.phase)
}

// Values returns a snapshot of every property. Before the first run each
// property holds the From of the first track that animates it.
func (c *Controller) Values() Values {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values.clone()
}

// State returns the lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Generation increments with every run. Hosts tag scheduled frames with it
// and drop frames that belong to an earlier run.
func (c *Controller) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// Phase returns the index and name of the phase in progress, or of the last
// phase once the run has finished.
func (c *Controller) Phase() (int, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.phase
	if i >= len(c.phases) {
		i = len(c.phases) - 1
	}
	return i, c.phases[i].Name
}

// Duration is the total length of one run.
func (c *Controller) Duration() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalLocked()
}

func (c *Controller) totalLocked() time.Duration {
	last := len(c.phases) - 1
	return c.starts[last] + c.durations[last]
}

// advanceLocked brings the values up to date for the given instant. One call
// may settle several phases when ticks are sparse. It returns whether the
// final phase has settled and which phases began during the call.
func (c *Controller) advanceLocked(now time.Time) (bool, []int) {
	elapsed := now.Sub(c.runStart)
	if elapsed < 0 {
		elapsed = 0
	}

	var entered []int
	for c.phase < len(c.phases) {
		start := c.starts[c.phase]
		if elapsed < start {
			return false, entered
		}
		if !c.entered {
			c.entered = true
			entered = append(entered, c.phase)
			c.log.Debug("timeline phase %d (%s) started at %s", c.phase, c.phases[c.phase].Name, start)
		}

		local := elapsed - start
		for _, t := range c.phases[c.phase].Tracks {
			c.values[t.Property] = t.valueAt(local)
		}
		if local < c.durations[c.phase] {
			return false, entered
		}
		c.phase++
		c.entered = false
	}
	return true, entered
}
