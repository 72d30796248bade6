package timeline

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/hammamikhairi/gitakids/internal/domain"
	"github.com/hammamikhairi/gitakids/internal/logger"
)

// manualClock is a Clock the test moves by hand.
type manualClock struct {
	mu   sync.Mutex
	base time.Time
	now  time.Time
}

func newManualClock() *manualClock {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &manualClock{base: base, now: base}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// at moves the clock to ms milliseconds after its base.
func (c *manualClock) at(ms int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.base.Add(time.Duration(ms) * time.Millisecond)
}

// completionCounter counts completion callbacks.
type completionCounter struct {
	mu sync.Mutex
	n  int
}

func (c *completionCounter) fn() func() {
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.n++
	}
}

func (c *completionCounter) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

// twoPhase is the opacity-then-scale timeline used across these tests.
func twoPhase(easing Easing) []Phase {
	return []Phase{
		{
			Name: "fade",
			Tracks: []Track{
				{Property: "opacity", From: Scalar(0), To: Scalar(1), Duration: 100 * time.Millisecond, Easing: easing},
			},
		},
		{
			Name: "grow",
			Gap:  50 * time.Millisecond,
			Tracks: []Track{
				{Property: "scale", From: Scalar(0.5), To: Scalar(1), Duration: 100 * time.Millisecond},
			},
		},
	}
}

func setupController(t *testing.T, phases []Phase, opts ...Option) (*Controller, *manualClock, *completionCounter) {
	t.Helper()
	clock := newManualClock()
	done := &completionCounter{}
	opts = append([]Option{WithClock(clock), WithLogger(logger.New(logger.LevelOff, nil))}, opts...)
	c, err := New(phases, done.fn(), opts...)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return c, clock, done
}

func TestTwoPhaseScenario(t *testing.T) {
	c, clock, done := setupController(t, twoPhase(Linear))

	clock.at(0)
	c.Start()
	if done.count() != 0 {
		t.Fatal("completion fired inside Start")
	}

	steps := []struct {
		ms      int
		opacity float64
		scale   float64
		running bool
	}{
		{0, 0, 0.5, true},
		{100, 1, 0.5, true},
		{150, 1, 0.5, true},
		{200, 1, 0.75, true},
		{250, 1, 1, false},
	}

	for _, s := range steps {
		clock.at(s.ms)
		running := c.Tick()
		v := c.Values()
		if !approx(v.Scalar("opacity"), s.opacity) || !approx(v.Scalar("scale"), s.scale) {
			t.Fatalf("t=%d: opacity=%v scale=%v, want %v %v", s.ms, v.Scalar("opacity"), v.Scalar("scale"), s.opacity, s.scale)
		}
		if running != s.running {
			t.Fatalf("t=%d: Tick returned %v, want %v", s.ms, running, s.running)
		}
	}

	if done.count() != 1 {
		t.Fatalf("expected one completion, got %d", done.count())
	}
	if c.State() != StateCompleted {
		t.Fatalf("expected completed, got %s", c.State())
	}
}

func TestPhaseBoundaries(t *testing.T) {
	c, clock, _ := setupController(t, twoPhase(EaseInOut))
	clock.at(0)
	c.Start()

	// Second phase starts at 100ms (fade) + 50ms gap.
	clock.at(149)
	c.Tick()
	v := c.Values()
	if !approx(v.Scalar("opacity"), 1) {
		t.Fatalf("before phase 1: opacity=%v, want 1", v.Scalar("opacity"))
	}
	if !approx(v.Scalar("scale"), 0.5) {
		t.Fatalf("before phase 1: scale=%v, want 0.5", v.Scalar("scale"))
	}
	if i, name := c.Phase(); i != 1 || name != "grow" {
		t.Fatalf("expected to be waiting on phase 1, got %d (%s)", i, name)
	}

	clock.at(150)
	c.Tick()
	if got := c.Values().Scalar("scale"); !approx(got, 0.5) {
		t.Fatalf("at phase 1 start: scale=%v, want its from value 0.5", got)
	}
}

func TestCompletionFiresOncePerRun(t *testing.T) {
	c, clock, done := setupController(t, twoPhase(Linear))
	clock.at(0)
	c.Start()

	for ms := 0; ms <= 1000; ms += 16 {
		clock.at(ms)
		c.Tick()
	}
	if done.count() != 1 {
		t.Fatalf("expected exactly one completion, got %d", done.count())
	}
}

func TestCancelFreezesValues(t *testing.T) {
	c, clock, done := setupController(t, twoPhase(EaseOut))
	clock.at(0)
	c.Start()

	clock.at(60)
	c.Tick()
	c.Cancel()

	want := EaseOut(0.6)
	got := c.Values().Scalar("opacity")
	if !approx(got, want) {
		t.Fatalf("opacity after cancel = %v, want %v", got, want)
	}
	if got == 0 || got == 1 {
		t.Fatalf("opacity should be mid-flight, got %v", got)
	}

	clock.at(500)
	if c.Tick() {
		t.Fatal("Tick after cancel asked for more frames")
	}
	if again := c.Values().Scalar("opacity"); again != got {
		t.Fatalf("value moved after cancel: %v -> %v", got, again)
	}
	if done.count() != 0 {
		t.Fatalf("completion fired after cancel: %d", done.count())
	}
	if c.State() != StateIdle {
		t.Fatalf("expected idle after cancel, got %s", c.State())
	}
}

func TestCancelSamplesCurrentInstant(t *testing.T) {
	c, clock, _ := setupController(t, twoPhase(Linear))
	clock.at(0)
	c.Start()

	clock.at(60)
	c.Cancel()
	if got := c.Values().Scalar("opacity"); !approx(got, 0.6) {
		t.Fatalf("opacity = %v, want 0.6", got)
	}
}

func TestRestartAfterCompletion(t *testing.T) {
	c, clock, done := setupController(t, twoPhase(Linear))
	clock.at(0)
	c.Start()
	clock.at(300)
	c.Tick()
	if done.count() != 1 {
		t.Fatalf("first run: expected one completion, got %d", done.count())
	}
	firstGen := c.Generation()

	clock.at(1000)
	c.Start()
	if c.Generation() != firstGen+1 {
		t.Fatalf("generation did not advance: %d -> %d", firstGen, c.Generation())
	}
	v := c.Values()
	if !approx(v.Scalar("opacity"), 0) || !approx(v.Scalar("scale"), 0.5) {
		t.Fatalf("restart did not reset values: %+v", v)
	}

	clock.at(1050)
	c.Tick()
	if got := c.Values().Scalar("opacity"); !approx(got, 0.5) {
		t.Fatalf("second run at 50ms: opacity=%v, want 0.5", got)
	}

	clock.at(1250)
	c.Tick()
	if done.count() != 2 {
		t.Fatalf("second run: expected two completions total, got %d", done.count())
	}
}

func TestRestartAfterCancel(t *testing.T) {
	c, clock, done := setupController(t, twoPhase(Linear))
	clock.at(0)
	c.Start()
	clock.at(40)
	c.Cancel()

	clock.at(100)
	c.Start()
	if got := c.Values().Scalar("opacity"); got != 0 {
		t.Fatalf("restart after cancel should reset opacity, got %v", got)
	}
	clock.at(350)
	c.Tick()
	if done.count() != 1 {
		t.Fatalf("expected one completion, got %d", done.count())
	}
}

func TestStartWhileRunningIsNoop(t *testing.T) {
	c, clock, _ := setupController(t, twoPhase(Linear))
	clock.at(0)
	c.Start()
	gen := c.Generation()

	clock.at(50)
	c.Tick()
	c.Start()
	if c.Generation() != gen {
		t.Fatal("second Start began a new run")
	}

	clock.at(75)
	c.Tick()
	if got := c.Values().Scalar("opacity"); !approx(got, 0.75) {
		t.Fatalf("opacity = %v, want 0.75 (run must not restart)", got)
	}
}

func TestValuesBeforeStart(t *testing.T) {
	c, _, _ := setupController(t, twoPhase(Linear))

	want := Values{"opacity": Scalar(0), "scale": Scalar(0.5)}
	if diff := cmp.Diff(want, c.Values()); diff != "" {
		t.Fatalf("initial values mismatch (-want +got):\n%s", diff)
	}
	if c.Tick() {
		t.Fatal("Tick before Start asked for frames")
	}
	if c.State() != StateIdle {
		t.Fatalf("expected idle, got %s", c.State())
	}
}

func TestValuesSnapshotIsDetached(t *testing.T) {
	c, _, _ := setupController(t, twoPhase(Linear))
	snap := c.Values()
	snap["opacity"] = Scalar(42)
	if c.Values().Scalar("opacity") != 0 {
		t.Fatal("mutating a snapshot changed the controller")
	}
}

func TestAutoStart(t *testing.T) {
	c, clock, done := setupController(t, twoPhase(Linear), WithAutoStart())
	if c.State() != StateRunning {
		t.Fatalf("expected running, got %s", c.State())
	}
	if done.count() != 0 {
		t.Fatal("completion fired during construction")
	}
	clock.at(250)
	c.Tick()
	if done.count() != 1 {
		t.Fatalf("expected completion, got %d", done.count())
	}
}

func TestSparseTickSettlesEveryPhase(t *testing.T) {
	var mu sync.Mutex
	var seen []string
	hook := func(i int, name string) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, name)
	}
	phases := append(twoPhase(Linear), Phase{Name: "rest", Gap: 20 * time.Millisecond})
	c, clock, done := setupController(t, phases, WithPhaseHook(hook))

	clock.at(0)
	c.Start()
	clock.at(10_000)
	if c.Tick() {
		t.Fatal("expected the run to finish in one tick")
	}

	if diff := cmp.Diff([]string{"fade", "grow", "rest"}, seen); diff != "" {
		t.Fatalf("phase hook order (-want +got):\n%s", diff)
	}
	v := c.Values()
	if !approx(v.Scalar("opacity"), 1) || !approx(v.Scalar("scale"), 1) {
		t.Fatalf("values not settled: %+v", v)
	}
	if done.count() != 1 {
		t.Fatalf("expected one completion, got %d", done.count())
	}
}

func TestDelayedTrackAndVectors(t *testing.T) {
	phases := []Phase{{
		Name: "slide",
		Tracks: []Track{
			{Property: "pos", From: Vec(0, 10), To: Vec(20, 0), Duration: 100 * time.Millisecond, Delay: 50 * time.Millisecond},
			{Property: "fade", From: Scalar(1), To: Scalar(0), Duration: 40 * time.Millisecond},
		},
	}}
	c, clock, done := setupController(t, phases)
	if got := c.Duration(); got != 150*time.Millisecond {
		t.Fatalf("duration = %s, want 150ms", got)
	}

	clock.at(0)
	c.Start()

	clock.at(49)
	c.Tick()
	if x, y := c.Values().Vector("pos"); x != 0 || y != 10 {
		t.Fatalf("pos during delay = (%v,%v), want (0,10)", x, y)
	}
	if got := c.Values().Scalar("fade"); got != 0 {
		t.Fatalf("fade should have settled at 40ms, got %v", got)
	}

	clock.at(100)
	c.Tick()
	if x, y := c.Values().Vector("pos"); !approx(x, 10) || !approx(y, 5) {
		t.Fatalf("pos halfway = (%v,%v), want (10,5)", x, y)
	}
	if done.count() != 0 {
		t.Fatal("phase completed before its slowest track")
	}

	clock.at(150)
	c.Tick()
	if done.count() != 1 {
		t.Fatal("expected completion once the delayed track settled")
	}
}

func TestEmptyPhaseIsPureDelay(t *testing.T) {
	phases := []Phase{
		{Name: "wait", Gap: 80 * time.Millisecond},
		{Name: "pop", Tracks: []Track{{Property: "scale", From: Scalar(0), To: Scalar(1), Duration: 0}}},
	}
	c, clock, done := setupController(t, phases)
	clock.at(0)
	c.Start()

	clock.at(79)
	c.Tick()
	if c.Values().Scalar("scale") != 0 || done.count() != 0 {
		t.Fatal("pure delay ended early")
	}

	clock.at(80)
	c.Tick()
	if c.Values().Scalar("scale") != 1 || done.count() != 1 {
		t.Fatalf("expected instant pop and completion at 80ms, scale=%v done=%d", c.Values().Scalar("scale"), done.count())
	}
}

func TestNewRejectsInvalidConfiguration(t *testing.T) {
	ok := Track{Property: "x", From: Scalar(0), To: Scalar(1), Duration: time.Millisecond}

	tests := []struct {
		name   string
		phases []Phase
	}{
		{"no phases", nil},
		{"negative duration", []Phase{{Tracks: []Track{{Property: "x", Duration: -time.Millisecond}}}}},
		{"negative delay", []Phase{{Tracks: []Track{{Property: "x", Delay: -time.Millisecond}}}}},
		{"negative gap", []Phase{{Gap: -time.Millisecond, Tracks: []Track{ok}}}},
		{"empty property", []Phase{{Tracks: []Track{{Property: " "}}}}},
		{"NaN bound", []Phase{{Tracks: []Track{{Property: "x", From: Scalar(math.NaN())}}}}},
		{"infinite bound", []Phase{{Tracks: []Track{{Property: "x", To: Vec(0, math.Inf(1))}}}}},
		{"bad later phase", []Phase{{Tracks: []Track{ok}}, {Tracks: []Track{{Property: "y", Duration: -1}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			c, err := New(tt.phases, func() { called = true }, WithAutoStart())
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, domain.ErrInvalidConfiguration) {
				t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
			}
			if c != nil || called {
				t.Fatal("invalid configuration must not produce a controller")
			}
		})
	}
}

func TestNewCopiesPhases(t *testing.T) {
	phases := twoPhase(nil)
	c, clock, _ := setupController(t, phases)
	phases[0].Tracks[0].To = Scalar(99)

	clock.at(0)
	c.Start()
	clock.at(100)
	c.Tick()
	if got := c.Values().Scalar("opacity"); got != 1 {
		t.Fatalf("controller aliases caller phases: opacity=%v", got)
	}
}

func TestIndependentControllers(t *testing.T) {
	a, clockA, doneA := setupController(t, twoPhase(Linear))
	b, clockB, doneB := setupController(t, twoPhase(Linear))

	clockA.at(0)
	clockB.at(0)
	a.Start()
	b.Start()

	clockA.at(250)
	a.Tick()
	clockB.at(50)
	b.Tick()

	if doneA.count() != 1 || doneB.count() != 0 {
		t.Fatalf("controllers interfered: a=%d b=%d", doneA.count(), doneB.count())
	}
	if got := b.Values().Scalar("opacity"); !approx(got, 0.5) {
		t.Fatalf("b opacity = %v, want 0.5", got)
	}
}
