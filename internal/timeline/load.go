package timeline

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

//go:embed data/splash.toml
var defaultSplash []byte

type phasesFile struct {
	Phases []phaseEntry `toml:"phase"`
}

type phaseEntry struct {
	Name   string       `toml:"name"`
	GapMs  int64        `toml:"gap_ms"`
	Tracks []trackEntry `toml:"track"`
}

type trackEntry struct {
	Property   string    `toml:"property"`
	From       []float64 `toml:"from"`
	To         []float64 `toml:"to"`
	DurationMs int64     `toml:"duration_ms"`
	DelayMs    int64     `toml:"delay_ms"`
	Easing     string    `toml:"easing"`
}

// DefaultSplash returns the splash sequence compiled into the binary: logo
// fade and scale-in, title fade and slide-in, a focus pause, the slide to the
// header alongside the content reveal and background fade, then a short
// hand-off delay.
func DefaultSplash() ([]Phase, error) {
	return LoadPhases(bytes.NewReader(defaultSplash))
}

// LoadPhasesFile reads a phase list from a TOML file.
func LoadPhasesFile(path string) ([]Phase, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening timeline: %w", err)
	}
	defer f.Close()

	phases, err := LoadPhases(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return phases, nil
}

// LoadPhases decodes a TOML phase list. Values are arrays of one (scalar)
// or two (vector) floats; times are integer milliseconds. Structural
// problems wrap domain.ErrInvalidConfiguration; range checks are left to New.
func LoadPhases(r io.Reader) ([]Phase, error) {
	var doc phasesFile
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, invalid("parsing timeline: %v", err)
	}

	phases := make([]Phase, 0, len(doc.Phases))
	for i, p := range doc.Phases {
		gap, err := millis(p.GapMs)
		if err != nil {
			return nil, invalid("phase %d gap_ms: %v", i, err)
		}
		phase := Phase{Name: p.Name, Gap: gap}
		for j, t := range p.Tracks {
			duration, err := millis(t.DurationMs)
			if err != nil {
				return nil, invalid("phase %d track %d (%s) duration_ms: %v", i, j, t.Property, err)
			}
			delay, err := millis(t.DelayMs)
			if err != nil {
				return nil, invalid("phase %d track %d (%s) delay_ms: %v", i, j, t.Property, err)
			}
			from, err := toValue(t.From)
			if err != nil {
				return nil, invalid("phase %d track %d (%s) from: %v", i, j, t.Property, err)
			}
			to, err := toValue(t.To)
			if err != nil {
				return nil, invalid("phase %d track %d (%s) to: %v", i, j, t.Property, err)
			}
			easing, ok := EasingByName(t.Easing)
			if !ok {
				return nil, invalid("phase %d track %d (%s): unknown easing %q (want one of %s)",
					i, j, t.Property, t.Easing, strings.Join(EasingNames(), ", "))
			}
			phase.Tracks = append(phase.Tracks, Track{
				Property: t.Property,
				From:     from,
				To:       to,
				Duration: duration,
				Delay:    delay,
				Easing:   easing,
			})
		}
		phases = append(phases, phase)
	}
	return phases, nil
}

const maxMillis = math.MaxInt64 / int64(time.Millisecond)

// millis converts a millisecond count, refusing values a Duration cannot hold.
func millis(ms int64) (time.Duration, error) {
	if ms > maxMillis || ms < -maxMillis {
		return 0, fmt.Errorf("%d out of range", ms)
	}
	return time.Duration(ms) * time.Millisecond, nil
}

func toValue(xs []float64) (Value, error) {
	switch len(xs) {
	case 1:
		return Scalar(xs[0]), nil
	case 2:
		return Vec(xs[0], xs[1]), nil
	default:
		return Value{}, fmt.Errorf("expected 1 or 2 numbers, got %d", len(xs))
	}
}
