// Package timeline implements a staged animation timeline: an ordered list
// of phases, each a set of property tracks that animate concurrently, driven
// one tick at a time by the host's frame loop.
package timeline

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/hammamikhairi/gitakids/internal/domain"
)

// Track animates one property from From to To. The property holds From
// until Delay has passed, then eases to To over Duration.
type Track struct {
	Property string
	From     Value
	To       Value
	Duration time.Duration
	Delay    time.Duration
	Easing   Easing // nil means Linear
}

// End is the offset from phase start at which the track settles.
func (t Track) End() time.Duration { return t.Delay + t.Duration }

// valueAt samples the track at an offset from its phase start.
func (t Track) valueAt(elapsed time.Duration) Value {
	switch {
	case elapsed < t.Delay:
		return t.From
	case elapsed >= t.End():
		return t.To
	}
	p := float64(elapsed-t.Delay) / float64(t.Duration)
	return lerp(t.From, t.To, t.Easing(p))
}

// Phase is one sequential stage of a timeline. Gap is the pause inserted
// before the phase starts. A phase without tracks is a pure delay.
type Phase struct {
	Name   string
	Gap    time.Duration
	Tracks []Track
}

// Duration is the time from phase start until its slowest track settles.
func (p Phase) Duration() time.Duration {
	var d time.Duration
	for _, t := range p.Tracks {
		if end := t.End(); end > d {
			d = end
		}
	}
	return d
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}

func finite(v Value) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// validatePhases checks a phase list and returns a private copy with
// default easings filled in.
func validatePhases(phases []Phase) ([]Phase, error) {
	if len(phases) == 0 {
		return nil, invalid("timeline has no phases")
	}

	out := make([]Phase, len(phases))
	for i, p := range phases {
		label := fmt.Sprintf("phase %d", i)
		if p.Name != "" {
			label = fmt.Sprintf("phase %d (%s)", i, p.Name)
		}
		if p.Gap < 0 {
			return nil, invalid("%s: negative gap %s", label, p.Gap)
		}

		out[i] = Phase{Name: p.Name, Gap: p.Gap, Tracks: make([]Track, len(p.Tracks))}
		for j, t := range p.Tracks {
			if strings.TrimSpace(t.Property) == "" {
				return nil, invalid("%s track %d: empty property", label, j)
			}
			if t.Duration < 0 {
				return nil, invalid("%s track %s: negative duration %s", label, t.Property, t.Duration)
			}
			if t.Delay < 0 {
				return nil, invalid("%s track %s: negative delay %s", label, t.Property, t.Delay)
			}
			if !finite(t.From) || !finite(t.To) {
				return nil, invalid("%s track %s: non-finite bounds", label, t.Property)
			}
			if t.Easing == nil {
				t.Easing = Linear
			}
			out[i].Tracks[j] = t
		}
	}
	return out, nil
}
