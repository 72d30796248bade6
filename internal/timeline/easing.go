package timeline

import (
	"sort"
	"strings"

	"github.com/charmbracelet/harmonica"
)

// Easing maps normalised elapsed time in [0,1] to normalised progress in
// [0,1]. Every easing here is monotonic and returns exactly 0 at 0 and 1 at 1.
type Easing func(t float64) float64

// Linear advances at a constant rate.
func Linear(t float64) float64 { return clamp01(t) }

// EaseIn starts slowly and accelerates.
func EaseIn(t float64) float64 {
	t = clamp01(t)
	return t * t
}

// EaseOut starts quickly and decelerates.
func EaseOut(t float64) float64 {
	t = clamp01(t)
	return t * (2 - t)
}

// EaseInOut accelerates through the first half and decelerates through the second.
func EaseInOut(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// CubicIn is a steeper EaseIn.
func CubicIn(t float64) float64 {
	t = clamp01(t)
	return t * t * t
}

// CubicOut is a steeper EaseOut.
func CubicOut(t float64) float64 {
	t = clamp01(t) - 1
	return t*t*t + 1
}

const springSteps = 120

// Spring returns an easing that follows a critically damped spring released
// towards 1. Higher frequencies settle sooner; the curve is sampled once and
// rescaled so it lands on 1 exactly at the end of the track.
func Spring(frequency float64) Easing {
	if frequency <= 0 {
		frequency = DefaultSpringFrequency
	}
	s := harmonica.NewSpring(1.0/springSteps, frequency, 1.0)

	table := make([]float64, springSteps+1)
	var pos, vel float64
	for i := 1; i <= springSteps; i++ {
		pos, vel = s.Update(pos, vel, 1)
		table[i] = pos
	}
	end := table[springSteps]
	for i := range table {
		table[i] /= end
	}

	return func(t float64) float64 {
		t = clamp01(t)
		if t >= 1 {
			return 1
		}
		f := t * springSteps
		i := int(f)
		return table[i] + (table[i+1]-table[i])*(f-float64(i))
	}
}

// DefaultSpringFrequency settles a spring to within 0.1% by the end of a track.
const DefaultSpringFrequency = 10.0

var easings = map[string]Easing{
	"linear":      Linear,
	"ease-in":     EaseIn,
	"ease-out":    EaseOut,
	"ease-in-out": EaseInOut,
	"cubic-in":    CubicIn,
	"cubic-out":   CubicOut,
	"spring":      Spring(DefaultSpringFrequency),
}

// EasingByName looks up an easing by its data-file name. The empty name
// means linear.
func EasingByName(name string) (Easing, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Linear, true
	}
	e, ok := easings[name]
	return e, ok
}

// EasingNames lists the names EasingByName accepts.
func EasingNames() []string {
	out := make([]string, 0, len(easings))
	for k := range easings {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func clamp01(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	default:
		return t
	}
}
