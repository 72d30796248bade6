package timeline

import "sort"

// Value is the state of one animated property. Scalar properties (opacity,
// scale) use X only; positions and offsets use both components.
type Value struct {
	X float64
	Y float64
}

// Scalar returns a one-dimensional value.
func Scalar(v float64) Value { return Value{X: v} }

// Vec returns a two-dimensional value.
func Vec(x, y float64) Value { return Value{X: x, Y: y} }

func lerp(a, b Value, p float64) Value {
	return Value{
		X: a.X + (b.X-a.X)*p,
		Y: a.Y + (b.Y-a.Y)*p,
	}
}

// Values is a snapshot of every property a timeline animates.
type Values map[string]Value

// Scalar returns the X component of a property, or 0 when it is unknown.
func (v Values) Scalar(property string) float64 {
	return v[property].X
}

// Vector returns both components of a property.
func (v Values) Vector(property string) (x, y float64) {
	val := v[property]
	return val.X, val.Y
}

// Properties returns the property names in sorted order.
func (v Values) Properties() []string {
	out := make([]string, 0, len(v))
	for k := range v {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (v Values) clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}
