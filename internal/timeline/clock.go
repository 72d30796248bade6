package timeline

import "time"

// Clock supplies the time a controller samples on every tick. Hosts with a
// frame loop use SystemClock; tests drive a manual clock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock. time.Now carries a monotonic reading,
// so elapsed times are immune to wall clock jumps.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }
