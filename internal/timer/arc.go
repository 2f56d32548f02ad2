package timer

import "math"

// Arc describes the swept part of a circular progress indicator in screen
// coordinates: y grows downward, so increasing angles run clockwise and
// -π/2 points at 12 o'clock.
type Arc struct {
	Start  float64
	Sweep  float64
	Closed bool
}

// Arc returns the indicator geometry for the current progress.
func (t *TaskTimer) Arc() Arc {
	return ArcFor(t.ProgressFraction(), t.remaining == 0)
}

// ArcFor builds an Arc from a progress fraction. A closed arc is drawn as a
// full ring.
func ArcFor(fraction float64, closed bool) Arc {
	fraction = math.Max(0, math.Min(1, fraction))
	if closed {
		fraction = 1
	}
	return Arc{
		Start:  -math.Pi / 2,
		Sweep:  fraction * 2 * math.Pi,
		Closed: closed,
	}
}

// End returns the angle where the sweep stops.
func (a Arc) End() float64 { return a.Start + a.Sweep }

// Covers reports whether the screen angle theta falls inside the sweep.
func (a Arc) Covers(theta float64) bool {
	if a.Closed {
		return true
	}
	if a.Sweep <= 0 {
		return false
	}
	d := math.Mod(theta-a.Start, 2*math.Pi)
	if d < 0 {
		d += 2 * math.Pi
	}
	return d < a.Sweep
}
