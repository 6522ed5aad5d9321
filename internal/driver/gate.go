// internal/driver/gate.go
package driver

import (
	"math"

	"github.com/tamzrod/range-replicator/internal/driver/dts"
)

// publishThreshold is the hysteresis band: readings closer than this to the
// last published value are suppressed.
const publishThreshold = 0.010 // meters

type gateState uint8

const (
	gateEmpty    gateState = iota // nothing published yet
	gateNoTarget                  // last publish was a no-target
	gateValue                     // last publish was a numeric distance
)

// gate suppresses publishes that would not tell a consumer anything new.
// Empty, NoTarget and Value are kept as distinct states rather than folded
// into one sentinel float, so "never published" and "published no-target"
// cannot be confused.
type gate struct {
	state gateState
	last  float64 // meters; valid only in gateValue
}

// offer decides whether a reading is worth publishing. Every accepted
// reading updates the stored state, whatever downstream does with it.
func (g *gate) offer(r dts.Reading) (Sample, bool) {
	if r.NoTarget {
		if g.state == gateNoTarget {
			return Sample{}, false
		}
		g.state = gateNoTarget
		return Sample{NoTarget: true}, true
	}

	m := r.Meters()
	if g.state == gateValue && math.Abs(m-g.last) < publishThreshold {
		return Sample{}, false
	}
	g.state = gateValue
	g.last = m
	return Sample{Meters: m}, true
}

func (g *gate) reset() {
	*g = gate{}
}
