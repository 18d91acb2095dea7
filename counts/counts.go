// Package counts tracks the activity of the simulated accelerator. For each
// operation class it maintains the number of operations currently in flight
// and the cycles the class has spent busy, sampled once per simulated cycle.
package counts

import "encoding/json"

// A Class is a category of simulated hardware activity that is tracked
// independently.
type Class int

// The tracked operation classes. LoadOrStore is derived from the Load and
// Store classes at sampling time and is not part of the mutation surface.
const (
	Load Class = iota
	Store
	Compute
	LoadOrStore

	// NoClass marks events that are not tied to an operation class.
	NoClass Class = -1
)

func (c Class) String() string {
	switch c {
	case Load:
		return "load"
	case Store:
		return "store"
	case Compute:
		return "compute"
	case LoadOrStore:
		return "load_or_store"
	default:
		return "none"
	}
}

// MarshalJSON serializes the class as its name.
func (c Class) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// A CycleMark optionally holds a cycle number. The zero value is "not set".
type CycleMark struct {
	Cycle uint32
	Valid bool
}

// MarkCycle returns a set CycleMark at the given cycle.
func MarkCycle(cycle uint32) CycleMark {
	return CycleMark{Cycle: cycle, Valid: true}
}

// A DurationHisto counts how often busy or idle spans of each length were
// observed.
type DurationHisto map[uint32]uint64

func (h DurationHisto) add(duration uint32) DurationHisto {
	if h == nil {
		h = DurationHisto{}
	}

	h[duration]++

	return h
}

// A Counter holds the state of one operation class. The fields are exported
// so that drivers can inspect the raw state directly, not only through
// accessors.
type Counter struct {
	// Outstanding is the number of operations currently in flight.
	Outstanding uint32

	// Lifetime is the cumulative number of operations ever issued.
	Lifetime uint32

	// IntervalStart holds the cycle at which the class was last observed
	// transitioning from idle to busy. It is unset while the class is idle.
	IntervalStart CycleMark

	// IdleSince holds the cycle at which the class was last observed
	// transitioning from busy to idle.
	IdleSince CycleMark

	// AccumulatedBusyCycles is the total length of all closed busy
	// intervals. It never decreases.
	AccumulatedBusyCycles uint32

	// AccumulatedIdleCycles is the total length of all closed idle spans.
	AccumulatedIdleCycles uint32

	// BusyHisto and IdleHisto count closed spans by their length.
	// Zero-length idle spans are not recorded.
	BusyHisto DurationHisto
	IdleHisto DurationHisto
}

func (c *Counter) add(n uint32) {
	c.Outstanding += n
	c.Lifetime += n
}

func (c *Counter) reduce(n uint32) bool {
	if n > c.Outstanding {
		return false
	}

	c.Outstanding -= n

	return true
}
