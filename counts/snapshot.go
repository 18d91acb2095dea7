package counts

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
)

// A DurationBucket is one histogram bin: Count spans of length Duration were
// observed.
type DurationBucket struct {
	Duration uint32 `json:"duration"`
	Count    uint64 `json:"count"`
}

// A CounterSnapshot is the serializable state of one class.
type CounterSnapshot struct {
	Outstanding           uint32           `json:"outstanding"`
	Lifetime              uint32           `json:"lifetime"`
	IntervalStart         *uint32          `json:"interval_start"`
	AccumulatedBusyCycles uint32           `json:"busy_cycles"`
	AccumulatedIdleCycles uint32           `json:"idle_cycles"`
	BusyHisto             []DurationBucket `json:"busy_histogram"`
	IdleHisto             []DurationBucket `json:"idle_histogram"`
}

// A Snapshot is the full serializable state of a Context.
type Snapshot struct {
	Loads        CounterSnapshot `json:"loads"`
	Stores       CounterSnapshot `json:"stores"`
	Computes     CounterSnapshot `json:"computes"`
	LoadOrStores CounterSnapshot `json:"load_or_stores"`
	Stage        RunStage        `json:"stage"`
	LastCycle    uint32          `json:"last_cycle"`
	Events       []Event         `json:"events"`
}

func (h DurationHisto) buckets() []DurationBucket {
	buckets := make([]DurationBucket, 0, len(h))
	for duration, count := range h {
		buckets = append(buckets, DurationBucket{
			Duration: duration,
			Count:    count,
		})
	}

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Duration < buckets[j].Duration
	})

	return buckets
}

func (c *Counter) snapshot() CounterSnapshot {
	s := CounterSnapshot{
		Outstanding:           c.Outstanding,
		Lifetime:              c.Lifetime,
		AccumulatedBusyCycles: c.AccumulatedBusyCycles,
		AccumulatedIdleCycles: c.AccumulatedIdleCycles,
		BusyHisto:             c.BusyHisto.buckets(),
		IdleHisto:             c.IdleHisto.buckets(),
	}

	if c.IntervalStart.Valid {
		start := c.IntervalStart.Cycle
		s.IntervalStart = &start
	}

	return s
}

// Snapshot captures the state of every class. Under the single-threaded
// driver contract the capture is consistent across all classes.
func (x *Context) Snapshot() Snapshot {
	return Snapshot{
		Loads:        x.Loads.snapshot(),
		Stores:       x.Stores.snapshot(),
		Computes:     x.Computes.snapshot(),
		LoadOrStores: x.LoadOrStores.snapshot(),
		Stage:        x.Stage,
		LastCycle:    x.LastCycle,
		Events:       x.Events,
	}
}

// SaveToFile writes the snapshot of the context to the given path as indented
// JSON.
func (x *Context) SaveToFile(path string) error {
	data, err := json.MarshalIndent(x.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("counts: serializing snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("counts: writing %s: %w", path, err)
	}

	logrus.Infof("Counter snapshot written to %s", path)

	return nil
}
