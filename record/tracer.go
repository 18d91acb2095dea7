package record

import "github.com/sarchlab/neupim/counts"

// BusyIntervalTable is the table IntervalTracer writes into.
const BusyIntervalTable = "busy_intervals"

// CounterTotalTable is the table RecordSnapshot writes into.
const CounterTotalTable = "counter_totals"

// A BusyIntervalEntry is one closed busy interval of one operation class.
type BusyIntervalEntry struct {
	Class      string
	StartCycle uint32
	EndCycle   uint32
	Duration   uint32
}

// An IntervalTracer persists every closed busy interval it observes.
type IntervalTracer struct {
	recorder Recorder
}

// NewIntervalTracer creates an IntervalTracer writing into the given
// recorder.
func NewIntervalTracer(recorder Recorder) *IntervalTracer {
	recorder.CreateTable(BusyIntervalTable, BusyIntervalEntry{})

	return &IntervalTracer{recorder: recorder}
}

// StartInterval does nothing: intervals are recorded when they close.
func (t *IntervalTracer) StartInterval(_ counts.Interval) {
}

// EndInterval records the closed interval.
func (t *IntervalTracer) EndInterval(i counts.Interval) {
	t.recorder.InsertData(BusyIntervalTable, BusyIntervalEntry{
		Class:      i.Class.String(),
		StartCycle: i.Start,
		EndCycle:   i.End,
		Duration:   i.Duration(),
	})
}

// A CounterTotalEntry is the state of one operation class at one cycle.
type CounterTotalEntry struct {
	Cycle       uint32
	Class       string
	Outstanding uint32
	Lifetime    uint32
	BusyCycles  uint32
	IdleCycles  uint32
}

// SnapshotTables prepares the recorder for RecordSnapshot calls.
func SnapshotTables(r Recorder) {
	r.CreateTable(CounterTotalTable, CounterTotalEntry{})
}

// RecordSnapshot writes one row per operation class capturing the counter
// state at the given cycle. SnapshotTables must have been called on the
// recorder first.
func RecordSnapshot(r Recorder, ctx *counts.Context, cycle uint32) {
	classes := []struct {
		class   counts.Class
		counter *counts.Counter
	}{
		{counts.Load, &ctx.Loads},
		{counts.Store, &ctx.Stores},
		{counts.Compute, &ctx.Computes},
		{counts.LoadOrStore, &ctx.LoadOrStores},
	}

	for _, c := range classes {
		r.InsertData(CounterTotalTable, CounterTotalEntry{
			Cycle:       cycle,
			Class:       c.class.String(),
			Outstanding: c.counter.Outstanding,
			Lifetime:    c.counter.Lifetime,
			BusyCycles:  c.counter.AccumulatedBusyCycles,
			IdleCycles:  c.counter.AccumulatedIdleCycles,
		})
	}
}
