package counts

import "github.com/sirupsen/logrus"

// A Context is one full set of activity counters. It is a plain state machine
// with no internal locking: the driver must mutate it from a single thread,
// and UpdateOnCycle must be called with non-decreasing cycle numbers.
type Context struct {
	// Loads, Stores, and Computes are the counters of the three real
	// operation classes. LoadOrStores is sampled from the combined
	// outstanding count of Loads and Stores; its Outstanding field is
	// always 0.
	Loads        Counter
	Stores       Counter
	Computes     Counter
	LoadOrStores Counter

	// Stage is the run stage attached to recorded events.
	Stage RunStage

	// LastCycle is the cycle number of the most recent UpdateOnCycle call.
	LastCycle uint32

	// Events holds every observation in call order.
	Events []Event

	tracers []Tracer
}

// NewContext creates a Context with every class idle since cycle 0.
func NewContext() *Context {
	ctx := &Context{}

	ctx.Loads.IdleSince = MarkCycle(0)
	ctx.Stores.IdleSince = MarkCycle(0)
	ctx.Computes.IdleSince = MarkCycle(0)
	ctx.LoadOrStores.IdleSince = MarkCycle(0)

	return ctx
}

// AcceptTracer registers a tracer to be notified of busy-interval
// transitions.
func (x *Context) AcceptTracer(t Tracer) {
	x.tracers = append(x.tracers, t)
}

func (x *Context) counter(class Class) *Counter {
	switch class {
	case Load:
		return &x.Loads
	case Store:
		return &x.Stores
	case Compute:
		return &x.Computes
	case LoadOrStore:
		return &x.LoadOrStores
	default:
		panic("counts: unknown operation class")
	}
}

// Add records n newly issued operations of the given class.
func (x *Context) Add(class Class, n uint32) {
	x.counter(class).add(n)
}

// Reduce records n retired operations of the given class. It returns false
// and leaves the state unchanged when n exceeds the outstanding count, so the
// count can never go negative.
func (x *Context) Reduce(class Class, n uint32) bool {
	ok := x.counter(class).reduce(n)
	if !ok {
		logrus.Errorf("Refusing to reduce %s count below zero", class)
	}

	return ok
}

// Get returns the outstanding count of the given class.
func (x *Context) Get(class Class) uint32 {
	return x.counter(class).Outstanding
}

// GetTotal returns the sum of the outstanding counts of the three real
// classes.
func (x *Context) GetTotal() uint32 {
	return x.Loads.Outstanding + x.Stores.Outstanding + x.Computes.Outstanding
}

// UpdateOnCycle samples every class at the given cycle. A class observed busy
// without an open interval opens one; a class observed idle with an open
// interval closes it and accumulates its duration. A class that toggles
// busy-idle-busy between two calls is seen as continuously busy: transitions
// are only visible at cycle granularity.
func (x *Context) UpdateOnCycle(cycle uint32) {
	x.sample(Load, &x.Loads, x.Loads.Outstanding, cycle)
	x.sample(Store, &x.Stores, x.Stores.Outstanding, cycle)
	x.sample(Compute, &x.Computes, x.Computes.Outstanding, cycle)
	x.sample(LoadOrStore, &x.LoadOrStores,
		x.Loads.Outstanding+x.Stores.Outstanding, cycle)

	x.LastCycle = cycle
}

func (x *Context) sample(class Class, c *Counter, outstanding, cycle uint32) {
	switch {
	case outstanding > 0 && !c.IntervalStart.Valid:
		x.openInterval(class, c, cycle)
	case outstanding == 0 && c.IntervalStart.Valid:
		x.closeInterval(class, c, cycle)
	}
}

func (x *Context) openInterval(class Class, c *Counter, cycle uint32) {
	if c.IdleSince.Valid {
		idle := cycle - c.IdleSince.Cycle
		c.AccumulatedIdleCycles += idle
		if idle != 0 {
			c.IdleHisto = c.IdleHisto.add(idle)
		}
		c.IdleSince = CycleMark{}
	}

	c.IntervalStart = MarkCycle(cycle)
	x.appendEvent(cycle, IntervalStarted, class)

	for _, t := range x.tracers {
		t.StartInterval(Interval{Class: class, Start: cycle})
	}
}

func (x *Context) closeInterval(class Class, c *Counter, cycle uint32) {
	start := c.IntervalStart.Cycle
	busy := cycle - start

	c.AccumulatedBusyCycles += busy
	c.BusyHisto = c.BusyHisto.add(busy)
	c.IntervalStart = CycleMark{}
	c.IdleSince = MarkCycle(cycle)
	x.appendEvent(cycle, IntervalEnded, class)

	for _, t := range x.tracers {
		t.EndInterval(Interval{Class: class, Start: start, End: cycle})
	}
}

func (x *Context) appendEvent(cycle uint32, kind EventKind, class Class) {
	x.Events = append(x.Events, Event{
		Cycle: cycle,
		Stage: x.Stage,
		Kind:  kind,
		Class: class,
	})
}

// UpdateStage switches the context to a new run stage and records the
// transition.
func (x *Context) UpdateStage(stage RunStage, cycle uint32) {
	x.Events = append(x.Events, Event{
		Cycle: cycle,
		Stage: stage,
		Kind:  StageStarted,
		Class: NoClass,
	})
	x.Stage = stage
}

// EndStage records the end of a run stage.
func (x *Context) EndStage(stage RunStage, cycle uint32) {
	x.Events = append(x.Events, Event{
		Cycle: cycle,
		Stage: stage,
		Kind:  StageEnded,
		Class: NoClass,
	})
}

// NPUFinished records that the NPU side of the workload completed.
func (x *Context) NPUFinished(cycle uint32) {
	x.appendEvent(cycle, NPUFinishedEvent, NoClass)
}

// PIMFinished records that the PIM side of the workload completed.
func (x *Context) PIMFinished(cycle uint32) {
	x.appendEvent(cycle, PIMFinishedEvent, NoClass)
}
