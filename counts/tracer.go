package counts

// An Interval is a span of cycles during which an operation class was
// continuously busy. End is meaningful only once the interval has closed.
type Interval struct {
	Class Class
	Start uint32
	End   uint32
}

// Duration returns the length of a closed interval in cycles.
func (i Interval) Duration() uint32 {
	return i.End - i.Start
}

// A Tracer observes busy-interval transitions on a counter context.
type Tracer interface {
	// StartInterval is called when a class is observed going busy. The
	// interval's End field is not set yet.
	StartInterval(i Interval)

	// EndInterval is called when a class is observed going idle, with the
	// closed interval.
	EndInterval(i Interval)
}
