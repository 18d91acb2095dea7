package counts

import "encoding/json"

// A RunStage identifies the phase of the run an event belongs to. The stages
// are dictated by the workload schedule of the enclosing simulator.
type RunStage int

// The run stages, in schedule order.
const (
	StageA RunStage = iota
	StageB
	StageC
	StageD
	StageE
	StageF
	StageFinished
)

func (s RunStage) String() string {
	switch s {
	case StageA:
		return "A"
	case StageB:
		return "B"
	case StageC:
		return "C"
	case StageD:
		return "D"
	case StageE:
		return "E"
	case StageF:
		return "F"
	case StageFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes the stage as its name.
func (s RunStage) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// An EventKind tells what happened at an event.
type EventKind int

// The recorded event kinds.
const (
	IntervalStarted EventKind = iota
	IntervalEnded
	StageStarted
	StageEnded
	NPUFinishedEvent
	PIMFinishedEvent
)

func (k EventKind) String() string {
	switch k {
	case IntervalStarted:
		return "interval_started"
	case IntervalEnded:
		return "interval_ended"
	case StageStarted:
		return "stage_started"
	case StageEnded:
		return "stage_ended"
	case NPUFinishedEvent:
		return "npu_finished"
	case PIMFinishedEvent:
		return "pim_finished"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes the kind as its name.
func (k EventKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// An Event records one observation made by the counters. Class is NoClass for
// events that are not tied to an operation class.
type Event struct {
	Cycle uint32    `json:"cycle"`
	Stage RunStage  `json:"stage"`
	Kind  EventKind `json:"kind"`
	Class Class     `json:"class"`
}
