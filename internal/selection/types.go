package selection

import "errors"

// State is the tri-state summary of a selection relative to all rows
type State int

const (
	None State = iota
	Some
	All
)

// String returns a human-readable representation of the state
func (s State) String() string {
	switch s {
	case None:
		return "none"
	case Some:
		return "some"
	case All:
		return "all"
	default:
		return "unknown"
	}
}

// ErrUnknownRow is returned when toggling a path that is not in the
// current row sequence.
var ErrUnknownRow = errors.New("unknown row")

// Aggregate computes the state for selected out of total rows
func Aggregate(selected, total int) State {
	switch {
	case selected == 0 || total == 0:
		return None
	case selected >= total:
		return All
	default:
		return Some
	}
}
