package sessions

import (
	"fmt"

	"github.com/Domenick1991/boxoffice/internal/domain"
)

// CheckOrder decides which outcome a seat claim reports when several checks
// fail at once.
type CheckOrder string

const (
	// SpecificFirst reports an out-of-range seat, then a taken seat, and only
	// then a full session.
	SpecificFirst CheckOrder = "specific_first"
	// CapacityFirst reports a full session before looking at the seat, so
	// on a full session even a seat beyond capacity yields Full rather than
	// InvalidArgument.
	CapacityFirst CheckOrder = "capacity_first"
)

// ParseCheckOrder reads the box_office.seat_check_order setting. An empty
// value selects SpecificFirst, the only order under which a seat beyond
// capacity always yields InvalidArgument.
func ParseCheckOrder(v string) (CheckOrder, error) {
	switch CheckOrder(v) {
	case "", SpecificFirst:
		return SpecificFirst, nil
	case CapacityFirst:
		return CapacityFirst, nil
	default:
		return "", fmt.Errorf("unknown seat check order %q", v)
	}
}

// check returns Success when seat can be claimed in session.
func (o CheckOrder) check(session domain.Session, seat int) domain.Outcome {
	full := len(session.OccupiedSeats) >= session.Capacity
	outOfRange := seat > session.Capacity

	if o == CapacityFirst {
		switch {
		case full:
			return domain.Full
		case outOfRange:
			return domain.InvalidArgument
		case session.IsOccupied(seat):
			return domain.AlreadyExists
		}
		return domain.Success
	}

	switch {
	case outOfRange:
		return domain.InvalidArgument
	case session.IsOccupied(seat):
		return domain.AlreadyExists
	case full:
		return domain.Full
	}
	return domain.Success
}
