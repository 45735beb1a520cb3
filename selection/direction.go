package selection

//go:generate go tool github.com/dmarkham/enumer -type=Direction -transform=lower -text

import "fmt"

// Direction is the greedy search direction, fixed for a whole run.
type Direction uint8

const (
	DirectionUnspecified Direction = iota
	Forward                        // start empty, add one feature per iteration
	Backward                       // start full, remove one feature per iteration
)

// ParseDirection accepts "forward" or "backward".
func ParseDirection(s string) (Direction, error) {
	d, err := DirectionString(s)
	if err != nil || !d.valid() {
		return DirectionUnspecified, fmt.Errorf("%w: direction %q must be forward or backward", ErrInvalidArgument, s)
	}
	return d, nil
}

func (d Direction) valid() bool {
	return d == Forward || d == Backward
}
