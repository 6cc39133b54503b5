package compose

import "strconv"

// Position places a layer along one axis: at a fixed coordinate, or centered in the space
// its parent leaves available.
type Position struct {
	coord  int
	center bool
}

// Center places a layer in the middle of its parent.
var Center = Position{center: true}

// Coord returns a Position at coordinate v, which may be negative.
func Coord(v int) Position {
	return Position{coord: v}
}

// IsCenter reports whether p is centered.
func (p Position) IsCenter() bool {
	return p.center
}

// Resolve the Position to a coordinate. A coordinate is returned as is; a centered Position
// resolves to available/2, truncated toward zero. Callers pass the parent's extent minus the
// child's, so available is negative for a child larger than its parent.
func (p Position) Resolve(available int) int {
	if p.center {
		return available / 2
	}
	return p.coord
}

func (p Position) String() string {
	if p.center {
		return "center"
	}
	return strconv.Itoa(p.coord)
}
