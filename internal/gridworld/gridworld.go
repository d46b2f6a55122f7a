// Package gridworld provides a small 3x3 grid environment for training and
// evaluating the FEPS memory. Observations describe the current cell's
// distance from the center: "center", "edge" or "corner".
package gridworld

// Grid layout, positions 0..8:
//
//	0 1 2
//	3 4 5
//	6 7 8
const (
	size     = 3
	startPos = 4
)

// Action names understood by Step.
const (
	ActionUp    = "up"
	ActionDown  = "down"
	ActionLeft  = "left"
	ActionRight = "right"
)

var cellObservations = [9]string{
	"corner", "edge", "corner",
	"edge", "center", "edge",
	"corner", "edge", "corner",
}

// World is a 3x3 grid with an agent position. Moves off the board leave the
// position unchanged.
type World struct {
	position int
}

// New creates a world with the agent at the center cell.
func New() *World {
	return &World{position: startPos}
}

// Reset moves the agent back to the center.
func (w *World) Reset() {
	w.position = startPos
}

// Observation returns the label for the current cell.
func (w *World) Observation() string {
	return cellObservations[w.position]
}

// Step applies an action and returns the new observation plus whether the
// position actually changed.
func (w *World) Step(action string) (string, bool) {
	old := w.position
	switch action {
	case ActionUp:
		if w.position >= size {
			w.position -= size
		}
	case ActionDown:
		if w.position < size*(size-1) {
			w.position += size
		}
	case ActionLeft:
		if w.position%size != 0 {
			w.position--
		}
	case ActionRight:
		if (w.position+1)%size != 0 {
			w.position++
		}
	}
	return w.Observation(), w.position != old
}

// Observations returns the distinct observation vocabulary.
func Observations() []string {
	return []string{"center", "corner", "edge"}
}

// Actions returns the available actions.
func Actions() []string {
	return []string{ActionUp, ActionDown, ActionLeft, ActionRight}
}
