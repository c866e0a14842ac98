package component

// Input stores the pressed state of the four movement directions for the
// current tick.
type Input struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
}

// Any reports whether at least one direction is held.
func (i Input) Any() bool {
	return i.Forward || i.Backward || i.Left || i.Right
}

var InputComponent = NewComponent[Input]()
