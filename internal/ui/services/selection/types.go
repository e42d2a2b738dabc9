package selection

// State holds selection state
type State struct {
	LastIndex int // -1 until a selection resolves
	LastLogin string
}
