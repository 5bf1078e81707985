package logic

// NoSelection marks the cursor as resting on the input row
const NoSelection = -1

// Navigator moves the highlighted entry through the flattened dropdown.
// Index NoSelection is the input row; moving past either end wraps through it.
type Navigator struct {
	selectedIndex int
	total         int
}

// NewNavigator creates a navigator resting on the input row
func NewNavigator() *Navigator {
	return &Navigator{selectedIndex: NoSelection}
}

// SetTotal updates the number of selectable entries, dropping a selection
// that no longer exists
func (n *Navigator) SetTotal(total int) {
	n.total = total
	if n.selectedIndex >= total {
		n.selectedIndex = NoSelection
	}
}

// Reset puts the cursor back on the input row
func (n *Navigator) Reset() {
	n.selectedIndex = NoSelection
}

// Selected returns the highlighted entry index or NoSelection
func (n *Navigator) Selected() int {
	return n.selectedIndex
}

// Move shifts the cursor by delta, wrapping through the input row
func (n *Navigator) Move(delta int) int {
	if n.total == 0 {
		n.selectedIndex = NoSelection
		return n.selectedIndex
	}
	// positions run -1..total-1; shift to 0..total for modular arithmetic
	span := n.total + 1
	pos := (n.selectedIndex + 1 + delta) % span
	if pos < 0 {
		pos += span
	}
	n.selectedIndex = pos - 1
	return n.selectedIndex
}
