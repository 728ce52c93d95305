package scroll

// Slot is one materialized picker item.
type Slot struct {
	Index    int     `json:"index"`
	Position float64 `json:"position"`
}

// window is the ordered slot arena of a circular picker, top slot first.
// Its length never changes: every push at one edge evicts the other edge.
type window struct {
	slots []Slot
	pitch float64
	count int
}

// newWindow lays out n slots centered on index 1 at position 0. Slot i holds
// index wrap(1+i-half) at position (half-i)*pitch.
func newWindow(n, count int, pitch float64) *window {
	w := &window{
		slots: make([]Slot, n),
		pitch: pitch,
		count: count,
	}
	w.reset()
	return w
}

func (w *window) reset() {
	half := (len(w.slots) - 1) / 2
	for i := range w.slots {
		idx := 1 + i - half
		for idx < 1 {
			idx += w.count
		}
		for idx > w.count {
			idx -= w.count
		}
		w.slots[i] = Slot{Index: idx, Position: float64(half-i) * w.pitch}
	}
}

// pushTop materializes the item above the top slot and evicts the bottom one.
func (w *window) pushTop() {
	top := w.slots[0]
	copy(w.slots[1:], w.slots[:len(w.slots)-1])
	w.slots[0] = Slot{
		Index:    wrapIndex(top.Index-1, w.count),
		Position: top.Position + w.pitch,
	}
}

// pushBottom materializes the item below the bottom slot and evicts the top one.
func (w *window) pushBottom() {
	bottom := w.slots[len(w.slots)-1]
	copy(w.slots, w.slots[1:])
	w.slots[len(w.slots)-1] = Slot{
		Index:    wrapIndex(bottom.Index+1, w.count),
		Position: bottom.Position - w.pitch,
	}
}

func (w *window) snapshot() []Slot {
	out := make([]Slot, len(w.slots))
	copy(out, w.slots)
	return out
}
