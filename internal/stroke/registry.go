package stroke

import "errors"

// ErrNotFound is returned when a stroke ID is unknown.
var ErrNotFound = errors.New("stroke not found")

// Registry holds the finalized strokes of a session in creation order and
// tracks the grab/drop-on-delete interaction used in transform mode.
type Registry struct {
	strokes      []Stroke
	interactable bool

	grabbed string // stroke held by the user, if any
	inZone  bool   // grabbed stroke overlaps the delete zone
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add appends a finalized stroke. New strokes follow the current
// interactable state.
func (r *Registry) Add(s Stroke) {
	r.strokes = append(r.strokes, s)
}

// Get returns the stroke with the given ID.
func (r *Registry) Get(id string) (Stroke, error) {
	for _, s := range r.strokes {
		if s.ID == id {
			return s, nil
		}
	}
	return Stroke{}, ErrNotFound
}

// List returns a copy of all strokes in creation order.
func (r *Registry) List() []Stroke {
	out := make([]Stroke, len(r.strokes))
	copy(out, r.strokes)
	return out
}

// Len returns the number of strokes.
func (r *Registry) Len() int {
	return len(r.strokes)
}

// Delete removes a stroke by ID.
func (r *Registry) Delete(id string) error {
	for i, s := range r.strokes {
		if s.ID == id {
			r.strokes = append(r.strokes[:i], r.strokes[i+1:]...)
			if r.grabbed == id {
				r.grabbed = ""
				r.inZone = false
			}
			return nil
		}
	}
	return ErrNotFound
}

// Clear removes every stroke and returns how many were removed.
func (r *Registry) Clear() int {
	n := len(r.strokes)
	r.strokes = nil
	r.grabbed = ""
	r.inZone = false
	return n
}

// SetInteractable enables or disables manipulation of all strokes.
// Disabling drops any grab in progress.
func (r *Registry) SetInteractable(on bool) {
	r.interactable = on
	if !on {
		r.grabbed = ""
		r.inZone = false
	}
}

// Interactable reports whether strokes can be manipulated.
func (r *Registry) Interactable() bool {
	return r.interactable
}

// Grab marks a stroke as held. It reports whether the delete affordance
// should be shown.
func (r *Registry) Grab(id string) bool {
	if !r.interactable {
		return false
	}
	if _, err := r.Get(id); err != nil {
		return false
	}
	r.grabbed = id
	r.inZone = false
	return true
}

// Grabbed returns the held stroke ID, or "" when nothing is held.
func (r *Registry) Grabbed() string {
	return r.grabbed
}

// EnterDeleteZone records that a stroke overlaps the delete zone. Only the
// held stroke counts.
func (r *Registry) EnterDeleteZone(id string) {
	if r.grabbed != "" && id == r.grabbed {
		r.inZone = true
	}
}

// ExitDeleteZone records that the held stroke left the delete zone.
func (r *Registry) ExitDeleteZone() {
	r.inZone = false
}

// Release drops the held stroke. When it is released inside the delete zone
// it is removed, unless both hands are tracked (two-handed manipulation).
// The removed stroke ID is returned.
func (r *Registry) Release(twoHandsTracked bool) (string, bool) {
	id, inZone := r.grabbed, r.inZone
	r.grabbed = ""
	r.inZone = false

	if id == "" || !inZone || twoHandsTracked {
		return "", false
	}
	if err := r.Delete(id); err != nil {
		return "", false
	}
	return id, true
}
