// Package gesture turns per-frame hand samples and tap events into discrete
// drag gestures, hand-lost signals and double taps.
package gesture

import "github.com/go-gl/mathgl/mgl64"

// Handedness identifies which hand produced a sample.
type Handedness string

const (
	// Left is the user's left hand.
	Left Handedness = "Left"
	// Right is the user's right hand.
	Right Handedness = "Right"
)

// HandSample is one tracked hand for one frame.
type HandSample struct {
	Position   mgl64.Vec3 `json:"position"`
	Selected   bool       `json:"selected"` // pinch or trigger held
	Handedness Handedness `json:"handedness"`
	Tracked    bool       `json:"tracked"`
}

// Gesture is the drag signal derived for a single frame.
type Gesture int

const (
	None Gesture = iota
	StartDrag
	Dragging
	DoneDragging
)

func (g Gesture) String() string {
	switch g {
	case StartDrag:
		return "StartDrag"
	case Dragging:
		return "Dragging"
	case DoneDragging:
		return "DoneDragging"
	default:
		return "None"
	}
}

// dragClass reports whether g keeps a drag open.
func (g Gesture) dragClass() bool {
	return g == StartDrag || g == Dragging
}

// Result is everything the classifier derives from one frame.
type Result struct {
	Gesture Gesture

	Tracked         bool // any hand tracked
	Selected        bool // any hand selected
	BothSelected    bool // left and right selected together
	TwoHandsTracked bool

	// HandLost is set when a hand was selected last frame and no hand is tracked now.
	HandLost bool
	// CursorChanged is set when Tracked or Selected differ from the previous frame.
	CursorChanged bool

	Cursor mgl64.Vec3
}

// Classifier converts hand sample streams into gestures. It keeps the state of
// the previous frame and must be fed every frame in order.
type Classifier struct {
	prev         Gesture
	prevSelected bool
	prevTracked  bool
	cursor       mgl64.Vec3
}

// NewClassifier creates a Classifier with no drag in progress.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify derives the gesture for the current frame. dragPermitted comes from
// the tap detector's cooldown.
func (c *Classifier) Classify(hands []HandSample, dragPermitted bool) Result {
	var r Result
	var leftTracked, rightTracked, leftSelected, rightSelected bool
	var selectedPos, rightPos, leftPos *mgl64.Vec3

	for i := range hands {
		h := &hands[i]
		if !h.Tracked {
			continue
		}
		r.Tracked = true

		switch h.Handedness {
		case Left:
			leftTracked = true
			if leftPos == nil {
				leftPos = &h.Position
			}
		case Right:
			rightTracked = true
			if rightPos == nil {
				rightPos = &h.Position
			}
		}

		if h.Selected {
			r.Selected = true
			if selectedPos == nil {
				selectedPos = &h.Position
			}
			switch h.Handedness {
			case Left:
				leftSelected = true
			case Right:
				rightSelected = true
			}
		}
	}

	r.BothSelected = leftSelected && rightSelected
	r.TwoHandsTracked = leftTracked && rightTracked

	// Both hands selected is reserved for two-handed manipulation.
	switch {
	case r.Selected && dragPermitted && !r.BothSelected:
		if c.prev.dragClass() {
			r.Gesture = Dragging
		} else {
			r.Gesture = StartDrag
		}
	case c.prev.dragClass():
		r.Gesture = DoneDragging
	default:
		r.Gesture = None
	}

	switch {
	case selectedPos != nil:
		c.cursor = *selectedPos
	case rightPos != nil:
		c.cursor = *rightPos
	case leftPos != nil:
		c.cursor = *leftPos
	}
	r.Cursor = c.cursor

	r.HandLost = c.prevSelected && !r.Tracked
	r.CursorChanged = r.Tracked != c.prevTracked || r.Selected != c.prevSelected

	c.prev = r.Gesture
	c.prevSelected = r.Selected
	c.prevTracked = r.Tracked

	return r
}

// Previous returns the gesture emitted on the last frame.
func (c *Classifier) Previous() Gesture {
	return c.prev
}

// Reset forgets all frame history.
func (c *Classifier) Reset() {
	*c = Classifier{}
}
