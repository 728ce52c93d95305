// Package scroll implements the snapping, virtualized single-axis pickers
// used to choose stroke colors and sizes.
package scroll

import "math"

// Options configures a Picker.
type Options struct {
	// Circular pickers wrap around Count items; linear pickers clamp.
	Circular bool
	// Count is the number of selectable items.
	Count int
	// Pitch is the distance between adjacent items.
	Pitch float64
	// ArrangeOffset is added to the last linear item's position.
	ArrangeOffset float64

	SnapRate      float64
	SettleEpsilon float64
	// SpikeFactor times Pitch is the largest per-tick offset change accepted
	// by a circular picker before it is clamped.
	SpikeFactor float64
	// SoftClamp bounds a circular drag gesture to this many pitches from
	// where it started.
	SoftClamp float64
	// Slots is the size of the circular materialized window.
	Slots int
}

// Picker is one scroll list. It is not safe for concurrent use.
type Picker struct {
	opts Options

	offset    float64
	target    float64
	snapping  bool
	selected  int
	minOffset float64
	maxOffset float64

	dragging  bool
	dragStart float64

	// circular virtualization
	win      *window
	prev     float64
	blocked  bool
	blockPos float64
}

// NewPicker creates a Picker resting at offset 0.
func NewPicker(opts Options) *Picker {
	p := &Picker{opts: opts, selected: 1}
	p.Configure()
	if opts.Circular {
		p.win = newWindow(opts.Slots, opts.Count, opts.Pitch)
	}
	return p
}

// Configure recomputes the clamp bounds from the picker options.
func (p *Picker) Configure() {
	if p.opts.Circular {
		p.minOffset = -p.opts.SoftClamp * p.opts.Pitch
		p.maxOffset = p.opts.SoftClamp * p.opts.Pitch
		return
	}
	p.minOffset = -p.opts.Pitch
	p.maxOffset = p.opts.Pitch*float64(p.opts.Count-1) + p.opts.ArrangeOffset
}

// SetTiming replaces the snap and spike constants.
func (p *Picker) SetTiming(snapRate, epsilon, spikeFactor float64) {
	p.opts.SnapRate = snapRate
	p.opts.SettleEpsilon = epsilon
	p.opts.SpikeFactor = spikeFactor
}

// Drag moves the content by delta. A drag cancels a pending snap. Linear
// pickers clamp hard; circular pickers clamp relative to the offset the
// current drag gesture started from.
func (p *Picker) Drag(delta float64) {
	if !p.dragging {
		p.dragging = true
		p.dragStart = p.offset
	}
	p.snapping = false
	p.blocked = false

	lo, hi := p.minOffset, p.maxOffset
	if p.opts.Circular {
		lo += p.dragStart
		hi += p.dragStart
	}
	p.offset = clamp(p.offset+delta, lo, hi)
}

// CommitSelection picks the item boundary nearest to the current offset,
// arms the snap toward it and returns the item that will be selected once
// the snap settles. A commit during a snap replaces its target.
func (p *Picker) CommitSelection() int {
	anchor := closeIndex(p.offset, p.opts.Pitch)
	extra := 0.0

	if !p.opts.Circular {
		if anchor < 0 {
			anchor = 0
		} else if anchor > p.opts.Count {
			anchor = p.opts.Count
		}
		if anchor+1 == p.opts.Count {
			extra = p.opts.ArrangeOffset
		}
	}

	p.target = float64(anchor)*p.opts.Pitch + extra
	if p.opts.Circular {
		p.selected = selectedIndex(anchor, p.opts.Count)
	} else {
		p.target = clamp(p.target, p.minOffset, p.maxOffset)
		p.selected = min(selectedIndex(anchor, p.opts.Count+1), p.opts.Count)
	}

	p.snapping = true
	p.dragging = false
	return p.selected
}

// Tick advances the snap by dt and runs virtualization maintenance. It
// returns the selected index and true on the tick the snap settles.
func (p *Picker) Tick(dt float64) (int, bool) {
	if p.blocked {
		p.offset = p.blockPos
		p.blocked = false
	}

	settled := false
	if p.snapping {
		if math.Abs(p.offset-p.target) < p.opts.SettleEpsilon {
			p.offset = p.target
			p.snapping = false
			settled = true
		} else {
			t := clamp(p.opts.SnapRate*dt, 0, 1)
			p.offset += (p.target - p.offset) * t
		}
	}

	if p.opts.Circular {
		p.maintain()
	} else {
		p.offset = clamp(p.offset, p.minOffset, p.maxOffset)
	}

	return p.selected, settled
}

// maintain shifts the slot window by one item whenever the offset has moved
// more than a pitch since the last shift. A jump beyond SpikeFactor pitches
// is cut back to one pitch and pinned for the next tick as well.
func (p *Picker) maintain() {
	cur := p.offset
	delta := cur - p.prev
	if math.Abs(delta) <= p.opts.Pitch {
		return
	}

	if math.Abs(delta) > p.opts.Pitch*p.opts.SpikeFactor {
		if delta < 0 {
			cur = p.prev - p.opts.Pitch
		} else {
			cur = p.prev + p.opts.Pitch
		}
		p.offset = cur
		p.blocked = true
		p.blockPos = cur
	}

	if delta < 0 {
		p.win.pushTop()
	} else {
		p.win.pushBottom()
	}
	p.prev = cur
}

// InitIndex jumps straight to index without snapping and returns the index
// now selected. A circular picker always resets to offset 0 and selects 1;
// the caller rotates its item table so that index is shown first.
func (p *Picker) InitIndex(index int) int {
	p.snapping = false
	p.dragging = false
	p.blocked = false

	if p.opts.Circular {
		p.offset, p.target, p.prev = 0, 0, 0
		p.win.reset()
		p.selected = 1
		return p.selected
	}

	index = clampInt(index, 1, p.opts.Count)
	y := float64(index-1) * p.opts.Pitch
	if index == p.opts.Count {
		y += p.opts.ArrangeOffset
	}
	p.offset, p.target = y, y
	p.selected = index
	return p.selected
}

// Offset returns the current content offset.
func (p *Picker) Offset() float64 { return p.offset }

// Target returns the snap target.
func (p *Picker) Target() float64 { return p.target }

// Snapping reports whether a snap is in progress.
func (p *Picker) Snapping() bool { return p.snapping }

// Selected returns the last committed or initialized index.
func (p *Picker) Selected() int { return p.selected }

// Circular reports whether the picker wraps.
func (p *Picker) Circular() bool { return p.opts.Circular }

// Bounds returns the clamp bounds. For circular pickers they are relative
// to the start of a drag.
func (p *Picker) Bounds() (float64, float64) { return p.minOffset, p.maxOffset }

// Slots returns the materialized window, top first. Linear pickers have none.
func (p *Picker) Slots() []Slot {
	if p.win == nil {
		return nil
	}
	return p.win.snapshot()
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
