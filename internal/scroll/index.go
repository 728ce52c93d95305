package scroll

import "math"

// wrapIndex folds a 1-based circular index that stepped one past either end
// back into [1, count].
func wrapIndex(index, count int) int {
	switch {
	case index < 1:
		return count
	case index > count:
		return 1
	default:
		return index
	}
}

// closeIndex returns the anchor index whose boundary is nearest to offset.
// It compares the two anchors enclosing offset (truncated toward zero and one
// step further away from zero). Ties go to the anchor away from zero.
func closeIndex(offset, pitch float64) int {
	step := 1.0
	if offset < 0 {
		step = -1
	}
	prev := int(offset / pitch)
	aft := int(offset/pitch + step)

	dPrev := math.Abs(offset - float64(prev)*pitch)
	dAft := math.Abs(offset - float64(aft)*pitch)

	if dPrev < dAft {
		return prev
	}
	return aft
}

// selectedIndex maps a snapped anchor onto a 1-based item index. Forward
// anchors reduce modulo count and wrap a zero remainder to count; backward
// anchors land on count plus the (non-positive) truncated remainder.
func selectedIndex(anchor, count int) int {
	a := anchor + 1
	if a > 0 {
		return wrapIndex(a%count, count)
	}
	return count + a%count
}
