package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ayusman/airdoodle/internal/scroll"
	"github.com/ayusman/airdoodle/internal/stroke"
)

// returnMode is where closing the settings menu goes back to.
func (e *Engine) returnMode() Mode {
	if e.transformOn {
		return Transform
	}
	return Drawing
}

func (e *Engine) setMode(target Mode) {
	prev := e.mode
	if prev == Drawing && target != Drawing && e.capture.Active() {
		e.doneCreate()
	}

	switch target {
	case Drawing:
		e.transformOn = false
		e.closeSubMenu()
		e.strokes.SetInteractable(false)
	case Transform:
		e.transformOn = true
		e.closeSubMenu()
		e.strokes.SetInteractable(true)
	case Setting:
		e.strokes.SetInteractable(false)
	}

	e.mode = target
	if prev != target {
		e.log.Info("mode changed",
			zap.Stringer("from", prev),
			zap.Stringer("to", target),
		)
		e.emit(Event{Kind: EventModeChanged, Mode: target.String()})
	}
}

func (e *Engine) doubleTapped() {
	e.emit(Event{Kind: EventDoubleTapped})
	if e.mode == Setting {
		e.setMode(e.returnMode())
	} else {
		e.setMode(Setting)
	}
}

// closeSubMenu drops an open picker without applying its value.
func (e *Engine) closeSubMenu() {
	e.menu.Close()
	if e.subMenu != DoneMoving {
		e.setSubMenu(DoneMoving)
	}
}

func (e *Engine) setSubMenu(s SubMenu) {
	e.subMenu = s
	e.emit(Event{Kind: EventSubMenuChanged, SubMenu: s.String()})
}

func (e *Engine) openPicker(kind scroll.Kind) {
	if e.mode != Setting {
		e.log.Debug("picker ignored outside setting", zap.Stringer("picker", kind))
		return
	}
	e.menu.Configure(kind)
	if kind == scroll.ColorPicker {
		e.setSubMenu(SubMenuColor)
	} else {
		e.setSubMenu(SubMenuSize)
	}
}

// doneSelection commits the open picker and starts its snap.
func (e *Engine) doneSelection() {
	if e.subMenu != SubMenuColor && e.subMenu != SubMenuSize {
		return
	}
	p, _, ok := e.menu.Active()
	if !ok {
		return
	}
	p.CommitSelection()
	e.setSubMenu(DoneSelection)
}

// doneMoving applies the settled picker value and closes the picker.
func (e *Engine) doneMoving(kind scroll.Kind, index int) {
	e.emit(Event{Kind: EventScrollSettled, Picker: kind.String(), Index: index})
	e.applySelection(kind, index, true)
	e.menu.Close()
	e.setSubMenu(DoneMoving)
}

// applySelection sets the stroke style from a picker index. Picker indexes
// are always valid preset indexes, so a miss is a programming error.
func (e *Engine) applySelection(kind scroll.Kind, index int, notify bool) {
	style := e.capture.Style()

	switch kind {
	case scroll.ColorPicker:
		c, err := e.menu.Color(index)
		if err != nil {
			panic(fmt.Sprintf("app: color picker settled on %d: %v", index, err))
		}
		style.Color = c
		e.colorIndex = index
	case scroll.SizePicker:
		style.Width = e.presets.MustSize(index)
		e.sizeIndex = index
		if scale, ok := e.presets.CursorScale(style.Width); ok {
			e.cursorScale = scale
		}
	}

	e.capture.SetStyle(style)
	if notify {
		e.emit(Event{
			Kind:        EventStyleChanged,
			Picker:      kind.String(),
			Index:       index,
			Style:       &style,
			CursorScale: e.cursorScale,
		})
	}
}

// Command applies a UI command. Commands that do not apply in the current
// mode are ignored; unknown kinds and bad arguments are errors.
func (e *Engine) Command(c Command) error {
	switch c.Kind {
	case CmdDraw:
		e.setMode(Drawing)
	case CmdEdit:
		e.setMode(Transform)
	case CmdClose:
		e.setMode(e.returnMode())
	case CmdNew:
		if e.capture.Active() {
			e.doneCreate()
		}
		n := e.strokes.Clear()
		e.emit(Event{Kind: EventStrokesCleared, Count: n})
		e.setMode(Drawing)

	case CmdColor:
		e.openPicker(scroll.ColorPicker)
	case CmdSize:
		e.openPicker(scroll.SizePicker)
	case CmdValue:
		e.doneSelection()

	case CmdInitColor:
		idx, err := e.menu.InitColor(c.Index)
		if err != nil {
			return err
		}
		e.applySelection(scroll.ColorPicker, idx, true)
	case CmdInitSize:
		idx, err := e.menu.InitSize(c.Index)
		if err != nil {
			return err
		}
		e.applySelection(scroll.SizePicker, idx, true)

	case CmdGrab:
		if e.mode == Transform {
			e.strokes.Grab(c.Stroke)
		}
	case CmdDeleteEnter:
		e.strokes.EnterDeleteZone(c.Stroke)
	case CmdDeleteExit:
		e.strokes.ExitDeleteZone()
	case CmdRelease:
		if id, ok := e.strokes.Release(e.last.TwoHandsTracked); ok {
			e.emit(Event{Kind: EventStrokeDeleted, StrokeID: id})
		}
	case CmdDelete:
		if err := e.strokes.Delete(c.Stroke); err != nil {
			return fmt.Errorf("delete %q: %w", c.Stroke, err)
		}
		e.emit(Event{Kind: EventStrokeDeleted, StrokeID: c.Stroke})

	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, c.Kind)
	}
	return nil
}

// PickerState describes the open picker.
type PickerState struct {
	Kind     string        `json:"kind"`
	Offset   float64       `json:"offset"`
	Target   float64       `json:"target"`
	Snapping bool          `json:"snapping"`
	Selected int           `json:"selected"`
	Slots    []scroll.Slot `json:"slots,omitempty"`
}

// State is a snapshot of the engine for observers.
type State struct {
	Frame       uint64       `json:"frame"`
	Mode        Mode         `json:"mode"`
	ReturnMode  Mode         `json:"return_mode"`
	SubMenu     SubMenu      `json:"sub_menu"`
	Phase       DrawPhase    `json:"phase"`
	Drawing     bool         `json:"drawing"`
	Tracked     bool         `json:"tracked"`
	Selected    bool         `json:"selected"`
	Style       stroke.Style `json:"style"`
	ColorIndex  int          `json:"color_index"`
	SizeIndex   int          `json:"size_index"`
	CursorScale float64      `json:"cursor_scale"`
	Strokes     int          `json:"strokes"`
	FPS         float64      `json:"fps"`
	Picker      *PickerState `json:"picker,omitempty"`
}

// State returns a snapshot of the engine.
func (e *Engine) State() State {
	st := State{
		Frame:       e.frame,
		Mode:        e.mode,
		ReturnMode:  e.returnMode(),
		SubMenu:     e.subMenu,
		Phase:       e.phase,
		Drawing:     e.capture.Active(),
		Tracked:     e.last.Tracked,
		Selected:    e.last.Selected,
		Style:       e.capture.Style(),
		ColorIndex:  e.colorIndex,
		SizeIndex:   e.sizeIndex,
		CursorScale: e.cursorScale,
		Strokes:     e.strokes.Len(),
		FPS:         e.fps.value,
	}
	if p, kind, ok := e.menu.Active(); ok {
		st.Picker = &PickerState{
			Kind:     kind.String(),
			Offset:   p.Offset(),
			Target:   p.Target(),
			Snapping: p.Snapping(),
			Selected: p.Selected(),
			Slots:    p.Slots(),
		}
	}
	return st
}
