package app

import (
	"errors"
	"fmt"

	"github.com/ayusman/airdoodle/internal/gesture"
	"github.com/ayusman/airdoodle/internal/stroke"
)

// ErrUnknownCommand is returned for a command kind the engine does not handle.
var ErrUnknownCommand = errors.New("unknown command")

// Mode is the top-level application mode.
type Mode int

const (
	Drawing Mode = iota
	Transform
	Setting
)

func (m Mode) String() string {
	switch m {
	case Drawing:
		return "drawing"
	case Transform:
		return "transform"
	case Setting:
		return "setting"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// MarshalText encodes the mode by name.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// SubMenu is the settings sub-menu state. It only means something in Setting.
type SubMenu int

const (
	SubMenuColor SubMenu = iota
	SubMenuSize
	DoneSelection
	DoneMoving
)

func (s SubMenu) String() string {
	switch s {
	case SubMenuColor:
		return "color"
	case SubMenuSize:
		return "size"
	case DoneSelection:
		return "done_selection"
	case DoneMoving:
		return "done_moving"
	default:
		return fmt.Sprintf("SubMenu(%d)", int(s))
	}
}

// MarshalText encodes the sub-menu state by name.
func (s SubMenu) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// DrawPhase is the stroke sub-mode of Drawing.
type DrawPhase int

const (
	Create DrawPhase = iota
	AddPoint
	DoneCreate
)

func (p DrawPhase) String() string {
	switch p {
	case Create:
		return "create"
	case AddPoint:
		return "add_point"
	case DoneCreate:
		return "done_create"
	default:
		return fmt.Sprintf("DrawPhase(%d)", int(p))
	}
}

// MarshalText encodes the phase by name.
func (p DrawPhase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Frame is the input for one tick.
type Frame struct {
	DT    float64              `json:"dt"`
	Hands []gesture.HandSample `json:"hands"`
	// Taps are pointer events that arrived since the previous frame.
	Taps []gesture.TapKind `json:"taps,omitempty"`
	// Scroll is the pointer drag applied to the open picker.
	Scroll float64 `json:"scroll,omitempty"`
	// Release ends a picker drag, which commits the selection.
	Release bool `json:"release,omitempty"`
}

// CommandKind names a UI command.
type CommandKind string

const (
	CmdDraw        CommandKind = "draw"
	CmdEdit        CommandKind = "edit"
	CmdClose       CommandKind = "close"
	CmdNew         CommandKind = "new"
	CmdColor       CommandKind = "color"
	CmdSize        CommandKind = "size"
	CmdValue       CommandKind = "value_changed"
	CmdInitColor   CommandKind = "init_color"
	CmdInitSize    CommandKind = "init_size"
	CmdGrab        CommandKind = "grab"
	CmdRelease     CommandKind = "release"
	CmdDeleteEnter CommandKind = "delete_enter"
	CmdDeleteExit  CommandKind = "delete_exit"
	CmdDelete      CommandKind = "delete"
)

// Command is a discrete UI action from the host: a menu button, a picker
// event or a stroke interaction.
type Command struct {
	Kind   CommandKind `json:"command"`
	Stroke string      `json:"stroke,omitempty"`
	Index  int         `json:"index,omitempty"`
}

// EventKind names an outbound notification.
type EventKind string

const (
	EventModeChanged     EventKind = "mode_changed"
	EventSubMenuChanged  EventKind = "sub_menu_changed"
	EventCursorChanged   EventKind = "cursor_state_changed"
	EventStrokeFinalized EventKind = "stroke_finalized"
	EventStrokeDiscarded EventKind = "stroke_discarded"
	EventStrokeDeleted   EventKind = "stroke_deleted"
	EventStrokesCleared  EventKind = "strokes_cleared"
	EventScrollSettled   EventKind = "scroll_settled"
	EventStyleChanged    EventKind = "style_changed"
	EventDoubleTapped    EventKind = "double_tapped"
	EventHandLost        EventKind = "hand_lost"
)

// Event is an engine notification for the host.
type Event struct {
	Kind  EventKind `json:"kind"`
	Frame uint64    `json:"frame"`

	Mode    string `json:"mode,omitempty"`
	SubMenu string `json:"sub_menu,omitempty"`

	Tracked  bool `json:"tracked"`
	Selected bool `json:"selected"`

	Stroke   *stroke.Stroke `json:"stroke,omitempty"`
	StrokeID string         `json:"stroke_id,omitempty"`
	Count    int            `json:"count,omitempty"`

	Picker      string        `json:"picker,omitempty"`
	Index       int           `json:"index,omitempty"`
	Style       *stroke.Style `json:"style,omitempty"`
	CursorScale float64       `json:"cursor_scale,omitempty"`
}

// Listener receives engine events synchronously on the ticking goroutine.
type Listener func(Event)
