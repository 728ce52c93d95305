// Package tray provides the system tray menu: the Draw, Edit, New and Close
// buttons plus the current mode.
package tray

import (
	"strconv"
	"sync"

	"github.com/getlantern/systray"

	"github.com/ayusman/airdoodle/internal/app"
)

// button is a menu entry that issues an engine command.
type button struct {
	title   string
	tooltip string
	command app.CommandKind
}

var buttons = []button{
	{"Draw", "Draw new strokes", app.CmdDraw},
	{"Edit", "Move and delete strokes", app.CmdEdit},
	{"New", "Clear every stroke", app.CmdNew},
	{"Close", "Close the settings menu", app.CmdClose},
}

// Tray represents the system tray application.
type Tray struct {
	onCommand func(app.CommandKind)
	onQuit    func()
	mode      string
	strokes   int
	mu        sync.RWMutex

	// Menu items stored for later updates
	menuMode    *systray.MenuItem
	menuStrokes *systray.MenuItem
}

// New creates a new Tray showing Drawing mode.
func New() *Tray {
	return &Tray{mode: app.Drawing.String()}
}

// OnCommand sets the callback for the command buttons.
func (t *Tray) OnCommand(fn func(app.CommandKind)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onCommand = fn
}

// OnQuit sets the callback function to be called when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until Quit is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, func() {})
}

// Quit removes the tray icon and makes Run return.
func (t *Tray) Quit() {
	systray.Quit()
}

func (t *Tray) onReady() {
	systray.SetTooltip("airdoodle")

	t.mu.Lock()
	systray.SetTitle(modeTitle(t.mode))
	t.menuMode = systray.AddMenuItem("Mode: "+t.mode, "Current mode")
	t.menuMode.Disable()
	t.menuStrokes = systray.AddMenuItem(strokesTitle(t.strokes), "Finalized strokes")
	t.menuStrokes.Disable()
	t.mu.Unlock()
	systray.AddSeparator()

	for _, b := range buttons {
		item := systray.AddMenuItem(b.title, b.tooltip)
		go func(b button) {
			for range item.ClickedCh {
				t.handleCommand(b.command)
			}
		}(b)
	}
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit airdoodle")
	go func() {
		<-menuQuit.ClickedCh
		t.handleQuit()
	}()
}

func (t *Tray) handleCommand(kind app.CommandKind) {
	t.mu.RLock()
	callback := t.onCommand
	t.mu.RUnlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(kind)
	}
}

func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// HandleEvent keeps the menu in step with the engine. It is an app.Listener.
func (t *Tray) HandleEvent(ev app.Event) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch ev.Kind {
	case app.EventModeChanged:
		t.mode = ev.Mode
		if t.menuMode != nil {
			systray.SetTitle(modeTitle(t.mode))
			t.menuMode.SetTitle("Mode: " + t.mode)
		}
	case app.EventStrokeFinalized:
		t.strokes++
	case app.EventStrokeDeleted:
		if t.strokes > 0 {
			t.strokes--
		}
	case app.EventStrokesCleared:
		t.strokes = 0
	default:
		return
	}
	if t.menuStrokes != nil {
		t.menuStrokes.SetTitle(strokesTitle(t.strokes))
	}
}

// Mode returns the mode shown in the tray.
func (t *Tray) Mode() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.mode
}

// Strokes returns the stroke count shown in the tray.
func (t *Tray) Strokes() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.strokes
}

func modeTitle(mode string) string {
	switch mode {
	case app.Transform.String():
		return "✋ airdoodle"
	case app.Setting.String():
		return "⚙ airdoodle"
	default:
		return "✎ airdoodle"
	}
}

func strokesTitle(n int) string {
	if n == 1 {
		return "1 stroke"
	}
	return strconv.Itoa(n) + " strokes"
}
