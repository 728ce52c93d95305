// Package monitor is a terminal view of a running engine: its mode, the
// current stroke style, the open picker and a log of recent events.
package monitor

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ayusman/airdoodle/internal/app"
)

// maxEvents is the number of events kept in the log.
const maxEvents = 12

// Update carries an engine event and the state right after it.
type Update struct {
	Event app.Event
	State app.State
}

// Done reports that the input ended.
type Done struct {
	State app.State
	Err   error
}

// Model is the bubbletea model of the monitor.
type Model struct {
	title  string
	state  app.State
	events []app.Event
	counts map[app.EventKind]int
	done   bool
	err    error
}

// New creates a monitor model.
func New(title string, initial app.State) *Model {
	return &Model{
		title:  title,
		state:  initial,
		counts: make(map[app.EventKind]int),
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case Update:
		m.state = msg.State
		m.counts[msg.Event.Kind]++
		m.events = append(m.events, msg.Event)
		if len(m.events) > maxEvents {
			m.events = m.events[len(m.events)-maxEvents:]
		}
	case Done:
		m.state = msg.State
		m.done = true
		m.err = msg.Err
	}
	return m, nil
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(panelStyle.Render(m.renderState()))
	b.WriteString("\n")
	if picker := m.renderPicker(); picker != "" {
		b.WriteString(panelStyle.Render(picker))
		b.WriteString("\n")
	}
	b.WriteString(panelStyle.Render(m.renderEvents()))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	case m.done:
		b.WriteString(doneStyle.Render("replay finished"))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("q: quit"))

	return appStyle.Render(b.String())
}

func (m *Model) renderState() string {
	st := m.state
	mode := st.Mode.String()
	modeText := lipgloss.NewStyle().Foreground(modeColors[mode]).Bold(true).Render(mode)

	swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(st.Style.Color.Hex())).Render(swatchGlyph)

	rows := []string{
		row("mode", modeText+"  sub-menu "+st.SubMenu.String()),
		row("phase", st.Phase.String()),
		row("style", fmt.Sprintf("%s %s  width %g  cursor %g", swatch, st.Style.Color.Hex(), st.Style.Width, st.CursorScale)),
		row("hands", fmt.Sprintf("tracked %v  selected %v", st.Tracked, st.Selected)),
		row("strokes", fmt.Sprintf("%d", st.Strokes)),
		row("frame", fmt.Sprintf("%d  %.1f fps", st.Frame, st.FPS)),
	}
	return strings.Join(rows, "\n")
}

func (m *Model) renderPicker() string {
	p := m.state.Picker
	if p == nil {
		return ""
	}

	slots := make([]string, 0, len(p.Slots))
	for _, s := range p.Slots {
		label := fmt.Sprintf("%d", s.Index)
		if s.Index == p.Selected {
			slots = append(slots, activeSlot.Render(label))
		} else {
			slots = append(slots, slotStyle.Render(label))
		}
	}

	state := "dragging"
	if p.Snapping {
		state = "snapping"
	}
	return strings.Join([]string{
		row("picker", fmt.Sprintf("%s  %s", p.Kind, state)),
		row("offset", fmt.Sprintf("%.1f → %.1f", p.Offset, p.Target)),
		row("slots", lipgloss.JoinHorizontal(lipgloss.Top, slots...)),
	}, "\n")
}

func (m *Model) renderEvents() string {
	if len(m.events) == 0 {
		return helpStyle.Render("no events yet")
	}
	lines := make([]string, 0, len(m.events))
	for _, ev := range m.events {
		lines = append(lines, frameStyle.Render(fmt.Sprintf("%d", ev.Frame))+" "+eventStyle.Render(describe(ev)))
	}
	return strings.Join(lines, "\n")
}

// Count returns how many events of kind k the monitor has seen.
func (m *Model) Count(k app.EventKind) int {
	return m.counts[k]
}

func row(label, value string) string {
	return labelStyle.Render(label) + value
}

func describe(ev app.Event) string {
	switch ev.Kind {
	case app.EventModeChanged:
		return "mode → " + ev.Mode
	case app.EventSubMenuChanged:
		return "sub-menu → " + ev.SubMenu
	case app.EventStrokeFinalized:
		n := 0
		if ev.Stroke != nil {
			n = len(ev.Stroke.Points)
		}
		return fmt.Sprintf("stroke %s finalized (%d points)", short(ev.StrokeID), n)
	case app.EventStrokeDeleted:
		return "stroke " + short(ev.StrokeID) + " deleted"
	case app.EventStrokesCleared:
		return fmt.Sprintf("%d strokes cleared", ev.Count)
	case app.EventScrollSettled:
		return fmt.Sprintf("%s picker settled on %d", ev.Picker, ev.Index)
	case app.EventStyleChanged:
		return fmt.Sprintf("%s set to %d", ev.Picker, ev.Index)
	case app.EventCursorChanged:
		return fmt.Sprintf("cursor tracked %v selected %v", ev.Tracked, ev.Selected)
	default:
		return strings.ReplaceAll(string(ev.Kind), "_", " ")
	}
}

func short(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
