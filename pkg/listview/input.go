package listview

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/sortable/pkg/reorder"
)

// HitTestRow returns the ID of the topmost row under screen line y
func (m Model) HitTestRow(y int) (string, bool) {
	rel := y - headerHeight
	if rel < 0 || rel >= m.listHeight() {
		return "", false
	}
	r, ok := m.List.RowAt(float64(rel) + m.List.Scroll().Offset())
	if !ok {
		return "", false
	}
	return r.ID(), true
}

// hitTestZone classifies screen column x within a row
func (m Model) hitTestZone(x int) hitZone {
	switch {
	case x >= checkboxCol && x < checkboxCol+checkboxWidth:
		return zoneCheckbox
	case m.Width > titleCol+removeMargin && x >= m.Width-removeMargin:
		return zoneRemove
	case x >= 0 && x < checkboxCol:
		return zoneHandle
	default:
		return zoneRow
	}
}

// handleMouse routes mouse events. A left press starts a gesture: holding
// still for the long-press delay arms the row, motion after that drags it,
// motion before that scrolls the list.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.HelpOpen || m.PromptOpen {
		if msg.Action == tea.MouseActionPress && m.HelpOpen {
			switch msg.Button {
			case tea.MouseButtonWheelUp:
				m.HelpScroll -= wheelStep
				m.clampHelpScroll()
			case tea.MouseButtonWheelDown:
				m.HelpScroll += wheelStep
				m.clampHelpScroll()
			}
		}
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.Keymap.ResetPending()
			return m.startGesture(msg.X, msg.Y)
		case tea.MouseButtonWheelUp:
			return m.handleMouseWheel(-wheelStep)
		case tea.MouseButtonWheelDown:
			return m.handleMouseWheel(wheelStep)
		}

	case tea.MouseActionMotion:
		if m.gesture.active {
			return m.updateGesture(msg.X, msg.Y)
		}

	case tea.MouseActionRelease:
		if m.gesture.active {
			return m.endGesture()
		}
	}
	return m, nil
}

// startGesture records the press and schedules the long-press check
func (m Model) startGesture(x, y int) (tea.Model, tea.Cmd) {
	id, ok := m.HitTestRow(y)
	if !ok {
		return m, nil
	}
	if !m.List.Press(id) {
		return m, nil
	}

	m.gestureSeq++
	m.gesture = gesture{
		active: true,
		id:     id,
		seq:    m.gestureSeq,
		zone:   m.hitTestZone(x),
		pressX: x,
		pressY: y,
		panY:   y,
		lastX:  x,
		lastY:  y,
	}
	m.Cursor = id

	seq := m.gestureSeq
	return m, tea.Tick(m.Config.LongPress, func(time.Time) tea.Msg {
		return LongPressMsg{ID: id, Seq: seq}
	})
}

// handleLongPress arms the held row if the press that scheduled it is still down
func (m Model) handleLongPress(msg LongPressMsg) (tea.Model, tea.Cmd) {
	if !m.gesture.active || m.gesture.seq != msg.Seq || m.gesture.id != msg.ID {
		return m, nil
	}
	if m.List.LongPress(msg.ID) {
		m.gesture.armed = true
	}
	return m, nil
}

// updateGesture handles motion with the left button held
func (m Model) updateGesture(x, y int) (tea.Model, tea.Cmd) {
	g := &m.gesture
	prevY := g.lastY
	dx, dy := x-g.lastX, y-g.lastY
	g.lastX, g.lastY = x, y
	if dx != 0 || dy != 0 {
		g.moved = true
	}

	if _, dragging := m.List.Dragging(); !dragging {
		row, ok := m.List.Row(g.id)
		if !ok {
			m.gesture = gesture{}
			return m, nil
		}
		switch {
		case row.State() == reorder.RowArmed:
			if !m.List.PanStart(g.id) {
				return m, nil
			}
			// Translation counts from the last pointer line before the drag
			g.panY = prevY
			m.Log.Debug("drag: started", "row", g.id)
		case row.Pressed():
			m.List.PointerMoved(g.id, float64(abs(dx)+abs(dy)))
			if row.Pressed() {
				return m, nil
			}
			fallthrough
		default:
			// Not a drag: the gesture scrolls the list
			m.List.Scroll().ScrollBy(float64(-dy))
			return m, nil
		}
	}

	g.translation = float64(y - g.panY)
	if _, err := m.List.PanUpdate(g.id, g.translation); err != nil {
		if reorder.IsStale(err) {
			m.gesture = gesture{}
			return m, m.ensureTicking()
		}
		m.Log.Debug("drag: update refused", "row", g.id, "err", err)
		return m, nil
	}
	return m, m.ensureTicking()
}

// endGesture handles the left button release
func (m Model) endGesture() (tea.Model, tea.Cmd) {
	g := m.gesture
	m.gesture = gesture{}

	if id, dragging := m.List.Dragging(); dragging && id == g.id {
		if err := m.List.PanEnd(g.id); err != nil {
			if reorder.IsStale(err) {
				return m, m.ensureTicking()
			}
			return m.setStatus(err.Error(), true)
		}
		cmd := m.ensureTicking()
		it, _ := m.Items.Get(g.id)
		m2, statusCmd := m.setStatus(fmt.Sprintf("Moved %q to position %d", it.Title, it.Order+1), false)
		return m2, tea.Batch(cmd, statusCmd)
	}

	m.List.Release(g.id)
	cmd := m.ensureTicking()
	if g.moved || g.armed {
		return m, cmd
	}

	// A tap
	switch g.zone {
	case zoneCheckbox:
		return m.toggleItem(g.id)
	case zoneRemove:
		return m.removeItem(g.id)
	}
	return m, cmd
}

// handleMouseWheel scrolls the list; ignored while a row is held
func (m Model) handleMouseWheel(delta int) (tea.Model, tea.Cmd) {
	if m.List.Busy() {
		return m, nil
	}
	m.List.Scroll().ScrollBy(float64(delta))
	return m, nil
}

func (m *Model) clampHelpScroll() {
	maxScroll := m.helpMaxScroll()
	if m.HelpScroll > maxScroll {
		m.HelpScroll = maxScroll
	}
	if m.HelpScroll < 0 {
		m.HelpScroll = 0
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
