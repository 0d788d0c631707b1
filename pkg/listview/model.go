// Package listview is the terminal front end of the reorderable list: a
// bubbletea model that turns mouse presses, holds and drags into calls on the
// reorder engine and paints rows at their animated offsets.
package listview

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/sortable/internal/config"
	"github.com/marcus/sortable/internal/items"
	"github.com/marcus/sortable/internal/models"
	"github.com/marcus/sortable/internal/output"
	"github.com/marcus/sortable/internal/watch"
	"github.com/marcus/sortable/pkg/listview/keymap"
	"github.com/marcus/sortable/pkg/reorder"
)

// Options configures a Model
type Options struct {
	Config    *models.Config // nil = defaults
	Items     []models.Item  // nil = the stock nine items
	ItemsFile string         // source file, used by reload
	Watcher   *watch.Watcher // optional; started by the caller
	Logger    *slog.Logger
	Now       func() time.Time
	HelpStyle string // glamour style for the help overlay; empty = auto
}

// Model is the Bubble Tea model for the list view
type Model struct {
	// Window dimensions
	Width  int
	Height int

	// Data and engine
	Items *items.Store
	List  *reorder.List

	// Configuration
	Config    *models.Config
	ItemsFile string
	Watcher   *watch.Watcher
	Keymap    *keymap.Registry
	Log       *slog.Logger
	Now       func() time.Time

	// UI state
	Cursor      string // selected item ID
	HelpOpen    bool
	HelpContent string
	HelpScroll  int
	HelpStyle   string
	PromptOpen  bool
	Prompt      textinput.Model
	Ticking     bool // a frame tick is scheduled

	// Status message (temporary feedback)
	StatusMessage string
	StatusIsError bool

	gesture    gesture
	gestureSeq int
}

// New builds the model and its reorder engine
func New(opts Options) (Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := config.Validate(cfg); err != nil {
		return Model{}, err
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	list := opts.Items
	if list == nil {
		list = items.Default()
	}

	store := items.New(list)
	engine, err := reorder.New(config.ToEngine(cfg), store.Entries(),
		reorder.WithLogger(log),
		reorder.WithClock(now),
		reorder.WithReorderHandler(func(mapping map[string]int) {
			if err := store.Reorder(mapping); err != nil {
				log.Error("apply reorder", "err", err)
			}
		}),
	)
	if err != nil {
		return Model{}, fmt.Errorf("build list: %w", err)
	}

	km := keymap.NewRegistry()
	keymap.RegisterDefaults(km)
	if err := keymap.ApplyBindings(km, cfg.Bindings); err != nil {
		log.Warn("key bindings", "err", err)
	}

	prompt := textinput.New()
	prompt.Placeholder = "What needs doing?"
	prompt.CharLimit = 200
	prompt.Prompt = ""

	m := Model{
		Items:     store,
		List:      engine,
		Config:    cfg,
		ItemsFile: opts.ItemsFile,
		Watcher:   opts.Watcher,
		Keymap:    km,
		Log:       log,
		Now:       now,
		HelpStyle: opts.HelpStyle,
		Prompt:    prompt,
	}
	if first := store.Items(); len(first) > 0 {
		m.Cursor = first[0].ID
	}
	return m, nil
}

// Init starts the file watch loop when a watcher is configured
func (m Model) Init() tea.Cmd {
	return m.waitForFileChange()
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Frame ticks come first so an open prompt or overlay never breaks the
	// animation chain.
	if _, ok := msg.(FrameMsg); ok {
		return m.handleFrame()
	}

	// Prompt mode: forward non-key messages to textinput (cursor blink, etc.)
	if m.PromptOpen {
		if _, isKey := msg.(tea.KeyMsg); !isKey {
			if _, isMouse := msg.(tea.MouseMsg); !isMouse {
				var inputCmd tea.Cmd
				m.Prompt, inputCmd = m.Prompt.Update(msg)
				if inputCmd != nil {
					return m, inputCmd
				}
			}
		}
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.List.Scroll().SetViewportHeight(float64(m.listHeight()))
		m.ensureCursorVisible()
		if m.HelpOpen {
			return m, m.renderHelpAsync()
		}
		return m, nil

	case LongPressMsg:
		return m.handleLongPress(msg)

	case ItemsFileChangedMsg:
		return m, tea.Batch(m.loadItemsAsync(), m.waitForFileChange())

	case ItemsLoadedMsg:
		if msg.Error != nil {
			return m.setStatus(fmt.Sprintf("Reload failed: %v", msg.Error), true)
		}
		m.Items.Replace(msg.Items)
		cmd := m.syncRows()
		m2, statusCmd := m.setStatus(fmt.Sprintf("Reloaded %d items", m.Items.Len()), false)
		return m2, tea.Batch(cmd, statusCmd)

	case HelpRenderedMsg:
		if msg.Error != nil {
			m.HelpContent = m.Keymap.GenerateHelp()
		} else {
			m.HelpContent = msg.Content
		}
		m.clampHelpScroll()
		return m, nil

	case ClearStatusMsg:
		m.StatusMessage = ""
		m.StatusIsError = false
		return m, nil
	}

	return m, nil
}

// CurrentContext returns the keymap context for the current UI state
func (m Model) CurrentContext() keymap.Context {
	switch {
	case m.PromptOpen:
		return keymap.ContextPrompt
	case m.HelpOpen:
		return keymap.ContextHelp
	default:
		return keymap.ContextList
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd, found := m.Keymap.Lookup(msg, m.CurrentContext())
	if !found {
		if m.PromptOpen {
			var inputCmd tea.Cmd
			m.Prompt, inputCmd = m.Prompt.Update(msg)
			return m, inputCmd
		}
		return m, nil
	}
	return m.executeCommand(cmd)
}

// executeCommand runs a keymap command
func (m Model) executeCommand(cmd keymap.Command) (tea.Model, tea.Cmd) {
	switch cmd {
	case keymap.CmdQuit:
		return m, tea.Quit

	case keymap.CmdToggleHelp:
		m.HelpOpen = !m.HelpOpen
		if m.HelpOpen {
			m.HelpScroll = 0
			return m, m.renderHelpAsync()
		}
		return m, nil

	case keymap.CmdClose:
		m.HelpOpen = false
		return m, nil

	case keymap.CmdScrollDown:
		m.HelpScroll++
		m.clampHelpScroll()
		return m, nil

	case keymap.CmdScrollUp:
		m.HelpScroll--
		m.clampHelpScroll()
		return m, nil

	case keymap.CmdCursorDown:
		m.moveCursor(1)
		return m, nil

	case keymap.CmdCursorUp:
		m.moveCursor(-1)
		return m, nil

	case keymap.CmdCursorTop:
		m.moveCursor(-m.Items.Len())
		return m, nil

	case keymap.CmdCursorBottom:
		m.moveCursor(m.Items.Len())
		return m, nil

	case keymap.CmdHalfPageDown:
		m.moveCursor(m.halfPageRows())
		return m, nil

	case keymap.CmdHalfPageUp:
		m.moveCursor(-m.halfPageRows())
		return m, nil

	case keymap.CmdToggleChecked:
		return m.toggleItem(m.Cursor)

	case keymap.CmdRemove:
		return m.removeItem(m.Cursor)

	case keymap.CmdMoveUp:
		return m.moveItem(m.Cursor, -1)

	case keymap.CmdMoveDown:
		return m.moveItem(m.Cursor, 1)

	case keymap.CmdNewItem:
		m.PromptOpen = true
		m.Prompt.SetValue("")
		return m, m.Prompt.Focus()

	case keymap.CmdSubmit:
		title := m.Prompt.Value()
		m.PromptOpen = false
		m.Prompt.Blur()
		return m.addItem(title)

	case keymap.CmdCancel:
		m.PromptOpen = false
		m.Prompt.Blur()
		return m, nil

	case keymap.CmdReload:
		if m.ItemsFile == "" {
			return m.setStatus("No items file to reload", true)
		}
		return m, m.loadItemsAsync()
	}
	return m, nil
}

// Frame ticks

func (m Model) scheduleFrame() tea.Cmd {
	return tea.Tick(m.Config.FrameInterval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// ensureTicking starts the frame chain if it is not already running
func (m *Model) ensureTicking() tea.Cmd {
	if m.Ticking {
		return nil
	}
	if !m.List.Animating() {
		if _, dragging := m.List.Dragging(); !dragging {
			return nil
		}
	}
	m.Ticking = true
	return m.scheduleFrame()
}

func (m Model) handleFrame() (tea.Model, tea.Cmd) {
	id, dragging := m.List.Dragging()
	if dragging {
		// Re-run the last update so an edge hold keeps scrolling
		if _, err := m.List.PanUpdate(id, m.gesture.translation); err != nil && !reorder.IsStale(err) {
			m.Log.Debug("frame pan update", "row", id, "err", err)
		}
	}
	animating := m.List.Step()
	if animating || dragging {
		return m, m.scheduleFrame()
	}
	m.Ticking = false
	return m, nil
}

// Item operations

func (m Model) toggleItem(id string) (tea.Model, tea.Cmd) {
	if id == "" {
		return m, nil
	}
	it, err := m.Items.Toggle(id)
	if err != nil {
		return m.setStatus(err.Error(), true)
	}
	m.Log.Debug("item toggled", "id", id, "checked", it.Checked)
	return m, nil
}

func (m Model) removeItem(id string) (tea.Model, tea.Cmd) {
	if id == "" {
		return m, nil
	}
	removed, err := m.Items.Remove(id)
	if err != nil {
		return m.setStatus(err.Error(), true)
	}
	m.Log.Info("item removed", "id", id, "order", removed.Order)

	// Keep the cursor on the same position
	list := m.Items.Items()
	m.Cursor = ""
	if len(list) > 0 {
		idx := removed.Order
		if idx >= len(list) {
			idx = len(list) - 1
		}
		m.Cursor = list[idx].ID
	}
	cmd := m.syncRows()
	m2, statusCmd := m.setStatus(fmt.Sprintf("Removed %q", removed.Title), false)
	return m2, tea.Batch(cmd, statusCmd)
}

func (m Model) addItem(title string) (tea.Model, tea.Cmd) {
	it, err := m.Items.Add(title)
	if err != nil {
		return m.setStatus(err.Error(), true)
	}
	m.Log.Info("item added", "id", it.ID, "order", it.Order)
	m.Cursor = it.ID
	cmd := m.syncRows()
	m.ensureCursorVisible()
	return m, cmd
}

// moveItem swaps id with its neighbor in direction dir (-1 up, +1 down)
func (m Model) moveItem(id string, dir int) (tea.Model, tea.Cmd) {
	if id == "" || m.List.Busy() {
		return m, nil
	}
	table := m.List.Table()
	from, err := table.IndexOf(id)
	if err != nil {
		return m, nil
	}
	other, ok := table.IdentifierAt(from + dir)
	if !ok {
		return m, nil
	}
	next, err := table.Swap(id, other)
	if err != nil {
		return m.setStatus(err.Error(), true)
	}
	if err := m.Items.Reorder(next.Mapping()); err != nil {
		return m.setStatus(err.Error(), true)
	}
	cmd := m.syncRows()
	m.ensureCursorVisible()
	return m, cmd
}

// syncRows hands the current items to the engine after a membership or
// order change made outside a drag. Any gesture in progress ends.
func (m *Model) syncRows() tea.Cmd {
	if err := m.List.SetRows(m.Items.Entries()); err != nil {
		m.Log.Error("rebuild rows", "err", err)
		m.StatusMessage = err.Error()
		m.StatusIsError = true
		return nil
	}
	m.gesture = gesture{}
	if _, ok := m.Items.Get(m.Cursor); !ok {
		m.Cursor = ""
		if list := m.Items.Items(); len(list) > 0 {
			m.Cursor = list[0].ID
		}
	}
	return m.ensureTicking()
}

// Cursor movement

func (m *Model) moveCursor(delta int) {
	list := m.Items.Items()
	if len(list) == 0 {
		m.Cursor = ""
		return
	}
	idx := 0
	if it, ok := m.Items.Get(m.Cursor); ok {
		idx = it.Order
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(list) {
		idx = len(list) - 1
	}
	m.Cursor = list[idx].ID
	m.ensureCursorVisible()
}

func (m Model) halfPageRows() int {
	rows := m.listHeight() / (2 * m.Config.RowHeight)
	if rows < 1 {
		rows = 1
	}
	return rows
}

// ensureCursorVisible scrolls so the selected row is fully in view
func (m *Model) ensureCursorVisible() {
	it, ok := m.Items.Get(m.Cursor)
	if !ok || m.listHeight() <= 0 {
		return
	}
	s := m.List.Scroll()
	h := float64(m.Config.RowHeight)
	top := float64(it.Order) * h
	switch {
	case top < s.Offset():
		s.ScrollTo(top)
	case top+h > s.Offset()+s.ViewportHeight():
		s.ScrollTo(top + h - s.ViewportHeight())
	}
}

// listHeight is the number of lines available to rows
func (m Model) listHeight() int {
	h := m.Height - headerHeight - footerHeight
	if h < 0 {
		return 0
	}
	return h
}

// scrollLines returns the scroll offset rounded to whole lines
func (m Model) scrollLines() int {
	return int(math.Round(m.List.Scroll().Offset()))
}

// Async commands

func (m Model) waitForFileChange() tea.Cmd {
	if m.Watcher == nil {
		return nil
	}
	ch := m.Watcher.Changes()
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return ItemsFileChangedMsg{}
	}
}

func (m Model) loadItemsAsync() tea.Cmd {
	path := m.ItemsFile
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		list, err := items.Load(path)
		return ItemsLoadedMsg{Items: list, Error: err}
	}
}

func (m Model) renderHelpAsync() tea.Cmd {
	text := m.Keymap.GenerateHelp()
	width := m.helpContentWidth()
	style := m.HelpStyle
	return func() tea.Msg {
		content, err := output.RenderMarkdownWithWidth(text, width, style)
		return HelpRenderedMsg{Content: content, Width: width, Error: err}
	}
}

func (m Model) setStatus(text string, isError bool) (Model, tea.Cmd) {
	m.StatusMessage = text
	m.StatusIsError = isError
	return m, tea.Tick(statusDuration, func(time.Time) tea.Msg { return ClearStatusMsg{} })
}
