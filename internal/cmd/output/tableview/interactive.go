package tableview

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amora/amoractl/internal/cmd/common"
	"github.com/amora/amoractl/internal/iostreams"
	"github.com/amora/amoractl/internal/log"
	"github.com/amora/amoractl/internal/query"
	"github.com/amora/amoractl/internal/theme"
	"github.com/amora/amoractl/internal/util"
)

const (
	// bubbles table cells carry one column of padding on each side
	cellPadding    = 2
	selectedMarker = "▌ "
	minBodyHeight  = 3
)

// writeClipboard is swapped in tests.
var writeClipboard = clipboard.WriteAll

type interactiveInput[R Record] struct {
	records  []R
	columns  []Column[R]
	activate ActivateFunc[R]
	refresh  RefreshFunc[R]
	filter   *filterSetup[R]
	width    int
	height   int
}

type activatedMsg struct {
	id      string
	message string
	err     error
}

type refreshedMsg[R Record] struct {
	records []R
	err     error
}

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Activate key.Binding
	Search   key.Binding
	Status   key.Binding
	Layout   key.Binding
	Copy     key.Binding
	Refresh  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k", "ctrl+p"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j", "ctrl+n"), key.WithHelp("↓/j", "down")),
		Activate: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "activate")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Status:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "status")),
		Layout:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "layout")),
		Copy:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy id")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Activate, k.Search, k.Status, k.Layout, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Activate},
		{k.Search, k.Status, k.Layout},
		{k.Copy, k.Refresh, k.Help, k.Quit},
	}
}

func runInteractive[R Record](streams *iostreams.IOStreams, cfg config, in interactiveInput[R]) error {
	m := newBubbleModel(cfg, in, theme.Current())
	m.rebuild()
	if m.fault != nil {
		return m.fault
	}

	// The TUI owns the screen; error logs still reach the log file.
	restore := log.SuspendErrorMirroring()
	defer restore()

	program := tea.NewProgram(m,
		tea.WithInput(streams.In),
		tea.WithOutput(streams.Out),
		tea.WithAltScreen(),
		tea.WithContext(cfg.ctx),
	)
	final, err := program.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(*bubbleModel[R]); ok && fm.fault != nil {
		return fm.fault
	}
	return nil
}

type bubbleModel[R Record] struct {
	ctx         context.Context
	title       string
	profileName string
	columns     []Column[R]
	activate    ActivateFunc[R]
	refresh     RefreshFunc[R]

	all     []R
	visible []R
	proj    Projection
	fault   error

	spec     *query.Spec[R]
	criteria query.Criteria
	statuses query.Statuses

	layout      common.Layout
	width       int
	height      int
	cursor      int
	cardOffsets []int

	table        table.Model
	viewport     viewport.Model
	search       textinput.Model
	searching    bool
	searchBefore string
	spinner      spinner.Model
	busy         bool
	status       string

	keys    keyMap
	help    help.Model
	palette theme.Palette
}

func newBubbleModel[R Record](cfg config, in interactiveInput[R], palette theme.Palette) *bubbleModel[R] {
	m := &bubbleModel[R]{
		ctx:         cfg.ctx,
		title:       cfg.title,
		profileName: cfg.profileName,
		columns:     in.columns,
		activate:    in.activate,
		refresh:     in.refresh,
		all:         in.records,
		layout:      cfg.layout,
		width:       in.width,
		height:      in.height,
		keys:        defaultKeyMap(),
		help:        help.New(),
		palette:     palette,
	}
	if m.ctx == nil {
		m.ctx = context.Background()
	}
	if in.filter != nil {
		spec := in.filter.spec
		m.spec = &spec
		m.criteria = in.filter.criteria
		m.statuses = in.filter.statuses
	}

	m.search = textinput.New()
	m.search.Prompt = "/ "
	m.search.Placeholder = "search"
	m.search.CharLimit = 128

	m.spinner = spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(palette.ForegroundStyle(theme.ColorAccent)),
	)
	m.viewport = viewport.New(m.width, minBodyHeight)
	m.help.Width = m.width

	m.keys.Activate.SetEnabled(m.activate != nil)
	m.keys.Refresh.SetEnabled(m.refresh != nil)
	m.keys.Search.SetEnabled(m.spec != nil)
	m.keys.Status.SetEnabled(m.spec != nil && len(m.statuses) > 0)
	return m
}

func (m *bubbleModel[R]) Init() tea.Cmd {
	return nil
}

func (m *bubbleModel[R]) Update(msg tea.Msg) (tea.Model, tea.Cmd) { //nolint:ireturn
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, m.rebuild()
	case activatedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %s: %v", msg.id, msg.err)
		} else {
			m.status = msg.message
		}
		if m.refresh == nil {
			m.busy = false
			return m, nil
		}
		return m, m.fetch()
	case refreshedMsg[R]:
		m.busy = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: refresh failed: %v", msg.err)
			return m, nil
		}
		m.all = msg.records
		return m, m.rebuild()
	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if m.searching {
			return m, m.updateSearch(msg)
		}
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *bubbleModel[R]) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.searchBefore = m.criteria.SearchText
		m.search.SetValue(m.criteria.SearchText)
		m.search.CursorEnd()
		return m.search.Focus()
	case key.Matches(msg, m.keys.Status):
		m.criteria.Status = m.statuses.Next(m.criteria.Status)
		m.status = "Filter: " + m.criteria.String()
		return m.rebuild()
	case key.Matches(msg, m.keys.Layout):
		if m.effectiveLayout() == common.LayoutStacked {
			m.layout = common.LayoutGrid
		} else {
			m.layout = common.LayoutStacked
		}
		m.layoutBody()
	case key.Matches(msg, m.keys.Copy):
		m.copySelected()
	case key.Matches(msg, m.keys.Refresh):
		if m.busy {
			return nil
		}
		m.busy = true
		m.status = "Refreshing…"
		return tea.Batch(m.spinner.Tick, m.fetch())
	case key.Matches(msg, m.keys.Activate):
		return m.activateSelected()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layoutBody()
	}
	return nil
}

func (m *bubbleModel[R]) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc":
		m.searching = false
		m.search.Blur()
		m.criteria.SearchText = m.searchBefore
		return m.rebuild()
	case "enter":
		m.searching = false
		m.search.Blur()
		return nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == m.criteria.SearchText {
		return cmd
	}
	m.criteria.SearchText = m.search.Value()
	return tea.Batch(cmd, m.rebuild())
}

func (m *bubbleModel[R]) activateSelected() tea.Cmd {
	if m.busy || len(m.visible) == 0 {
		return nil
	}
	rec := m.visible[m.cursor]
	id := rec.RecordID()
	m.busy = true
	m.status = fmt.Sprintf("Working on %s…", util.AbbreviateUUID(id))

	ctx, fn := m.ctx, m.activate
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		message, err := fn(ctx, rec)
		return activatedMsg{id: id, message: message, err: err}
	})
}

func (m *bubbleModel[R]) fetch() tea.Cmd {
	ctx, fn := m.ctx, m.refresh
	return func() tea.Msg {
		records, err := fn(ctx)
		return refreshedMsg[R]{records: records, err: err}
	}
}

func (m *bubbleModel[R]) copySelected() {
	id := m.selectedID()
	if id == "" {
		return
	}
	if err := writeClipboard(id); err != nil {
		m.status = fmt.Sprintf("Error: copy failed: %v", err)
		return
	}
	m.status = "Copied " + id
}

func (m *bubbleModel[R]) selectedID() string {
	if m.cursor >= 0 && m.cursor < len(m.proj.Rows) {
		return m.proj.Rows[m.cursor].ID
	}
	return ""
}

func (m *bubbleModel[R]) moveCursor(delta int) {
	if len(m.proj.Rows) == 0 {
		return
	}
	m.cursor = clamp(m.cursor+delta, 0, len(m.proj.Rows)-1)
	if m.effectiveLayout() == common.LayoutStacked {
		m.viewport.SetContent(m.stackedContent())
		m.scrollToCursor()
		return
	}
	m.table.SetCursor(m.cursor)
}

// rebuild refilters and reprojects the records, keeping the selection on the
// same record when it is still visible. A projection fault ends the program.
func (m *bubbleModel[R]) rebuild() tea.Cmd {
	selected := m.selectedID()

	m.visible = m.all
	if m.spec != nil {
		m.visible = query.Filter(m.all, m.criteria, *m.spec)
	}
	p, err := Project(m.visible, m.columns)
	if err != nil {
		m.fault = err
		return tea.Quit
	}
	m.proj = p

	if idx := p.IndexOf(selected); selected != "" && idx >= 0 {
		m.cursor = idx
	}
	m.cursor = clamp(m.cursor, 0, max(len(p.Rows)-1, 0))
	m.layoutBody()
	return nil
}

func (m *bubbleModel[R]) effectiveLayout() common.Layout {
	return ChooseLayout(m.layout, m.width)
}

func (m *bubbleModel[R]) bodyHeight() int {
	chrome := 3 // filter, status and help lines
	if m.title != "" || m.profileName != "" {
		chrome++
	}
	if m.help.ShowAll {
		chrome += len(m.keys.FullHelp()[0]) - 1
	}
	return max(m.height-chrome, minBodyHeight)
}

func (m *bubbleModel[R]) layoutBody() {
	height := m.bodyHeight()
	if m.effectiveLayout() == common.LayoutStacked {
		m.viewport.Width = m.width
		m.viewport.Height = height
		m.viewport.SetContent(m.stackedContent())
		m.scrollToCursor()
		return
	}
	m.table = m.buildTable(height)
}

func (m *bubbleModel[R]) buildTable(height int) table.Model {
	headers := m.proj.Headers
	limit := 0
	if m.width > 0 {
		limit = m.width - cellPadding*len(headers)
	}
	widths, _ := calculateColumnWidths(headers, m.proj.Matrix(), limit)

	columns := make([]table.Column, len(headers))
	for i, h := range headers {
		columns[i] = table.Column{Title: h, Width: widths[i]}
	}
	rows := make([]table.Row, len(m.proj.Rows))
	for i, r := range m.proj.Rows {
		row := make(table.Row, len(r.Cells))
		for j, cell := range r.Cells {
			row[j] = fitCell(cell, widths[j])
		}
		rows[i] = row
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Foreground(m.palette.Adaptive(theme.ColorTextPrimary)).
		Background(m.palette.Adaptive(theme.ColorSurface))
	styles.Cell = styles.Cell.
		Foreground(m.palette.Adaptive(theme.ColorTextPrimary))
	styles.Selected = styles.Selected.
		Foreground(m.palette.Adaptive(theme.ColorAccentText)).
		Background(m.palette.Adaptive(theme.ColorAccent))

	tbl := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithStyles(styles),
		table.WithHeight(height),
	)
	if m.width > 0 {
		tbl.SetWidth(m.width)
	}
	tbl.SetCursor(m.cursor)
	return tbl
}

func (m *bubbleModel[R]) stackedContent() string {
	if len(m.proj.Rows) == 0 {
		m.cardOffsets = nil
		return m.palette.ForegroundStyle(theme.ColorTextMuted).Render(noDataMessage)
	}

	styler := func(col int, line string) string {
		if col >= len(m.proj.Classes) || m.proj.Classes[col] == "" {
			return line
		}
		class := m.proj.Classes[col]
		if class == StatusClass {
			// status cells are colored by their value, e.g. status-active
			class += "-" + strings.TrimSpace(line)
		}
		return m.palette.ClassStyle(class).Render(line)
	}
	marker := m.palette.ForegroundStyle(theme.ColorAccent).Render(selectedMarker)
	blank := strings.Repeat(" ", lipgloss.Width(selectedMarker))
	width := max(m.width-lipgloss.Width(selectedMarker), 0)

	m.cardOffsets = make([]int, len(m.proj.Rows))
	var lines []string
	for i := range m.proj.Rows {
		if i > 0 {
			lines = append(lines, "")
		}
		m.cardOffsets[i] = len(lines)
		prefix := blank
		if i == m.cursor {
			prefix = marker
		}
		for _, line := range cardLines(m.proj, i, width, styler) {
			lines = append(lines, prefix+line)
		}
	}
	return strings.Join(lines, "\n")
}

func (m *bubbleModel[R]) scrollToCursor() {
	if m.cursor >= len(m.cardOffsets) {
		return
	}
	offset := m.cardOffsets[m.cursor]
	if offset < m.viewport.YOffset || offset >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(offset)
	}
}

func (m *bubbleModel[R]) View() string {
	var sections []string
	if header := m.renderHeader(); header != "" {
		sections = append(sections, header)
	}
	sections = append(sections, m.renderFilterLine())

	if m.effectiveLayout() == common.LayoutStacked {
		sections = append(sections, m.viewport.View())
	} else {
		sections = append(sections, m.table.View())
	}

	sections = append(sections, m.renderStatus(), m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *bubbleModel[R]) renderHeader() string {
	if m.title == "" && m.profileName == "" {
		return ""
	}
	title := lipgloss.NewStyle().Bold(true).
		Foreground(m.palette.Adaptive(theme.ColorTextPrimary)).
		Render(m.title)
	if m.profileName == "" {
		return title
	}
	profile := m.palette.ForegroundStyle(theme.ColorTextMuted).Render("profile: " + m.profileName)
	if m.title == "" {
		return profile
	}
	return title + "  " + profile
}

func (m *bubbleModel[R]) renderFilterLine() string {
	if m.searching {
		return m.search.View()
	}
	summary := fmt.Sprintf("%d of %d", len(m.visible), len(m.all))
	if m.spec != nil {
		summary = m.criteria.String() + "  " + summary
	}
	return m.palette.ForegroundStyle(theme.ColorTextSecondary).Render(summary)
}

func (m *bubbleModel[R]) renderStatus() string {
	status := m.status
	if m.busy {
		status = m.spinner.View() + " " + status
	}
	token := theme.ColorTextMuted
	if strings.HasPrefix(m.status, "Error:") {
		token = theme.ColorDanger
	}
	return m.palette.ForegroundStyle(token).Render(status)
}
