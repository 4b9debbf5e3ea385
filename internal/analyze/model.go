package analyze

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lakshaymaurya-felt/demole/internal/fsops"
	"github.com/lakshaymaurya-felt/demole/internal/ui"
)

// ─── Messages ────────────────────────────────────────────────────────────────

type scanDoneMsg struct {
	root *DirEntry
	err  error
}

type deleteResultMsg struct {
	path  string
	freed uint64
	err   error
}

func scanCmd(s *Scanner, root string) tea.Cmd {
	return func() tea.Msg {
		entry, err := s.Scan(root)
		return scanDoneMsg{root: entry, err: err}
	}
}

func deleteCmd(entry *DirEntry) tea.Cmd {
	return func() tea.Msg {
		freed, err := fsops.SafeDelete(entry.Path)
		return deleteResultMsg{path: entry.Path, freed: freed, err: err}
	}
}

// ─── Model ───────────────────────────────────────────────────────────────────

// Model is the bubbletea model for the disk analyzer TUI. It starts in a
// scanning state (spinner) and switches to tree navigation once the scan
// lands.
type Model struct {
	scanner  *Scanner
	rootPath string

	root       *DirEntry
	current    *DirEntry   // directory being displayed
	breadcrumb []*DirEntry // navigation history stack
	cursor     int
	offset     int // viewport scroll offset

	width, height int
	maxDepth      int   // 0 = unlimited
	minSize       int64 // 0 = show all

	scanning      bool
	spin          spinner.Model
	confirmDelete bool // two-key delete: d then enter
	freedTotal    uint64
	quitting      bool
	err           error
}

// NewModel creates a Model that will scan rootPath when started.
func NewModel(rootPath string, maxDepth int, minSize int64, exclude []string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = ui.StyleTitle

	return Model{
		scanner:  NewScanner(8, exclude),
		rootPath: rootPath,
		width:    80,
		height:   24,
		maxDepth: maxDepth,
		minSize:  minSize,
		scanning: true,
		spin:     sp,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, scanCmd(m.scanner, m.rootPath))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.scanning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case scanDoneMsg:
		m.scanning = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.root = msg.root
		m.current = msg.root
		return m, nil

	case deleteResultMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.freedTotal += msg.freed
		m.dropEntry(msg.path)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Two-key delete: d arms, enter fires, anything else disarms.
	if m.confirmDelete {
		m.confirmDelete = false
		if msg.String() == "enter" {
			items := m.visibleItems()
			if m.cursor >= 0 && m.cursor < len(items) {
				return m, deleteCmd(items[m.cursor])
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.ensureVisible()
		}

	case "down", "j":
		if m.cursor < len(m.visibleItems())-1 {
			m.cursor++
			m.ensureVisible()
		}

	case "right", "l", "enter":
		items := m.visibleItems()
		if m.cursor >= 0 && m.cursor < len(items) {
			entry := items[m.cursor]
			if entry.IsDir && len(entry.Children) > 0 {
				m.breadcrumb = append(m.breadcrumb, m.current)
				m.current = entry
				m.cursor = 0
				m.offset = 0
			}
		}

	case "left", "h":
		if len(m.breadcrumb) > 0 {
			m.current = m.breadcrumb[len(m.breadcrumb)-1]
			m.breadcrumb = m.breadcrumb[:len(m.breadcrumb)-1]
			m.cursor = 0
			m.offset = 0
		}

	case "d":
		if !m.scanning && len(m.visibleItems()) > 0 {
			m.confirmDelete = true
		}
	}

	return m, nil
}

// View delegates to view.go.
func (m Model) View() string {
	return m.renderView()
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func (m *Model) ensureVisible() {
	vh := m.viewportHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+vh {
		m.offset = m.cursor - vh + 1
	}
}

func (m Model) viewportHeight() int {
	h := m.height - 7 // header + footer + padding
	if h < 1 {
		h = 1
	}
	return h
}

// visibleItems returns the children of the current directory after the
// min-size and max-depth filters.
func (m Model) visibleItems() []*DirEntry {
	if m.current == nil {
		return nil
	}

	var out []*DirEntry
	for _, c := range m.current.Children {
		if m.minSize > 0 && c.Size < m.minSize {
			continue
		}
		if m.maxDepth > 0 && c.IsDir && len(m.breadcrumb) >= m.maxDepth {
			continue
		}
		out = append(out, c)
	}
	return out
}

// dropEntry removes a deleted entry from the current level and propagates
// the size change up the breadcrumb.
func (m *Model) dropEntry(path string) {
	if m.current == nil {
		return
	}
	for i, c := range m.current.Children {
		if c.Path != path {
			continue
		}
		m.current.Children = append(m.current.Children[:i], m.current.Children[i+1:]...)
		for p := m.current; p != nil; p = p.Parent {
			p.Size -= c.Size
		}
		if m.cursor >= len(m.current.Children) && m.cursor > 0 {
			m.cursor--
		}
		return
	}
}
