package analyze

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lakshaymaurya-felt/demole/internal/ui"
)

var (
	styleDir    = lipgloss.NewStyle().Foreground(ui.ColorCyan)
	styleFile   = lipgloss.NewStyle()
	styleOld    = lipgloss.NewStyle().Foreground(ui.ColorMuted)
	styleLarge  = lipgloss.NewStyle().Foreground(ui.ColorYellow)
	styleCursor = lipgloss.NewStyle().Foreground(ui.ColorPink).Bold(true)
	styleBar    = lipgloss.NewStyle().Foreground(ui.ColorGreen)
	styleBarBg  = lipgloss.NewStyle().Foreground(ui.ColorMuted)
)

func (m Model) renderView() string {
	if m.quitting {
		return ""
	}

	if m.scanning {
		return fmt.Sprintf("\n  %s scanning %s… (%d entries)\n",
			m.spin.View(), m.rootPath, m.scanner.ScannedCount())
	}

	if m.err != nil {
		return "\n  " + lipgloss.NewStyle().Foreground(ui.ColorRed).Render(m.err.Error()) + "\n"
	}

	w := m.width
	if w < 40 {
		w = 40
	}

	var s strings.Builder
	s.WriteString(m.renderHeader(w))
	s.WriteString("\n")
	s.WriteString(m.renderBody(w))
	s.WriteString("\n")
	s.WriteString(m.renderFooter())
	return s.String()
}

func (m Model) renderHeader(w int) string {
	var crumbs []string
	for _, bc := range m.breadcrumb {
		crumbs = append(crumbs, bc.Name)
	}
	crumbs = append(crumbs, m.current.Name)

	title := ui.StyleTitle.Render("  Disk Analyzer")
	path := ui.StyleMuted.Render(fmt.Sprintf("  %s    %s", m.current.Path, ui.HumanSize(uint64(m.current.Size))))
	trail := ui.StyleMuted.Render("  " + strings.Join(crumbs, " › "))

	inner := lipgloss.JoinVertical(lipgloss.Left, title, path, trail)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorCyan).
		Width(w - 2).
		Render(inner)
}

func (m Model) renderBody(w int) string {
	items := m.visibleItems()
	if len(items) == 0 {
		return ui.StyleMuted.Italic(true).Render("  (empty directory)")
	}

	barWidth := 20
	if w > 100 {
		barWidth = 28
	}

	vh := m.viewportHeight()
	var lines []string
	for i := m.offset; i < len(items) && i < m.offset+vh; i++ {
		lines = append(lines, m.renderEntry(items[i], barWidth, i == m.cursor))
	}

	if len(items) > vh {
		lines = append(lines, ui.StyleMuted.Italic(true).
			Render(fmt.Sprintf("  ── %d/%d entries ──", min(m.offset+vh, len(items)), len(items))))
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderEntry(entry *DirEntry, barWidth int, selected bool) string {
	pct := entry.Percentage(m.current.Size)

	filled := int(pct / 100 * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	bar := styleBar.Render(strings.Repeat("█", filled)) +
		styleBarBg.Render(strings.Repeat("░", barWidth-filled))

	style := styleFile
	switch {
	case entry.IsDir:
		style = styleDir
	case entry.Size >= 100*(1<<20):
		style = styleLarge
	}
	if entry.IsOld() {
		style = styleOld
	}

	name := entry.Name
	if entry.IsDir {
		name += "/"
	}
	maxName := m.width - barWidth - 24
	if maxName < 12 {
		maxName = 12
	}
	if len(name) > maxName {
		name = name[:maxName-1] + "…"
	}

	prefix := "  "
	if selected {
		prefix = styleCursor.Render("❯ ")
		if m.confirmDelete {
			prefix = lipgloss.NewStyle().Foreground(ui.ColorRed).Render("✗ ")
		}
	}

	return fmt.Sprintf("%s%s %s %5.1f%%  %-*s",
		prefix, bar, fmt.Sprintf("%9s", ui.HumanSize(uint64(entry.Size))), pct, maxName, style.Render(name))
}

func (m Model) renderFooter() string {
	help := "↑/↓ move · →/enter open · ← back · d+enter delete · q quit"
	if m.confirmDelete {
		help = "press enter to DELETE the selected entry, any other key cancels"
	}
	line := "  " + help
	if m.freedTotal > 0 {
		line += "  ·  freed " + ui.HumanSize(m.freedTotal)
	}
	return ui.StyleMuted.Render(line)
}
