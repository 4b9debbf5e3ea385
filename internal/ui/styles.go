package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
)

// ─── Palette ─────────────────────────────────────────────────────────────────

var (
	ColorGreen  = lipgloss.AdaptiveColor{Light: "#16a34a", Dark: "#4ade80"}
	ColorYellow = lipgloss.AdaptiveColor{Light: "#ca8a04", Dark: "#facc15"}
	ColorRed    = lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"}
	ColorCyan   = lipgloss.AdaptiveColor{Light: "#0891b2", Dark: "#22d3ee"}
	ColorPink   = lipgloss.AdaptiveColor{Light: "#db2777", Dark: "#f472b6"}
	ColorMuted  = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
)

// ─── Shared styles ───────────────────────────────────────────────────────────

var (
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(ColorCyan)

	StyleMuted = lipgloss.NewStyle().Foreground(ColorMuted)

	StyleBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 2)
)

// Colorized reports whether stdout is an interactive terminal that should
// receive styled output. NO_COLOR wins over TTY detection.
func Colorized() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// HumanSize renders a byte count as a binary-prefixed string (e.g. "1.4 GiB").
func HumanSize(bytes uint64) string {
	return humanize.IBytes(bytes)
}
