package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/demole/internal/analyze"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Explore disk usage",
	Long:  "Interactive disk space analyzer with a size-sorted tree view.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().Int("depth", 0, "Maximum directory depth to display")
	analyzeCmd.Flags().String("min-size", "", "Minimum size to display (e.g., 100MB)")
	analyzeCmd.Flags().StringSlice("exclude", nil, "Directory names to exclude from the scan")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	root := ""
	if len(args) == 1 {
		root = args[0]
	} else if home, err := os.UserHomeDir(); err == nil {
		root = home
	} else {
		root = "/"
	}

	depth, _ := cmd.Flags().GetInt("depth")
	exclude, _ := cmd.Flags().GetStringSlice("exclude")

	var minSize int64
	if s, _ := cmd.Flags().GetString("min-size"); s != "" {
		n, err := humanize.ParseBytes(s)
		if err != nil {
			return fmt.Errorf("invalid --min-size %q: %w", s, err)
		}
		minSize = int64(n)
	}

	p := tea.NewProgram(analyze.NewModel(root, depth, minSize, exclude), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
