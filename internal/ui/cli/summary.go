package cli

import (
	"fmt"
	"modfather/internal/core/ports"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Width(14)

	cycleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#334155")).
			Padding(0, 1)
)

// RenderSummary is the verbose-mode recap of a run.
func RenderSummary(res ports.AnalysisResult) string {
	var lines []string
	lines = append(lines, titleStyle.Render("modfather "+res.Type+" analysis"))

	row := func(label, value string) {
		lines = append(lines, labelStyle.Render(label)+value)
	}
	row("Files", fmt.Sprintf("%d analyzed / %d found", res.FilesAnalyzed, res.FilesDiscovered))
	if res.Graph != nil {
		row("Nodes", fmt.Sprintf("%d", res.Graph.NodeCount()))
		row("Edges", fmt.Sprintf("%d", res.Graph.EdgeCount()))
	}
	if res.Report != nil {
		if n := len(res.Report.Cycles); n > 0 {
			row("Cycles", cycleStyle.Render(fmt.Sprintf("%d (%d namespaces)", n, res.Report.NamespacesInCycles)))
		} else {
			row("Cycles", successStyle.Render("none"))
		}
		row("Modules", fmt.Sprintf("%d suggested", len(res.Report.ModuleSuggestions)))
	}
	if len(res.Warnings) > 0 {
		row("Warnings", warningStyle.Render(fmt.Sprintf("%d", len(res.Warnings))))
	}
	output := "stdout"
	if res.OutputPath != "" {
		output = res.OutputPath
	}
	row("Output", fmt.Sprintf("%s (%s)", output, res.Format))
	row("Duration", res.Duration.Round(time.Millisecond).String())

	return boxStyle.Render(strings.Join(lines, "\n"))
}
