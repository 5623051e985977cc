// Package report renders search results for the terminal.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-steiner/pkg/genetic"
	"github.com/dd0wney/cluso-steiner/pkg/search"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Width(14)

	boxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(1, 2)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)
)

// sparkLevels are the bar glyphs from lowest to highest
var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// penalizedGlyph marks generations in which no individual connected the targets
const penalizedGlyph = '×'

// Sparkline draws one glyph per value, at most width glyphs. Values at or
// above penalty are drawn as × and left out of the scale.
func Sparkline(values []int, penalty, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}
	values = downsample(values, width)

	lo, hi := -1, -1
	for _, v := range values {
		if v >= penalty {
			continue
		}
		if lo == -1 || v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	var b strings.Builder
	for _, v := range values {
		switch {
		case v >= penalty:
			b.WriteRune(penalizedGlyph)
		case hi == lo:
			b.WriteRune(sparkLevels[0])
		default:
			idx := (v - lo) * (len(sparkLevels) - 1) / (hi - lo)
			b.WriteRune(sparkLevels[idx])
		}
	}
	return b.String()
}

// downsample keeps the minimum of each bucket so the best values survive
func downsample(values []int, width int) []int {
	if len(values) <= width {
		return values
	}
	out := make([]int, width)
	for i := range out {
		from := i * len(values) / width
		to := (i + 1) * len(values) / width
		m := values[from]
		for _, v := range values[from+1 : to] {
			m = min(m, v)
		}
		out[i] = m
	}
	return out
}

// Minima returns the per-generation minimum fitness from a run history
func Minima(history []genetic.GenerationStats) []int {
	out := make([]int, len(history))
	for i, s := range history {
		out[i] = s.MinFitness
	}
	return out
}

// Summary renders a finished search as a bordered block
func Summary(res *search.Result) string {
	row := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
	}

	status := successStyle.Render("connected")
	if !res.Connected {
		status = errorStyle.Render("targets not connected")
	}

	run := res.Run
	rows := []string{
		titleStyle.Render("Steiner subgraph search"),
		"",
		row("Run", res.RunID),
		row("Seed", fmt.Sprintf("%d", run.Seed)),
		row("Graph", fmt.Sprintf("%d edges, %d nodes", res.Stats.EdgeCount, res.Stats.NodeCount)),
		row("Targets", fmt.Sprint(res.Targets.Sorted())),
		row("Status", status),
		row("Fitness", fmt.Sprintf("%d (best ever %d at generation %d)", res.Fitness, run.BestEverFitness, run.BestEverGeneration)),
		row("Evaluations", fmt.Sprintf("%d", run.Evaluations)),
		row("History", Sparkline(Minima(run.History), run.Penalty, 60)),
		row("Edges", res.Selected.String()),
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
