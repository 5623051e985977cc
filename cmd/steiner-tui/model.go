package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-steiner/pkg/genetic"
	"github.com/dd0wney/cluso-steiner/pkg/report"
	"github.com/dd0wney/cluso-steiner/pkg/search"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(1, 2).
			MarginLeft(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true).
			MarginLeft(2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type keyMap struct {
	Quit key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Quit}}
}

// generationMsg carries one scored generation from the search goroutine
type generationMsg genetic.GenerationStats

// doneMsg ends the run
type doneMsg struct {
	res *search.Result
	err error
}

type model struct {
	cancel context.CancelFunc
	bar    progress.Model
	help   help.Model
	keys   keyMap
	total  int
	width  int

	last   genetic.GenerationStats
	seen   bool
	minima []int

	started time.Time
	elapsed time.Duration
	done    bool
	res     *search.Result
	err     error
}

func newModel(cancel context.CancelFunc, generations int) model {
	return model{
		cancel:  cancel,
		bar:     progress.New(progress.WithDefaultGradient()),
		help:    help.New(),
		keys:    keys,
		total:   generations,
		started: time.Now(),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.bar.Width = max(10, min(msg.Width-8, 80))

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.cancel()
			return m, tea.Quit
		}

	case generationMsg:
		m.last = genetic.GenerationStats(msg)
		m.seen = true
		m.minima = append(m.minima, msg.MinFitness)
		m.elapsed = time.Since(m.started)

	case doneMsg:
		m.done = true
		m.res = msg.res
		m.err = msg.err
		m.elapsed = time.Since(m.started)
	}

	return m, nil
}

// percent is the share of generations scored; generation 0 is the initial population
func (m model) percent() float64 {
	if m.done && m.err == nil {
		return 1
	}
	if !m.seen || m.total == 0 {
		return 0
	}
	return float64(m.last.Generation) / float64(m.total)
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Steiner subgraph search"))
	b.WriteString("\n\n  ")
	b.WriteString(m.bar.ViewAs(m.percent()))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Search failed: %v", m.err)))
		b.WriteString("\n")
	}

	if m.done && m.res != nil {
		b.WriteString(report.Summary(m.res))
		b.WriteString("\n")
	} else {
		b.WriteString(statsBoxStyle.Render(m.stats()))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m model) stats() string {
	if !m.seen {
		return "Loading graph..."
	}

	penalized := 0.0
	if m.last.Population > 0 {
		penalized = float64(m.last.Penalized) / float64(m.last.Population)
	}

	best := fmt.Sprintf("%d", m.last.BestEverFitness)
	if m.last.BestEverFitness >= m.last.Penalty {
		best = "none connected yet"
	}

	lines := []string{
		fmt.Sprintf("Generation   %d / %d", m.last.Generation, m.total),
		fmt.Sprintf("Current min  %d", m.last.MinFitness),
		fmt.Sprintf("Best ever    %s", best),
		fmt.Sprintf("Penalized    %.0f%%", penalized*100),
		fmt.Sprintf("Elapsed      %s", m.elapsed.Round(time.Millisecond)),
		"History      " + report.Sparkline(m.minima, m.last.Penalty, 50),
	}
	return strings.Join(lines, "\n")
}
