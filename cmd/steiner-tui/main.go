package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dd0wney/cluso-steiner/pkg/config"
	"github.com/dd0wney/cluso-steiner/pkg/genetic"
	"github.com/dd0wney/cluso-steiner/pkg/logging"
	"github.com/dd0wney/cluso-steiner/pkg/search"
)

func main() {
	runFlags := config.RegisterFlags(flag.CommandLine)
	flag.Parse()

	cfg, err := runFlags.Resolve()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// The terminal belongs to the UI; only a log file receives log lines
	var logger logging.Logger = logging.NewNopLogger()
	if cfg.Log.File != "" {
		l, closer := cfg.NewLogger()
		defer closer.Close()
		logger = l
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	p := tea.NewProgram(newModel(cancel, cfg.Generations), tea.WithAltScreen())

	go func() {
		res, err := search.RunSearch(ctx, cfg,
			search.WithLogger(logger),
			search.WithOnGeneration(func(s genetic.GenerationStats) { p.Send(generationMsg(s)) }),
		)
		p.Send(doneMsg{res: res, err: err})
	}()

	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}
