package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dd0wney/cluso-steiner/pkg/config"
	"github.com/dd0wney/cluso-steiner/pkg/health"
	"github.com/dd0wney/cluso-steiner/pkg/logging"
	"github.com/dd0wney/cluso-steiner/pkg/metrics"
	"github.com/dd0wney/cluso-steiner/pkg/report"
	"github.com/dd0wney/cluso-steiner/pkg/search"
	"github.com/dd0wney/cluso-steiner/pkg/visualization"
)

// outputs holds the flags that only the CLI has
type outputs struct {
	dot         string
	svg         string
	json        string
	layout      string
	metricsAddr string
}

func main() {
	runFlags := config.RegisterFlags(flag.CommandLine)
	var out outputs
	flag.StringVar(&out.dot, "dot", "", "Write the graph in DOT form to this file")
	flag.StringVar(&out.svg, "svg", "", "Write the graph as SVG to this file")
	flag.StringVar(&out.json, "json", "", "Write node positions and selection as JSON to this file")
	flag.StringVar(&out.layout, "layout", visualization.LayoutForce, "SVG/JSON layout: force, circular or hierarchical")
	flag.StringVar(&out.metricsAddr, "metrics-addr", "", "Serve /metrics, /health and /ready on this address, e.g. :9090")
	flag.Parse()

	cfg, err := runFlags.Resolve()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, closer := cfg.NewLogger()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err = run(ctx, cfg, out, logger, os.Stdout)
	stop()
	closer.Close()
	if err != nil {
		log.Fatalf("Run failed: %v", err)
	}
}

// run searches, prints the report and writes the requested files. The
// metrics listener, when enabled, is shut down before run returns.
func run(ctx context.Context, cfg config.Config, out outputs, logger logging.Logger, stdout io.Writer) error {
	progress := health.NewProgress(cfg.Generations)

	opts := []search.Option{
		search.WithLogger(logger),
		search.WithOnGeneration(progress.Observe),
	}

	if out.metricsAddr != "" {
		reg := metrics.NewRegistry()
		opts = append(opts, search.WithMetrics(reg))

		srv := startMetricsServer(out.metricsAddr, reg, progress, logger)
		defer func() {
			if err := shutdownMetricsServer(srv); err != nil {
				logger.Error("metrics server shutdown failed", logging.Error(err))
			}
		}()
	}

	res, err := search.RunSearch(ctx, cfg, opts...)
	progress.Finish(err)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	fmt.Fprintln(stdout, report.Summary(res))

	if out.dot != "" {
		if err := writeFile(out.dot, func(w io.Writer) error {
			return visualization.WriteDOT(w, res.Edges, res.Best, res.Targets)
		}); err != nil {
			return fmt.Errorf("write dot: %w", err)
		}
		logger.Info("wrote dot", logging.Path(out.dot))
	}

	if out.svg == "" && out.json == "" {
		return nil
	}

	layoutCfg := visualization.DefaultLayoutConfig()
	layoutCfg.Seed = res.Run.Seed
	layout, err := visualization.NewLayout(out.layout, layoutCfg)
	if err != nil {
		return err
	}

	if out.svg != "" {
		if err := writeFile(out.svg, func(w io.Writer) error {
			return visualization.WriteSVG(w, res.Edges, res.Best, res.Targets, layout)
		}); err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
		logger.Info("wrote svg", logging.Path(out.svg))
	}

	if out.json != "" {
		if err := writeFile(out.json, func(w io.Writer) error {
			return writeJSON(w, res, layout)
		}); err != nil {
			return fmt.Errorf("write json: %w", err)
		}
		logger.Info("wrote json", logging.Path(out.json))
	}
	return nil
}

func startMetricsServer(addr string, reg *metrics.Registry, progress *health.Progress, logger logging.Logger) *http.Server {
	hc := health.NewHealthChecker()
	hc.RegisterCheck("search", health.ProgressCheck(progress, time.Minute))
	hc.RegisterReadinessCheck("ready", health.ReadyCheck(progress))

	mux := http.NewServeMux()
	mux.Handle("/metrics", reg.Handler())
	mux.Handle("/health", hc.HTTPHandler())
	mux.Handle("/ready", hc.ReadinessHandler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("metrics listening", logging.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", logging.Error(err))
		}
	}()
	return srv
}

func shutdownMetricsServer(srv *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func writeJSON(w io.Writer, res *search.Result, layout visualization.Layout) error {
	scene, err := visualization.NewScene(res.Edges, res.Best, res.Targets)
	if err != nil {
		return err
	}
	positions, err := scene.Positions(layout)
	if err != nil {
		return err
	}
	data, err := scene.ExportJSON(positions)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
