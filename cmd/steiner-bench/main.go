package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"runtime"
	"slices"
	"time"

	"github.com/dd0wney/cluso-steiner/pkg/genetic"
	"github.com/dd0wney/cluso-steiner/pkg/graph"
	"github.com/dd0wney/cluso-steiner/pkg/graphio"
)

func main() {
	numNodes := flag.Int("nodes", 200, "Number of nodes")
	chords := flag.Int("chords", 400, "Random edges added on top of the ring")
	numTargets := flag.Int("targets", 8, "Number of target nodes")
	population := flag.Int("population", 100, "Population size")
	generations := flag.Int("generations", 50, "Number of generations")
	seed := flag.Uint64("seed", 1, "Seed for the graph and the search")
	numWorkers := flag.Int("workers", 0, "Largest worker count to try (0 = CPU count)")
	out := flag.String("out", "", "Also write the generated graph here (.sz for snappy)")
	flag.Parse()

	if err := checkGraphFlags(*numNodes, *chords); err != nil {
		log.Fatalf("Invalid flags: %v", err)
	}
	if *numWorkers == 0 {
		*numWorkers = runtime.NumCPU()
	}

	fmt.Printf("Parallel Fitness Evaluation Benchmark\n")
	fmt.Printf("======================================\n\n")
	fmt.Printf("Configuration:\n")
	fmt.Printf("  Nodes:       %d\n", *numNodes)
	fmt.Printf("  Edges:       %d\n", *numNodes+*chords)
	fmt.Printf("  Targets:     %d\n", *numTargets)
	fmt.Printf("  Population:  %d\n", *population)
	fmt.Printf("  Generations: %d\n", *generations)
	fmt.Printf("  CPU Cores:   %d\n", runtime.NumCPU())
	fmt.Printf("  Workers:     %d\n\n", *numWorkers)

	rng := rand.New(rand.NewPCG(*seed, 0))
	edges := ringWithChords(rng, *numNodes, *chords)
	targets := pickTargets(rng, *numNodes, *numTargets)
	fmt.Printf("Targets: %v\n\n", targets.Sorted())

	if *out != "" {
		header := fmt.Sprintf("ring of %d nodes with %d chords, seed %d\ntargets %v", *numNodes, *chords, *seed, targets.Sorted())
		if err := graphio.WriteFile(*out, edges, header); err != nil {
			log.Fatalf("Failed to write graph: %v", err)
		}
		fmt.Printf("Wrote graph to %s\n\n", *out)
	}

	opts := genetic.DefaultOptions()
	opts.PopulationSize = *population
	opts.Generations = *generations
	opts.Seed = *seed

	counts := workerCounts(*numWorkers)
	stats := make([]BenchmarkStats, len(counts))
	for i, w := range counts {
		fmt.Printf("Testing %d worker(s)...\n", w)
		stats[i] = benchmarkRun(edges, targets, opts, w)
		fmt.Printf("   Best Fitness:  %d\n", stats[i].BestFitness)
		fmt.Printf("   Duration:      %s\n", stats[i].Duration)
		fmt.Printf("   Throughput:    %.0f evaluations/sec\n\n", stats[i].Throughput)
	}

	fmt.Printf("Summary\n")
	fmt.Printf("======================================\n")
	base := stats[0]
	for i, s := range stats {
		fmt.Printf("Workers %-4d %s (%.2fx)\n", counts[i], s.Duration, base.Duration.Seconds()/s.Duration.Seconds())
	}

	for i, s := range stats[1:] {
		if !slices.Equal(s.Best, base.Best) {
			log.Fatalf("Result with %d workers differs from the sequential run", counts[i+1])
		}
	}
	fmt.Printf("\nAll worker counts produced the same best individual\n")
}

// BenchmarkStats is the outcome of one timed run
type BenchmarkStats struct {
	Best        genetic.Individual
	BestFitness int
	Duration    time.Duration
	Throughput  float64
}

// checkGraphFlags rejects sizes ringWithChords cannot build: a chord needs
// two distinct nodes
func checkGraphFlags(nodes, chords int) error {
	if nodes < 2 {
		return fmt.Errorf("-nodes must be at least 2, got %d", nodes)
	}
	if chords < 0 {
		return fmt.Errorf("-chords must not be negative, got %d", chords)
	}
	return nil
}

// ringWithChords returns a ring over n nodes plus random non-loop chords,
// so every target set is connectable
func ringWithChords(rng *rand.Rand, n, chords int) graph.EdgeList {
	edges := make(graph.EdgeList, 0, n+chords)
	for i := 0; i < n; i++ {
		edges = append(edges, graph.Edge{A: i, B: (i + 1) % n})
	}
	for len(edges) < n+chords {
		a, b := rng.IntN(n), rng.IntN(n)
		if a != b {
			edges = append(edges, graph.Edge{A: a, B: b})
		}
	}
	return edges
}

func pickTargets(rng *rand.Rand, n, k int) graph.NodeSet {
	k = min(k, n)
	targets := graph.NewNodeSet()
	for len(targets) < k {
		targets[rng.IntN(n)] = struct{}{}
	}
	return targets
}

// workerCounts doubles from 1 up to limit, always ending at limit
func workerCounts(limit int) []int {
	counts := []int{1}
	for w := 2; w < limit; w *= 2 {
		counts = append(counts, w)
	}
	if limit > 1 {
		counts = append(counts, limit)
	}
	return counts
}

func benchmarkRun(edges graph.EdgeList, targets graph.NodeSet, opts genetic.Options, workers int) BenchmarkStats {
	opts.Workers = workers
	engine, err := genetic.NewEngine(edges, targets, opts)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	start := time.Now()
	res, err := engine.Run(context.Background())
	if err != nil {
		log.Fatalf("Run failed: %v", err)
	}
	duration := time.Since(start)

	return BenchmarkStats{
		Best:        res.Best,
		BestFitness: res.BestFitness,
		Duration:    duration,
		Throughput:  float64(res.Evaluations) / duration.Seconds(),
	}
}
