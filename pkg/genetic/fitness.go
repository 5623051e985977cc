package genetic

import (
	"sync/atomic"

	"github.com/dd0wney/cluso-steiner/pkg/algorithms"
	"github.com/dd0wney/cluso-steiner/pkg/graph"
	"github.com/dd0wney/cluso-steiner/pkg/parallel"
)

// BasePenalty is the score of a candidate that leaves the targets disconnected
// on graphs with fewer than BasePenalty edges
const BasePenalty = 1000

// PenaltyFor returns the disconnection penalty for a graph with m edges.
// It always exceeds the largest achievable edge count.
func PenaltyFor(m int) int {
	if m+1 > BasePenalty {
		return m + 1
	}
	return BasePenalty
}

// Fitness scores one candidate: its edge count when the kept edges connect
// every target, PenaltyFor(len(edges)) otherwise.
func Fitness(ind Individual, edges graph.EdgeList, targets graph.NodeSet) int {
	adj := graph.BuildMasked(edges, ind)
	if !algorithms.IsConnected(adj, targets) {
		return PenaltyFor(len(edges))
	}
	return ind.Count()
}

// Evaluator scores whole populations, optionally on a worker pool
type Evaluator struct {
	edges       graph.EdgeList
	targets     graph.NodeSet
	pool        *parallel.WorkerPool
	evaluations atomic.Int64
}

// NewEvaluator creates an evaluator. With workers > 1 populations are scored
// concurrently; Close releases the workers.
func NewEvaluator(edges graph.EdgeList, targets graph.NodeSet, workers int) (*Evaluator, error) {
	ev := &Evaluator{edges: edges, targets: targets}
	if workers > 1 {
		pool, err := parallel.NewWorkerPool(workers)
		if err != nil {
			return nil, err
		}
		ev.pool = pool
	}
	return ev, nil
}

// Fitness scores one individual
func (ev *Evaluator) Fitness(ind Individual) int {
	ev.evaluations.Add(1)
	return Fitness(ind, ev.edges, ev.targets)
}

// Evaluate scores every individual. Scores are written by index, so the
// result is the same for any number of workers.
func (ev *Evaluator) Evaluate(pop []Individual) ([]int, error) {
	scores := make([]int, len(pop))
	if ev.pool == nil {
		for i, ind := range pop {
			scores[i] = ev.Fitness(ind)
		}
		return scores, nil
	}

	err := ev.pool.ForEach(len(pop), func(i int) {
		scores[i] = ev.Fitness(pop[i])
	})
	if err != nil {
		return nil, err
	}
	return scores, nil
}

// Evaluations returns how many fitness calls have been made
func (ev *Evaluator) Evaluations() int64 {
	return ev.evaluations.Load()
}

// Penalty returns the disconnection penalty for the evaluator's graph
func (ev *Evaluator) Penalty() int {
	return PenaltyFor(len(ev.edges))
}

// Close stops the worker pool, if any
func (ev *Evaluator) Close() {
	if ev.pool != nil {
		ev.pool.Close()
	}
}
