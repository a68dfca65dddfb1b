package search

import (
	"math"
	"runtime"
	"sync"
	"time"

	"aiwargame/internal/board"
	"aiwargame/internal/game"
)

// maxOrMinParallel fans candidates out across a bounded worker pool. Each
// task starts from a snapshot of alpha/beta as of this call and recurses
// through maxOrMin, which fans out again only while the depth is below
// ParallelLevels and runs sequentially deeper down; siblings never see each other's tightened bounds, which
// forfeits some cuts but never changes the returned minimax value, since
// every candidate is still fully evaluated.
func (e *Engine) maxOrMinParallel(s *game.State, maximizing bool, perspective board.Player, depth int, alpha, beta Score, start time.Time, candidates []game.Action) (Score, game.Action, bool, float64) {
	workers := e.Options.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	type taskResult struct {
		score Score
		depth float64
		ok    bool
	}
	results := make([]taskResult, len(candidates))

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, a := range candidates {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, a game.Action) {
			defer wg.Done()
			defer func() { <-sem }()

			child := s.Clone()
			if _, _, _, err := child.PlayTurnFromAction(a); err != nil {
				// unreachable once validated by EnumerateActions
				panic("search: enumerated action " + a.String() + " failed to execute: " + err.Error())
			}
			score, _, _, childDepth := e.maxOrMin(child, !maximizing, perspective, depth+1, alpha, beta, start)
			results[i] = taskResult{score: score, depth: childDepth, ok: true}
		}(i, a)
	}
	wg.Wait()

	var (
		best     Score
		bestAct  game.Action
		haveBest bool
		depthSum float64
		seen     int
	)
	if maximizing {
		best = Score(math.MinInt32)
	} else {
		best = Score(math.MaxInt32)
	}

	// Pointwise fold: maxima (or minima) of best-score across tasks, ties
	// favor the later task since results are visited in candidate order.
	for i, r := range results {
		if !r.ok {
			continue
		}
		depthSum += r.depth
		seen++
		if maximizing {
			if !haveBest || r.score >= best {
				best, bestAct, haveBest = r.score, candidates[i], true
			}
		} else {
			if !haveBest || r.score <= best {
				best, bestAct, haveBest = r.score, candidates[i], true
			}
		}
	}

	avgDepth := float64(depth)
	if seen > 0 {
		avgDepth = depthSum / float64(seen)
	}
	return best, bestAct, haveBest, avgDepth
}
