package search

import (
	"time"

	"aiwargame/internal/game"
)

// RunBenchmark calibrates MaxDepth for this machine against a time budget:
// starting at MinDepth+1, it keeps running a single SuggestAction at
// increasing trial depths until a run either blows past 0.95*maxSeconds
// (roll back one depth) or already exceeds maxSeconds/branchingFactor
// (accept as-is). The chosen depth is installed into e.Options.MaxDepth
// and also returned.
func (e *Engine) RunBenchmark(root *game.State, maxSeconds float64) int {
	trialDepth := e.Options.MinDepth + 1
	if trialDepth < 1 {
		trialDepth = 1
	}

	savedMaxSeconds := e.Options.MaxSeconds
	savedAdjust := e.Options.AdjustMaxDepth
	e.Options.AdjustMaxDepth = false
	e.Options.MaxSeconds = maxSeconds
	defer func() {
		e.Options.MaxSeconds = savedMaxSeconds
		e.Options.AdjustMaxDepth = savedAdjust
	}()

	for {
		e.Options.MaxDepth = trialDepth

		start := time.Now()
		e.SuggestAction(root.Clone())
		elapsed := time.Since(start).Seconds()

		switch {
		case elapsed > 0.95*maxSeconds:
			if trialDepth > 1 {
				trialDepth--
			}
			e.Options.MaxDepth = trialDepth
			return trialDepth
		case elapsed > maxSeconds/branchingFactor:
			e.Options.MaxDepth = trialDepth
			return trialDepth
		default:
			trialDepth++
		}
	}
}
