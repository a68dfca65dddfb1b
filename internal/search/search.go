// Package search implements the alpha-beta minimax engine that drives
// action selection: iterative deepening within a wall-clock budget, depth
// adaptation across turns, an optional benchmark bootstrap, and an
// optional parallel fold of near-root candidates across a worker pool.
package search

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"aiwargame/internal/board"
	"aiwargame/internal/game"
	"aiwargame/internal/heuristic"
)

// Score is an alias of the heuristic score type; the search and the
// heuristics it evaluates speak the same currency.
type Score = heuristic.Score

// Options bundles every knob the recurrence and its surrounding driver
// loop read. Zero values mean "unset" for MaxDepth/MinDepth/MaxSeconds,
// matching the spec's optional-budget semantics.
type Options struct {
	MaxDepth       int     // 0 = unset (unbounded by depth)
	MinDepth       int     // 0 = unset; required before timeout can fire
	MaxSeconds     float64 // 0 = unset (unbounded by time)
	Pruning        bool    // enable alpha-beta cuts
	RandTraversal  bool    // shuffle candidate actions before expanding
	AdjustMaxDepth bool    // adapt MaxDepth after each top-level call
	MultiThreaded  bool    // fan out near-root candidates across workers
	ParallelLevels int     // depth below which nodes parallelize children
	Workers        int     // worker pool size; 0 = runtime.GOMAXPROCS
}

// DefaultOptions mirrors a reasonable tournament default: a depth cap of 6,
// a minimum depth of 2 before the 5-second budget can cut a branch short,
// pruning and depth adaptation on, shuffling and multi-threading off.
func DefaultOptions() Options {
	return Options{
		MaxDepth:       6,
		MinDepth:       2,
		MaxSeconds:     5.0,
		Pruning:        true,
		AdjustMaxDepth: true,
	}
}

// branchingFactor is the empirical constant the depth-adaptation rule
// scales by.
const branchingFactor = 6.5

// Engine ties together the legality/outcome model (via game.State), a
// heuristic bundle, search options, and optional statistics. An Engine is
// reused across an entire game; its Options.MaxDepth mutates between
// calls when AdjustMaxDepth is on.
type Engine struct {
	Heuristics *heuristic.Heuristics
	Options    Options
	Stats      *Stats
	rng        *rand.Rand
}

// New builds an Engine. rngSeed seeds the optional shuffle; pass 0 to seed
// from the current time.
func New(h *heuristic.Heuristics, opts Options, rngSeed int64) *Engine {
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	return &Engine{
		Heuristics: h,
		Options:    opts,
		Stats:      NewStats(),
		rng:        rand.New(rand.NewSource(rngSeed)),
	}
}

// Suggestion is suggest_action()'s contract: a score, a candidate action
// (absent when the root had none), elapsed wall-clock time, and the
// average search depth reached.
type Suggestion struct {
	Score        Score
	Action       game.Action
	HasAction    bool
	Elapsed      time.Duration
	AverageDepth float64
}

// SuggestAction runs iterative alpha-beta from the root state s, whose
// current player is taken as the search's perspective. If no action is
// legal at the root, HasAction is false and the caller is expected to set
// Deadlock on its own state.
func (e *Engine) SuggestAction(s *game.State) Suggestion {
	start := time.Now()
	perspective := s.Player

	alpha := Score(math.MinInt32)
	beta := Score(math.MaxInt32)
	best, action, hasAction, avgDepth := e.maxOrMin(s, true, perspective, 0, alpha, beta, start)

	elapsed := time.Since(start)
	if e.Options.AdjustMaxDepth {
		e.adjustMaxDepth(avgDepth, elapsed)
	}
	return Suggestion{
		Score:        best,
		Action:       action,
		HasAction:    hasAction,
		Elapsed:      elapsed,
		AverageDepth: avgDepth,
	}
}

// terminalScore reports whether node (at the given depth, for perspective)
// is a terminal node and, if so, its leaf score.
func (e *Engine) terminalScore(s *game.State, maximizing bool, perspective board.Player, depth int, start time.Time) (Score, bool) {
	if result, decided := s.EndGameResult(); decided {
		return e.decidedScore(result, perspective, s.TotalMoves), true
	}

	if e.Options.MaxDepth > 0 && depth >= e.Options.MaxDepth {
		return e.evaluate(s, maximizing, perspective), true
	}

	if e.Options.MaxSeconds > 0 && e.Options.MinDepth > 0 && depth >= e.Options.MinDepth {
		if time.Since(start).Seconds() > e.Options.MaxSeconds {
			return e.evaluate(s, maximizing, perspective), true
		}
	}

	return 0, false
}

func (e *Engine) decidedScore(result game.Result, perspective board.Player, totalMoves int) Score {
	switch result.Status {
	case game.AttackerWins:
		if perspective == board.Attacker {
			return Score(math.MaxInt32) - Score(totalMoves)
		}
		return Score(math.MinInt32) + Score(totalMoves)
	case game.DefenderWins:
		if perspective == board.Defender {
			return Score(math.MaxInt32) - Score(totalMoves)
		}
		return Score(math.MinInt32) + Score(totalMoves)
	default: // unreachable: decidedScore is only called when EndGameResult reported true.
		return 0
	}
}

func (e *Engine) evaluate(s *game.State, maximizing bool, perspective board.Player) Score {
	slot := e.Heuristics.Slot(perspective == board.Attacker, maximizing)
	return slot(s, perspective)
}

// maxOrMin implements the minimax recurrence: terminal test, expand,
// recurse, prune, and report the running depth average.
func (e *Engine) maxOrMin(s *game.State, maximizing bool, perspective board.Player, depth int, alpha, beta Score, start time.Time) (Score, game.Action, bool, float64) {
	if score, isLeaf := e.terminalScore(s, maximizing, perspective, depth, start); isLeaf {
		return score, game.Action{}, false, float64(depth)
	}

	candidates := e.candidateActions(s)
	if len(candidates) == 0 {
		return e.evaluate(s, maximizing, perspective), game.Action{}, false, float64(depth)
	}

	if e.Options.MultiThreaded && e.Options.ParallelLevels > depth && len(candidates) > 1 {
		return e.maxOrMinParallel(s, maximizing, perspective, depth, alpha, beta, start, candidates)
	}

	var (
		best      Score
		bestAct   game.Action
		haveBest  bool
		depthSum  float64
		childSeen int
	)
	if maximizing {
		best = Score(math.MinInt32)
	} else {
		best = Score(math.MaxInt32)
	}

	for _, a := range candidates {
		e.Stats.recordNode(depth)

		child := s.Clone()
		if _, _, _, err := child.PlayTurnFromAction(a); err != nil {
			// unreachable once validated by EnumerateActions
			panic("search: enumerated action " + a.String() + " failed to execute: " + err.Error())
		}

		childScore, _, _, childAvgDepth := e.maxOrMin(child, !maximizing, perspective, depth+1, alpha, beta, start)
		depthSum += childAvgDepth
		childSeen++

		if maximizing {
			if !haveBest || childScore >= best {
				best, bestAct, haveBest = childScore, a, true
			}
		} else {
			if !haveBest || childScore <= best {
				best, bestAct, haveBest = childScore, a, true
			}
		}

		if e.Options.Pruning {
			if maximizing && best > beta {
				break
			}
			if !maximizing && best < alpha {
				break
			}
		}
		if maximizing {
			alpha = maxScore(alpha, best)
		} else {
			beta = minScore(beta, best)
		}
	}

	avgDepth := float64(depth)
	if childSeen > 0 {
		avgDepth = depthSum / float64(childSeen)
	}
	return best, bestAct, haveBest, avgDepth
}

// candidateActions materializes EnumerateActions into a slice, optionally
// shuffling it. The row-major enumeration order is the only order the
// spec guarantees; shuffling is the sole sanctioned nondeterminism.
func (e *Engine) candidateActions(s *game.State) []game.Action {
	var actions []game.Action
	for a := range s.EnumerateActions() {
		actions = append(actions, a)
	}
	if e.Options.RandTraversal {
		e.rng.Shuffle(len(actions), func(i, j int) { actions[i], actions[j] = actions[j], actions[i] })
	}
	return actions
}

func maxScore(a, b Score) Score {
	if a > b {
		return a
	}
	return b
}

func minScore(a, b Score) Score {
	if a < b {
		return a
	}
	return b
}

// adjustMaxDepth implements the after-turn depth adaptation rule: lower
// MaxDepth if the search used nearly all of its time budget while its
// average depth fell well short of MaxDepth, raise it if there's ample time
// to spare, and never drop below 1.
func (e *Engine) adjustMaxDepth(avgDepth float64, elapsed time.Duration) {
	if e.Options.MaxDepth == 0 || e.Options.MaxSeconds == 0 {
		if e.Options.MaxSeconds > 0 && elapsed.Seconds() < e.Options.MaxSeconds/(branchingFactor*1.2) {
			e.Options.MaxDepth++
		}
		return
	}
	elapsedSeconds := elapsed.Seconds()
	switch {
	case avgDepth < 0.8*float64(e.Options.MaxDepth) && elapsedSeconds > 0.95*e.Options.MaxSeconds:
		if e.Options.MaxDepth > 1 {
			e.Options.MaxDepth--
		}
	case elapsedSeconds < e.Options.MaxSeconds/(branchingFactor*1.2):
		e.Options.MaxDepth++
	}
	if e.Options.MaxDepth < 1 {
		e.Options.MaxDepth = 1
	}
}

// Stats aggregates depth-by-count node histograms across an engine's
// lifetime. Every update is additive and commutative, so a single mutex
// is sufficient even with a multi-threaded search.
type Stats struct {
	mu          sync.Mutex
	DepthCounts map[int]int
	TotalNodes  int
}

// NewStats builds an empty Stats.
func NewStats() *Stats {
	return &Stats{DepthCounts: make(map[int]int)}
}

func (s *Stats) recordNode(depth int) {
	s.mu.Lock()
	s.DepthCounts[depth]++
	s.TotalNodes++
	s.mu.Unlock()
}

// Merge folds other's counts into s. The parallel fold does not use it:
// its workers record straight into the engine's shared Stats.
func (s *Stats) Merge(other *Stats) {
	other.mu.Lock()
	defer other.mu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	for d, c := range other.DepthCounts {
		s.DepthCounts[d] += c
	}
	s.TotalNodes += other.TotalNodes
}
