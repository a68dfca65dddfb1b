// Command aiwargame drives one game to completion: search-suggested moves
// for either or both sides, optional manual input, an optional HTTP broker
// for the opponent's moves, optional live websocket spectating, and
// optional SQLite persistence of the finished game.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"aiwargame/internal/board"
	"aiwargame/internal/broker"
	"aiwargame/internal/coord"
	"aiwargame/internal/game"
	"aiwargame/internal/heuristic"
	"aiwargame/internal/search"
	"aiwargame/internal/spectate"
	"aiwargame/internal/store"
)

// Config bundles everything sourced from flags or the environment, in the
// teacher's getEnv-backed Config style.
type Config struct {
	StorePath  string
	SpectateOn string
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func loadConfig() *Config {
	return &Config{
		StorePath:  getEnv("AIWARGAME_DB", "games.db"),
		SpectateOn: getEnv("AIWARGAME_SPECTATE_ADDR", ""),
	}
}

func main() {
	play := flag.String("play", "auto", "who moves: auto|attacker|defender|manual")
	dim := flag.Int("dim", 8, "board side length")
	depth := flag.Int("depth", 0, "search max depth (0 = use default)")
	seconds := flag.Float64("seconds", 0, "search max seconds (0 = use default)")
	moves := flag.Int("moves", 0, "move cap (0 = unset)")
	heuristicsPreset := flag.String("heuristics", "e1", "heuristic preset: e1|e2|e3e4")
	noRandTraversal := flag.Bool("no-rand-traversal", false, "disable candidate shuffling")
	noAutoDepth := flag.Bool("no-auto-depth", false, "disable depth adaptation")
	noPruning := flag.Bool("no-pruning", false, "disable alpha-beta cuts")
	noDebug := flag.Bool("no-debug", false, "suppress per-move stats lines")
	benchmark := flag.Bool("benchmark", false, "run the benchmark bootstrap before the first move")
	multiThreaded := flag.Bool("multi-threaded", false, "enable the parallel fold")
	threads := flag.Int("threads", 0, "worker pool size for the parallel fold (0 = GOMAXPROCS)")
	parallelLevels := flag.Int("parallel-levels", 2, "depth below which nodes parallelize children")
	brokerURL := flag.String("broker", "", "HTTP URL of a broker to read the opponent's move from")
	flag.CommandLine.Init(os.Args[0], flag.ContinueOnError)
	if err := flag.CommandLine.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	cfg := loadConfig()

	opts := search.DefaultOptions()
	if *depth > 0 {
		opts.MaxDepth = *depth
	}
	if *seconds > 0 {
		opts.MaxSeconds = *seconds
	}
	opts.Pruning = !*noPruning
	opts.RandTraversal = !*noRandTraversal
	opts.AdjustMaxDepth = !*noAutoDepth
	opts.MultiThreaded = *multiThreaded
	opts.Workers = *threads
	opts.ParallelLevels = *parallelLevels

	h, err := heuristicsFor(*heuristicsPreset)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *dim < 4 {
		fmt.Fprintln(os.Stderr, "aiwargame: --dim must be >= 4")
		os.Exit(1)
	}

	mode, err := parsePlayMode(*play)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rules := game.DefaultRules()
	rules.MaxMoves = *moves

	var brokerClient *broker.Client
	if *brokerURL != "" {
		brokerClient = broker.NewClient(*brokerURL)
	}

	var spectateHub *spectate.Hub
	if cfg.SpectateOn != "" {
		spectateHub = spectate.NewHub()
		go spectateHub.Run()
		go func() {
			log.Printf("[spectate] listening on %s", cfg.SpectateOn)
			if err := http.ListenAndServe(cfg.SpectateOn, spectateHub); err != nil {
				log.Printf("[spectate] server stopped: %v", err)
			}
		}()
	}

	var st *store.Store
	if cfg.StorePath != "" {
		st, err = store.Open(cfg.StorePath)
		if err != nil {
			log.Printf("[store] disabled: %v", err)
			st = nil
		} else {
			defer st.Close()
		}
	}

	engine := search.New(h, opts, 0)
	s := game.New(int8(*dim), rules)

	if *benchmark {
		installed := engine.RunBenchmark(s, opts.MaxSeconds)
		log.Printf("[search] benchmark installed max_depth=%d", installed)
	}

	started := time.Now()
	var moveLog []store.MoveRecord
	ply := 0

	reader := bufio.NewReader(os.Stdin)

	for !s.IsOver() {
		mover := s.Player
		var a game.Action

		switch {
		case mode == playManual, mode == playAttacker && mover == board.Attacker, mode == playDefender && mover == board.Defender:
			a, err = nextManualAction(reader, s)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		case brokerClient != nil && ((mode == playAttacker && mover == board.Defender) || (mode == playDefender && mover == board.Attacker)):
			a, err = nextBrokerAction(brokerClient, s)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		default:
			suggestion := engine.SuggestAction(s.Clone())
			if !suggestion.HasAction {
				s.Deadlock = true
				continue
			}
			a = suggestion.Action
			if !*noDebug {
				log.Printf("[search] ply=%d player=%s score=%d depth=%.1f elapsed=%s nodes=%d",
					ply, mover, suggestion.Score, suggestion.AverageDepth, suggestion.Elapsed, engine.Stats.TotalNodes)
			}
		}

		_, executedAction, outcome, err := s.PlayTurnFromAction(a)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		ply++
		fmt.Printf("%d. %s %s -> %s\n", ply, mover, executedAction, outcome)

		if brokerClient != nil && ((mode == playAttacker && mover == board.Attacker) || (mode == playDefender && mover == board.Defender)) {
			if err := brokerClient.PostMove(executedAction.From, executedAction.To, s.TotalMoves); err != nil {
				log.Printf("[broker] post move failed: %v", err)
			}
		}

		moveLog = append(moveLog, store.MoveRecordFor(ply, mover, executedAction, outcome))
		if spectateHub != nil {
			spectateHub.Broadcast(spectate.FrameForTurn(ply, mover, executedAction, outcome, s))
		}
	}

	result, _ := s.EndGameResult()
	fmt.Println(renderBoard(s))
	fmt.Printf("Game over: %s (%s)\n", result.Status, result.Reason)

	if st != nil {
		st.SaveGame(started, int8(*dim), result, moveLog)
	}
}

type playMode int

const (
	playAuto playMode = iota
	playAttacker
	playDefender
	playManual
)

func parsePlayMode(s string) (playMode, error) {
	switch strings.ToLower(s) {
	case "auto":
		return playAuto, nil
	case "attack", "attacker":
		return playAttacker, nil
	case "defend", "defender":
		return playDefender, nil
	case "manual":
		return playManual, nil
	default:
		return 0, fmt.Errorf("aiwargame: unknown --play value %q", s)
	}
}

func heuristicsFor(preset string) (*heuristic.Heuristics, error) {
	switch preset {
	case "e1":
		return heuristic.DefaultHeuristics(), nil
	case "e2":
		h := &heuristic.Heuristics{}
		h.SetAttackHeuristics(heuristic.Scale(heuristic.UnitsScoreHealthWeightsBias(1, 1, 30, 1, heuristic.DefaultUnitScore), 1))
		h.SetDefenseHeuristics(heuristic.Add(
			heuristic.UnitsScoreHealthWeightsBias(1, 1, 10, 1, heuristic.DefaultUnitScore),
			heuristic.Scale(heuristic.AIDistance(1, 3), -1),
		))
		return h, nil
	case "e3e4":
		h := &heuristic.Heuristics{}
		h.SetAttackHeuristics(heuristic.Add(heuristic.LocalCombat(), heuristic.AIDistance(3, 1)))
		h.SetDefenseHeuristics(heuristic.Add(heuristic.LocalCombat(), heuristic.ConstantValue(0)))
		return h, nil
	default:
		return nil, fmt.Errorf("aiwargame: unknown --heuristics preset %q", preset)
	}
}

func nextManualAction(reader *bufio.Reader, s *game.State) (game.Action, error) {
	for {
		fmt.Printf("%s player, enter your next move [ex: a6 d9], or 'pass': ", s.Player)
		line, err := reader.ReadString('\n')
		if err != nil {
			return game.Action{}, fmt.Errorf("aiwargame: reading stdin: %w", err)
		}
		line = strings.TrimSpace(line)
		if strings.EqualFold(line, "pass") {
			return game.Action{Kind: game.Pass}, nil
		}
		pair, ok := parseCoordPair(line)
		if !ok {
			fmt.Println("could not parse that move, try again")
			continue
		}
		a, err := s.ActionFromCoords(pair.From, pair.To)
		if err != nil {
			fmt.Println(err)
			continue
		}
		return a, nil
	}
}

func nextBrokerAction(c *broker.Client, s *game.State) (game.Action, error) {
	pair, err := c.GetMove()
	if err != nil {
		return game.Action{}, fmt.Errorf("aiwargame: broker get move: %w", err)
	}
	return s.ActionFromCoords(pair.From, pair.To)
}

// coordPairRe mirrors original_source/src/game.rs::parse_move's regex:
// one letter + digits, optional separators/brackets, repeated twice.
var coordPairRe = regexp.MustCompile(`[ \(\[]*([A-Za-z])[ ,;]*(\d+)[ \)\]]*[;,]*[ \(\[]*([A-Za-z])[ ,;]*(\d+)[ \)\]]*`)

// parseCoordPair implements spec §6's coordinate syntax: letter row +
// decimal column. Both letter cases are accepted but are distinct rows:
// A-Z maps to rows 0-25, a-z to 26-51.
func parseCoordPair(s string) (coord.CoordPair, bool) {
	m := coordPairRe.FindStringSubmatch(s)
	if m == nil {
		return coord.CoordPair{}, false
	}
	r1, ok1 := letterToRow(m[1])
	c1, err1 := strconv.Atoi(m[2])
	r2, ok2 := letterToRow(m[3])
	c2, err2 := strconv.Atoi(m[4])
	if !ok1 || !ok2 || err1 != nil || err2 != nil {
		return coord.CoordPair{}, false
	}
	return coord.NewPair(coord.New(r1, int8(c1)), coord.New(r2, int8(c2))), true
}

func letterToRow(letter string) (int8, bool) {
	if len(letter) != 1 {
		return 0, false
	}
	c := letter[0]
	switch {
	case c >= 'A' && c <= 'Z':
		return int8(c - 'A'), true
	case c >= 'a' && c <= 'z':
		return int8(c-'a') + 26, true
	default:
		return 0, false
	}
}

// renderBoard matches spec §6's textual rendering: row/col header, empty
// cells as " . ", units as <player-letter><kind-letter><health-digit>.
func renderBoard(s *game.State) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Next player: %s\n", s.Player)
	dim := s.Board.Dim()

	b.WriteString("    ")
	for col := int8(0); col < dim; col++ {
		fmt.Fprintf(&b, " %2d ", col)
	}
	b.WriteString("\n")

	for row := int8(0); row < dim; row++ {
		fmt.Fprintf(&b, "%3s ", coord.New(row, 0).String()[:1])
		for col := int8(0); col < dim; col++ {
			cell := s.Board.Get(coord.New(row, col))
			if cell.Empty() {
				b.WriteString(" .  ")
				continue
			}
			health := cell.Unit.Health
			if health > 9 {
				health = 9
			}
			fmt.Fprintf(&b, " %c%c%d ", cell.Owner.Letter(), cell.Unit.Kind.Letter(), health)
		}
		b.WriteString("\n")
	}
	return b.String()
}
