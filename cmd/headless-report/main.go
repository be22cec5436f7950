package main

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/Garsondee/Fog-Tactics/internal/game"
)

type runStats struct {
	runIndex int
	seed     int64
	frames   int

	firstTargetFrame  int
	firstCaptureFrame int
	firstStuckFrame   int
	lastCaptureFrame  int
	lastCapture       string

	turns         int
	steps         int
	stuckTurns    int
	entityTargets int
	randomTargets int
	captures      int
	revealed      float64

	// owned maps player name to buildings held at the end of the run.
	owned    map[string]int
	captured map[string]struct{} // building names that changed hands
}

func main() {
	var runs int
	var frames int
	var size int
	var seedBase int64
	var seedStep int64
	var configPath string

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&frames, "frames", 3600, "frames per run (60 per simulated second)")
	flag.IntVar(&size, "size", 0, "map side in cells (0 keeps the config value)")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&configPath, "config", "", "YAML config to start from (default: built-in)")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if frames <= 0 {
		fmt.Println("error: -frames must be > 0")
		return
	}
	if size < 0 {
		fmt.Println("error: -size must be >= 0")
		return
	}

	base := game.DefaultConfig()
	if configPath != "" {
		cfg, err := game.LoadConfig(configPath)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		base = cfg
	}
	if size > 0 {
		base.Map.Size = size
	}

	fmt.Printf("=== Headless Session Report ===\n")
	fmt.Printf("runs=%d frames=%d map=%d players=%d seed_base=%d seed_step=%d\n\n",
		runs, frames, base.Map.Size, len(base.Players), seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats, err := runAutoplay(i+1, seed, frames, base)
		if err != nil {
			fmt.Printf("run %d (seed=%d): %v\n", i+1, seed, err)
			continue
		}
		all = append(all, stats)
		printRun(stats)
	}
	if len(all) == 0 {
		return
	}
	printAggregate(all)
}

// autoplay hands every seat to the NPC policy so a run needs no input.
func autoplay(base game.Config) func(*game.Config) {
	return func(c *game.Config) {
		logger := c.Logger
		*c = base
		c.Logger = logger
		c.Players = append([]game.PlayerConfig(nil), base.Players...)
		for i := range c.Players {
			c.Players[i].NPC = true
		}
	}
}

func runAutoplay(runIndex int, seed int64, frames int, base game.Config) (rs runStats, err error) {
	// NewTestSim panics on a setup it cannot build; report it per run.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("setup: %v", r)
		}
	}()

	ts := game.NewTestSim(
		game.WithConfig(autoplay(base)),
		game.WithSeed(seed),
	)
	ts.RunFrames(frames)

	s := ts.Session
	st := s.Stats()
	entries := ts.SimLog.Entries()

	owned := make(map[string]int, len(s.Players()))
	for _, p := range s.Players() {
		owned[p.Name] = len(s.Owned(p))
	}
	captured := map[string]struct{}{}
	for _, e := range ts.SimLog.Filter("building", "captured") {
		name, _, _ := strings.Cut(e.Value, " from ")
		captured[name] = struct{}{}
	}

	lastCaptureFrame, lastCapture := -1, "none"
	if e, ok := ts.SimLog.LastOf("building", "captured"); ok {
		lastCaptureFrame = e.Frame
		lastCapture = e.Entity + " took " + e.Value
	}

	return runStats{
		runIndex:          runIndex,
		seed:              seed,
		frames:            st.Frames,
		firstTargetFrame:  firstFrame(entries, "ai", "target", ""),
		firstCaptureFrame: firstFrame(entries, "building", "captured", ""),
		firstStuckFrame:   firstFrame(entries, "ai", "stuck", ""),
		lastCaptureFrame:  lastCaptureFrame,
		lastCapture:       lastCapture,
		turns:             st.Turns,
		steps:             st.Steps,
		stuckTurns:        ts.SimLog.CountCategory("ai", "stuck"),
		entityTargets:     ts.SimLog.CountCategory("ai", "target"),
		randomTargets:     st.RandomTargets,
		captures:          ts.SimLog.CountCategory("building", "captured"),
		revealed:          s.Fog().Revealed(),
		owned:             owned,
		captured:          captured,
	}, nil
}

func firstFrame(entries []game.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Frame
		}
	}
	return -1
}

// leader returns the player holding the most buildings. Ties and an empty
// map yield "none".
func leader(owned map[string]int) (string, int) {
	best, bestN, tie := "", 0, false
	for name, n := range owned {
		switch {
		case n > bestN:
			best, bestN, tie = name, n, false
		case n == bestN && n > 0:
			tie = true
		}
	}
	if bestN == 0 || tie {
		return "none", bestN
	}
	return best, bestN
}

// detectStall reports a run where the NPCs spent most turns unable to move.
func detectStall(rs runStats) (bool, string) {
	if rs.turns == 0 {
		return true, "no_turns_completed"
	}
	ratio := float64(rs.stuckTurns) / float64(rs.turns)
	if ratio >= 0.5 {
		return true, fmt.Sprintf("stuck_ratio=%.2f", ratio)
	}
	if rs.steps == 0 {
		return true, "no_steps"
	}
	return false, fmt.Sprintf("stuck_ratio=%.2f", ratio)
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("phase_markers: first_target=%d first_capture=%d first_stuck=%d last_capture=%d\n",
		rs.firstTargetFrame, rs.firstCaptureFrame, rs.firstStuckFrame, rs.lastCaptureFrame)
	fmt.Printf("event_totals: turns=%d steps=%d entity_targets=%d random_targets=%d stuck=%d captures=%d\n",
		rs.turns, rs.steps, rs.entityTargets, rs.randomTargets, rs.stuckTurns, rs.captures)
	fmt.Printf("fog_revealed=%.1f%% frames=%d\n", rs.revealed*100, rs.frames)
	name, n := leader(rs.owned)
	fmt.Printf("buildings_held: %s leader=%s(%d)\n", formatOwned(rs.owned), name, n)
	fmt.Printf("buildings_captured: %s last=%s\n", joinSet(rs.captured), rs.lastCapture)
	if stalled, reason := detectStall(rs); stalled {
		fmt.Printf("STALLED: %s\n", reason)
	}
	fmt.Println()
}

func printAggregate(all []runStats) {
	totalTurns := 0
	totalSteps := 0
	totalStuck := 0
	totalEntity := 0
	totalRandom := 0
	totalCaptures := 0
	totalRevealed := 0.0
	stalledRuns := 0

	targetFrames := make([]int, 0, len(all))
	captureFrames := make([]int, 0, len(all))
	stuckFrames := make([]int, 0, len(all))
	wins := map[string]int{}

	for _, rs := range all {
		totalTurns += rs.turns
		totalSteps += rs.steps
		totalStuck += rs.stuckTurns
		totalEntity += rs.entityTargets
		totalRandom += rs.randomTargets
		totalCaptures += rs.captures
		totalRevealed += rs.revealed
		if rs.firstTargetFrame >= 0 {
			targetFrames = append(targetFrames, rs.firstTargetFrame)
		}
		if rs.firstCaptureFrame >= 0 {
			captureFrames = append(captureFrames, rs.firstCaptureFrame)
		}
		if rs.firstStuckFrame >= 0 {
			stuckFrames = append(stuckFrames, rs.firstStuckFrame)
		}
		if stalled, _ := detectStall(rs); stalled {
			stalledRuns++
		}
		name, _ := leader(rs.owned)
		wins[name]++
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d stalled=%d\n", len(all), stalledRuns)
	fmt.Printf("avg_per_run: turns=%.1f steps=%.1f entity_targets=%.1f random_targets=%.1f stuck=%.1f captures=%.1f\n",
		avg(totalTurns, len(all)), avg(totalSteps, len(all)), avg(totalEntity, len(all)),
		avg(totalRandom, len(all)), avg(totalStuck, len(all)), avg(totalCaptures, len(all)))
	fmt.Printf("avg_fog_revealed=%.1f%%\n", totalRevealed/float64(len(all))*100)
	fmt.Printf("phase_marker_avg_frames: first_target=%s first_capture=%s first_stuck=%s\n",
		avgFrameString(targetFrames), avgFrameString(captureFrames), avgFrameString(stuckFrames))

	fmt.Println("\n--- Building leaders ---")
	names := make([]string, 0, len(wins))
	for name := range wins {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-8s %d/%d\n", name, wins[name], len(all))
	}
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgFrameString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func formatOwned(owned map[string]int) string {
	if len(owned) == 0 {
		return "none"
	}
	names := make([]string, 0, len(owned))
	for k := range owned {
		names = append(names, k)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, k := range names {
		parts = append(parts, fmt.Sprintf("%s=%d", k, owned[k]))
	}
	return strings.Join(parts, " ")
}

func joinSet(s map[string]struct{}) string {
	if len(s) == 0 {
		return "none"
	}
	labels := make([]string, 0, len(s))
	for k := range s {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	return strings.Join(labels, ",")
}
