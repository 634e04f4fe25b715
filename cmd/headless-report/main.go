package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Garsondee/Core-Defense/internal/config"
	"github.com/Garsondee/Core-Defense/internal/game"
	"github.com/Garsondee/Core-Defense/pkg/logger"
)

type runStats struct {
	runIndex int
	seed     int64

	firstKillTick     int
	firstWaveTick     int
	firstRejectedTick int
	gameOverTick      int
	rejected          int

	report  game.SessionReport
	outcome game.OutcomeReason
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var configPath string

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 36000, "ticks per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&configPath, "config", "", "balance YAML overlay")
	flag.Parse()

	log := logger.Init(os.Stderr)

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load balance")
	}

	fmt.Printf("=== Headless Defense Report ===\n")
	fmt.Printf("runs=%d ticks=%d seed_base=%d seed_step=%d\n\n", runs, ticks, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		rs := runAutopilot(cfg, i+1, seed, ticks, log)
		all = append(all, rs)
		printRun(os.Stdout, rs)
	}
	printAggregate(os.Stdout, all)
}

// runAutopilot plays one seeded session until game over or the tick limit.
func runAutopilot(cfg game.Balance, runIndex int, seed int64, ticks int, log logrus.FieldLogger) runStats {
	sl := game.NewSimLog(false)
	sim := game.NewSim(cfg, game.Seeded(seed), game.WithSimLog(sl),
		game.WithLogger(log.WithField("run", runIndex)))
	pilot := &autopilot{cfg: &cfg, m: sim.Map()}

	for i := 0; i < ticks && !sim.GameOver(); i++ {
		sim.Step(game.TickDuration, game.Input{Commands: pilot.commands(sim.Snapshot())})
	}

	entries := sl.Entries()
	return runStats{
		runIndex:          runIndex,
		seed:              seed,
		firstKillTick:     firstTick(entries, "enemy", "killed", ""),
		firstWaveTick:     firstTick(entries, "wave", "started", ""),
		firstRejectedTick: firstTick(entries, "command", "rejected", ""),
		gameOverTick:      firstTick(entries, "game", "over", ""),
		rejected:          sl.CountCategory("command", "rejected"),
		report:            sim.Report(),
		outcome:           sim.Outcome(),
	}
}

func firstTick(entries []game.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

func printRun(w io.Writer, rs runStats) {
	fmt.Fprintf(w, "--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Fprint(w, rs.report.Format())
	fmt.Fprintf(w, "phase_markers: first_wave=%d first_kill=%d first_rejected=%d game_over=%d\n",
		rs.firstWaveTick, rs.firstKillTick, rs.firstRejectedTick, rs.gameOverTick)
	fmt.Fprintf(w, "rejected_commands=%d\n", rs.rejected)
	fmt.Fprintf(w, "verdict: %s\n\n", rs.outcome.Description)
}

func printAggregate(w io.Writer, all []runStats) {
	totalWaves := 0
	totalKills := 0
	totalEarned := 0
	totalBuilt := 0
	survived := 0
	coreLosses := 0
	playerLosses := 0
	killTicks := make([]int, 0, len(all))
	endTicks := make([]int, 0, len(all))

	for _, rs := range all {
		st := rs.report.Stats
		totalWaves += st.WavesCleared
		totalKills += st.Kills
		totalEarned += st.Earned
		totalBuilt += st.Built
		switch rs.outcome.Outcome {
		case game.OutcomeRunning:
			survived++
		case game.OutcomeCoreDestroyed:
			coreLosses++
		case game.OutcomePlayerKilled:
			playerLosses++
		}
		if rs.firstKillTick >= 0 {
			killTicks = append(killTicks, rs.firstKillTick)
		}
		if rs.gameOverTick >= 0 {
			endTicks = append(endTicks, rs.gameOverTick)
		}
	}

	n := len(all)
	fmt.Fprintln(w, "=== Aggregate ===")
	fmt.Fprintf(w, "runs=%d survived=%d core_destroyed=%d player_killed=%d\n", n, survived, coreLosses, playerLosses)
	fmt.Fprintf(w, "avg_per_run: waves_cleared=%.1f kills=%.1f earned=%.1f built=%.1f\n",
		avg(totalWaves, n), avg(totalKills, n), avg(totalEarned, n), avg(totalBuilt, n))
	fmt.Fprintf(w, "phase_marker_avg_ticks: first_kill=%s game_over=%s\n",
		avgTickString(killTicks), avgTickString(endTicks))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}
