package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/terrarium/config"
	"github.com/pthm-cable/terrarium/game"
	"github.com/pthm-cable/terrarium/leaderboard"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	dt := flag.Float64("dt", 0, "Seconds per tick (0 = use config)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = until extinction)")
	autoEvents := flag.Bool("auto-events", true, "Start random predefined world events at day boundaries")
	leaderboardPath := flag.String("leaderboard", "", "SQLite leaderboard path (empty = use config)")
	player := flag.String("player", "", "Player name for the leaderboard (empty = use config)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *dt > 0 {
		cfg.Clock.DT = *dt
	}
	if *leaderboardPath != "" {
		cfg.Leaderboard.Path = *leaderboardPath
	}
	if *player != "" {
		cfg.Leaderboard.Player = *player
	}

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	g, err := game.NewGameWithOptions(game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		AutoEvents:     *autoEvents,
	})
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	slog.Info("starting headless simulation",
		"seed", rngSeed,
		"dt", cfg.Clock.DT,
		"species", g.Registry().Len(),
		"entities", len(g.Entities()),
		"max_ticks", *maxTicks,
	)

	for !g.Over() {
		g.UpdateHeadless()

		if *maxTicks > 0 && int(g.Ticks()) >= *maxTicks {
			slog.Info("max ticks reached", "tick", g.Ticks(), "day", g.Day())
			return
		}
	}

	if err := submitScore(context.Background(), cfg, g, rngSeed); err != nil {
		slog.Error("failed to submit score", "error", err)
	}
}

// submitScore records the finished run on the local leaderboard, if one is configured.
func submitScore(ctx context.Context, cfg *config.Config, g *game.Game, seed int64) error {
	if cfg.Leaderboard.Path == "" {
		return nil
	}

	dna, err := g.Registry().DNA()
	if err != nil {
		return err
	}

	board, err := leaderboard.Open(cfg.Leaderboard.Path)
	if err != nil {
		return err
	}
	defer board.Close()

	id, err := board.Submit(ctx, leaderboard.Entry{
		Player: cfg.Leaderboard.Player,
		Days:   g.DaysSurvived(),
		DNA:    dna,
		Seed:   seed,
	})
	if err != nil {
		return err
	}
	rank, err := board.Rank(ctx, g.DaysSurvived())
	if err != nil {
		return err
	}
	slog.Info("score submitted", "id", id, "player", cfg.Leaderboard.Player, "days", g.DaysSurvived(), "rank", rank)

	top, err := board.Top(ctx, cfg.Leaderboard.TopN)
	if err != nil {
		return err
	}
	for i, e := range top {
		slog.Info("leaderboard", "rank", i+1, "player", e.Player, "days", e.Days, "seed", e.Seed)
	}
	return nil
}
