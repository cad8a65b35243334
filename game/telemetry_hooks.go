package game

import (
	"log/slog"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/systems"
	"github.com/pthm-cable/terrarium/telemetry"
)

// recordEvents feeds one tick's events into the stats collector.
func (g *Game) recordEvents(ev systems.Events) {
	for _, e := range ev.Spawned {
		g.collector.RecordBirth(e.Kind())
		if c, ok := e.(*components.Creature); ok && (c.Mutation.Albino || c.Mutation.Cyclops) {
			g.collector.RecordMutation()
		}
	}
	for _, d := range ev.Deaths {
		g.collector.RecordDeath(d.Cause)
	}
	for _, r := range ev.Removed {
		g.collector.RecordRemoval(r.Kind, r.Cause)
	}
	for range ev.Reproductions {
		g.collector.RecordReproduction()
	}
	for range ev.Specials {
		g.collector.RecordSpecial()
	}
}

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
// force flushes a partial window, used when the game ends.
func (g *Game) flushTelemetry(force bool) {
	if !force && !g.collector.ShouldFlush(g.worldTime) {
		return
	}

	counts := g.Counts()
	creatureAges, plantAges := g.store.Ages(g.worldTime)
	var activeName string
	if active, ok := g.modulator.Current(); ok {
		activeName = active.Name
	}

	stats := g.collector.Flush(g.worldTime, telemetry.Sample{
		Day:          g.Day(),
		IsDay:        g.IsDay(),
		Plants:       counts.Plants,
		Creatures:    counts.Creatures,
		Babies:       counts.Babies,
		Corpses:      counts.Corpses,
		CreatureAges: creatureAges,
		PlantAges:    plantAges,
		ActiveEvent:  activeName,
	})
	perfStats := g.perfCollector.Stats()

	// Call stats callback if provided
	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	// Write to CSV if output manager is enabled
	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEnd); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
		pops := telemetry.CountPopulations(g.worldTime, stats.Day, g.store.Snapshot(), g.registry.Names())
		if err := g.outputManager.WritePopulations(pops); err != nil {
			slog.Error("failed to write populations", "error", err)
		}
	}

	// Check for bookmarks
	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if g.outputManager != nil {
			if err := g.outputManager.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}
	}
}
