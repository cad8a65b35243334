package game

import (
	"log/slog"
	"math"

	"github.com/pthm-cable/terrarium/events"
	"github.com/pthm-cable/terrarium/systems"
	"github.com/pthm-cable/terrarium/telemetry"
)

// Tick advances the world by dt seconds and runs one behavior pass.
// Negative or non-finite deltas advance nothing. Once the game is over
// Tick is a no-op that reports only the clock.
func (g *Game) Tick(dt float64) systems.Events {
	if g.over {
		return systems.Events{Day: g.Day(), IsDay: g.IsDay()}
	}
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		dt = 0
	}

	g.perfCollector.StartTick()

	g.worldTime += dt
	g.ticks++
	now := g.worldTime

	// A triggered one-shot effect is taken before expiry so a short or
	// cleared event still applies it. Expired events are cleared before the
	// pass that would see them.
	g.perfCollector.StartPhase(telemetry.PhaseEvents)
	oneShot, hasOneShot := g.modulator.TakeOneShot()
	if expired, ok := g.modulator.Expire(now); ok {
		slog.Info("event_expired", "id", expired.ID, "name", expired.Name, "sim_time", now)
		g.writeEvent(expired, telemetry.EventExpired)
	}

	g.perfCollector.StartPhase(telemetry.PhaseSnapshot)
	snapshot := g.store.Snapshot()

	g.perfCollector.StartPhase(telemetry.PhasePass)
	env := systems.Env{
		Now:    now,
		DT:     dt,
		IsDay:  g.IsDay(),
		Bounds: g.bounds,
		Mods:   g.modulator.Modifiers(),
	}
	pass := systems.NewPass(snapshot, g.registry, g.tuning, env, g.rng, g.allocID)
	if hasOneShot {
		pass.ApplyOneShot(oneShot)
	}
	ev := pass.Run()

	g.perfCollector.StartPhase(telemetry.PhaseCommit)
	g.store.Commit(pass.Result())
	ev.Day = g.Day()
	ev.IsDay = env.IsDay

	living := g.store.LivingCreatures()
	if living > 0 {
		g.hadCreatures = true
	} else if g.hadCreatures {
		ev.Extinct = true
		g.over = true
		g.daysSurvived = ev.Day
		g.modulator.Clear()
		slog.Info("simulation_over", "days_survived", g.daysSurvived, "sim_time", now, "ticks", g.ticks)
	}

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.recordEvents(ev)
	g.flushTelemetry(ev.Extinct)

	g.perfCollector.EndTick(g.store.Len())
	return ev
}

// writeEvent appends a world event lifecycle entry to events.csv.
func (g *Game) writeEvent(active events.Active, action telemetry.EventAction) {
	err := g.outputManager.WriteEvent(telemetry.EventRecord{
		SimTime: g.worldTime,
		Day:     g.Day(),
		ID:      active.ID,
		Name:    active.Name,
		Effect:  string(active.Effect),
		Action:  action,
	})
	if err != nil {
		slog.Error("failed to write event", "error", err)
	}
}
