package game

import "github.com/pthm-cable/terrarium/systems"

// UpdateHeadless runs one fixed-dt tick for hosts without a render loop.
// With AutoEvents enabled, each new day may start a random predefined event.
func (g *Game) UpdateHeadless() systems.Events {
	ev := g.Tick(g.cfg.Clock.DT)
	if ev.Day != g.lastDay {
		g.lastDay = ev.Day
		if g.autoEvents {
			g.maybeTriggerEvent()
		}
	}
	return ev
}

// maybeTriggerEvent rolls the per-day chance of a random predefined event.
func (g *Game) maybeTriggerEvent() {
	deck := g.cfg.Events.Predefined
	if g.over || len(deck) == 0 {
		return
	}
	if _, active := g.modulator.Current(); active {
		return
	}
	if g.hostRng.Float64() >= g.cfg.Events.AutoTriggerChance {
		return
	}
	g.TriggerEvent(deck[g.hostRng.Intn(len(deck))])
}
