package game

import (
	"log/slog"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/systems"
)

// spawnInitialPopulation creates the starting entities.
func (g *Game) spawnInitialPopulation(counts map[string]int) {
	for _, name := range sortedNames(counts) {
		n := counts[name]
		rec, ok := g.registry.Lookup(name)
		if !ok {
			slog.Warn("unknown_species", "species", name, "count", n, "phase", "reset")
			continue
		}
		for i := 0; i < n; i++ {
			pos := g.randomPosition(rec.Appearance.Size)
			switch {
			case rec.Plant != nil:
				p := systems.NewPlant(g.allocID(), name, pos, rec.Appearance.Size, g.worldTime)
				// Stagger the first growth so the initial plants do not all spread on the same tick.
				p.LastGrowth = g.worldTime - g.rng.Float64()*rec.Plant.Growth
				g.store.Add(p)
			case rec.Creature != nil:
				g.store.Add(systems.NewCreature(g.allocID(), name, pos, rec.Appearance.Size, g.worldTime, g.rng))
			}
		}
	}
}

// randomPosition picks a uniform position that keeps a body of size inside the arena.
func (g *Game) randomPosition(size float64) components.Position {
	w := g.bounds.W - size
	h := g.bounds.H - size
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return components.Position{X: g.rng.Float64() * w, Y: g.rng.Float64() * h}
}
