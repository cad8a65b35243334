package systems

import (
	"math"

	"github.com/pthm-cable/terrarium/components"
)

// updatePlant ages a plant and spreads an offspring when its growth timer
// fires and the neighborhood is below the density cap.
func (p *Pass) updatePlant(pl *components.Plant) {
	beh, app, ok := p.reg.Plant(pl.Species)
	if !ok {
		p.dropUnknown(pl)
		return
	}
	now := p.env.Now

	if pl.Age(now) > beh.Lifespan {
		p.remove(pl, components.CauseLifespan)
		return
	}
	pl.DisplaySize = p.env.Mods.DisplaySize(pl.Size, now)

	if !beh.Active(p.env.IsDay) || now-pl.LastGrowth <= beh.Growth {
		return
	}
	if p.CountWithin(pl.Pos, components.KindPlant, pl.Species, beh.Range, pl.ID) >= beh.Density {
		return
	}

	angle := p.rng.Float64() * 2 * math.Pi
	r := uniform(p.rng, pl.Size, beh.Range)
	pos := p.clampToArena(components.Position{
		X: pl.Pos.X + math.Cos(angle)*r,
		Y: pl.Pos.Y + math.Sin(angle)*r,
	}, pl.Size)

	p.add(NewPlant(p.next(), pl.Species, pos, app.Size, now))
	pl.LastGrowth = now
}
