package systems

import (
	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/config"
)

// NewPlant creates a plant born at now.
func NewPlant(id uint32, speciesName string, pos components.Position, size, now float64) *components.Plant {
	return &components.Plant{
		ID:          id,
		Species:     speciesName,
		Pos:         pos,
		Size:        size,
		DisplaySize: size,
		BirthTime:   now,
		LastGrowth:  now,
	}
}

// NewCreature creates an adult creature born at now with a random heading.
func NewCreature(id uint32, speciesName string, pos components.Position, size, now float64, rng Rand) *components.Creature {
	return &components.Creature{
		ID:             id,
		Species:        speciesName,
		Pos:            pos,
		Vel:            components.Velocity{X: uniform(rng, -1, 1), Y: uniform(rng, -1, 1)},
		Size:           size,
		BirthTime:      now,
		LastFed:        now,
		LastReproduced: now,
	}
}

// NewBaby creates a baby tied to parent. Mutations are rolled here and nowhere else.
func NewBaby(id uint32, parent *components.Creature, adultSize float64, tun Tuning, now float64, rng Rand) *components.Creature {
	c := NewCreature(id, parent.Species, parent.Pos, adultSize*tun.Behavior.BabySizeFactor, now, rng)
	c.Baby = true
	c.ParentID = parent.ID
	c.Mutation = Mutate(rng, tun.Mutation)
	return c
}

// Mutate rolls the birth mutations: albinism first, then cyclops, each an
// independent uniform [0,100) draw against its percentage.
func Mutate(rng Rand, cfg config.MutationConfig) components.Mutation {
	var m components.Mutation
	if rng.Float64()*100 < cfg.AlbinismChance {
		m.Albino = true
		m.Color = cfg.AlbinoColor
		m.EyeColor = cfg.AlbinoEyeColor
	}
	if rng.Float64()*100 < cfg.CyclopsChance {
		m.Cyclops = true
	}
	return m
}
