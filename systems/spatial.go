package systems

import (
	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/species"
)

// Spatial queries scan the pre-tick snapshot linearly. Only the removal set is
// consulted from this tick's mutations, so processing order never changes who
// can see whom. Ties go to the first entity in snapshot order.

// nearest returns the snapshot entity closest to origin that passes accept.
func (p *Pass) nearest(origin components.Position, accept func(components.Entity) bool) components.Entity {
	var best components.Entity
	bestSq := 0.0
	for _, e := range p.snapshot {
		if p.isRemoved(e.EntityID()) || !accept(e) {
			continue
		}
		d := components.DistSq(origin, e.Position())
		if best == nil || d < bestSq {
			best, bestSq = e, d
		}
	}
	return best
}

// NearestFood finds the closest entity c may eat.
func (p *Pass) NearestFood(c *components.Creature, diet *species.CreatureBehavior) components.Entity {
	return p.nearest(c.Pos, func(e components.Entity) bool {
		if e.EntityID() == c.ID || !diet.EatsSpecies(e.SpeciesName()) {
			return false
		}
		if prey, ok := e.(*components.Creature); ok {
			return prey.Alive() && !prey.Spiked(p.env.Now)
		}
		return true
	})
}

// NearestMate finds the closest living same-species adult other than c.
func (p *Pass) NearestMate(c *components.Creature) components.Entity {
	return p.nearest(c.Pos, func(e components.Entity) bool {
		mate, ok := e.(*components.Creature)
		return ok && mate.ID != c.ID && mate.Species == c.Species && !mate.Baby && mate.Alive()
	})
}

// CountWithin counts snapshot entities of kind and species strictly closer
// than radius to origin, skipping exclude.
func (p *Pass) CountWithin(origin components.Position, kind components.Kind, speciesName string, radius float64, exclude uint32) int {
	n := 0
	r2 := radius * radius
	for _, e := range p.snapshot {
		if e.EntityID() == exclude || e.Kind() != kind || e.SpeciesName() != speciesName {
			continue
		}
		if components.DistSq(origin, e.Position()) < r2 {
			n++
		}
	}
	return n
}

// Within returns the snapshot entities other than exclude strictly closer
// than radius to origin, skipping removed ones.
func (p *Pass) Within(origin components.Position, radius float64, exclude uint32) []components.Entity {
	var out []components.Entity
	r2 := radius * radius
	for _, e := range p.snapshot {
		id := e.EntityID()
		if id == exclude || p.isRemoved(id) {
			continue
		}
		if components.DistSq(origin, e.Position()) < r2 {
			out = append(out, e)
		}
	}
	return out
}
