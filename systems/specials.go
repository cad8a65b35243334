package systems

import (
	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/species"
)

// rollSpecials gives each enabled, off-cooldown special a per-tick chance to fire.
func (p *Pass) rollSpecials(c *components.Creature, beh *species.CreatureBehavior) {
	now := p.env.Now
	for _, s := range beh.Specials {
		if !s.Enabled {
			continue
		}
		if last, used := c.SpecialUsed[s.Type]; used && now-last < s.Cooldown {
			continue
		}
		if p.rng.Float64() >= p.tun.Behavior.SpecialChance {
			continue
		}
		if c.SpecialUsed == nil {
			c.SpecialUsed = make(map[string]float64)
		}
		c.SpecialUsed[s.Type] = now
		p.activate(c, s)
	}
}

// activate applies one special's effect and reports it.
func (p *Pass) activate(c *components.Creature, s species.SpecialAbility) {
	now := p.env.Now
	act := Activation{ID: c.ID, Species: c.Species, Type: s.Type, Pos: c.Pos}

	switch s.Type {
	case species.ToxicGas:
		act.Radius = c.Size
		p.toxicBurst(c)
	case species.Teleportation:
		c.Pos = components.Position{
			X: uniform(p.rng, 0, p.env.Bounds.W-c.Size),
			Y: uniform(p.rng, 0, p.env.Bounds.H-c.Size),
		}
		c.Vel = components.Velocity{X: uniform(p.rng, -1, 1), Y: uniform(p.rng, -1, 1)}
	case species.Hibernation:
		c.HibernateUntil = now + s.Duration
	case species.Spike:
		c.SpikedUntil = now + s.Duration
	}
	p.ev.Specials = append(p.ev.Specials, act)
}

// toxicBurst kills every other living creature and removes every plant
// within the actor's size, using snapshot positions.
func (p *Pass) toxicBurst(c *components.Creature) {
	for _, snap := range p.Within(c.Pos, c.Size, c.ID) {
		switch e := p.lookup(snap.EntityID()).(type) {
		case *components.Creature:
			p.kill(e, components.CauseToxic)
		case *components.Plant:
			p.remove(e, components.CauseToxic)
		}
	}
}
