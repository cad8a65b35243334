package systems

import (
	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/species"
)

// updateCreature runs the creature state machine: decay, death checks,
// maturation, specials, targeting, movement and integration, in that order.
func (p *Pass) updateCreature(c *components.Creature) {
	beh, app, ok := p.reg.Creature(c.Species)
	if !ok {
		p.dropUnknown(c)
		return
	}
	now := p.env.Now

	if c.Dead {
		if now-c.DeathTime > p.tun.Lifecycle.DeathDecay {
			p.remove(c, components.CauseDecayed)
		}
		return
	}
	if p.deathChecks(c, beh) {
		return
	}
	if c.Hibernating(now) {
		// Hunger is paused, not deferred.
		c.LastFed += p.env.DT
	}

	active := p.env.Mods.AllActive || beh.Active(p.env.IsDay)
	if !active {
		p.steer(c, components.Velocity{}, true)
		p.integrate(c, beh.Speed)
		return
	}

	if c.Baby && now-c.BirthTime > beh.MaturationTime {
		c.Baby = false
		c.Size = app.Size
		c.ParentID = 0
		c.TargetID = 0
		c.Orphaned = false
		c.OrphanSince = 0
		c.LastFed = now
	}

	if !c.Hibernating(now) {
		p.rollSpecials(c, beh)
	}

	hibernating := c.Hibernating(now)
	hungry := !hibernating && now-c.LastFed > beh.EatingCooldown
	ready := p.readyToMate(c, beh)

	p.chooseTarget(c, beh, hungry, ready)

	desired, hold := p.intent(c, beh, hungry, ready)
	p.steer(c, desired, hold)
	p.integrate(c, beh.Speed)
}

// deathChecks applies lifespan, starvation and orphan deaths.
// It reports whether c died.
func (p *Pass) deathChecks(c *components.Creature, beh *species.CreatureBehavior) bool {
	now := p.env.Now
	switch {
	case now-c.BirthTime > beh.Lifespan:
		p.kill(c, components.CauseLifespan)
		return true
	case !c.Baby && !c.Hibernating(now) && now-c.LastFed > beh.StarvationTime:
		p.kill(c, components.CauseStarvation)
		return true
	case c.Baby && p.lookup(c.ParentID) == nil:
		if !c.Orphaned {
			c.Orphaned = true
			c.OrphanSince = now
			c.ParentID = 0
			return false
		}
		if now-c.OrphanSince > p.tun.Lifecycle.OrphanGrace {
			p.kill(c, components.CauseOrphaned)
			return true
		}
	}
	return false
}

// kill turns c into a corpse.
func (p *Pass) kill(c *components.Creature, cause components.Cause) {
	if c.Dead {
		return
	}
	c.Dead = true
	c.DeathTime = p.env.Now
	c.Vel = components.Velocity{}
	p.ev.Deaths = append(p.ev.Deaths, Death{ID: c.ID, Species: c.Species, Cause: cause})
}

// readyToMate reports whether c can breed now, with the event's cooldown scale applied.
func (p *Pass) readyToMate(c *components.Creature, beh *species.CreatureBehavior) bool {
	now := p.env.Now
	return c.Alive() && !c.Baby && !c.Hibernating(now) &&
		now-c.LastReproduced > beh.ReproductionCooldown*p.env.Mods.ReproScale
}

// chooseTarget clears a stale target, then retargets adults by need.
// Hunger wins over mating. With neither need an existing target is kept.
func (p *Pass) chooseTarget(c *components.Creature, beh *species.CreatureBehavior, hungry, ready bool) {
	if c.TargetID != 0 && p.lookup(c.TargetID) == nil {
		c.TargetID = 0
	}
	if c.Baby || c.Hibernating(p.env.Now) {
		return
	}
	var found components.Entity
	switch {
	case hungry:
		found = p.NearestFood(c, beh)
	case ready:
		found = p.NearestMate(c)
	default:
		return
	}
	c.TargetID = 0
	if found != nil {
		c.TargetID = found.EntityID()
	}
}

// intent returns the heading c wants this tick, performing any interaction
// with a target in reach. hold means decay toward a stop.
func (p *Pass) intent(c *components.Creature, beh *species.CreatureBehavior, hungry, ready bool) (components.Velocity, bool) {
	if c.Hibernating(p.env.Now) {
		return components.Velocity{}, true
	}

	if c.Baby {
		parent := p.lookup(c.ParentID)
		if parent == nil {
			return p.wander(c), false
		}
		pp := parent.Position()
		if components.Dist(c.Pos, pp) > parent.BodySize()*p.tun.Behavior.ParentFollowFactor {
			x, y := heading(c.Pos.X, c.Pos.Y, pp.X, pp.Y)
			return components.Velocity{X: x, Y: y}, false
		}
		return components.Velocity{}, true
	}

	target := p.lookup(c.TargetID)
	if target == nil {
		return p.wander(c), false
	}
	tp := target.Position()
	reach := (c.Size + target.BodySize()) / p.tun.Behavior.InteractionDivisor
	if components.Dist(c.Pos, tp) >= reach {
		x, y := heading(c.Pos.X, c.Pos.Y, tp.X, tp.Y)
		return components.Velocity{X: x, Y: y}, false
	}

	switch {
	case hungry:
		p.eat(c, beh, target)
	case ready:
		p.mate(c, beh, target)
	}
	return c.Vel, false
}

// eat consumes target if its current version is still edible. A spiked or
// dead target only clears the predator's target; no cooldown is reset.
func (p *Pass) eat(c *components.Creature, beh *species.CreatureBehavior, target components.Entity) {
	c.TargetID = 0
	if !beh.EatsSpecies(target.SpeciesName()) {
		return
	}
	if prey, ok := target.(*components.Creature); ok && (prey.Dead || prey.Spiked(p.env.Now)) {
		return
	}
	p.remove(target, components.CauseEaten)
	c.LastFed = p.env.Now
}

// mate breeds with target if it is independently ready, spawning babies at
// c's position and refreshing both reproduction timers.
func (p *Pass) mate(c *components.Creature, beh *species.CreatureBehavior, target components.Entity) {
	partner, ok := target.(*components.Creature)
	if !ok || partner.ID == c.ID || partner.Species != c.Species {
		c.TargetID = 0
		return
	}
	partnerBeh, _, ok := p.reg.Creature(partner.Species)
	if !ok || !p.readyToMate(partner, partnerBeh) {
		return
	}
	_, app, _ := p.reg.Creature(c.Species)
	now := p.env.Now

	n := beh.MinOffspring
	if span := beh.MaxOffspring - beh.MinOffspring + 1; span > 1 {
		n += p.rng.Intn(span)
	}
	// A zero-offspring mating still spends both cooldowns but is not reported.
	if n > 0 {
		rep := Reproduction{ParentID: c.ID, MateID: partner.ID, Species: c.Species}
		for i := 0; i < n; i++ {
			baby := NewBaby(p.next(), c, app.Size, p.tun, now, p.rng)
			p.add(baby)
			rep.Offspring = append(rep.Offspring, baby.ID)
		}
		p.ev.Reproductions = append(p.ev.Reproductions, rep)
	}

	c.LastReproduced = now
	partner.LastReproduced = now
	c.TargetID = 0
}
