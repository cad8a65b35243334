package systems

import (
	"math"

	"github.com/pthm-cable/terrarium/components"
)

// minSteerMagnitude is the speed below which a velocity is left unnormalized.
const minSteerMagnitude = 1e-6

// steer smooths c's velocity toward the desired heading. Holding position
// decays velocity toward zero instead of renormalizing it.
func (p *Pass) steer(c *components.Creature, desired components.Velocity, hold bool) {
	t := p.tun.Behavior.SteerLerp
	if hold {
		c.Vel.X = lerp(c.Vel.X, 0, t)
		c.Vel.Y = lerp(c.Vel.Y, 0, t)
		return
	}
	c.Vel.X = lerp(c.Vel.X, desired.X, t)
	c.Vel.Y = lerp(c.Vel.Y, desired.Y, t)

	if mag := c.Vel.Len(); mag > minSteerMagnitude {
		c.Vel.X /= mag
		c.Vel.Y /= mag
	}
}

// wander occasionally picks a new heading close to the current one.
func (p *Pass) wander(c *components.Creature) components.Velocity {
	b := p.tun.Behavior
	if p.rng.Float64() >= b.WanderChance {
		return c.Vel
	}
	angle := math.Atan2(c.Vel.Y, c.Vel.X) + uniform(p.rng, -b.WanderJitter, b.WanderJitter)
	return components.Velocity{X: math.Cos(angle), Y: math.Sin(angle)}
}

// integrate moves c by its velocity and reflects it off the arena edges.
func (p *Pass) integrate(c *components.Creature, speed float64) {
	step := speed * p.env.Mods.SpeedScale * p.env.DT
	c.Pos.X += c.Vel.X * step
	c.Pos.Y += c.Vel.Y * step

	maxX := p.env.Bounds.W - c.Size
	maxY := p.env.Bounds.H - c.Size
	if c.Pos.X < 0 {
		c.Pos.X = 0
		c.Vel.X = -c.Vel.X
	}
	if c.Pos.X > maxX {
		c.Pos.X = maxX
		c.Vel.X = -c.Vel.X
	}
	if c.Pos.Y < 0 {
		c.Pos.Y = 0
		c.Vel.Y = -c.Vel.Y
	}
	if c.Pos.Y > maxY {
		c.Pos.Y = maxY
		c.Vel.Y = -c.Vel.Y
	}
}

// clampToArena keeps a body of the given size inside the arena.
func (p *Pass) clampToArena(pos components.Position, size float64) components.Position {
	return components.Position{
		X: clampFloat(pos.X, 0, p.env.Bounds.W-size),
		Y: clampFloat(pos.Y, 0, p.env.Bounds.H-size),
	}
}
