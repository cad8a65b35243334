// Package systems implements the per-tick behavior engine.
//
// A Pass advances one tick over a snapshot of the entity store. Spatial
// queries always read the snapshot; mutations go to an id-keyed overlay of
// current versions, a removal set and an ordered list of additions.
package systems

import (
	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/config"
	"github.com/pthm-cable/terrarium/events"
	"github.com/pthm-cable/terrarium/species"
)

// Rand is the randomness seam. *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// IDSource allocates fresh entity ids.
type IDSource func() uint32

// Bounds is the arena size.
type Bounds struct {
	W, H float64
}

// Env is the per-tick environment.
type Env struct {
	Now    float64 // world time after this tick's advance
	DT     float64
	IsDay  bool
	Bounds Bounds
	Mods   events.Modifiers
}

// Tuning holds the engine constants shared by all species.
type Tuning struct {
	Behavior  config.BehaviorConfig
	Lifecycle config.LifecycleConfig
	Mutation  config.MutationConfig
	Events    events.Tuning
}

// TuningFrom extracts engine constants from a loaded config.
func TuningFrom(cfg *config.Config) Tuning {
	return Tuning{
		Behavior:  cfg.Behavior,
		Lifecycle: cfg.Lifecycle,
		Mutation:  cfg.Mutation,
		Events:    cfg.Events.Tuning,
	}
}

// Removal records an entity leaving the store.
type Removal struct {
	ID      uint32
	Kind    components.Kind
	Species string
	Cause   components.Cause
}

// Death records a creature becoming a corpse.
type Death struct {
	ID      uint32
	Species string
	Cause   components.Cause
}

// Reproduction records a successful mating.
type Reproduction struct {
	ParentID  uint32
	MateID    uint32
	Species   string
	Offspring []uint32
}

// Activation records a special ability firing.
type Activation struct {
	ID      uint32
	Species string
	Type    species.SpecialType
	Pos     components.Position
	Radius  float64
}

// Events is what one tick reports to the host.
type Events struct {
	Spawned       []components.Entity
	Removed       []Removal
	Deaths        []Death
	Reproductions []Reproduction
	Specials      []Activation
	Extinct       bool
	Day           int
	IsDay         bool
}

// Pass is the overlay for one tick.
type Pass struct {
	env  Env
	reg  *species.Registry
	tun  Tuning
	rng  Rand
	next IDSource

	snapshot  []components.Entity
	current   map[uint32]components.Entity
	removed   map[uint32]components.Cause
	additions []components.Entity
	ev        Events
}

// NewPass prepares a pass over snapshot. The snapshot is never modified;
// every entity is cloned into the overlay before it is updated.
func NewPass(snapshot []components.Entity, reg *species.Registry, tun Tuning, env Env, rng Rand, next IDSource) *Pass {
	p := &Pass{
		env:      env,
		reg:      reg,
		tun:      tun,
		rng:      rng,
		next:     next,
		snapshot: snapshot,
		current:  make(map[uint32]components.Entity, len(snapshot)),
		removed:  make(map[uint32]components.Cause),
	}
	for _, e := range snapshot {
		p.current[e.EntityID()] = e.Clone()
	}
	return p
}

// ApplyOneShot applies a one-shot event effect to the current plants.
// It must run before Run so its removals are part of this tick.
func (p *Pass) ApplyOneShot(effect events.Effect) {
	plants := p.livePlants()
	switch effect {
	case events.EffectPlantCull:
		for _, pl := range events.Cull(plants, p.tun.Events.CullFraction, p.rng) {
			p.remove(pl, components.CauseEventCull)
		}
	case events.EffectPlantGrowthBoost:
		events.GrowthBoost(plants, p.tun.Events.GrowthBoost)
	}
}

// Run updates every entity once, in snapshot order.
func (p *Pass) Run() Events {
	for _, snap := range p.snapshot {
		id := snap.EntityID()
		if p.isRemoved(id) {
			continue
		}
		switch e := p.current[id].(type) {
		case *components.Plant:
			p.updatePlant(e)
		case *components.Creature:
			p.updateCreature(e)
		}
		if !p.isRemoved(id) {
			p.checkInvariants(p.current[id])
		}
	}
	return p.ev
}

// Result returns the next entity list: surviving current versions in
// snapshot order, then additions in creation order.
func (p *Pass) Result() []components.Entity {
	out := make([]components.Entity, 0, len(p.snapshot)-len(p.removed)+len(p.additions))
	for _, snap := range p.snapshot {
		id := snap.EntityID()
		if p.isRemoved(id) {
			continue
		}
		out = append(out, p.current[id])
	}
	return append(out, p.additions...)
}

// lookup resolves an id to its current version. Removed and unknown ids are absent.
func (p *Pass) lookup(id uint32) components.Entity {
	if id == 0 || p.isRemoved(id) {
		return nil
	}
	e, ok := p.current[id]
	if !ok {
		return nil
	}
	return e
}

func (p *Pass) isRemoved(id uint32) bool {
	_, ok := p.removed[id]
	return ok
}

// remove marks an entity for removal. Only the first cause is kept.
func (p *Pass) remove(e components.Entity, cause components.Cause) {
	id := e.EntityID()
	if p.isRemoved(id) {
		return
	}
	p.removed[id] = cause
	p.ev.Removed = append(p.ev.Removed, Removal{ID: id, Kind: e.Kind(), Species: e.SpeciesName(), Cause: cause})
}

func (p *Pass) add(e components.Entity) {
	p.additions = append(p.additions, e)
	p.ev.Spawned = append(p.ev.Spawned, e)
}

func (p *Pass) livePlants() []*components.Plant {
	var out []*components.Plant
	for _, snap := range p.snapshot {
		if pl, ok := p.lookup(snap.EntityID()).(*components.Plant); ok {
			out = append(out, pl)
		}
	}
	return out
}
