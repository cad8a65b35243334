package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/config"
	"github.com/pthm-cable/terrarium/events"
	"github.com/pthm-cable/terrarium/species"
)

// scriptRand replays fixed draws, then falls back to values that never
// pass a probability check.
type scriptRand struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (r *scriptRand) Float64() float64 {
	if r.fi < len(r.floats) {
		v := r.floats[r.fi]
		r.fi++
		return v
	}
	return 0.999
}

func (r *scriptRand) Intn(n int) int {
	if r.ii < len(r.ints) {
		v := r.ints[r.ii]
		r.ii++
		return v % n
	}
	return 0
}

func testTuning() Tuning {
	return Tuning{
		Behavior: config.BehaviorConfig{
			WanderChance:       0.02,
			WanderJitter:       0.8,
			SteerLerp:          0.1,
			SpecialChance:      0.005,
			InteractionDivisor: 2.5,
			ParentFollowFactor: 1.5,
			BabySizeFactor:     0.5,
		},
		Lifecycle: config.LifecycleConfig{DeathDecay: 10, OrphanGrace: 30},
		Events:    events.DefaultTuning(),
	}
}

func plantRecord(name string, beh species.PlantBehavior) species.Record {
	return species.Record{
		Name:       name,
		Appearance: species.Appearance{Kind: components.KindPlant, Size: 10},
		Plant:      &beh,
	}
}

func creatureRecord(name string, size float64, beh species.CreatureBehavior) species.Record {
	return species.Record{
		Name:       name,
		Appearance: species.Appearance{Kind: components.KindCreature, Size: size},
		Creature:   &beh,
	}
}

// grazer is a day-and-night creature that eats "Leaf" and never ages out in tests.
func grazer() species.CreatureBehavior {
	return species.CreatureBehavior{
		EatingCooldown: 5, StarvationTime: 10, ReproductionCooldown: 500, MaturationTime: 100,
		MinOffspring: 1, MaxOffspring: 1, Speed: 1, DayActive: true, NightActive: true,
		Eats: []string{"Leaf"}, Lifespan: 1000,
	}
}

func leaf() species.PlantBehavior {
	return species.PlantBehavior{Growth: 1000, Range: 30, Density: 1, DayActive: true, Lifespan: 1000}
}

// sim drives consecutive passes the way the game clock does.
type sim struct {
	t      *testing.T
	reg    *species.Registry
	tun    Tuning
	rng    Rand
	bounds Bounds
	mods   events.Modifiers
	isDay  bool
	now    float64
	lastID uint32
	ents   []components.Entity
}

func newSim(t *testing.T, recs ...species.Record) *sim {
	t.Helper()
	reg, err := species.New(recs)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	return &sim{
		t:      t,
		reg:    reg,
		tun:    testTuning(),
		rng:    rand.New(rand.NewSource(1)),
		bounds: Bounds{W: 200, H: 200},
		mods:   events.Neutral(),
		isDay:  true,
	}
}

func (s *sim) nextID() uint32 {
	s.lastID++
	return s.lastID
}

func (s *sim) addPlant(name string, x, y float64) *components.Plant {
	pl := NewPlant(s.nextID(), name, components.Position{X: x, Y: y}, 10, s.now)
	s.ents = append(s.ents, pl)
	return pl
}

func (s *sim) addCreature(name string, x, y, size float64) *components.Creature {
	c := NewCreature(s.nextID(), name, components.Position{X: x, Y: y}, size, s.now, s.rng)
	c.Vel = components.Velocity{X: 1}
	s.ents = append(s.ents, c)
	return c
}

func (s *sim) pass(dt float64) *Pass {
	s.now += dt
	env := Env{Now: s.now, DT: dt, IsDay: s.isDay, Bounds: s.bounds, Mods: s.mods}
	return NewPass(s.ents, s.reg, s.tun, env, s.rng, s.nextID)
}

// tick runs one pass, checks conservation and commits the result.
func (s *sim) tick(dt float64) Events {
	s.t.Helper()
	p := s.pass(dt)
	ev := p.Run()
	s.commit(p, ev)
	return ev
}

func (s *sim) commit(p *Pass, ev Events) {
	s.t.Helper()
	next := p.Result()
	if want := len(s.ents) - len(ev.Removed) + len(ev.Spawned); len(next) != want {
		s.t.Fatalf("conservation: got %d entities, want %d (prev %d, removed %d, spawned %d)",
			len(next), want, len(s.ents), len(ev.Removed), len(ev.Spawned))
	}
	s.ents = next
}

func (s *sim) find(id uint32) components.Entity {
	for _, e := range s.ents {
		if e.EntityID() == id {
			return e
		}
	}
	return nil
}

func (s *sim) creature(id uint32) *components.Creature {
	c, _ := s.find(id).(*components.Creature)
	return c
}

func (s *sim) count(kind components.Kind) int {
	n := 0
	for _, e := range s.ents {
		if e.Kind() == kind {
			n++
		}
	}
	return n
}
