package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/terrarium/components"
)

// slot locates an entity's component in the ECS world.
type slot struct {
	entity ecs.Entity
	kind   components.Kind
}

// Store is the persistent entity store between ticks.
// Plants and creatures live in an ark world, one component type per kind;
// the id index and order slice keep iteration deterministic.
type Store struct {
	world *ecs.World

	plants    *ecs.Map1[components.Plant]
	creatures *ecs.Map1[components.Creature]

	plantFilter    *ecs.Filter1[components.Plant]
	creatureFilter *ecs.Filter1[components.Creature]

	index map[uint32]slot
	order []uint32
}

// NewStore creates an empty store.
func NewStore() *Store {
	world := ecs.NewWorld()
	return &Store{
		world:          world,
		plants:         ecs.NewMap1[components.Plant](world),
		creatures:      ecs.NewMap1[components.Creature](world),
		plantFilter:    ecs.NewFilter1[components.Plant](world),
		creatureFilter: ecs.NewFilter1[components.Creature](world),
		index:          make(map[uint32]slot),
	}
}

// Len returns the number of stored entities.
func (s *Store) Len() int {
	return len(s.order)
}

// Add appends an entity. Used to seed the initial population.
func (s *Store) Add(e components.Entity) {
	s.insert(e)
	s.order = append(s.order, e.EntityID())
}

func (s *Store) insert(e components.Entity) {
	switch v := e.Clone().(type) {
	case *components.Plant:
		s.index[v.ID] = slot{entity: s.plants.NewEntity(v), kind: components.KindPlant}
	case *components.Creature:
		s.index[v.ID] = slot{entity: s.creatures.NewEntity(v), kind: components.KindCreature}
	}
}

// Snapshot returns deep copies of all entities in store order.
func (s *Store) Snapshot() []components.Entity {
	out := make([]components.Entity, 0, len(s.order))
	for _, id := range s.order {
		if e := s.get(id); e != nil {
			out = append(out, e.Clone())
		}
	}
	return out
}

func (s *Store) get(id uint32) components.Entity {
	sl, ok := s.index[id]
	if !ok {
		return nil
	}
	switch sl.kind {
	case components.KindPlant:
		return s.plants.Get(sl.entity)
	default:
		return s.creatures.Get(sl.entity)
	}
}

// Commit replaces the store contents with next, adopting its order.
// Vanished ids are removed from the world, survivors are rewritten in
// place and new ids get fresh ECS entities.
func (s *Store) Commit(next []components.Entity) {
	keep := make(map[uint32]struct{}, len(next))
	for _, e := range next {
		keep[e.EntityID()] = struct{}{}
	}

	// Remove in store order so the world's entity recycling stays deterministic.
	for _, id := range s.order {
		if _, ok := keep[id]; ok {
			continue
		}
		s.world.RemoveEntity(s.index[id].entity)
		delete(s.index, id)
	}

	s.order = s.order[:0]
	for _, e := range next {
		id := e.EntityID()
		sl, ok := s.index[id]
		switch {
		case !ok:
			s.insert(e)
		case sl.kind == components.KindPlant:
			*s.plants.Get(sl.entity) = *e.Clone().(*components.Plant)
		default:
			*s.creatures.Get(sl.entity) = *e.Clone().(*components.Creature)
		}
		s.order = append(s.order, id)
	}
}

// Counts summarizes the store by entity state.
type Counts struct {
	Plants    int
	Creatures int // living, babies included
	Babies    int
	Corpses   int
}

// Count walks the ECS filters and tallies entities by state.
func (s *Store) Count() Counts {
	var c Counts

	pq := s.plantFilter.Query()
	for pq.Next() {
		c.Plants++
	}

	cq := s.creatureFilter.Query()
	for cq.Next() {
		cr := cq.Get()
		switch {
		case cr.Dead:
			c.Corpses++
		case cr.Baby:
			c.Babies++
			c.Creatures++
		default:
			c.Creatures++
		}
	}
	return c
}

// LivingCreatures returns the number of creatures that have not died.
func (s *Store) LivingCreatures() int {
	return s.Count().Creatures
}

// Ages returns the ages of living creatures and plants at time now, in store order.
func (s *Store) Ages(now float64) (creatures, plants []float64) {
	for _, id := range s.order {
		switch e := s.get(id).(type) {
		case *components.Plant:
			plants = append(plants, e.Age(now))
		case *components.Creature:
			if e.Alive() {
				creatures = append(creatures, now-e.BirthTime)
			}
		}
	}
	return creatures, plants
}
