package components

// Mutation holds the permanent birth variants of a creature.
type Mutation struct {
	Albino   bool
	Color    string // body color override, set when Albino
	EyeColor string // eye color override, set when Albino
	Cyclops  bool
}

// Creature is a mobile organism driven by the behavior state machine.
// Reference fields hold ids; 0 means no reference.
type Creature struct {
	ID      uint32
	Species string
	Pos     Position
	Vel     Velocity
	Size    float64

	// Timers (world seconds)
	BirthTime      float64
	LastFed        float64
	LastReproduced float64

	// Lifecycle
	Baby      bool
	Dead      bool
	DeathTime float64 // valid when Dead

	// Links by id
	ParentID uint32 // while a baby
	TargetID uint32 // pursuit target

	// Orphan timer, valid when Orphaned
	Orphaned    bool
	OrphanSince float64

	// Special ability state
	SpecialUsed    map[string]float64 // special type -> last use
	HibernateUntil float64
	SpikedUntil    float64

	Mutation Mutation
}

func (c *Creature) EntityID() uint32    { return c.ID }
func (c *Creature) Kind() Kind          { return KindCreature }
func (c *Creature) SpeciesName() string { return c.Species }
func (c *Creature) Position() Position  { return c.Pos }
func (c *Creature) BodySize() float64   { return c.Size }

// Clone returns a deep copy of the creature.
func (c *Creature) Clone() Entity {
	cp := *c
	if c.SpecialUsed != nil {
		cp.SpecialUsed = make(map[string]float64, len(c.SpecialUsed))
		for k, v := range c.SpecialUsed {
			cp.SpecialUsed[k] = v
		}
	}
	return &cp
}

// Hibernating reports whether the creature is asleep at world time now.
func (c *Creature) Hibernating(now float64) bool {
	return now < c.HibernateUntil
}

// Spiked reports whether the creature is protected by spikes at world time now.
func (c *Creature) Spiked(now float64) bool {
	return now < c.SpikedUntil
}

// Alive reports whether the creature has not died.
func (c *Creature) Alive() bool {
	return !c.Dead
}
