// Package species holds per-species appearance and behavior parameters.
package species

import "github.com/pthm-cable/terrarium/components"

// SpecialType names a special ability.
type SpecialType = string

// Built-in special abilities understood by the behavior engine.
const (
	ToxicGas      SpecialType = "TOXIC_GAS"
	Teleportation SpecialType = "TELEPORTATION"
	Hibernation   SpecialType = "HIBERNATION"
	Spike         SpecialType = "SPIKE"
)

// SpecialAbility is an optional, cooldown-gated creature action.
type SpecialAbility struct {
	Type        SpecialType `yaml:"type" json:"type"`
	Name        string      `yaml:"name" json:"name"`
	Description string      `yaml:"description,omitempty" json:"description,omitempty"`
	Enabled     bool        `yaml:"enabled" json:"enabled"`
	Duration    float64     `yaml:"duration" json:"duration"` // seconds
	Cooldown    float64     `yaml:"cooldown" json:"cooldown"` // seconds
}

// Appearance describes how a species looks. Only Size matters to the engine.
type Appearance struct {
	Kind  components.Kind `yaml:"kind" json:"kind"`
	Size  float64         `yaml:"size" json:"size"`
	Color string          `yaml:"color,omitempty" json:"color,omitempty"`
	Shape string          `yaml:"shape,omitempty" json:"shape,omitempty"`
}

// Behavior is implemented by *PlantBehavior and *CreatureBehavior.
type Behavior interface {
	// Active reports whether the species acts in the given phase.
	Active(isDay bool) bool
	// MaxAge returns the lifespan in seconds.
	MaxAge() float64
}

// PlantBehavior parameterizes plant growth.
type PlantBehavior struct {
	Growth      float64 `yaml:"growth" json:"growth"`   // seconds between offspring
	Range       float64 `yaml:"range" json:"range"`     // growth radius
	Density     int     `yaml:"density" json:"density"` // neighbor cap within Range
	DayActive   bool    `yaml:"day_active" json:"day_active"`
	NightActive bool    `yaml:"night_active" json:"night_active"`
	Lifespan    float64 `yaml:"lifespan" json:"lifespan"` // seconds
}

// CreatureBehavior parameterizes the creature state machine.
type CreatureBehavior struct {
	EatingCooldown       float64          `yaml:"eating_cooldown" json:"eating_cooldown"`             // hunger threshold
	StarvationTime       float64          `yaml:"starvation_time" json:"starvation_time"`             // starvation timeout
	ReproductionCooldown float64          `yaml:"reproduction_cooldown" json:"reproduction_cooldown"` // seconds between matings
	MaturationTime       float64          `yaml:"maturation_time" json:"maturation_time"`             // baby -> adult
	MinOffspring         int              `yaml:"min_offspring" json:"min_offspring"`
	MaxOffspring         int              `yaml:"max_offspring" json:"max_offspring"`
	Speed                float64          `yaml:"speed" json:"speed"` // units per second
	DayActive            bool             `yaml:"day_active" json:"day_active"`
	NightActive          bool             `yaml:"night_active" json:"night_active"`
	Eats                 []string         `yaml:"eats" json:"eats"`
	Lifespan             float64          `yaml:"lifespan" json:"lifespan"`
	Specials             []SpecialAbility `yaml:"specials,omitempty" json:"specials,omitempty"`
}

func (b *PlantBehavior) Active(isDay bool) bool {
	return (isDay && b.DayActive) || (!isDay && b.NightActive)
}

func (b *PlantBehavior) MaxAge() float64 { return b.Lifespan }

func (b *CreatureBehavior) Active(isDay bool) bool {
	return (isDay && b.DayActive) || (!isDay && b.NightActive)
}

func (b *CreatureBehavior) MaxAge() float64 { return b.Lifespan }

// EatsSpecies reports whether name is on the diet list.
func (b *CreatureBehavior) EatsSpecies(name string) bool {
	for _, e := range b.Eats {
		if e == name {
			return true
		}
	}
	return false
}

// Record is the exchange form of one species: a tagged union keyed by Appearance.Kind.
// Exactly one of Plant or Creature is set.
type Record struct {
	Name       string            `yaml:"name" json:"name"`
	Appearance Appearance        `yaml:"appearance" json:"appearance"`
	Plant      *PlantBehavior    `yaml:"plant,omitempty" json:"plant,omitempty"`
	Creature   *CreatureBehavior `yaml:"creature,omitempty" json:"creature,omitempty"`
}

// Behavior returns the behavior variant selected by the record's kind tag.
func (r Record) Behavior() Behavior {
	switch r.Appearance.Kind {
	case components.KindPlant:
		if r.Plant != nil {
			return r.Plant
		}
	case components.KindCreature:
		if r.Creature != nil {
			return r.Creature
		}
	}
	return nil
}

// DefaultSpecials returns the built-in special abilities, all disabled.
func DefaultSpecials() []SpecialAbility {
	return []SpecialAbility{
		{Type: ToxicGas, Name: "Toxic Gas", Description: "Releases a deadly gas cloud that kills nearby elements.", Duration: 3, Cooldown: 15},
		{Type: Teleportation, Name: "Teleportation", Description: "Instantly teleports to a random location.", Duration: 0.5, Cooldown: 25},
		{Type: Hibernation, Name: "Hibernation", Description: "Enters a deep sleep, stopping hunger but remaining vulnerable.", Duration: 45, Cooldown: 30},
		{Type: Spike, Name: "Spike", Description: "Grows defensive spikes, preventing predators from eating it.", Duration: 5, Cooldown: 5},
	}
}
