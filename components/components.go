// Package components defines the entity value types owned by the simulation.
package components

// Kind distinguishes the two entity variants.
type Kind uint8

const (
	KindPlant Kind = iota
	KindCreature
)

// Entity is the sum type over *Plant and *Creature.
// Code dispatches on Kind (or a type switch), never on field presence.
type Entity interface {
	EntityID() uint32
	Kind() Kind
	SpeciesName() string
	Position() Position
	BodySize() float64
	// Clone returns a deep copy safe to mutate independently.
	Clone() Entity
}

// Cause explains why an entity died or left the store.
type Cause uint8

const (
	CauseLifespan Cause = iota
	CauseStarvation
	CauseEaten
	CauseOrphaned
	CauseEventCull
	CauseDecayed
	CauseToxic
	CauseUnknownSpecies
	CauseInvalid
)
