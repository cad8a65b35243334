package telemetry

import "github.com/pthm-cable/terrarium/components"

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec float64

	// Current window tracking
	windowStart float64

	// Event counters for current window
	plantBirths    int
	creatureBirths int
	reproductions  int
	mutations      int
	specials       int
	deaths         [9]int // by components.Cause
	removals       [9]int // by components.Cause
	plantsAged     int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds.
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 10
	}
	return &Collector{windowDurationSec: windowDurationSec}
}

// RecordBirth records an entity entering the store.
func (c *Collector) RecordBirth(kind components.Kind) {
	if kind == components.KindPlant {
		c.plantBirths++
	} else {
		c.creatureBirths++
	}
}

// RecordReproduction records a mating.
func (c *Collector) RecordReproduction() {
	c.reproductions++
}

// RecordMutation records a baby born with at least one mutation.
func (c *Collector) RecordMutation() {
	c.mutations++
}

// RecordSpecial records a special ability activation.
func (c *Collector) RecordSpecial() {
	c.specials++
}

// RecordDeath records a creature dying.
func (c *Collector) RecordDeath(cause components.Cause) {
	if int(cause) < len(c.deaths) {
		c.deaths[cause]++
	}
}

// RecordRemoval records an entity leaving the store.
func (c *Collector) RecordRemoval(kind components.Kind, cause components.Cause) {
	if kind == components.KindPlant && cause == components.CauseLifespan {
		c.plantsAged++
		return
	}
	if int(cause) < len(c.removals) {
		c.removals[cause]++
	}
}

// ShouldFlush returns true if enough simulated time has passed to flush the window.
func (c *Collector) ShouldFlush(now float64) bool {
	return now-c.windowStart >= c.windowDurationSec
}

// Sample is the population state at window end.
type Sample struct {
	Day          int
	IsDay        bool
	Plants       int
	Creatures    int
	Babies       int
	Corpses      int
	CreatureAges []float64
	PlantAges    []float64
	ActiveEvent  string
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(now float64, s Sample) WindowStats {
	creatureAge := ComputeDistribution(s.CreatureAges)
	plantAge := ComputeDistribution(s.PlantAges)

	stats := WindowStats{
		WindowStart: c.windowStart,
		WindowEnd:   now,
		Day:         s.Day,
		IsDay:       s.IsDay,

		Plants:    s.Plants,
		Creatures: s.Creatures,
		Babies:    s.Babies,
		Corpses:   s.Corpses,

		PlantBirths:    c.plantBirths,
		CreatureBirths: c.creatureBirths,
		Reproductions:  c.reproductions,
		Mutations:      c.mutations,
		Specials:       c.specials,

		DeathsLifespan:   c.deaths[components.CauseLifespan],
		DeathsStarvation: c.deaths[components.CauseStarvation],
		DeathsOrphaned:   c.deaths[components.CauseOrphaned],
		DeathsToxic:      c.deaths[components.CauseToxic],

		Eaten:      c.removals[components.CauseEaten],
		Culled:     c.removals[components.CauseEventCull],
		Decayed:    c.removals[components.CauseDecayed],
		PlantsAged: c.plantsAged,
		OtherRemoved: c.removals[components.CauseToxic] +
			c.removals[components.CauseUnknownSpecies] +
			c.removals[components.CauseInvalid] +
			c.removals[components.CauseLifespan],

		CreatureAgeMean: creatureAge.Mean,
		CreatureAgeStd:  creatureAge.Std,
		CreatureAgeP10:  creatureAge.P10,
		CreatureAgeP50:  creatureAge.P50,
		CreatureAgeP90:  creatureAge.P90,
		PlantAgeMean:    plantAge.Mean,
		PlantAgeP50:     plantAge.P50,

		ActiveEvent: s.ActiveEvent,
	}

	// Reset for next window
	c.windowStart = now
	c.plantBirths = 0
	c.creatureBirths = 0
	c.reproductions = 0
	c.mutations = 0
	c.specials = 0
	c.deaths = [9]int{}
	c.removals = [9]int{}
	c.plantsAged = 0

	return stats
}

// Reset discards the current window and starts a new one at now.
func (c *Collector) Reset(now float64) {
	c.Flush(now, Sample{})
}

// WindowDuration returns the window length in simulated seconds.
func (c *Collector) WindowDuration() float64 {
	return c.windowDurationSec
}
