// Package events models transient world events and the rule changes they apply.
package events

import (
	"math"

	"github.com/pthm-cable/terrarium/components"
)

// Effect tags what an event changes.
type Effect string

const (
	EffectPlantGrowthBoost   Effect = "PLANT_GROWTH_BOOST"
	EffectAllCreaturesActive Effect = "ALL_CREATURES_ACTIVE"
	EffectPlantCull          Effect = "PLANT_CULL"
	EffectCreatureSpeedBoost Effect = "CREATURE_SPEED_BOOST"
	EffectPlantSizePulse     Effect = "PLANT_SIZE_PULSE"
	EffectReproductionBoost  Effect = "REPRODUCTION_BOOST"
)

// OneShot reports whether the effect is applied once at trigger time rather than every tick.
func (e Effect) OneShot() bool {
	return e == EffectPlantGrowthBoost || e == EffectPlantCull
}

// Known reports whether e is a recognized effect tag.
func (e Effect) Known() bool {
	switch e {
	case EffectPlantGrowthBoost, EffectAllCreaturesActive, EffectPlantCull,
		EffectCreatureSpeedBoost, EffectPlantSizePulse, EffectReproductionBoost:
		return true
	}
	return false
}

// WorldEvent describes a time-boxed global modifier.
type WorldEvent struct {
	Name         string  `yaml:"name" json:"name"`
	Description  string  `yaml:"description" json:"description"`
	Duration     float64 `yaml:"duration" json:"duration"` // seconds
	Effect       Effect  `yaml:"effect" json:"effect"`
	OverlayColor string  `yaml:"overlay_color,omitempty" json:"overlay_color,omitempty"`
}

// Active is a triggered event.
type Active struct {
	WorldEvent
	ID        uint32
	StartTime float64
}

// Expired reports whether the event's duration has elapsed at now.
func (a Active) Expired(now float64) bool {
	return now-a.StartTime >= a.Duration
}

// Tuning holds the magnitudes of each effect.
type Tuning struct {
	SpeedMultiplier        float64 `yaml:"speed_multiplier"`
	ReproductionMultiplier float64 `yaml:"reproduction_multiplier"`
	CullFraction           float64 `yaml:"cull_fraction"`
	GrowthBoost            float64 `yaml:"growth_boost"`    // seconds subtracted from growth timers
	PulseAmplitude         float64 `yaml:"pulse_amplitude"` // fraction of size
	PulseFrequency         float64 `yaml:"pulse_frequency"` // Hz
}

// DefaultTuning returns the stock effect magnitudes.
func DefaultTuning() Tuning {
	return Tuning{
		SpeedMultiplier:        2,
		ReproductionMultiplier: 0.5,
		CullFraction:           0.8,
		GrowthBoost:            10,
		PulseAmplitude:         0.3,
		PulseFrequency:         0.5,
	}
}

// Modifiers are the per-tick parameter adjustments of the active event.
// The zero value is not neutral; use Neutral.
type Modifiers struct {
	SpeedScale     float64
	ReproScale     float64
	AllActive      bool
	SizePulse      bool
	PulseAmplitude float64
	PulseFrequency float64
}

// Neutral returns modifiers that change nothing.
func Neutral() Modifiers {
	return Modifiers{SpeedScale: 1, ReproScale: 1}
}

// DisplaySize returns the plant size to draw at time now.
func (m Modifiers) DisplaySize(size, now float64) float64 {
	if !m.SizePulse {
		return size
	}
	return size * (1 + m.PulseAmplitude*math.Sin(2*math.Pi*m.PulseFrequency*now))
}

// Source of uniform [0,1) draws.
type Source interface {
	Float64() float64
}

// Cull returns the plants removed by a cull, each chosen independently with
// probability fraction. Input order is preserved.
func Cull(plants []*components.Plant, fraction float64, rng Source) []*components.Plant {
	var culled []*components.Plant
	for _, p := range plants {
		if rng.Float64() < fraction {
			culled = append(culled, p)
		}
	}
	return culled
}

// GrowthBoost moves every plant's growth timer back by seconds.
func GrowthBoost(plants []*components.Plant, seconds float64) {
	for _, p := range plants {
		p.LastGrowth -= seconds
	}
}
