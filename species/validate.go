package species

import (
	"errors"
	"fmt"
	"math"

	"github.com/pthm-cable/terrarium/components"
)

// Editor bounds for creature behavior values, in seconds unless noted.
const (
	MinSpeed          = 1.0
	MaxSpeed          = 99.0
	MinLifespan       = 30.0
	MaxLifespan       = 999.0
	MinEatingCooldown = 5.0
	MaxEatingCooldown = 99.0
	MinStarvation     = 30.0
	MaxStarvation     = 999.0
	MinReproduction   = 5.0
	MaxReproduction   = 999.0
	MinMaturation     = 0.0
	MaxMaturation     = 999.0
	MaxOffspringCount = 9

	// orderingEpsilon keeps strict inequalities strict after clamping.
	orderingEpsilon = 0.001
)

// Validate checks a record's parameter values. All problems are reported together.
func Validate(rec Record) error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if rec.Name == "" {
		add("name is empty")
	}
	if !(rec.Appearance.Size > 0) {
		add("appearance.size must be positive, got %v", rec.Appearance.Size)
	}

	switch rec.Appearance.Kind {
	case components.KindPlant:
		p := rec.Plant
		if p == nil {
			add("plant record without plant behavior")
			break
		}
		if rec.Creature != nil {
			add("plant record with creature behavior")
		}
		if !(p.Growth > 0) {
			add("growth must be positive, got %v", p.Growth)
		}
		if !(p.Range > 0) {
			add("range must be positive, got %v", p.Range)
		}
		if p.Density < 1 {
			add("density must be at least 1, got %d", p.Density)
		}
		if !(p.Lifespan > 0) {
			add("lifespan must be positive, got %v", p.Lifespan)
		}
	case components.KindCreature:
		c := rec.Creature
		if c == nil {
			add("creature record without creature behavior")
			break
		}
		if rec.Plant != nil {
			add("creature record with plant behavior")
		}
		if !(c.Speed > 0) {
			add("speed must be positive, got %v", c.Speed)
		}
		if !(c.EatingCooldown > 0) {
			add("eating_cooldown must be positive, got %v", c.EatingCooldown)
		}
		if !(c.EatingCooldown < c.StarvationTime) {
			add("eating_cooldown (%v) must be less than starvation_time (%v)", c.EatingCooldown, c.StarvationTime)
		}
		if !(c.StarvationTime < c.Lifespan) {
			add("starvation_time (%v) must be less than lifespan (%v)", c.StarvationTime, c.Lifespan)
		}
		if !(c.ReproductionCooldown > 0) || !(c.ReproductionCooldown < c.Lifespan) {
			add("reproduction_cooldown (%v) must be in (0, lifespan)", c.ReproductionCooldown)
		}
		if c.MaturationTime < 0 || !(c.MaturationTime < c.Lifespan) {
			add("maturation_time (%v) must be in [0, lifespan)", c.MaturationTime)
		}
		if c.MinOffspring < 0 || c.MaxOffspring < c.MinOffspring {
			add("offspring range [%d, %d] is invalid", c.MinOffspring, c.MaxOffspring)
		}
		for _, s := range c.Specials {
			if s.Duration < 0 || s.Cooldown < 0 {
				add("special %s: duration and cooldown must be non-negative", s.Type)
			}
		}
	default:
		add("unknown kind %d", rec.Appearance.Kind)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("species %q: %w", rec.Name, errors.Join(errs...))
}

// ValidateAll validates every record and checks that diet lists name known species.
func ValidateAll(records []Record) error {
	known := make(map[string]bool, len(records))
	for _, rec := range records {
		known[rec.Name] = true
	}
	var errs []error
	for _, rec := range records {
		if err := Validate(rec); err != nil {
			errs = append(errs, err)
		}
		if rec.Creature == nil {
			continue
		}
		for _, prey := range rec.Creature.Eats {
			if !known[prey] {
				errs = append(errs, fmt.Errorf("species %q: eats unknown species %q", rec.Name, prey))
			}
		}
	}
	return errors.Join(errs...)
}

// Clamp forces a record's behavior values into the editor bounds and ordering
// constraints. Lifespan is resolved first so every other timer can be bounded by it.
func Clamp(rec Record) Record {
	rec = cloneRecord(rec)
	if rec.Appearance.Size <= 0 || math.IsNaN(rec.Appearance.Size) {
		rec.Appearance.Size = 1
	}

	if p := rec.Plant; p != nil {
		p.Growth = math.Max(p.Growth, orderingEpsilon)
		p.Range = math.Max(p.Range, orderingEpsilon)
		if p.Density < 1 {
			p.Density = 1
		}
		p.Lifespan = math.Max(p.Lifespan, orderingEpsilon)
	}

	c := rec.Creature
	if c == nil {
		return rec
	}
	c.Speed = clamp(c.Speed, MinSpeed, MaxSpeed)

	c.EatingCooldown = clamp(c.EatingCooldown, MinEatingCooldown, MaxEatingCooldown)
	c.StarvationTime = clamp(c.StarvationTime, math.Max(MinStarvation, c.EatingCooldown+orderingEpsilon), MaxStarvation)
	c.ReproductionCooldown = clamp(c.ReproductionCooldown, MinReproduction, MaxReproduction)
	c.MaturationTime = clamp(c.MaturationTime, MinMaturation, MaxMaturation)

	floor := math.Max(c.StarvationTime, math.Max(c.ReproductionCooldown, c.MaturationTime)) + orderingEpsilon
	c.Lifespan = clamp(c.Lifespan, math.Max(MinLifespan, floor), math.Max(MaxLifespan, floor))

	if c.MinOffspring < 0 {
		c.MinOffspring = 0
	}
	if c.MinOffspring > MaxOffspringCount {
		c.MinOffspring = MaxOffspringCount
	}
	if c.MaxOffspring < c.MinOffspring {
		c.MaxOffspring = c.MinOffspring
	}
	if c.MaxOffspring > MaxOffspringCount {
		c.MaxOffspring = MaxOffspringCount
	}
	for i := range c.Specials {
		c.Specials[i].Duration = math.Max(c.Specials[i].Duration, 0)
		c.Specials[i].Cooldown = math.Max(c.Specials[i].Cooldown, 0)
	}
	return rec
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
