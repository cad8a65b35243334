// Package main provides CMA-ES optimization for terrarium species parameters.
package main

import (
	"fmt"
	"math"

	"github.com/pthm-cable/terrarium/config"
	"github.com/pthm-cable/terrarium/species"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Species string  // species record to edit
	Field   string  // behavior field, yaml name
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters
// for the default GreenDot / Fafa / Keke food chain.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Plants
			{Name: "greendot_growth", Species: "GreenDot", Field: "growth", Min: 5, Max: 40, Default: 15},
			{Name: "greendot_range", Species: "GreenDot", Field: "range", Min: 15, Max: 80, Default: 30},
			{Name: "greendot_density", Species: "GreenDot", Field: "density", Min: 1, Max: 10, Default: 5},
			// Grazer
			{Name: "fafa_eating_cooldown", Species: "Fafa", Field: "eating_cooldown", Min: 3, Max: 30, Default: 10},
			{Name: "fafa_starvation_time", Species: "Fafa", Field: "starvation_time", Min: 10, Max: 90, Default: 30},
			{Name: "fafa_reproduction_cooldown", Species: "Fafa", Field: "reproduction_cooldown", Min: 15, Max: 180, Default: 60},
			{Name: "fafa_maturation_time", Species: "Fafa", Field: "maturation_time", Min: 10, Max: 90, Default: 30},
			{Name: "fafa_speed", Species: "Fafa", Field: "speed", Min: 5, Max: 60, Default: 20},
			{Name: "fafa_max_offspring", Species: "Fafa", Field: "max_offspring", Min: 1, Max: 6, Default: 3},
			// Hunter
			{Name: "keke_eating_cooldown", Species: "Keke", Field: "eating_cooldown", Min: 10, Max: 60, Default: 30},
			{Name: "keke_starvation_time", Species: "Keke", Field: "starvation_time", Min: 20, Max: 120, Default: 60},
			{Name: "keke_reproduction_cooldown", Species: "Keke", Field: "reproduction_cooldown", Min: 30, Max: 240, Default: 90},
			{Name: "keke_speed", Species: "Keke", Field: "speed", Min: 5, Max: 60, Default: 25},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig writes parameter values into the config's species records,
// repairs timer ordering and rebuilds the registry.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) error {
	clamped := pv.Clamp(values)

	index := make(map[string]int, len(cfg.Species))
	for i, rec := range cfg.Species {
		index[rec.Name] = i
	}

	for i, spec := range pv.Specs {
		j, ok := index[spec.Species]
		if !ok {
			return fmt.Errorf("param %s: species %q not configured", spec.Name, spec.Species)
		}
		if err := setField(&cfg.Species[j], spec.Field, clamped[i]); err != nil {
			return fmt.Errorf("param %s: %w", spec.Name, err)
		}
	}
	for i := range cfg.Species {
		keepOrdering(&cfg.Species[i])
	}
	return cfg.Refresh()
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = spec.Default
		if rec, ok := cfg.Derived.Registry.Lookup(spec.Species); ok {
			if v, err := getField(rec, spec.Field); err == nil {
				out[i] = v
			}
		}
	}
	return out
}

// keepOrdering pushes starvation and lifespan past the timers they must exceed.
// Unlike species.Clamp it leaves in-range values alone.
func keepOrdering(rec *species.Record) {
	c := rec.Creature
	if c == nil {
		return
	}
	if c.StarvationTime <= c.EatingCooldown {
		c.StarvationTime = c.EatingCooldown + 1
	}
	floor := math.Max(c.StarvationTime, math.Max(c.ReproductionCooldown, c.MaturationTime))
	if c.Lifespan <= floor {
		c.Lifespan = floor + 1
	}
	if c.MaxOffspring < c.MinOffspring {
		c.MaxOffspring = c.MinOffspring
	}
}

func setField(rec *species.Record, field string, v float64) error {
	if p := rec.Plant; p != nil {
		switch field {
		case "growth":
			p.Growth = v
		case "range":
			p.Range = v
		case "density":
			p.Density = int(math.Round(v))
		case "lifespan":
			p.Lifespan = v
		default:
			return fmt.Errorf("unknown plant field %q", field)
		}
		return nil
	}
	c := rec.Creature
	if c == nil {
		return fmt.Errorf("species %q has no behavior", rec.Name)
	}
	switch field {
	case "eating_cooldown":
		c.EatingCooldown = v
	case "starvation_time":
		c.StarvationTime = v
	case "reproduction_cooldown":
		c.ReproductionCooldown = v
	case "maturation_time":
		c.MaturationTime = v
	case "speed":
		c.Speed = v
	case "max_offspring":
		c.MaxOffspring = int(math.Round(v))
	case "lifespan":
		c.Lifespan = v
	default:
		return fmt.Errorf("unknown creature field %q", field)
	}
	return nil
}

func getField(rec species.Record, field string) (float64, error) {
	if p := rec.Plant; p != nil {
		switch field {
		case "growth":
			return p.Growth, nil
		case "range":
			return p.Range, nil
		case "density":
			return float64(p.Density), nil
		case "lifespan":
			return p.Lifespan, nil
		}
		return 0, fmt.Errorf("unknown plant field %q", field)
	}
	c := rec.Creature
	if c == nil {
		return 0, fmt.Errorf("species %q has no behavior", rec.Name)
	}
	switch field {
	case "eating_cooldown":
		return c.EatingCooldown, nil
	case "starvation_time":
		return c.StarvationTime, nil
	case "reproduction_cooldown":
		return c.ReproductionCooldown, nil
	case "maturation_time":
		return c.MaturationTime, nil
	case "speed":
		return c.Speed, nil
	case "max_offspring":
		return float64(c.MaxOffspring), nil
	case "lifespan":
		return c.Lifespan, nil
	}
	return 0, fmt.Errorf("unknown creature field %q", field)
}
