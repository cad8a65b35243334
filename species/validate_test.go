package species

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Record)
		want   string // empty means valid
	}{
		{"valid", func(r *Record) {}, ""},
		{"hunger after starvation", func(r *Record) { r.Creature.EatingCooldown = 40 }, "eating_cooldown"},
		{"starvation after lifespan", func(r *Record) { r.Creature.StarvationTime = 2000 }, "starvation_time"},
		{"reproduction after lifespan", func(r *Record) { r.Creature.ReproductionCooldown = 1800 }, "reproduction_cooldown"},
		{"maturation after lifespan", func(r *Record) { r.Creature.MaturationTime = 1900 }, "maturation_time"},
		{"offspring inverted", func(r *Record) { r.Creature.MinOffspring = 4 }, "offspring range"},
		{"zero speed", func(r *Record) { r.Creature.Speed = 0 }, "speed"},
		{"both behaviors", func(r *Record) { r.Plant = &PlantBehavior{} }, "with plant behavior"},
		{"no size", func(r *Record) { r.Appearance.Size = 0 }, "appearance.size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testRecords()[1]
			tt.mutate(&rec)
			err := Validate(rec)
			if tt.want == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestValidatePlant(t *testing.T) {
	rec := testRecords()[0]
	rec.Plant.Density = 0
	rec.Plant.Range = -1
	err := Validate(rec)
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"density", "range"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestValidateAllUnknownPrey(t *testing.T) {
	recs := testRecords()
	recs[1].Creature.Eats = append(recs[1].Creature.Eats, "Ghost")
	err := ValidateAll(recs)
	if err == nil || !strings.Contains(err.Error(), `"Ghost"`) {
		t.Errorf("ValidateAll() = %v, want unknown prey error", err)
	}
}

func TestClamp(t *testing.T) {
	rec := testRecords()[1]
	c := rec.Creature
	c.Speed = 500
	c.EatingCooldown = 1
	c.StarvationTime = 2
	c.ReproductionCooldown = 5000
	c.MaturationTime = -3
	c.Lifespan = 10
	c.MinOffspring = 12
	c.MaxOffspring = 2

	got := Clamp(rec).Creature
	if got.Speed != MaxSpeed {
		t.Errorf("Speed = %v, want %v", got.Speed, MaxSpeed)
	}
	if got.EatingCooldown != MinEatingCooldown {
		t.Errorf("EatingCooldown = %v, want %v", got.EatingCooldown, MinEatingCooldown)
	}
	if got.StarvationTime != MinStarvation {
		t.Errorf("StarvationTime = %v, want %v", got.StarvationTime, MinStarvation)
	}
	if got.ReproductionCooldown != MaxReproduction {
		t.Errorf("ReproductionCooldown = %v, want %v", got.ReproductionCooldown, MaxReproduction)
	}
	if got.MaturationTime != 0 {
		t.Errorf("MaturationTime = %v, want 0", got.MaturationTime)
	}
	if !(got.Lifespan > got.ReproductionCooldown) {
		t.Errorf("Lifespan %v not above reproduction %v", got.Lifespan, got.ReproductionCooldown)
	}
	if got.MinOffspring != MaxOffspringCount || got.MaxOffspring != MaxOffspringCount {
		t.Errorf("offspring = [%d, %d], want [9, 9]", got.MinOffspring, got.MaxOffspring)
	}
	if err := Validate(Record{Name: rec.Name, Appearance: rec.Appearance, Creature: got}); err != nil {
		t.Errorf("clamped record fails validation: %v", err)
	}
	if c.Speed != 500 {
		t.Error("Clamp modified its input")
	}
}
