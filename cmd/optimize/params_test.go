package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/terrarium/config"
	"github.com/pthm-cable/terrarium/telemetry"
)

func TestParamVector_NormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(raw[i]-back[i]) > 1e-9 {
			t.Errorf("%s: got %v, want %v", pv.Specs[i].Name, back[i], raw[i])
		}
	}
}

func TestParamVector_DefaultsWithinBounds(t *testing.T) {
	for _, spec := range NewParamVector().Specs {
		if spec.Default < spec.Min || spec.Default > spec.Max {
			t.Errorf("%s: default %v outside [%v, %v]", spec.Name, spec.Default, spec.Min, spec.Max)
		}
	}
}

func TestParamVector_ApplyAndExtract(t *testing.T) {
	cfg, err := config.Default()
	if err != nil {
		t.Fatal(err)
	}
	pv := NewParamVector()

	values := pv.DefaultVector()
	for i, spec := range pv.Specs {
		if spec.Name == "greendot_growth" {
			values[i] = 22
		}
		if spec.Name == "fafa_max_offspring" {
			values[i] = 2.4
		}
	}
	if err := pv.ApplyToConfig(cfg, values); err != nil {
		t.Fatalf("ApplyToConfig: %v", err)
	}

	plant, _, ok := cfg.Derived.Registry.Plant("GreenDot")
	if !ok || plant.Growth != 22 {
		t.Errorf("GreenDot growth not applied: %+v", plant)
	}
	fafa, _, ok := cfg.Derived.Registry.Creature("Fafa")
	if !ok || fafa.MaxOffspring != 2 {
		t.Errorf("Fafa max_offspring = %d, want 2", fafa.MaxOffspring)
	}

	got := pv.ExtractFromConfig(cfg)
	for i, spec := range pv.Specs {
		if spec.Name == "greendot_growth" && got[i] != 22 {
			t.Errorf("extracted growth = %v, want 22", got[i])
		}
	}
}

func TestParamVector_ApplyUnknownSpecies(t *testing.T) {
	cfg, err := config.Default()
	if err != nil {
		t.Fatal(err)
	}
	pv := &ParamVector{Specs: []ParamSpec{{Name: "x", Species: "Nope", Field: "speed", Min: 1, Max: 2, Default: 1}}}
	if err := pv.ApplyToConfig(cfg, []float64{1}); err == nil {
		t.Error("expected error for unconfigured species")
	}
}

func TestComputeQuality(t *testing.T) {
	fe := &FitnessEvaluator{}

	tests := []struct {
		name    string
		windows []telemetry.WindowStats
		wantMin float64
		wantMax float64
	}{
		{name: "too few windows", windows: make([]telemetry.WindowStats, 2), wantMax: 0},
		{
			name: "no creatures",
			windows: []telemetry.WindowStats{
				{}, {}, {}, {Plants: 50}, {Plants: 50},
			},
			wantMax: 0,
		},
		{
			name: "steady food chain",
			windows: []telemetry.WindowStats{
				{}, {}, {},
				{Plants: 50, Creatures: 10, Reproductions: 5},
				{Plants: 50, Creatures: 10, Reproductions: 5},
				{Plants: 50, Creatures: 10, Reproductions: 5},
			},
			wantMin: 0.8,
			wantMax: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fe.computeQuality(tt.windows)
			if got < tt.wantMin || got > tt.wantMax {
				t.Errorf("quality = %v, want in [%v, %v]", got, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestComputeFitness(t *testing.T) {
	if computeFitness(10, 0) != -10 {
		t.Error("zero quality should give -days")
	}
	if computeFitness(10, 1) >= computeFitness(10, 0) {
		t.Error("quality should lower (improve) fitness")
	}
}
