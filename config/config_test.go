package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Derived.FullDay != 60 {
		t.Errorf("FullDay = %v, want 60", cfg.Derived.FullDay)
	}
	if got := cfg.Derived.Registry.Names(); len(got) != 3 {
		t.Errorf("registry names = %v, want 3 species", got)
	}
	keke, _, ok := cfg.Derived.Registry.Creature("Keke")
	if !ok || !keke.EatsSpecies("Fafa") || keke.NightActive != true {
		t.Errorf("Keke = %+v, %v", keke, ok)
	}
	if cfg.Population.Initial["GreenDot"] != 20 {
		t.Errorf("initial GreenDot = %d, want 20", cfg.Population.Initial["GreenDot"])
	}
	if _, ok := cfg.Event("Drought"); !ok {
		t.Error("Drought event missing")
	}
	if cfg.Behavior.SpecialChance != 0.005 || cfg.Lifecycle.OrphanGrace != 30 {
		t.Errorf("behavior/lifecycle = %+v / %+v", cfg.Behavior, cfg.Lifecycle)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `
clock:
  day_duration: 10
population:
  initial:
    Fafa: 9
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Clock.DayDuration != 10 || cfg.Clock.NightDuration != 30 {
		t.Errorf("clock = %+v, want day overridden only", cfg.Clock)
	}
	if cfg.Derived.FullDay != 40 {
		t.Errorf("FullDay = %v, want 40", cfg.Derived.FullDay)
	}
	if cfg.Population.Initial["Fafa"] != 9 || cfg.Population.Initial["Keke"] != 2 {
		t.Errorf("initial = %v, want merged map", cfg.Population.Initial)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"bad world", "world:\n  width: 0\n", "world size"},
		{"zero dt", "clock:\n  dt: 0\n", "clock.dt"},
		{"bad event", "events:\n  predefined:\n    - name: X\n      effect: NOPE\n", "unknown effect"},
		{"bad species", `species:
  - name: Bad
    appearance: {kind: creature, size: 5}
    creature: {eating_cooldown: 50, starvation_time: 10, reproduction_cooldown: 5, maturation_time: 1,
      min_offspring: 1, max_offspring: 1, speed: 1, eats: [], lifespan: 100}
`, "eating_cooldown"},
		{"negative count", "population:\n  initial:\n    Fafa: -1\n", "non-negative"},
		{"missing file", "", "reading config file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if tt.data != "" {
				if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
					t.Fatal(err)
				}
			}
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load(written): %v", err)
	}
	if len(back.Species) != len(cfg.Species) || back.Derived.FullDay != cfg.Derived.FullDay {
		t.Errorf("round trip changed config: %d species, full day %v", len(back.Species), back.Derived.FullDay)
	}
}

func TestRefresh(t *testing.T) {
	cfg, err := Default()
	if err != nil {
		t.Fatal(err)
	}

	cfg.Clock.DayDuration = 5
	cfg.Clock.NightDuration = 7
	cfg.Species[len(cfg.Species)-1].Name = "Renamed"
	if err := cfg.Refresh(); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if cfg.Derived.FullDay != 12 {
		t.Errorf("FullDay = %v, want 12", cfg.Derived.FullDay)
	}
	if _, ok := cfg.Derived.Registry.Lookup("Renamed"); !ok {
		t.Error("registry was not rebuilt from edited species")
	}

	cfg.World.Width = 0
	if err := cfg.Refresh(); err == nil {
		t.Error("Refresh should reject a zero-width world")
	}
}
