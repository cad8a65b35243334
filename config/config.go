// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/pthm-cable/terrarium/events"
	"github.com/pthm-cable/terrarium/species"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World       WorldConfig       `yaml:"world"`
	Clock       ClockConfig       `yaml:"clock"`
	Lifecycle   LifecycleConfig   `yaml:"lifecycle"`
	Behavior    BehaviorConfig    `yaml:"behavior"`
	Events      EventsConfig      `yaml:"events"`
	Mutation    MutationConfig    `yaml:"mutation"`
	Population  PopulationConfig  `yaml:"population"`
	Species     []species.Record  `yaml:"species"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds arena dimensions.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ClockConfig holds day/night timing and host tick pacing.
type ClockConfig struct {
	DayDuration   float64 `yaml:"day_duration"`   // seconds of daylight
	NightDuration float64 `yaml:"night_duration"` // seconds of night
	DT            float64 `yaml:"dt"`             // host tick length in seconds
}

// LifecycleConfig holds fixed lifecycle durations shared by all species.
type LifecycleConfig struct {
	DeathDecay  float64 `yaml:"death_decay"`  // corpse lifetime in seconds
	OrphanGrace float64 `yaml:"orphan_grace"` // unparented baby survival in seconds
}

// BehaviorConfig holds creature steering and trigger constants.
type BehaviorConfig struct {
	WanderChance       float64 `yaml:"wander_chance"`        // per-tick probability of a new heading
	WanderJitter       float64 `yaml:"wander_jitter"`        // max heading change in radians
	SteerLerp          float64 `yaml:"steer_lerp"`           // velocity smoothing factor
	SpecialChance      float64 `yaml:"special_chance"`       // per-tick trigger probability
	InteractionDivisor float64 `yaml:"interaction_divisor"`  // reach = (a+b)/divisor
	ParentFollowFactor float64 `yaml:"parent_follow_factor"` // babies close in beyond parent size * this
	BabySizeFactor     float64 `yaml:"baby_size_factor"`
}

// EventsConfig holds world event tuning and the predefined event deck.
type EventsConfig struct {
	Tuning            events.Tuning       `yaml:"tuning"`
	Predefined        []events.WorldEvent `yaml:"predefined"`
	AutoTriggerChance float64             `yaml:"auto_trigger_chance"` // per new day, headless runner only
}

// MutationConfig holds birth mutation probabilities in percent.
type MutationConfig struct {
	AlbinismChance float64 `yaml:"albinism_chance"`
	CyclopsChance  float64 `yaml:"cyclops_chance"`
	AlbinoColor    string  `yaml:"albino_color"`
	AlbinoEyeColor string  `yaml:"albino_eye_color"`
}

// PopulationConfig holds initial counts per species.
type PopulationConfig struct {
	Initial map[string]int `yaml:"initial"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// LeaderboardConfig holds local score storage parameters.
type LeaderboardConfig struct {
	Path   string `yaml:"path"` // empty disables submission
	Player string `yaml:"player"`
	TopN   int    `yaml:"top_n"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	FullDay  float64           // DayDuration + NightDuration
	Registry *species.Registry // built from Species
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	// Unmarshal into same struct - only overwrites fields present in file.
	// Lists (species, predefined events) are replaced wholesale; maps merge.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the embedded defaults.
func Default() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	if err := cfg.computeDerived(); err != nil {
		return nil, fmt.Errorf("embedded defaults: %w", err)
	}
	return cfg, nil
}

// Refresh re-validates the config and recomputes derived values after
// fields were changed in code.
func (c *Config) Refresh() error {
	return c.computeDerived()
}

// computeDerived validates the loaded values and calculates derived ones.
func (c *Config) computeDerived() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("world size must be positive, got %vx%v", c.World.Width, c.World.Height)
	}
	if c.Clock.DayDuration < 0 || c.Clock.NightDuration < 0 || c.Clock.DayDuration+c.Clock.NightDuration <= 0 {
		return fmt.Errorf("day/night durations must be non-negative with a positive sum")
	}
	c.Derived.FullDay = c.Clock.DayDuration + c.Clock.NightDuration
	if !(c.Clock.DT > 0) {
		return fmt.Errorf("clock.dt must be positive, got %v", c.Clock.DT)
	}

	for _, ev := range c.Events.Predefined {
		if !ev.Effect.Known() {
			return fmt.Errorf("event %q: unknown effect %q", ev.Name, ev.Effect)
		}
	}

	if err := species.ValidateAll(c.Species); err != nil {
		return fmt.Errorf("species: %w", err)
	}
	reg, err := species.New(c.Species)
	if err != nil {
		return fmt.Errorf("species: %w", err)
	}
	c.Derived.Registry = reg

	for name, n := range c.Population.Initial {
		if n < 0 {
			return fmt.Errorf("population.initial[%s] must be non-negative, got %d", name, n)
		}
	}
	return nil
}

// Event returns the predefined event with the given name.
func (c *Config) Event(name string) (events.WorldEvent, bool) {
	for _, ev := range c.Events.Predefined {
		if ev.Name == name {
			return ev, true
		}
	}
	return events.WorldEvent{}, false
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
