// Package game drives the ecosystem: it owns the entity store, the world
// clock and the active world event, and runs one behavior pass per tick.
package game

import (
	"log/slog"
	"math"
	"math/rand"
	"sort"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/config"
	"github.com/pthm-cable/terrarium/events"
	"github.com/pthm-cable/terrarium/species"
	"github.com/pthm-cable/terrarium/systems"
	"github.com/pthm-cable/terrarium/telemetry"
)

// Options configures a new game instance.
type Options struct {
	Seed           int64
	Config         *config.Config // nil = config.Cfg()
	LogStats       bool
	StatsWindowSec float64 // 0 = use config
	OutputDir      string  // empty = no CSV output
	AutoEvents     bool    // trigger predefined events at day boundaries in UpdateHeadless

	// StatsCallback is called after each telemetry window flush.
	StatsCallback func(telemetry.WindowStats)
}

// staged holds configuration waiting for the next Reset.
type staged struct {
	registry *species.Registry
	mutation config.MutationConfig
}

// Game holds the complete simulation state.
type Game struct {
	cfg     *config.Config
	rng     *rand.Rand
	hostRng *rand.Rand // host-side decisions (auto events), kept apart from the engine stream

	store     *Store
	registry  *species.Registry
	tuning    systems.Tuning
	pending   staged
	modulator *events.Modulator
	bounds    systems.Bounds

	// Clock
	worldTime float64
	ticks     int32
	nextID    uint32

	// Terminal state
	hadCreatures bool
	over         bool
	daysSurvived int

	// Headless host state
	autoEvents bool
	lastDay    int

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	logStats         bool
	statsCallback    func(telemetry.WindowStats)
}

// NewGameWithOptions creates a game and spawns the configured initial population.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, err
	}

	g := &Game{
		cfg:              cfg,
		rng:              rand.New(rand.NewSource(opts.Seed)),
		hostRng:          rand.New(rand.NewSource(opts.Seed + 1)),
		store:            NewStore(),
		tuning:           systems.TuningFrom(cfg),
		pending:          staged{registry: cfg.Derived.Registry, mutation: cfg.Mutation},
		modulator:        events.NewModulator(cfg.Events.Tuning),
		autoEvents:       opts.AutoEvents,
		collector:        telemetry.NewCollector(statsWindow),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		bookmarkDetector: telemetry.NewBookmarkDetector(10),
		outputManager:    om,
		logStats:         opts.LogStats,
		statsCallback:    opts.StatsCallback,
	}

	g.Reset(cfg.Population.Initial, systems.Bounds{W: cfg.World.Width, H: cfg.World.Height})
	return g, nil
}

// Configure replaces the species registry and mutation settings.
// The change takes effect on the next Reset.
func (g *Game) Configure(reg *species.Registry, mut config.MutationConfig) {
	g.pending = staged{registry: reg, mutation: mut}
}

// Reset clears the world and spawns counts[name] entities of each species
// inside bounds. Species are spawned in sorted name order; names without a
// registry entry are skipped.
func (g *Game) Reset(counts map[string]int, bounds systems.Bounds) {
	g.registry = g.pending.registry
	g.tuning.Mutation = g.pending.mutation
	g.bounds = bounds

	g.store = NewStore()
	g.modulator.Reset()
	g.worldTime = 0
	g.ticks = 0
	g.nextID = 0
	g.over = false
	g.daysSurvived = 0
	g.lastDay = 1
	g.collector.Reset(0)

	g.spawnInitialPopulation(counts)
	g.hadCreatures = g.store.LivingCreatures() > 0
}

// allocID returns the next entity id. Ids start at 1; 0 means no reference.
func (g *Game) allocID() uint32 {
	g.nextID++
	return g.nextID
}

// TriggerEvent installs ev as the active world event. It returns false and
// changes nothing while another event is active or the game is over.
func (g *Game) TriggerEvent(ev events.WorldEvent) bool {
	if g.over || !g.modulator.Trigger(ev, g.worldTime) {
		return false
	}
	active, _ := g.modulator.Current()
	slog.Info("event_triggered",
		"id", active.ID,
		"name", ev.Name,
		"effect", string(ev.Effect),
		"duration", ev.Duration,
		"sim_time", g.worldTime,
	)
	g.writeEvent(active, telemetry.EventTriggered)
	return true
}

// ClearEvent force-expires the active world event.
func (g *Game) ClearEvent() {
	active, ok := g.modulator.Current()
	if !ok {
		return
	}
	g.modulator.Clear()
	slog.Info("event_cleared", "id", active.ID, "name", active.Name, "sim_time", g.worldTime)
	g.writeEvent(active, telemetry.EventCleared)
}

// Entities returns copies of all entities in store order.
func (g *Game) Entities() []components.Entity {
	return g.store.Snapshot()
}

// Counts returns the current population tallies.
func (g *Game) Counts() Counts {
	return g.store.Count()
}

// WorldTime returns the accumulated simulated seconds.
func (g *Game) WorldTime() float64 {
	return g.worldTime
}

// Ticks returns the number of ticks run since the last Reset.
func (g *Game) Ticks() int32 {
	return g.ticks
}

// Day returns the 1-based day number.
func (g *Game) Day() int {
	return dayAt(g.worldTime, g.cfg.Derived.FullDay)
}

// IsDay reports whether the world clock is in the daylight phase.
func (g *Game) IsDay() bool {
	return isDayAt(g.worldTime, g.cfg.Clock.DayDuration, g.cfg.Derived.FullDay)
}

// ActiveEvent returns the active world event.
func (g *Game) ActiveEvent() (events.Active, bool) {
	return g.modulator.Current()
}

// Over reports whether every creature has died.
func (g *Game) Over() bool {
	return g.over
}

// DaysSurvived returns the day on which the last creature died. Zero while running.
func (g *Game) DaysSurvived() int {
	return g.daysSurvived
}

// Registry returns the species registry in effect.
func (g *Game) Registry() *species.Registry {
	return g.registry
}

// Config returns the configuration the game was built from.
func (g *Game) Config() *config.Config {
	return g.cfg
}

// Unload flushes and closes telemetry output.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

func dayAt(t, fullDay float64) int {
	return int(math.Floor(t/fullDay)) + 1
}

func isDayAt(t, dayDuration, fullDay float64) bool {
	return math.Mod(t, fullDay) < dayDuration
}

// sortedNames returns the keys of counts in lexical order.
func sortedNames(counts map[string]int) []string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
