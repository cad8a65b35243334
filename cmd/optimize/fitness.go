package main

import (
	"maps"
	"math"
	"slices"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/config"
	"github.com/pthm-cable/terrarium/game"
	"github.com/pthm-cable/terrarium/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	maxDays     int
	seeds       []int64
	baseConfig  *config.Config
	statsWindow float64

	mu          sync.Mutex
	bestFitness float64
	bestDays    float64
	lastQuality float64 // quality from most recent Evaluate call
	lastDays    float64 // mean survival from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxDays int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxDays:     maxDays,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 10.0,
		bestFitness: math.Inf(1),
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// LastDays returns the mean survival in days from the most recent evaluation.
func (fe *FitnessEvaluator) LastDays() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastDays
}

// Minimum viable population: if any creature species stays below this for
// extinctionGraceSec, the food chain counts as functionally extinct.
const (
	minViablePop       = 3
	extinctionGraceSec = 60.0
	warmupSec          = 10.0
)

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalDays float64                 // days before functional extinction (or maxDays)
	windowStats  []telemetry.WindowStats // collected via StatsCallback each window
}

type seedResult struct {
	fitness float64
	quality float64
	days    float64
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			result := fe.runSimulation(x, s)
			quality := fe.computeQuality(result.windowStats)
			results[idx] = seedResult{
				fitness: computeFitness(result.survivalDays, quality),
				quality: quality,
				days:    result.survivalDays,
			}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality, totalDays float64
	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
		totalDays += r.days
	}

	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
		fe.bestDays = totalDays / n
	}
	fe.lastQuality = totalQuality / n
	fe.lastDays = totalDays / n
	fe.mu.Unlock()

	return avgFitness
}

// runSimulation executes a single headless run until the world ends,
// the food chain functionally collapses, or maxDays elapse.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) *runResult {
	result := &runResult{}

	cfg := fe.copyConfig()
	if err := fe.params.ApplyToConfig(cfg, x); err != nil {
		return result
	}

	g, err := game.NewGameWithOptions(game.Options{
		Seed:           seed,
		Config:         cfg,
		StatsWindowSec: fe.statsWindow,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err != nil {
		return result
	}
	defer g.Unload()

	creatureSpecies := creatureNames(cfg)
	belowSince := make(map[string]float64, len(creatureSpecies))
	fullDay := cfg.Derived.FullDay
	maxTime := float64(fe.maxDays) * fullDay

	for !g.Over() && g.WorldTime() < maxTime {
		g.UpdateHeadless()

		now := g.WorldTime()
		if now < warmupSec {
			continue
		}

		living := livingBySpecies(g.Entities())
		for _, name := range creatureSpecies {
			if living[name] >= minViablePop {
				delete(belowSince, name)
				continue
			}
			since, ok := belowSince[name]
			if !ok {
				belowSince[name] = now
				continue
			}
			if now-since >= extinctionGraceSec {
				result.survivalDays = since / fullDay
				return result
			}
		}
	}

	result.survivalDays = math.Min(g.WorldTime(), maxTime) / fullDay
	return result
}

// copyConfig creates a deep copy of the base config for one run.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	cfg.Species = fe.baseConfig.Derived.Registry.Records()
	cfg.Population.Initial = maps.Clone(fe.baseConfig.Population.Initial)
	cfg.Events.Predefined = slices.Clone(fe.baseConfig.Events.Predefined)
	return &cfg
}

func creatureNames(cfg *config.Config) []string {
	var names []string
	for _, rec := range cfg.Species {
		if rec.Appearance.Kind == components.KindCreature {
			names = append(names, rec.Name)
		}
	}
	slices.Sort(names)
	return names
}

func livingBySpecies(entities []components.Entity) map[string]int {
	counts := make(map[string]int)
	for _, e := range entities {
		if c, ok := e.(*components.Creature); ok && c.Alive() {
			counts[c.Species]++
		}
	}
	return counts
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(survivalDays × (1.0 + 0.2 × quality))
// Survival dominates; quality adds up to 20% bonus.
func computeFitness(survivalDays, quality float64) float64 {
	return -(survivalDays * (1.0 + 0.2*quality))
}

// Quality component weights.
const (
	qualityWeightRatio     = 0.40
	qualityWeightStability = 0.35
	qualityWeightTurnover  = 0.25

	qualityWarmupWindows = 3 // skip first N windows (warmup)
	qualityMinPop        = 3 // exclude windows with fewer living creatures
	qualityTargetRatio   = 5.0
)

// computeQuality computes ecosystem quality in [0, 1] from window stats.
func (fe *FitnessEvaluator) computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}
	valid := windows[qualityWarmupWindows:]

	var ratioSum, turnoverSum float64
	var count int
	plants := make([]float64, 0, len(valid))
	creatures := make([]float64, 0, len(valid))

	for _, w := range valid {
		if w.Creatures < qualityMinPop || w.Plants == 0 {
			continue
		}
		plants = append(plants, float64(w.Plants))
		creatures = append(creatures, float64(w.Creatures))

		// Plants per creature, log-gaussian around the target.
		logErr := math.Log(float64(w.Plants) / float64(w.Creatures) / qualityTargetRatio)
		ratioSum += math.Exp(-logErr * logErr)

		// Reproduction activity per creature.
		turnoverSum += 1.0 - math.Exp(-float64(w.Reproductions)/float64(w.Creatures))
		count++
	}
	if count == 0 {
		return 0
	}

	stabilityScore := 0.0
	if len(plants) >= 2 {
		cvPlants := cv(plants)
		cvCreatures := cv(creatures)
		stabilityScore = math.Exp(-(cvPlants*cvPlants + cvCreatures*cvCreatures))
	}

	quality := qualityWeightRatio*ratioSum/float64(count) +
		qualityWeightStability*stabilityScore +
		qualityWeightTurnover*turnoverSum/float64(count)

	return clamp01(quality)
}

// cv computes the coefficient of variation (std/mean) for a slice of values.
func cv(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean, std := stat.PopMeanStdDev(values, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
