package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStart float64 `csv:"-"`
	WindowEnd   float64 `csv:"sim_time"`
	Day         int     `csv:"day"`
	IsDay       bool    `csv:"is_day"`

	// Population counts at window end
	Plants    int `csv:"plants"`
	Creatures int `csv:"creatures"` // living, babies included
	Babies    int `csv:"babies"`
	Corpses   int `csv:"corpses"`

	// Events during window
	PlantBirths    int `csv:"plant_births"`
	CreatureBirths int `csv:"creature_births"`
	Reproductions  int `csv:"reproductions"`
	Mutations      int `csv:"mutations"`
	Specials       int `csv:"specials"`

	// Creature deaths by cause
	DeathsLifespan   int `csv:"deaths_lifespan"`
	DeathsStarvation int `csv:"deaths_starvation"`
	DeathsOrphaned   int `csv:"deaths_orphaned"`
	DeathsToxic      int `csv:"deaths_toxic"`

	// Removals by cause
	Eaten        int `csv:"eaten"`
	Culled       int `csv:"culled"`
	Decayed      int `csv:"decayed"`
	PlantsAged   int `csv:"plants_aged"`
	OtherRemoved int `csv:"other_removed"` // toxic plants, unknown species, invalid

	// Age distributions (sampled at window end)
	CreatureAgeMean float64 `csv:"creature_age_mean"`
	CreatureAgeStd  float64 `csv:"creature_age_std"`
	CreatureAgeP10  float64 `csv:"creature_age_p10"`
	CreatureAgeP50  float64 `csv:"creature_age_p50"`
	CreatureAgeP90  float64 `csv:"creature_age_p90"`
	PlantAgeMean    float64 `csv:"plant_age_mean"`
	PlantAgeP50     float64 `csv:"plant_age_p50"`

	ActiveEvent string `csv:"active_event"`
}

// Distribution summarizes a sample.
type Distribution struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeDistribution calculates mean, sample standard deviation and percentiles.
func ComputeDistribution(values []float64) Distribution {
	n := len(values)
	if n == 0 {
		return Distribution{}
	}

	var d Distribution
	if n == 1 {
		d.Mean = values[0]
	} else {
		d.Mean, d.Std = stat.MeanStdDev(values, nil)
	}

	// Sort for percentiles
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	d.P10 = Percentile(sorted, 0.10)
	d.P50 = Percentile(sorted, 0.50)
	d.P90 = Percentile(sorted, 0.90)
	return d
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("sim_time", s.WindowEnd),
		slog.Int("day", s.Day),
		slog.Bool("is_day", s.IsDay),
		slog.Int("plants", s.Plants),
		slog.Int("creatures", s.Creatures),
		slog.Int("babies", s.Babies),
		slog.Int("corpses", s.Corpses),
		slog.Int("plant_births", s.PlantBirths),
		slog.Int("creature_births", s.CreatureBirths),
		slog.Int("reproductions", s.Reproductions),
		slog.Int("mutations", s.Mutations),
		slog.Int("specials", s.Specials),
		slog.Int("deaths_lifespan", s.DeathsLifespan),
		slog.Int("deaths_starvation", s.DeathsStarvation),
		slog.Int("deaths_orphaned", s.DeathsOrphaned),
		slog.Int("deaths_toxic", s.DeathsToxic),
		slog.Int("eaten", s.Eaten),
		slog.Int("culled", s.Culled),
		slog.Int("decayed", s.Decayed),
		slog.Float64("creature_age_mean", s.CreatureAgeMean),
		slog.Float64("creature_age_p50", s.CreatureAgeP50),
		slog.Float64("plant_age_mean", s.PlantAgeMean),
		slog.String("active_event", s.ActiveEvent),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
