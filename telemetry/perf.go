package telemetry

import (
	"log/slog"
	"slices"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Step phases, in execution order.
const (
	PhaseEvents    = "events"
	PhaseSnapshot  = "snapshot"
	PhasePass      = "pass"
	PhaseCommit    = "commit"
	PhaseTelemetry = "telemetry"
)

// Phases lists the step phases in execution order.
var Phases = []string{
	PhaseEvents, PhaseSnapshot, PhasePass, PhaseCommit, PhaseTelemetry,
}

// tickSample is the timing of one Tick.
type tickSample struct {
	total    time.Duration
	phases   map[string]time.Duration
	entities int
}

// PerfCollector times ticks over a rolling window of the last windowSize ticks.
type PerfCollector struct {
	windowSize int
	ring       []tickSample
	next       int
	filled     int

	current    map[string]time.Duration
	tickStart  time.Time
	phaseStart time.Time
	phase      string
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize: windowSize,
		ring:       make([]tickSample, windowSize),
		current:    make(map[string]time.Duration),
	}
}

// StartTick begins timing a new tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.current = make(map[string]time.Duration, len(Phases))
	p.phase = ""
}

// StartPhase closes the running phase, if any, and opens the named one.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phase
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase != "" {
		p.current[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndTick records the tick. entities is the store size after the commit.
func (p *PerfCollector) EndTick(entities int) {
	now := time.Now()
	p.closePhase(now)
	p.phase = ""

	p.ring[p.next] = tickSample{
		total:    now.Sub(p.tickStart),
		phases:   p.current,
		entities: entities,
	}
	p.next = (p.next + 1) % p.windowSize
	if p.filled < p.windowSize {
		p.filled++
	}
}

// PerfStats aggregates the collector window.
type PerfStats struct {
	Samples int

	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	P95TickDuration time.Duration
	MaxTickDuration time.Duration

	// Per-phase averages and their share of the average tick.
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	TicksPerSecond float64

	// Store size and the pass cost per entity.
	AvgEntities float64
	PassPerEnt  time.Duration
}

// Stats computes the window aggregate. An empty window yields zero values
// with non-nil maps.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		Samples:  p.filled,
		PhaseAvg: make(map[string]time.Duration),
		PhasePct: make(map[string]float64),
	}
	if p.filled == 0 {
		return s
	}

	ticks := make([]float64, p.filled)
	phaseSum := make(map[string]time.Duration)
	var total time.Duration
	var entities int
	for i, smp := range p.ring[:p.filled] {
		ticks[i] = float64(smp.total)
		total += smp.total
		entities += smp.entities
		for name, d := range smp.phases {
			phaseSum[name] += d
		}
	}
	slices.Sort(ticks)

	n := time.Duration(p.filled)
	s.AvgTickDuration = total / n
	s.MinTickDuration = time.Duration(ticks[0])
	s.MaxTickDuration = time.Duration(ticks[len(ticks)-1])
	s.P95TickDuration = time.Duration(stat.Quantile(0.95, stat.Empirical, ticks, nil))
	s.AvgEntities = float64(entities) / float64(p.filled)

	for name, sum := range phaseSum {
		avg := sum / n
		s.PhaseAvg[name] = avg
		if s.AvgTickDuration > 0 {
			s.PhasePct[name] = float64(avg) / float64(s.AvgTickDuration) * 100
		}
	}
	if s.AvgTickDuration > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTickDuration)
	}
	if s.AvgEntities > 0 {
		s.PassPerEnt = time.Duration(float64(s.PhaseAvg[PhasePass]) / s.AvgEntities)
	}
	return s
}

// LogStats logs the window at info level.
func (s PerfStats) LogStats() {
	slog.Info("perf", "perf", s)
}

// LogValue implements slog.LogValuer. Phases below 0.1% are omitted.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("p95_tick_us", s.P95TickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Int("ticks_per_sec", int(s.TicksPerSecond)),
		slog.Int("entities", int(s.AvgEntities)),
		slog.Int64("pass_ns_per_entity", s.PassPerEnt.Nanoseconds()),
	}
	for _, phase := range Phases {
		if pct := s.PhasePct[phase]; pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is the perf.csv row.
type PerfStatsCSV struct {
	WindowEnd    float64 `csv:"sim_time"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	P95TickUS    int64   `csv:"p95_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	AvgEntities  float64 `csv:"avg_entities"`
	PassNsPerEnt int64   `csv:"pass_ns_per_entity"`
	EventsPct    float64 `csv:"events_pct"`
	SnapshotPct  float64 `csv:"snapshot_pct"`
	PassPct      float64 `csv:"pass_pct"`
	CommitPct    float64 `csv:"commit_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats into a perf.csv row stamped with windowEnd.
func (s PerfStats) ToCSV(windowEnd float64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTickDuration.Microseconds(),
		MinTickUS:    s.MinTickDuration.Microseconds(),
		P95TickUS:    s.P95TickDuration.Microseconds(),
		MaxTickUS:    s.MaxTickDuration.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		AvgEntities:  s.AvgEntities,
		PassNsPerEnt: s.PassPerEnt.Nanoseconds(),
		EventsPct:    s.PhasePct[PhaseEvents],
		SnapshotPct:  s.PhasePct[PhaseSnapshot],
		PassPct:      s.PhasePct[PhasePass],
		CommitPct:    s.PhasePct[PhaseCommit],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
