package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseSnapshot)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhasePass)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick(40)
	}

	stats := pc.Stats()
	if stats.Samples != 5 {
		t.Errorf("Samples = %d, want 5", stats.Samples)
	}
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}
	for _, phase := range []string{PhaseSnapshot, PhasePass} {
		if _, ok := stats.PhaseAvg[phase]; !ok {
			t.Errorf("expected %s phase to be tracked", phase)
		}
	}
	if stats.AvgEntities != 40 {
		t.Errorf("AvgEntities = %v, want 40", stats.AvgEntities)
	}
	if stats.PassPerEnt <= 0 {
		t.Error("expected positive pass cost per entity")
	}
	if stats.MinTickDuration > stats.P95TickDuration || stats.P95TickDuration > stats.MaxTickDuration {
		t.Errorf("want min <= p95 <= max, got %v %v %v",
			stats.MinTickDuration, stats.P95TickDuration, stats.MaxTickDuration)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseSnapshot)
		pc.EndTick(i)
	}

	stats := pc.Stats()
	if stats.Samples != 5 {
		t.Errorf("Samples = %d, want window size 5", stats.Samples)
	}
	// Only ticks 5..9 remain in the window.
	if stats.AvgEntities != 7 {
		t.Errorf("AvgEntities = %v, want 7", stats.AvgEntities)
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseEvents)
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase(PhasePass)
		time.Sleep(500 * time.Microsecond)
		pc.EndTick(1)
	}

	stats := pc.Stats()
	if stats.PhasePct[PhasePass] <= stats.PhasePct[PhaseEvents] {
		t.Errorf("expected pass (%v%%) > events (%v%%)",
			stats.PhasePct[PhasePass], stats.PhasePct[PhaseEvents])
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	stats := NewPerfCollector(10).Stats()

	if stats.AvgTickDuration != 0 || stats.Samples != 0 {
		t.Error("expected zero values for empty collector")
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	stats := PerfStats{
		AvgTickDuration: 250 * time.Microsecond,
		P95TickDuration: 400 * time.Microsecond,
		PassPerEnt:      1500 * time.Nanosecond,
		PhasePct:        map[string]float64{PhasePass: 60, PhaseCommit: 15},
	}

	row := stats.ToCSV(12.5)
	if row.WindowEnd != 12.5 {
		t.Errorf("WindowEnd = %v, want 12.5", row.WindowEnd)
	}
	if row.AvgTickUS != 250 || row.P95TickUS != 400 {
		t.Errorf("tick us = %d/%d, want 250/400", row.AvgTickUS, row.P95TickUS)
	}
	if row.PassNsPerEnt != 1500 {
		t.Errorf("PassNsPerEnt = %d, want 1500", row.PassNsPerEnt)
	}
	if row.PassPct != 60 || row.CommitPct != 15 {
		t.Errorf("phase pct = %v/%v, want 60/15", row.PassPct, row.CommitPct)
	}
	if row.EventsPct != 0 {
		t.Errorf("EventsPct = %v, want 0 for an untracked phase", row.EventsPct)
	}
}
