// Package telemetry provides ecosystem health tracking, bookmarking, and CSV output.
package telemetry

import (
	"sort"

	"github.com/pthm-cable/terrarium/components"
)

// EventAction identifies world event log entries.
type EventAction string

const (
	EventTriggered EventAction = "triggered"
	EventExpired   EventAction = "expired"
	EventCleared   EventAction = "cleared"
)

// EventRecord is one world event lifecycle entry in events.csv.
type EventRecord struct {
	SimTime float64     `csv:"sim_time"`
	Day     int         `csv:"day"`
	ID      uint32      `csv:"event_id"`
	Name    string      `csv:"name"`
	Effect  string      `csv:"effect"`
	Action  EventAction `csv:"action"`
}

// PopulationRecord is one species count in populations.csv.
type PopulationRecord struct {
	SimTime float64 `csv:"sim_time"`
	Day     int     `csv:"day"`
	Species string  `csv:"species"`
	Kind    string  `csv:"kind"`
	Living  int     `csv:"living"`
	Dead    int     `csv:"dead"`
}

// CountPopulations tallies entities per species, sorted by species name.
// Species with a registered name but no entities are reported with zero counts.
func CountPopulations(now float64, day int, entities []components.Entity, names []string) []PopulationRecord {
	byName := make(map[string]*PopulationRecord, len(names))
	for _, n := range names {
		byName[n] = &PopulationRecord{SimTime: now, Day: day, Species: n}
	}

	for _, e := range entities {
		r, ok := byName[e.SpeciesName()]
		if !ok {
			r = &PopulationRecord{SimTime: now, Day: day, Species: e.SpeciesName()}
			byName[e.SpeciesName()] = r
		}
		r.Kind = e.Kind().String()
		if c, ok := e.(*components.Creature); ok && c.Dead {
			r.Dead++
			continue
		}
		r.Living++
	}

	out := make([]PopulationRecord, 0, len(byName))
	for _, r := range byName {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Species < out[j].Species })
	return out
}
