package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkPlantBloom      BookmarkType = "plant_bloom"
	BookmarkStarvationWave  BookmarkType = "starvation_wave"
	BookmarkCreatureRecover BookmarkType = "creature_recovery"
	BookmarkPlantCrash      BookmarkType = "plant_crash"
	BookmarkStableEcosystem BookmarkType = "stable_ecosystem"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	SimTime     float64      `csv:"sim_time"`
	Day         int          `csv:"day"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"sim_time", b.SimTime,
		"day", b.Day,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in the simulation.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	recentCreatureMin  int // minimum living creature count in recent history
	recentPlantPeak    int // peak plant count in recent history
	stableWindowsCount int // consecutive windows with stable populations
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for stable ecosystem detection
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if bd.historyFull || bd.historyIdx > 0 {
		// Plant bloom: plant births > 2x rolling average
		if b := bd.checkPlantBloom(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Starvation wave: starvation deaths > 2x rolling average
		if b := bd.checkStarvationWave(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Creature recovery: was ≤3, now ≥3x that
		if b := bd.checkCreatureRecovery(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Plant crash: dropped >30% from recent peak
		if b := bd.checkPlantCrash(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Stable ecosystem: both populations present with low variance over 5+ windows
		if b := bd.checkStableEcosystem(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	// Update history
	bd.addToHistory(stats)

	// Track creature minimum and plant peak
	if stats.Creatures < bd.recentCreatureMin || bd.recentCreatureMin == 0 {
		bd.recentCreatureMin = stats.Creatures
	}
	if stats.Plants > bd.recentPlantPeak {
		bd.recentPlantPeak = stats.Plants
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// surge flags a per-window counter above twice its rolling average.
func (bd *BookmarkDetector) surge(current int, pick func(WindowStats) int, floor int) (avg float64, ok bool) {
	history := bd.getHistory()
	if len(history) < 3 {
		return 0, false
	}

	var total int
	for _, h := range history {
		total += pick(h)
	}
	avg = float64(total) / float64(len(history))
	if avg == 0 {
		return 0, false
	}
	return avg, float64(current) > avg*2.0 && current >= floor
}

func (bd *BookmarkDetector) checkPlantBloom(stats WindowStats) *Bookmark {
	avg, ok := bd.surge(stats.PlantBirths, func(h WindowStats) int { return h.PlantBirths }, 10)
	if !ok {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkPlantBloom,
		SimTime:     stats.WindowEnd,
		Day:         stats.Day,
		Description: fmt.Sprintf("%d plant births is %.1fx average (%.1f)", stats.PlantBirths, float64(stats.PlantBirths)/avg, avg),
	}
}

func (bd *BookmarkDetector) checkStarvationWave(stats WindowStats) *Bookmark {
	avg, ok := bd.surge(stats.DeathsStarvation, func(h WindowStats) int { return h.DeathsStarvation }, 3)
	if !ok {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkStarvationWave,
		SimTime:     stats.WindowEnd,
		Day:         stats.Day,
		Description: fmt.Sprintf("%d starvation deaths is %.1fx average (%.1f)", stats.DeathsStarvation, float64(stats.DeathsStarvation)/avg, avg),
	}
}

func (bd *BookmarkDetector) checkCreatureRecovery(stats WindowStats) *Bookmark {
	if bd.recentCreatureMin == 0 || bd.recentCreatureMin > 3 {
		return nil
	}

	threshold := bd.recentCreatureMin * 3
	if stats.Creatures >= threshold && stats.Creatures >= 6 {
		// Reset the minimum after triggering
		oldMin := bd.recentCreatureMin
		bd.recentCreatureMin = stats.Creatures

		return &Bookmark{
			Type:        BookmarkCreatureRecover,
			SimTime:     stats.WindowEnd,
			Day:         stats.Day,
			Description: fmt.Sprintf("Creature population recovered from %d to %d", oldMin, stats.Creatures),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkPlantCrash(stats WindowStats) *Bookmark {
	if bd.recentPlantPeak == 0 {
		return nil
	}

	dropPercent := 1.0 - float64(stats.Plants)/float64(bd.recentPlantPeak)
	if dropPercent > 0.30 && stats.Plants < bd.recentPlantPeak-10 {
		// Reset peak after crash
		oldPeak := bd.recentPlantPeak
		bd.recentPlantPeak = stats.Plants

		return &Bookmark{
			Type:        BookmarkPlantCrash,
			SimTime:     stats.WindowEnd,
			Day:         stats.Day,
			Description: fmt.Sprintf("Plants crashed %.0f%% from peak %d to %d", dropPercent*100, oldPeak, stats.Plants),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkStableEcosystem(stats WindowStats) *Bookmark {
	// Need both populations present
	if stats.Plants < 10 || stats.Creatures < 3 {
		bd.stableWindowsCount = 0
		return nil
	}

	history := bd.getHistory()
	if len(history) < 4 {
		return nil
	}

	// Check variance in recent windows
	var plantSum, creatureSum float64
	for _, h := range history[len(history)-4:] {
		plantSum += float64(h.Plants)
		creatureSum += float64(h.Creatures)
	}
	plantMean := plantSum / 4
	creatureMean := creatureSum / 4

	var plantVar, creatureVar float64
	for _, h := range history[len(history)-4:] {
		plantDiff := float64(h.Plants) - plantMean
		creatureDiff := float64(h.Creatures) - creatureMean
		plantVar += plantDiff * plantDiff
		creatureVar += creatureDiff * creatureDiff
	}
	plantVar /= 4
	creatureVar /= 4

	// Low variance: coefficient of variation < 20%
	plantCV := 0.0
	if plantMean > 0 {
		plantCV = (plantVar / (plantMean * plantMean))
	}
	creatureCV := 0.0
	if creatureMean > 0 {
		creatureCV = (creatureVar / (creatureMean * creatureMean))
	}

	if plantCV < 0.04 && creatureCV < 0.04 { // CV^2 < 0.04 means CV < 0.2
		bd.stableWindowsCount++
	} else {
		bd.stableWindowsCount = 0
	}

	if bd.stableWindowsCount == 5 { // trigger exactly once at 5 windows
		return &Bookmark{
			Type:        BookmarkStableEcosystem,
			SimTime:     stats.WindowEnd,
			Day:         stats.Day,
			Description: fmt.Sprintf("Stable ecosystem with %d plants, %d creatures over 5+ windows", stats.Plants, stats.Creatures),
		}
	}

	return nil
}
