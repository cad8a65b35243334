package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_PlantBloom(t *testing.T) {
	bd := NewBookmarkDetector(10)

	// Add some history with steady plant growth
	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEnd: float64(i * 10), PlantBirths: 5})
	}

	// Now a window with 4x the average
	bookmarks := bd.Check(WindowStats{WindowEnd: 50, Day: 1, PlantBirths: 20})
	if !hasBookmark(bookmarks, BookmarkPlantBloom) {
		t.Error("expected plant_bloom bookmark")
	}
}

func TestBookmarkDetector_StarvationWave(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEnd: float64(i * 10), DeathsStarvation: 1})
	}

	if bookmarks := bd.Check(WindowStats{WindowEnd: 50, DeathsStarvation: 2}); hasBookmark(bookmarks, BookmarkStarvationWave) {
		t.Error("2 deaths is under the floor, expected no starvation_wave")
	}
	if bookmarks := bd.Check(WindowStats{WindowEnd: 60, DeathsStarvation: 6}); !hasBookmark(bookmarks, BookmarkStarvationWave) {
		t.Error("expected starvation_wave bookmark")
	}
}

func TestBookmarkDetector_PlantCrash(t *testing.T) {
	bd := NewBookmarkDetector(10)

	// Build up plant population
	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEnd: float64(i * 10), Plants: 100, Creatures: 10})
	}

	// Now crash plant population
	bookmarks := bd.Check(WindowStats{WindowEnd: 50, Plants: 50, Creatures: 10})
	if !hasBookmark(bookmarks, BookmarkPlantCrash) {
		t.Error("expected plant_crash bookmark")
	}
}

func TestBookmarkDetector_CreatureRecovery(t *testing.T) {
	bd := NewBookmarkDetector(10)

	// Creature population drops to critical level
	for i := 0; i < 3; i++ {
		bd.Check(WindowStats{WindowEnd: float64(i * 10), Plants: 100, Creatures: 2})
	}

	// Creatures recover to 5x the minimum
	bookmarks := bd.Check(WindowStats{WindowEnd: 40, Plants: 100, Creatures: 10})
	if !hasBookmark(bookmarks, BookmarkCreatureRecover) {
		t.Error("expected creature_recovery bookmark")
	}
}

func TestBookmarkDetector_StableEcosystem(t *testing.T) {
	bd := NewBookmarkDetector(10)

	triggered := 0
	for i := 0; i < 12; i++ {
		bookmarks := bd.Check(WindowStats{WindowEnd: float64(i * 10), Plants: 100, Creatures: 20})
		if hasBookmark(bookmarks, BookmarkStableEcosystem) {
			triggered++
		}
	}
	if triggered != 1 {
		t.Errorf("stable_ecosystem triggered %d times, want exactly once", triggered)
	}
}
