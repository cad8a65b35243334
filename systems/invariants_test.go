//go:build !debug

package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/terrarium/components"
)

func TestInvalidEntityDropped(t *testing.T) {
	s := newSim(t, creatureRecord("Grazer", 10, grazer()))
	bad := s.addCreature("Grazer", 50, 50, 10)
	bad.Pos.X = math.NaN()
	good := s.addCreature("Grazer", 100, 100, 10)

	ev := s.tick(0.1)
	if len(ev.Removed) != 1 || ev.Removed[0].ID != bad.ID || ev.Removed[0].Cause != components.CauseInvalid {
		t.Fatalf("removed = %+v, want the NaN creature dropped as invalid", ev.Removed)
	}
	if s.find(good.ID) == nil {
		t.Error("valid creature was dropped")
	}
}
