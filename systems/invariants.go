package systems

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/terrarium/components"
)

// checkInvariants drops an entity whose state can only come from an engine bug.
// Debug builds panic instead (see assert_debug.go).
func (p *Pass) checkInvariants(e components.Entity) {
	msg := invariantProblem(e)
	if msg == "" {
		return
	}
	invariantViolated(e, msg)
	slog.Error("invariant_violation",
		"id", e.EntityID(),
		"kind", e.Kind().String(),
		"species", e.SpeciesName(),
		"problem", msg,
	)
	p.remove(e, components.CauseInvalid)
}

func invariantProblem(e components.Entity) string {
	pos := e.Position()
	if !isFinite(pos.X) || !isFinite(pos.Y) {
		return fmt.Sprintf("non-finite position (%v, %v)", pos.X, pos.Y)
	}
	if size := e.BodySize(); !(size > 0) {
		return fmt.Sprintf("non-positive size %v", size)
	}
	if c, ok := e.(*components.Creature); ok && (!isFinite(c.Vel.X) || !isFinite(c.Vel.Y)) {
		return fmt.Sprintf("non-finite velocity (%v, %v)", c.Vel.X, c.Vel.Y)
	}
	return ""
}

// dropUnknown removes an entity whose species has no registry entry.
func (p *Pass) dropUnknown(e components.Entity) {
	slog.Warn("unknown_species",
		"id", e.EntityID(),
		"kind", e.Kind().String(),
		"species", e.SpeciesName(),
	)
	p.remove(e, components.CauseUnknownSpecies)
}
