//go:build debug

package systems

import (
	"fmt"

	"github.com/pthm-cable/terrarium/components"
)

func invariantViolated(e components.Entity, msg string) {
	panic(fmt.Sprintf("systems: %s %d (%s): %s", e.Kind(), e.EntityID(), e.SpeciesName(), msg))
}
