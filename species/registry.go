package species

import (
	"fmt"
	"sort"

	"github.com/pthm-cable/terrarium/components"
)

// Registry is a read-only lookup of species records by name.
// It is shared by every tick and never mutated after construction.
type Registry struct {
	records map[string]Record
	names   []string // sorted
}

// New builds a registry. It rejects structural problems (duplicate or empty names,
// a behavior variant that disagrees with the kind tag) but not parameter values;
// use Validate for those.
func New(records []Record) (*Registry, error) {
	r := &Registry{records: make(map[string]Record, len(records))}
	for _, rec := range records {
		if rec.Name == "" {
			return nil, fmt.Errorf("species record with empty name")
		}
		if _, dup := r.records[rec.Name]; dup {
			return nil, fmt.Errorf("duplicate species %q", rec.Name)
		}
		if rec.Behavior() == nil {
			return nil, fmt.Errorf("species %q: %s record without matching behavior", rec.Name, rec.Appearance.Kind)
		}
		r.records[rec.Name] = cloneRecord(rec)
		r.names = append(r.names, rec.Name)
	}
	sort.Strings(r.names)
	return r, nil
}

// MustNew is like New but panics on error.
func MustNew(records []Record) *Registry {
	r, err := New(records)
	if err != nil {
		panic(fmt.Sprintf("species: %v", err))
	}
	return r
}

// Lookup returns the record for name.
func (r *Registry) Lookup(name string) (Record, bool) {
	if r == nil {
		return Record{}, false
	}
	rec, ok := r.records[name]
	return rec, ok
}

// Plant returns the plant behavior and appearance for name.
// ok is false when the species is missing or is not a plant.
func (r *Registry) Plant(name string) (*PlantBehavior, Appearance, bool) {
	rec, ok := r.Lookup(name)
	if !ok || rec.Appearance.Kind != components.KindPlant || rec.Plant == nil {
		return nil, Appearance{}, false
	}
	return rec.Plant, rec.Appearance, true
}

// Creature returns the creature behavior and appearance for name.
// ok is false when the species is missing or is not a creature.
func (r *Registry) Creature(name string) (*CreatureBehavior, Appearance, bool) {
	rec, ok := r.Lookup(name)
	if !ok || rec.Appearance.Kind != components.KindCreature || rec.Creature == nil {
		return nil, Appearance{}, false
	}
	return rec.Creature, rec.Appearance, true
}

// Names returns the species names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Records returns copies of all records sorted by name.
func (r *Registry) Records() []Record {
	if r == nil {
		return nil
	}
	out := make([]Record, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, cloneRecord(r.records[name]))
	}
	return out
}

// Len returns the number of species.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.names)
}

func cloneRecord(rec Record) Record {
	if rec.Plant != nil {
		p := *rec.Plant
		rec.Plant = &p
	}
	if rec.Creature != nil {
		c := *rec.Creature
		c.Eats = append([]string{}, rec.Creature.Eats...)
		c.Specials = append([]SpecialAbility(nil), rec.Creature.Specials...)
		rec.Creature = &c
	}
	return rec
}
