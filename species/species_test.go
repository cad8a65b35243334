package species

import (
	"strings"
	"testing"

	"github.com/pthm-cable/terrarium/components"
)

func testRecords() []Record {
	return []Record{
		{
			Name:       "GreenDot",
			Appearance: Appearance{Kind: components.KindPlant, Size: 10, Color: "#879464", Shape: "Shape1"},
			Plant:      &PlantBehavior{Growth: 15, Range: 30, Density: 5, DayActive: true, Lifespan: 120},
		},
		{
			Name:       "Fafa",
			Appearance: Appearance{Kind: components.KindCreature, Size: 36, Color: "#FFFFFF", Shape: "Shape2"},
			Creature: &CreatureBehavior{
				EatingCooldown: 10, StarvationTime: 30, ReproductionCooldown: 60, MaturationTime: 30,
				MinOffspring: 1, MaxOffspring: 3, Speed: 20, DayActive: true,
				Eats: []string{"GreenDot"}, Lifespan: 1800, Specials: DefaultSpecials(),
			},
		},
	}
}

func TestNewRegistry(t *testing.T) {
	reg, err := New(testRecords())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := reg.Names(); len(got) != 2 || got[0] != "Fafa" || got[1] != "GreenDot" {
		t.Errorf("Names() = %v, want sorted [Fafa GreenDot]", got)
	}
	if _, _, ok := reg.Plant("GreenDot"); !ok {
		t.Error("Plant(GreenDot) not found")
	}
	if _, _, ok := reg.Creature("GreenDot"); ok {
		t.Error("Creature(GreenDot) should not resolve a plant")
	}
	c, app, ok := reg.Creature("Fafa")
	if !ok || app.Size != 36 || !c.EatsSpecies("GreenDot") {
		t.Errorf("Creature(Fafa) = %+v, %+v, %v", c, app, ok)
	}
	if _, ok := reg.Lookup("Nope"); ok {
		t.Error("Lookup of missing species should fail")
	}
}

func TestNewRegistryRejects(t *testing.T) {
	tests := []struct {
		name    string
		records func() []Record
		want    string
	}{
		{"duplicate", func() []Record {
			r := testRecords()
			return append(r, r[0])
		}, "duplicate"},
		{"empty name", func() []Record {
			r := testRecords()
			r[0].Name = ""
			return r
		}, "empty name"},
		{"tag mismatch", func() []Record {
			r := testRecords()
			r[0].Appearance.Kind = components.KindCreature
			return r
		}, "without matching behavior"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.records())
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("New() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestRegistryCopiesInput(t *testing.T) {
	recs := testRecords()
	reg := MustNew(recs)
	recs[1].Creature.Speed = 99
	recs[1].Creature.Eats[0] = "X"

	c, _, _ := reg.Creature("Fafa")
	if c.Speed != 20 || c.Eats[0] != "GreenDot" {
		t.Errorf("registry shares storage with caller: %+v", c)
	}
}

func TestBehaviorDispatch(t *testing.T) {
	recs := testRecords()
	if _, ok := recs[0].Behavior().(*PlantBehavior); !ok {
		t.Errorf("plant record Behavior() = %T", recs[0].Behavior())
	}
	if _, ok := recs[1].Behavior().(*CreatureBehavior); !ok {
		t.Errorf("creature record Behavior() = %T", recs[1].Behavior())
	}
	b := recs[1].Behavior()
	if !b.Active(true) || b.Active(false) {
		t.Error("day-only creature activity flags wrong")
	}
	if b.MaxAge() != 1800 {
		t.Errorf("MaxAge() = %v", b.MaxAge())
	}
}
