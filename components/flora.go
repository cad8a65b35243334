package components

// Plant is a stationary organism that spreads offspring around itself.
type Plant struct {
	ID      uint32
	Species string
	Pos     Position
	Size    float64

	// DisplaySize is Size unless a world event pulses it. Never used by lifecycle logic.
	DisplaySize float64

	BirthTime  float64 // world seconds
	LastGrowth float64 // world seconds
}

func (p *Plant) EntityID() uint32    { return p.ID }
func (p *Plant) Kind() Kind          { return KindPlant }
func (p *Plant) SpeciesName() string { return p.Species }
func (p *Plant) Position() Position  { return p.Pos }
func (p *Plant) BodySize() float64   { return p.Size }

// Clone returns a copy of the plant.
func (p *Plant) Clone() Entity {
	c := *p
	return &c
}

// Age returns seconds since birth at world time now.
func (p *Plant) Age(now float64) float64 {
	return now - p.BirthTime
}
