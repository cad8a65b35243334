package events

// Modulator tracks the single active world event.
type Modulator struct {
	tuning  Tuning
	active  *Active
	nextID  uint32
	pending Effect // one-shot effect not yet applied, outlives the active slot
}

// NewModulator creates a modulator with no active event.
func NewModulator(t Tuning) *Modulator {
	return &Modulator{tuning: t}
}

// Tuning returns the effect magnitudes.
func (m *Modulator) Tuning() Tuning { return m.tuning }

// Trigger installs ev at time now. It is a no-op returning false while another
// event is active.
func (m *Modulator) Trigger(ev WorldEvent, now float64) bool {
	if m.active != nil {
		return false
	}
	m.nextID++
	m.active = &Active{WorldEvent: ev, ID: m.nextID, StartTime: now}
	if ev.Effect.OneShot() {
		m.pending = ev.Effect
	}
	return true
}

// Clear force-expires the active event. A triggered one-shot effect that has
// not been taken yet stays pending.
func (m *Modulator) Clear() {
	m.active = nil
}

// Reset clears the active event, any pending one-shot effect and restarts
// id allocation.
func (m *Modulator) Reset() {
	m.Clear()
	m.pending = ""
	m.nextID = 0
}

// Current returns the active event.
func (m *Modulator) Current() (Active, bool) {
	if m.active == nil {
		return Active{}, false
	}
	return *m.active, true
}

// Expire clears the active event if its duration has elapsed at now and
// returns the expired event.
func (m *Modulator) Expire(now float64) (Active, bool) {
	if m.active == nil || !m.active.Expired(now) {
		return Active{}, false
	}
	ev := *m.active
	m.Clear()
	return ev, true
}

// TakeOneShot returns the pending one-shot effect exactly once, even if its
// event was cleared or expired in the meantime.
func (m *Modulator) TakeOneShot() (Effect, bool) {
	if m.pending == "" {
		return "", false
	}
	e := m.pending
	m.pending = ""
	return e, true
}

// Modifiers returns the per-tick adjustments for the active event.
func (m *Modulator) Modifiers() Modifiers {
	mod := Neutral()
	if m.active == nil {
		return mod
	}
	switch m.active.Effect {
	case EffectCreatureSpeedBoost:
		mod.SpeedScale = m.tuning.SpeedMultiplier
	case EffectReproductionBoost:
		mod.ReproScale = m.tuning.ReproductionMultiplier
	case EffectAllCreaturesActive:
		mod.AllActive = true
	case EffectPlantSizePulse:
		mod.SizePulse = true
		mod.PulseAmplitude = m.tuning.PulseAmplitude
		mod.PulseFrequency = m.tuning.PulseFrequency
	}
	return mod
}
