package components

import "fmt"

// String returns the display name for a Kind.
func (k Kind) String() string {
	switch k {
	case KindPlant:
		return "plant"
	case KindCreature:
		return "creature"
	default:
		return "unknown"
	}
}

// String returns the display name for a Cause.
func (c Cause) String() string {
	names := CauseNames()
	if int(c) < len(names) {
		return names[c]
	}
	return "unknown"
}

// CauseNames returns the display names for all causes.
// The order matches the Cause constants.
func CauseNames() []string {
	return []string{
		"lifespan",
		"starvation",
		"eaten",
		"orphaned",
		"event-cull",
		"decayed-corpse",
		"toxic",
		"unknown-species",
		"invalid",
	}
}

// CauseCount returns the number of causes.
func CauseCount() int {
	return len(CauseNames())
}

// MarshalText encodes a Kind by name for YAML and JSON records.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a Kind from its name.
func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "plant":
		*k = KindPlant
	case "creature":
		*k = KindCreature
	default:
		return fmt.Errorf("unknown kind %q", text)
	}
	return nil
}
