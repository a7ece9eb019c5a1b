package enums

import "fmt"

// InteractionType maps to the interaction_type_enum enum in Postgres.
type InteractionType string

const (
	InteractionTypeBoost     InteractionType = "boost"
	InteractionTypeResonance InteractionType = "resonance"
	InteractionTypeAmplify   InteractionType = "amplify"
)

var validInteractionTypes = []InteractionType{
	InteractionTypeBoost,
	InteractionTypeResonance,
	InteractionTypeAmplify,
}

// InteractionTypes returns the canonical set in declaration order.
func InteractionTypes() []InteractionType {
	return validInteractionTypes
}

// IsValid reports whether the value matches the canonical interaction enum.
func (t InteractionType) IsValid() bool {
	for _, candidate := range validInteractionTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

func (t InteractionType) String() string {
	return string(t)
}

// CounterColumn returns the denormalized content column this interaction type
// increments. Callers must only pass validated types.
func (t InteractionType) CounterColumn() string {
	switch t {
	case InteractionTypeBoost:
		return "energy_boosts"
	case InteractionTypeResonance:
		return "resonance"
	case InteractionTypeAmplify:
		return "amplify"
	}
	return ""
}

// ParseInteractionType converts raw input into InteractionType.
func ParseInteractionType(value string) (InteractionType, error) {
	for _, candidate := range validInteractionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid interaction type %q", value)
}
