package enums

import "fmt"

// SubscriptionTier maps to the subscription_tier_enum enum in Postgres.
type SubscriptionTier string

const (
	SubscriptionTierBasic   SubscriptionTier = "basic"
	SubscriptionTierPremium SubscriptionTier = "premium"
	SubscriptionTierPlasma  SubscriptionTier = "plasma"
)

var validSubscriptionTiers = []SubscriptionTier{
	SubscriptionTierBasic,
	SubscriptionTierPremium,
	SubscriptionTierPlasma,
}

// IsValid reports whether the value matches the canonical tier enum.
func (t SubscriptionTier) IsValid() bool {
	for _, candidate := range validSubscriptionTiers {
		if candidate == t {
			return true
		}
	}
	return false
}

func (t SubscriptionTier) String() string {
	return string(t)
}

// ParseSubscriptionTier converts raw input into SubscriptionTier.
func ParseSubscriptionTier(value string) (SubscriptionTier, error) {
	for _, candidate := range validSubscriptionTiers {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid subscription tier %q", value)
}
