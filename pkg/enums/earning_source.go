package enums

import "fmt"

// EarningSource maps to the earning_source_enum enum in Postgres.
type EarningSource string

const (
	EarningSourceBoosts        EarningSource = "boosts"
	EarningSourceSubscriptions EarningSource = "subscriptions"
	EarningSourceStore         EarningSource = "store"
	EarningSourceTips          EarningSource = "tips"
)

var validEarningSources = []EarningSource{
	EarningSourceBoosts,
	EarningSourceSubscriptions,
	EarningSourceStore,
	EarningSourceTips,
}

// IsValid reports whether the value matches the canonical earning source enum.
func (s EarningSource) IsValid() bool {
	for _, candidate := range validEarningSources {
		if candidate == s {
			return true
		}
	}
	return false
}

func (s EarningSource) String() string {
	return string(s)
}

// ParseEarningSource converts raw input into EarningSource.
func ParseEarningSource(value string) (EarningSource, error) {
	for _, candidate := range validEarningSources {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid earning source %q", value)
}
