package feed

import "fmt"

// DurationPolicy decides which resolved videos the feed may include.
type DurationPolicy string

const (
	// DurationAny keeps every video regardless of length.
	DurationAny DurationPolicy = "any"
	// DurationShorts keeps only videos strictly between 0 and 60 seconds.
	DurationShorts DurationPolicy = "shorts"
)

// ShortsMaxSeconds is the exclusive upper bound for DurationShorts.
const ShortsMaxSeconds = 60

// Allows reports whether a video of durationSec seconds passes the policy.
// The empty policy behaves as DurationAny.
func (p DurationPolicy) Allows(durationSec int) bool {
	switch p {
	case DurationShorts:
		return durationSec > 0 && durationSec < ShortsMaxSeconds
	default:
		return true
	}
}

// ParseDurationPolicy validates a configured policy name; "" maps to DurationAny.
func ParseDurationPolicy(s string) (DurationPolicy, error) {
	switch DurationPolicy(s) {
	case "", DurationAny:
		return DurationAny, nil
	case DurationShorts:
		return DurationShorts, nil
	default:
		return "", fmt.Errorf("unknown duration policy %q", s)
	}
}

// FailurePolicy decides what the endpoint answers when the upstream fails.
type FailurePolicy string

const (
	// FailureFail surfaces upstream failures as an error response.
	FailureFail FailurePolicy = "fail"
	// FailureEmpty degrades to an empty, uncacheable feed.
	FailureEmpty FailurePolicy = "empty"
)

// ParseFailurePolicy validates a configured policy name; "" maps to FailureFail.
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch FailurePolicy(s) {
	case "", FailureFail:
		return FailureFail, nil
	case FailureEmpty:
		return FailureEmpty, nil
	default:
		return "", fmt.Errorf("unknown failure policy %q", s)
	}
}
