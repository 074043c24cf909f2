package availability

import (
	"fmt"
	"strings"
)

// Policy decides when a detected status triggers a notification.
type Policy string

const (
	// PolicyAlways notifies on every run that observes Limited.
	PolicyAlways Policy = "always"
	// PolicyOnChange notifies when Limited is observed and the previous
	// run did not observe Limited (edge-triggered).
	PolicyOnChange Policy = "on-change"
	// PolicyReopened notifies only on a Full → Available or Full → Limited
	// transition.
	PolicyReopened Policy = "reopened"
)

// ParsePolicy validates a policy name from configuration.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyAlways:
		return PolicyAlways, nil
	case PolicyOnChange:
		return PolicyOnChange, nil
	case PolicyReopened:
		return PolicyReopened, nil
	default:
		return "", fmt.Errorf("unknown notify policy: %q (must be always, on-change, or reopened)", s)
	}
}

// ShouldNotify applies the trigger policy to a previous/current status pair.
// Unknown never triggers under any policy.
func ShouldNotify(previous, current Status, policy Policy) bool {
	switch policy {
	case PolicyAlways:
		return current == Limited
	case PolicyOnChange:
		return current == Limited && previous != Limited
	case PolicyReopened:
		return previous == Full && (current == Available || current == Limited)
	default:
		return false
	}
}
