package api

import (
	"errors"
	"fmt"

	"github.com/jonesrussell/alsahih/infrastructure/circuitbreaker"
	infragin "github.com/jonesrussell/alsahih/infrastructure/gin"
	"github.com/jonesrussell/alsahih/internal/catalog"
)

// BreakerStater reports the upstream circuit state.
type BreakerStater interface {
	BreakerState() circuitbreaker.State
}

// YouTubeCheck reports degraded while the circuit is not closed or when no
// API key is configured. The service keeps answering in both cases, so it
// never reports unhealthy.
func YouTubeCheck(upstream BreakerStater, hasAPIKey bool) infragin.HealthChecker {
	return func() infragin.CheckResult {
		if !hasAPIKey {
			return infragin.CheckResult{Status: infragin.HealthStatusDegraded, Message: "API key not configured"}
		}
		state := upstream.BreakerState()
		if state != circuitbreaker.StateClosed {
			return infragin.CheckResult{
				Status:  infragin.HealthStatusDegraded,
				Message: "circuit " + state.String(),
			}
		}
		return infragin.CheckResult{Status: infragin.HealthStatusHealthy, Message: "circuit closed"}
	}
}

// ContentIndexCheck reports whether the built content index is present and
// parsable.
func ContentIndexCheck(indexPath string) infragin.HealthChecker {
	return func() infragin.CheckResult {
		entries, err := catalog.LoadIndex(indexPath)
		switch {
		case errors.Is(err, catalog.ErrIndexMissing):
			return infragin.CheckResult{Status: infragin.HealthStatusDegraded, Message: "index not found"}
		case err != nil:
			return infragin.CheckResult{Status: infragin.HealthStatusDegraded, Message: "index malformed"}
		default:
			return infragin.CheckResult{
				Status:  infragin.HealthStatusHealthy,
				Message: fmt.Sprintf("%d entries", len(entries)),
			}
		}
	}
}
