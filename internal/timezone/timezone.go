// Package timezone resolves the acting user's IANA zone once per session.
package timezone

import (
	"os"
	"strings"
	"time"
)

// Resolve determines the session timezone: the TZ environment variable if
// it names a loadable zone, otherwise the system zone, otherwise the
// configured fallback. The result is held as session state and injected
// into the services so all date math within a session agrees.
func Resolve(fallback string) string {
	if tz := strings.TrimSpace(os.Getenv("TZ")); tz != "" {
		if _, err := time.LoadLocation(tz); err == nil {
			return tz
		}
	}

	// The "Local" pseudo-name carries no IANA identity and cannot be
	// stored alongside a task, so it counts as undetectable.
	if name := time.Now().Location().String(); name != "" && name != "Local" {
		return name
	}

	return fallback
}
