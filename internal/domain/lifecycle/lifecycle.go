// Package lifecycle holds shared constants for application start/stop.
package lifecycle

import "time"

// DefaultTimeout bounds graceful shutdown of the HTTP server.
const DefaultTimeout = 10 * time.Second
