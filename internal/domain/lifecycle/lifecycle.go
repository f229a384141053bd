// Package lifecycle holds shared constants for component start/stop handling.
package lifecycle

import "time"

// DefaultTimeout bounds lifecycle operations such as server shutdown and
// database pings during startup.
const DefaultTimeout = 30 * time.Second
