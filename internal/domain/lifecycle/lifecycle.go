// Package lifecycle holds shared timing constants for fx-managed components.
package lifecycle

import "time"

// DefaultTimeout bounds graceful startup and shutdown of a managed component.
const DefaultTimeout = 15 * time.Second
