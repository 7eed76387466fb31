package app

import "time"

// TickMsg triggers a frame update for animation.
type TickMsg time.Time

// StaleMsg triggers the stale sample check.
type StaleMsg time.Time
