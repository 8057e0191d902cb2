package models

import "time"

// Query outcome constants
const (
	OutcomeOK         = "ok"
	OutcomeFailed     = "failed"      // engine exited non-zero
	OutcomeNotStarted = "not_started" // engine could not be spawned
	OutcomeTimeout    = "timeout"
	OutcomeCanceled   = "canceled"
	OutcomeRejected   = "rejected" // query refused before dispatch
)

// EngineStatus is the last readiness check of the external query engine.
type EngineStatus struct {
	Ready     bool      `json:"ready"`
	Problems  []string  `json:"problems,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}
