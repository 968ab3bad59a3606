package worker

import (
	"time"
)

// Job asks the worker for one retention pass.
type Job struct {
	Reason string // "startup", "schedule", "watch", "reload"
	At     time.Time
}
