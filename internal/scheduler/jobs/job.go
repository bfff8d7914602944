package jobs

import (
	"context"
	"time"
)

// MinimumJobInterval is the shortest interval a job is ticked at.
const MinimumJobInterval = 5 * time.Second

// Job is a unit of background work run by the scheduler every GetInterval. GetName identifies the
// job in logs and must be unique, since a job is never queued twice under the same name.
type Job interface {
	Execute(ctx context.Context) error
	GetInterval() time.Duration
	GetName() string
}
