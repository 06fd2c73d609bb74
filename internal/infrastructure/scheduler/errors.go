package scheduler

import "errors"

// ErrSchedulerNotRunning is returned when an immediate run is triggered on a
// scheduler that has not been started
var ErrSchedulerNotRunning = errors.New("scheduler is not running")
