package loop

import "errors"

var (
	// ErrStopped is returned when a task is posted to a loop that has been stopped.
	ErrStopped = errors.New("loop: stopped")

	// ErrAlreadyRunning is returned when Run is called on a loop that is running or has run.
	ErrAlreadyRunning = errors.New("loop: already running")
)
