package engine

import "errors"

// Engine error sentinels.
var (
	ErrNoInterpreter = errors.New("engine interpreter is not configured")
	ErrNotStarted    = errors.New("engine failed to start")
	ErrNonZeroExit   = errors.New("engine exited with non-zero status")
	ErrTimeout       = errors.New("engine timed out")
)
