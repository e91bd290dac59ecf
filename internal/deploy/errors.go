package deploy

import "fmt"

// Process exit codes
const (
	ExitOK      = 0
	ExitFailure = 1 // backup, sync or restart failed
	ExitUsage   = 2 // bad arguments or an invalid release; nothing was changed
)

// ExitError carries the process exit status for a failed deploy
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error
func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(err error) *ExitError {
	return &ExitError{Code: ExitUsage, Err: err}
}

func failure(err error) *ExitError {
	return &ExitError{Code: ExitFailure, Err: err}
}
