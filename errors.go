package formhandler

import "errors"

// Setup and runtime errors that abort an execution. Per-field validation
// failures are never returned as errors; read them with Handler.Errors.
var (
	ErrDataSourceNotSet  = errors.New("form data source not set")
	ErrRulesNotSet       = errors.New("form rules not set")
	ErrFilesSourceNotSet = errors.New("form files source not set")
	ErrAlreadyExecuted   = errors.New("form handler already executed")
	ErrStorageNotSet     = errors.New("upload storage not set")
	ErrCheckerNotSet     = errors.New("existence checker not set")
	ErrFilterFailed      = errors.New("form filter failed")
	ErrHookFailed        = errors.New("form hook failed")
	ErrStoreFailed       = errors.New("failed to store upload")
)
