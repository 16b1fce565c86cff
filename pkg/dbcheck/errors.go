package dbcheck

import "errors"

var (
	// ErrCountFailed wraps every failure of a Counter. It aborts the execution.
	ErrCountFailed = errors.New("existence check count failed")

	ErrUnknownCheck   = errors.New("unknown existence check")
	ErrModelNotSet    = errors.New("existence check model not set")
	ErrCounterNotSet  = errors.New("existence check counter not set")

	ErrFailedToConnectToMongo   = errors.New("failed to connect to mongo")
	ErrFailedToParseDBConfig    = errors.New("failed to parse db config")
	ErrFailedToOpenDBConnection = errors.New("failed to open db connection")
	ErrFailedToParseRedisURL    = errors.New("failed to parse redis connection string")
	ErrRedisNotReady            = errors.New("redis did not become ready within the given time period")
	ErrOpenSearchConnection     = errors.New("opensearch connection failed")
	ErrHealthcheckFailed        = errors.New("healthcheck failed")
)
