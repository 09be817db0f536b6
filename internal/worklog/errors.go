package worklog

import "errors"

// Domain-specific errors for the work-log pipeline.
var (
	ErrInvalidDocument   = errors.New("invalid work log document: missing 'logs' array")
	ErrEmptyDocument     = errors.New("no log entries found in 'logs' array")
	ErrNoValidEntries    = errors.New("no valid entries found in the file")
	ErrSessionNotFound   = errors.New("session not found")
	ErrNotAnalyzed       = errors.New("session has not been analyzed")
	ErrBlockingIssues    = errors.New("blocking validation issues must be resolved before replay")
	ErrAwaitingStartTime = errors.New("a start time is required before this phase can run")
	ErrProjectUnmapped   = errors.New("project mapping not found")
	ErrInvalidStartTime  = errors.New("start time must be in HH:MM format")
	ErrEntryMissingDate  = errors.New("entry missing date information")
)
