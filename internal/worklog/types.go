package worklog

import (
	"encoding/json"

	"github.com/robiparvez/openproject-worklogger/internal/model"
)

// ProcessFileInput carries the raw uploaded work-log document.
type ProcessFileInput struct {
	Document json.RawMessage
}

// ProcessFileOutput is the result of parsing an upload into a session.
type ProcessFileOutput struct {
	Session      *model.Session
	DateCount    int
	TotalEntries int
}

/// StartTimeRequest is the scheduler's suspension signal: the named
// date's first non-SCRUM entry has no confirmed start time.
type StartTimeRequest struct {
	Date    string `json:"date"`
	Subject string `json:"subject"`
}

// ScheduleOutput is the result of a scheduling pass.
type ScheduleOutput struct {
	Session *model.Session
	Issues  []model.ValidationIssue

	// NeedsStartTime is non-nil when the pipeline is suspended waiting
	// for a first start time.
	NeedsStartTime *StartTimeRequest
}

// SetStartTimeInput resolves one awaiting-start-time suspension.
type SetStartTimeInput struct {
	SessionID string
	Date      string // YYYY-MM-DD; empty targets the first unset date
	StartTime string // HH:MM
}

// AnalyzeOutput is the reconciler's categorization.
type AnalyzeOutput struct {
	Session  *model.Session
	Analysis *model.Analysis
}

// EntryAnnotation carries the user's review-time choices for one
// to-be-created work package.
type EntryAnnotation struct {
	Comment  string `json:"comment"`
	StatusID int    `json:"status_id"`
}

// ProgressUpdate is the advisory per-entry progress signal emitted
// during replay. It has no effect on control flow.
type ProgressUpdate struct {
	Current int
	Total   int
	Message string
}

// ProgressFunc receives progress updates in entry order.
type ProgressFunc func(ProgressUpdate)

// ReplayInput starts the replay phase for a session.
type ReplayInput struct {
	SessionID string

	// Annotations are keyed by the entry's position in the analysis
	// "new" category.
	Annotations map[int]EntryAnnotation

	// Progress is optional; nil disables progress reporting.
	Progress ProgressFunc
}

// EntryResultType classifies the remote action taken for one entry.
type EntryResultType string

const (
	ResultScrum            EntryResultType = "scrum"
	ResultExisting         EntryResultType = "existing"
	ResultDuplicate        EntryResultType = "duplicate"
	ResultFoundExisting    EntryResultType = "found_existing"
	ResultNew              EntryResultType = "new"
	ResultSkippedDuplicate EntryResultType = "skipped_duplicate_time_entry"
)

// EntryResult is the per-entry replay outcome.
type EntryResult struct {
	Success       bool                `json:"success"`
	Type          EntryResultType     `json:"type,omitempty"`
	Entry         *model.WorkLogEntry `json:"entry"`
	Message       string              `json:"message,omitempty"`
	WorkPackageID int                 `json:"work_package_id,omitempty"`
	Error         string              `json:"error,omitempty"`
}

// ReplayOutput is the session outcome payload: the batch always
// completes and reports partial success rather than aborting.
type ReplayOutput struct {
	Results      []EntryResult `json:"results"`
	CreatedCount int           `json:"created_count"`
	UpdatedCount int           `json:"updated_count"`
	ErrorCount   int           `json:"error_count"`
	TotalEntries int           `json:"total_entries"`
}
