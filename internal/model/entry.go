package model

// WorkLogEntry is one logged unit of work, normalized from the uploaded
// document. Entries are created by the parser, mutated in place by the
// scheduler (calculated times) and the reconciler (duplicate markers,
// status selection), and read-only during replay.
type WorkLogEntry struct {
	// Identity
	Project   string `json:"project"`    // key into the configured project mapping
	ProjectID int    `json:"project_id"` // resolved OpenProject project id, 0 until resolved
	Subject   string `json:"subject"`    // trimmed, non-empty; natural key for duplicate detection
	Activity  string `json:"activity"`   // e.g. "Development", "Meeting"

	// Duration and gaps
	DurationHours float64 `json:"duration_hours"`
	BreakHours    float64 `json:"break_hours"`
	BreakMinutes  int     `json:"break_minutes"`

	// Classification
	IsScrum bool `json:"is_scrum"` // fixed-time meeting entry

	// Remote identifiers
	WorkPackageID         int `json:"work_package_id,omitempty"`          // caller-supplied; presence skips creation
	ExistingWorkPackageID int `json:"existing_work_package_id,omitempty"` // set by the reconciler on a duplicate match

	// Scheduling
	EntryDate           string `json:"entry_date"`           // YYYY-MM-DD partition key
	ProvisionalStart    string `json:"provisional_start"`    // HH:MM assigned at parse time
	CalculatedStartTime string `json:"calculated_start_time,omitempty"` // HH:MM, set by the scheduler
	CalculatedEndTime   string `json:"calculated_end_time,omitempty"`   // HH:MM, set by the scheduler
	UserSetStartTime    bool   `json:"user_set_start_time"`  // the first time for this date came from a human

	// Review annotations, applied only to newly created work packages.
	StatusID   int    `json:"status_id,omitempty"`
	StatusName string `json:"status_name,omitempty"`
	Comment    string `json:"comment,omitempty"`
}

// DedupKey is the (project, subject, hours) key used to collapse literal
// repeats within one upload before reconciliation.
func (e *WorkLogEntry) DedupKey() string {
	return dedupKey(e.Project, e.Subject, e.DurationHours)
}

// ValidationIssueType identifies a scheduling validation issue.
type ValidationIssueType string

const (
	// IssueMissingWorkPackageID marks a SCRUM entry without a work
	// package id. This is the only blocking issue: replay must refuse
	// to start while any exist.
	IssueMissingWorkPackageID ValidationIssueType = "missing_work_package_id"

	// IssueTimeOverlap marks a non-SCRUM entry whose computed start
	// precedes the previous non-SCRUM entry's computed end. Advisory.
	IssueTimeOverlap ValidationIssueType = "time_overlap"
)

// ValidationIssue is a non-fatal finding emitted by the scheduler.
type ValidationIssue struct {
	Type    ValidationIssueType `json:"type"`
	Subject string              `json:"subject"`
	Date    string              `json:"date"`
	Message string              `json:"message"`
}

// Blocking reports whether the issue must be resolved before replay.
func (i ValidationIssue) Blocking() bool {
	return i.Type == IssueMissingWorkPackageID
}
