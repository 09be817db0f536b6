package repository

// CreateWorkPackageOptions holds the parameters for creating a work
// package.
type CreateWorkPackageOptions struct {
	ProjectID   int
	Subject     string
	Activity    string // activity category, recorded for type selection
	Description string
	StatusID    int // 0 means the configured default status
}

// CreateTimeEntryOptions holds the parameters for logging time.
type CreateTimeEntryOptions struct {
	WorkPackageID int
	Date          string // YYYY-MM-DD
	StartTime     string // HH:MM; when set, a 12-hour window prefixes the comment
	Hours         float64
	Activity      string // activity name, mapped to an activity id
	Comment       string
}

// AddTimeOptions holds the parameters for accumulating hours onto an
// existing entry.
type AddTimeOptions struct {
	WorkPackageID   int
	Date            string
	AdditionalHours float64
	Activity        string
	Comment         string
}
