package repository

import (
	"context"

	"github.com/robiparvez/openproject-worklogger/internal/model"
)

// Gateway is the remote work-package / time-entry access interface the
// pipeline depends on. Implementations wrap the OpenProject REST API;
// tests substitute in-memory fakes.
type Gateway interface {
	CurrentUser(ctx context.Context) (model.User, error)
	Projects(ctx context.Context) ([]model.Project, error)
	Statuses(ctx context.Context) ([]model.Status, error)

	// FindWorkPackageBySubject looks for a work package in the project
	// whose subject matches case-insensitively. Returns (nil, nil)
	// when no match exists.
	FindWorkPackageBySubject(ctx context.Context, projectID int, subject string) (*model.WorkPackage, error)

	// CreateWorkPackage re-checks for an existing subject match
	// immediately before creating, and returns the existing package
	// when found.
	CreateWorkPackage(ctx context.Context, opt CreateWorkPackageOptions) (model.WorkPackage, error)

	// FindTimeEntries returns time entries already logged against the
	// work package on the given date.
	FindTimeEntries(ctx context.Context, workPackageID int, date string) ([]model.TimeEntry, error)

	// CreateTimeEntry logs hours against a work package.
	CreateTimeEntry(ctx context.Context, opt CreateTimeEntryOptions) (model.TimeEntry, error)

	// AddTimeToEntry accumulates hours onto an existing time entry for
	// the work package + date, falling back to creating a new entry
	// when none exists.
	AddTimeToEntry(ctx context.Context, opt AddTimeOptions) (model.TimeEntry, error)
}
