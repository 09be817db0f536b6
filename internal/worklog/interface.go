package worklog

import (
	"context"

	"github.com/robiparvez/openproject-worklogger/internal/model"
)

// UseCase defines the business logic interface for the work-log
// pipeline. Phases run sequentially per session: ProcessFile →
// Schedule (looping through SetStartTime while a date lacks a confirmed
// first time) → Analyze → Replay.
type UseCase interface {
	// ProcessFile parses a raw work-log document into a new session.
	ProcessFile(ctx context.Context, input ProcessFileInput) (ProcessFileOutput, error)

	// Session returns an existing session by id.
	Session(ctx context.Context, sessionID string) (*model.Session, error)

	// Schedule computes calculated start/end times for every entry and
	// reports validation issues, or a suspension request when a date's
	// first start time is still unknown.
	Schedule(ctx context.Context, sessionID string) (ScheduleOutput, error)

	// SetStartTime resolves an awaiting-start-time suspension for one
	// date and recomputes the schedule.
	SetStartTime(ctx context.Context, input SetStartTimeInput) (ScheduleOutput, error)

	// Analyze reconciles entries against remote state into
	// {scrum, existing, new, duplicates}.
	Analyze(ctx context.Context, sessionID string) (AnalyzeOutput, error)

	// Replay performs the minimal remote mutation for each entry,
	// reporting per-entry outcomes without aborting the batch.
	Replay(ctx context.Context, input ReplayInput) (ReplayOutput, error)

	// Remote lookups for the review surface.
	FetchStatuses(ctx context.Context) ([]model.Status, error)
	FetchProjects(ctx context.Context) ([]model.Project, error)
	TestConnection(ctx context.Context) (model.User, error)
}
