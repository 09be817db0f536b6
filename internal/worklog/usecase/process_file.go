package usecase

import (
	"context"
	"sort"

	"github.com/robiparvez/openproject-worklogger/internal/model"
	"github.com/robiparvez/openproject-worklogger/internal/worklog"
)

// ProcessFile parses a raw work-log document into a new session.
// Parse failures are fatal for the whole upload; per-entry validation
// failures were already skipped inside the parser.
func (uc *implUseCase) ProcessFile(ctx context.Context, input worklog.ProcessFileInput) (worklog.ProcessFileOutput, error) {
	byDate, err := uc.parser.Parse(ctx, input.Document)
	if err != nil {
		return worklog.ProcessFileOutput{}, err
	}
	if len(byDate) == 0 {
		return worklog.ProcessFileOutput{}, worklog.ErrNoValidEntries
	}

	// Flatten in ascending date order so stored order is deterministic;
	// upload order is preserved within each date.
	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	var entries []*model.WorkLogEntry
	for _, date := range dates {
		entries = append(entries, byDate[date]...)
	}

	sess := uc.sessions.Create(entries, len(byDate))
	uc.l.Infof(ctx, "ProcessFile: session=%s dates=%d entries=%d", sess.ID, len(byDate), len(entries))

	return worklog.ProcessFileOutput{
		Session:      sess,
		DateCount:    len(byDate),
		TotalEntries: len(entries),
	}, nil
}

// Session returns an existing session by id.
func (uc *implUseCase) Session(ctx context.Context, sessionID string) (*model.Session, error) {
	sess := uc.sessions.Get(sessionID)
	if sess == nil {
		return nil, worklog.ErrSessionNotFound
	}
	return sess, nil
}
