package usecase

import (
	"context"
	"fmt"

	"github.com/robiparvez/openproject-worklogger/internal/model"
	"github.com/robiparvez/openproject-worklogger/internal/worklog"
)

// Analyze reconciles the session's entries against remote state,
// partitioning them into {scrum, existing, new, duplicates}. Entries
// are first collapsed on the (project, subject, hours) key so literal
// repeats in the upload are not double-submitted. A remote lookup
// failure degrades the entry to "new"; an unresolved project mapping is
// a hard failure.
func (uc *implUseCase) Analyze(ctx context.Context, sessionID string) (worklog.AnalyzeOutput, error) {
	sess := uc.sessions.Get(sessionID)
	if sess == nil {
		return worklog.AnalyzeOutput{}, worklog.ErrSessionNotFound
	}

	if req := checkNeedsStartTime(sess); req != nil {
		sess.Phase = model.PhaseAwaitingStartTime
		return worklog.AnalyzeOutput{}, worklog.ErrAwaitingStartTime
	}

	analysis := &model.Analysis{
		Scrum:      []*model.WorkLogEntry{},
		Existing:   []*model.WorkLogEntry{},
		New:        []*model.WorkLogEntry{},
		Duplicates: []*model.WorkLogEntry{},
	}

	for _, entry := range dedupeEntries(sess.Entries) {
		switch {
		case entry.IsScrum && entry.WorkPackageID > 0:
			analysis.Scrum = append(analysis.Scrum, entry)

		case entry.WorkPackageID > 0:
			analysis.Existing = append(analysis.Existing, entry)

		default:
			projectID, ok := uc.projectMappings[entry.Project]
			if !ok || projectID == 0 {
				return worklog.AnalyzeOutput{}, fmt.Errorf("%w: %s", worklog.ErrProjectUnmapped, entry.Project)
			}
			entry.ProjectID = projectID

			existing, err := uc.gateway.FindWorkPackageBySubject(ctx, projectID, entry.Subject)
			if err != nil {
				uc.l.Warnf(ctx, "Analyze: subject lookup failed for %q, treating as new: %v", entry.Subject, err)
				analysis.New = append(analysis.New, entry)
				continue
			}

			if existing != nil {
				entry.ExistingWorkPackageID = existing.ID
				analysis.Duplicates = append(analysis.Duplicates, entry)
			} else {
				analysis.New = append(analysis.New, entry)
			}
		}
	}

	sess.Analysis = analysis
	sess.Phase = model.PhaseAnalyzed

	uc.l.Infof(ctx, "Analyze: session=%s scrum=%d existing=%d new=%d duplicates=%d",
		sess.ID, len(analysis.Scrum), len(analysis.Existing), len(analysis.New), len(analysis.Duplicates))

	return worklog.AnalyzeOutput{Session: sess, Analysis: analysis}, nil
}

// dedupeEntries collapses literal repeats on the (project, subject,
// hours) key, keeping the first occurrence in stored order.
func dedupeEntries(entries []*model.WorkLogEntry) []*model.WorkLogEntry {
	seen := make(map[string]bool, len(entries))
	unique := make([]*model.WorkLogEntry, 0, len(entries))

	for _, e := range entries {
		key := e.DedupKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, e)
	}

	return unique
}
