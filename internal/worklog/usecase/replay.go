package usecase

import (
	"context"
	"fmt"

	"github.com/robiparvez/openproject-worklogger/internal/model"
	"github.com/robiparvez/openproject-worklogger/internal/worklog"
	"github.com/robiparvez/openproject-worklogger/internal/worklog/repository"
)

// Replay walks the finalized entry set in stored order and performs the
// minimal remote mutation for each entry. Failures are isolated per
// entry; the batch always runs to completion and reports partial
// success. Replay refuses to start while blocking validation issues
// remain.
func (uc *implUseCase) Replay(ctx context.Context, input worklog.ReplayInput) (worklog.ReplayOutput, error) {
	sess := uc.sessions.Get(input.SessionID)
	if sess == nil {
		return worklog.ReplayOutput{}, worklog.ErrSessionNotFound
	}
	if sess.Analysis == nil {
		return worklog.ReplayOutput{}, worklog.ErrNotAnalyzed
	}
	if sess.HasBlockingIssues() {
		return worklog.ReplayOutput{}, worklog.ErrBlockingIssues
	}

	sess.Phase = model.PhaseReplaying

	total := len(sess.Entries)
	out := worklog.ReplayOutput{
		Results:      make([]worklog.EntryResult, 0, total),
		TotalEntries: total,
	}

	for i, entry := range sess.Entries {
		if input.Progress != nil {
			input.Progress(worklog.ProgressUpdate{
				Current: i + 1,
				Total:   total,
				Message: fmt.Sprintf("Processing: %s - %s", entry.Project, entry.Subject),
			})
		}

		result, err := uc.processEntry(ctx, sess, entry, input.Annotations)
		if err != nil {
			uc.l.Errorf(ctx, "Replay: entry %q failed: %v", entry.Subject, err)
			out.Results = append(out.Results, worklog.EntryResult{
				Success: false,
				Entry:   entry,
				Error:   err.Error(),
			})
			out.ErrorCount++
			continue
		}

		out.Results = append(out.Results, result)
		if result.Type == worklog.ResultNew {
			out.CreatedCount++
		} else {
			out.UpdatedCount++
		}
	}

	sess.Phase = model.PhaseDone
	uc.l.Infof(ctx, "Replay: session=%s created=%d updated=%d errors=%d total=%d",
		sess.ID, out.CreatedCount, out.UpdatedCount, out.ErrorCount, total)

	return out, nil
}

// processEntry performs one of four remote action paths, in priority
// order: SCRUM with known id, reconciled duplicate, caller-supplied id,
// resolve-or-create.
func (uc *implUseCase) processEntry(ctx context.Context, sess *model.Session, entry *model.WorkLogEntry, annotations map[int]worklog.EntryAnnotation) (worklog.EntryResult, error) {
	if entry.EntryDate == "" {
		return worklog.EntryResult{}, fmt.Errorf("%w: %s", worklog.ErrEntryMissingDate, entry.Subject)
	}

	annotation := uc.applyAnnotation(ctx, sess, entry, annotations)
	comment := fmt.Sprintf("[%s] %s", entry.Project, entry.Subject)

	switch {
	case entry.IsScrum && entry.WorkPackageID > 0:
		return uc.logTime(ctx, entry, entry.WorkPackageID, comment, worklog.ResultScrum,
			fmt.Sprintf("SCRUM: %s - %s (%gh)", entry.Project, entry.Subject, entry.DurationHours))

	case entry.ExistingWorkPackageID > 0:
		return uc.logTime(ctx, entry, entry.ExistingWorkPackageID, comment, worklog.ResultExisting,
			fmt.Sprintf("Existing WP: %s - %s (%gh)", entry.Project, entry.Subject, entry.DurationHours))

	case entry.WorkPackageID > 0:
		return uc.logTime(ctx, entry, entry.WorkPackageID, comment, worklog.ResultDuplicate,
			fmt.Sprintf("Added time to duplicate: %s - %s (+%gh)", entry.Project, entry.Subject, entry.DurationHours))

	default:
		return uc.resolveOrCreate(ctx, entry, annotation, comment)
	}
}

// resolveOrCreate re-checks for an existing work package by subject
// immediately before creating one, then logs time against whichever id
// resulted.
func (uc *implUseCase) resolveOrCreate(ctx context.Context, entry *model.WorkLogEntry, annotation worklog.EntryAnnotation, comment string) (worklog.EntryResult, error) {
	projectID, ok := uc.projectMappings[entry.Project]
	if !ok || projectID == 0 {
		return worklog.EntryResult{}, fmt.Errorf("%w: %s", worklog.ErrProjectUnmapped, entry.Project)
	}

	existing, err := uc.gateway.FindWorkPackageBySubject(ctx, projectID, entry.Subject)
	if err != nil {
		uc.l.Warnf(ctx, "Replay: pre-create lookup failed for %q: %v", entry.Subject, err)
	}
	if existing != nil {
		return uc.logTime(ctx, entry, existing.ID, comment, worklog.ResultFoundExisting,
			fmt.Sprintf("Found existing WP: %s - %s (%gh)", entry.Project, entry.Subject, entry.DurationHours))
	}

	description := annotation.Comment
	if description == "" {
		description = GenerateComment(entry.Subject, entry.Activity, entry.DurationHours)
	}

	wp, err := uc.gateway.CreateWorkPackage(ctx, repository.CreateWorkPackageOptions{
		ProjectID:   projectID,
		Subject:     entry.Subject,
		Activity:    entry.Activity,
		Description: description,
		StatusID:    entry.StatusID,
	})
	if err != nil {
		return worklog.EntryResult{}, err
	}

	result, err := uc.logTime(ctx, entry, wp.ID, comment, worklog.ResultNew, "")
	if err != nil {
		return worklog.EntryResult{}, err
	}

	statusText := ""
	if entry.StatusName != "" {
		statusText = fmt.Sprintf(", Status: %s", entry.StatusName)
	}
	result.Type = worklog.ResultNew
	result.WorkPackageID = wp.ID
	result.Message = fmt.Sprintf("New WP created: %s - %s (ID: %d, %gh%s)",
		entry.Project, entry.Subject, wp.ID, entry.DurationHours, statusText)
	return result, nil
}

// logTime records the entry's hours against a work package, skipping
// creation when a time entry already exists for the same work package
// and date. The skip is recorded as a success: replaying the same
// upload twice creates nothing the second time.
func (uc *implUseCase) logTime(ctx context.Context, entry *model.WorkLogEntry, workPackageID int, comment string, resultType worklog.EntryResultType, message string) (worklog.EntryResult, error) {
	existing, err := uc.gateway.FindTimeEntries(ctx, workPackageID, entry.EntryDate)
	if err != nil {
		uc.l.Warnf(ctx, "Replay: time entry check failed for work package %d: %v", workPackageID, err)
	}
	if len(existing) > 0 {
		return worklog.EntryResult{
			Success:       true,
			Type:          worklog.ResultSkippedDuplicate,
			Entry:         entry,
			WorkPackageID: workPackageID,
			Message:       fmt.Sprintf("Time already logged for %s on %s, skipped", entry.Subject, entry.EntryDate),
		}, nil
	}

	startTime := entry.CalculatedStartTime
	if startTime == "" {
		startTime = entry.ProvisionalStart
	}

	if _, err := uc.gateway.CreateTimeEntry(ctx, repository.CreateTimeEntryOptions{
		WorkPackageID: workPackageID,
		Date:          entry.EntryDate,
		StartTime:     startTime,
		Hours:         entry.DurationHours,
		Activity:      entry.Activity,
		Comment:       comment,
	}); err != nil {
		return worklog.EntryResult{}, err
	}

	return worklog.EntryResult{
		Success:       true,
		Type:          resultType,
		Entry:         entry,
		WorkPackageID: workPackageID,
		Message:       message,
	}, nil
}

// applyAnnotation transfers the user's review-time choices (comment,
// workflow status) onto the entry when it is one of the analysis "new"
// entries.
func (uc *implUseCase) applyAnnotation(ctx context.Context, sess *model.Session, entry *model.WorkLogEntry, annotations map[int]worklog.EntryAnnotation) worklog.EntryAnnotation {
	if sess.Analysis == nil || len(annotations) == 0 {
		return worklog.EntryAnnotation{}
	}

	index := -1
	for i, candidate := range sess.Analysis.New {
		if candidate.Project == entry.Project && candidate.Subject == entry.Subject {
			index = i
			break
		}
	}
	if index < 0 {
		return worklog.EntryAnnotation{}
	}

	annotation, ok := annotations[index]
	if !ok {
		return worklog.EntryAnnotation{}
	}

	if annotation.StatusID > 0 {
		entry.StatusID = annotation.StatusID
		entry.StatusName = uc.statusName(ctx, annotation.StatusID)
	}
	return annotation
}

// statusName resolves a status id against the cached remote status
// list; unknown ids keep replay going with a placeholder.
func (uc *implUseCase) statusName(ctx context.Context, statusID int) string {
	if len(uc.statusData) == 0 {
		statuses, err := uc.gateway.Statuses(ctx)
		if err != nil {
			uc.l.Warnf(ctx, "Replay: could not fetch statuses: %v", err)
			return "Unknown Status"
		}
		uc.statusData = statuses
	}

	for _, s := range uc.statusData {
		if s.ID == statusID {
			return s.Name
		}
	}
	return "Unknown Status"
}
