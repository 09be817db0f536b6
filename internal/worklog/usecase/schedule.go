package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/robiparvez/openproject-worklogger/internal/model"
	"github.com/robiparvez/openproject-worklogger/internal/worklog"
	"github.com/robiparvez/openproject-worklogger/pkg/timefmt"
)

// Schedule computes calculated start/end times for every entry of the
// session. When a date's first non-SCRUM entry has no user-confirmed
// start time the pipeline suspends instead of guessing: the output
// carries a StartTimeRequest and the session parks in
// AwaitingStartTime until SetStartTime resolves it.
func (uc *implUseCase) Schedule(ctx context.Context, sessionID string) (worklog.ScheduleOutput, error) {
	sess := uc.sessions.Get(sessionID)
	if sess == nil {
		return worklog.ScheduleOutput{}, worklog.ErrSessionNotFound
	}

	if req := checkNeedsStartTime(sess); req != nil {
		sess.Phase = model.PhaseAwaitingStartTime
		uc.l.Infof(ctx, "Schedule: session=%s awaiting start time for date=%s", sess.ID, req.Date)
		return worklog.ScheduleOutput{Session: sess, NeedsStartTime: req}, nil
	}

	issues := computeAllTimes(sess)
	sess.Issues = issues
	sess.Phase = model.PhaseScheduled

	uc.l.Infof(ctx, "Schedule: session=%s issues=%d", sess.ID, len(issues))
	return worklog.ScheduleOutput{Session: sess, Issues: issues}, nil
}

// SetStartTime resolves an awaiting-start-time suspension for one date
// and recomputes the schedule.
func (uc *implUseCase) SetStartTime(ctx context.Context, input worklog.SetStartTimeInput) (worklog.ScheduleOutput, error) {
	sess := uc.sessions.Get(input.SessionID)
	if sess == nil {
		return worklog.ScheduleOutput{}, worklog.ErrSessionNotFound
	}
	if !timefmt.Valid(input.StartTime) {
		return worklog.ScheduleOutput{}, worklog.ErrInvalidStartTime
	}

	target := firstNonScrum(sess, input.Date)
	if target == nil {
		return worklog.ScheduleOutput{}, fmt.Errorf("no schedulable entry for date %q: %w", input.Date, worklog.ErrSessionNotFound)
	}

	target.CalculatedStartTime = input.StartTime
	target.UserSetStartTime = true

	uc.l.Infof(ctx, "SetStartTime: session=%s date=%s start=%s", sess.ID, target.EntryDate, input.StartTime)
	return uc.Schedule(ctx, input.SessionID)
}

// firstNonScrum finds the first non-SCRUM entry, optionally constrained
// to one date, in stored upload order.
func firstNonScrum(sess *model.Session, date string) *model.WorkLogEntry {
	for _, e := range sess.Entries {
		if e.IsScrum {
			continue
		}
		if date != "" && e.EntryDate != date {
			continue
		}
		return e
	}
	return nil
}

// checkNeedsStartTime scans dates in ascending order for a first
// non-SCRUM entry without a user-confirmed start time. Finding one
// clears any inherited calculated times for that date's non-SCRUM
// entries — each date starts fresh — and returns the suspension
// request. Returns nil when every date is confirmed.
func checkNeedsStartTime(sess *model.Session) *worklog.StartTimeRequest {
	byDate := sess.EntriesByDate()

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		entries := byDate[date]

		var first *model.WorkLogEntry
		for _, e := range entries {
			if !e.IsScrum {
				first = e
				break
			}
		}
		if first == nil || first.UserSetStartTime {
			continue
		}

		for _, e := range entries {
			if !e.IsScrum {
				e.CalculatedStartTime = ""
				e.CalculatedEndTime = ""
			}
		}

		return &worklog.StartTimeRequest{Date: date, Subject: first.Subject}
	}

	return nil
}

// computeAllTimes runs the per-date scheduling pass over the whole
// session and returns the validation issues found. It is a pure
// function of the entry set plus stored start times: recomputation
// with identical inputs reproduces identical results.
func computeAllTimes(sess *model.Session) []model.ValidationIssue {
	issues := []model.ValidationIssue{}

	byDate := sess.EntriesByDate()
	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		issues = append(issues, computeDateTimes(date, byDate[date])...)
	}

	return issues
}

// computeDateTimes schedules one calendar date. SCRUM entries keep
// their fixed time and are excluded from the ordering of the rest;
// non-SCRUM entries chain start[n] = end[n-1] + break[n] from the
// date's first confirmed start time.
func computeDateTimes(date string, entries []*model.WorkLogEntry) []model.ValidationIssue {
	var issues []model.ValidationIssue

	sorted := sortForScheduling(entries)

	firstNonScrumPending := true
	currentTime := ""

	for i, entry := range sorted {
		if entry.IsScrum {
			if entry.WorkPackageID == 0 {
				issues = append(issues, model.ValidationIssue{
					Type:    model.IssueMissingWorkPackageID,
					Subject: entry.Subject,
					Date:    date,
					Message: fmt.Sprintf("SCRUM entry %q is missing required work_package_id", entry.Subject),
				})
			}
			if entry.CalculatedStartTime == "" {
				entry.CalculatedStartTime = "10:00"
			}
			entry.CalculatedEndTime = timefmt.AddHours(entry.CalculatedStartTime, entry.DurationHours)
			continue
		}

		if firstNonScrumPending {
			if entry.CalculatedStartTime != "" {
				currentTime = entry.CalculatedStartTime
			} else {
				if !entry.UserSetStartTime {
					// Needs user input; leave uncalculated.
					firstNonScrumPending = false
					continue
				}
				currentTime = timefmt.Extract(entry.ProvisionalStart)
				if currentTime == "" {
					currentTime = "09:00"
				}
			}
			firstNonScrumPending = false
		} else if prev := previousNonScrum(sorted, i); prev != nil {
			currentTime = timefmt.AddHours(prev.CalculatedEndTime, entry.BreakHours)
		}

		entry.CalculatedStartTime = currentTime
		entry.CalculatedEndTime = timefmt.AddHours(currentTime, entry.DurationHours)

		if prev := previousNonScrum(sorted, i); prev != nil && prev.CalculatedEndTime != "" {
			if timefmt.Minutes(entry.CalculatedStartTime) < timefmt.Minutes(prev.CalculatedEndTime) {
				issues = append(issues, model.ValidationIssue{
					Type:    model.IssueTimeOverlap,
					Subject: entry.Subject,
					Date:    date,
					Message: fmt.Sprintf("start time %s overlaps with previous task end time %s", entry.CalculatedStartTime, prev.CalculatedEndTime),
				})
			}
		}

		currentTime = entry.CalculatedEndTime
	}

	return issues
}

// sortForScheduling orders one date's entries: SCRUM first, then
// non-SCRUM by known calculated start time, entries with a known time
// before those without, ties preserving upload order.
func sortForScheduling(entries []*model.WorkLogEntry) []*model.WorkLogEntry {
	sorted := make([]*model.WorkLogEntry, len(entries))
	copy(sorted, entries)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]

		if a.IsScrum != b.IsScrum {
			return a.IsScrum
		}

		if a.CalculatedStartTime != "" && b.CalculatedStartTime != "" {
			return timefmt.Minutes(a.CalculatedStartTime) < timefmt.Minutes(b.CalculatedStartTime)
		}
		if a.CalculatedStartTime != "" && b.CalculatedStartTime == "" {
			return true
		}
		return false
	})

	return sorted
}

// previousNonScrum finds the closest earlier non-SCRUM entry in the
// scheduling order.
func previousNonScrum(entries []*model.WorkLogEntry, index int) *model.WorkLogEntry {
	for i := index - 1; i >= 0; i-- {
		if !entries[i].IsScrum {
			return entries[i]
		}
	}
	return nil
}
