package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/robiparvez/openproject-worklogger/internal/model"
	"github.com/robiparvez/openproject-worklogger/internal/worklog"
)

func confirmedEntry(subject string, hours, breakHours float64) *model.WorkLogEntry {
	return &model.WorkLogEntry{
		Project:       "INTERNAL",
		Subject:       subject,
		Activity:      "Development",
		DurationHours: hours,
		BreakHours:    breakHours,
		EntryDate:     "2025-09-07",
	}
}

func scrumEntry(workPackageID int) *model.WorkLogEntry {
	return &model.WorkLogEntry{
		Project:       "INTERNAL",
		Subject:       "Daily scrum",
		Activity:      "Meeting",
		DurationHours: 0.5,
		IsScrum:       true,
		WorkPackageID: workPackageID,
		EntryDate:     "2025-09-07",
	}
}

func TestSchedule_SuspendsForStartTime(t *testing.T) {
	ctx := context.Background()
	uc, sessions := newFixture(&mockGateway{})

	sess := seedSession(sessions, []*model.WorkLogEntry{
		scrumEntry(99),
		confirmedEntry("Fix login bug", 2, 0),
	})

	out, err := uc.Schedule(ctx, sess.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.NeedsStartTime == nil {
		t.Fatal("expected a start time request")
	}
	if out.NeedsStartTime.Date != "2025-09-07" {
		t.Errorf("request date = %s", out.NeedsStartTime.Date)
	}
	if out.NeedsStartTime.Subject != "Fix login bug" {
		t.Errorf("request subject = %s", out.NeedsStartTime.Subject)
	}
	if sess.Phase != model.PhaseAwaitingStartTime {
		t.Errorf("phase = %s, want %s", sess.Phase, model.PhaseAwaitingStartTime)
	}
}

func TestSchedule_ComputesChainedTimes(t *testing.T) {
	ctx := context.Background()
	uc, sessions := newFixture(&mockGateway{})

	first := confirmedEntry("Fix login bug", 2, 0)
	second := confirmedEntry("Update API docs", 1, 0.5)
	sess := seedSession(sessions, []*model.WorkLogEntry{
		scrumEntry(99),
		first,
		second,
	})

	out, err := uc.SetStartTime(ctx, worklog.SetStartTimeInput{
		SessionID: sess.ID,
		StartTime: "09:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.NeedsStartTime != nil {
		t.Fatalf("unexpected suspension: %+v", out.NeedsStartTime)
	}
	if len(out.Issues) != 0 {
		t.Fatalf("expected no issues, got %+v", out.Issues)
	}

	scrum := sess.Entries[0]
	if scrum.CalculatedStartTime != "10:00" || scrum.CalculatedEndTime != "10:30" {
		t.Errorf("scrum window = %s-%s, want 10:00-10:30", scrum.CalculatedStartTime, scrum.CalculatedEndTime)
	}
	if first.CalculatedStartTime != "09:00" || first.CalculatedEndTime != "11:00" {
		t.Errorf("first window = %s-%s, want 09:00-11:00", first.CalculatedStartTime, first.CalculatedEndTime)
	}
	// Chains off the previous non-scrum end plus its 30-minute break;
	// the 10:00 scrum does not shift the chain.
	if second.CalculatedStartTime != "11:30" || second.CalculatedEndTime != "12:30" {
		t.Errorf("second window = %s-%s, want 11:30-12:30", second.CalculatedStartTime, second.CalculatedEndTime)
	}
	if sess.Phase != model.PhaseScheduled {
		t.Errorf("phase = %s, want %s", sess.Phase, model.PhaseScheduled)
	}
}

func TestSchedule_Idempotent(t *testing.T) {
	ctx := context.Background()
	uc, sessions := newFixture(&mockGateway{})

	entry := confirmedEntry("Fix login bug", 2, 0)
	sess := seedSession(sessions, []*model.WorkLogEntry{entry})

	if _, err := uc.SetStartTime(ctx, worklog.SetStartTimeInput{SessionID: sess.ID, StartTime: "09:00"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	firstStart, firstEnd := entry.CalculatedStartTime, entry.CalculatedEndTime

	if _, err := uc.Schedule(ctx, sess.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.CalculatedStartTime != firstStart || entry.CalculatedEndTime != firstEnd {
		t.Errorf("recomputation changed times: %s-%s then %s-%s",
			firstStart, firstEnd, entry.CalculatedStartTime, entry.CalculatedEndTime)
	}
}

func TestSchedule_MissingScrumWorkPackageID(t *testing.T) {
	ctx := context.Background()
	uc, sessions := newFixture(&mockGateway{})

	entry := confirmedEntry("Fix login bug", 2, 0)
	sess := seedSession(sessions, []*model.WorkLogEntry{
		scrumEntry(0),
		entry,
	})

	out, err := uc.SetStartTime(ctx, worklog.SetStartTimeInput{SessionID: sess.ID, StartTime: "09:00"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	blocking := 0
	for _, issue := range out.Issues {
		if issue.Blocking() {
			blocking++
			if issue.Type != model.IssueMissingWorkPackageID {
				t.Errorf("blocking issue type = %s", issue.Type)
			}
		}
	}
	if blocking != 1 {
		t.Fatalf("expected exactly 1 blocking issue, got %d (%+v)", blocking, out.Issues)
	}
	if !sess.HasBlockingIssues() {
		t.Error("session should report blocking issues")
	}
}

func TestSchedule_OverlapOnMidnightWrap(t *testing.T) {
	ctx := context.Background()
	uc, sessions := newFixture(&mockGateway{})

	first := confirmedEntry("Evening deploy", 3, 0)
	second := confirmedEntry("Post-deploy checks", 1, 2)
	sess := seedSession(sessions, []*model.WorkLogEntry{first, second})

	out, err := uc.SetStartTime(ctx, worklog.SetStartTimeInput{SessionID: sess.ID, StartTime: "20:00"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 20:00 + 3h = 23:00; the next start wraps to 01:00, landing before
	// the previous end on the clock.
	if second.CalculatedStartTime != "01:00" {
		t.Fatalf("second start = %s, want 01:00", second.CalculatedStartTime)
	}

	overlaps := 0
	for _, issue := range out.Issues {
		if issue.Type == model.IssueTimeOverlap {
			overlaps++
			if issue.Blocking() {
				t.Error("overlap issue must be advisory, not blocking")
			}
		}
	}
	if overlaps != 1 {
		t.Fatalf("expected 1 overlap issue, got %d (%+v)", overlaps, out.Issues)
	}
}

func TestSetStartTime_Validation(t *testing.T) {
	ctx := context.Background()
	uc, sessions := newFixture(&mockGateway{})

	sess := seedSession(sessions, []*model.WorkLogEntry{confirmedEntry("Task", 1, 0)})

	if _, err := uc.SetStartTime(ctx, worklog.SetStartTimeInput{SessionID: sess.ID, StartTime: "25:00"}); !errors.Is(err, worklog.ErrInvalidStartTime) {
		t.Errorf("expected ErrInvalidStartTime, got %v", err)
	}
	if _, err := uc.SetStartTime(ctx, worklog.SetStartTimeInput{SessionID: "nope", StartTime: "09:00"}); !errors.Is(err, worklog.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSchedule_MultiDateSuspendsPerDate(t *testing.T) {
	ctx := context.Background()
	uc, sessions := newFixture(&mockGateway{})

	day1 := confirmedEntry("Day one task", 2, 0)
	day2 := confirmedEntry("Day two task", 1, 0)
	day2.EntryDate = "2025-09-08"
	sess := seedSession(sessions, []*model.WorkLogEntry{day1, day2})

	out, err := uc.Schedule(ctx, sess.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.NeedsStartTime == nil || out.NeedsStartTime.Date != "2025-09-07" {
		t.Fatalf("expected suspension for 2025-09-07, got %+v", out.NeedsStartTime)
	}

	out, err = uc.SetStartTime(ctx, worklog.SetStartTimeInput{SessionID: sess.ID, Date: "2025-09-07", StartTime: "09:00"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.NeedsStartTime == nil || out.NeedsStartTime.Date != "2025-09-08" {
		t.Fatalf("expected suspension for 2025-09-08, got %+v", out.NeedsStartTime)
	}

	out, err = uc.SetStartTime(ctx, worklog.SetStartTimeInput{SessionID: sess.ID, Date: "2025-09-08", StartTime: "10:30"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.NeedsStartTime != nil {
		t.Fatalf("unexpected suspension: %+v", out.NeedsStartTime)
	}
	if day2.CalculatedStartTime != "10:30" || day2.CalculatedEndTime != "11:30" {
		t.Errorf("day two window = %s-%s, want 10:30-11:30", day2.CalculatedStartTime, day2.CalculatedEndTime)
	}
}
