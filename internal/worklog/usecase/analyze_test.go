package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/robiparvez/openproject-worklogger/internal/model"
	"github.com/robiparvez/openproject-worklogger/internal/worklog"
)

func reviewedEntry(subject string, hours float64) *model.WorkLogEntry {
	e := confirmedEntry(subject, hours, 0)
	e.UserSetStartTime = true
	e.CalculatedStartTime = "09:00"
	return e
}

func TestAnalyze_RequiresConfirmedStartTimes(t *testing.T) {
	ctx := context.Background()
	uc, sessions := newFixture(&mockGateway{})

	sess := seedSession(sessions, []*model.WorkLogEntry{confirmedEntry("Unconfirmed", 1, 0)})

	_, err := uc.Analyze(ctx, sess.ID)
	if !errors.Is(err, worklog.ErrAwaitingStartTime) {
		t.Fatalf("expected ErrAwaitingStartTime, got %v", err)
	}
	if sess.Phase != model.PhaseAwaitingStartTime {
		t.Errorf("phase = %s, want %s", sess.Phase, model.PhaseAwaitingStartTime)
	}
}

func TestAnalyze_Categories(t *testing.T) {
	ctx := context.Background()

	gw := &mockGateway{
		findWPFn: func(ctx context.Context, projectID int, subject string) (*model.WorkPackage, error) {
			if subject == "Known task" {
				return &model.WorkPackage{ID: 555, Subject: "Known task"}, nil
			}
			return nil, nil
		},
	}
	uc, sessions := newFixture(gw)

	scrum := scrumEntry(99)
	existing := reviewedEntry("Pinned task", 1)
	existing.WorkPackageID = 321
	duplicate := reviewedEntry("Known task", 2)
	fresh := reviewedEntry("Brand new task", 1)

	sess := seedSession(sessions, []*model.WorkLogEntry{scrum, existing, duplicate, fresh})

	out, err := uc.Analyze(ctx, sess.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a := out.Analysis
	if len(a.Scrum) != 1 || a.Scrum[0] != scrum {
		t.Errorf("scrum category = %+v", a.Scrum)
	}
	if len(a.Existing) != 1 || a.Existing[0] != existing {
		t.Errorf("existing category = %+v", a.Existing)
	}
	if len(a.Duplicates) != 1 || a.Duplicates[0] != duplicate {
		t.Errorf("duplicates category = %+v", a.Duplicates)
	}
	if duplicate.ExistingWorkPackageID != 555 {
		t.Errorf("duplicate ExistingWorkPackageID = %d, want 555", duplicate.ExistingWorkPackageID)
	}
	if len(a.New) != 1 || a.New[0] != fresh {
		t.Errorf("new category = %+v", a.New)
	}
	if sess.Phase != model.PhaseAnalyzed {
		t.Errorf("phase = %s, want %s", sess.Phase, model.PhaseAnalyzed)
	}
}

func TestAnalyze_DedupCollapsesRepeats(t *testing.T) {
	ctx := context.Background()
	uc, sessions := newFixture(&mockGateway{})

	a := reviewedEntry("Repeated task", 2)
	b := reviewedEntry("Repeated task", 2)   // literal repeat
	c := reviewedEntry("Repeated task", 1.5) // different hours survive

	sess := seedSession(sessions, []*model.WorkLogEntry{a, b, c})

	out, err := uc.Analyze(ctx, sess.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := len(out.Analysis.New); got != 2 {
		t.Fatalf("expected 2 unique new entries, got %d", got)
	}
	if out.Analysis.New[0] != a || out.Analysis.New[1] != c {
		t.Error("dedup should keep the first occurrence in stored order")
	}
}

func TestAnalyze_LookupFailureDegradesToNew(t *testing.T) {
	ctx := context.Background()

	gw := &mockGateway{
		findWPFn: func(ctx context.Context, projectID int, subject string) (*model.WorkPackage, error) {
			return nil, fmt.Errorf("remote unavailable")
		},
	}
	uc, sessions := newFixture(gw)

	entry := reviewedEntry("Unreachable task", 1)
	sess := seedSession(sessions, []*model.WorkLogEntry{entry})

	out, err := uc.Analyze(ctx, sess.ID)
	if err != nil {
		t.Fatalf("lookup failure must not fail analysis: %v", err)
	}
	if len(out.Analysis.New) != 1 || len(out.Analysis.Duplicates) != 0 {
		t.Errorf("entry should degrade to new: %+v", out.Analysis)
	}
}

func TestAnalyze_UnmappedProjectFails(t *testing.T) {
	ctx := context.Background()
	uc, sessions := newFixture(&mockGateway{})

	entry := reviewedEntry("Orphan task", 1)
	entry.Project = "UNMAPPED"
	sess := seedSession(sessions, []*model.WorkLogEntry{entry})

	_, err := uc.Analyze(ctx, sess.ID)
	if !errors.Is(err, worklog.ErrProjectUnmapped) {
		t.Fatalf("expected ErrProjectUnmapped, got %v", err)
	}
}
