package usecase_test

import (
	"context"
	"time"

	"github.com/robiparvez/openproject-worklogger/internal/model"
	"github.com/robiparvez/openproject-worklogger/internal/session"
	"github.com/robiparvez/openproject-worklogger/internal/worklog"
	"github.com/robiparvez/openproject-worklogger/internal/worklog/parser"
	"github.com/robiparvez/openproject-worklogger/internal/worklog/repository"
	"github.com/robiparvez/openproject-worklogger/internal/worklog/usecase"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

// mockGateway substitutes the OpenProject gateway. Unset funcs behave
// like an empty remote.
type mockGateway struct {
	currentUserFn  func(ctx context.Context) (model.User, error)
	projectsFn     func(ctx context.Context) ([]model.Project, error)
	statusesFn     func(ctx context.Context) ([]model.Status, error)
	findWPFn       func(ctx context.Context, projectID int, subject string) (*model.WorkPackage, error)
	createWPFn     func(ctx context.Context, opt repository.CreateWorkPackageOptions) (model.WorkPackage, error)
	findTimesFn    func(ctx context.Context, workPackageID int, date string) ([]model.TimeEntry, error)
	createTimeFn   func(ctx context.Context, opt repository.CreateTimeEntryOptions) (model.TimeEntry, error)
	addTimeFn      func(ctx context.Context, opt repository.AddTimeOptions) (model.TimeEntry, error)
	createdWPCount int
	createdTECount int
}

func (g *mockGateway) CurrentUser(ctx context.Context) (model.User, error) {
	if g.currentUserFn != nil {
		return g.currentUserFn(ctx)
	}
	return model.User{ID: 1, Name: "Test User"}, nil
}

func (g *mockGateway) Projects(ctx context.Context) ([]model.Project, error) {
	if g.projectsFn != nil {
		return g.projectsFn(ctx)
	}
	return nil, nil
}

func (g *mockGateway) Statuses(ctx context.Context) ([]model.Status, error) {
	if g.statusesFn != nil {
		return g.statusesFn(ctx)
	}
	return []model.Status{{ID: 7, Name: "In progress"}}, nil
}

func (g *mockGateway) FindWorkPackageBySubject(ctx context.Context, projectID int, subject string) (*model.WorkPackage, error) {
	if g.findWPFn != nil {
		return g.findWPFn(ctx, projectID, subject)
	}
	return nil, nil
}

func (g *mockGateway) CreateWorkPackage(ctx context.Context, opt repository.CreateWorkPackageOptions) (model.WorkPackage, error) {
	g.createdWPCount++
	if g.createWPFn != nil {
		return g.createWPFn(ctx, opt)
	}
	return model.WorkPackage{ID: 1000 + g.createdWPCount, Subject: opt.Subject}, nil
}

func (g *mockGateway) FindTimeEntries(ctx context.Context, workPackageID int, date string) ([]model.TimeEntry, error) {
	if g.findTimesFn != nil {
		return g.findTimesFn(ctx, workPackageID, date)
	}
	return nil, nil
}

func (g *mockGateway) CreateTimeEntry(ctx context.Context, opt repository.CreateTimeEntryOptions) (model.TimeEntry, error) {
	g.createdTECount++
	if g.createTimeFn != nil {
		return g.createTimeFn(ctx, opt)
	}
	return model.TimeEntry{ID: g.createdTECount, WorkPackageID: opt.WorkPackageID, SpentOn: opt.Date, Hours: opt.Hours}, nil
}

func (g *mockGateway) AddTimeToEntry(ctx context.Context, opt repository.AddTimeOptions) (model.TimeEntry, error) {
	if g.addTimeFn != nil {
		return g.addTimeFn(ctx, opt)
	}
	return model.TimeEntry{}, nil
}

var testMappings = map[string]int{
	"INTERNAL": 10,
	"CLIENTX":  22,
}

func newFixture(g *mockGateway) (worklog.UseCase, *session.Store) {
	l := &mockLogger{}
	sessions := session.NewStore(session.Config{MaxSessions: 8, TTL: time.Minute})
	p := parser.New(testMappings, l)
	uc := usecase.New(l, p, g, sessions, usecase.Config{
		ProjectMappings: testMappings,
		DefaultStatusID: 7,
	})
	return uc, sessions
}

// seedSession stores entries as a parsed session, bypassing the
// document parser.
func seedSession(s *session.Store, entries []*model.WorkLogEntry) *model.Session {
	dates := make(map[string]bool)
	for _, e := range entries {
		dates[e.EntryDate] = true
	}
	return s.Create(entries, len(dates))
}
