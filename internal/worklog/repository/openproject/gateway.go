package openproject

import (
	"context"
	"fmt"
	"strings"

	"github.com/robiparvez/openproject-worklogger/internal/model"
	"github.com/robiparvez/openproject-worklogger/internal/worklog/repository"
	op "github.com/robiparvez/openproject-worklogger/pkg/openproject"
	"github.com/robiparvez/openproject-worklogger/pkg/timefmt"
)

// fallbackActivityID is used when neither the entry's activity nor
// "Development" is mapped; activity id 3 is OpenProject's stock
// Development activity.
const fallbackActivityID = 3

func (g *implGateway) CurrentUser(ctx context.Context) (model.User, error) {
	user, err := g.client.GetCurrentUser(ctx)
	if err != nil {
		return model.User{}, err
	}
	return model.User{ID: user.ID, Name: user.Name, Login: user.Login, Email: user.Email}, nil
}

func (g *implGateway) Projects(ctx context.Context) ([]model.Project, error) {
	projects, err := g.client.GetProjects(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Project, 0, len(projects))
	for _, p := range projects {
		out = append(out, model.Project{ID: p.ID, Identifier: p.Identifier, Name: p.Name})
	}
	return out, nil
}

func (g *implGateway) Statuses(ctx context.Context) ([]model.Status, error) {
	statuses, err := g.client.GetStatuses(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Status, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, model.Status{ID: s.ID, Name: s.Name, IsClosed: s.IsClosed, IsDefault: s.IsDefault})
	}
	return out, nil
}

func (g *implGateway) FindWorkPackageBySubject(ctx context.Context, projectID int, subject string) (*model.WorkPackage, error) {
	key := subjectKey(projectID, subject)
	if cached, ok := g.subjectCache.Get(key); ok {
		wp := cached
		return &wp, nil
	}

	found, err := g.client.FindWorkPackageBySubject(ctx, projectID, subject, func(wp op.WorkPackage) {
		// Containment matches are a weaker signal than exact equality;
		// logged only, never classified.
		g.l.Debugf(ctx, "partial subject match for %q: %q (id %d)", subject, wp.Subject, wp.ID)
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, nil
	}

	wp := model.WorkPackage{ID: found.ID, Subject: found.Subject}
	g.subjectCache.Add(key, wp)
	return &wp, nil
}

func (g *implGateway) CreateWorkPackage(ctx context.Context, opt repository.CreateWorkPackageOptions) (model.WorkPackage, error) {
	// Re-check immediately before creating: the analysis-time lookup
	// may be stale by replay time.
	existing, err := g.FindWorkPackageBySubject(ctx, opt.ProjectID, opt.Subject)
	if err == nil && existing != nil {
		return *existing, nil
	}
	if err != nil {
		g.l.Warnf(ctx, "pre-create subject check failed for %q, creating anyway: %v", opt.Subject, err)
	}

	statusID := opt.StatusID
	if statusID == 0 {
		statusID = g.defaultStatusID
	}

	created, err := g.client.CreateWorkPackage(ctx, op.CreateWorkPackageRequest{
		ProjectID:         opt.ProjectID,
		Subject:           opt.Subject,
		Description:       opt.Description,
		StatusID:          statusID,
		AccountableUserID: g.accountableUserID,
		AssigneeUserID:    g.assigneeUserID,
	})
	if err != nil {
		return model.WorkPackage{}, fmt.Errorf("failed to create work package %q: %w", opt.Subject, err)
	}

	wp := model.WorkPackage{ID: created.ID, Subject: created.Subject}
	g.subjectCache.Add(subjectKey(opt.ProjectID, opt.Subject), wp)
	return wp, nil
}

func (g *implGateway) FindTimeEntries(ctx context.Context, workPackageID int, date string) ([]model.TimeEntry, error) {
	entries, err := g.client.ListTimeEntries(ctx)
	if err != nil {
		return nil, err
	}

	var out []model.TimeEntry
	for _, te := range entries {
		if te.SpentOn == date && te.WorkPackageID() == workPackageID {
			out = append(out, model.TimeEntry{
				ID:            te.ID,
				WorkPackageID: te.WorkPackageID(),
				SpentOn:       te.SpentOn,
				Hours:         te.HoursValue(),
				Comment:       te.CommentText(),
			})
		}
	}
	return out, nil
}

func (g *implGateway) CreateTimeEntry(ctx context.Context, opt repository.CreateTimeEntryOptions) (model.TimeEntry, error) {
	comment := opt.Comment
	if timefmt.Valid(opt.StartTime) {
		window := timefmt.Window(opt.StartTime, opt.Hours)
		if comment != "" {
			comment = window + " " + comment
		} else {
			comment = window
		}
	}

	created, err := g.client.CreateTimeEntry(ctx, op.CreateTimeEntryRequest{
		WorkPackageID: opt.WorkPackageID,
		SpentOn:       opt.Date,
		Hours:         opt.Hours,
		ActivityID:    g.activityID(opt.Activity),
		Comment:       comment,
	})
	if err != nil {
		return model.TimeEntry{}, fmt.Errorf("failed to create time entry: %w", err)
	}

	return model.TimeEntry{
		ID:            created.ID,
		WorkPackageID: created.WorkPackageID(),
		SpentOn:       created.SpentOn,
		Hours:         created.HoursValue(),
		Comment:       created.CommentText(),
	}, nil
}

func (g *implGateway) AddTimeToEntry(ctx context.Context, opt repository.AddTimeOptions) (model.TimeEntry, error) {
	existing, err := g.FindTimeEntries(ctx, opt.WorkPackageID, opt.Date)
	if err != nil {
		g.l.Warnf(ctx, "could not list time entries for work package %d, creating fresh entry: %v", opt.WorkPackageID, err)
		existing = nil
	}

	if len(existing) > 0 {
		target := existing[0]
		newTotal := target.Hours + opt.AdditionalHours
		comment := opt.Comment
		if comment == "" {
			comment = target.Comment
		}

		updated, updateErr := g.client.UpdateTimeEntry(ctx, target.ID, newTotal, comment)
		if updateErr != nil {
			return model.TimeEntry{}, fmt.Errorf("failed to update time entry %d: %w", target.ID, updateErr)
		}

		g.l.Infof(ctx, "updated time entry %d: added %gh to existing %gh = %gh", target.ID, opt.AdditionalHours, target.Hours, newTotal)
		return model.TimeEntry{
			ID:            updated.ID,
			WorkPackageID: updated.WorkPackageID(),
			SpentOn:       updated.SpentOn,
			Hours:         updated.HoursValue(),
			Comment:       updated.CommentText(),
		}, nil
	}

	return g.CreateTimeEntry(ctx, repository.CreateTimeEntryOptions{
		WorkPackageID: opt.WorkPackageID,
		Date:          opt.Date,
		Hours:         opt.AdditionalHours,
		Activity:      opt.Activity,
		Comment:       opt.Comment,
	})
}

// activityID maps an activity name to its configured time-entry
// activity id, falling back to Development, then to the stock id.
func (g *implGateway) activityID(activity string) int {
	if id, ok := g.activityMappings[activity]; ok {
		return id
	}
	if id, ok := g.activityMappings["Development"]; ok {
		return id
	}
	return fallbackActivityID
}

func subjectKey(projectID int, subject string) string {
	return fmt.Sprintf("%d|%s", projectID, strings.ToLower(strings.TrimSpace(subject)))
}
