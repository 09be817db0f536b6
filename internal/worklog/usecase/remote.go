package usecase

import (
	"context"

	"github.com/robiparvez/openproject-worklogger/internal/model"
)

// FetchStatuses returns the remote status catalogue, caching it for
// status-name resolution during replay.
func (uc *implUseCase) FetchStatuses(ctx context.Context) ([]model.Status, error) {
	if uc.statusData != nil {
		return uc.statusData, nil
	}

	statuses, err := uc.gateway.Statuses(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "worklog.usecase.FetchStatuses.gateway.Statuses: %v", err)
		return nil, err
	}

	uc.statusData = statuses
	return statuses, nil
}

// FetchProjects returns the projects visible to the configured account.
func (uc *implUseCase) FetchProjects(ctx context.Context) ([]model.Project, error) {
	projects, err := uc.gateway.Projects(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "worklog.usecase.FetchProjects.gateway.Projects: %v", err)
		return nil, err
	}

	return projects, nil
}

// TestConnection verifies the configured credentials by fetching the
// authenticated user.
func (uc *implUseCase) TestConnection(ctx context.Context) (model.User, error) {
	user, err := uc.gateway.CurrentUser(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "worklog.usecase.TestConnection.gateway.CurrentUser: %v", err)
		return model.User{}, err
	}

	uc.l.Infof(ctx, "Connected to OpenProject as %s (ID: %d)", user.Name, user.ID)
	return user, nil
}
