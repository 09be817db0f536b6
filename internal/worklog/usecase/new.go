package usecase

import (
	"github.com/robiparvez/openproject-worklogger/internal/model"
	"github.com/robiparvez/openproject-worklogger/internal/session"
	"github.com/robiparvez/openproject-worklogger/internal/worklog/parser"
	"github.com/robiparvez/openproject-worklogger/internal/worklog/repository"
	pkgLog "github.com/robiparvez/openproject-worklogger/pkg/log"
)

type implUseCase struct {
	l               pkgLog.Logger
	parser          *parser.Parser
	gateway         repository.Gateway
	sessions        *session.Store
	projectMappings map[string]int
	defaultStatusID int

	// statusData caches the remote status list for name resolution
	// during replay; populated lazily by FetchStatuses.
	statusData []model.Status
}

// Config holds the pipeline's mapping and defaulting knobs.
type Config struct {
	ProjectMappings map[string]int
	DefaultStatusID int
}

// New creates a new work-log UseCase instance.
func New(
	l pkgLog.Logger,
	p *parser.Parser,
	gateway repository.Gateway,
	sessions *session.Store,
	cfg Config,
) *implUseCase {
	return &implUseCase{
		l:               l,
		parser:          p,
		gateway:         gateway,
		sessions:        sessions,
		projectMappings: cfg.ProjectMappings,
		defaultStatusID: cfg.DefaultStatusID,
	}
}
