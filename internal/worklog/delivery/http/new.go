package http

import (
	"github.com/gin-gonic/gin"

	"github.com/robiparvez/openproject-worklogger/internal/worklog"
	"github.com/robiparvez/openproject-worklogger/pkg/log"
)

// Handler is the public interface for the work-log HTTP delivery layer.
type Handler interface {
	CreateSession(c *gin.Context)
	Detail(c *gin.Context)
	SetStartTime(c *gin.Context)
	Analyze(c *gin.Context)
	Replay(c *gin.Context)
	Statuses(c *gin.Context)
	Projects(c *gin.Context)
	TestConnection(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc worklog.UseCase
}

// New creates a new HTTP handler for the work-log domain.
func New(l log.Logger, uc worklog.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
