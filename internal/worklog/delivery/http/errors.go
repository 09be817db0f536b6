package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/robiparvez/openproject-worklogger/internal/worklog"
	"github.com/robiparvez/openproject-worklogger/pkg/response"
)

// respondError translates domain errors into HTTP responses. Unknown
// errors surface as 500 without leaking the underlying message.
func (h *handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, worklog.ErrSessionNotFound):
		response.NotFound(c, err)
	case errors.Is(err, worklog.ErrBlockingIssues),
		errors.Is(err, worklog.ErrAwaitingStartTime),
		errors.Is(err, worklog.ErrNotAnalyzed):
		response.Conflict(c, err)
	case errors.Is(err, worklog.ErrInvalidDocument),
		errors.Is(err, worklog.ErrEmptyDocument),
		errors.Is(err, worklog.ErrNoValidEntries),
		errors.Is(err, worklog.ErrProjectUnmapped),
		errors.Is(err, worklog.ErrInvalidStartTime):
		response.Error(c, err, nil)
	default:
		response.InternalError(c, err)
	}
}
