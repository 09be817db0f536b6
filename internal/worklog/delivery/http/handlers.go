package http

import (
	"github.com/gin-gonic/gin"

	"github.com/robiparvez/openproject-worklogger/internal/worklog"
	"github.com/robiparvez/openproject-worklogger/pkg/response"
)

// CreateSession godoc
// @Summary     Upload a work log
// @Description Parses a work-log document, computes the schedule and returns the new session. When a date's first start time is unknown the session suspends and needs_start_time identifies the date.
// @Tags        Worklog
// @Accept      json
// @Produce     json
// @Param       body body createSessionReq true "Work log document"
// @Success     200 {object} scheduleResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/worklog/sessions [POST]
func (h *handler) CreateSession(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processCreateSessionReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	out, err := h.uc.ProcessFile(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.ProcessFile: %v", err)
		h.respondError(c, err)
		return
	}

	sched, err := h.uc.Schedule(ctx, out.Session.ID)
	if err != nil {
		h.l.Errorf(ctx, "uc.Schedule: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, h.newScheduleResp(sched))
}

// Detail godoc
// @Summary     Get session detail
// @Description Returns a session's phase, entries and validation issues.
// @Tags        Worklog
// @Produce     json
// @Param       id path string true "Session ID"
// @Success     200 {object} sessionResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/worklog/sessions/{id} [GET]
func (h *handler) Detail(c *gin.Context) {
	ctx := c.Request.Context()

	id := c.Param("id")
	if id == "" {
		response.Error(c, errMissingSessionID, nil)
		return
	}

	sess, err := h.uc.Session(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, newSessionResp(sess))
}

// SetStartTime godoc
// @Summary     Provide a start time
// @Description Resolves an awaiting-start-time suspension for one date and recomputes the schedule. May suspend again for the next unconfirmed date.
// @Tags        Worklog
// @Accept      json
// @Produce     json
// @Param       id   path string          true "Session ID"
// @Param       body body setStartTimeReq true "Start time (HH:MM)"
// @Success     200 {object} scheduleResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/worklog/sessions/{id}/start-time [POST]
func (h *handler) SetStartTime(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processSetStartTimeReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	out, err := h.uc.SetStartTime(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.SetStartTime: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, h.newScheduleResp(out))
}

// Analyze godoc
// @Summary     Analyze a session
// @Description Reconciles the session's entries against OpenProject into scrum / existing / new / duplicate categories.
// @Tags        Worklog
// @Produce     json
// @Param       id path string true "Session ID"
// @Success     200 {object} analyzeResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     409 {object} response.Resp "Conflict - awaiting start time"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/worklog/sessions/{id}/analyze [POST]
func (h *handler) Analyze(c *gin.Context) {
	ctx := c.Request.Context()

	id := c.Param("id")
	if id == "" {
		response.Error(c, errMissingSessionID, nil)
		return
	}

	out, err := h.uc.Analyze(ctx, id)
	if err != nil {
		h.l.Errorf(ctx, "uc.Analyze: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, h.newAnalyzeResp(out))
}

// Replay godoc
// @Summary     Replay a session
// @Description Performs the minimal remote mutation for each entry and reports per-entry outcomes. Partial failure does not abort the batch.
// @Tags        Worklog
// @Accept      json
// @Produce     json
// @Param       id   path string    true  "Session ID"
// @Param       body body replayReq false "Per-entry annotations"
// @Success     200 {object} replayResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     409 {object} response.Resp "Conflict - not analyzed or blocking issues"
// @Router      /api/v1/worklog/sessions/{id}/replay [POST]
func (h *handler) Replay(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processReplayReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	input := req.toInput()
	input.Progress = func(p worklog.ProgressUpdate) {
		h.l.Infof(ctx, "Processing %d/%d: %s", p.Current, p.Total, p.Message)
	}

	out, err := h.uc.Replay(ctx, input)
	if err != nil {
		h.l.Errorf(ctx, "uc.Replay: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, h.newReplayResp(out))
}

// Statuses godoc
// @Summary     List work-package statuses
// @Tags        Worklog
// @Produce     json
// @Success     200 {array} statusResp
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/worklog/statuses [GET]
func (h *handler) Statuses(c *gin.Context) {
	ctx := c.Request.Context()

	statuses, err := h.uc.FetchStatuses(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, h.newStatusResps(statuses))
}

// Projects godoc
// @Summary     List projects
// @Tags        Worklog
// @Produce     json
// @Success     200 {array} projectResp
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/worklog/projects [GET]
func (h *handler) Projects(c *gin.Context) {
	ctx := c.Request.Context()

	projects, err := h.uc.FetchProjects(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, h.newProjectResps(projects))
}

// TestConnection godoc
// @Summary     Test the OpenProject connection
// @Description Verifies the configured credentials by fetching the authenticated user.
// @Tags        Worklog
// @Produce     json
// @Success     200 {object} userResp
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/worklog/connection [GET]
func (h *handler) TestConnection(c *gin.Context) {
	ctx := c.Request.Context()

	user, err := h.uc.TestConnection(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, h.newUserResp(user))
}
