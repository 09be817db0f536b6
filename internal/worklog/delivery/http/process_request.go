package http

import (
	"errors"

	"github.com/gin-gonic/gin"
)

var errMissingSessionID = errors.New("session id is required")

// processCreateSessionReq binds the work-log upload body.
func (h *handler) processCreateSessionReq(c *gin.Context) (createSessionReq, error) {
	var req createSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}

// processSetStartTimeReq binds the start-time body + URI param.
func (h *handler) processSetStartTimeReq(c *gin.Context) (setStartTimeReq, error) {
	var req setStartTimeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	req.SessionID = c.Param("id")
	if req.SessionID == "" {
		return req, errMissingSessionID
	}
	return req, nil
}

// processReplayReq binds the replay annotations body + URI param. An
// empty body is valid: annotations are optional.
func (h *handler) processReplayReq(c *gin.Context) (replayReq, error) {
	var req replayReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			return req, err
		}
	}
	req.SessionID = c.Param("id")
	if req.SessionID == "" {
		return req, errMissingSessionID
	}
	return req, nil
}
