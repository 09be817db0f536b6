package http

import (
	"github.com/gin-gonic/gin"

	"github.com/robiparvez/openproject-worklogger/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	worklog := rg.Group("/worklog", mw.Log())
	{
		sessions := worklog.Group("/sessions")
		{
			sessions.POST("", h.CreateSession)
			sessions.GET("/:id", h.Detail)
			sessions.POST("/:id/start-time", h.SetStartTime)
			sessions.POST("/:id/analyze", h.Analyze)
			sessions.POST("/:id/replay", h.Replay)
		}

		worklog.GET("/statuses", h.Statuses)
		worklog.GET("/projects", h.Projects)
		worklog.GET("/connection", h.TestConnection)
	}
}
