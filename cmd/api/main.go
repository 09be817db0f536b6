package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robiparvez/openproject-worklogger/config"
	_ "github.com/robiparvez/openproject-worklogger/docs" // Swagger docs
	"github.com/robiparvez/openproject-worklogger/internal/httpserver"
	"github.com/robiparvez/openproject-worklogger/internal/session"
	"github.com/robiparvez/openproject-worklogger/internal/worklog/parser"
	opGateway "github.com/robiparvez/openproject-worklogger/internal/worklog/repository/openproject"
	"github.com/robiparvez/openproject-worklogger/internal/worklog/usecase"
	"github.com/robiparvez/openproject-worklogger/pkg/log"
	"github.com/robiparvez/openproject-worklogger/pkg/openproject"
)

// @title       OpenProject Worklogger API
// @description Work-log upload, scheduling and OpenProject reconciliation service.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting OpenProject Worklogger...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "OpenProject URL: %s", cfg.OpenProject.BaseURL)

	// 3. OpenProject client + gateway
	client := openproject.NewClient(openproject.Config{
		BaseURL:           cfg.OpenProject.BaseURL,
		AccessToken:       cfg.OpenProject.AccessToken,
		OAuthClientID:     cfg.OpenProject.OAuthClientID,
		OAuthClientSecret: cfg.OpenProject.OAuthClientSecret,
		OAuthTokenURL:     cfg.OpenProject.OAuthTokenURL,
		RequestsPerSecond: cfg.OpenProject.RequestsPerSecond,
	})

	gateway := opGateway.New(client, opGateway.Config{
		ActivityMappings:  cfg.Worklog.ActivityMappings,
		DefaultStatusID:   cfg.Worklog.DefaultStatusID,
		AccountableUserID: cfg.OpenProject.AccountableUserID,
		AssigneeUserID:    cfg.OpenProject.AssigneeUserID,
	}, logger)

	// 4. Work-log pipeline
	p := parser.New(cfg.Worklog.ProjectMappings, logger)

	sessions := session.NewStore(session.Config{
		MaxSessions: cfg.Session.MaxSessions,
		TTL:         time.Duration(cfg.Session.TTLMinutes) * time.Minute,
	})

	worklogUC := usecase.New(logger, p, gateway, sessions, usecase.Config{
		ProjectMappings: cfg.Worklog.ProjectMappings,
		DefaultStatusID: cfg.Worklog.DefaultStatusID,
	})

	// 5. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		WorklogUC:   worklogUC,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 6. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
