package openproject

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/robiparvez/openproject-worklogger/internal/model"
	"github.com/robiparvez/openproject-worklogger/internal/worklog/repository"
	pkgLog "github.com/robiparvez/openproject-worklogger/pkg/log"
	op "github.com/robiparvez/openproject-worklogger/pkg/openproject"
)

// subjectCacheSize bounds the subject-lookup cache; entries expire so a
// package created outside this service is eventually seen.
const (
	subjectCacheSize = 256
	subjectCacheTTL  = 5 * time.Minute
)

type implGateway struct {
	client            *op.Client
	l                 pkgLog.Logger
	activityMappings  map[string]int
	defaultStatusID   int
	accountableUserID int
	assigneeUserID    int

	// subjectCache caches positive subject-match lookups per
	// (projectID, normalized subject) to avoid re-walking remote pages
	// within one review/replay cycle.
	subjectCache *expirable.LRU[string, model.WorkPackage]
}

// Config holds the gateway's mapping and defaulting knobs.
type Config struct {
	ActivityMappings  map[string]int
	DefaultStatusID   int
	AccountableUserID int
	AssigneeUserID    int
}

// New creates the OpenProject-backed Gateway.
func New(client *op.Client, cfg Config, l pkgLog.Logger) repository.Gateway {
	return &implGateway{
		client:            client,
		l:                 l,
		activityMappings:  cfg.ActivityMappings,
		defaultStatusID:   cfg.DefaultStatusID,
		accountableUserID: cfg.AccountableUserID,
		assigneeUserID:    cfg.AssigneeUserID,
		subjectCache:      expirable.NewLRU[string, model.WorkPackage](subjectCacheSize, nil, subjectCacheTTL),
	}
}
