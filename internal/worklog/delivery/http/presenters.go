package http

import (
	"encoding/json"
	"time"

	"github.com/robiparvez/openproject-worklogger/internal/model"
	"github.com/robiparvez/openproject-worklogger/internal/worklog"
)

// --- Request DTOs ---

type createSessionReq struct {
	// Document is the raw work-log upload; its shape is validated by the
	// parser, not by binding.
	Document json.RawMessage `json:"document" binding:"required"`
}

func (r createSessionReq) toInput() worklog.ProcessFileInput {
	return worklog.ProcessFileInput{Document: r.Document}
}

type setStartTimeReq struct {
	SessionID string `json:"-"`
	Date      string `json:"date"`
	StartTime string `json:"start_time" binding:"required"`
}

func (r setStartTimeReq) toInput() worklog.SetStartTimeInput {
	return worklog.SetStartTimeInput{
		SessionID: r.SessionID,
		Date:      r.Date,
		StartTime: r.StartTime,
	}
}

type replayReq struct {
	SessionID   string                          `json:"-"`
	Annotations map[int]worklog.EntryAnnotation `json:"annotations"`
}

func (r replayReq) toInput() worklog.ReplayInput {
	return worklog.ReplayInput{
		SessionID:   r.SessionID,
		Annotations: r.Annotations,
	}
}

// --- Response DTOs ---

type entryResp struct {
	Project             string  `json:"project"`
	Subject             string  `json:"subject"`
	Activity            string  `json:"activity"`
	DurationHours       float64 `json:"duration_hours"`
	BreakHours          float64 `json:"break_hours,omitempty"`
	IsScrum             bool    `json:"is_scrum"`
	WorkPackageID       int     `json:"work_package_id,omitempty"`
	ExistingID          int     `json:"existing_work_package_id,omitempty"`
	EntryDate           string  `json:"entry_date"`
	CalculatedStartTime string  `json:"calculated_start_time,omitempty"`
	CalculatedEndTime   string  `json:"calculated_end_time,omitempty"`
	StatusID            int     `json:"status_id,omitempty"`
	StatusName          string  `json:"status_name,omitempty"`
}

func newEntryResp(e *model.WorkLogEntry) entryResp {
	return entryResp{
		Project:             e.Project,
		Subject:             e.Subject,
		Activity:            e.Activity,
		DurationHours:       e.DurationHours,
		BreakHours:          e.BreakHours,
		IsScrum:             e.IsScrum,
		WorkPackageID:       e.WorkPackageID,
		ExistingID:          e.ExistingWorkPackageID,
		EntryDate:           e.EntryDate,
		CalculatedStartTime: e.CalculatedStartTime,
		CalculatedEndTime:   e.CalculatedEndTime,
		StatusID:            e.StatusID,
		StatusName:          e.StatusName,
	}
}

func newEntryResps(entries []*model.WorkLogEntry) []entryResp {
	resps := make([]entryResp, len(entries))
	for i, e := range entries {
		resps[i] = newEntryResp(e)
	}
	return resps
}

type issueResp struct {
	Type     string `json:"type"`
	Subject  string `json:"subject"`
	Date     string `json:"date"`
	Message  string `json:"message"`
	Blocking bool   `json:"blocking"`
}

func newIssueResps(issues []model.ValidationIssue) []issueResp {
	resps := make([]issueResp, len(issues))
	for i, issue := range issues {
		resps[i] = issueResp{
			Type:     string(issue.Type),
			Subject:  issue.Subject,
			Date:     issue.Date,
			Message:  issue.Message,
			Blocking: issue.Blocking(),
		}
	}
	return resps
}

type sessionResp struct {
	ID           string      `json:"id"`
	Phase        string      `json:"phase"`
	DateCount    int         `json:"date_count"`
	TotalEntries int         `json:"total_entries"`
	Entries      []entryResp `json:"entries"`
	Issues       []issueResp `json:"issues"`
	CreatedAt    time.Time   `json:"created_at"`
}

func newSessionResp(sess *model.Session) sessionResp {
	return sessionResp{
		ID:           sess.ID,
		Phase:        string(sess.Phase),
		DateCount:    sess.DateCount,
		TotalEntries: len(sess.Entries),
		Entries:      newEntryResps(sess.Entries),
		Issues:       newIssueResps(sess.Issues),
		CreatedAt:    sess.CreatedAt,
	}
}

type startTimeRequestResp struct {
	Date    string `json:"date"`
	Subject string `json:"subject"`
}

type scheduleResp struct {
	Session        sessionResp           `json:"session"`
	Issues         []issueResp           `json:"issues"`
	NeedsStartTime *startTimeRequestResp `json:"needs_start_time,omitempty"`
}

func (h *handler) newScheduleResp(out worklog.ScheduleOutput) scheduleResp {
	resp := scheduleResp{
		Session: newSessionResp(out.Session),
		Issues:  newIssueResps(out.Issues),
	}
	if out.NeedsStartTime != nil {
		resp.NeedsStartTime = &startTimeRequestResp{
			Date:    out.NeedsStartTime.Date,
			Subject: out.NeedsStartTime.Subject,
		}
	}
	return resp
}

type analysisResp struct {
	Scrum      []entryResp `json:"scrum"`
	Existing   []entryResp `json:"existing"`
	New        []entryResp `json:"new"`
	Duplicates []entryResp `json:"duplicates"`
}

type analyzeResp struct {
	Session  sessionResp  `json:"session"`
	Analysis analysisResp `json:"analysis"`
}

func (h *handler) newAnalyzeResp(out worklog.AnalyzeOutput) analyzeResp {
	return analyzeResp{
		Session: newSessionResp(out.Session),
		Analysis: analysisResp{
			Scrum:      newEntryResps(out.Analysis.Scrum),
			Existing:   newEntryResps(out.Analysis.Existing),
			New:        newEntryResps(out.Analysis.New),
			Duplicates: newEntryResps(out.Analysis.Duplicates),
		},
	}
}

type entryResultResp struct {
	Success       bool   `json:"success"`
	Type          string `json:"type,omitempty"`
	Subject       string `json:"subject"`
	Date          string `json:"date"`
	Message       string `json:"message,omitempty"`
	WorkPackageID int    `json:"work_package_id,omitempty"`
	Error         string `json:"error,omitempty"`
}

type replayResp struct {
	Results      []entryResultResp `json:"results"`
	CreatedCount int               `json:"created_count"`
	UpdatedCount int               `json:"updated_count"`
	ErrorCount   int               `json:"error_count"`
	TotalEntries int               `json:"total_entries"`
}

func (h *handler) newReplayResp(out worklog.ReplayOutput) replayResp {
	results := make([]entryResultResp, len(out.Results))
	for i, res := range out.Results {
		results[i] = entryResultResp{
			Success:       res.Success,
			Type:          string(res.Type),
			Message:       res.Message,
			WorkPackageID: res.WorkPackageID,
			Error:         res.Error,
		}
		if res.Entry != nil {
			results[i].Subject = res.Entry.Subject
			results[i].Date = res.Entry.EntryDate
		}
	}
	return replayResp{
		Results:      results,
		CreatedCount: out.CreatedCount,
		UpdatedCount: out.UpdatedCount,
		ErrorCount:   out.ErrorCount,
		TotalEntries: out.TotalEntries,
	}
}

type statusResp struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	IsClosed  bool   `json:"is_closed"`
	IsDefault bool   `json:"is_default"`
}

func (h *handler) newStatusResps(statuses []model.Status) []statusResp {
	resps := make([]statusResp, len(statuses))
	for i, s := range statuses {
		resps[i] = statusResp{
			ID:        s.ID,
			Name:      s.Name,
			IsClosed:  s.IsClosed,
			IsDefault: s.IsDefault,
		}
	}
	return resps
}

type projectResp struct {
	ID         int    `json:"id"`
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
}

func (h *handler) newProjectResps(projects []model.Project) []projectResp {
	resps := make([]projectResp, len(projects))
	for i, p := range projects {
		resps[i] = projectResp{
			ID:         p.ID,
			Identifier: p.Identifier,
			Name:       p.Name,
		}
	}
	return resps
}

type userResp struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Login string `json:"login"`
	Email string `json:"email"`
}

func (h *handler) newUserResp(u model.User) userResp {
	return userResp{
		ID:    u.ID,
		Name:  u.Name,
		Login: u.Login,
		Email: u.Email,
	}
}
