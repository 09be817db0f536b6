package model

import (
	"fmt"
	"time"
)

// Phase is the upload-session state machine position.
type Phase string

const (
	PhaseIdle              Phase = "idle"
	PhaseParsed            Phase = "parsed"
	PhaseScheduled         Phase = "scheduled"
	PhaseAwaitingStartTime Phase = "awaiting_start_time"
	PhaseAnalyzed          Phase = "analyzed"
	PhaseReplaying         Phase = "replaying"
	PhaseDone              Phase = "done"
)

// Session carries one upload through the pipeline:
// Idle → Parsed → Scheduled (looping through AwaitingStartTime once per
// unconfirmed date) → Analyzed → Replaying → Done.
// All pipeline state lives here; phases mutate the session they are given
// instead of ambient fields on a long-lived controller.
type Session struct {
	ID        string            `json:"id"`
	Phase     Phase             `json:"phase"`
	Entries   []*WorkLogEntry   `json:"entries"`
	Issues    []ValidationIssue `json:"issues"`
	DateCount int               `json:"date_count"`
	CreatedAt time.Time         `json:"created_at"`

	// Analysis is the reconciliation result, nil until Analyze runs.
	Analysis *Analysis `json:"analysis,omitempty"`
}

// Analysis is the reconciler's categorization of a session's entries.
// An entry lands in exactly one category.
type Analysis struct {
	Scrum      []*WorkLogEntry `json:"scrum"`
	Existing   []*WorkLogEntry `json:"existing"`
	New        []*WorkLogEntry `json:"new"`
	Duplicates []*WorkLogEntry `json:"duplicates"`
}

// HasBlockingIssues reports whether any recorded issue forbids replay.
func (s *Session) HasBlockingIssues() bool {
	for _, issue := range s.Issues {
		if issue.Blocking() {
			return true
		}
	}
	return false
}

// EntriesByDate groups the session's entries by their entry date,
// preserving upload order within each date.
func (s *Session) EntriesByDate() map[string][]*WorkLogEntry {
	byDate := make(map[string][]*WorkLogEntry)
	for _, e := range s.Entries {
		if e.EntryDate == "" {
			continue
		}
		byDate[e.EntryDate] = append(byDate[e.EntryDate], e)
	}
	return byDate
}

func dedupKey(project, subject string, hours float64) string {
	return fmt.Sprintf("%s|%s|%g", project, subject, hours)
}
