package session_test

import (
	"testing"
	"time"

	"github.com/robiparvez/openproject-worklogger/internal/model"
	"github.com/robiparvez/openproject-worklogger/internal/session"
)

func TestStore_CreateAndGet(t *testing.T) {
	s := session.NewStore(session.Config{MaxSessions: 4, TTL: time.Minute})

	entries := []*model.WorkLogEntry{
		{Project: "INTERNAL", Subject: "Task", DurationHours: 1, EntryDate: "2025-09-07"},
	}
	sess := s.Create(entries, 1)

	if sess.ID == "" {
		t.Fatal("session id must be assigned")
	}
	if sess.Phase != model.PhaseParsed {
		t.Errorf("phase = %s, want %s", sess.Phase, model.PhaseParsed)
	}
	if sess.DateCount != 1 || len(sess.Entries) != 1 {
		t.Errorf("dateCount=%d entries=%d", sess.DateCount, len(sess.Entries))
	}

	got := s.Get(sess.ID)
	if got != sess {
		t.Error("Get must return the same session instance")
	}
	if s.Get("missing") != nil {
		t.Error("unknown id must return nil")
	}
}

func TestStore_Eviction(t *testing.T) {
	s := session.NewStore(session.Config{MaxSessions: 2, TTL: time.Minute})

	a := s.Create(nil, 0)
	b := s.Create(nil, 0)
	c := s.Create(nil, 0)

	if s.Get(a.ID) != nil {
		t.Error("oldest session should be evicted at capacity")
	}
	if s.Get(b.ID) == nil || s.Get(c.ID) == nil {
		t.Error("recent sessions must survive eviction")
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
}

func TestStore_Delete(t *testing.T) {
	s := session.NewStore(session.Config{MaxSessions: 4, TTL: time.Minute})

	sess := s.Create(nil, 0)
	s.Delete(sess.ID)
	if s.Get(sess.ID) != nil {
		t.Error("deleted session must be gone")
	}
}
