package session

import (
	"testing"
	"time"

	"github.com/optifin/optifin/internal/models"
)

func TestCreate_Defaults(t *testing.T) {
	m := NewManager(time.Minute, models.Profile{Currency: "EUR"})
	s := m.Create()

	if s.ID == "" {
		t.Error("expected a session ID")
	}
	if s.ConsentAccepted {
		t.Error("consent should default to false")
	}
	if s.LoggedIn {
		t.Error("logged-in should default to false")
	}
	if s.Segment != models.SegmentUnset {
		t.Errorf("segment should default to unset, got %q", s.Segment)
	}
	if s.CurrentPage != models.PageConsent {
		t.Errorf("initial page should be the consent gate, got %q", s.CurrentPage)
	}
	if s.Profile.Currency != "EUR" {
		t.Errorf("profile should carry defaults, got %+v", s.Profile)
	}
}

func TestGet(t *testing.T) {
	m := NewManager(time.Minute, models.Profile{})
	s := m.Create()

	got, ok := m.Get(s.ID)
	if !ok || got != s {
		t.Fatalf("Get(%q) = %v, %v; want the created session", s.ID, got, ok)
	}
	if _, ok := m.Get("missing"); ok {
		t.Error("Get for unknown ID should report not found")
	}
}

func TestExpire(t *testing.T) {
	m := NewManager(time.Minute, models.Profile{})
	old := m.Create()
	fresh := m.Create()

	old.Touch(time.Now().Add(-2 * time.Minute))
	fresh.Touch(time.Now())

	if removed := m.expire(time.Now()); removed != 1 {
		t.Fatalf("expected 1 expired session, got %d", removed)
	}
	if _, ok := m.Get(old.ID); ok {
		t.Error("idle session should be gone")
	}
	if _, ok := m.Get(fresh.ID); !ok {
		t.Error("active session should survive")
	}
}

func TestResetAuth(t *testing.T) {
	m := NewManager(time.Minute, models.Profile{})
	s := m.Create()
	s.LoggedIn = true
	s.Username = "alice"
	s.Profile = models.Profile{Currency: "USD"}
	s.DraftGoals = []models.Goal{{Name: "car"}}

	s.ResetAuth()

	if s.LoggedIn || s.Username != "" {
		t.Error("auth fields should be cleared")
	}
	if s.Profile.Currency != "" || s.DraftGoals != nil {
		t.Error("profile working copy and drafts should be cleared")
	}
}
