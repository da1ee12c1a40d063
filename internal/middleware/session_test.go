package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/optifin/optifin/internal/auth"
	"github.com/optifin/optifin/internal/models"
	"github.com/optifin/optifin/internal/session"
)

func TestWithSession_CreatesAndReuses(t *testing.T) {
	m := session.NewManager(time.Minute, models.Profile{})

	var seen []*session.State
	h := WithSession(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, StateFromContext(r.Context()))
	}))

	// First request: no cookie, a session is created and the cookie set.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/view", nil))

	if len(seen) != 1 || seen[0] == nil {
		t.Fatal("handler should see a session state")
	}
	cookies := rec.Result().Cookies()
	var sid string
	for _, c := range cookies {
		if c.Name == SessionCookie {
			sid = c.Value
		}
	}
	if sid == "" {
		t.Fatal("first response should set the session cookie")
	}
	if sid != seen[0].ID {
		t.Errorf("cookie %q should carry the session ID %q", sid, seen[0].ID)
	}

	// Second request with the cookie: same session, no new cookie.
	rec2 := httptest.NewRecorder()
	req2 := httptest.NewRequest("GET", "/api/view", nil)
	req2.AddCookie(&http.Cookie{Name: SessionCookie, Value: sid})
	h.ServeHTTP(rec2, req2)

	if len(seen) != 2 || seen[1] != seen[0] {
		t.Error("second request should resolve to the same session")
	}
	for _, c := range rec2.Result().Cookies() {
		if c.Name == SessionCookie {
			t.Error("existing sessions should not get a fresh cookie")
		}
	}
}

func TestWithSession_StaleCookieGetsNewSession(t *testing.T) {
	m := session.NewManager(time.Minute, models.Profile{})

	var state *session.State
	h := WithSession(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state = StateFromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/api/view", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "expired-id"})
	h.ServeHTTP(httptest.NewRecorder(), req)

	if state == nil {
		t.Fatal("a stale cookie should still yield a fresh session")
	}
	if state.ID == "expired-id" {
		t.Error("the stale ID must not be reused")
	}
}

// fakeProfiles implements ProfileLoader for testing.
type fakeProfiles struct {
	profile models.Profile
	ok      bool
}

func (f *fakeProfiles) Profile(username string) (models.Profile, bool) {
	return f.profile, f.ok
}

func TestWithAuth_SyncsLoginFromToken(t *testing.T) {
	secret := []byte("secret")
	m := session.NewManager(time.Minute, models.Profile{})
	state := m.Create()

	h := WithAuth(secret, &fakeProfiles{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	token, err := auth.GenerateToken("alice", secret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest("GET", "/api/view", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookie, Value: token})
	h.ServeHTTP(httptest.NewRecorder(), req.WithContext(NewContext(req.Context(), state)))

	if !state.LoggedIn || state.Username != "alice" {
		t.Errorf("valid token should log the session in as alice, got %+v", state)
	}
}

func TestWithAuth_RestoredLoginReloadsProfile(t *testing.T) {
	secret := []byte("secret")
	stored := models.Profile{
		Currency: "USD",
		Goals:    []models.Goal{{Name: "house"}},
	}
	profiles := &fakeProfiles{profile: stored, ok: true}

	// A fresh session, as after the previous one expired; the defaults
	// differ from the stored profile.
	m := session.NewManager(time.Minute, models.Profile{Currency: "EUR"})
	state := m.Create()
	state.DraftGoals = []models.Goal{{Name: "stale draft"}}

	h := WithAuth(secret, profiles)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	token, err := auth.GenerateToken("alice", secret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest("GET", "/api/view", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookie, Value: token})
	h.ServeHTTP(httptest.NewRecorder(), req.WithContext(NewContext(req.Context(), state)))

	if state.Profile.Currency != "USD" {
		t.Errorf("restored login should load the stored profile, got %+v", state.Profile)
	}
	if len(state.Profile.Goals) != 1 || state.Profile.Goals[0].Name != "house" {
		t.Errorf("saved goals should be visible after restore, got %+v", state.Profile.Goals)
	}
	if state.DraftGoals != nil {
		t.Error("drafts from before the restore must be discarded")
	}
}

func TestWithAuth_RestoredLoginUnknownUserKeepsDefaults(t *testing.T) {
	secret := []byte("secret")
	m := session.NewManager(time.Minute, models.Profile{Currency: "EUR"})
	state := m.Create()

	h := WithAuth(secret, &fakeProfiles{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	token, err := auth.GenerateToken("ghost", secret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest("GET", "/api/view", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookie, Value: token})
	h.ServeHTTP(httptest.NewRecorder(), req.WithContext(NewContext(req.Context(), state)))

	if state.Profile.Currency != "EUR" {
		t.Errorf("unknown user keeps the session defaults, got %+v", state.Profile)
	}
}

func TestWithAuth_InvalidTokenLogsOut(t *testing.T) {
	m := session.NewManager(time.Minute, models.Profile{})
	state := m.Create()
	state.LoggedIn = true
	state.Username = "alice"

	h := WithAuth([]byte("secret"), &fakeProfiles{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest("GET", "/api/view", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookie, Value: "garbage"})
	h.ServeHTTP(httptest.NewRecorder(), req.WithContext(NewContext(req.Context(), state)))

	if state.LoggedIn {
		t.Error("an invalid token should log the session out")
	}
}

func TestWithAuth_NoCookieLeavesStateAlone(t *testing.T) {
	m := session.NewManager(time.Minute, models.Profile{})
	state := m.Create()
	state.LoggedIn = true
	state.Username = "alice"

	h := WithAuth([]byte("secret"), &fakeProfiles{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest("GET", "/api/view", nil)
	h.ServeHTTP(httptest.NewRecorder(), req.WithContext(NewContext(req.Context(), state)))

	if !state.LoggedIn {
		t.Error("absence of the cookie is not an error and must not log out")
	}
}
