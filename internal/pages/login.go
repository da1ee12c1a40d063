package pages

import (
	"errors"
	"fmt"

	"github.com/optifin/optifin/internal/credstore"
	"github.com/optifin/optifin/internal/models"
	"github.com/optifin/optifin/internal/router"
	"github.com/optifin/optifin/internal/session"
)

// ErrInvalidCredentials is surfaced as a notice on a failed login.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Credentials defines the credential-store operations the login page needs.
type Credentials interface {
	// Register creates a new user; credstore.ErrDuplicateUsername on conflict.
	Register(username, password string) error
	// Verify reports whether the password matches the stored credential.
	Verify(username, password string) bool
	// Profile returns the stored profile and whether the user exists.
	Profile(username string) (models.Profile, bool)
}

// Login handles registration, login, and logout.
type Login struct {
	// Store performs the underlying credential operations.
	Store Credentials
}

func (*Login) ID() models.PageID { return models.PageLogin }
func (*Login) Title() string     { return "Sign in" }

func (*Login) Render(s *session.State) map[string]any {
	return map[string]any{
		"loggedIn": s.LoggedIn,
		"username": s.Username,
		"fields":   []string{"username", "password"},
	}
}

func (p *Login) Handle(s *session.State, ev router.Event) error {
	switch ev.Action {
	case "register":
		username, password := ev.Payload["username"], ev.Payload["password"]
		if username == "" || password == "" {
			return fmt.Errorf("username and password are required")
		}
		if err := p.Store.Register(username, password); err != nil {
			if errors.Is(err, credstore.ErrDuplicateUsername) {
				return err
			}
			return fmt.Errorf("registration failed: %w", err)
		}
		s.Notice = "account created, you can sign in now"
		return nil

	case "login":
		username, password := ev.Payload["username"], ev.Payload["password"]
		if !p.Store.Verify(username, password) {
			return ErrInvalidCredentials
		}
		s.LoggedIn = true
		s.Username = username
		if profile, ok := p.Store.Profile(username); ok {
			s.Profile = profile
		}
		s.DraftGoals = nil
		s.CurrentPage = models.PageSegmentHub
		return nil

	case "logout":
		s.ResetAuth()
		s.CurrentPage = models.PageLogin
		return nil

	default:
		return fmt.Errorf("unknown action %q", ev.Action)
	}
}
