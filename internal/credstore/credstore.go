// Package credstore provides the file-backed credential store mapping
// usernames to salted password hashes and user profiles.
package credstore

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/optifin/optifin/internal/models"
	"go.uber.org/zap"
)

// ErrDuplicateUsername is returned by Register when the username is taken.
var ErrDuplicateUsername = errors.New("username already exists")

// Store is a single-file credential store. The whole file is rewritten on
// every registration; there is no locking against concurrent writers.
type Store struct {
	path     string
	defaults models.Profile
	log      *zap.Logger

	mu    sync.Mutex
	users map[string]models.User
}

// New creates a Store backed by the file at path. New profiles are
// initialized from defaults. Call Load before first use.
func New(path string, defaults models.Profile, log *zap.Logger) *Store {
	return &Store{
		path:     path,
		defaults: defaults,
		log:      log,
		users:    make(map[string]models.User),
	}
}

// Load reads the backing file into memory. A missing or unparsable file
// degrades to an empty store and returns nil, so first runs and corrupt
// files never block startup.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = make(map[string]models.User)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("cannot read credential file, starting empty",
				zap.String("path", s.path), zap.Error(err))
		}
		return nil
	}
	if err := json.Unmarshal(data, &s.users); err != nil {
		s.log.Warn("credential file is not valid JSON, starting empty",
			zap.String("path", s.path), zap.Error(err))
		s.users = make(map[string]models.User)
		return nil
	}
	return nil
}

// save rewrites the backing file wholesale. It writes to a temp file in the
// same directory and renames it over the target. Callers hold s.mu.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.users, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding credential store: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".users-*.json")
	if err != nil {
		return fmt.Errorf("creating temp credential file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing credential file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing credential file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing credential file: %w", err)
	}
	return nil
}

// Register creates a new user with a fresh random salt and persists the
// store. Returns ErrDuplicateUsername if the username is already present;
// usernames are case-sensitive.
func (s *Store) Register(username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[username]; ok {
		return ErrDuplicateUsername
	}

	saltBytes := make([]byte, 16)
	if _, err := rand.Read(saltBytes); err != nil {
		return fmt.Errorf("generating salt: %w", err)
	}
	salt := hex.EncodeToString(saltBytes)

	s.users[username] = models.User{
		Password: hashPassword(salt, password) + ":" + salt,
		Profile:  s.defaults,
	}

	if err := s.save(); err != nil {
		delete(s.users, username)
		return err
	}
	return nil
}

// Verify reports whether password matches the stored credential for
// username. Unknown users and malformed stored records yield false,
// never an error.
func (s *Store) Verify(username, password string) bool {
	s.mu.Lock()
	user, ok := s.users[username]
	s.mu.Unlock()
	if !ok {
		return false
	}

	parts := strings.Split(user.Password, ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return false
	}
	want, got := parts[0], hashPassword(parts[1], password)
	return subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1
}

// Profile returns the stored profile for username, and whether the user
// exists.
func (s *Store) Profile(username string) (models.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[username]
	if !ok {
		return models.Profile{}, false
	}
	return user.Profile, true
}

// SaveProfile replaces the stored profile for username and persists the
// store. This is the only path that writes goals to disk.
func (s *Store) SaveProfile(username string, profile models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[username]
	if !ok {
		return fmt.Errorf("save profile: unknown user %q", username)
	}
	prev := user.Profile
	user.Profile = profile
	s.users[username] = user

	if err := s.save(); err != nil {
		user.Profile = prev
		s.users[username] = user
		return err
	}
	return nil
}

// Len returns the number of stored users.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// hashPassword derives the hex digest of sha256(salt || password). The
// construction is fixed by the credential-file format.
func hashPassword(salt, password string) string {
	sum := sha256.Sum256([]byte(salt + password))
	return hex.EncodeToString(sum[:])
}
