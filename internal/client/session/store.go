// Package session holds the client-side session: the issued token and the
// public profile, persisted between CLI invocations the way the original
// app kept them in browser storage.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"

	"ipscope/internal/client/api"

	"github.com/pkg/errors"
)

// sessionFile is the single key under which the token+profile pair lives.
const sessionFile = "session.json"

// State is the client-side authentication state.
type State int

const (
	// Anonymous means no stored session is present.
	Anonymous State = iota
	// Authenticated means a token+profile pair is stored. This is pure
	// presence gating: the client does not verify signature or expiry
	// locally; only a server call can reject a stale token.
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}

	return "anonymous"
}

// Store persists the session under a directory, one JSON file per key.
type Store struct {
	dir string
}

// NewStore builds a session store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultDir resolves the per-user state directory for the client.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve user config dir")
	}

	return filepath.Join(base, "ipscope"), nil
}

// Save stores the session. Saving a valid session is the
// Anonymous -> Authenticated transition.
func (s *Store) Save(session *api.Session) error {
	if session == nil || session.Token == "" {
		return errors.New("refusing to save an empty session")
	}

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return errors.Wrap(err, "failed to create session dir")
	}

	data, err := json.Marshal(session)
	if err != nil {
		return errors.Wrap(err, "failed to encode session")
	}

	if err := os.WriteFile(s.path(), data, 0o600); err != nil {
		return errors.Wrap(err, "failed to write session")
	}

	return nil
}

// Load returns the stored session, or nil when none is present. A corrupt
// file counts as no session rather than an error, mirroring how the
// original treated unparseable storage.
func (s *Store) Load() *api.Session {
	data, err := os.ReadFile(s.path())
	if err != nil {
		return nil
	}

	var session api.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil
	}
	if session.Token == "" {
		return nil
	}

	return &session
}

// Clear removes the stored session. This is the explicit logout: the only
// Authenticated -> Anonymous transition.
func (s *Store) Clear() error {
	err := os.Remove(s.path())
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "failed to remove session")
	}

	return nil
}

// State reports the gating state from token presence alone.
func (s *Store) State() State {
	if s.Load() != nil {
		return Authenticated
	}

	return Anonymous
}

func (s *Store) path() string {
	return filepath.Join(s.dir, sessionFile)
}
