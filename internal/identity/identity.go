// Package identity keeps the local player profile: a generated user id plus
// small preferences. Profiles live in the platform data directory via gdata;
// when that is unavailable the profile is kept in memory for the process.
package identity

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// AppName is the gdata application directory.
const AppName = "catrun"

const (
	profileObject   = "profile"
	profileProperty = "local"
)

// Profile is the persisted player profile.
type Profile struct {
	UserID   string `yaml:"user_id"`
	LastName string `yaml:"last_name"` // Prefills the name prompt
	Muted    bool   `yaml:"muted"`
}

// propStore is the part of *gdata.Manager the store uses.
type propStore interface {
	ObjectPropExists(objectKey, propKey string) bool
	LoadObjectProp(objectKey, propKey string) ([]byte, error)
	SaveObjectProp(objectKey, propKey string, data []byte) error
}

// Store loads and saves the profile.
type Store struct {
	mu      sync.Mutex
	props   propStore // nil in memory-only mode
	profile Profile
	logger  *log.Logger
}

// Open opens the profile store under appName. Any failure to reach the data
// directory falls back to an in-memory profile; Open never fails.
func Open(appName string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		logger.Warn("profile storage unavailable, using a temporary id", "error", err)
		return newStore(nil, logger)
	}
	return newStore(m, logger)
}

// NewMemoryStore returns a store that never persists.
func NewMemoryStore() *Store {
	return newStore(nil, log.Default())
}

func newStore(props propStore, logger *log.Logger) *Store {
	s := &Store{props: props, logger: logger}
	if err := s.load(); err != nil {
		logger.Warn("cannot load profile, starting fresh", "error", err)
	}
	if s.profile.UserID == "" {
		s.profile.UserID = uuid.NewString()
		if err := s.save(); err != nil {
			logger.Warn("cannot save profile", "error", err)
		}
	}
	return s
}

// Persistent reports whether the profile survives the process.
func (s *Store) Persistent() bool {
	return s.props != nil
}

// UserID returns the stable user id.
func (s *Store) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.UserID
}

// Profile returns a copy of the current profile.
func (s *Store) Profile() Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// SetLastName remembers the last submitted name.
func (s *Store) SetLastName(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile.LastName = name
	return s.save()
}

// SetMuted remembers the mute preference.
func (s *Store) SetMuted(muted bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile.Muted = muted
	return s.save()
}

func (s *Store) load() error {
	if s.props == nil || !s.props.ObjectPropExists(profileObject, profileProperty) {
		return nil
	}
	data, err := s.props.LoadObjectProp(profileObject, profileProperty)
	if err != nil {
		return fmt.Errorf("identity: load profile: %w", err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("identity: decode profile: %w", err)
	}
	if p.UserID != "" {
		if _, err := uuid.Parse(p.UserID); err != nil {
			return fmt.Errorf("identity: bad user id %q: %w", p.UserID, err)
		}
	}
	s.profile = p
	return nil
}

// save must be called with mu held or before the store is shared.
func (s *Store) save() error {
	if s.props == nil {
		return nil
	}
	data, err := yaml.Marshal(s.profile)
	if err != nil {
		return fmt.Errorf("identity: encode profile: %w", err)
	}
	if err := s.props.SaveObjectProp(profileObject, profileProperty, data); err != nil {
		return fmt.Errorf("identity: save profile: %w", err)
	}
	return nil
}
