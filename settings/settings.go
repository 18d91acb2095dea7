// Package settings holds the process-wide simulation settings. The settings
// are loaded once, from a TOML file, and stay read-only for the rest of the
// process lifetime.
package settings

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
)

// DefaultPath is the settings file used when no path is given.
const DefaultPath = "sjq.toml"

// ErrAlreadyInitialized is returned when Init or InitWithFile is called after
// the settings have already been loaded.
var ErrAlreadyInitialized = errors.New("settings: already initialized")

// Settings carries the flags that select the fast approximation paths of the
// simulator. Field order matters to downstream consumers and must not change.
type Settings struct {
	FastRead            bool `toml:"fast_read"`
	FastIcnt            bool `toml:"fast_icnt"`
	NoConflictActToGact bool `toml:"no_conflict_act_to_gact"`
	NoConflictGactToAct bool `toml:"no_conflict_gact_to_act"`
}

var (
	initLock sync.Mutex
	current  atomic.Pointer[Settings]
)

// Init loads the settings from DefaultPath. It fails if the file cannot be
// read or parsed, leaving the store uninitialized, or if the settings have
// already been loaded.
func Init() error {
	return InitWithFile(DefaultPath)
}

// InitWithFile loads the settings from the given path. It fails if the file
// cannot be read or parsed, leaving the store uninitialized, or if the
// settings have already been loaded.
func InitWithFile(path string) error {
	initLock.Lock()
	defer initLock.Unlock()

	if current.Load() != nil {
		return ErrAlreadyInitialized
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("settings: reading %s: %w", path, err)
	}

	s := &Settings{}
	if err := toml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("settings: parsing %s: %w", path, err)
	}

	logrus.Infof("Settings loaded from %s: %+v", path, *s)
	current.Store(s)

	return nil
}

// Get returns the loaded settings, or nil if no Init call has succeeded yet.
// Callers must check for nil before use. The returned value must be treated
// as read-only.
func Get() *Settings {
	return current.Load()
}
