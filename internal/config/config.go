// Package config is the single source of truth for dm's settings. A Store
// owns a fixed universe of (section, name) string values seeded from
// built-in defaults, optionally overlaid from a located or explicitly given
// settings file, and mutated by command handlers. Changed values are
// persisted immediately; saving with no intervening change is byte-stable.
package config

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/caltechlibrary/documentarist/internal/status"
)

// SectionCore is the section holding dm's own settings; the remaining
// sections each belong to one external OCR service.
const SectionCore = "documentarist"

// ErrUnknownSetting reports a (section, name) pair outside the built-in
// universe. Setting names are fixed at compile time, so hitting this is a
// programming error, not user input to recover from.
var ErrUnknownSetting = errors.New("unknown setting")

type setting struct {
	name  string
	value string
}

// defaults defines the full Setting universe and its built-in values. File
// loads and runtime sets overwrite these values; nothing ever adds to or
// removes from the universe. Emit order for Save and Settings follows this
// declaration order. The fileSchema in save.go mirrors this layout and must
// be kept in step with it.
var defaults = []struct {
	section string
	keys    []setting
}{
	{SectionCore, []setting{
		{"quiet", "false"},
		{"debug", "false"},
		{"basename", "document"},
		{"outputdir", "."},
	}},
	{"amazon", []setting{{"creds_file", ""}}},
	{"google", []setting{{"creds_file", ""}}},
	{"microsoft", []setting{{"creds_file", ""}}},
}

// Store holds every setting for the process lifetime. It is constructed
// once in main and passed by reference; it is not safe for concurrent use
// and does not need to be.
type Store struct {
	values map[string]map[string]string

	// file is the active settings file: the explicit --configfile path if
	// one was given, else the located file, else the default per-user path
	// (which may not exist yet; it is created on first save).
	file string
}

// Open builds the Store: defaults first, then the settings file. When
// explicit is non-empty it must name an existing file; pointing dm at a
// missing file is a bad argument, not something to silently fall back from.
// With no explicit path the usual search order applies and finding nothing
// simply leaves the defaults standing.
func Open(explicit string) (*Store, error) {
	s := &Store{values: make(map[string]map[string]string, len(defaults))}
	for _, sec := range defaults {
		s.values[sec.section] = make(map[string]string, len(sec.keys))
		for _, k := range sec.keys {
			s.values[sec.section][k.name] = k.value
		}
	}

	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return nil, status.BadArgf("configuration file does not exist: %s", explicit)
			}
			return nil, status.FileErrf("cannot access configuration file %s: %v", explicit, err)
		}
		if err := s.Load(explicit); err != nil {
			return nil, err
		}
		return s, nil
	}

	path, found, err := locate()
	if err != nil {
		return nil, status.FileErrf("cannot determine configuration directory: %v", err)
	}
	s.file = path
	if found {
		if err := s.Load(path); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Load reads the settings file at path and overlays its values onto the
// Store, key by key. Keys in the file that are not part of the universe are
// ignored; files written by older versions may carry them. The path becomes
// the active file, so later loads override earlier ones.
func (s *Store) Load(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return status.FileErrf("cannot read configuration file %s: %v", path, err)
	}

	for _, sec := range defaults {
		for _, k := range sec.keys {
			key := sec.section + "." + k.name
			if v.IsSet(key) {
				s.values[sec.section][k.name] = v.GetString(key)
			}
		}
	}
	s.file = path
	return nil
}

// Get returns the current value of a setting.
func (s *Store) Get(section, name string) (string, error) {
	sec, ok := s.values[section]
	if !ok {
		return "", fmt.Errorf("%w: %s.%s", ErrUnknownSetting, section, name)
	}
	value, ok := sec[name]
	if !ok {
		return "", fmt.Errorf("%w: %s.%s", ErrUnknownSetting, section, name)
	}
	return value, nil
}

// Set updates a setting and persists the Store immediately, so a crash
// after a successful Set cannot lose the change. An empty value is a no-op
// and triggers no write at all; so does setting a value equal to the stored
// one.
func (s *Store) Set(section, name, value string) error {
	current, err := s.Get(section, name)
	if err != nil {
		return err
	}
	if value == "" || value == current {
		return nil
	}
	s.values[section][name] = value
	return s.Save()
}

// Save serializes the full Setting universe to the active file, creating
// the parent directory first if needed. Saving twice with no intervening
// change produces byte-identical output.
func (s *Store) Save() error {
	return s.SaveAs(s.file)
}

// SaveAs is Save with an explicit destination. It does not change the
// active file.
func (s *Store) SaveAs(path string) error {
	data, err := toml.Marshal(s.schema())
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return status.FileErrf("cannot create configuration directory %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return status.FileErrf("cannot write configuration file %s: %v", path, err)
	}
	return nil
}

// Settings yields every known setting as ("section.name", value) pairs in
// declaration order: the core section first, then the service sections,
// each with its keys in defined order. The order is identical across runs.
func (s *Store) Settings() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, sec := range defaults {
			for _, k := range sec.keys {
				if !yield(sec.section+"."+k.name, s.values[sec.section][k.name]) {
					return
				}
			}
		}
	}
}

// Path returns the active settings file path.
func (s *Store) Path() string { return s.file }

// Dir returns the directory holding the active settings file. Managed
// credential files live next to the settings file.
func (s *Store) Dir() string { return filepath.Dir(s.file) }
