// Package options implements the named key/value option store backing the
// daemon's runtime settings (do-not-disturb, popup timeout, popup limit).
// Options and their values are persisted to a flat JSON file.
package options

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// OptionNotFoundError is returned when an option is referenced before it
// has been created.
type OptionNotFoundError struct {
	Name string
}

func (e *OptionNotFoundError) Error() string {
	return fmt.Sprintf("option %q does not exist", e.Name)
}

// OptionExistsError is returned when an option is created twice without
// allowing "already exists".
type OptionExistsError struct {
	Name string
}

func (e *OptionExistsError) Error() string {
	return fmt.Sprintf("option %q already exists", e.Name)
}

// ChangeFunc is invoked with the new value when an option changes.
type ChangeFunc func(value any)

// Service stores options and their values, persisting every change to a
// flat JSON file mapping option name to value.
type Service struct {
	mu        sync.RWMutex
	path      string
	logger    *slog.Logger
	values    map[string]any
	listeners map[string][]ChangeFunc
}

// NewService creates a Service backed by the JSON file at path.
// A missing file is created empty; an unreadable one is reset to empty
// with a warning.
func NewService(path string, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Service{
		path:      path,
		logger:    logger,
		values:    make(map[string]any),
		listeners: make(map[string][]ChangeFunc),
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create options directory: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read options file %s: %w", path, err)
		}
		if err := s.sync(); err != nil {
			return nil, err
		}
		return s, nil
	}

	if err := json.Unmarshal(data, &s.values); err != nil {
		logger.Warn("options file is corrupted, resetting", "path", path, "error", err)
		s.values = make(map[string]any)
		if err := s.sync(); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Path returns the path of the backing file.
func (s *Service) Path() string {
	return s.path
}

// Create registers an option with a default value. If the option already
// exists its current value is preserved; with existsOK false that case is
// an OptionExistsError.
func (s *Service) Create(name string, def any, existsOK bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.values[name]; ok {
		if !existsOK {
			return &OptionExistsError{Name: name}
		}
		return nil
	}

	s.values[name] = def
	return s.sync()
}

// Get returns the current value of an option.
func (s *Service) Get(name string) (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[name]
	if !ok {
		return nil, &OptionNotFoundError{Name: name}
	}
	return v, nil
}

// GetBool returns the option value coerced to bool.
func (s *Service) GetBool(name string) (bool, error) {
	v, err := s.Get(name)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("option %q is not a bool (got %T)", name, v)
	}
	return b, nil
}

// GetInt returns the option value coerced to int. JSON numbers decode as
// float64, so both forms are accepted.
func (s *Service) GetInt(name string) (int, error) {
	v, err := s.Get(name)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("option %q is not a number (got %T)", name, v)
	}
}

// Set updates the value of an existing option, persists it, and notifies
// registered listeners.
func (s *Service) Set(name string, value any) error {
	s.mu.Lock()
	if _, ok := s.values[name]; !ok {
		s.mu.Unlock()
		return &OptionNotFoundError{Name: name}
	}
	s.values[name] = value
	if err := s.sync(); err != nil {
		s.mu.Unlock()
		return err
	}
	listeners := append([]ChangeFunc(nil), s.listeners[name]...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(value)
	}
	return nil
}

// OnChange registers a callback invoked whenever the named option's value
// changes, either via Set or an external reload.
func (s *Service) OnChange(name string, fn ChangeFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.values[name]; !ok {
		return &OptionNotFoundError{Name: name}
	}
	s.listeners[name] = append(s.listeners[name], fn)
	return nil
}

// Reload re-reads the backing file and fires change callbacks for every
// option whose value differs from the in-memory one. Unknown keys in the
// file are adopted as-is; a corrupt file is ignored.
func (s *Service) Reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to read options file %s: %w", s.path, err)
	}

	var loaded map[string]any
	if err := json.Unmarshal(data, &loaded); err != nil {
		s.logger.Warn("ignoring corrupt options file on reload", "path", s.path, "error", err)
		return nil
	}

	type change struct {
		fns   []ChangeFunc
		value any
	}
	var changes []change

	s.mu.Lock()
	for name, value := range loaded {
		old, existed := s.values[name]
		s.values[name] = value
		if existed && !equalValue(old, value) {
			changes = append(changes, change{
				fns:   append([]ChangeFunc(nil), s.listeners[name]...),
				value: value,
			})
		}
	}
	s.mu.Unlock()

	for _, c := range changes {
		for _, fn := range c.fns {
			fn(c.value)
		}
	}
	return nil
}

// sync writes all options to disk. Caller must hold the lock.
// The write goes through a temp file and rename so a crash cannot leave a
// half-written options file.
func (s *Service) sync() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmpPath, s.path)
}

// equalValue compares option values across the int/float64 boundary that
// JSON round-trips introduce.
func equalValue(a, b any) bool {
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			return af == bf
		}
		return false
	}
	return a == b
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
