package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/newor0599/ignis/internal/model"
)

// Snapshot is the on-disk representation of the notification history:
// the persisted id counter and every tracked notification.
type Snapshot struct {
	IDCounter     uint32               `json:"id_counter"`
	Notifications []model.Notification `json:"notifications"`
}

// EmptySnapshot returns the canonical empty history skeleton.
func EmptySnapshot() *Snapshot {
	return &Snapshot{
		IDCounter:     0,
		Notifications: []model.Notification{},
	}
}

// Persistence defines the interface for history storage.
type Persistence interface {
	// Load reads the history snapshot. Corruption is recovered locally
	// by resetting the file to the empty skeleton; it is never surfaced
	// as an error.
	Load() (*Snapshot, error)

	// Save replaces the stored snapshot.
	Save(snap *Snapshot) error
}

// JSONPersistence stores the history as a single JSON file. Writes go
// through a temp file and rename so a crash mid-write cannot corrupt the
// previous snapshot.
type JSONPersistence struct {
	path   string
	logger *slog.Logger
}

// NewJSONPersistence creates persistence backed by the file at path,
// creating the parent directory if needed.
func NewJSONPersistence(path string, logger *slog.Logger) (*JSONPersistence, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	return &JSONPersistence{path: path, logger: logger}, nil
}

// Path returns the path of the history file.
func (p *JSONPersistence) Path() string {
	return p.path
}

// Load reads the snapshot from disk. A missing file yields the empty
// skeleton (and writes it); an unreadable or invalid file is logged,
// discarded, and rewritten as the empty skeleton.
func (p *JSONPersistence) Load() (*Snapshot, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read history file %s: %w", p.path, err)
		}
		snap := EmptySnapshot()
		if err := p.Save(snap); err != nil {
			return nil, err
		}
		return snap, nil
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		p.logger.Warn("notification history file is corrupted, resetting", "path", p.path, "error", err)
		return p.reset()
	}
	if snap.Notifications == nil {
		snap.Notifications = []model.Notification{}
	}

	return &snap, nil
}

// reset rewrites the file with the empty skeleton.
func (p *JSONPersistence) reset() (*Snapshot, error) {
	snap := EmptySnapshot()
	if err := p.Save(snap); err != nil {
		return nil, fmt.Errorf("failed to rewrite history skeleton: %w", err)
	}
	return snap, nil
}

// Save writes the snapshot atomically.
func (p *JSONPersistence) Save(snap *Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := p.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmpPath, p.path)
}
