// Package store keeps the most recently loaded dataset on disk so later
// commands can reuse it.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/tabloom-cli/internal/dataset"
	"github.com/KaramelBytes/tabloom-cli/internal/utils"
)

// Key is the fixed identifier the current dataset is stored under.
const Key = "current"

// ErrCorrupt means the stored file exists but cannot be read back.
var ErrCorrupt = errors.New("stored dataset is corrupt")

// Snapshot is a stored dataset plus metadata.
type Snapshot struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	SavedAt time.Time       `json:"saved_at"`
	Rows    dataset.Dataset `json:"rows"`
}

// Columns returns the working column set of the stored rows.
func (s Snapshot) Columns() []string { return s.Rows.Columns() }

// FileStore holds exactly one dataset as a JSON file under dir.
type FileStore struct {
	dir    string
	logger *slog.Logger
	now    func() time.Time
}

// New returns a store rooted at dir. A nil logger falls back to slog.Default.
func New(dir string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{dir: dir, logger: logger, now: time.Now}
}

func (s *FileStore) path() string { return filepath.Join(s.dir, Key+".json") }

// Save replaces the stored dataset. The write is atomic: a failed save leaves
// the previous dataset in place.
func (s *FileStore) Save(name string, rows dataset.Dataset) (Snapshot, error) {
	if rows == nil {
		rows = dataset.Dataset{}
	}
	snap := Snapshot{
		ID:      uuid.NewString(),
		Name:    name,
		SavedAt: s.now().UTC(),
		Rows:    rows,
	}
	b, err := json.Marshal(snap)
	if err != nil {
		return Snapshot{}, fmt.Errorf("encode dataset: %w", err)
	}
	if err := utils.SafeWriteFile(s.path(), b); err != nil {
		return Snapshot{}, fmt.Errorf("save dataset: %w", err)
	}
	s.logger.Debug("dataset saved", "id", snap.ID, "name", name, "rows", len(rows), "path", s.path())
	return snap, nil
}

// Load returns the stored dataset. ok is false when nothing is stored, which
// is different from a stored empty dataset.
func (s *FileStore) Load() (snap Snapshot, ok bool, err error) {
	b, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Snapshot{}, false, nil
		}
		return Snapshot{}, false, fmt.Errorf("read dataset: %w", err)
	}
	if err := json.Unmarshal(b, &snap); err != nil {
		return Snapshot{}, false, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if snap.Rows == nil {
		snap.Rows = dataset.Dataset{}
	}
	s.logger.Debug("dataset loaded", "id", snap.ID, "rows", len(snap.Rows))
	return snap, true, nil
}

// Clear removes the stored dataset. Clearing an empty store is not an error.
func (s *FileStore) Clear() error {
	if err := utils.RemoveIfExists(s.path()); err != nil {
		return fmt.Errorf("clear dataset: %w", err)
	}
	s.logger.Debug("dataset cleared", "path", s.path())
	return nil
}
