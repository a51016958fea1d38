package geo

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"ipscope/internal/domain/entity"

	"github.com/pkg/errors"
)

// historyFile is the single key under which past searches live.
const historyFile = "history.json"

// MaxHistoryEntries caps the persisted search history. Older entries fall
// off the tail when the cap is exceeded.
const MaxHistoryEntries = 50

// History persists past IP searches, newest first.
type History struct {
	dir string
}

// NewHistory builds a history store rooted at dir.
func NewHistory(dir string) *History {
	return &History{dir: dir}
}

// Add prepends a search result to the stored history and truncates to the
// cap. When the upstream response omits the ip field, the searched address
// is recorded instead. The same IP searched twice yields two entries; no
// deduplication.
func (h *History) Add(record *entity.GeoRecord, searched string) error {
	entries, err := h.Load()
	if err != nil {
		return err
	}

	ip := record.IP
	if ip == "" {
		ip = searched
	}

	entry := entity.HistoryEntry{
		IP:        ip,
		City:      record.City,
		Region:    record.Region,
		Country:   record.Country,
		Timestamp: time.Now().UTC(),
	}

	entries = append([]entity.HistoryEntry{entry}, entries...)
	if len(entries) > MaxHistoryEntries {
		entries = entries[:MaxHistoryEntries]
	}

	return h.save(entries)
}

// Load returns the stored history, newest first. A missing or corrupt file
// counts as an empty history.
func (h *History) Load() ([]entity.HistoryEntry, error) {
	data, err := os.ReadFile(h.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to read history")
	}

	var entries []entity.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, nil
	}

	return entries, nil
}

// Clear removes the stored history.
func (h *History) Clear() error {
	err := os.Remove(h.path())
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "failed to remove history")
	}

	return nil
}

func (h *History) save(entries []entity.HistoryEntry) error {
	if err := os.MkdirAll(h.dir, 0o700); err != nil {
		return errors.Wrap(err, "failed to create history dir")
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return errors.Wrap(err, "failed to encode history")
	}

	if err := os.WriteFile(h.path(), data, 0o600); err != nil {
		return errors.Wrap(err, "failed to write history")
	}

	return nil
}

func (h *History) path() string {
	return filepath.Join(h.dir, historyFile)
}
