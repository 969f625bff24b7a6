// Package history stores the bounded prompt history inside the preference
// store.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/doeshing/saurus-go/internal/domain"
	"github.com/doeshing/saurus-go/internal/ports"
)

// Repository keeps the history as one JSON array under the "history" key.
type Repository struct {
	prefs ports.PreferenceStore
	limit int
	mu    sync.Mutex
}

// NewRepository caps history at limit entries (25 when limit <= 0).
func NewRepository(prefs ports.PreferenceStore, limit int) *Repository {
	if limit <= 0 || limit > domain.MaxHistoryEntries {
		limit = domain.MaxHistoryEntries
	}
	return &Repository{prefs: prefs, limit: limit}
}

// Add records a prompt/response pair. Blank pairs are skipped and Add reports
// false without touching the store.
func (r *Repository) Add(prompt, response string) (domain.HistoryEntry, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, err := r.load()
	if err != nil {
		return domain.HistoryEntry{}, false, err
	}
	entry := domain.HistoryEntry{ID: uuid.NewString(), Prompt: prompt, Response: response}
	if !h.Add(entry) {
		return domain.HistoryEntry{}, false, nil
	}
	if err := r.save(h); err != nil {
		return domain.HistoryEntry{}, false, err
	}
	return h.Entries[0], true, nil
}

// Entries returns the stored history, most recent first.
func (r *Repository) Entries() ([]domain.HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, err := r.load()
	if err != nil {
		return nil, err
	}
	return h.Entries, nil
}

// Clear removes every entry.
func (r *Repository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.prefs.Delete(string(domain.PrefHistory))
}

// ExportJSONL writes one entry per line to dest.
func (r *Repository) ExportJSONL(dest string) (int, error) {
	entries, err := r.Entries()
	if err != nil {
		return 0, err
	}
	file, err := os.Create(dest)
	if err != nil {
		return 0, err
	}
	defer file.Close()
	enc := json.NewEncoder(file)
	for _, e := range entries {
		if err := enc.Encode(e); err != nil {
			return 0, err
		}
	}
	return len(entries), nil
}

func (r *Repository) load() (*domain.History, error) {
	raw, ok, err := r.prefs.Get(string(domain.PrefHistory))
	if err != nil {
		return nil, err
	}
	var entries []domain.HistoryEntry
	if ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &entries); err != nil {
			return nil, fmt.Errorf("decode history: %w", err)
		}
	}
	return domain.NewHistory(entries, r.limit), nil
}

func (r *Repository) save(h *domain.History) error {
	data, err := json.Marshal(h.Entries)
	if err != nil {
		return err
	}
	return r.prefs.Set(string(domain.PrefHistory), string(data))
}

var _ ports.HistoryRepository = (*Repository)(nil)
