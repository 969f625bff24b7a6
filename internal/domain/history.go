package domain

import (
	"strings"
	"time"
)

// HistoryEntry records one answered prompt.
type HistoryEntry struct {
	ID        string    `json:"id"`
	Prompt    string    `json:"prompt"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}

// History is ordered most-recent first and never exceeds its limit.
type History struct {
	Entries []HistoryEntry
	Limit   int
}

// NewHistory wraps entries, trimming them to limit.
func NewHistory(entries []HistoryEntry, limit int) *History {
	if limit <= 0 {
		limit = MaxHistoryEntries
	}
	h := &History{Entries: entries, Limit: limit}
	h.truncate()
	return h
}

// Add prepends an entry. Entries whose prompt or response is blank are
// ignored and Add reports false.
func (h *History) Add(entry HistoryEntry) bool {
	entry.Prompt = strings.TrimSpace(entry.Prompt)
	entry.Response = strings.TrimSpace(entry.Response)
	if entry.Prompt == "" || entry.Response == "" {
		return false
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	h.Entries = append([]HistoryEntry{entry}, h.Entries...)
	h.truncate()
	return true
}

// Len returns the number of stored entries.
func (h *History) Len() int {
	return len(h.Entries)
}

// Search returns entries whose prompt or response contains query.
func (h *History) Search(query string, limit int) []HistoryEntry {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []HistoryEntry
	for _, e := range h.Entries {
		if q != "" && !strings.Contains(strings.ToLower(e.Prompt), q) &&
			!strings.Contains(strings.ToLower(e.Response), q) {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func (h *History) truncate() {
	if len(h.Entries) > h.Limit {
		h.Entries = h.Entries[:h.Limit]
	}
}
