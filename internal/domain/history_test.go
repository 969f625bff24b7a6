package domain_test

import (
	"fmt"
	"testing"

	"github.com/doeshing/saurus-go/internal/domain"
)

func TestHistoryAddCapsAtLimit(t *testing.T) {
	h := domain.NewHistory(nil, domain.MaxHistoryEntries)
	for i := 0; i < 26; i++ {
		ok := h.Add(domain.HistoryEntry{
			ID:       fmt.Sprintf("id-%d", i),
			Prompt:   fmt.Sprintf("prompt %d", i),
			Response: fmt.Sprintf("response %d", i),
		})
		if !ok {
			t.Fatalf("Add(%d) rejected", i)
		}
	}

	if h.Len() != 25 {
		t.Fatalf("expected 25 entries, got %d", h.Len())
	}
	if h.Entries[0].Prompt != "prompt 25" {
		t.Fatalf("expected most recent first, got %q", h.Entries[0].Prompt)
	}
	for _, e := range h.Entries {
		if e.ID == "id-0" {
			t.Fatal("oldest entry should have been dropped")
		}
	}
}

func TestHistoryAddIgnoresBlank(t *testing.T) {
	tests := []struct {
		name     string
		prompt   string
		response string
	}{
		{name: "blank prompt", prompt: "   ", response: "answer"},
		{name: "blank response", prompt: "question", response: "\n\t"},
		{name: "both empty", prompt: "", response: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := domain.NewHistory([]domain.HistoryEntry{{ID: "a", Prompt: "p", Response: "r"}}, 25)
			if h.Add(domain.HistoryEntry{Prompt: tt.prompt, Response: tt.response}) {
				t.Fatal("expected Add to reject entry")
			}
			if h.Len() != 1 {
				t.Fatalf("count changed to %d", h.Len())
			}
		})
	}
}

func TestHistoryAddTrimsAndStamps(t *testing.T) {
	h := domain.NewHistory(nil, 0)
	h.Add(domain.HistoryEntry{Prompt: "  hi  ", Response: "\nthere\n"})
	got := h.Entries[0]
	if got.Prompt != "hi" || got.Response != "there" {
		t.Fatalf("entry not trimmed: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}
	if h.Limit != domain.MaxHistoryEntries {
		t.Fatalf("expected default limit, got %d", h.Limit)
	}
}

func TestNewHistoryTruncatesLoadedEntries(t *testing.T) {
	entries := make([]domain.HistoryEntry, 30)
	h := domain.NewHistory(entries, 25)
	if h.Len() != 25 {
		t.Fatalf("expected 25, got %d", h.Len())
	}
}

func TestHistorySearch(t *testing.T) {
	h := domain.NewHistory([]domain.HistoryEntry{
		{ID: "3", Prompt: "rewrite email", Response: "Dear team"},
		{ID: "2", Prompt: "explain code", Response: "It loops"},
		{ID: "1", Prompt: "Email subject", Response: "Re: launch"},
	}, 25)

	got := h.Search("email", 0)
	if len(got) != 2 || got[0].ID != "3" || got[1].ID != "1" {
		t.Fatalf("unexpected search result %+v", got)
	}
	if got := h.Search("", 1); len(got) != 1 {
		t.Fatalf("expected limit to apply, got %d", len(got))
	}
}
