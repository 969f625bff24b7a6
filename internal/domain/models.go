package domain

import (
	"strings"
	"time"
)

// LocalModel describes a model installed on the local Ollama server.
type LocalModel struct {
	Name       string
	Size       int64
	ModifiedAt time.Time
}

// PullProgress reports model download progress.
type PullProgress struct {
	Status    string
	Total     int64
	Completed int64
}

// Percent returns completion in the range 0..100.
func (p PullProgress) Percent() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Completed) / float64(p.Total) * 100
}

// HasLocalModel reports whether name is installed, accepting an implicit
// ":latest" or any tag of the same base name.
func HasLocalModel(models []LocalModel, name string) bool {
	name = strings.TrimSpace(name)
	for _, m := range models {
		if m.Name == name || m.Name == name+":latest" || strings.HasPrefix(m.Name, name+":") {
			return true
		}
	}
	return false
}
