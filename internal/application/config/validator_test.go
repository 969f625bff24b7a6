package config

import (
	"strings"
	"testing"

	"github.com/doeshing/saurus-go/internal/domain"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.Config)
		wantErr string
	}{
		{name: "zero config is valid", mutate: func(*domain.Config) {}},
		{name: "relative install dir", mutate: func(c *domain.Config) { c.Backend.InstallDir = "backend" }, wantErr: "install_dir"},
		{name: "absolute script", mutate: func(c *domain.Config) { c.Backend.Script = "/tmp/backend.py" }, wantErr: "backend.script"},
		{name: "escaping executable", mutate: func(c *domain.Config) { c.Backend.Executable = "../python" }, wantErr: "backend.executable"},
		{name: "bad timeout", mutate: func(c *domain.Config) { c.Backend.Timeout = "soon" }, wantErr: "timeout"},
		{name: "bad ollama host", mutate: func(c *domain.Config) { c.Ollama.Host = "localhost:11434" }, wantErr: "ollama.host"},
		{name: "combo with slash", mutate: func(c *domain.Config) { c.Hotkey.Combo = "cmd/g" }, wantErr: "hotkey.combo"},
		{name: "history above cap", mutate: func(c *domain.Config) { c.History.Limit = 26 }, wantErr: "history.limit"},
		{name: "unknown log level", mutate: func(c *domain.Config) { c.Logging.Level = "trace" }, wantErr: "logging.level"},
		{
			name: "full valid config",
			mutate: func(c *domain.Config) {
				c.Backend.InstallDir = "/opt/saurus"
				c.Backend.Timeout = "2m"
				c.Ollama.Host = "https://ollama.internal"
				c.History.Limit = 10
				c.Logging.Level = "DEBUG"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg domain.Config
			tt.mutate(&cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}
