package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/doeshing/saurus-go/internal/infrastructure/config"
)

func TestBuildContainerSurvivesUnwritableLogFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	blocker := filepath.Join(home, "blocker")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(home, "config.yaml")
	cfgYAML := "logging:\n  level: info\n  file: " + filepath.Join(blocker, "saurus.log") + "\n"
	if err := os.WriteFile(cfgPath, []byte(cfgYAML), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.ConfigEnvVar, cfgPath)

	c, err := BuildContainer(context.Background(), false)
	if err != nil {
		t.Fatalf("BuildContainer() error = %v", err)
	}
	defer c.Close()

	if c.Doctor == nil || c.ConfigLoader == nil {
		t.Fatal("expected doctor and config loader to be wired")
	}
	if c.ConfigLoader.Path() != cfgPath {
		t.Fatalf("config path = %s, want %s", c.ConfigLoader.Path(), cfgPath)
	}
}
