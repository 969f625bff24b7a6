// Package ollama lists and installs models on the local Ollama server.
package ollama

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/ollama/ollama/api"

	"github.com/doeshing/saurus-go/internal/domain"
	"github.com/doeshing/saurus-go/internal/ports"
)

// Catalog implements ports.ModelCatalog with the Ollama API client.
type Catalog struct {
	client *api.Client
	host   string
}

// NewCatalog connects to host (e.g. http://localhost:11434).
func NewCatalog(host string, httpClient *http.Client) (*Catalog, error) {
	if strings.TrimSpace(host) == "" {
		host = domain.DefaultOllamaHost
	}
	base, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host %q: %w", host, err)
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Catalog{client: api.NewClient(base, httpClient), host: host}, nil
}

// List returns installed models sorted by name.
func (c *Catalog) List(ctx context.Context) ([]domain.LocalModel, error) {
	resp, err := c.client.List(ctx)
	if err != nil {
		return nil, c.wrap(err)
	}
	models := make([]domain.LocalModel, 0, len(resp.Models))
	for _, m := range resp.Models {
		models = append(models, domain.LocalModel{Name: m.Name, Size: m.Size, ModifiedAt: m.ModifiedAt})
	}
	sort.Slice(models, func(i, j int) bool { return models[i].Name < models[j].Name })
	return models, nil
}

// Pull downloads name, reporting each progress line.
func (c *Catalog) Pull(ctx context.Context, name string, progress func(domain.PullProgress)) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("model name is required")
	}
	err := c.client.Pull(ctx, &api.PullRequest{Model: name}, func(resp api.ProgressResponse) error {
		if progress != nil {
			progress(domain.PullProgress{Status: resp.Status, Total: resp.Total, Completed: resp.Completed})
		}
		return nil
	})
	if err != nil {
		return c.wrap(err)
	}
	return nil
}

func (c *Catalog) wrap(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var status api.StatusError
	if errors.As(err, &status) {
		return fmt.Errorf("ollama at %s: %s", c.host, status.Error())
	}
	return fmt.Errorf("ollama at %s unreachable (is `ollama serve` running?): %w", c.host, err)
}

var _ ports.ModelCatalog = (*Catalog)(nil)
