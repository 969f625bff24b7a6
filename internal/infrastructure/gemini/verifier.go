// Package gemini checks cloud engine credentials.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/doeshing/saurus-go/internal/domain"
	"github.com/doeshing/saurus-go/internal/ports"
)

// ErrMissingKey is returned when there is no key to verify.
var ErrMissingKey = errors.New("no Gemini API key configured")

// Verifier fetches model metadata to prove an API key works.
type Verifier struct {
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewVerifier checks keys against model (gemini-2.5-flash when empty).
func NewVerifier(model string) *Verifier {
	if strings.TrimSpace(model) == "" {
		model = domain.DefaultCloudModel
	}
	return &Verifier{model: model}
}

// Verify implements ports.CredentialVerifier.
func (v *Verifier) Verify(ctx context.Context, apiKey string) error {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return ErrMissingKey
	}
	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: v.httpClient,
	}
	if v.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: v.baseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	if _, err := client.Models.Get(ctx, v.model, nil); err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return rejected(apiErr)
		}
		var apiErrPtr *genai.APIError
		if errors.As(err, &apiErrPtr) {
			return rejected(*apiErrPtr)
		}
		return fmt.Errorf("gemini request failed: %w", err)
	}
	return nil
}

var _ ports.CredentialVerifier = (*Verifier)(nil)

func rejected(apiErr genai.APIError) error {
	return fmt.Errorf("gemini rejected the key (%d %s): %s", apiErr.Code, apiErr.Status, apiErr.Message)
}
