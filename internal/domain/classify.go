package domain

import "strings"

// FailureCategory is the user-facing bucket for a failed request.
type FailureCategory string

const (
	CategoryBackendNotInstalled FailureCategory = "backend-not-installed"
	CategoryDependenciesMissing FailureCategory = "dependencies-missing"
	CategoryCredentialInvalid   FailureCategory = "credential-invalid"
	CategoryRequestFailed       FailureCategory = "request-failed"
)

var remediations = map[FailureCategory]string{
	CategoryBackendNotInstalled: "The assistant backend is not installed. Run 'saurus doctor' to see where it was looked for, or set SAURUS_BACKEND_DIR.",
	CategoryDependenciesMissing: "The backend is missing Python dependencies. Install them into its venv with 'venv/bin/pip install -r requirements.txt'.",
	CategoryCredentialInvalid:   "The Gemini API key is missing or invalid. Save one with 'saurus prefs set gemini_api_key <key>'.",
	CategoryRequestFailed:       "The request failed. Check your setup with 'saurus doctor'.",
}

// Message returns the fixed remediation text for the category.
func (c FailureCategory) Message() string {
	if msg, ok := remediations[c]; ok {
		return msg
	}
	return remediations[CategoryRequestFailed]
}

var (
	missingFileMarkers   = []string{"no such file or directory"}
	missingModuleMarkers = []string{"modulenotfounderror", "module not found", "no module named"}
	credentialMarkers    = []string{"api key", "api_key", strings.ToLower(APIKeyEnvVar)}
)

// ClassifyFailure maps raw diagnostic text to a category. backendPaths are
// the resolved executable/script paths; any mention of them counts as the
// backend being absent.
func ClassifyFailure(diagnostic string, backendPaths ...string) FailureCategory {
	text := strings.ToLower(diagnostic)

	for _, p := range backendPaths {
		if p != "" && strings.Contains(text, strings.ToLower(p)) {
			return CategoryBackendNotInstalled
		}
	}
	if containsAny(text, missingFileMarkers) {
		return CategoryBackendNotInstalled
	}
	if containsAny(text, missingModuleMarkers) {
		return CategoryDependenciesMissing
	}
	if containsAny(text, credentialMarkers) {
		return CategoryCredentialInvalid
	}
	return CategoryRequestFailed
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}

// ClassifyError classifies err. A preflight error's missing path counts as a
// backend path.
func ClassifyError(err error, backendPaths ...string) FailureCategory {
	if ae, ok := AsAssistError(err); ok && ae.Path != "" {
		backendPaths = append(backendPaths, ae.Path)
	}
	return ClassifyFailure(DiagnosticOf(err), backendPaths...)
}
