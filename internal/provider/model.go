package provider

// Model represents a transcription model with full metadata
type Model struct {
	ID                 string          // unique identifier (e.g., "base.en", "scribe_v1")
	Name               string          // display name
	Description        string          // short description
	Local              bool            // runs locally (no API call)
	SupportedLanguages []string        // explicit list of provider language codes
	Endpoint           *EndpointConfig // nil for local models
	LocalInfo          *LocalModelInfo // nil for cloud models
	DocsURL            string          // URL to provider documentation
}

// EndpointConfig holds HTTP endpoint configuration
type EndpointConfig struct {
	BaseURL string // e.g., "https://api.elevenlabs.io"
	Path    string // e.g., "/v1/speech-to-text"
}

// LocalModelInfo holds metadata for downloadable local models
type LocalModelInfo struct {
	Filename    string // e.g., "ggml-base.en.bin"
	Size        string // human readable size (e.g., "142MB")
	DownloadURL string // full URL to download from
}

// NeedsDownload returns true if this is a local model that requires downloading
func (m *Model) NeedsDownload() bool {
	return m.LocalInfo != nil
}

// SupportsLanguage returns true if the model supports the given language code.
// Auto-detect (empty string) is always supported.
func (m *Model) SupportsLanguage(code string) bool {
	if code == "" {
		return true // auto always supported
	}
	for _, supported := range m.SupportedLanguages {
		if supported == code {
			return true
		}
	}
	return false
}
