package provider

import (
	"fmt"
	"sort"
	"sync"
)

// Provider is one of the interchangeable transcription backends. Adding a
// backend means registering a new Provider plus its transcriber adapter;
// nothing downstream of the adapter boundary changes.
type Provider interface {
	Name() string
	IsLocal() bool
	RequiresAPIKey() bool
	SupportsDiarization() bool
	Models() []Model
	DefaultModel() string
}

// Capabilities is the static per-provider metadata exposed on the
// introspection endpoint and used to validate requests.
type Capabilities struct {
	Name                string   `json:"name"`
	Available           bool     `json:"available"`
	Local               bool     `json:"local"`
	SupportsTranslation bool     `json:"supports_translation"`
	SupportsDiarization bool     `json:"supports_diarization"`
	SupportedModels     []string `json:"supported_models"`
	DefaultModel        string   `json:"default_model"`
}

var (
	registry = make(map[string]Provider)

	// availability is populated during startup and read-only for the rest
	// of the process lifetime.
	availabilityMu sync.RWMutex
	availability   = make(map[string]bool)
)

func init() {
	Register(&WhisperCppProvider{})
	Register(&ElevenLabsProvider{})
}

// Register adds a provider to the registry.
func Register(p Provider) {
	registry[p.Name()] = p
}

// Get returns a provider by name, or nil if not found.
func Get(name string) Provider {
	return registry[name]
}

// Names returns all registered provider names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetAvailable records whether a provider can serve requests. Called once
// per provider at startup, before the first request is accepted.
func SetAvailable(name string, ok bool) {
	availabilityMu.Lock()
	defer availabilityMu.Unlock()
	availability[name] = ok
}

// Available reports whether a provider was marked usable at startup.
func Available(name string) bool {
	availabilityMu.RLock()
	defer availabilityMu.RUnlock()
	return availability[name]
}

// Snapshot returns the capabilities table for all registered providers.
func Snapshot() []Capabilities {
	out := make([]Capabilities, 0, len(registry))
	for _, name := range Names() {
		p := registry[name]
		models := p.Models()
		ids := make([]string, len(models))
		for i, m := range models {
			ids[i] = m.ID
		}
		out = append(out, Capabilities{
			Name:                p.Name(),
			Available:           Available(p.Name()),
			Local:               p.IsLocal(),
			SupportsTranslation: true,
			SupportsDiarization: p.SupportsDiarization(),
			SupportedModels:     ids,
			DefaultModel:        p.DefaultModel(),
		})
	}
	return out
}

// FindModel resolves a model ID within a provider's supported set. An empty
// modelID selects the provider default.
func FindModel(providerName, modelID string) (*Model, error) {
	p := Get(providerName)
	if p == nil {
		return nil, fmt.Errorf("unknown provider: %s", providerName)
	}
	if modelID == "" {
		modelID = p.DefaultModel()
	}
	for _, m := range p.Models() {
		if m.ID == modelID {
			return &m, nil
		}
	}
	return nil, fmt.Errorf("model %q is not supported by provider %s", modelID, providerName)
}
