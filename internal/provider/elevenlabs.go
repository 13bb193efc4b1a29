package provider

// ElevenLabsProvider implements Provider for the ElevenLabs speech-to-text API
type ElevenLabsProvider struct{}

func (p *ElevenLabsProvider) Name() string {
	return ProviderElevenLabs
}

func (p *ElevenLabsProvider) IsLocal() bool {
	return false
}

func (p *ElevenLabsProvider) RequiresAPIKey() bool {
	return true
}

func (p *ElevenLabsProvider) SupportsDiarization() bool {
	return true
}

func (p *ElevenLabsProvider) Models() []Model {
	// https://elevenlabs.io/speech-to-text
	allLangs := elevenLabsTranscriptionLanguages
	docsURL := "https://elevenlabs.io/speech-to-text"
	endpoint := &EndpointConfig{BaseURL: "https://api.elevenlabs.io", Path: "/v1/speech-to-text"}

	return []Model{
		{
			ID:                 "scribe_v1",
			Name:               "Scribe v1",
			Description:        "90+ languages, word timestamps, diarization",
			Local:              false,
			SupportedLanguages: allLangs,
			Endpoint:           endpoint,
			DocsURL:            docsURL,
		},
		{
			ID:                 "scribe_v1_experimental",
			Name:               "Scribe v1 Experimental",
			Description:        "Experimental build of Scribe v1",
			Local:              false,
			SupportedLanguages: allLangs,
			Endpoint:           endpoint,
			DocsURL:            docsURL,
		},
	}
}

func (p *ElevenLabsProvider) DefaultModel() string {
	return "scribe_v1"
}
