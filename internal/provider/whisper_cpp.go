package provider

import "github.com/leonardotrapani/tunescribe/internal/models/whisper"

// WhisperCppProvider implements Provider for local whisper.cpp transcription
type WhisperCppProvider struct{}

func (p *WhisperCppProvider) Name() string {
	return ProviderWhisperCpp
}

func (p *WhisperCppProvider) IsLocal() bool {
	return true
}

func (p *WhisperCppProvider) RequiresAPIKey() bool {
	return false
}

func (p *WhisperCppProvider) SupportsDiarization() bool {
	return false
}

func (p *WhisperCppProvider) Models() []Model {
	// https://github.com/ggml-org/whisper.cpp#models
	docsURL := "https://github.com/ggml-org/whisper.cpp#models"

	whisperModels := whisper.Catalog()
	result := make([]Model, 0, len(whisperModels))

	for _, wm := range whisperModels {
		langs := whisperTranscriptionLanguages
		if !wm.Multilingual {
			langs = whisperEnglishOnlyLanguages
		}

		result = append(result, Model{
			ID:                 wm.ID,
			Name:               wm.Name,
			Description:        modelDescription(wm),
			Local:              true,
			SupportedLanguages: langs,
			Endpoint:           nil, // local CLI, no HTTP endpoint
			LocalInfo: &LocalModelInfo{
				Filename:    wm.Filename,
				Size:        wm.Size,
				DownloadURL: whisper.DownloadURL(wm.ID),
			},
			DocsURL: docsURL,
		})
	}

	return result
}

func modelDescription(m whisper.Model) string {
	switch {
	case m.ID == "large-v3":
		return "Best offline accuracy, needs strong hardware"
	case m.Multilingual:
		return "Offline multilingual model"
	default:
		return "Offline English-only model"
	}
}

func (p *WhisperCppProvider) DefaultModel() string {
	return "base"
}
