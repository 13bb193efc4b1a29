package provider

// Provider name constants for config and registry
const (
	ProviderWhisperCpp = "whisper-cpp"
	ProviderElevenLabs = "elevenlabs"
)

// Environment variable names for API keys
const (
	EnvElevenLabsKey = "ELEVENLABS_API_KEY"
	EnvOpenAIKey     = "OPENAI_API_KEY"
)

// EnvVarForProvider returns the environment variable name for a provider's
// API key, or empty for local providers.
func EnvVarForProvider(name string) string {
	switch name {
	case ProviderElevenLabs:
		return EnvElevenLabsKey
	default:
		return ""
	}
}
