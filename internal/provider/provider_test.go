package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{ProviderElevenLabs, ProviderWhisperCpp}, Names())

	require.NotNil(t, Get(ProviderWhisperCpp))
	require.NotNil(t, Get(ProviderElevenLabs))
	assert.Nil(t, Get("acme"))
}

func TestProviderTraits(t *testing.T) {
	local := Get(ProviderWhisperCpp)
	assert.True(t, local.IsLocal())
	assert.False(t, local.RequiresAPIKey())
	assert.False(t, local.SupportsDiarization())

	cloud := Get(ProviderElevenLabs)
	assert.False(t, cloud.IsLocal())
	assert.True(t, cloud.RequiresAPIKey())
	assert.True(t, cloud.SupportsDiarization())
}

func TestAvailability(t *testing.T) {
	assert.False(t, Available(ProviderElevenLabs))

	SetAvailable(ProviderElevenLabs, true)
	defer SetAvailable(ProviderElevenLabs, false)

	assert.True(t, Available(ProviderElevenLabs))
}

func TestSnapshot(t *testing.T) {
	SetAvailable(ProviderWhisperCpp, true)
	defer SetAvailable(ProviderWhisperCpp, false)

	caps := Snapshot()
	require.Len(t, caps, 2)

	byName := map[string]Capabilities{}
	for _, c := range caps {
		byName[c.Name] = c
	}

	whisper := byName[ProviderWhisperCpp]
	assert.True(t, whisper.Available)
	assert.True(t, whisper.Local)
	assert.Equal(t, "base", whisper.DefaultModel)
	assert.Contains(t, whisper.SupportedModels, "base")
	assert.Contains(t, whisper.SupportedModels, "large-v3")

	eleven := byName[ProviderElevenLabs]
	assert.False(t, eleven.Available)
	assert.Equal(t, "scribe_v1", eleven.DefaultModel)
	assert.Equal(t, []string{"scribe_v1", "scribe_v1_experimental"}, eleven.SupportedModels)
}

func TestFindModel(t *testing.T) {
	m, err := FindModel(ProviderElevenLabs, "scribe_v1")
	require.NoError(t, err)
	assert.Equal(t, "scribe_v1", m.ID)
	require.NotNil(t, m.Endpoint)
	assert.Equal(t, "https://api.elevenlabs.io", m.Endpoint.BaseURL)

	// empty model resolves to the provider default
	m, err = FindModel(ProviderWhisperCpp, "")
	require.NoError(t, err)
	assert.Equal(t, "base", m.ID)

	_, err = FindModel(ProviderWhisperCpp, "nonexistent")
	require.Error(t, err)

	_, err = FindModel("acme", "base")
	require.Error(t, err)
}

func TestEnvVarForProvider(t *testing.T) {
	assert.Equal(t, EnvElevenLabsKey, EnvVarForProvider(ProviderElevenLabs))
	assert.Empty(t, EnvVarForProvider(ProviderWhisperCpp))
}
