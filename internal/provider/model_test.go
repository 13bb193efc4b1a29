package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelSupportsLanguage(t *testing.T) {
	m, err := FindModel(ProviderWhisperCpp, "base")
	require.NoError(t, err)

	assert.True(t, m.SupportsLanguage(""), "auto-detect is always supported")
	assert.True(t, m.SupportsLanguage("en"))
	assert.True(t, m.SupportsLanguage("pt"))
	assert.False(t, m.SupportsLanguage("xx"))
}

func TestEnglishOnlyModels(t *testing.T) {
	m, err := FindModel(ProviderWhisperCpp, "base.en")
	require.NoError(t, err)

	assert.True(t, m.SupportsLanguage("en"))
	assert.False(t, m.SupportsLanguage("pt"))
}

func TestElevenLabsAcceptsBothCodeForms(t *testing.T) {
	m, err := FindModel(ProviderElevenLabs, "scribe_v1")
	require.NoError(t, err)

	assert.True(t, m.SupportsLanguage("en"))
	assert.True(t, m.SupportsLanguage("eng"))
	assert.True(t, m.SupportsLanguage("por"))
}

func TestNeedsDownload(t *testing.T) {
	local, err := FindModel(ProviderWhisperCpp, "base")
	require.NoError(t, err)
	assert.True(t, local.NeedsDownload())
	require.NotNil(t, local.LocalInfo)
	assert.NotEmpty(t, local.LocalInfo.DownloadURL)

	cloud, err := FindModel(ProviderElevenLabs, "scribe_v1")
	require.NoError(t, err)
	assert.False(t, cloud.NeedsDownload())
}
