package transcriber

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonardotrapani/tunescribe/internal/provider"
)

func TestNewAdapter_UnknownProvider(t *testing.T) {
	_, err := NewAdapter(Config{Provider: "acme-transcribe"})
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestNewAdapter_UnknownModel(t *testing.T) {
	_, err := NewAdapter(Config{Provider: provider.ProviderElevenLabs, Model: "scribe_v9", APIKey: "k"})
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Contains(t, err.Error(), "scribe_v9")
}

func TestNewAdapter_ElevenLabsRequiresKey(t *testing.T) {
	_, err := NewAdapter(Config{Provider: provider.ProviderElevenLabs})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAuthentication))
}

func TestNewAdapter_ElevenLabsDefaultModel(t *testing.T) {
	a, err := NewAdapter(Config{Provider: provider.ProviderElevenLabs, APIKey: "k"})
	require.NoError(t, err)

	el, ok := a.(*ElevenLabsAdapter)
	require.True(t, ok)
	assert.Equal(t, "scribe_v1", el.model)
	assert.Equal(t, DefaultSilenceThreshold, el.gapThreshold)
}

func TestNewAdapter_WhisperCpp(t *testing.T) {
	a, err := NewAdapter(Config{Provider: provider.ProviderWhisperCpp, Model: "base", Threads: 4})
	require.NoError(t, err)
	_, ok := a.(*WhisperCppAdapter)
	assert.True(t, ok)
}
