package translate

import (
	"strings"
	"testing"
)

func TestBuildSystemPrompt(t *testing.T) {
	tests := []struct {
		name       string
		sourceLang string
		targetLang string
		contains   []string
	}{
		{
			name:       "known source and target",
			sourceLang: "pt",
			targetLang: "en",
			contains: []string{
				"Translate the given text into English",
				"source language is Portuguese",
				"Output ONLY the translated text",
			},
		},
		{
			name:       "unknown source omitted",
			sourceLang: "",
			targetLang: "es",
			contains: []string{
				"Translate the given text into Spanish",
			},
		},
		{
			name:       "unknown code passes through",
			sourceLang: "",
			targetLang: "xx",
			contains: []string{
				"Translate the given text into xx",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := BuildSystemPrompt(tc.sourceLang, tc.targetLang)
			for _, expected := range tc.contains {
				if !strings.Contains(result, expected) {
					t.Errorf("expected prompt to contain %q, got: %s", expected, result)
				}
			}
		})
	}
}

func TestBuildSystemPrompt_NoSourceLine(t *testing.T) {
	result := BuildSystemPrompt("", "en")
	if strings.Contains(result, "source language") {
		t.Errorf("prompt should not mention a source language when none is known, got: %s", result)
	}
}

func TestNewTranslator(t *testing.T) {
	if _, err := NewTranslator(Config{Provider: "openai", APIKey: "sk-test"}); err != nil {
		t.Errorf("expected openai translator, got error: %v", err)
	}

	if _, err := NewTranslator(Config{APIKey: "sk-test"}); err != nil {
		t.Errorf("expected default provider to be openai, got error: %v", err)
	}

	if _, err := NewTranslator(Config{Provider: "openai"}); err == nil {
		t.Error("expected error for missing API key")
	}

	if _, err := NewTranslator(Config{Provider: "babelfish", APIKey: "k"}); err == nil {
		t.Error("expected error for unsupported provider")
	}
}
