package translate

import (
	"fmt"

	"github.com/leonardotrapani/tunescribe/internal/language"
)

// BuildSystemPrompt generates the system prompt for segment translation
func BuildSystemPrompt(sourceLang, targetLang string) string {
	target := languageName(targetLang)

	prompt := fmt.Sprintf("You are a translator. Translate the given text into %s.\n\n", target)
	prompt += "Rules:\n"
	prompt += "- Preserve the original meaning and tone\n"
	prompt += "- Keep proper nouns, names, and untranslatable terms as-is\n"
	prompt += "- Do not add any new information or commentary\n"
	prompt += "- Output ONLY the translated text, nothing else\n"
	prompt += "- If the input is already in the target language, return it unchanged\n"

	if source := languageName(sourceLang); source != "" {
		prompt += fmt.Sprintf("\nThe source language is %s.\n", source)
	}

	return prompt
}

// languageName resolves a code to its English name, falling back to the raw
// code for anything outside the known list.
func languageName(code string) string {
	if code == "" {
		return ""
	}
	if lang := language.FromCode(code); lang.Code != "" {
		return lang.Name
	}
	return code
}
