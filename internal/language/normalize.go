package language

import "strings"

// iso3to1 maps the ISO 639-3 codes cloud transcription APIs return to the
// ISO 639-1 codes used everywhere else in the API surface.
var iso3to1 = map[string]string{
	"eng": "en",
	"por": "pt",
	"spa": "es",
	"fra": "fr",
	"deu": "de",
	"ita": "it",
	"jpn": "ja",
	"kor": "ko",
	"zho": "zh",
	"rus": "ru",
	"ara": "ar",
	"hin": "hi",
	"nld": "nl",
	"pol": "pl",
	"tur": "tr",
	"vie": "vi",
	"tha": "th",
	"swe": "sv",
	"ukr": "uk",
	"ind": "id",
}

// NormalizeCode lowercases a language code and maps known ISO 639-3 codes
// to their ISO 639-1 equivalent. Unknown codes pass through lowercased.
func NormalizeCode(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if len(code) == 3 {
		if short, ok := iso3to1[code]; ok {
			return short
		}
	}
	return code
}

// IsTranslatable returns true if the code names a language the translation
// backend can target.
func IsTranslatable(code string) bool {
	code = NormalizeCode(code)
	if code == "" {
		return false
	}
	return IsValidCode(code)
}
