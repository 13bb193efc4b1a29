package provider

var whisperTranscriptionLanguages = []string{
	"af", "ar", "hy", "az", "be", "bs", "bg", "ca", "zh", "hr", "cs", "da",
	"nl", "en", "et", "fi", "fr", "gl", "de", "el", "he", "hi", "hu", "is",
	"id", "it", "ja", "kn", "kk", "ko", "lv", "lt", "mk", "ms", "mr", "mi",
	"ne", "no", "fa", "pl", "pt", "ro", "ru", "sr", "sk", "sl", "es", "sw",
	"sv", "tl", "ta", "th", "tr", "uk", "ur", "vi", "cy",
}

var whisperEnglishOnlyLanguages = []string{"en"}

// ElevenLabs reports languages as ISO 639-3 but accepts 639-1 hints too, so
// the supported set carries both forms.
var elevenLabsISO3Languages = []string{
	"bel", "bos", "bul", "cat", "hrv", "ces", "dan", "nld", "eng", "est", "fin", "fra",
	"glg", "deu", "ell", "hun", "isl", "ind", "ita", "jpn", "kan", "lav", "mkd", "msa",
	"mal", "nor", "pol", "por", "ron", "rus", "slk", "spa", "swe", "tur", "ukr", "vie",
	"hye", "aze", "ben", "yue", "fil", "kat", "guj", "hin", "kaz", "lit", "mlt", "cmn",
	"mar", "nep", "ori", "fas", "srp", "slv", "swa", "tam", "tel",
	"afr", "ara", "asm", "ast", "mya", "hau", "heb", "jav", "kor", "kir", "ltz", "mri",
	"oci", "pan", "tgk", "tha", "uzb", "cym",
	"amh", "lug", "ibo", "gle", "khm", "kur", "lao", "mon", "nso", "pus", "sna", "snd",
	"som", "urd", "wol", "xho", "yor", "zul",
}

var elevenLabsTranscriptionLanguages = append(
	append([]string{}, elevenLabsISO3Languages...),
	whisperTranscriptionLanguages...,
)
