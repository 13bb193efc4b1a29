package transcript

// Word is a single recognized word with its own timing.
type Word struct {
	Text       string   `json:"text"`
	Start      float64  `json:"start"`
	End        float64  `json:"end"`
	Confidence *float64 `json:"confidence,omitempty"`
	SpeakerID  string   `json:"speaker_id,omitempty"`
}

// Segment is a contiguous span of transcript text, the atomic unit
// returned to callers.
type Segment struct {
	Start          float64 `json:"start"`
	End            float64 `json:"end"`
	Text           string  `json:"text"`
	TranslatedText string  `json:"translated_text,omitempty"`
	Words          []Word  `json:"words,omitempty"`
}

// Transcript is the assembled result of a single transcription request.
// It is constructed once per request and never mutated after return.
type Transcript struct {
	Language            string    `json:"language"`
	LanguageProbability *float64  `json:"language_probability,omitempty"`
	TranslatedTo        string    `json:"translated_to,omitempty"`
	FailedTranslations  int       `json:"failed_translations,omitempty"`
	FileDuration        float64   `json:"file_duration"`
	Provider            string    `json:"provider"`
	Segments            []Segment `json:"segments"`
}

// Text joins all segment texts with single spaces.
func (t *Transcript) Text() string {
	total := 0
	for _, s := range t.Segments {
		total += len(s.Text) + 1
	}
	buf := make([]byte, 0, total)
	for i, s := range t.Segments {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, s.Text...)
	}
	return string(buf)
}

// Duration returns the end time of the last segment, or 0 for an empty
// transcript.
func Duration(segments []Segment) float64 {
	if len(segments) == 0 {
		return 0
	}
	return segments[len(segments)-1].End
}
