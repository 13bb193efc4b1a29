package transcriber

import (
	"github.com/leonardotrapani/tunescribe/internal/transcript"
)

// scribeToken is one entry of the flat token stream the ElevenLabs API
// returns: a word, literal inter-word spacing, or a tagged audio event.
type scribeToken struct {
	Text      string   `json:"text"`
	Start     float64  `json:"start"`
	End       float64  `json:"end"`
	Type      string   `json:"type"` // "word", "spacing", "audio_event"
	SpeakerID string   `json:"speaker_id,omitempty"`
	Logprob   *float64 `json:"logprob,omitempty"`
}

// segmentsFromTokens reconstructs segments from the flat token stream. A new
// segment starts when a word closes with terminal punctuation, when the gap
// between consecutive tokens exceeds gapThreshold seconds, or when the
// speaker changes while diarization is on. Spacing tokens contribute their
// literal text to the segment but never appear in the word list.
func segmentsFromTokens(tokens []scribeToken, gapThreshold float64, diarize bool) []transcript.Segment {
	var (
		segments     []transcript.Segment
		cur          *transcript.Segment
		pendingSpace string
		prevEnd      float64
		havePrev     bool
		prevSpeaker  string
	)

	flush := func() {
		if cur != nil {
			segments = append(segments, *cur)
			cur = nil
		}
		pendingSpace = ""
	}

	for _, tok := range tokens {
		switch tok.Type {
		case "spacing":
			if cur != nil {
				pendingSpace += tok.Text
			}
			if havePrev && tok.End > prevEnd {
				prevEnd = tok.End
			}
			continue
		case "word":
		default:
			// audio events carry no transcript text
			continue
		}

		if cur != nil && havePrev {
			if tok.Start-prevEnd > gapThreshold {
				flush()
			} else if diarize && tok.SpeakerID != prevSpeaker {
				flush()
			}
		}

		word := transcript.Word{
			Text:       tok.Text,
			Start:      tok.Start,
			End:        tok.End,
			Confidence: tok.Logprob,
			SpeakerID:  tok.SpeakerID,
		}

		if cur == nil {
			cur = &transcript.Segment{
				Start: tok.Start,
				End:   tok.End,
				Text:  tok.Text,
				Words: []transcript.Word{word},
			}
		} else {
			cur.Text += pendingSpace + tok.Text
			cur.End = tok.End
			cur.Words = append(cur.Words, word)
		}
		pendingSpace = ""

		prevEnd = tok.End
		havePrev = true
		prevSpeaker = tok.SpeakerID

		if terminalPunctuation(tok.Text) {
			flush()
		}
	}

	flush()
	return segments
}
