package transcriber

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/leonardotrapani/tunescribe/internal/transcript"
)

// whisperOutput mirrors the JSON whisper-cli writes with -ojf. Offsets are
// milliseconds from the start of the audio.
type whisperOutput struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []whisperSegment `json:"transcription"`
}

type whisperSegment struct {
	Offsets whisperOffsets `json:"offsets"`
	Text    string         `json:"text"`
	Tokens  []whisperToken `json:"tokens"`
}

type whisperToken struct {
	Text    string         `json:"text"`
	Offsets whisperOffsets `json:"offsets"`
	P       float64        `json:"p"`
}

type whisperOffsets struct {
	From int64 `json:"from"`
	To   int64 `json:"to"`
}

func parseWhisperOutput(raw []byte) (*Detection, error) {
	var out whisperOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("parse whisper output: %w", err)
	}

	segments := make([]transcript.Segment, 0, len(out.Transcription))
	for _, ws := range out.Transcription {
		seg := transcript.Segment{
			Start: float64(ws.Offsets.From) / 1000.0,
			End:   float64(ws.Offsets.To) / 1000.0,
			Text:  ws.Text,
		}
		for _, tok := range ws.Tokens {
			text := strings.TrimSpace(tok.Text)
			// whisper emits special markers like [_BEG_] as tokens
			if text == "" || strings.HasPrefix(text, "[_") {
				continue
			}
			p := tok.P
			seg.Words = append(seg.Words, transcript.Word{
				Text:       text,
				Start:      float64(tok.Offsets.From) / 1000.0,
				End:        float64(tok.Offsets.To) / 1000.0,
				Confidence: &p,
			})
		}
		segments = append(segments, seg)
	}

	return &Detection{
		Language:     out.Result.Language,
		Segments:     segments,
		FileDuration: transcript.Duration(segments),
	}, nil
}
