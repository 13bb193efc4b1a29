package transcriber

import (
	"errors"
	"fmt"
)

// Kind classifies errors so the HTTP boundary can map them to status codes
// without re-deriving meaning from message text.
type Kind string

const (
	KindValidation  Kind = "validation"
	KindResource    Kind = "resource"
	KindProvider    Kind = "provider"
	KindTranslation Kind = "translation"
)

// Error is the structured error surfaced to callers: a kind, a human
// message, and the provider identity plus underlying cause when relevant.
type Error struct {
	Kind     Kind
	Provider string
	Message  string
	Err      error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Provider != "" {
		msg = e.Provider + ": " + msg
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of a wrapped *Error, or empty when err carries none.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}

func NewValidationError(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NewResourceError(err error, format string, args ...any) error {
	return &Error{Kind: KindResource, Message: fmt.Sprintf(format, args...), Err: err}
}

func NewProviderError(providerName string, err error, format string, args ...any) error {
	return &Error{Kind: KindProvider, Provider: providerName, Message: fmt.Sprintf(format, args...), Err: err}
}

// Sentinel causes carried inside provider errors.
var (
	ErrModelLoad           = errors.New("model unavailable")
	ErrDecode              = errors.New("audio decode failed")
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrAuthentication      = errors.New("missing or invalid credential")
	ErrUnsupportedModel    = errors.New("unsupported model")
	ErrPayloadTooLarge     = errors.New("payload exceeds provider size limit")
)

// RemoteServiceError reports a failed call to a cloud transcription service,
// keeping status and body for diagnostics.
type RemoteServiceError struct {
	StatusCode int
	Body       string
	Timeout    bool
}

func (e *RemoteServiceError) Error() string {
	if e.Timeout {
		return "remote service timeout"
	}
	return fmt.Sprintf("remote service returned status %d: %s", e.StatusCode, e.Body)
}
