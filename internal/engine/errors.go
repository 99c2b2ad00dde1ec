package engine

import "fmt"

// Per-request failures are typed so the HTTP layer can map validation-class
// errors (direction/language/length/capacity) to client errors and backend
// failures (tokenize/forward) to server errors. None of them abort the
// process.

type unsupportedDirectionError struct{ source, target string }

func (e unsupportedDirectionError) Error() string {
	return "unsupported direction: " + e.source + " -> " + e.target
}

// IsUnsupportedDirection reports whether err indicates a (source, target)
// pair outside the configured set.
func IsUnsupportedDirection(err error) bool {
	_, ok := err.(unsupportedDirectionError)
	return ok
}

type unsupportedLanguageError struct{ lang string }

func (e unsupportedLanguageError) Error() string {
	return "unsupported target language: " + e.lang
}

// IsUnsupportedLanguage reports whether err indicates a target language the
// prompt builder has no instruction for.
func IsUnsupportedLanguage(err error) bool {
	_, ok := err.(unsupportedLanguageError)
	return ok
}

type promptTooLongError struct{ promptTokens, maxTokens int }

func (e promptTooLongError) Error() string {
	return fmt.Sprintf("prompt too long: %d tokens leaves no room to generate within max_tokens=%d", e.promptTokens, e.maxTokens)
}

// IsPromptTooLong reports whether err indicates a prompt that exhausts the
// generation budget on its own.
func IsPromptTooLong(err error) bool {
	_, ok := err.(promptTooLongError)
	return ok
}

type contextTooSmallError struct{ required, capacity int }

func (e contextTooSmallError) Error() string {
	return fmt.Sprintf("context too small: need %d tokens of KV cache, capacity is %d", e.required, e.capacity)
}

// IsContextTooSmall reports whether err indicates the KV cache cannot hold
// the full prompt-plus-generation span.
func IsContextTooSmall(err error) bool {
	_, ok := err.(contextTooSmallError)
	return ok
}

// IsValidation groups the request-validation failures the boundary should
// report as client errors.
func IsValidation(err error) bool {
	return IsUnsupportedDirection(err) || IsUnsupportedLanguage(err) ||
		IsPromptTooLong(err) || IsContextTooSmall(err)
}

type tokenizeError struct{ err error }

func (e tokenizeError) Error() string { return "tokenize: " + e.err.Error() }
func (e tokenizeError) Unwrap() error { return e.err }

// IsTokenize reports whether err indicates the provider rejected the text.
func IsTokenize(err error) bool {
	_, ok := err.(tokenizeError)
	return ok
}

type forwardError struct{ err error }

func (e forwardError) Error() string { return "forward pass: " + e.err.Error() }
func (e forwardError) Unwrap() error { return e.err }

// IsForward reports whether err indicates a failed forward pass. The KV
// cache is partially advanced at that point, so the session is unusable and
// there is no retry.
func IsForward(err error) bool {
	_, ok := err.(forwardError)
	return ok
}

// errorKind labels an error for metrics.
func errorKind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case IsUnsupportedDirection(err):
		return "unsupported_direction"
	case IsUnsupportedLanguage(err):
		return "unsupported_language"
	case IsPromptTooLong(err):
		return "prompt_too_long"
	case IsContextTooSmall(err):
		return "context_too_small"
	case IsTokenize(err):
		return "tokenize"
	case IsForward(err):
		return "forward"
	default:
		return "internal"
	}
}
