package ports

// Normalizer defines the interface for text normalization. Normalization is
// an orchestration concern: the engine consumes already-normalized input and
// never normalizes on its own.
type Normalizer interface {
	Normalize(text string) string
}

// Filter is a text transform hook applied after normalization, before the
// engine consumes input. Filters compose left to right.
type Filter func(text string) string

// PhoneticEncoder encodes text into a phonetic code. Encoders are an
// independent subsystem; orchestration may compose one ahead of the engine to
// compare phonetic codes instead of raw text.
type PhoneticEncoder interface {
	Encode(text string) string
}
