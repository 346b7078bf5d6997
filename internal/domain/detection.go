package domain

import "time"

// DetectedObject is one object or obstacle seen in a single vision pass.
// Records are written in bulk per analysis and never mutated.
type DetectedObject struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"sessionId,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Distance    string    `json:"distance,omitempty"`
	Position    string    `json:"position,omitempty"`
	Confidence  int       `json:"confidence,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// AudioEvent is one classified event from a single audio pass.
type AudioEvent struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"sessionId,omitempty"`
	Type       string    `json:"type"`
	Content    string    `json:"content,omitempty"`
	AudioLevel int       `json:"audioLevel,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// RecognizedText is a piece of text read from the scene.
type RecognizedText struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"sessionId,omitempty"`
	Type       string    `json:"type"`
	Content    string    `json:"content"`
	Confidence int       `json:"confidence,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// ObjectParams are the caller-supplied fields for a detected object.
type ObjectParams struct {
	SessionID   string
	Name        string
	Description string
	Distance    string
	Position    string
	Confidence  int
}

// AudioEventParams are the caller-supplied fields for an audio event.
type AudioEventParams struct {
	SessionID  string
	Type       string
	Content    string
	AudioLevel int
}

// TextParams are the caller-supplied fields for a recognized text.
type TextParams struct {
	SessionID  string
	Type       string
	Content    string
	Confidence int
}
