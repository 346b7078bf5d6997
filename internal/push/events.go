package push

import (
	"github.com/jmalm/sightline/internal/ai"
	"github.com/jmalm/sightline/internal/domain"
)

// Event kinds emitted over the real-time channel. Every frame carries its
// kind in a "type" field so clients can dispatch on it.
const (
	KindNavigationStarted     = "navigation_started"
	KindNavigationUpdated     = "navigation_updated"
	KindVisionAnalysis        = "vision_analysis"
	KindAudioAnalysis         = "audio_analysis"
	KindNavigationInstruction = "navigation_instruction"
)

type SessionEvent struct {
	Type    string                    `json:"type"`
	Session *domain.NavigationSession `json:"session"`
}

func NavigationStarted(s *domain.NavigationSession) SessionEvent {
	return SessionEvent{Type: KindNavigationStarted, Session: s}
}

func NavigationUpdated(s *domain.NavigationSession) SessionEvent {
	return SessionEvent{Type: KindNavigationUpdated, Session: s}
}

type VisionEvent struct {
	Type     string             `json:"type"`
	Analysis *ai.VisionAnalysis `json:"analysis"`
}

func VisionAnalyzed(a *ai.VisionAnalysis) VisionEvent {
	return VisionEvent{Type: KindVisionAnalysis, Analysis: a}
}

type AudioEvent struct {
	Type          string            `json:"type"`
	Analysis      *ai.AudioAnalysis `json:"analysis"`
	Transcription string            `json:"transcription"`
}

func AudioAnalyzed(a *ai.AudioAnalysis, transcription string) AudioEvent {
	return AudioEvent{Type: KindAudioAnalysis, Analysis: a, Transcription: transcription}
}

type InstructionEvent struct {
	Type        string          `json:"type"`
	Instruction *ai.Instruction `json:"instruction"`
}

func InstructionGenerated(instruction *ai.Instruction) InstructionEvent {
	return InstructionEvent{Type: KindNavigationInstruction, Instruction: instruction}
}
