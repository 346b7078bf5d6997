// Package relay bridges uploaded media to the AI collaborator and turns its
// structured results into record-store writes and broadcasts.
package relay

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmalm/sightline/internal/ai"
	"github.com/jmalm/sightline/internal/domain"
	"github.com/jmalm/sightline/internal/push"
	"github.com/jmalm/sightline/internal/store"
)

// DefaultMaxUpload caps uploaded media at 10 MiB.
const DefaultMaxUpload = 10 << 20

// defaultAudioLevel stands in when the client sends no usable level reading.
const defaultAudioLevel = 50

// Analyzer is the external AI collaborator. Every call is single-attempt; the
// relay never retries or caches.
type Analyzer interface {
	AnalyzeImage(ctx context.Context, image []byte) (*ai.VisionAnalysis, error)
	Transcribe(ctx context.Context, audio []byte) (string, error)
	ClassifyAudio(ctx context.Context, transcript string) (*ai.AudioAnalysis, error)
	GenerateInstruction(ctx context.Context, nav ai.NavigationContext) (*ai.Instruction, error)
}

// Broadcaster pushes one event to all connected clients, fire-and-forget.
type Broadcaster interface {
	Broadcast(event any)
}

// InstructionApplier writes a generated instruction back onto its session.
type InstructionApplier interface {
	ApplyInstruction(id string, instruction string) (*domain.NavigationSession, error)
}

type Relay struct {
	store     store.Store
	ai        Analyzer
	hub       Broadcaster
	sessions  InstructionApplier
	maxUpload int
}

func New(s store.Store, analyzer Analyzer, hub Broadcaster, sessions InstructionApplier, maxUpload int) *Relay {
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUpload
	}
	return &Relay{
		store:     s,
		ai:        analyzer,
		hub:       hub,
		sessions:  sessions,
		maxUpload: maxUpload,
	}
}

func (r *Relay) checkPayload(payload []byte) error {
	if len(payload) == 0 {
		return domain.ErrMissingPayload
	}
	if len(payload) > r.maxUpload {
		return domain.ErrPayloadTooLarge
	}
	return nil
}

// AnalyzeVision runs one vision pass over the uploaded image. Results are
// persisted only when a session id was supplied; the broadcast fires either
// way so connected clients see every analysis.
func (r *Relay) AnalyzeVision(ctx context.Context, image []byte, sessionID string) (*ai.VisionAnalysis, error) {
	if err := r.checkPayload(image); err != nil {
		return nil, err
	}

	analysis, err := r.ai.AnalyzeImage(ctx, image)
	if err != nil {
		return nil, &domain.AnalysisError{Stage: "vision", Err: err}
	}

	if sessionID != "" {
		for _, object := range analysis.Objects {
			r.store.CreateObject(objectParams(sessionID, object))
		}
		for _, obstacle := range analysis.Obstacles {
			r.store.CreateObject(objectParams(sessionID, obstacle))
		}
		for _, text := range analysis.TextContent {
			r.store.CreateText(domain.TextParams{
				SessionID:  sessionID,
				Type:       text.Type,
				Content:    text.Content,
				Confidence: text.Confidence,
			})
		}
	}

	r.hub.Broadcast(push.VisionAnalyzed(analysis))
	return analysis, nil
}

// AudioResult pairs the classified events with the transcript they came from.
type AudioResult struct {
	Analysis      *ai.AudioAnalysis `json:"analysis"`
	Transcription string            `json:"transcription"`
}

// ProcessAudio transcribes the uploaded audio, classifies the transcript, and
// persists the resulting events when a session id was supplied.
func (r *Relay) ProcessAudio(ctx context.Context, audio []byte, sessionID string, audioLevel int) (*AudioResult, error) {
	if err := r.checkPayload(audio); err != nil {
		return nil, err
	}

	transcript, err := r.ai.Transcribe(ctx, audio)
	if err != nil {
		return nil, &domain.AnalysisError{Stage: "transcription", Err: err}
	}

	analysis, err := r.ai.ClassifyAudio(ctx, transcript)
	if err != nil {
		return nil, &domain.AnalysisError{Stage: "audio", Err: err}
	}

	if audioLevel <= 0 {
		audioLevel = defaultAudioLevel
	}
	if sessionID != "" {
		for _, event := range analysis.Events {
			r.store.CreateAudioEvent(domain.AudioEventParams{
				SessionID:  sessionID,
				Type:       event.Type,
				Content:    event.Content,
				AudioLevel: audioLevel,
			})
		}
	}

	r.hub.Broadcast(push.AudioAnalyzed(analysis, transcript))
	return &AudioResult{Analysis: analysis, Transcription: transcript}, nil
}

// InstructionRequest is the caller's input to instruction generation.
type InstructionRequest struct {
	SessionID       string `json:"sessionId"`
	UserQuery       string `json:"userQuery"`
	CurrentLocation string `json:"currentLocation"`
	Destination     string `json:"destination"`
}

// GenerateInstruction builds scene context from the session's recent
// detections, asks the collaborator for the next instruction, and writes it
// back onto the session before broadcasting.
func (r *Relay) GenerateInstruction(ctx context.Context, req InstructionRequest) (*ai.Instruction, error) {
	if req.SessionID == "" {
		return nil, &domain.ValidationError{Field: "sessionId", Message: "required"}
	}

	objects := r.store.RecentObjectsBySession(req.SessionID, store.DefaultRecentLimit)
	texts := r.store.RecentTextsBySession(req.SessionID, store.DefaultRecentLimit)

	nav := ai.NavigationContext{
		UserQuery:       req.UserQuery,
		CurrentLocation: req.CurrentLocation,
		Destination:     req.Destination,
	}
	for _, object := range objects {
		nav.DetectedObjects = append(nav.DetectedObjects, fmt.Sprintf("%s (%s)", object.Name, object.Distance))
	}
	for _, text := range texts {
		nav.RecognizedText = append(nav.RecognizedText, text.Content)
	}

	instruction, err := r.ai.GenerateInstruction(ctx, nav)
	if err != nil {
		return nil, &domain.AnalysisError{Stage: "instruction", Err: err}
	}

	if _, err := r.sessions.ApplyInstruction(req.SessionID, instruction.Instruction); err != nil {
		return nil, err
	}

	slog.Info("instruction generated", "session", req.SessionID, "priority", instruction.Priority)
	r.hub.Broadcast(push.InstructionGenerated(instruction))
	return instruction, nil
}

func objectParams(sessionID string, object ai.SceneObject) domain.ObjectParams {
	return domain.ObjectParams{
		SessionID:   sessionID,
		Name:        object.Name,
		Description: object.Description,
		Distance:    object.Distance,
		Position:    object.Position,
		Confidence:  object.Confidence,
	}
}
