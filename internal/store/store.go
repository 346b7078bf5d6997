package store

import "github.com/jmalm/sightline/internal/domain"

// DefaultRecentLimit bounds recency queries when the caller passes limit <= 0.
const DefaultRecentLimit = 10

// Store is the in-process repository for sessions and detection history.
// All state lives for the lifetime of the process; nothing is persisted.
type Store interface {
	CreateSession(params domain.SessionParams) *domain.NavigationSession
	Session(id string) (*domain.NavigationSession, error)
	ActiveSession() *domain.NavigationSession
	UpdateSession(id string, patch domain.SessionPatch) (*domain.NavigationSession, error)

	CreateObject(params domain.ObjectParams) *domain.DetectedObject
	ObjectsBySession(sessionID string) []domain.DetectedObject
	RecentObjectsBySession(sessionID string, limit int) []domain.DetectedObject

	CreateAudioEvent(params domain.AudioEventParams) *domain.AudioEvent
	AudioEventsBySession(sessionID string) []domain.AudioEvent

	CreateText(params domain.TextParams) *domain.RecognizedText
	TextsBySession(sessionID string) []domain.RecognizedText
	RecentTextsBySession(sessionID string, limit int) []domain.RecognizedText
}
