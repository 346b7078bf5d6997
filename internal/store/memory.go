package store

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jmalm/sightline/internal/domain"
)

// Memory is the in-memory Store. A single mutex guards all four collections;
// every operation is synchronous and never blocks on I/O. Sessions keep a
// by-id map plus insertion order so ActiveSession iterates deterministically;
// detection records are append-only slices scanned linearly.
type Memory struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy

	sessions     map[string]*domain.NavigationSession
	sessionOrder []string

	objects []domain.DetectedObject
	audio   []domain.AudioEvent
	texts   []domain.RecognizedText
}

func NewMemory() *Memory {
	return &Memory{
		entropy:  ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
		sessions: make(map[string]*domain.NavigationSession),
	}
}

// newID returns a fresh ULID. ULIDs sort by creation time, so descending id
// order is a stable tie-break for same-timestamp records. Callers must hold mu.
func (m *Memory) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), m.entropy).String()
}

func (m *Memory) CreateSession(params domain.SessionParams) *domain.NavigationSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	session := domain.NewSession(params)
	m.sessions[session.ID] = session
	m.sessionOrder = append(m.sessionOrder, session.ID)

	copy := *session
	return &copy
}

func (m *Memory) Session(id string) (*domain.NavigationSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	copy := *session
	return &copy, nil
}

// ActiveSession returns the first session in insertion order whose active
// flag is set, or nil when none is active.
func (m *Memory) ActiveSession() *domain.NavigationSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range m.sessionOrder {
		if session := m.sessions[id]; session.IsActive {
			copy := *session
			return &copy
		}
	}
	return nil
}

func (m *Memory) UpdateSession(id string, patch domain.SessionPatch) (*domain.NavigationSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	patch.Apply(session)

	copy := *session
	return &copy, nil
}

func (m *Memory) CreateObject(params domain.ObjectParams) *domain.DetectedObject {
	m.mu.Lock()
	defer m.mu.Unlock()

	object := domain.DetectedObject{
		ID:          m.newID(),
		SessionID:   params.SessionID,
		Name:        params.Name,
		Description: params.Description,
		Distance:    params.Distance,
		Position:    params.Position,
		Confidence:  params.Confidence,
		Timestamp:   time.Now(),
	}
	m.objects = append(m.objects, object)

	return &object
}

func (m *Memory) ObjectsBySession(sessionID string) []domain.DetectedObject {
	m.mu.Lock()
	defer m.mu.Unlock()

	matched := []domain.DetectedObject{}
	for _, object := range m.objects {
		if object.SessionID == sessionID {
			matched = append(matched, object)
		}
	}
	return matched
}

func (m *Memory) RecentObjectsBySession(sessionID string, limit int) []domain.DetectedObject {
	matched := m.ObjectsBySession(sessionID)

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].Timestamp.Equal(matched[j].Timestamp) {
			return matched[i].Timestamp.After(matched[j].Timestamp)
		}
		return matched[i].ID > matched[j].ID
	})

	return truncate(matched, limit)
}

func (m *Memory) CreateAudioEvent(params domain.AudioEventParams) *domain.AudioEvent {
	m.mu.Lock()
	defer m.mu.Unlock()

	event := domain.AudioEvent{
		ID:         m.newID(),
		SessionID:  params.SessionID,
		Type:       params.Type,
		Content:    params.Content,
		AudioLevel: params.AudioLevel,
		Timestamp:  time.Now(),
	}
	m.audio = append(m.audio, event)

	return &event
}

func (m *Memory) AudioEventsBySession(sessionID string) []domain.AudioEvent {
	m.mu.Lock()
	defer m.mu.Unlock()

	matched := []domain.AudioEvent{}
	for _, event := range m.audio {
		if event.SessionID == sessionID {
			matched = append(matched, event)
		}
	}
	return matched
}

func (m *Memory) CreateText(params domain.TextParams) *domain.RecognizedText {
	m.mu.Lock()
	defer m.mu.Unlock()

	text := domain.RecognizedText{
		ID:         m.newID(),
		SessionID:  params.SessionID,
		Type:       params.Type,
		Content:    params.Content,
		Confidence: params.Confidence,
		Timestamp:  time.Now(),
	}
	m.texts = append(m.texts, text)

	return &text
}

func (m *Memory) TextsBySession(sessionID string) []domain.RecognizedText {
	m.mu.Lock()
	defer m.mu.Unlock()

	matched := []domain.RecognizedText{}
	for _, text := range m.texts {
		if text.SessionID == sessionID {
			matched = append(matched, text)
		}
	}
	return matched
}

func (m *Memory) RecentTextsBySession(sessionID string, limit int) []domain.RecognizedText {
	matched := m.TextsBySession(sessionID)

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].Timestamp.Equal(matched[j].Timestamp) {
			return matched[i].Timestamp.After(matched[j].Timestamp)
		}
		return matched[i].ID > matched[j].ID
	})

	return truncate(matched, limit)
}

func truncate[T any](records []T, limit int) []T {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if len(records) > limit {
		return records[:limit]
	}
	return records
}
