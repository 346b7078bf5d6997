// Package session holds the navigation-session lifecycle rules layered on
// the record store.
package session

import (
	"time"

	"github.com/jmalm/sightline/internal/domain"
	"github.com/jmalm/sightline/internal/store"
)

type Coordinator struct {
	store store.Store
}

func NewCoordinator(s store.Store) *Coordinator {
	return &Coordinator{store: s}
}

// Start validates the params and creates a new active session. Any session
// that is still active is ended first, so at most one session is active at a
// time; the sessions ended this way are returned alongside the new one.
func (c *Coordinator) Start(params domain.SessionParams) (*domain.NavigationSession, []*domain.NavigationSession, error) {
	if params.TotalSteps < 0 {
		return nil, nil, &domain.ValidationError{Field: "totalSteps", Message: "must not be negative"}
	}

	var ended []*domain.NavigationSession
	for {
		active := c.store.ActiveSession()
		if active == nil {
			break
		}

		now := time.Now()
		inactive := false
		stopped, err := c.store.UpdateSession(active.ID, domain.SessionPatch{
			IsActive: &inactive,
			EndTime:  &now,
		})
		if err != nil {
			return nil, nil, err
		}
		ended = append(ended, stopped)
	}

	return c.store.CreateSession(params), ended, nil
}

// Update applies a partial update to the session.
func (c *Coordinator) Update(id string, patch domain.SessionPatch) (*domain.NavigationSession, error) {
	return c.store.UpdateSession(id, patch)
}

// RecordProgress advances the session's progress counter by one.
func (c *Coordinator) RecordProgress(id string) (*domain.NavigationSession, error) {
	session, err := c.store.Session(id)
	if err != nil {
		return nil, err
	}

	progress := session.Progress + 1
	return c.store.UpdateSession(id, domain.SessionPatch{Progress: &progress})
}

// ApplyInstruction sets the session's current instruction text.
func (c *Coordinator) ApplyInstruction(id string, instruction string) (*domain.NavigationSession, error) {
	return c.store.UpdateSession(id, domain.SessionPatch{CurrentInstruction: &instruction})
}
