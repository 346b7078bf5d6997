package domain

import (
	"time"

	"github.com/google/uuid"
)

// NavigationSession tracks one user's navigation run: current instruction,
// step progress, and whether the run is still live.
type NavigationSession struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"userId,omitempty"`
	StartTime          time.Time  `json:"startTime"`
	EndTime            *time.Time `json:"endTime,omitempty"`
	CurrentInstruction string     `json:"currentInstruction,omitempty"`
	Progress           int        `json:"progress"`
	TotalSteps         int        `json:"totalSteps"`
	IsActive           bool       `json:"isActive"`
}

// SessionParams are the caller-supplied fields for a new session.
type SessionParams struct {
	UserID             string `json:"userId"`
	TotalSteps         int    `json:"totalSteps"`
	CurrentInstruction string `json:"currentInstruction"`
}

// SessionPatch is a partial session update. Nil fields are left unchanged.
type SessionPatch struct {
	UserID             *string    `json:"userId"`
	EndTime            *time.Time `json:"endTime"`
	CurrentInstruction *string    `json:"currentInstruction"`
	Progress           *int       `json:"progress"`
	TotalSteps         *int       `json:"totalSteps"`
	IsActive           *bool      `json:"isActive"`
}

// Apply merges the set fields of the patch onto the session.
func (p SessionPatch) Apply(s *NavigationSession) {
	if p.UserID != nil {
		s.UserID = *p.UserID
	}
	if p.EndTime != nil {
		s.EndTime = p.EndTime
	}
	if p.CurrentInstruction != nil {
		s.CurrentInstruction = *p.CurrentInstruction
	}
	if p.Progress != nil {
		s.Progress = *p.Progress
	}
	if p.TotalSteps != nil {
		s.TotalSteps = *p.TotalSteps
	}
	if p.IsActive != nil {
		s.IsActive = *p.IsActive
	}
}

// NewSession builds a session with a fresh id and the defaults applied:
// progress 0, active, started now.
func NewSession(params SessionParams) *NavigationSession {
	return &NavigationSession{
		ID:                 uuid.New().String(),
		UserID:             params.UserID,
		StartTime:          time.Now(),
		CurrentInstruction: params.CurrentInstruction,
		Progress:           0,
		TotalSteps:         params.TotalSteps,
		IsActive:           true,
	}
}
