package session_test

import (
	"errors"
	"testing"

	"github.com/jmalm/sightline/internal/domain"
	"github.com/jmalm/sightline/internal/session"
	"github.com/jmalm/sightline/internal/store"
)

func TestStartSession(t *testing.T) {
	c := session.NewCoordinator(store.NewMemory())

	created, ended, err := c.Start(domain.SessionParams{TotalSteps: 3})
	if err != nil {
		t.Fatal(err)
	}

	if created.ID == "" {
		t.Error("expected non-empty id")
	}
	if created.Progress != 0 {
		t.Errorf("progress = %d, want 0", created.Progress)
	}
	if created.TotalSteps != 3 {
		t.Errorf("totalSteps = %d, want 3", created.TotalSteps)
	}
	if !created.IsActive {
		t.Error("expected session to start active")
	}
	if len(ended) != 0 {
		t.Errorf("fresh store ended %d sessions", len(ended))
	}
}

func TestStartValidatesTotalSteps(t *testing.T) {
	c := session.NewCoordinator(store.NewMemory())

	_, _, err := c.Start(domain.SessionParams{TotalSteps: -1})

	var validation *domain.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if validation.Field != "totalSteps" {
		t.Errorf("field = %q, want totalSteps", validation.Field)
	}
}

func TestStartEndsPriorActiveSessions(t *testing.T) {
	records := store.NewMemory()
	c := session.NewCoordinator(records)

	first, _, err := c.Start(domain.SessionParams{})
	if err != nil {
		t.Fatal(err)
	}

	second, ended, err := c.Start(domain.SessionParams{})
	if err != nil {
		t.Fatal(err)
	}

	if len(ended) != 1 || ended[0].ID != first.ID {
		t.Fatalf("expected the first session to be ended, got %v", ended)
	}
	if ended[0].IsActive {
		t.Error("ended session still marked active")
	}
	if ended[0].EndTime == nil {
		t.Error("ended session has no end time")
	}

	active := records.ActiveSession()
	if active == nil || active.ID != second.ID {
		t.Error("expected the new session to be the only active one")
	}
}

func TestRecordProgress(t *testing.T) {
	c := session.NewCoordinator(store.NewMemory())

	created, _, err := c.Start(domain.SessionParams{TotalSteps: 3})
	if err != nil {
		t.Fatal(err)
	}

	var updated *domain.NavigationSession
	for i := 0; i < 3; i++ {
		updated, err = c.RecordProgress(created.ID)
		if err != nil {
			t.Fatal(err)
		}
	}

	if updated.Progress != 3 {
		t.Errorf("progress = %d, want 3", updated.Progress)
	}
	if updated.TotalSteps != 3 {
		t.Errorf("totalSteps = %d, want unchanged 3", updated.TotalSteps)
	}
}

func TestRecordProgressNotFound(t *testing.T) {
	c := session.NewCoordinator(store.NewMemory())

	_, err := c.RecordProgress("no-such-id")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestApplyInstruction(t *testing.T) {
	c := session.NewCoordinator(store.NewMemory())

	created, _, err := c.Start(domain.SessionParams{})
	if err != nil {
		t.Fatal(err)
	}

	updated, err := c.ApplyInstruction(created.ID, "continue straight for 10 meters")
	if err != nil {
		t.Fatal(err)
	}
	if updated.CurrentInstruction != "continue straight for 10 meters" {
		t.Errorf("currentInstruction = %q", updated.CurrentInstruction)
	}

	if _, err := c.ApplyInstruction("no-such-id", "turn left"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
