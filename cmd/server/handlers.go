package main

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jmalm/sightline/internal/domain"
	"github.com/jmalm/sightline/internal/push"
	"github.com/jmalm/sightline/internal/relay"
	"github.com/jmalm/sightline/internal/session"
	"github.com/jmalm/sightline/internal/store"
)

func startNavigation(sessions *session.Coordinator, hub *push.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params domain.SessionParams
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			respondError(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if params.UserID == "" {
			params.UserID = GetUserID(r)
		}

		created, ended, err := sessions.Start(params)
		if err != nil {
			respondTaxonomy(w, err)
			return
		}

		for _, stopped := range ended {
			hub.Broadcast(push.NavigationUpdated(stopped))
		}
		hub.Broadcast(push.NavigationStarted(created))
		respondJSON(w, created, http.StatusCreated)
	}
}

func getActiveSession(records store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, records.ActiveSession(), http.StatusOK)
	}
}

func updateSession(sessions *session.Coordinator, hub *push.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var patch domain.SessionPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			respondError(w, "invalid request body", http.StatusBadRequest)
			return
		}

		updated, err := sessions.Update(id, patch)
		if err != nil {
			respondTaxonomy(w, err)
			return
		}

		hub.Broadcast(push.NavigationUpdated(updated))
		respondJSON(w, updated, http.StatusOK)
	}
}

func recordProgress(sessions *session.Coordinator, hub *push.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		updated, err := sessions.RecordProgress(id)
		if err != nil {
			respondTaxonomy(w, err)
			return
		}

		hub.Broadcast(push.NavigationUpdated(updated))
		respondJSON(w, updated, http.StatusOK)
	}
}

func generateInstruction(analyses *relay.Relay) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req relay.InstructionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, "invalid request body", http.StatusBadRequest)
			return
		}

		instruction, err := analyses.GenerateInstruction(r.Context(), req)
		if err != nil {
			respondTaxonomy(w, err)
			return
		}

		respondJSON(w, instruction, http.StatusOK)
	}
}

func analyzeVision(analyses *relay.Relay, maxUpload int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		image, err := readUpload(r, "image", maxUpload)
		if err != nil {
			respondTaxonomy(w, err)
			return
		}

		analysis, err := analyses.AnalyzeVision(r.Context(), image, r.FormValue("sessionId"))
		if err != nil {
			respondTaxonomy(w, err)
			return
		}

		respondJSON(w, analysis, http.StatusOK)
	}
}

func processAudio(analyses *relay.Relay, maxUpload int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		audio, err := readUpload(r, "audio", maxUpload)
		if err != nil {
			respondTaxonomy(w, err)
			return
		}

		// A missing or non-numeric level parses to 0; the relay substitutes
		// its default.
		audioLevel, _ := strconv.Atoi(r.FormValue("audioLevel"))

		result, err := analyses.ProcessAudio(r.Context(), audio, r.FormValue("sessionId"), audioLevel)
		if err != nil {
			respondTaxonomy(w, err)
			return
		}

		respondJSON(w, result, http.StatusOK)
	}
}

func listObjects(records store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, records.ObjectsBySession(chi.URLParam(r, "id")), http.StatusOK)
	}
}

func listAudioEvents(records store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, records.AudioEventsBySession(chi.URLParam(r, "id")), http.StatusOK)
	}
}

func listTexts(records store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, records.TextsBySession(chi.URLParam(r, "id")), http.StatusOK)
	}
}

// readUpload pulls one multipart file field into memory, reading at most one
// byte past the limit so the relay can distinguish too-large from at-limit.
func readUpload(r *http.Request, field string, maxUpload int) ([]byte, error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		return nil, domain.ErrMissingPayload
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, int64(maxUpload)+1))
	if err != nil {
		return nil, err
	}
	return data, nil
}

func respondTaxonomy(w http.ResponseWriter, err error) {
	var validation *domain.ValidationError
	var analysis *domain.AnalysisError

	switch {
	case errors.As(err, &validation):
		respondError(w, validation.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrMissingPayload):
		respondError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrPayloadTooLarge):
		respondError(w, err.Error(), http.StatusRequestEntityTooLarge)
	case errors.As(err, &analysis):
		slog.Error("analysis failed", "stage", analysis.Stage, "error", analysis.Err)
		respondError(w, analysis.Error(), http.StatusBadGateway)
	default:
		slog.Error("request failed", "error", err)
		respondError(w, "internal error", http.StatusInternalServerError)
	}
}

func respondJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
