package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/deepcare-ai/deepcare/pkg/models"
)

// AnalyzeRequest is the body of POST /api/v1/analyze. Callers supply
// either pre-extracted entities or a transcript to run through the entity
// extraction collaborator.
type AnalyzeRequest struct {
	Transcript string          `json:"transcript,omitempty"`
	Entities   []models.Entity `json:"entities,omitempty"`
}

// AnalyzeResponse wraps the pipeline result with the transcript that
// produced it, when one was supplied.
type AnalyzeResponse struct {
	Transcript string `json:"transcript,omitempty"`
	*models.AnalysisResult
}

// PostAnalyzeHandler returns a handler for POST requests to /analyze
func PostAnalyzeHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request AnalyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			log.Errorf("error decoding analyze request: %v", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		entities := request.Entities
		if len(entities) == 0 && request.Transcript != "" {
			if appState.Extractor == nil {
				http.Error(w, "no entity extraction service configured",
					http.StatusBadRequest)
				return
			}
			extracted, err := appState.Extractor.ExtractEntities(
				r.Context(), request.Transcript,
			)
			if err != nil {
				log.Errorf("error extracting entities: %v", err)
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			entities = extracted
		}
		if len(request.Entities) == 0 && request.Transcript == "" {
			http.Error(w, "transcript or entities required", http.StatusBadRequest)
			return
		}

		result := appState.Analyzer.Analyze(r.Context(), entities)

		encodeJSON(w, AnalyzeResponse{
			Transcript:     request.Transcript,
			AnalysisResult: result,
		})
	}
}

// GetDrugProfileHandler returns a handler for GET requests to
// /drugs/{drug}/profile
func GetDrugProfileHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		drug := chi.URLParam(r, "drug")
		if appState.Profiler == nil {
			http.Error(w, "no adverse event registry configured",
				http.StatusServiceUnavailable)
			return
		}
		reactions, err := appState.Profiler.DrugProfile(r.Context(), drug)
		if err != nil {
			log.Errorf("error fetching drug profile: %v", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		encodeJSON(w, map[string]any{
			"drug":      drug,
			"reactions": reactions,
		})
	}
}

func encodeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("error encoding response: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
