package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/DowntimeForge/internal/domain"
	"github.com/osse101/DowntimeForge/internal/logger"
)

// Standard response types for consistent API responses

// ErrorResponse represents an error response. Reason and Details are only set for client errors.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Reason  string      `json:"reason,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// GradeDetails explains a grade rejection
type GradeDetails struct {
	Tool     string `json:"tool"`
	Current  string `json:"current_grade"`
	Required string `json:"required_grade"`
}

// ResourceDetails explains a gold or downtime rejection
type ResourceDetails struct {
	Resource string `json:"resource"`
	Required int    `json:"required"`
	Held     int    `json:"held"`
}

// bufferPool is a pool of bytes.Buffer to reduce allocations during JSON encoding
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	// Encode first so an encoding failure can still become a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"` + ErrMsgGenericServerError + `"}` + "\n"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError maps a service error to a status code and writes it.
// Client errors carry the domain reason and any shortfall detail; server errors stay generic.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	log := logger.FromContext(r.Context())
	status, message := mapServiceErrorToUserMessage(err)

	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
		respondError(w, status, message)
		return
	}

	log.Warn(opName+" rejected", "status", status, "error", err)
	respondJSON(w, status, ErrorResponse{
		Error:   message,
		Reason:  err.Error(),
		Details: errorDetails(err),
	})
}

// errorDetails extracts the structured shortfall carried by a typed domain error
func errorDetails(err error) interface{} {
	var ingredient *domain.IngredientShortfallError
	if errors.As(err, &ingredient) {
		return ingredient.Shortfall
	}
	var grade *domain.GradeRequirementError
	if errors.As(err, &grade) {
		return GradeDetails{Tool: grade.Tool, Current: grade.Current.String(), Required: grade.Required.String()}
	}
	var resource *domain.ResourceShortfallError
	if errors.As(err, &resource) {
		return ResourceDetails{Resource: resource.Resource, Required: resource.Required, Held: resource.Held}
	}
	return nil
}

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses.
// Requirement, state and resource failures are 400, grade and lock gates 403, lookups 404.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	// Not found
	case errors.Is(err, domain.ErrCharacterNotFound):
		return http.StatusNotFound, ErrMsgCharacterNotFoundError
	case errors.Is(err, domain.ErrRecipeNotFound):
		return http.StatusNotFound, ErrMsgRecipeNotFoundError
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, ErrMsgSessionNotFoundError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrResearchNotFound):
		return http.StatusNotFound, ErrMsgResearchNotFoundError
	case errors.Is(err, domain.ErrCompetencyNotFound):
		return http.StatusNotFound, ErrMsgCompetencyNotFoundError

	// Gates
	case errors.Is(err, domain.ErrGradeTooLow):
		return http.StatusForbidden, ErrMsgGradeTooLowError
	case errors.Is(err, domain.ErrRarityLocked):
		return http.StatusForbidden, ErrMsgRarityLockedError
	case errors.Is(err, domain.ErrRecipeLocked):
		return http.StatusForbidden, ErrMsgRecipeLockedError

	// Requirements
	case errors.Is(err, domain.ErrInsufficientIngredient):
		return http.StatusBadRequest, ErrMsgInsufficientIngredientErr
	case errors.Is(err, domain.ErrMissingRareMaterial):
		return http.StatusBadRequest, ErrMsgMissingRareMaterialError
	case errors.Is(err, domain.ErrMissingTool):
		return http.StatusBadRequest, ErrMsgMissingToolError

	// State
	case errors.Is(err, domain.ErrSessionCompleted):
		return http.StatusBadRequest, ErrMsgSessionCompletedError
	case errors.Is(err, domain.ErrSessionNotActive):
		return http.StatusBadRequest, ErrMsgSessionNotActiveError

	// Resources
	case errors.Is(err, domain.ErrInsufficientGold):
		return http.StatusBadRequest, ErrMsgNotEnoughGoldError
	case errors.Is(err, domain.ErrInsufficientDowntime):
		return http.StatusBadRequest, ErrMsgNotEnoughDowntimeError

	// Research
	case errors.Is(err, domain.ErrResearchCompleted):
		return http.StatusBadRequest, ErrMsgResearchCompletedError
	case errors.Is(err, domain.ErrResearchActive):
		return http.StatusBadRequest, ErrMsgResearchActiveError
	case errors.Is(err, domain.ErrRecipeAlreadyUnlocked):
		return http.StatusBadRequest, ErrMsgRecipeAlreadyUnlockedError
	case errors.Is(err, domain.ErrRecipeNotResearchable):
		return http.StatusBadRequest, ErrMsgRecipeNotResearchableError
	case errors.Is(err, domain.ErrItemNotInvestigable):
		return http.StatusBadRequest, ErrMsgItemNotInvestigableError
	case errors.Is(err, domain.ErrItemNotInRecipe):
		return http.StatusBadRequest, ErrMsgItemNotInRecipeError
	case errors.Is(err, domain.ErrResearchItemNotHeld):
		return http.StatusBadRequest, ErrMsgResearchItemNotHeldError

	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
