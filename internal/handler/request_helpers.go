package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/osse101/DowntimeForge/internal/logger"
)

// URL parameter names shared with the router
const (
	ParamCharacterID = "characterID"
	ParamSessionID   = "sessionID"
	ParamResearchID  = "researchID"
	QueryState       = "state"
)

// DecodeAndValidateRequest decodes a JSON request body, validates it, and returns appropriate errors.
// If this function returns an error, the HTTP response has already been written and the handler should return.
//
// Example usage:
//
//	var req StartCraftingRequest
//	if err := DecodeAndValidateRequest(r, w, &req, "Start crafting"); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(req); err != nil {
		log.Warn(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	log.Debug(fmt.Sprintf("%s request decoded", actionName))

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// CharacterIDParam reads the positive character id from the route.
// If ok is false, the HTTP response has already been written and the handler should return.
func CharacterIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, ParamCharacterID)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		logger.FromContext(r.Context()).Warn("Invalid character id", "value", raw)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidCharacterID)
		return 0, false
	}
	return id, true
}

// UUIDParam reads a uuid route parameter, answering 400 with message when it is malformed
func UUIDParam(w http.ResponseWriter, r *http.Request, name, message string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		logger.FromContext(r.Context()).Warn("Invalid uuid parameter", "param", name, "value", raw)
		respondError(w, http.StatusBadRequest, message)
		return uuid.Nil, false
	}
	return id, true
}

// GetOptionalQueryParam retrieves an optional query parameter from the request.
//
// Example usage:
//
//	state := GetOptionalQueryParam(r, "state", "")
func GetOptionalQueryParam(r *http.Request, paramName string, defaultValue string) string {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		return defaultValue
	}
	return value
}
