package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/osse101/DowntimeForge/internal/crafting"
	"github.com/osse101/DowntimeForge/internal/domain"
	"github.com/osse101/DowntimeForge/internal/logger"
)

// CraftingHandler handles crafting session HTTP endpoints
type CraftingHandler struct {
	service crafting.Service
}

// NewCraftingHandler creates a new crafting handler
func NewCraftingHandler(service crafting.Service) *CraftingHandler {
	return &CraftingHandler{service: service}
}

// StartCraftingRequest is the request body for starting a crafting session
type StartCraftingRequest struct {
	RecipeID int `json:"recipe_id" validate:"required,min=1"`
}

// HandleStart starts a crafting session
// @Summary Start crafting
// @Description Consumes the recipe's ingredients and opens a progress session
// @Tags crafting
// @Accept json
// @Produce json
// @Param characterID path int true "Character ID"
// @Param request body StartCraftingRequest true "Recipe to craft"
// @Success 201 {object} crafting.StartResult
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/characters/{characterID}/crafting [post]
func (h *CraftingHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	characterID, ok := CharacterIDParam(w, r)
	if !ok {
		return
	}

	var req StartCraftingRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Start crafting"); err != nil {
		return
	}

	result, err := h.service.StartCrafting(r.Context(), characterID, req.RecipeID)
	if err != nil {
		respondServiceError(w, r, "Start crafting", err)
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

// HandleRoll resolves one work day of a session
// @Summary Submit a crafting roll
// @Description Rolls a d20 for the session, applies costs and progress, and reports promotions
// @Tags crafting
// @Produce json
// @Param characterID path int true "Character ID"
// @Param sessionID path string true "Session ID"
// @Success 200 {object} crafting.RollOutcome
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/characters/{characterID}/crafting/{sessionID}/roll [post]
func (h *CraftingHandler) HandleRoll(w http.ResponseWriter, r *http.Request) {
	characterID, ok := CharacterIDParam(w, r)
	if !ok {
		return
	}
	sessionID, ok := UUIDParam(w, r, ParamSessionID, ErrMsgInvalidSessionID)
	if !ok {
		return
	}

	outcome, err := h.service.SubmitRoll(r.Context(), characterID, sessionID)
	if err != nil {
		respondServiceError(w, r, "Submit roll", err)
		return
	}

	respondJSON(w, http.StatusOK, outcome)
}

// HandlePause pauses an in-progress session
// @Summary Pause a session
// @Tags crafting
// @Produce json
// @Param characterID path int true "Character ID"
// @Param sessionID path string true "Session ID"
// @Success 200 {object} domain.ProgressSession
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/characters/{characterID}/crafting/{sessionID}/pause [post]
func (h *CraftingHandler) HandlePause(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "Pause session", h.service.PauseSession)
}

// HandleResume resumes a paused session
// @Summary Resume a session
// @Tags crafting
// @Produce json
// @Param characterID path int true "Character ID"
// @Param sessionID path string true "Session ID"
// @Success 200 {object} domain.ProgressSession
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/characters/{characterID}/crafting/{sessionID}/resume [post]
func (h *CraftingHandler) HandleResume(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "Resume session", h.service.ResumeSession)
}

type sessionTransition func(ctx context.Context, characterID int, sessionID uuid.UUID) (*domain.ProgressSession, error)

func (h *CraftingHandler) transition(w http.ResponseWriter, r *http.Request, opName string, apply sessionTransition) {
	characterID, ok := CharacterIDParam(w, r)
	if !ok {
		return
	}
	sessionID, ok := UUIDParam(w, r, ParamSessionID, ErrMsgInvalidSessionID)
	if !ok {
		return
	}

	session, err := apply(r.Context(), characterID, sessionID)
	if err != nil {
		respondServiceError(w, r, opName, err)
		return
	}

	logger.FromContext(r.Context()).Info(opName, "character_id", characterID, "session_id", sessionID, "state", session.State)
	respondJSON(w, http.StatusOK, session)
}

// HandleGetSession returns one session with its roll history
// @Summary Get a crafting session
// @Tags crafting
// @Produce json
// @Param characterID path int true "Character ID"
// @Param sessionID path string true "Session ID"
// @Success 200 {object} crafting.SessionDetail
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/characters/{characterID}/crafting/{sessionID} [get]
func (h *CraftingHandler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	characterID, ok := CharacterIDParam(w, r)
	if !ok {
		return
	}
	sessionID, ok := UUIDParam(w, r, ParamSessionID, ErrMsgInvalidSessionID)
	if !ok {
		return
	}

	detail, err := h.service.GetSession(r.Context(), characterID, sessionID)
	if err != nil {
		respondServiceError(w, r, "Get session", err)
		return
	}

	respondJSON(w, http.StatusOK, detail)
}

// HandleListSessions lists the character's sessions, optionally filtered by state
// @Summary List crafting sessions
// @Tags crafting
// @Produce json
// @Param characterID path int true "Character ID"
// @Param state query string false "in_progress, paused or completed"
// @Success 200 {object} crafting.SessionList
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/characters/{characterID}/crafting [get]
func (h *CraftingHandler) HandleListSessions(w http.ResponseWriter, r *http.Request) {
	characterID, ok := CharacterIDParam(w, r)
	if !ok {
		return
	}

	state := domain.SessionState(GetOptionalQueryParam(r, QueryState, ""))
	if state != "" && !state.Valid() {
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidStateFilter, state))
		return
	}

	list, err := h.service.ListSessions(r.Context(), characterID, state)
	if err != nil {
		respondServiceError(w, r, "List sessions", err)
		return
	}

	respondJSON(w, http.StatusOK, list)
}

// HandleListRecipes previews every recipe for the character
// @Summary List recipes with eligibility
// @Description Read-only: reports craftability, shortfalls and roll numbers without changing state
// @Tags crafting
// @Produce json
// @Param characterID path int true "Character ID"
// @Success 200 {array} crafting.RecipeEligibility
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/characters/{characterID}/recipes [get]
func (h *CraftingHandler) HandleListRecipes(w http.ResponseWriter, r *http.Request) {
	characterID, ok := CharacterIDParam(w, r)
	if !ok {
		return
	}

	recipes, err := h.service.ListRecipesFor(r.Context(), characterID)
	if err != nil {
		respondServiceError(w, r, "List recipes", err)
		return
	}

	respondJSON(w, http.StatusOK, recipes)
}

// HandleListCompetencies lists the character's tool competencies
// @Summary List tool competencies
// @Tags crafting
// @Produce json
// @Param characterID path int true "Character ID"
// @Success 200 {array} crafting.CompetencyView
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/characters/{characterID}/competencies [get]
func (h *CraftingHandler) HandleListCompetencies(w http.ResponseWriter, r *http.Request) {
	characterID, ok := CharacterIDParam(w, r)
	if !ok {
		return
	}

	competencies, err := h.service.ListCompetencies(r.Context(), characterID)
	if err != nil {
		respondServiceError(w, r, "List competencies", err)
		return
	}

	respondJSON(w, http.StatusOK, competencies)
}
