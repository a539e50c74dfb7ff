package handler

import (
	"net/http"

	"github.com/osse101/DowntimeForge/internal/domain"
	"github.com/osse101/DowntimeForge/internal/research"
)

// ResearchHandler handles recipe research HTTP endpoints
type ResearchHandler struct {
	service research.Service
}

// NewResearchHandler creates a new research handler
func NewResearchHandler(service research.Service) *ResearchHandler {
	return &ResearchHandler{service: service}
}

// StartResearchRequest is the request body for starting research
type StartResearchRequest struct {
	RecipeID int    `json:"recipe_id" validate:"required,min=1"`
	ItemID   int    `json:"item_id" validate:"required,min=1"`
	Source   string `json:"source" validate:"required,research_source"`
	// Skill picks among the source's skills. Empty uses the source's default.
	Skill string `json:"skill,omitempty" validate:"omitempty,max=30"`
}

// HandleStart opens a research project on one of a recipe's items
// @Summary Start research
// @Description Studies an investigable item to unlock a research-gated recipe. The item is not consumed.
// @Tags research
// @Accept json
// @Produce json
// @Param characterID path int true "Character ID"
// @Param request body StartResearchRequest true "Recipe, item, source and optional skill"
// @Success 201 {object} research.StartResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/characters/{characterID}/research [post]
func (h *ResearchHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	characterID, ok := CharacterIDParam(w, r)
	if !ok {
		return
	}

	var req StartResearchRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Start research"); err != nil {
		return
	}

	result, err := h.service.StartResearch(r.Context(), characterID, req.RecipeID, req.ItemID, domain.ResearchSource(req.Source), req.Skill)
	if err != nil {
		respondServiceError(w, r, "Start research", err)
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

// HandleRoll spends a day and 25 gp on a research check
// @Summary Roll research
// @Tags research
// @Produce json
// @Param characterID path int true "Character ID"
// @Param researchID path string true "Research ID"
// @Success 200 {object} research.RollOutcome
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/characters/{characterID}/research/{researchID}/roll [post]
func (h *ResearchHandler) HandleRoll(w http.ResponseWriter, r *http.Request) {
	characterID, ok := CharacterIDParam(w, r)
	if !ok {
		return
	}
	researchID, ok := UUIDParam(w, r, ParamResearchID, ErrMsgInvalidResearchID)
	if !ok {
		return
	}

	outcome, err := h.service.RollResearch(r.Context(), characterID, researchID)
	if err != nil {
		respondServiceError(w, r, "Roll research", err)
		return
	}

	respondJSON(w, http.StatusOK, outcome)
}

// HandleGet returns one research project with its roll history
// @Summary Get research
// @Tags research
// @Produce json
// @Param characterID path int true "Character ID"
// @Param researchID path string true "Research ID"
// @Success 200 {object} research.ResearchDetail
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/characters/{characterID}/research/{researchID} [get]
func (h *ResearchHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	characterID, ok := CharacterIDParam(w, r)
	if !ok {
		return
	}
	researchID, ok := UUIDParam(w, r, ParamResearchID, ErrMsgInvalidResearchID)
	if !ok {
		return
	}

	detail, err := h.service.GetResearch(r.Context(), characterID, researchID)
	if err != nil {
		respondServiceError(w, r, "Get research", err)
		return
	}

	respondJSON(w, http.StatusOK, detail)
}

// HandleList lists the character's research projects grouped by state
// @Summary List research
// @Tags research
// @Produce json
// @Param characterID path int true "Character ID"
// @Success 200 {object} research.ResearchList
// @Router /api/v1/characters/{characterID}/research [get]
func (h *ResearchHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	characterID, ok := CharacterIDParam(w, r)
	if !ok {
		return
	}

	list, err := h.service.ListResearch(r.Context(), characterID)
	if err != nil {
		respondServiceError(w, r, "List research", err)
		return
	}

	respondJSON(w, http.StatusOK, list)
}

// HandleListUnlocked lists the recipes the character unlocked through research
// @Summary List unlocked recipes
// @Tags research
// @Produce json
// @Param characterID path int true "Character ID"
// @Success 200 {array} domain.RecipeUnlock
// @Router /api/v1/characters/{characterID}/unlocked-recipes [get]
func (h *ResearchHandler) HandleListUnlocked(w http.ResponseWriter, r *http.Request) {
	characterID, ok := CharacterIDParam(w, r)
	if !ok {
		return
	}

	list, err := h.service.ListUnlockedRecipes(r.Context(), characterID)
	if err != nil {
		respondServiceError(w, r, "List unlocked recipes", err)
		return
	}

	respondJSON(w, http.StatusOK, list)
}
