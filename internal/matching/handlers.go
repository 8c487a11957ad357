package matching

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/collabhub/collabhub-backend/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func pathID(r *http.Request, name string) (int64, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars[name], 10, 64)
	return id, err == nil
}

// GetCompatibility previews the score for one opportunity/provider pair
// without persisting anything.
func (h *Handler) GetCompatibility(w http.ResponseWriter, r *http.Request) {
	opportunityID, ok := pathID(r, "id")
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid opportunity ID")
		return
	}
	providerID, ok := pathID(r, "userId")
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid provider ID")
		return
	}

	result, err := h.service.CalculateCompatibility(r.Context(), opportunityID, providerID)
	if err != nil {
		switch {
		case errors.Is(err, ErrOpportunityNotFound), errors.Is(err, ErrProviderNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrUnknownModelType):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to calculate compatibility")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, &CompatibilityResponse{
		OpportunityID: opportunityID,
		ProviderID:    providerID,
		Result:        result,
	})
}

// RunMatching kicks off an async batch run for an opportunity.
func (h *Handler) RunMatching(w http.ResponseWriter, r *http.Request) {
	opportunityID, ok := pathID(r, "id")
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid opportunity ID")
		return
	}

	h.service.TriggerMatching(opportunityID)

	utils.RespondWithJSON(w, http.StatusAccepted, &TriggerResponse{
		OpportunityID: opportunityID,
		Status:        "scheduled",
	})
}

// MatchProvider runs the orchestrator synchronously for a single pair.
func (h *Handler) MatchProvider(w http.ResponseWriter, r *http.Request) {
	opportunityID, ok := pathID(r, "id")
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid opportunity ID")
		return
	}
	providerID, ok := pathID(r, "userId")
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid provider ID")
		return
	}

	match, err := h.service.MatchOpportunity(r.Context(), opportunityID, providerID)
	if err != nil {
		switch {
		case errors.Is(err, ErrOpportunityNotFound), errors.Is(err, ErrProviderNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case isExpectedMiss(err), errors.Is(err, ErrUnknownModelType):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to run matching")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, match)
}

func (h *Handler) GetOpportunityMatches(w http.ResponseWriter, r *http.Request) {
	opportunityID, ok := pathID(r, "id")
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid opportunity ID")
		return
	}

	matches, err := h.service.GetOpportunityMatches(r.Context(), opportunityID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get matches")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, &MatchesResponse{Matches: matches, Count: len(matches)})
}

func (h *Handler) GetMyMatches(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	matches, err := h.service.GetProviderMatches(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get matches")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, &MatchesResponse{Matches: matches, Count: len(matches)})
}

func (h *Handler) GetModels(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, h.service.Models())
}
