// internal/opportunity/handlers.go

package opportunity

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/collabhub/collabhub-backend/internal/common/utils"
)

// Handler handles opportunity HTTP requests
type Handler struct {
	service Service
}

// NewHandler creates a new opportunity handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}

// CreateOpportunity handles POST /opportunities
func (h *Handler) CreateOpportunity(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	var req CreateOpportunityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	opp, err := h.service.CreateOpportunity(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, ErrInvalidModelType) || errors.Is(err, ErrModelNotApplicable) {
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondWithData(w, http.StatusCreated, opp)
}

// GetOpportunity handles GET /opportunities/{id}
func (h *Handler) GetOpportunity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid opportunity ID")
		return
	}

	opp, err := h.service.GetOpportunity(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrOpportunityNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Opportunity not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get opportunity")
		return
	}

	utils.RespondWithData(w, http.StatusOK, opp)
}

// UpdateOpportunity handles PUT /opportunities/{id}
func (h *Handler) UpdateOpportunity(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid opportunity ID")
		return
	}

	var req UpdateOpportunityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	opp, err := h.service.UpdateOpportunity(r.Context(), id, userID, &req)
	if err != nil {
		respondLifecycleError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, opp)
}

// ActivateOpportunity handles POST /opportunities/{id}/activate
func (h *Handler) ActivateOpportunity(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid opportunity ID")
		return
	}

	if err := h.service.ActivateOpportunity(r.Context(), id, userID); err != nil {
		respondLifecycleError(w, err)
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "Opportunity activated")
}

// CloseOpportunity handles POST /opportunities/{id}/close
func (h *Handler) CloseOpportunity(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid opportunity ID")
		return
	}

	if err := h.service.CloseOpportunity(r.Context(), id, userID); err != nil {
		respondLifecycleError(w, err)
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "Opportunity closed")
}

// ListMyOpportunities handles GET /opportunities/mine
func (h *Handler) ListMyOpportunities(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	response, err := h.service.ListMyOpportunities(r.Context(), userID, limit, offset)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list opportunities")
		return
	}

	utils.RespondWithData(w, http.StatusOK, response)
}

// ListActiveOpportunities handles GET /opportunities
func (h *Handler) ListActiveOpportunities(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	response, err := h.service.ListActiveOpportunities(r.Context(), limit, offset)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list opportunities")
		return
	}

	utils.RespondWithData(w, http.StatusOK, response)
}

func respondLifecycleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrOpportunityNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Opportunity not found")
	case errors.Is(err, ErrNotCreator):
		utils.RespondWithError(w, http.StatusForbidden, "Only the creator can modify this opportunity")
	case errors.Is(err, ErrNotEditable), errors.Is(err, ErrInvalidStatusChange):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	default:
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	}
}
