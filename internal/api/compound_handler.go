package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/phrazzld/molweight-api/internal/api/shared"
	"github.com/phrazzld/molweight-api/internal/domain"
	"github.com/phrazzld/molweight-api/internal/platform/logger"
	"github.com/phrazzld/molweight-api/internal/service"
	"github.com/shopspring/decimal"
)

// MaxListLimit bounds the limit query parameter of compound listings.
const MaxListLimit = 500

// CompoundHandler handles compound-related HTTP requests
type CompoundHandler struct {
	compoundService service.CompoundService
}

// NewCompoundHandler creates a new CompoundHandler
func NewCompoundHandler(compoundService service.CompoundService) *CompoundHandler {
	return &CompoundHandler{compoundService: compoundService}
}

// decodeCompoundRequest parses and validates the body, writing a 400 on failure.
func decodeCompoundRequest(w http.ResponseWriter, r *http.Request) (CompoundRequest, bool) {
	var req CompoundRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return req, false
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return req, false
	}
	return req, true
}

// CreateCompound handles POST /api/compounds requests
func (h *CompoundHandler) CreateCompound(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.GetUserID(r.Context())
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	req, ok := decodeCompoundRequest(w, r)
	if !ok {
		return
	}

	compound, err := h.compoundService.Register(r.Context(), userID, req.Name, req.Formula)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to register compound")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, compoundToResponse(compound))
}

// ListCompounds handles GET /api/compounds requests.
// Query parameters: search, min_weight, limit.
func (h *CompoundHandler) ListCompounds(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), slog.Default())

	userID, ok := shared.GetUserID(r.Context())
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	query := r.URL.Query()
	filter := service.CompoundListFilter{Search: query.Get("search")}

	if raw := query.Get("min_weight"); raw != "" {
		minWeight, err := decimal.NewFromString(raw)
		if err != nil || minWeight.IsNegative() {
			log.Debug("invalid min_weight", slog.String("value", raw))
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid min_weight")
			return
		}
		filter.MinWeight = &minWeight
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > MaxListLimit {
			log.Debug("invalid limit", slog.String("value", raw))
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit")
			return
		}
		filter.Limit = limit
	}

	compounds, err := h.compoundService.List(r.Context(), userID, filter)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list compounds")
		return
	}

	resp := CompoundListResponse{
		Compounds: make([]CompoundResponse, 0, len(compounds)),
		Count:     len(compounds),
	}
	for _, c := range compounds {
		resp.Compounds = append(resp.Compounds, compoundToResponse(c))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GetCompound handles GET /api/compounds/{id} requests
func (h *CompoundHandler) GetCompound(w http.ResponseWriter, r *http.Request) {
	userID, compoundID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	compound, err := h.compoundService.Get(r.Context(), userID, compoundID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get compound")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, compoundToResponse(compound))
}

// UpdateCompound handles PUT /api/compounds/{id} requests
func (h *CompoundHandler) UpdateCompound(w http.ResponseWriter, r *http.Request) {
	userID, compoundID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	req, ok := decodeCompoundRequest(w, r)
	if !ok {
		return
	}

	compound, err := h.compoundService.Update(r.Context(), userID, compoundID, req.Name, req.Formula)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update compound")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, compoundToResponse(compound))
}

// DeleteCompound handles DELETE /api/compounds/{id} requests
func (h *CompoundHandler) DeleteCompound(w http.ResponseWriter, r *http.Request) {
	userID, compoundID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.compoundService.Delete(r.Context(), userID, compoundID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete compound")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
