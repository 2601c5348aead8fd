package api

import (
	"net/http"

	"github.com/phrazzld/molweight-api/internal/api/shared"
	"github.com/phrazzld/molweight-api/internal/service"
)

// FormulaHandler serves the public analysis endpoint.
type FormulaHandler struct {
	compoundService service.CompoundService
}

// NewFormulaHandler creates a new FormulaHandler
func NewFormulaHandler(compoundService service.CompoundService) *FormulaHandler {
	return &FormulaHandler{compoundService: compoundService}
}

// Analyze handles POST /api/formulas/analyze requests
func (h *FormulaHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeFormulaRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	result, err := h.compoundService.Analyze(r.Context(), req.Formula)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to analyze formula")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, analysisToResponse(req.Formula, result))
}
