package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/molweight-api/internal/api/shared"
	"github.com/phrazzld/molweight-api/internal/domain"
	"github.com/phrazzld/molweight-api/internal/store"
)

// ElementHandler serves the read-only element registry.
type ElementHandler struct {
	elements store.ElementStore
}

// NewElementHandler creates a new ElementHandler
func NewElementHandler(elements store.ElementStore) *ElementHandler {
	return &ElementHandler{elements: elements}
}

// ListElements handles GET /api/elements requests.
// The optional search parameter matches symbol or name, ignoring case.
func (h *ElementHandler) ListElements(w http.ResponseWriter, r *http.Request) {
	all, err := h.elements.ListAll(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list elements")
		return
	}

	search := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("search")))
	resp := ElementListResponse{Elements: []ElementResponse{}}
	for i := range all {
		if search != "" && !matchesElement(&all[i], search) {
			continue
		}
		resp.Elements = append(resp.Elements, elementToResponse(&all[i]))
	}
	resp.Count = len(resp.Elements)

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GetElement handles GET /api/elements/{symbol} requests.
// Symbols are case sensitive, so "co" and "CO" do not resolve to cobalt.
func (h *ElementHandler) GetElement(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	if symbol == "" || len(symbol) > domain.MaxSymbolLength {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid element symbol")
		return
	}

	element, err := h.elements.GetBySymbol(r.Context(), symbol)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get element")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, elementToResponse(element))
}

func matchesElement(e *domain.Element, search string) bool {
	return strings.Contains(strings.ToLower(e.Symbol), search) ||
		strings.Contains(strings.ToLower(e.Name), search)
}
