package api

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/molweight-api/internal/domain"
	"github.com/phrazzld/molweight-api/internal/formula"
)

// AnalyzeFormulaRequest defines the payload for the formula analysis endpoint.
// An empty formula is left for the analyzer to reject.
type AnalyzeFormulaRequest struct {
	Formula string `json:"formula" validate:"max=4096"`
}

// CompoundRequest defines the payload for creating or updating a compound.
type CompoundRequest struct {
	Name    string `json:"name"    validate:"required,max=255"`
	Formula string `json:"formula" validate:"max=4096"`
}

// ElementCountResponse is one line of a composition.
type ElementCountResponse struct {
	Symbol string `json:"symbol"`
	Count  int    `json:"count"`
}

// FormulaAnalysisResponse is the result of analyzing a formula.
type FormulaAnalysisResponse struct {
	Formula         string                 `json:"formula"`
	MolecularWeight string                 `json:"molecular_weight"`
	Elements        []ElementCountResponse `json:"elements"`
	TotalAtoms      int                    `json:"total_atoms"`
}

// CompoundResponse represents a registered compound.
type CompoundResponse struct {
	ID              uuid.UUID              `json:"id"`
	Name            string                 `json:"name"`
	Formula         string                 `json:"formula"`
	MolecularWeight string                 `json:"molecular_weight"`
	Elements        []ElementCountResponse `json:"elements"`
	TotalAtoms      int                    `json:"total_atoms"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// CompoundListResponse wraps a compound listing.
type CompoundListResponse struct {
	Compounds []CompoundResponse `json:"compounds"`
	Count     int                `json:"count"`
}

// ElementResponse is one entry of the element registry.
type ElementResponse struct {
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	AtomicNumber int    `json:"atomic_number"`
	AtomicWeight string `json:"atomic_weight"`
}

// ElementListResponse wraps an element listing.
type ElementListResponse struct {
	Elements []ElementResponse `json:"elements"`
	Count    int               `json:"count"`
}

func elementToResponse(e *domain.Element) ElementResponse {
	return ElementResponse{
		Symbol:       e.Symbol,
		Name:         e.Name,
		AtomicNumber: e.AtomicNumber,
		AtomicWeight: e.AtomicWeight.StringFixed(formula.WeightPlaces),
	}
}

func analysisToResponse(formulaText string, result *formula.Result) FormulaAnalysisResponse {
	elements := make([]ElementCountResponse, 0, len(result.Counts))
	for symbol, n := range result.Counts {
		elements = append(elements, ElementCountResponse{Symbol: symbol, Count: n})
	}
	sort.Slice(elements, func(i, j int) bool { return elements[i].Symbol < elements[j].Symbol })

	return FormulaAnalysisResponse{
		Formula:         formulaText,
		MolecularWeight: result.Weight.StringFixed(formula.WeightPlaces),
		Elements:        elements,
		TotalAtoms:      result.TotalAtoms(),
	}
}

func compoundToResponse(c *domain.Compound) CompoundResponse {
	elements := make([]ElementCountResponse, 0, len(c.Elements))
	total := 0
	for _, e := range c.Elements {
		elements = append(elements, ElementCountResponse{Symbol: e.Symbol, Count: e.Count})
		total += e.Count
	}
	return CompoundResponse{
		ID:              c.ID,
		Name:            c.Name,
		Formula:         c.Formula,
		MolecularWeight: c.MolecularWeight.StringFixed(formula.WeightPlaces),
		Elements:        elements,
		TotalAtoms:      total,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
