package domain

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/molweight-api/internal/formula"
	"github.com/shopspring/decimal"
)

// MaxCompoundNameLength and MaxFormulaLength mirror the registry column widths.
const (
	MaxCompoundNameLength = 255
	MaxFormulaLength      = 255

	// MaxElementCount is the largest atom count the registry column holds.
	MaxElementCount = math.MaxInt32
)

// MaxMolecularWeight is the largest weight a NUMERIC(12,4) column holds.
var MaxMolecularWeight = decimal.RequireFromString("99999999.9999")

// Compound validation errors
var (
	ErrCompoundIDEmpty        = fmt.Errorf("%w: compound ID cannot be empty", ErrValidation)
	ErrCompoundUserIDEmpty    = fmt.Errorf("%w: compound user ID cannot be empty", ErrValidation)
	ErrCompoundNameInvalid    = fmt.Errorf("%w: compound name must be 1 to %d characters", ErrValidation, MaxCompoundNameLength)
	ErrCompoundFormulaEmpty   = fmt.Errorf("%w: compound formula must be 1 to %d characters", ErrValidation, MaxFormulaLength)
	ErrCompoundWeightInvalid  = fmt.Errorf("%w: molecular weight must be positive", ErrValidation)
	ErrCompoundWeightTooLarge = fmt.Errorf("%w: molecular weight must not exceed %s", ErrValidation, MaxMolecularWeight.StringFixed(4))
	ErrCompoundNoElements     = fmt.Errorf("%w: compound must contain at least one element", ErrValidation)
	ErrCompoundElementCount   = fmt.Errorf("%w: element count must be between 1 and %d", ErrValidation, MaxElementCount)
)

// CompoundElement records how many atoms of one element a compound contains.
type CompoundElement struct {
	Symbol string `json:"symbol"`
	Count  int    `json:"count"`
}

// Compound is a formula registered by a user together with the composition
// and molecular weight derived from it.
type Compound struct {
	ID              uuid.UUID         `json:"id"`
	UserID          uuid.UUID         `json:"user_id"`
	Name            string            `json:"name"`
	Formula         string            `json:"formula"`
	MolecularWeight decimal.Decimal   `json:"molecular_weight"`
	Elements        []CompoundElement `json:"elements"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// NewCompound creates a Compound from a successful formula analysis.
// It generates a new ID and sets the creation/update timestamps.
func NewCompound(userID uuid.UUID, name, formulaText string, result *formula.Result) (*Compound, error) {
	now := time.Now().UTC()
	c := &Compound{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      NormalizeCompoundName(name),
		Formula:   formulaText,
		CreatedAt: now,
		UpdatedAt: now,
	}
	c.ApplyAnalysis(formulaText, result)

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// NormalizeCompoundName trims surrounding whitespace from a compound name.
func NormalizeCompoundName(name string) string {
	return strings.TrimSpace(name)
}

// ApplyAnalysis replaces the formula, weight and composition of the compound.
func (c *Compound) ApplyAnalysis(formulaText string, result *formula.Result) {
	c.Formula = formulaText
	if result == nil {
		c.MolecularWeight = decimal.Zero
		c.Elements = nil
		return
	}
	c.MolecularWeight = result.Weight
	c.Elements = ElementsFromCounts(result.Counts)
}

// NeedsRecalculation reports whether a formula edit requires analyzing again:
// the formula text changed or no weight was ever stored.
func (c *Compound) NeedsRecalculation(newFormula string) bool {
	return newFormula != c.Formula || !c.MolecularWeight.IsPositive()
}

// Validate checks if the Compound has valid data.
func (c *Compound) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCompoundIDEmpty
	}
	if c.UserID == uuid.Nil {
		return ErrCompoundUserIDEmpty
	}
	if c.Name == "" || len(c.Name) > MaxCompoundNameLength {
		return ErrCompoundNameInvalid
	}
	if c.Formula == "" || len(c.Formula) > MaxFormulaLength {
		return ErrCompoundFormulaEmpty
	}
	if !c.MolecularWeight.IsPositive() {
		return ErrCompoundWeightInvalid
	}
	if c.MolecularWeight.GreaterThan(MaxMolecularWeight) {
		return ErrCompoundWeightTooLarge
	}
	if len(c.Elements) == 0 {
		return ErrCompoundNoElements
	}
	for _, e := range c.Elements {
		if e.Count < 1 || e.Count > MaxElementCount {
			return ErrCompoundElementCount
		}
	}
	return nil
}

// ElementsFromCounts converts analyzer counts to compound elements ordered by symbol.
func ElementsFromCounts(counts formula.ElementCounts) []CompoundElement {
	elements := make([]CompoundElement, 0, len(counts))
	for symbol, n := range counts {
		elements = append(elements, CompoundElement{Symbol: symbol, Count: n})
	}
	sort.Slice(elements, func(i, j int) bool {
		return elements[i].Symbol < elements[j].Symbol
	})
	return elements
}
