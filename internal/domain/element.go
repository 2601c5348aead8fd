package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Bounds of the element registry.
const (
	MaxSymbolLength  = 3
	MinAtomicNumber  = 1
	MaxAtomicNumber  = 118
	AtomicWeightUnit = "g/mol"
)

// Atomic weight bounds: hydrogen to the heaviest synthetic elements.
var (
	MinAtomicWeight = decimal.RequireFromString("1.0070")
	MaxAtomicWeight = decimal.RequireFromString("294.0000")
)

// Element validation errors
var (
	ErrElementSymbolInvalid       = fmt.Errorf("%w: element symbol must be 1 to %d characters", ErrValidation, MaxSymbolLength)
	ErrElementNameEmpty           = fmt.Errorf("%w: element name cannot be empty", ErrValidation)
	ErrElementAtomicNumberInvalid = fmt.Errorf("%w: atomic number must be between %d and %d", ErrValidation, MinAtomicNumber, MaxAtomicNumber)
	ErrElementAtomicWeightInvalid = fmt.Errorf("%w: atomic weight must be between %s and %s %s",
		ErrValidation, MinAtomicWeight.StringFixed(4), MaxAtomicWeight.StringFixed(4), AtomicWeightUnit)
)

// Element is one entry of the periodic table as kept in the element registry.
type Element struct {
	Symbol       string          `json:"symbol"`
	Name         string          `json:"name"`
	AtomicNumber int             `json:"atomic_number"`
	AtomicWeight decimal.Decimal `json:"atomic_weight"`
}

// Validate checks if the Element has valid data.
func (e *Element) Validate() error {
	if len(e.Symbol) == 0 || len(e.Symbol) > MaxSymbolLength {
		return ErrElementSymbolInvalid
	}
	if e.Name == "" {
		return ErrElementNameEmpty
	}
	if e.AtomicNumber < MinAtomicNumber || e.AtomicNumber > MaxAtomicNumber {
		return ErrElementAtomicNumberInvalid
	}
	if e.AtomicWeight.LessThan(MinAtomicWeight) || e.AtomicWeight.GreaterThan(MaxAtomicWeight) {
		return ErrElementAtomicWeightInvalid
	}
	return nil
}
