package store

import (
	"context"

	"github.com/phrazzld/molweight-api/internal/domain"
)

// ElementStore is the read side of the element registry. The formula
// analyzer's symbol table is built from ListAll.
type ElementStore interface {
	// ListAll returns every registered element ordered by atomic number.
	ListAll(ctx context.Context) ([]domain.Element, error)

	// GetBySymbol returns the element with the given case-sensitive symbol.
	// Returns ErrElementNotFound if no such element exists.
	GetBySymbol(ctx context.Context, symbol string) (*domain.Element, error)
}
