package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/molweight-api/internal/domain"
	"github.com/shopspring/decimal"
)

// CompoundFilter narrows the result of CompoundStore.List.
type CompoundFilter struct {
	// UserID restricts the listing to one owner. Required.
	UserID uuid.UUID
	// Search matches case-insensitively against name or formula when non-empty.
	Search string
	// MinWeight keeps compounds with a molecular weight of at least this value when non-nil.
	MinWeight *decimal.Decimal
	// Limit caps the number of returned compounds; zero means the store default.
	Limit int
}

// CompoundStore defines the interface for compound persistence, including
// the per-element child records derived from the formula analysis.
type CompoundStore interface {
	// Create saves a compound and its element rows.
	// IMPORTANT: run within a transaction (WithTx + store.RunInTransaction) so the
	// compound and its element rows are written atomically.
	// Returns ErrFormulaExists if the owner already registered the same formula.
	Create(ctx context.Context, compound *domain.Compound) error

	// GetByID retrieves a compound with its elements.
	// Returns ErrCompoundNotFound if the compound does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Compound, error)

	// Update saves name, formula and weight of an existing compound.
	// Returns ErrCompoundNotFound if the compound does not exist.
	Update(ctx context.Context, compound *domain.Compound) error

	// ReplaceElements deletes the compound's element rows and inserts the given ones.
	// Must run within a transaction.
	ReplaceElements(ctx context.Context, compoundID uuid.UUID, elements []domain.CompoundElement) error

	// Delete removes a compound; element rows go with it through ON DELETE CASCADE.
	// Returns ErrCompoundNotFound if the compound does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns compounds matching filter ordered by name, without elements.
	List(ctx context.Context, filter CompoundFilter) ([]*domain.Compound, error)

	// WithTx returns a CompoundStore that runs its statements on tx.
	WithTx(tx *sql.Tx) CompoundStore
}
