package service

import (
	"database/sql"

	"github.com/phrazzld/molweight-api/internal/store"
)

// CompoundRepository is the store.CompoundStore the service writes through,
// plus the connection used to open transactions.
type CompoundRepository interface {
	store.CompoundStore

	// DB returns the underlying database connection
	DB() *sql.DB
}

// CompoundRepositoryAdapter pairs a store.CompoundStore with its *sql.DB.
type CompoundRepositoryAdapter struct {
	store.CompoundStore
	db *sql.DB
}

// NewCompoundRepositoryAdapter creates a new adapter that implements CompoundRepository
// by delegating to a store.CompoundStore implementation
func NewCompoundRepositoryAdapter(compoundStore store.CompoundStore, db *sql.DB) *CompoundRepositoryAdapter {
	return &CompoundRepositoryAdapter{
		CompoundStore: compoundStore,
		db:            db,
	}
}

// DB implements CompoundRepository.
func (a *CompoundRepositoryAdapter) DB() *sql.DB {
	return a.db
}

var _ CompoundRepository = (*CompoundRepositoryAdapter)(nil)
