package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/molweight-api/internal/domain"
	"github.com/phrazzld/molweight-api/internal/platform/logger"
	"github.com/phrazzld/molweight-api/internal/store"
)

// PostgresElementStore implements store.ElementStore over the seeded elements table.
type PostgresElementStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresElementStore creates a new PostgreSQL implementation of the ElementStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresElementStore(db store.DBTX, logger *slog.Logger) *PostgresElementStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresElementStore{
		db:     db,
		logger: logger.With(slog.String("component", "element_store")),
	}
}

var _ store.ElementStore = (*PostgresElementStore)(nil)

// ListAll implements store.ElementStore.ListAll
func (s *PostgresElementStore) ListAll(ctx context.Context) ([]domain.Element, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT symbol, name, atomic_number, atomic_weight
		FROM elements
		ORDER BY atomic_number
	`)
	if err != nil {
		log.Error("failed to query elements", slog.String("error", err.Error()))
		return nil, store.NewStoreError("element", "list", "query failed", MapError(err))
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Warn("failed to close element rows", slog.String("error", cerr.Error()))
		}
	}()

	var elements []domain.Element
	for rows.Next() {
		var e domain.Element
		if err := rows.Scan(&e.Symbol, &e.Name, &e.AtomicNumber, &e.AtomicWeight); err != nil {
			log.Error("failed to scan element row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("element", "list", "scan failed", err)
		}
		elements = append(elements, e)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating element rows", slog.String("error", err.Error()))
		return nil, store.NewStoreError("element", "list", "iteration failed", err)
	}

	log.Debug("elements loaded", slog.Int("count", len(elements)))
	return elements, nil
}

// GetBySymbol implements store.ElementStore.GetBySymbol
func (s *PostgresElementStore) GetBySymbol(ctx context.Context, symbol string) (*domain.Element, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var e domain.Element
	err := s.db.QueryRowContext(ctx, `
		SELECT symbol, name, atomic_number, atomic_weight
		FROM elements
		WHERE symbol = $1
	`, symbol).Scan(&e.Symbol, &e.Name, &e.AtomicNumber, &e.AtomicWeight)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("element not found", slog.String("symbol", symbol))
			return nil, store.ErrElementNotFound
		}
		log.Error("failed to get element",
			slog.String("error", err.Error()),
			slog.String("symbol", symbol))
		return nil, store.NewStoreError("element", "get", "query failed", MapError(err))
	}
	return &e, nil
}
