package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/molweight-api/internal/domain"
	"github.com/phrazzld/molweight-api/internal/platform/logger"
	"github.com/phrazzld/molweight-api/internal/store"
)

// DefaultListLimit caps List when the filter does not set a limit.
const DefaultListLimit = 100

// PostgresCompoundStore implements the store.CompoundStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCompoundStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCompoundStore creates a new PostgreSQL implementation of the CompoundStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCompoundStore(db store.DBTX, logger *slog.Logger) *PostgresCompoundStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresCompoundStore{
		db:     db,
		logger: logger.With(slog.String("component", "compound_store")),
	}
}

var _ store.CompoundStore = (*PostgresCompoundStore)(nil)

// WithTx implements store.CompoundStore.WithTx
func (s *PostgresCompoundStore) WithTx(tx *sql.Tx) store.CompoundStore {
	return &PostgresCompoundStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.CompoundStore.Create
// Returns domain validation errors if the compound is invalid and
// store.ErrFormulaExists if the owner already registered the formula.
func (s *PostgresCompoundStore) Create(ctx context.Context, compound *domain.Compound) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := compound.Validate(); err != nil {
		log.Warn("compound validation failed during create",
			slog.String("error", err.Error()),
			slog.String("compound_id", compound.ID.String()))
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO compounds (id, user_id, name, formula, molecular_weight, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		compound.ID,
		compound.UserID,
		compound.Name,
		compound.Formula,
		compound.MolecularWeight,
		compound.CreatedAt,
		compound.UpdatedAt,
	)
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrFormulaExists) {
			log.Warn("formula already registered by user",
				slog.String("formula", compound.Formula),
				slog.String("user_id", compound.UserID.String()))
			return mapped
		}
		log.Error("failed to create compound",
			slog.String("error", err.Error()),
			slog.String("compound_id", compound.ID.String()))
		return store.NewStoreError("compound", "create", "insert failed", mapped)
	}

	if err := s.insertElements(ctx, compound.ID, compound.Elements); err != nil {
		return err
	}

	log.Info("compound created successfully",
		slog.String("compound_id", compound.ID.String()),
		slog.String("user_id", compound.UserID.String()),
		slog.String("formula", compound.Formula))
	return nil
}

// GetByID implements store.CompoundStore.GetByID
func (s *PostgresCompoundStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Compound, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var c domain.Compound
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, formula, molecular_weight, created_at, updated_at
		FROM compounds
		WHERE id = $1
	`, id).Scan(
		&c.ID,
		&c.UserID,
		&c.Name,
		&c.Formula,
		&c.MolecularWeight,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("compound not found", slog.String("compound_id", id.String()))
			return nil, store.ErrCompoundNotFound
		}
		log.Error("failed to get compound by ID",
			slog.String("error", err.Error()),
			slog.String("compound_id", id.String()))
		return nil, store.NewStoreError("compound", "get", "query failed", MapError(err))
	}

	elements, err := s.listElements(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Elements = elements
	return &c, nil
}

// Update implements store.CompoundStore.Update
func (s *PostgresCompoundStore) Update(ctx context.Context, compound *domain.Compound) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := compound.Validate(); err != nil {
		log.Warn("compound validation failed during update",
			slog.String("error", err.Error()),
			slog.String("compound_id", compound.ID.String()))
		return err
	}

	compound.UpdatedAt = time.Now().UTC()
	result, err := s.db.ExecContext(ctx, `
		UPDATE compounds
		SET name = $1, formula = $2, molecular_weight = $3, updated_at = $4
		WHERE id = $5
	`,
		compound.Name,
		compound.Formula,
		compound.MolecularWeight,
		compound.UpdatedAt,
		compound.ID,
	)
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrFormulaExists) {
			return mapped
		}
		log.Error("failed to update compound",
			slog.String("error", err.Error()),
			slog.String("compound_id", compound.ID.String()))
		return store.NewStoreError("compound", "update", "update failed", mapped)
	}
	if err := CheckRowsAffected(result, store.ErrCompoundNotFound); err != nil {
		return err
	}

	log.Debug("compound updated", slog.String("compound_id", compound.ID.String()))
	return nil
}

// ReplaceElements implements store.CompoundStore.ReplaceElements
func (s *PostgresCompoundStore) ReplaceElements(
	ctx context.Context,
	compoundID uuid.UUID,
	elements []domain.CompoundElement,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM compound_elements WHERE compound_id = $1`, compoundID); err != nil {
		log.Error("failed to clear compound elements",
			slog.String("error", err.Error()),
			slog.String("compound_id", compoundID.String()))
		return store.NewStoreError("compound_element", "delete", "delete failed", MapError(err))
	}
	return s.insertElements(ctx, compoundID, elements)
}

// Delete implements store.CompoundStore.Delete
func (s *PostgresCompoundStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM compounds WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete compound",
			slog.String("error", err.Error()),
			slog.String("compound_id", id.String()))
		return store.NewStoreError("compound", "delete", "delete failed", MapError(err))
	}
	if err := CheckRowsAffected(result, store.ErrCompoundNotFound); err != nil {
		return err
	}

	log.Info("compound deleted", slog.String("compound_id", id.String()))
	return nil
}

// List implements store.CompoundStore.List
func (s *PostgresCompoundStore) List(ctx context.Context, filter store.CompoundFilter) ([]*domain.Compound, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args := buildListQuery(filter)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list compounds",
			slog.String("error", err.Error()),
			slog.String("user_id", filter.UserID.String()))
		return nil, store.NewStoreError("compound", "list", "query failed", MapError(err))
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Warn("failed to close compound rows", slog.String("error", cerr.Error()))
		}
	}()

	compounds := []*domain.Compound{}
	for rows.Next() {
		var c domain.Compound
		if err := rows.Scan(
			&c.ID,
			&c.UserID,
			&c.Name,
			&c.Formula,
			&c.MolecularWeight,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, store.NewStoreError("compound", "list", "scan failed", err)
		}
		compounds = append(compounds, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("compound", "list", "iteration failed", err)
	}
	// A transaction owns one connection, so the rows must be released first.
	_ = rows.Close()

	for _, c := range compounds {
		elements, err := s.listElements(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		c.Elements = elements
	}

	log.Debug("compounds listed",
		slog.String("user_id", filter.UserID.String()),
		slog.Int("count", len(compounds)))
	return compounds, nil
}

// buildListQuery renders the filtered listing with positional arguments.
func buildListQuery(filter store.CompoundFilter) (string, []interface{}) {
	var b strings.Builder
	b.WriteString(`SELECT id, user_id, name, formula, molecular_weight, created_at, updated_at
		FROM compounds
		WHERE user_id = $1`)
	args := []interface{}{filter.UserID}

	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+escapeLike(search)+"%")
		fmt.Fprintf(&b, " AND (name ILIKE $%d OR formula ILIKE $%d)", len(args), len(args))
	}
	if filter.MinWeight != nil {
		args = append(args, *filter.MinWeight)
		fmt.Fprintf(&b, " AND molecular_weight >= $%d", len(args))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	args = append(args, limit)
	fmt.Fprintf(&b, " ORDER BY name, id LIMIT $%d", len(args))

	return b.String(), args
}

// escapeLike escapes the ILIKE wildcards so search text matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (s *PostgresCompoundStore) insertElements(
	ctx context.Context,
	compoundID uuid.UUID,
	elements []domain.CompoundElement,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	for _, e := range elements {
		if e.Count < 1 {
			return domain.ErrCompoundElementCount
		}
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO compound_elements (compound_id, symbol, count)
			VALUES ($1, $2, $3)
		`, compoundID, e.Symbol, e.Count)
		if err != nil {
			mapped := MapError(err)
			log.Error("failed to insert compound element",
				slog.String("error", err.Error()),
				slog.String("compound_id", compoundID.String()),
				slog.String("symbol", e.Symbol))
			if errors.Is(mapped, store.ErrElementNotFound) {
				return mapped
			}
			return store.NewStoreError("compound_element", "create", "insert failed", mapped)
		}
	}
	return nil
}

func (s *PostgresCompoundStore) listElements(
	ctx context.Context,
	compoundID uuid.UUID,
) ([]domain.CompoundElement, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT symbol, count
		FROM compound_elements
		WHERE compound_id = $1
		ORDER BY symbol
	`, compoundID)
	if err != nil {
		return nil, store.NewStoreError("compound_element", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	elements := []domain.CompoundElement{}
	for rows.Next() {
		var e domain.CompoundElement
		if err := rows.Scan(&e.Symbol, &e.Count); err != nil {
			return nil, store.NewStoreError("compound_element", "list", "scan failed", err)
		}
		elements = append(elements, e)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("compound_element", "list", "iteration failed", err)
	}
	return elements, nil
}
