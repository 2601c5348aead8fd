package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/molweight-api/internal/domain"
	"github.com/phrazzld/molweight-api/internal/formula"
	"github.com/phrazzld/molweight-api/internal/platform/logger"
	"github.com/phrazzld/molweight-api/internal/store"
	"github.com/shopspring/decimal"
)

// CompoundListFilter narrows a user's compound listing.
type CompoundListFilter struct {
	// Search matches name or formula, case-insensitively.
	Search string
	// MinWeight keeps compounds at or above this molecular weight.
	MinWeight *decimal.Decimal
	// Limit caps the result size; zero uses the store default.
	Limit int
}

// CompoundService provides formula analysis and compound registration.
type CompoundService interface {
	// Analyze computes weight and composition of a formula without persisting anything.
	Analyze(ctx context.Context, formulaText string) (*formula.Result, error)

	// Register analyzes the formula and saves it as a compound owned by userID.
	// When the analysis fails nothing is persisted and the formula error is returned.
	Register(ctx context.Context, userID uuid.UUID, name, formulaText string) (*domain.Compound, error)

	// Update renames a compound and, when the formula changed or no weight was
	// stored, recalculates its weight and composition.
	Update(ctx context.Context, userID, id uuid.UUID, name, formulaText string) (*domain.Compound, error)

	// Get returns a compound owned by userID.
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.Compound, error)

	// Delete removes a compound owned by userID.
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// List returns the user's compounds ordered by name.
	List(ctx context.Context, userID uuid.UUID, filter CompoundListFilter) ([]*domain.Compound, error)
}

// txRunner matches store.RunInTransaction.
type txRunner func(ctx context.Context, db *sql.DB, fn store.TxFn) error

// compoundServiceImpl implements the CompoundService interface
type compoundServiceImpl struct {
	compoundRepo CompoundRepository
	analyzers    AnalyzerSource
	runInTx      txRunner
	logger       *slog.Logger
}

// NewCompoundService creates a new CompoundService.
// It returns an error if any of the required dependencies are nil.
func NewCompoundService(
	compoundRepo CompoundRepository,
	analyzers AnalyzerSource,
	logger *slog.Logger,
) (CompoundService, error) {
	if compoundRepo == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "compoundRepo cannot be nil"}
	}
	if analyzers == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "analyzers cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &compoundServiceImpl{
		compoundRepo: compoundRepo,
		analyzers:    analyzers,
		runInTx:      store.RunInTransaction,
		logger:       logger.With(slog.String("component", "compound_service")),
	}, nil
}

// Analyze implements CompoundService.Analyze
func (s *compoundServiceImpl) Analyze(ctx context.Context, formulaText string) (*formula.Result, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	analyzer, err := s.analyzers.Analyzer()
	if err != nil {
		log.Error("no analyzer available", slog.String("error", err.Error()))
		return nil, NewServiceError("analyze", "symbol table unavailable", err)
	}

	result, err := analyzer.Analyze(formulaText)
	if err != nil {
		// Formula errors are user input problems and travel unwrapped.
		log.Debug("formula rejected",
			slog.String("formula", formulaText),
			slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("formula analyzed",
		slog.String("formula", formulaText),
		slog.String("weight", result.Weight.String()))
	return result, nil
}

// Register implements CompoundService.Register
func (s *compoundServiceImpl) Register(
	ctx context.Context,
	userID uuid.UUID,
	name, formulaText string,
) (*domain.Compound, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.Analyze(ctx, formulaText)
	if err != nil {
		return nil, err
	}

	compound, err := domain.NewCompound(userID, name, formulaText, result)
	if err != nil {
		log.Warn("compound validation failed",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	err = s.runInTx(ctx, s.compoundRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		return s.compoundRepo.WithTx(tx).Create(ctx, compound)
	})
	if err != nil {
		log.Error("failed to register compound",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("formula", formulaText))
		return nil, NewServiceError("register_compound", "failed to save compound", err)
	}

	log.Info("compound registered",
		slog.String("compound_id", compound.ID.String()),
		slog.String("user_id", userID.String()))
	return compound, nil
}

// Update implements CompoundService.Update
func (s *compoundServiceImpl) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	name, formulaText string,
) (*domain.Compound, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	compound, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	recalculate := compound.NeedsRecalculation(formulaText)
	if recalculate {
		result, err := s.Analyze(ctx, formulaText)
		if err != nil {
			return nil, err
		}
		compound.ApplyAnalysis(formulaText, result)
	}
	compound.Name = domain.NormalizeCompoundName(name)

	if err := compound.Validate(); err != nil {
		log.Warn("compound validation failed during update",
			slog.String("error", err.Error()),
			slog.String("compound_id", id.String()))
		return nil, err
	}

	err = s.runInTx(ctx, s.compoundRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txRepo := s.compoundRepo.WithTx(tx)
		if err := txRepo.Update(ctx, compound); err != nil {
			return err
		}
		if recalculate {
			return txRepo.ReplaceElements(ctx, compound.ID, compound.Elements)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to update compound",
			slog.String("error", err.Error()),
			slog.String("compound_id", id.String()))
		return nil, NewServiceError("update_compound", "failed to save compound", err)
	}

	log.Info("compound updated",
		slog.String("compound_id", id.String()),
		slog.Bool("recalculated", recalculate))
	return compound, nil
}

// Get implements CompoundService.Get
func (s *compoundServiceImpl) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Compound, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	compound, err := s.compoundRepo.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("get_compound", "failed to retrieve compound", err)
	}
	if compound.UserID != userID {
		log.Warn("compound access denied",
			slog.String("compound_id", id.String()),
			slog.String("user_id", userID.String()))
		return nil, ErrNotOwned
	}
	return compound, nil
}

// Delete implements CompoundService.Delete
func (s *compoundServiceImpl) Delete(ctx context.Context, userID, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	if err := s.compoundRepo.Delete(ctx, id); err != nil {
		return NewServiceError("delete_compound", "failed to delete compound", err)
	}

	log.Info("compound deleted", slog.String("compound_id", id.String()))
	return nil
}

// List implements CompoundService.List
func (s *compoundServiceImpl) List(
	ctx context.Context,
	userID uuid.UUID,
	filter CompoundListFilter,
) ([]*domain.Compound, error) {
	compounds, err := s.compoundRepo.List(ctx, store.CompoundFilter{
		UserID:    userID,
		Search:    filter.Search,
		MinWeight: filter.MinWeight,
		Limit:     filter.Limit,
	})
	if err != nil {
		return nil, NewServiceError("list_compounds", "failed to list compounds", err)
	}
	return compounds, nil
}
