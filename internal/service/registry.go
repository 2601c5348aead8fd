package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/phrazzld/molweight-api/internal/formula"
	"github.com/phrazzld/molweight-api/internal/platform/logger"
	"github.com/phrazzld/molweight-api/internal/store"
	"github.com/shopspring/decimal"
)

// ErrEmptyRegistry indicates the element store returned no elements.
var ErrEmptyRegistry = errors.New("element registry is empty")

// AnalyzerSource hands out the analyzer built from the current symbol table.
type AnalyzerSource interface {
	Analyzer() (*formula.Analyzer, error)
}

// SymbolTableProvider builds analyzers from the element registry. The current
// analyzer is replaced wholesale on Refresh and never mutated.
type SymbolTableProvider struct {
	elements store.ElementStore
	opts     []formula.Option
	logger   *slog.Logger
	current  atomic.Pointer[formula.Analyzer]
}

var _ AnalyzerSource = (*SymbolTableProvider)(nil)

// NewSymbolTableProvider creates a provider that loads elements from the given store.
// The options are applied to every analyzer it builds.
func NewSymbolTableProvider(
	elements store.ElementStore,
	logger *slog.Logger,
	opts ...formula.Option,
) (*SymbolTableProvider, error) {
	if elements == nil {
		return nil, &ServiceError{
			Operation: "create_provider",
			Message:   "element store cannot be nil",
		}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SymbolTableProvider{
		elements: elements,
		opts:     opts,
		logger:   logger.With(slog.String("component", "symbol_table_provider")),
	}, nil
}

// Analyzer returns the analyzer for the most recently loaded table.
func (p *SymbolTableProvider) Analyzer() (*formula.Analyzer, error) {
	a := p.current.Load()
	if a == nil {
		return nil, ErrSymbolTableNotLoaded
	}
	return a, nil
}

// Refresh reloads the element registry and swaps in a new analyzer. On error
// the previous analyzer stays in service.
func (p *SymbolTableProvider) Refresh(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, p.logger)

	elements, err := p.elements.ListAll(ctx)
	if err != nil {
		log.Error("failed to load elements", slog.String("error", err.Error()))
		return NewServiceError("refresh_symbols", "failed to load elements", err)
	}
	if len(elements) == 0 {
		log.Warn("element registry returned no elements")
		return ErrEmptyRegistry
	}

	weights := make(map[string]decimal.Decimal, len(elements))
	for _, e := range elements {
		if err := e.Validate(); err != nil {
			log.Error("invalid element in registry",
				slog.String("symbol", e.Symbol),
				slog.String("error", err.Error()))
			return NewServiceError("refresh_symbols", fmt.Sprintf("invalid element %q", e.Symbol), err)
		}
		weights[e.Symbol] = e.AtomicWeight
	}

	p.current.Store(formula.New(formula.NewSymbolTable(weights), p.opts...))
	log.Info("symbol table loaded", slog.Int("elements", len(weights)))
	return nil
}

// Run refreshes the table every interval until ctx is done. A non-positive
// interval returns immediately. Refresh failures are logged and retried on
// the next tick.
func (p *SymbolTableProvider) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.Refresh(ctx); err != nil && ctx.Err() == nil {
				p.logger.Warn("periodic symbol table refresh failed",
					slog.String("error", err.Error()))
			}
		}
	}
}
