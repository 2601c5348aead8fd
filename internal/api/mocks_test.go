package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/molweight-api/internal/domain"
	"github.com/phrazzld/molweight-api/internal/formula"
	"github.com/phrazzld/molweight-api/internal/service"
	"github.com/phrazzld/molweight-api/internal/store"
	"github.com/shopspring/decimal"
)

// stubElementStore serves a fixed element list.
type stubElementStore struct {
	elements []domain.Element
}

func (s *stubElementStore) ListAll(ctx context.Context) ([]domain.Element, error) {
	return s.elements, nil
}

func (s *stubElementStore) GetBySymbol(ctx context.Context, symbol string) (*domain.Element, error) {
	for i := range s.elements {
		if s.elements[i].Symbol == symbol {
			return &s.elements[i], nil
		}
	}
	return nil, store.ErrElementNotFound
}

func testElementStore() *stubElementStore {
	el := func(symbol, name string, z int, weight string) domain.Element {
		return domain.Element{
			Symbol:       symbol,
			Name:         name,
			AtomicNumber: z,
			AtomicWeight: decimal.RequireFromString(weight),
		}
	}
	return &stubElementStore{elements: []domain.Element{
		el("H", "Hydrogen", 1, "1.0080"),
		el("C", "Carbon", 6, "12.0110"),
		el("N", "Nitrogen", 7, "14.0070"),
		el("O", "Oxygen", 8, "15.9990"),
		el("Cl", "Chlorine", 17, "35.4530"),
		el("Ca", "Calcium", 20, "40.0780"),
		el("Co", "Cobalt", 27, "58.9332"),
		el("Cu", "Copper", 29, "63.5460"),
	}}
}

// mockCompoundService is a function-field implementation of service.CompoundService.
type mockCompoundService struct {
	AnalyzeFn  func(ctx context.Context, formulaText string) (*formula.Result, error)
	RegisterFn func(ctx context.Context, userID uuid.UUID, name, formulaText string) (*domain.Compound, error)
	UpdateFn   func(ctx context.Context, userID, id uuid.UUID, name, formulaText string) (*domain.Compound, error)
	GetFn      func(ctx context.Context, userID, id uuid.UUID) (*domain.Compound, error)
	DeleteFn   func(ctx context.Context, userID, id uuid.UUID) error
	ListFn     func(ctx context.Context, userID uuid.UUID, filter service.CompoundListFilter) ([]*domain.Compound, error)
}

var _ service.CompoundService = (*mockCompoundService)(nil)

func (m *mockCompoundService) Analyze(ctx context.Context, formulaText string) (*formula.Result, error) {
	return m.AnalyzeFn(ctx, formulaText)
}

func (m *mockCompoundService) Register(
	ctx context.Context,
	userID uuid.UUID,
	name, formulaText string,
) (*domain.Compound, error) {
	return m.RegisterFn(ctx, userID, name, formulaText)
}

func (m *mockCompoundService) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	name, formulaText string,
) (*domain.Compound, error) {
	return m.UpdateFn(ctx, userID, id, name, formulaText)
}

func (m *mockCompoundService) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Compound, error) {
	return m.GetFn(ctx, userID, id)
}

func (m *mockCompoundService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.DeleteFn(ctx, userID, id)
}

func (m *mockCompoundService) List(
	ctx context.Context,
	userID uuid.UUID,
	filter service.CompoundListFilter,
) ([]*domain.Compound, error) {
	return m.ListFn(ctx, userID, filter)
}
