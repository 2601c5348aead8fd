package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/molweight-api/internal/domain"
	"github.com/phrazzld/molweight-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockElementStore mocks the store.ElementStore interface
type MockElementStore struct {
	mock.Mock
}

func (m *MockElementStore) ListAll(ctx context.Context) ([]domain.Element, error) {
	args := m.Called(ctx)
	elements, _ := args.Get(0).([]domain.Element)
	return elements, args.Error(1)
}

func (m *MockElementStore) GetBySymbol(ctx context.Context, symbol string) (*domain.Element, error) {
	args := m.Called(ctx, symbol)
	element, _ := args.Get(0).(*domain.Element)
	return element, args.Error(1)
}

// MockCompoundRepository mocks the CompoundRepository interface. WithTx
// returns the mock itself so transactional calls hit the same expectations.
type MockCompoundRepository struct {
	mock.Mock
}

func (m *MockCompoundRepository) Create(ctx context.Context, compound *domain.Compound) error {
	args := m.Called(ctx, compound)
	return args.Error(0)
}

func (m *MockCompoundRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Compound, error) {
	args := m.Called(ctx, id)
	compound, _ := args.Get(0).(*domain.Compound)
	return compound, args.Error(1)
}

func (m *MockCompoundRepository) Update(ctx context.Context, compound *domain.Compound) error {
	args := m.Called(ctx, compound)
	return args.Error(0)
}

func (m *MockCompoundRepository) ReplaceElements(
	ctx context.Context,
	compoundID uuid.UUID,
	elements []domain.CompoundElement,
) error {
	args := m.Called(ctx, compoundID, elements)
	return args.Error(0)
}

func (m *MockCompoundRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCompoundRepository) List(
	ctx context.Context,
	filter store.CompoundFilter,
) ([]*domain.Compound, error) {
	args := m.Called(ctx, filter)
	compounds, _ := args.Get(0).([]*domain.Compound)
	return compounds, args.Error(1)
}

func (m *MockCompoundRepository) WithTx(tx *sql.Tx) store.CompoundStore {
	return m
}

func (m *MockCompoundRepository) DB() *sql.DB {
	return nil
}

// passthroughTx runs fn without a real transaction.
func passthroughTx(ctx context.Context, _ *sql.DB, fn store.TxFn) error {
	return fn(ctx, nil)
}
