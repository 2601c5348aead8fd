//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/molweight-api/internal/domain"
	"github.com/phrazzld/molweight-api/internal/formula"
	"github.com/phrazzld/molweight-api/internal/platform/postgres"
	"github.com/phrazzld/molweight-api/internal/store"
	"github.com/phrazzld/molweight-api/internal/testdb"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCompound(t *testing.T, ctx context.Context, tx *sql.Tx, userID uuid.UUID, name, text string) *domain.Compound {
	t.Helper()

	elements, err := postgres.NewPostgresElementStore(tx, nil).ListAll(ctx)
	require.NoError(t, err)
	weights := make(map[string]decimal.Decimal, len(elements))
	for _, e := range elements {
		weights[e.Symbol] = e.AtomicWeight
	}

	result, err := formula.New(formula.NewSymbolTable(weights)).Analyze(text)
	require.NoError(t, err)

	c, err := domain.NewCompound(userID, name, text, result)
	require.NoError(t, err)
	return c
}

func TestPostgresElementStore(t *testing.T) {
	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		elements := postgres.NewPostgresElementStore(tx, nil)

		t.Run("ListAll returns the seeded periodic table", func(t *testing.T) {
			all, err := elements.ListAll(ctx)
			require.NoError(t, err)
			require.Len(t, all, 118)
			assert.Equal(t, "H", all[0].Symbol)
			assert.Equal(t, "Og", all[117].Symbol)
			for _, e := range all {
				assert.NoError(t, e.Validate(), e.Symbol)
			}
		})

		t.Run("GetBySymbol is case sensitive", func(t *testing.T) {
			co, err := elements.GetBySymbol(ctx, "Co")
			require.NoError(t, err)
			assert.Equal(t, 27, co.AtomicNumber)
			assert.True(t, co.AtomicWeight.Equal(decimal.RequireFromString("58.9332")))

			_, err = elements.GetBySymbol(ctx, "CO")
			assert.ErrorIs(t, err, store.ErrElementNotFound)
		})
	})
}

func TestPostgresCompoundStore_CRUD(t *testing.T) {
	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		compounds := postgres.NewPostgresCompoundStore(db, nil).WithTx(tx)
		userID := uuid.New()

		water := newCompound(t, ctx, tx, userID, "Water", "H2O")
		require.NoError(t, compounds.Create(ctx, water))

		t.Run("GetByID loads elements", func(t *testing.T) {
			got, err := compounds.GetByID(ctx, water.ID)
			require.NoError(t, err)
			assert.Equal(t, "Water", got.Name)
			assert.True(t, got.MolecularWeight.Equal(decimal.RequireFromString("18.0150")))
			assert.Equal(t, []domain.CompoundElement{{Symbol: "H", Count: 2}, {Symbol: "O", Count: 1}}, got.Elements)
		})

		t.Run("duplicate formula for the same user", func(t *testing.T) {
			dup := newCompound(t, ctx, tx, userID, "Water again", "H2O")
			_, err := tx.ExecContext(ctx, "SAVEPOINT duplicate_formula")
			require.NoError(t, err)

			err = compounds.Create(ctx, dup)
			assert.ErrorIs(t, err, store.ErrFormulaExists)

			// The failed insert aborts the transaction until rolled back to the savepoint.
			_, err = tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT duplicate_formula")
			require.NoError(t, err)
		})

		t.Run("same formula for another user", func(t *testing.T) {
			other := newCompound(t, ctx, tx, uuid.New(), "Water", "H2O")
			assert.NoError(t, compounds.Create(ctx, other))
		})

		t.Run("Update and ReplaceElements", func(t *testing.T) {
			peroxide := newCompound(t, ctx, tx, userID, "Peroxide", "H2O2")
			water.Name = peroxide.Name
			water.Formula = peroxide.Formula
			water.MolecularWeight = peroxide.MolecularWeight
			require.NoError(t, compounds.Update(ctx, water))
			require.NoError(t, compounds.ReplaceElements(ctx, water.ID, peroxide.Elements))

			got, err := compounds.GetByID(ctx, water.ID)
			require.NoError(t, err)
			assert.Equal(t, "H2O2", got.Formula)
			assert.Equal(t, []domain.CompoundElement{{Symbol: "H", Count: 2}, {Symbol: "O", Count: 2}}, got.Elements)
		})

		t.Run("Delete cascades", func(t *testing.T) {
			require.NoError(t, compounds.Delete(ctx, water.ID))
			_, err := compounds.GetByID(ctx, water.ID)
			assert.ErrorIs(t, err, store.ErrCompoundNotFound)

			var n int
			require.NoError(t, tx.QueryRowContext(ctx,
				`SELECT COUNT(*) FROM compound_elements WHERE compound_id = $1`, water.ID).Scan(&n))
			assert.Zero(t, n)

			assert.ErrorIs(t, compounds.Delete(ctx, water.ID), store.ErrCompoundNotFound)
		})

		t.Run("Update missing compound", func(t *testing.T) {
			ghost := newCompound(t, ctx, tx, userID, "Ghost", "He")
			assert.ErrorIs(t, compounds.Update(ctx, ghost), store.ErrCompoundNotFound)
		})
	})
}

func TestPostgresCompoundStore_List(t *testing.T) {
	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		compounds := postgres.NewPostgresCompoundStore(tx, nil)
		userID := uuid.New()

		for _, c := range []struct{ name, formula string }{
			{"Water", "H2O"},
			{"Acetic acid", "CH3COOH"},
			{"Sulfuric acid", "H2SO4"},
		} {
			require.NoError(t, compounds.Create(ctx, newCompound(t, ctx, tx, userID, c.name, c.formula)))
		}
		require.NoError(t, compounds.Create(ctx, newCompound(t, ctx, tx, uuid.New(), "Salt", "NaCl")))

		names := func(list []*domain.Compound) []string {
			out := make([]string, len(list))
			for i, c := range list {
				out[i] = c.Name
			}
			return out
		}

		all, err := compounds.List(ctx, store.CompoundFilter{UserID: userID})
		require.NoError(t, err)
		assert.Equal(t, []string{"Acetic acid", "Sulfuric acid", "Water"}, names(all))
		assert.Equal(t, []domain.CompoundElement{{Symbol: "H", Count: 2}, {Symbol: "O", Count: 1}},
			all[2].Elements, "listing should include element counts")

		acids, err := compounds.List(ctx, store.CompoundFilter{UserID: userID, Search: "ACID"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Acetic acid", "Sulfuric acid"}, names(acids))

		byFormula, err := compounds.List(ctx, store.CompoundFilter{UserID: userID, Search: "so4"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Sulfuric acid"}, names(byFormula))

		minWeight := decimal.RequireFromString("60")
		heavy, err := compounds.List(ctx, store.CompoundFilter{UserID: userID, MinWeight: &minWeight})
		require.NoError(t, err)
		assert.Equal(t, []string{"Acetic acid", "Sulfuric acid"}, names(heavy))
	})
}
