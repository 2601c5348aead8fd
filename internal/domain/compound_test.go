package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/molweight-api/internal/formula"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waterResult() *formula.Result {
	return &formula.Result{
		Weight: decimal.RequireFromString("18.0150"),
		Counts: formula.ElementCounts{"O": 1, "H": 2},
	}
}

func TestNewCompound(t *testing.T) {
	userID := uuid.New()

	c, err := NewCompound(userID, "  Water ", "H2O", waterResult())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, c.ID)
	assert.Equal(t, userID, c.UserID)
	assert.Equal(t, "Water", c.Name, "name should be trimmed")
	assert.Equal(t, "H2O", c.Formula)
	assert.Equal(t, "18.015", c.MolecularWeight.String())
	assert.Equal(t, []CompoundElement{{Symbol: "H", Count: 2}, {Symbol: "O", Count: 1}}, c.Elements)
	assert.False(t, c.CreatedAt.IsZero())
	assert.Equal(t, c.CreatedAt, c.UpdatedAt)
}

func TestNewCompound_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		userID  uuid.UUID
		cname   string
		formula string
		result  *formula.Result
		wantErr error
	}{
		{name: "nil user", userID: uuid.Nil, cname: "Water", formula: "H2O", result: waterResult(), wantErr: ErrCompoundUserIDEmpty},
		{name: "blank name", userID: uuid.New(), cname: "   ", formula: "H2O", result: waterResult(), wantErr: ErrCompoundNameInvalid},
		{
			name: "name too long", userID: uuid.New(), cname: strings.Repeat("x", MaxCompoundNameLength+1),
			formula: "H2O", result: waterResult(), wantErr: ErrCompoundNameInvalid,
		},
		{name: "empty formula", userID: uuid.New(), cname: "Water", formula: "", result: waterResult(), wantErr: ErrCompoundFormulaEmpty},
		{name: "no analysis", userID: uuid.New(), cname: "Water", formula: "H2O", result: nil, wantErr: ErrCompoundWeightInvalid},
		{
			name: "no elements", userID: uuid.New(), cname: "Water", formula: "H2O",
			result:  &formula.Result{Weight: decimal.RequireFromString("1.0000"), Counts: formula.ElementCounts{}},
			wantErr: ErrCompoundNoElements,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := NewCompound(tc.userID, tc.cname, tc.formula, tc.result)
			assert.Nil(t, c)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCompound_ValidateElementCount(t *testing.T) {
	c, err := NewCompound(uuid.New(), "Water", "H2O", waterResult())
	require.NoError(t, err)

	c.Elements[0].Count = 0
	assert.ErrorIs(t, c.Validate(), ErrCompoundElementCount)
}

func TestCompound_ValidateColumnBounds(t *testing.T) {
	analyze := func(t *testing.T, text string) *formula.Result {
		t.Helper()
		table := formula.NewSymbolTable(map[string]decimal.Decimal{
			"H":  decimal.RequireFromString("1.0080"),
			"Og": decimal.RequireFromString("294.0000"),
		})
		result, err := formula.New(table).Analyze(text)
		require.NoError(t, err)
		return result
	}

	t.Run("analyzer accepts what the registry cannot store", func(t *testing.T) {
		c, err := NewCompound(uuid.New(), "Hydrogen", "H9999999999", analyze(t, "H9999999999"))
		assert.Nil(t, c)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("atom count beyond integer column", func(t *testing.T) {
		result := &formula.Result{
			Weight: decimal.RequireFromString("1.0080"),
			Counts: formula.ElementCounts{"H": MaxElementCount + 1},
		}
		c, err := NewCompound(uuid.New(), "Hydrogen", "H2147483648", result)
		assert.Nil(t, c)
		assert.ErrorIs(t, err, ErrCompoundElementCount)
	})

	t.Run("largest storable atom count", func(t *testing.T) {
		result := &formula.Result{
			Weight: decimal.RequireFromString("1.0080"),
			Counts: formula.ElementCounts{"H": MaxElementCount},
		}
		c, err := NewCompound(uuid.New(), "Hydrogen", "H2147483647", result)
		require.NoError(t, err)
		assert.Equal(t, MaxElementCount, c.Elements[0].Count)
	})

	t.Run("weight beyond numeric column", func(t *testing.T) {
		c, err := NewCompound(uuid.New(), "Oganesson", "Og999999999", analyze(t, "Og999999999"))
		assert.Nil(t, c)
		assert.ErrorIs(t, err, ErrCompoundWeightTooLarge)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("weight at the column limit", func(t *testing.T) {
		c, err := NewCompound(uuid.New(), "Water", "H2O", waterResult())
		require.NoError(t, err)

		c.MolecularWeight = MaxMolecularWeight
		assert.NoError(t, c.Validate())
	})
}

func TestCompound_NeedsRecalculation(t *testing.T) {
	c, err := NewCompound(uuid.New(), "Water", "H2O", waterResult())
	require.NoError(t, err)

	assert.False(t, c.NeedsRecalculation("H2O"), "same formula with stored weight")
	assert.True(t, c.NeedsRecalculation("H2O2"), "changed formula")

	c.MolecularWeight = decimal.Zero
	assert.True(t, c.NeedsRecalculation("H2O"), "missing weight forces recalculation")
}

func TestElementsFromCounts_Sorted(t *testing.T) {
	elements := ElementsFromCounts(formula.ElementCounts{"Cl": 3, "Co": 1, "H": 18, "N": 6})
	assert.Equal(t, []CompoundElement{
		{Symbol: "Cl", Count: 3},
		{Symbol: "Co", Count: 1},
		{Symbol: "H", Count: 18},
		{Symbol: "N", Count: 6},
	}, elements)
}
