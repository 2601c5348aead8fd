package postgres

import (
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/molweight-api/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBuildListQuery(t *testing.T) {
	userID := uuid.New()

	t.Run("owner only uses default limit", func(t *testing.T) {
		query, args := buildListQuery(store.CompoundFilter{UserID: userID})

		assert.Contains(t, query, "WHERE user_id = $1")
		assert.Contains(t, query, "ORDER BY name, id LIMIT $2")
		assert.NotContains(t, query, "ILIKE")
		assert.Equal(t, []interface{}{userID, DefaultListLimit}, args)
	})

	t.Run("search and minimum weight", func(t *testing.T) {
		minWeight := decimal.RequireFromString("50")
		query, args := buildListQuery(store.CompoundFilter{
			UserID:    userID,
			Search:    "  acid ",
			MinWeight: &minWeight,
			Limit:     10,
		})

		assert.Contains(t, query, "(name ILIKE $2 OR formula ILIKE $2)")
		assert.Contains(t, query, "molecular_weight >= $3")
		assert.Contains(t, query, "LIMIT $4")
		assert.Equal(t, []interface{}{userID, "%acid%", minWeight, 10}, args)
	})

	t.Run("wildcards are escaped", func(t *testing.T) {
		_, args := buildListQuery(store.CompoundFilter{UserID: userID, Search: "50%_x"})
		assert.Equal(t, `%50\%\_x%`, args[1])
	})
}
