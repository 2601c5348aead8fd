package formula

import (
	"sort"

	"github.com/shopspring/decimal"
)

// SymbolTable maps element symbols to atomic weights. It is built once and
// never mutated, so concurrent reads need no locking.
type SymbolTable struct {
	weights map[string]decimal.Decimal
}

// NewSymbolTable copies weights into a new SymbolTable. Later changes to the
// passed map are not observed by the table.
func NewSymbolTable(weights map[string]decimal.Decimal) *SymbolTable {
	copied := make(map[string]decimal.Decimal, len(weights))
	for symbol, weight := range weights {
		copied[symbol] = weight
	}
	return &SymbolTable{weights: copied}
}

// Weight returns the atomic weight registered for symbol.
func (t *SymbolTable) Weight(symbol string) (decimal.Decimal, bool) {
	w, ok := t.weights[symbol]
	return w, ok
}

// Has reports whether symbol is a known element symbol. Lookups are case-sensitive.
func (t *SymbolTable) Has(symbol string) bool {
	_, ok := t.weights[symbol]
	return ok
}

// Len returns the number of symbols in the table.
func (t *SymbolTable) Len() int {
	return len(t.weights)
}

// Symbols returns all known symbols in lexical order.
func (t *SymbolTable) Symbols() []string {
	symbols := make([]string, 0, len(t.weights))
	for symbol := range t.weights {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}
