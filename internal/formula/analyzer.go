package formula

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// WeightPlaces is the number of fractional digits molecular weights are
// quantized to. It matches the precision of stored atomic weights.
const WeightPlaces = 4

// ElementCounts maps an element symbol to its number of atoms.
type ElementCounts map[string]int

// Result is the outcome of a successful analysis.
type Result struct {
	// Weight is the molecular weight quantized to WeightPlaces digits.
	Weight decimal.Decimal
	// Counts holds the number of atoms of every element in the formula.
	Counts ElementCounts
}

// TotalAtoms returns the sum of all element counts.
func (r *Result) TotalAtoms() int {
	total := 0
	for _, n := range r.Counts {
		total += n
	}
	return total
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithMaxLength rejects formulas longer than n bytes. Zero or negative means unbounded.
func WithMaxLength(n int) Option {
	return func(a *Analyzer) {
		a.maxLength = n
	}
}

// Analyzer validates formulas against a SymbolTable and computes their
// composition and weight. It holds no per-call state.
type Analyzer struct {
	table     *SymbolTable
	maxLength int
}

// New creates an Analyzer over table.
func New(table *SymbolTable, opts ...Option) *Analyzer {
	if table == nil {
		table = NewSymbolTable(nil)
	}
	a := &Analyzer{table: table}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Table returns the symbol table the analyzer validates against.
func (a *Analyzer) Table() *SymbolTable {
	return a.table
}

// Analyze tokenizes and evaluates formula. On failure it returns an
// *AnalysisError and no result; partial results are never returned.
//
// Two adjacent capitals such as "CU" are rejected as ambiguous only when the
// split reading is invalid, i.e. when "Cu" is known and "C" or "U" is not.
// Against a full periodic table "CU" therefore reads as carbon and uranium.
func (a *Analyzer) Analyze(formula string) (*Result, error) {
	if a.maxLength > 0 && len(formula) > a.maxLength {
		return nil, syntaxError("", a.maxLength,
			"formula is %d characters long, the maximum is %d", len(formula), a.maxLength)
	}

	tokens, err := scan(formula, a.ambiguousPair)
	if err != nil {
		return nil, err
	}

	counts, err := a.evaluate(tokens)
	if err != nil {
		return nil, err
	}

	weight, err := a.weigh(counts)
	if err != nil {
		return nil, err
	}

	return &Result{Weight: weight, Counts: counts}, nil
}

// ambiguousPair reports whether two adjacent capitals should be kept together
// as one symbol candidate: their capitalized form is a known element and
// reading them as two separate elements would not be valid.
func (a *Analyzer) ambiguousPair(text string) bool {
	if !a.table.Has(capitalize(text)) {
		return false
	}
	return !a.table.Has(text[:1]) || !a.table.Has(text[1:])
}

// evaluate walks tokens right to left, so every subscript is seen before the
// element or group it multiplies. The multiplier stack holds the cumulative
// factor of every open group; closers mirrors it with the bracket tokens
// that pushed each entry.
func (a *Analyzer) evaluate(tokens []Token) (ElementCounts, error) {
	counts := make(ElementCounts)
	stack := []int{1}
	closers := make([]Token, 0, 4)
	factor := 1
	pending := 1

	for i := len(tokens) - 1; i >= 0; i-- {
		tok := tokens[i]

		switch tok.Kind {
		case TokenNumber:
			pending = tok.Value

		case TokenClose:
			next, ok := mul(factor, pending)
			if !ok {
				return nil, syntaxError(tok.Text, tok.Pos,
					"group multiplier at position %d is too large", tok.Pos)
			}
			factor = next
			stack = append(stack, factor)
			closers = append(closers, tok)
			pending = 1

		case TokenOpen:
			if len(stack) == 1 {
				return nil, unbalancedGroupingError(tok, "opening bracket is never closed")
			}
			stack = stack[:len(stack)-1]
			closers = closers[:len(closers)-1]
			factor = stack[len(stack)-1]
			pending = 1

		case TokenElement:
			symbol := tok.Text
			if len(symbol) == 2 && isUpper(symbol[0]) && isUpper(symbol[1]) {
				if suggestion := capitalize(symbol); a.table.Has(suggestion) {
					return nil, ambiguousSymbolError(tok, suggestion)
				}
			}
			if !a.table.Has(symbol) {
				return nil, unknownSymbolError(tok)
			}

			total, ok := mul(pending, factor)
			if !ok {
				return nil, syntaxError(tok.Text, tok.Pos,
					"atom count for %q at position %d is too large", symbol, tok.Pos)
			}
			if total == 0 {
				// The zero stays pending and also applies to the next element to the left.
				continue
			}
			sum, ok := add(counts[symbol], total)
			if !ok {
				return nil, syntaxError(tok.Text, tok.Pos,
					"atom count for %q at position %d is too large", symbol, tok.Pos)
			}
			counts[symbol] = sum
			pending = 1
		}
	}

	if len(stack) > 1 {
		return nil, unbalancedGroupingError(closers[len(closers)-1], "closing bracket has no opening")
	}
	if len(counts) == 0 {
		return nil, emptyFormulaError()
	}

	return counts, nil
}

// weigh sums atomic weight times count for every element.
func (a *Analyzer) weigh(counts ElementCounts) (decimal.Decimal, error) {
	total := decimal.Zero
	for symbol, n := range counts {
		w, ok := a.table.Weight(symbol)
		if !ok {
			return decimal.Decimal{}, internalError(symbol)
		}
		total = total.Add(w.Mul(decimal.NewFromInt(int64(n))))
	}
	return total.RoundBank(WeightPlaces), nil
}

func capitalize(symbol string) string {
	return symbol[:1] + strings.ToLower(symbol[1:])
}

func mul(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

func add(a, b int) (int, bool) {
	if a > math.MaxInt-b {
		return 0, false
	}
	return a + b, true
}
