package formula

import (
	"errors"
	"fmt"
)

// ErrInvalidFormula is the root of every user-facing validation failure.
// Callers reject the formula and show the error message; nothing derived from
// the formula may be persisted.
var ErrInvalidFormula = errors.New("invalid formula")

// Validation failure kinds. Each wraps ErrInvalidFormula.
var (
	// ErrSyntax is returned for characters or token shapes the tokenizer does not recognize.
	ErrSyntax = fmt.Errorf("%w: syntax error", ErrInvalidFormula)

	// ErrAmbiguousSymbol is returned for a two-letter all-caps symbol whose
	// capitalized form is a known element (e.g. "CU" for "Cu").
	ErrAmbiguousSymbol = fmt.Errorf("%w: ambiguous symbol", ErrInvalidFormula)

	// ErrUnknownSymbol is returned for a well-formed symbol missing from the table.
	ErrUnknownSymbol = fmt.Errorf("%w: unknown symbol", ErrInvalidFormula)

	// ErrUnbalancedGrouping is returned when brackets are not opened and closed in pairs.
	ErrUnbalancedGrouping = fmt.Errorf("%w: unbalanced grouping", ErrInvalidFormula)

	// ErrEmptyFormula is returned when no element was found in the formula.
	ErrEmptyFormula = fmt.Errorf("%w: empty formula", ErrInvalidFormula)
)

// ErrInternal marks an inconsistency between the evaluator and the symbol
// table. It is a system fault and does not wrap ErrInvalidFormula.
var ErrInternal = errors.New("formula analyzer internal error")

// AnalysisError describes why a formula was rejected.
type AnalysisError struct {
	// Kind is one of the Err* sentinels of this package.
	Kind error
	// Segment is the offending token, symbol or bracket, if any.
	Segment string
	// Pos is the byte offset of Segment in the formula, or -1 when not applicable.
	Pos int
	// Suggestion holds the correct symbol for ErrAmbiguousSymbol.
	Suggestion string
	// Message is a human-readable description suitable for end users.
	Message string
}

// Error implements the error interface.
func (e *AnalysisError) Error() string {
	return e.Message
}

// Unwrap returns the failure kind so errors.Is works against the sentinels.
func (e *AnalysisError) Unwrap() error {
	return e.Kind
}

// Code returns a stable machine-readable identifier for the failure kind.
func (e *AnalysisError) Code() string {
	switch {
	case errors.Is(e.Kind, ErrSyntax):
		return "syntax_error"
	case errors.Is(e.Kind, ErrAmbiguousSymbol):
		return "ambiguous_symbol"
	case errors.Is(e.Kind, ErrUnknownSymbol):
		return "unknown_symbol"
	case errors.Is(e.Kind, ErrUnbalancedGrouping):
		return "unbalanced_grouping"
	case errors.Is(e.Kind, ErrEmptyFormula):
		return "empty_formula"
	default:
		return "internal_error"
	}
}

func syntaxError(segment string, pos int, format string, args ...any) *AnalysisError {
	return &AnalysisError{
		Kind:    ErrSyntax,
		Segment: segment,
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	}
}

func ambiguousSymbolError(tok Token, suggestion string) *AnalysisError {
	return &AnalysisError{
		Kind:       ErrAmbiguousSymbol,
		Segment:    tok.Text,
		Pos:        tok.Pos,
		Suggestion: suggestion,
		Message: fmt.Sprintf(
			"ambiguous symbol %q at position %d: use %q",
			tok.Text, tok.Pos, suggestion,
		),
	}
}

func unknownSymbolError(tok Token) *AnalysisError {
	return &AnalysisError{
		Kind:    ErrUnknownSymbol,
		Segment: tok.Text,
		Pos:     tok.Pos,
		Message: fmt.Sprintf("unknown element symbol %q at position %d", tok.Text, tok.Pos),
	}
}

func unbalancedGroupingError(tok Token, detail string) *AnalysisError {
	return &AnalysisError{
		Kind:    ErrUnbalancedGrouping,
		Segment: tok.Text,
		Pos:     tok.Pos,
		Message: fmt.Sprintf("unbalanced grouping: %s %q at position %d", detail, tok.Text, tok.Pos),
	}
}

func emptyFormulaError() *AnalysisError {
	return &AnalysisError{
		Kind:    ErrEmptyFormula,
		Pos:     -1,
		Message: "formula is empty or contains no element symbols",
	}
}

func internalError(symbol string) *AnalysisError {
	return &AnalysisError{
		Kind:    ErrInternal,
		Segment: symbol,
		Pos:     -1,
		Message: fmt.Sprintf("atomic weight for validated symbol %q is missing", symbol),
	}
}
