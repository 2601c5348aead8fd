package formula

import (
	"strconv"
	"unicode/utf8"
)

// TokenKind identifies the lexical class of a Token.
type TokenKind int

// Token kinds produced by the tokenizer.
const (
	TokenElement TokenKind = iota
	TokenNumber
	TokenOpen
	TokenClose
)

// String returns the lower-case name of the kind.
func (k TokenKind) String() string {
	switch k {
	case TokenElement:
		return "element"
	case TokenNumber:
		return "number"
	case TokenOpen:
		return "open"
	case TokenClose:
		return "close"
	default:
		return "unknown"
	}
}

// Token is one lexical unit of a formula.
type Token struct {
	Kind TokenKind
	// Text is the token exactly as written.
	Text string
	// Value holds the parsed integer for TokenNumber.
	Value int
	// Pos is the byte offset of the token in the formula.
	Pos int
}

// Tokenize splits formula into element-symbol candidates ([A-Z][a-z]?),
// numbers (\d+) and single bracket characters. Any other character fails
// with an ErrSyntax AnalysisError naming the unrecognized run.
func Tokenize(formula string) ([]Token, error) {
	return scan(formula, nil)
}

// scan is the tokenizer. When pair is non-nil it is consulted for every
// uppercase letter directly followed by another uppercase letter that is not
// itself the start of a two-letter symbol; if it returns true both letters
// are emitted as a single element token so the evaluator can reject it as
// ambiguous.
func scan(formula string, pair func(text string) bool) ([]Token, error) {
	tokens := make([]Token, 0, len(formula))

	for i := 0; i < len(formula); {
		c := formula[i]
		switch {
		case isUpper(c):
			end := i + 1
			if end < len(formula) && isLower(formula[end]) {
				end++
			} else if pair != nil && end < len(formula) && isUpper(formula[end]) &&
				(end+1 >= len(formula) || !isLower(formula[end+1])) &&
				pair(formula[i:end+1]) {
				end++
			}
			tokens = append(tokens, Token{Kind: TokenElement, Text: formula[i:end], Pos: i})
			i = end

		case isDigit(c):
			end := i + 1
			for end < len(formula) && isDigit(formula[end]) {
				end++
			}
			text := formula[i:end]
			n, err := strconv.Atoi(text)
			if err != nil {
				return nil, syntaxError(text, i, "subscript %q at position %d is too large", text, i)
			}
			tokens = append(tokens, Token{Kind: TokenNumber, Text: text, Value: n, Pos: i})
			i = end

		case isOpen(c):
			tokens = append(tokens, Token{Kind: TokenOpen, Text: formula[i : i+1], Pos: i})
			i++

		case isClose(c):
			tokens = append(tokens, Token{Kind: TokenClose, Text: formula[i : i+1], Pos: i})
			i++

		default:
			end := i
			for end < len(formula) && !startsToken(formula[end]) {
				_, size := utf8.DecodeRuneInString(formula[end:])
				end += size
			}
			segment := formula[i:end]
			return nil, syntaxError(segment, i,
				"invalid syntax: unrecognized character or token %q at position %d", segment, i)
		}
	}

	return tokens, nil
}

func startsToken(c byte) bool {
	return isUpper(c) || isDigit(c) || isOpen(c) || isClose(c)
}

func isUpper(c byte) bool { return 'A' <= c && c <= 'Z' }
func isLower(c byte) bool { return 'a' <= c && c <= 'z' }
func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isOpen(c byte) bool {
	return c == '(' || c == '[' || c == '{'
}

func isClose(c byte) bool {
	return c == ')' || c == ']' || c == '}'
}
