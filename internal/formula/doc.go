// Package formula analyzes textual molecular formulas such as "Ca(OH)2" or
// "[Co(NH3)6]Cl3". It validates a formula against a table of known element
// symbols, decomposes it into per-element atom counts and computes the
// molecular weight as an exact decimal quantized to four fractional digits.
//
// An Analyzer is immutable once built and may be shared by any number of
// goroutines. Refreshing the symbol table means building a new Analyzer.
package formula
