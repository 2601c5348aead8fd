// Package service contains the application-specific use cases built on the
// formula analyzer. It orchestrates interactions between domain objects and
// repositories (defined in internal/store) to fulfill application features.
//
// Key components:
//
//   - SymbolTableProvider loads the element registry into an immutable
//     formula.SymbolTable and swaps in a fresh analyzer on refresh. Analyses
//     already in flight keep the table they started with.
//   - CompoundService analyzes formulas and registers, updates and lists the
//     compounds a user has saved, applying transactional boundaries where a
//     compound and its element rows must be written together.
//
// The service layer depends on domain entities and repository interfaces (from
// store), but never on specific infrastructure implementations.
package service
