// Package domain contains the core business entities of the application:
// chemical elements as kept in the element registry and compounds registered
// from analyzed formulas. It is independent of any specific infrastructure or
// delivery mechanism.
package domain
