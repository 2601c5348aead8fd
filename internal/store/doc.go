// Package store defines interfaces for data persistence operations on
// elements and compounds. These interfaces abstract the underlying data
// storage mechanism from the application's core logic, keeping the formula
// analyzer and the services built on it independent of any specific
// database technology.
package store
