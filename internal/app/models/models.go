// Package models contains the catalog entities persisted by the repositories.
//
// Book carries the lending state. Its Status and StudentID fields are mutated
// only by the lending operations in the services package, never by plain
// catalog edits.
package models
