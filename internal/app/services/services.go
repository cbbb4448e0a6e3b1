// Package services contains the business rules of the catalog.
//
// Services defined in this package:
//   - AuthorService: author CRUD, name search and the guarded author deletion
//   - BookService: book CRUD, the sparse attribute search and pageable listing
//   - StudentService: student CRUD and the lending transitions (assign,
//     release, delete-with-release)
//   - AuthService: user registration, login and password changes
//
// A book's Status/StudentID pair is mutated only here, through conditional
// single-statement transitions, so the RENTED ⇔ has-renter invariant holds
// under concurrent access.
package services

import "context"

// TxRunner runs a function inside one store transaction. Multi-entity
// operations (releasing all books of a student and deleting the student,
// deleting an author with its books) are all-or-nothing through it.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
