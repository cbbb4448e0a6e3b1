package models

// BookStatus is the availability state of a book
type BookStatus string

const (
	// StatusFree means the book is on the shelf and can be rented
	StatusFree BookStatus = "FREE"
	// StatusRented means the book is held by exactly one student
	StatusRented BookStatus = "RENTED"
)

// IsValid reports whether s is one of the known statuses
func (s BookStatus) IsValid() bool {
	return s == StatusFree || s == StatusRented
}

// Book represents a catalog book.
//
// Invariant: Status == RENTED if and only if StudentID != nil.
type Book struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title" binding:"required"`
	ISBN        string     `json:"isbn" binding:"required"`
	PublishYear *int       `json:"publishYear,omitempty"`
	Status      BookStatus `json:"status"`
	AuthorID    int64      `json:"authorId" binding:"required"`
	StudentID   *int64     `json:"studentId,omitempty"`
}

// BookFilter is a sparse search filter over books. Nil fields impose no
// constraint; set fields are combined with logical AND.
type BookFilter struct {
	ID          *int64
	Title       *string
	ISBN        *string
	PublishYear *int
	StudentID   *int64
	Status      *BookStatus
	AuthorID    *int64
}

// IsEmpty reports whether no field of the filter is set
func (f BookFilter) IsEmpty() bool {
	return f.ID == nil && f.Title == nil && f.ISBN == nil && f.PublishYear == nil &&
		f.StudentID == nil && f.Status == nil && f.AuthorID == nil
}
