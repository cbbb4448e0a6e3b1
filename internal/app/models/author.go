package models

// Author represents a book author
type Author struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name" binding:"required"`
	Lastname string  `json:"lastname" binding:"required"`
	Email    *string `json:"email,omitempty"`
	About    *string `json:"about,omitempty"`

	// Books owned by this author, populated on single-entity reads
	Books []*Book `json:"books,omitempty"`
}
