package models

// Student represents a registered library member
type Student struct {
	ID           int64   `json:"id"`
	Registration string  `json:"registration" binding:"required"`
	Fullname     string  `json:"fullname" binding:"required"`
	Email        string  `json:"email" binding:"required,email"`
	Phone        string  `json:"phone" binding:"required"`
	University   *string `json:"university,omitempty"`
	Course       *string `json:"course,omitempty"`
	Address      *string `json:"address,omitempty"`

	// Books currently rented by this student, populated on single-entity reads
	Books []*Book `json:"books,omitempty"`
}
