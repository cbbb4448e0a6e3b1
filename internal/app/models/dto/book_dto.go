package dto

import (
	"strings"

	"github.com/libraria/libraria/internal/app/models"
)

// CreateBookRequest carries the fields for creating a book
type CreateBookRequest struct {
	Title       string `json:"title" binding:"required,max=300"`
	ISBN        string `json:"isbn" binding:"required,max=100"`
	PublishYear *int   `json:"publishYear,omitempty"`
	AuthorID    int64  `json:"authorId" binding:"required"`
}

// ToModel converts the request into a Book. New books always start FREE.
func (r CreateBookRequest) ToModel() *models.Book {
	return &models.Book{
		Title:       strings.TrimSpace(r.Title),
		ISBN:        strings.TrimSpace(r.ISBN),
		PublishYear: r.PublishYear,
		Status:      models.StatusFree,
		AuthorID:    r.AuthorID,
	}
}

// UpdateBookRequest carries the editable fields of a book. Status and the
// renter reference are never part of a catalog edit.
type UpdateBookRequest struct {
	Title       string `json:"title" binding:"required,max=300"`
	ISBN        string `json:"isbn" binding:"required,max=100"`
	PublishYear *int   `json:"publishYear,omitempty"`
	AuthorID    int64  `json:"authorId" binding:"required"`
}

// BookSearchRequest is the sparse attribute filter for book searches.
// Absent query parameters impose no constraint.
type BookSearchRequest struct {
	ID          *int64  `form:"id"`
	Title       *string `form:"title"`
	ISBN        *string `form:"isbn"`
	PublishYear *int    `form:"publishYear"`
	StudentID   *int64  `form:"studentId"`
	Status      *string `form:"status"`
	AuthorID    *int64  `form:"authorId"`
}

// ToFilter converts the request into a model filter without mutating it
func (r BookSearchRequest) ToFilter() models.BookFilter {
	f := models.BookFilter{
		ID:          r.ID,
		Title:       r.Title,
		ISBN:        r.ISBN,
		PublishYear: r.PublishYear,
		StudentID:   r.StudentID,
		AuthorID:    r.AuthorID,
	}
	if r.Status != nil {
		status := models.BookStatus(strings.ToUpper(strings.TrimSpace(*r.Status)))
		f.Status = &status
	}
	return f
}

// BookResponse is the API representation of a book
type BookResponse struct {
	ID          int64             `json:"id"`
	Title       string            `json:"title"`
	ISBN        string            `json:"isbn"`
	PublishYear *int              `json:"publishYear,omitempty"`
	Status      models.BookStatus `json:"status"`
	AuthorID    int64             `json:"authorId"`
	StudentID   *int64            `json:"studentId,omitempty"`
}

// FromBook converts a models.Book to a BookResponse
func FromBook(book *models.Book) BookResponse {
	if book == nil {
		return BookResponse{}
	}
	return BookResponse{
		ID:          book.ID,
		Title:       book.Title,
		ISBN:        book.ISBN,
		PublishYear: book.PublishYear,
		Status:      book.Status,
		AuthorID:    book.AuthorID,
		StudentID:   book.StudentID,
	}
}

// FromBooks converts a slice of books
func FromBooks(books []*models.Book) []BookResponse {
	responses := make([]BookResponse, 0, len(books))
	for _, book := range books {
		responses = append(responses, FromBook(book))
	}
	return responses
}
