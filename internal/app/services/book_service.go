package services

import (
	"context"
	"strings"

	"github.com/libraria/libraria/internal/app/models"
	"github.com/libraria/libraria/internal/pkg/apperrors"
	"github.com/libraria/libraria/internal/pkg/logger"
)

// BookStore is the persistence surface the book service needs. UpdateIfFree
// and DeleteIfFree carry the FREE precondition into the store write and
// report false when it did not hold.
type BookStore interface {
	Create(ctx context.Context, book *models.Book) error
	GetByID(ctx context.Context, id int64) (*models.Book, error)
	GetAll(ctx context.Context) ([]*models.Book, error)
	GetPage(ctx context.Context, offset uint64, limit int, sort string) ([]*models.Book, int64, error)
	Search(ctx context.Context, filter models.BookFilter) ([]*models.Book, error)
	UpdateIfFree(ctx context.Context, book *models.Book) (bool, error)
	DeleteIfFree(ctx context.Context, id int64) (bool, error)
	ExistsByTitle(ctx context.Context, title string) (bool, error)
}

// AuthorResolver resolves author references on book writes
type AuthorResolver interface {
	GetByID(ctx context.Context, id int64) (*models.Author, error)
}

// BookService handles book catalog operations
type BookService struct {
	bookRepo   BookStore
	authorRepo AuthorResolver
}

// NewBookService creates a new book service instance
func NewBookService(bookRepo BookStore, authorRepo AuthorResolver) *BookService {
	return &BookService{
		bookRepo:   bookRepo,
		authorRepo: authorRepo,
	}
}

// CreateBook adds a new book to the catalog. The book's author must exist
// and the title must be unused; new books always start FREE.
func (s *BookService) CreateBook(ctx context.Context, book *models.Book) error {
	book.Title = strings.TrimSpace(book.Title)

	exists, err := s.bookRepo.ExistsByTitle(ctx, book.Title)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.ErrBookAlreadyExists
	}

	if _, err := s.authorRepo.GetByID(ctx, book.AuthorID); err != nil {
		return err
	}

	book.Status = models.StatusFree
	book.StudentID = nil

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return err
	}

	logger.Info().Int64("bookId", book.ID).Str("title", book.Title).Msg("Book created")
	return nil
}

// GetBookByID retrieves a book by ID
func (s *BookService) GetBookByID(ctx context.Context, id int64) (*models.Book, error) {
	return s.bookRepo.GetByID(ctx, id)
}

// GetAllBooks retrieves all books ordered by id
func (s *BookService) GetAllBooks(ctx context.Context) ([]*models.Book, error) {
	return s.bookRepo.GetAll(ctx)
}

// GetBookPage retrieves one page of books plus the total count
func (s *BookService) GetBookPage(ctx context.Context, offset uint64, limit int, sort string) ([]*models.Book, int64, error) {
	return s.bookRepo.GetPage(ctx, offset, limit, sort)
}

// SearchBooks returns the books matching every set field of the sparse
// filter. An empty filter returns the whole catalog; an empty result is a
// valid empty slice, not an error.
func (s *BookService) SearchBooks(ctx context.Context, filter models.BookFilter) ([]*models.Book, error) {
	return s.bookRepo.Search(ctx, filter)
}

// SearchBooksByTitle returns the books whose title contains the given text,
// case-insensitively.
func (s *BookService) SearchBooksByTitle(ctx context.Context, title string) ([]*models.Book, error) {
	title = strings.TrimSpace(title)
	return s.bookRepo.Search(ctx, models.BookFilter{Title: &title})
}

// UpdateBook edits the catalog fields of a FREE book and re-resolves its
// author reference. A RENTED book is locked against edits until returned.
func (s *BookService) UpdateBook(ctx context.Context, book *models.Book) (*models.Book, error) {
	current, err := s.bookRepo.GetByID(ctx, book.ID)
	if err != nil {
		return nil, err
	}

	if _, err := s.authorRepo.GetByID(ctx, book.AuthorID); err != nil {
		return nil, err
	}

	updated, err := s.bookRepo.UpdateIfFree(ctx, book)
	if err != nil {
		return nil, err
	}
	if !updated {
		logger.Warn().Int64("bookId", book.ID).Msg("Update rejected: book is rented")
		return nil, apperrors.ErrBookRented
	}

	book.Status = current.Status
	book.StudentID = current.StudentID

	logger.Info().Int64("bookId", book.ID).Msg("Book updated")
	return book, nil
}

// DeleteBook removes a FREE book from the catalog. A RENTED book is locked
// against deletion until returned.
func (s *BookService) DeleteBook(ctx context.Context, id int64) error {
	if _, err := s.bookRepo.GetByID(ctx, id); err != nil {
		return err
	}

	deleted, err := s.bookRepo.DeleteIfFree(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		logger.Warn().Int64("bookId", id).Msg("Delete rejected: book is rented")
		return apperrors.ErrBookRented
	}

	logger.Info().Int64("bookId", id).Msg("Book deleted")
	return nil
}
