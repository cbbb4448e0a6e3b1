package services

import (
	"context"
	"fmt"

	"github.com/libraria/libraria/internal/app/models"
	"github.com/libraria/libraria/internal/pkg/apperrors"
	"github.com/libraria/libraria/internal/pkg/logger"
)

// AuthorStore is the persistence surface the author service needs
type AuthorStore interface {
	Create(ctx context.Context, author *models.Author) error
	GetByID(ctx context.Context, id int64) (*models.Author, error)
	GetAll(ctx context.Context) ([]*models.Author, error)
	GetPage(ctx context.Context, offset uint64, limit int, sort string) ([]*models.Author, int64, error)
	FindByName(ctx context.Context, name string) ([]*models.Author, error)
	Update(ctx context.Context, author *models.Author) error
	Delete(ctx context.Context, id int64) error
}

// AuthorBookStore is the book persistence surface of author operations
type AuthorBookStore interface {
	GetByAuthorID(ctx context.Context, authorID int64) ([]*models.Book, error)
	CountRentedByAuthor(ctx context.Context, authorID int64) (int64, error)
	DeleteByAuthor(ctx context.Context, authorID int64) (int64, error)
}

// AuthorService handles author catalog operations
type AuthorService struct {
	authorRepo AuthorStore
	bookRepo   AuthorBookStore
	tx         TxRunner
}

// NewAuthorService creates a new author service instance
func NewAuthorService(authorRepo AuthorStore, bookRepo AuthorBookStore, tx TxRunner) *AuthorService {
	return &AuthorService{
		authorRepo: authorRepo,
		bookRepo:   bookRepo,
		tx:         tx,
	}
}

// CreateAuthor adds a new author
func (s *AuthorService) CreateAuthor(ctx context.Context, author *models.Author) error {
	if err := s.authorRepo.Create(ctx, author); err != nil {
		return err
	}

	logger.Info().Int64("authorId", author.ID).Msg("Author created")
	return nil
}

// GetAuthorByID retrieves an author with their books
func (s *AuthorService) GetAuthorByID(ctx context.Context, id int64) (*models.Author, error) {
	author, err := s.authorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	books, err := s.bookRepo.GetByAuthorID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading books of author: %w", err)
	}
	author.Books = books

	return author, nil
}

// GetAllAuthors retrieves all authors
func (s *AuthorService) GetAllAuthors(ctx context.Context) ([]*models.Author, error) {
	return s.authorRepo.GetAll(ctx)
}

// GetAuthorPage retrieves one page of authors plus the total count
func (s *AuthorService) GetAuthorPage(ctx context.Context, offset uint64, limit int, sort string) ([]*models.Author, int64, error) {
	return s.authorRepo.GetPage(ctx, offset, limit, sort)
}

// FindAuthorsByName retrieves authors whose name or lastname equals the
// given value. An empty result is a valid empty slice.
func (s *AuthorService) FindAuthorsByName(ctx context.Context, name string) ([]*models.Author, error) {
	return s.authorRepo.FindByName(ctx, name)
}

// UpdateAuthor updates an existing author
func (s *AuthorService) UpdateAuthor(ctx context.Context, author *models.Author) error {
	if _, err := s.authorRepo.GetByID(ctx, author.ID); err != nil {
		return err
	}

	return s.authorRepo.Update(ctx, author)
}

// DeleteAuthor removes an author together with their books. The deletion is
// refused while any owned book is RENTED: the lending guard must not be
// bypassed by a cascading author delete. Book removal and author removal
// are one transaction.
func (s *AuthorService) DeleteAuthor(ctx context.Context, id int64) error {
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.authorRepo.GetByID(ctx, id); err != nil {
			return err
		}

		rented, err := s.bookRepo.CountRentedByAuthor(ctx, id)
		if err != nil {
			return err
		}
		if rented > 0 {
			logger.Warn().Int64("authorId", id).Int64("rented", rented).Msg("Author deletion rejected: rented books")
			return apperrors.ErrAuthorHasRentedBook
		}

		removed, err := s.bookRepo.DeleteByAuthor(ctx, id)
		if err != nil {
			return err
		}
		if removed > 0 {
			logger.Info().Int64("authorId", id).Int64("removed", removed).Msg("Deleted books of author")
		}

		return s.authorRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	logger.Info().Int64("authorId", id).Msg("Author deleted")
	return nil
}
