package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libraria/libraria/internal/app/models"
	"github.com/libraria/libraria/internal/pkg/apperrors"
)

func newCatalogFixture(t *testing.T) (*BookService, *fakeAuthorStore, *fakeBookStore) {
	t.Helper()
	authorStore := newFakeAuthorStore()
	bookStore := newFakeBookStore()
	return NewBookService(bookStore, authorStore), authorStore, bookStore
}

func seedAuthor(t testingT, store *fakeAuthorStore) *models.Author {
	t.Helper()
	author := &models.Author{Name: "Ursula", Lastname: "Le Guin"}
	require.NoError(t, store.Create(context.Background(), author))
	return author
}

func TestCreateBook(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a free book", func(t *testing.T) {
		svc, authors, books := newCatalogFixture(t)
		author := seedAuthor(t, authors)

		studentID := int64(7)
		book := &models.Book{
			Title:     "  The Dispossessed  ",
			ISBN:      "978-0-06-051275-X",
			AuthorID:  author.ID,
			Status:    models.StatusRented, // must be overridden
			StudentID: &studentID,
		}
		require.NoError(t, svc.CreateBook(ctx, book))

		stored, err := books.GetByID(ctx, book.ID)
		require.NoError(t, err)
		assert.Equal(t, "The Dispossessed", stored.Title)
		assert.Equal(t, models.StatusFree, stored.Status)
		assert.Nil(t, stored.StudentID)
	})

	t.Run("duplicate title", func(t *testing.T) {
		svc, authors, _ := newCatalogFixture(t)
		author := seedAuthor(t, authors)

		first := &models.Book{Title: "Dune", ISBN: "978-0-441-17271-9", AuthorID: author.ID}
		require.NoError(t, svc.CreateBook(ctx, first))

		dup := &models.Book{Title: "Dune", ISBN: "978-0-441-00000-0", AuthorID: author.ID}
		assert.ErrorIs(t, svc.CreateBook(ctx, dup), apperrors.ErrBookAlreadyExists)
	})

	t.Run("unknown author", func(t *testing.T) {
		svc, _, _ := newCatalogFixture(t)
		book := &models.Book{Title: "Orphan", ISBN: "978-0-00-000000-1", AuthorID: 42}
		assert.ErrorIs(t, svc.CreateBook(ctx, book), apperrors.ErrAuthorNotFound)
	})
}

func TestUpdateBook(t *testing.T) {
	ctx := context.Background()

	t.Run("edits a free book", func(t *testing.T) {
		svc, authors, books := newCatalogFixture(t)
		author := seedAuthor(t, authors)
		book := &models.Book{Title: "Old Title", ISBN: "978-0-00-000000-1", AuthorID: author.ID}
		require.NoError(t, svc.CreateBook(ctx, book))

		edit := &models.Book{ID: book.ID, Title: "New Title", ISBN: book.ISBN, AuthorID: author.ID}
		updated, err := svc.UpdateBook(ctx, edit)
		require.NoError(t, err)
		assert.Equal(t, models.StatusFree, updated.Status)

		stored, err := books.GetByID(ctx, book.ID)
		require.NoError(t, err)
		assert.Equal(t, "New Title", stored.Title)
	})

	t.Run("rented book is locked against edits", func(t *testing.T) {
		svc, authors, books := newCatalogFixture(t)
		author := seedAuthor(t, authors)
		book := &models.Book{Title: "Held", ISBN: "978-0-00-000000-2", AuthorID: author.ID}
		require.NoError(t, svc.CreateBook(ctx, book))

		rented, err := books.Rent(ctx, book.ID, 1)
		require.NoError(t, err)
		require.True(t, rented)

		edit := &models.Book{ID: book.ID, Title: "Renamed", ISBN: book.ISBN, AuthorID: author.ID}
		_, err = svc.UpdateBook(ctx, edit)
		assert.ErrorIs(t, err, apperrors.ErrBookRented)

		stored, err := books.GetByID(ctx, book.ID)
		require.NoError(t, err)
		assert.Equal(t, "Held", stored.Title)
	})

	t.Run("unknown book", func(t *testing.T) {
		svc, authors, _ := newCatalogFixture(t)
		author := seedAuthor(t, authors)
		edit := &models.Book{ID: 42, Title: "Ghost", ISBN: "978-0-00-000000-3", AuthorID: author.ID}
		_, err := svc.UpdateBook(ctx, edit)
		assert.ErrorIs(t, err, apperrors.ErrBookNotFound)
	})
}

func TestDeleteBook(t *testing.T) {
	ctx := context.Background()

	t.Run("removes a free book", func(t *testing.T) {
		svc, authors, books := newCatalogFixture(t)
		author := seedAuthor(t, authors)
		book := &models.Book{Title: "Ephemeral", ISBN: "978-0-00-000000-4", AuthorID: author.ID}
		require.NoError(t, svc.CreateBook(ctx, book))

		require.NoError(t, svc.DeleteBook(ctx, book.ID))

		_, err := books.GetByID(ctx, book.ID)
		assert.ErrorIs(t, err, apperrors.ErrBookNotFound)
	})

	t.Run("rented book is locked against deletion", func(t *testing.T) {
		svc, authors, books := newCatalogFixture(t)
		author := seedAuthor(t, authors)
		book := &models.Book{Title: "Held", ISBN: "978-0-00-000000-5", AuthorID: author.ID}
		require.NoError(t, svc.CreateBook(ctx, book))

		rented, err := books.Rent(ctx, book.ID, 1)
		require.NoError(t, err)
		require.True(t, rented)

		assert.ErrorIs(t, svc.DeleteBook(ctx, book.ID), apperrors.ErrBookRented)

		_, err = books.GetByID(ctx, book.ID)
		require.NoError(t, err)
	})

	t.Run("unknown book", func(t *testing.T) {
		svc, _, _ := newCatalogFixture(t)
		assert.ErrorIs(t, svc.DeleteBook(ctx, 42), apperrors.ErrBookNotFound)
	})
}

func TestSearchBooks(t *testing.T) {
	ctx := context.Background()
	svc, authors, books := newCatalogFixture(t)
	author := seedAuthor(t, authors)

	year1974 := 1974
	titles := []models.Book{
		{Title: "The Dispossessed", ISBN: "978-0-06-051275-X", PublishYear: &year1974, AuthorID: author.ID},
		{Title: "The Left Hand of Darkness", ISBN: "978-0-441-47812-5", AuthorID: author.ID},
		{Title: "A Wizard of Earthsea", ISBN: "978-0-547-72202-0", AuthorID: author.ID},
	}
	for i := range titles {
		require.NoError(t, svc.CreateBook(ctx, &titles[i]))
	}
	rented, err := books.Rent(ctx, titles[1].ID, 9)
	require.NoError(t, err)
	require.True(t, rented)

	t.Run("empty filter returns everything", func(t *testing.T) {
		found, err := svc.SearchBooks(ctx, models.BookFilter{})
		require.NoError(t, err)
		assert.Len(t, found, 3)
	})

	t.Run("title matches case-insensitive substring", func(t *testing.T) {
		found, err := svc.SearchBooksByTitle(ctx, "dARk")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "The Left Hand of Darkness", found[0].Title)
	})

	t.Run("conjunctive filter", func(t *testing.T) {
		title := "the"
		status := models.StatusFree
		found, err := svc.SearchBooks(ctx, models.BookFilter{Title: &title, Status: &status})
		require.NoError(t, err)
		require.Len(t, found, 2)
		for _, b := range found {
			assert.Equal(t, models.StatusFree, b.Status)
		}
	})

	t.Run("no match is an empty result, not an error", func(t *testing.T) {
		found, err := svc.SearchBooksByTitle(ctx, "nonexistent")
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("filter by renting student", func(t *testing.T) {
		studentID := int64(9)
		found, err := svc.SearchBooks(ctx, models.BookFilter{StudentID: &studentID})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, titles[1].ID, found[0].ID)
	})
}
