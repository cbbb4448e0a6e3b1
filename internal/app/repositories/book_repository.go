package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/libraria/libraria/internal/app/models"
	"github.com/libraria/libraria/internal/db"
	"github.com/libraria/libraria/internal/pkg/apperrors"
	"github.com/libraria/libraria/internal/pkg/dberrors"
)

var pgDialect = goqu.Dialect("postgres")

var bookSortColumns = map[string]string{
	"id":          "id",
	"title":       "title",
	"isbn":        "isbn",
	"publishYear": "publish_year",
	"status":      "status",
}

const bookColumns = "id, title, isbn, publish_year, status, author_id, student_id"

// BookRepository handles database operations for books
type BookRepository struct {
	pool *pgxpool.Pool
}

// NewBookRepository creates a new book repository
func NewBookRepository(pool *pgxpool.Pool) *BookRepository {
	return &BookRepository{pool: pool}
}

func (r *BookRepository) q(ctx context.Context) db.Querier {
	return db.QuerierFrom(ctx, r.pool)
}

func scanBook(row pgx.Row) (*models.Book, error) {
	var book models.Book
	err := row.Scan(
		&book.ID,
		&book.Title,
		&book.ISBN,
		&book.PublishYear,
		&book.Status,
		&book.AuthorID,
		&book.StudentID,
	)
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func collectBooks(rows pgx.Rows) ([]*models.Book, error) {
	defer rows.Close()

	var books []*models.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return books, nil
}

// Create inserts a new book. Uniqueness of title and ISBN is enforced by
// database constraints.
func (r *BookRepository) Create(ctx context.Context, book *models.Book) error {
	query := `
		INSERT INTO book (title, isbn, publish_year, status, author_id, student_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.q(ctx).QueryRow(ctx, query,
		book.Title, book.ISBN, book.PublishYear, book.Status, book.AuthorID, book.StudentID,
	).Scan(&book.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_book_title") ||
			dberrors.IsDuplicateConstraintError(err, "uq_book_isbn") {
			return apperrors.ErrBookAlreadyExists
		}
		return fmt.Errorf("error creating book: %w", err)
	}

	return nil
}

// GetByID retrieves a book by ID
func (r *BookRepository) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM book WHERE id = $1`

	book, err := scanBook(r.q(ctx).QueryRow(ctx, query, id))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrBookNotFound
		}
		return nil, fmt.Errorf("error retrieving book: %w", err)
	}

	return book, nil
}

// GetAll retrieves all books ordered by id
func (r *BookRepository) GetAll(ctx context.Context) ([]*models.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM book ORDER BY id ASC`

	rows, err := r.q(ctx).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error retrieving books: %w", err)
	}

	return collectBooks(rows)
}

// GetByAuthorID retrieves all books owned by an author
func (r *BookRepository) GetByAuthorID(ctx context.Context, authorID int64) ([]*models.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM book WHERE author_id = $1 ORDER BY id ASC`

	rows, err := r.q(ctx).Query(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving books by author: %w", err)
	}

	return collectBooks(rows)
}

// GetByStudentID retrieves all books currently rented by a student
func (r *BookRepository) GetByStudentID(ctx context.Context, studentID int64) ([]*models.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM book WHERE student_id = $1 ORDER BY id ASC`

	rows, err := r.q(ctx).Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving books by student: %w", err)
	}

	return collectBooks(rows)
}

// GetPage retrieves one page of books plus the total count
func (r *BookRepository) GetPage(ctx context.Context, offset uint64, limit int, sort string) ([]*models.Book, int64, error) {
	var total int64
	if err := r.q(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM book`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting books: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM book ORDER BY %s LIMIT $1 OFFSET $2`,
		bookColumns, parseSort(sort, bookSortColumns))

	rows, err := r.q(ctx).Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error retrieving book page: %w", err)
	}

	books, err := collectBooks(rows)
	if err != nil {
		return nil, 0, err
	}

	return books, total, nil
}

// buildBookSearchSQL composes the conjunctive attribute query for a sparse
// filter. Only set fields constrain the result; title matches as a
// case-insensitive substring, everything else by equality. The filter is
// not modified.
func buildBookSearchSQL(filter models.BookFilter) (string, []interface{}, error) {
	ds := pgDialect.From("book").
		Select("id", "title", "isbn", "publish_year", "status", "author_id", "student_id").
		Order(goqu.C("id").Asc())

	var conditions []goqu.Expression
	if filter.ID != nil {
		conditions = append(conditions, goqu.C("id").Eq(*filter.ID))
	}
	if filter.Title != nil {
		pattern := "%" + strings.ToLower(*filter.Title) + "%"
		conditions = append(conditions, goqu.L("LOWER(title)").Like(pattern))
	}
	if filter.ISBN != nil {
		conditions = append(conditions, goqu.C("isbn").Eq(*filter.ISBN))
	}
	if filter.PublishYear != nil {
		conditions = append(conditions, goqu.C("publish_year").Eq(*filter.PublishYear))
	}
	if filter.StudentID != nil {
		conditions = append(conditions, goqu.C("student_id").Eq(*filter.StudentID))
	}
	if filter.Status != nil {
		conditions = append(conditions, goqu.C("status").Eq(string(*filter.Status)))
	}
	if filter.AuthorID != nil {
		conditions = append(conditions, goqu.C("author_id").Eq(*filter.AuthorID))
	}

	if len(conditions) > 0 {
		ds = ds.Where(conditions...)
	}

	return ds.Prepared(true).ToSQL()
}

// Search returns all books matching the sparse filter. An empty filter
// returns the full book set; an empty result is not an error.
func (r *BookRepository) Search(ctx context.Context, filter models.BookFilter) ([]*models.Book, error) {
	query, args, err := buildBookSearchSQL(filter)
	if err != nil {
		return nil, fmt.Errorf("error building book search query: %w", err)
	}

	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error searching books: %w", err)
	}

	return collectBooks(rows)
}

// Rent transitions a book from FREE to RENTED for the given student. The
// status precondition and the effect are one statement, so two concurrent
// rents of the same book cannot both succeed. Returns false when the book
// does not exist or is not FREE.
func (r *BookRepository) Rent(ctx context.Context, bookID, studentID int64) (bool, error) {
	query := `
		UPDATE book
		SET status = $1, student_id = $2
		WHERE id = $3 AND status = $4
	`

	cmdTag, err := r.q(ctx).Exec(ctx, query, models.StatusRented, studentID, bookID, models.StatusFree)
	if err != nil {
		return false, fmt.Errorf("error renting book: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

// Return transitions a book from RENTED back to FREE, but only when it is
// held by the given student. Returns false when the book does not exist, is
// FREE, or is rented by someone else.
func (r *BookRepository) Return(ctx context.Context, bookID, studentID int64) (bool, error) {
	query := `
		UPDATE book
		SET status = $1, student_id = NULL
		WHERE id = $2 AND status = $3 AND student_id = $4
	`

	cmdTag, err := r.q(ctx).Exec(ctx, query, models.StatusFree, bookID, models.StatusRented, studentID)
	if err != nil {
		return false, fmt.Errorf("error returning book: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

// ReleaseAllForStudent frees every book currently rented by the student.
// Meant to run inside the transaction that deletes the student.
func (r *BookRepository) ReleaseAllForStudent(ctx context.Context, studentID int64) (int64, error) {
	query := `
		UPDATE book
		SET status = $1, student_id = NULL
		WHERE student_id = $2
	`

	cmdTag, err := r.q(ctx).Exec(ctx, query, models.StatusFree, studentID)
	if err != nil {
		return 0, fmt.Errorf("error releasing books of student: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}

// UpdateIfFree edits the catalog fields of a book, but only while it is
// FREE. Returns false when the book does not exist or is RENTED.
func (r *BookRepository) UpdateIfFree(ctx context.Context, book *models.Book) (bool, error) {
	query := `
		UPDATE book
		SET title = $1, isbn = $2, publish_year = $3, author_id = $4
		WHERE id = $5 AND status = $6
	`

	cmdTag, err := r.q(ctx).Exec(ctx, query,
		book.Title, book.ISBN, book.PublishYear, book.AuthorID, book.ID, models.StatusFree)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_book_title") ||
			dberrors.IsDuplicateConstraintError(err, "uq_book_isbn") {
			return false, apperrors.ErrBookAlreadyExists
		}
		return false, fmt.Errorf("error updating book: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

// DeleteIfFree removes a book, but only while it is FREE. Returns false
// when the book does not exist or is RENTED.
func (r *BookRepository) DeleteIfFree(ctx context.Context, id int64) (bool, error) {
	query := `DELETE FROM book WHERE id = $1 AND status = $2`

	cmdTag, err := r.q(ctx).Exec(ctx, query, id, models.StatusFree)
	if err != nil {
		return false, fmt.Errorf("error deleting book: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

// CountRentedByAuthor counts the RENTED books owned by an author
func (r *BookRepository) CountRentedByAuthor(ctx context.Context, authorID int64) (int64, error) {
	var count int64
	err := r.q(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM book WHERE author_id = $1 AND status = $2`,
		authorID, models.StatusRented).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting rented books of author: %w", err)
	}

	return count, nil
}

// DeleteByAuthor removes all books owned by an author. Meant to run inside
// the transaction that deletes the author, after the rented-book guard.
func (r *BookRepository) DeleteByAuthor(ctx context.Context, authorID int64) (int64, error) {
	cmdTag, err := r.q(ctx).Exec(ctx, `DELETE FROM book WHERE author_id = $1`, authorID)
	if err != nil {
		return 0, fmt.Errorf("error deleting books of author: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}

// ExistsByTitle checks if a book exists with the exact title
func (r *BookRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	var exists bool
	err := r.q(ctx).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM book WHERE title = $1)`, title).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking book existence: %w", err)
	}

	return exists, nil
}
