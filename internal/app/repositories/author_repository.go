package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/libraria/libraria/internal/app/models"
	"github.com/libraria/libraria/internal/db"
	"github.com/libraria/libraria/internal/pkg/apperrors"
	"github.com/libraria/libraria/internal/pkg/dberrors"
)

var authorSortColumns = map[string]string{
	"id":       "id",
	"name":     "name",
	"lastname": "lastname",
	"email":    "email",
}

const authorColumns = "id, name, lastname, email, about"

// AuthorRepository handles database operations for authors
type AuthorRepository struct {
	pool *pgxpool.Pool
}

// NewAuthorRepository creates a new author repository
func NewAuthorRepository(pool *pgxpool.Pool) *AuthorRepository {
	return &AuthorRepository{pool: pool}
}

func (r *AuthorRepository) q(ctx context.Context) db.Querier {
	return db.QuerierFrom(ctx, r.pool)
}

func scanAuthor(row pgx.Row) (*models.Author, error) {
	var author models.Author
	err := row.Scan(
		&author.ID,
		&author.Name,
		&author.Lastname,
		&author.Email,
		&author.About,
	)
	if err != nil {
		return nil, err
	}
	return &author, nil
}

func collectAuthors(rows pgx.Rows) ([]*models.Author, error) {
	defer rows.Close()

	var authors []*models.Author
	for rows.Next() {
		author, err := scanAuthor(rows)
		if err != nil {
			return nil, err
		}
		authors = append(authors, author)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return authors, nil
}

// Create inserts a new author
func (r *AuthorRepository) Create(ctx context.Context, author *models.Author) error {
	query := `
		INSERT INTO author (name, lastname, email, about)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.q(ctx).QueryRow(ctx, query,
		author.Name, author.Lastname, author.Email, author.About,
	).Scan(&author.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_author_email") {
			return apperrors.ErrAuthorEmailExists
		}
		return fmt.Errorf("error creating author: %w", err)
	}

	return nil
}

// GetByID retrieves an author by ID
func (r *AuthorRepository) GetByID(ctx context.Context, id int64) (*models.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM author WHERE id = $1`

	author, err := scanAuthor(r.q(ctx).QueryRow(ctx, query, id))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("error retrieving author: %w", err)
	}

	return author, nil
}

// GetAll retrieves all authors ordered by id
func (r *AuthorRepository) GetAll(ctx context.Context) ([]*models.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM author ORDER BY id ASC`

	rows, err := r.q(ctx).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error retrieving authors: %w", err)
	}

	return collectAuthors(rows)
}

// GetPage retrieves one page of authors plus the total count
func (r *AuthorRepository) GetPage(ctx context.Context, offset uint64, limit int, sort string) ([]*models.Author, int64, error) {
	var total int64
	if err := r.q(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM author`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting authors: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM author ORDER BY %s LIMIT $1 OFFSET $2`,
		authorColumns, parseSort(sort, authorSortColumns))

	rows, err := r.q(ctx).Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error retrieving author page: %w", err)
	}

	authors, err := collectAuthors(rows)
	if err != nil {
		return nil, 0, err
	}

	return authors, total, nil
}

// FindByName retrieves authors whose name or lastname equals the given value
func (r *AuthorRepository) FindByName(ctx context.Context, name string) ([]*models.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM author WHERE name = $1 OR lastname = $1 ORDER BY id ASC`

	rows, err := r.q(ctx).Query(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("error searching authors by name: %w", err)
	}

	return collectAuthors(rows)
}

// Update updates an existing author
func (r *AuthorRepository) Update(ctx context.Context, author *models.Author) error {
	query := `
		UPDATE author
		SET name = $1, lastname = $2, email = $3, about = $4
		WHERE id = $5
	`

	cmdTag, err := r.q(ctx).Exec(ctx, query,
		author.Name, author.Lastname, author.Email, author.About, author.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_author_email") {
			return apperrors.ErrAuthorEmailExists
		}
		return fmt.Errorf("error updating author: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAuthorNotFound
	}

	return nil
}

// Delete removes an author by ID. Books owned by the author must be removed
// first; there is deliberately no storage-level cascade.
func (r *AuthorRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.q(ctx).Exec(ctx, `DELETE FROM author WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting author: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAuthorNotFound
	}

	return nil
}
