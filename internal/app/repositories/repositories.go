package repositories

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	AuthorRepository  *AuthorRepository
	BookRepository    *BookRepository
	StudentRepository *StudentRepository
	UserRepository    *UserRepository
}

// NewRepositories initializes all repositories
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		AuthorRepository:  NewAuthorRepository(pool),
		BookRepository:    NewBookRepository(pool),
		StudentRepository: NewStudentRepository(pool),
		UserRepository:    NewUserRepository(pool),
	}
}

// parseSort turns a "field,direction" sort parameter into an ORDER BY
// fragment, restricted to the allowed column mapping. Unknown fields or
// directions fall back to ascending id.
func parseSort(sort string, allowed map[string]string) string {
	field := "id"
	direction := "ASC"

	parts := strings.SplitN(sort, ",", 2)
	if col, ok := allowed[strings.TrimSpace(parts[0])]; ok {
		field = col
	}
	if len(parts) == 2 && strings.EqualFold(strings.TrimSpace(parts[1]), "desc") {
		direction = "DESC"
	}

	return fmt.Sprintf("%s %s", field, direction)
}
