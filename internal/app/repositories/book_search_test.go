package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libraria/libraria/internal/app/models"
)

func TestBuildBookSearchSQL(t *testing.T) {
	t.Run("empty filter selects everything", func(t *testing.T) {
		query, args, err := buildBookSearchSQL(models.BookFilter{})
		require.NoError(t, err)
		assert.NotContains(t, query, "WHERE")
		assert.Contains(t, query, `ORDER BY "id" ASC`)
		assert.Empty(t, args)
	})

	t.Run("title matches lowered substring", func(t *testing.T) {
		title := "Clean Code"
		query, args, err := buildBookSearchSQL(models.BookFilter{Title: &title})
		require.NoError(t, err)
		assert.Contains(t, query, "LOWER(title) LIKE")
		require.Len(t, args, 1)
		assert.Equal(t, "%clean code%", args[0])
	})

	t.Run("single equality condition", func(t *testing.T) {
		isbn := "978-0-13-235088-4"
		query, args, err := buildBookSearchSQL(models.BookFilter{ISBN: &isbn})
		require.NoError(t, err)
		assert.Contains(t, query, `"isbn" = $1`)
		require.Len(t, args, 1)
		assert.Equal(t, isbn, args[0])
	})

	t.Run("set fields compose conjunctively", func(t *testing.T) {
		title := "Refactoring"
		year := 2018
		status := models.StatusFree
		authorID := int64(3)
		query, args, err := buildBookSearchSQL(models.BookFilter{
			Title:       &title,
			PublishYear: &year,
			Status:      &status,
			AuthorID:    &authorID,
		})
		require.NoError(t, err)

		assert.Contains(t, query, "LOWER(title) LIKE")
		assert.Contains(t, query, `"publish_year" = `)
		assert.Contains(t, query, `"status" = `)
		assert.Contains(t, query, `"author_id" = `)
		assert.Contains(t, query, " AND ")

		require.Len(t, args, 4)
		assert.Equal(t, "%refactoring%", args[0])
		assert.EqualValues(t, year, args[1])
		assert.Equal(t, "FREE", args[2])
		assert.EqualValues(t, authorID, args[3])
	})

	t.Run("renter condition", func(t *testing.T) {
		studentID := int64(11)
		query, args, err := buildBookSearchSQL(models.BookFilter{StudentID: &studentID})
		require.NoError(t, err)
		assert.Contains(t, query, `"student_id" = $1`)
		require.Len(t, args, 1)
		assert.EqualValues(t, studentID, args[0])
	})

	t.Run("filter is not mutated", func(t *testing.T) {
		title := "Mixed CASE"
		filter := models.BookFilter{Title: &title}
		_, _, err := buildBookSearchSQL(filter)
		require.NoError(t, err)
		assert.Equal(t, "Mixed CASE", *filter.Title)
	})
}

func TestParseSort(t *testing.T) {
	allowed := bookSortColumns

	assert.Equal(t, "title DESC", parseSort("title,desc", allowed))
	assert.Equal(t, "title ASC", parseSort("title,asc", allowed))
	assert.Equal(t, "publish_year ASC", parseSort("publishYear", allowed))
	assert.Equal(t, "id ASC", parseSort("", allowed))

	// Unknown columns fall back instead of reaching the SQL string
	assert.Equal(t, "id ASC", parseSort("password;DROP TABLE book,desc", allowed))
	assert.Equal(t, "id DESC", parseSort("unknown,desc", allowed))
}
