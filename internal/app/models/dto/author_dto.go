package dto

import "github.com/libraria/libraria/internal/app/models"

// CreateAuthorRequest carries the fields for creating an author
type CreateAuthorRequest struct {
	Name     string  `json:"name" binding:"required,max=100"`
	Lastname string  `json:"lastname" binding:"required,max=100"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email,max=100"`
	About    *string `json:"about,omitempty"`
}

// ToModel converts the request into an Author
func (r CreateAuthorRequest) ToModel() *models.Author {
	return &models.Author{
		Name:     r.Name,
		Lastname: r.Lastname,
		Email:    r.Email,
		About:    r.About,
	}
}

// UpdateAuthorRequest carries the editable fields of an author
type UpdateAuthorRequest struct {
	Name     string  `json:"name" binding:"required,max=100"`
	Lastname string  `json:"lastname" binding:"required,max=100"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email,max=100"`
	About    *string `json:"about,omitempty"`
}

// AuthorResponse is the API representation of an author
type AuthorResponse struct {
	ID       int64          `json:"id"`
	Name     string         `json:"name"`
	Lastname string         `json:"lastname"`
	Email    *string        `json:"email,omitempty"`
	About    *string        `json:"about,omitempty"`
	Books    []BookResponse `json:"books,omitempty"`
}

// FromAuthor converts a models.Author to an AuthorResponse
func FromAuthor(author *models.Author) AuthorResponse {
	if author == nil {
		return AuthorResponse{}
	}
	resp := AuthorResponse{
		ID:       author.ID,
		Name:     author.Name,
		Lastname: author.Lastname,
		Email:    author.Email,
		About:    author.About,
	}
	if len(author.Books) > 0 {
		resp.Books = FromBooks(author.Books)
	}
	return resp
}

// FromAuthors converts a slice of authors
func FromAuthors(authors []*models.Author) []AuthorResponse {
	responses := make([]AuthorResponse, 0, len(authors))
	for _, author := range authors {
		responses = append(responses, FromAuthor(author))
	}
	return responses
}
