package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/libraria/libraria/internal/app/models/dto"
	"github.com/libraria/libraria/internal/app/services"
	"github.com/libraria/libraria/internal/middleware"
	"github.com/libraria/libraria/internal/pkg/helpers"
)

// AuthorController handles author catalog endpoints
type AuthorController struct {
	authorService *services.AuthorService
}

// NewAuthorController creates a new AuthorController
func NewAuthorController(authorService *services.AuthorService) *AuthorController {
	return &AuthorController{
		authorService: authorService,
	}
}

// CreateAuthor handles author creation
// @Summary Create a new author
// @Tags authors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAuthorRequest true "Author information"
// @Success 201 {object} dto.APIResponse{data=dto.AuthorResponse}
// @Router /authors [post]
func (c *AuthorController) CreateAuthor(ctx *gin.Context) {
	var req dto.CreateAuthorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	author := req.ToModel()
	if err := c.authorService.CreateAuthor(ctx, author); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.FromAuthor(author),
		Timestamp: time.Now(),
	})
}

// GetAuthorByID retrieves an author with their books
// @Summary Get author by ID
// @Tags authors
// @Produce json
// @Param id path int true "Author ID"
// @Success 200 {object} dto.APIResponse{data=dto.AuthorResponse}
// @Router /authors/{id} [get]
func (c *AuthorController) GetAuthorByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	author, err := c.authorService.GetAuthorByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromAuthor(author),
		Timestamp: time.Now(),
	})
}

// GetAuthors lists authors. Without pagination parameters the full list is
// returned; with them, one page wrapped in the page envelope.
// @Summary List authors
// @Tags authors
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Param sort query string false "Sort criteria, e.g. id,asc"
// @Success 200 {object} dto.APIResponse
// @Router /authors [get]
func (c *AuthorController) GetAuthors(ctx *gin.Context) {
	if ctx.Query("page") == "" && ctx.Query("size") == "" {
		authors, err := c.authorService.GetAllAuthors(ctx)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}

		ctx.JSON(http.StatusOK, dto.APIResponse{
			Data:      dto.FromAuthors(authors),
			Timestamp: time.Now(),
		})
		return
	}

	page, size, sort := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	authors, total, err := c.authorService.GetAuthorPage(ctx, offset, limit, sort)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      helpers.NewPage(dto.FromAuthors(authors), total, page, size, sort),
		Timestamp: time.Now(),
	})
}

// FindAuthorsByName searches authors by first or last name
// @Summary Find authors by name
// @Tags authors
// @Produce json
// @Param name query string true "First or last name to match"
// @Success 200 {object} dto.APIResponse{data=[]dto.AuthorResponse}
// @Router /authors/search [get]
func (c *AuthorController) FindAuthorsByName(ctx *gin.Context) {
	name := ctx.Query("name")
	if name == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Missing name parameter")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	authors, err := c.authorService.FindAuthorsByName(ctx, name)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromAuthors(authors),
		Timestamp: time.Now(),
	})
}

// UpdateAuthor updates an existing author
// @Summary Update an author
// @Tags authors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Author ID"
// @Param request body dto.UpdateAuthorRequest true "Author information"
// @Success 200 {object} dto.APIResponse{data=dto.AuthorResponse}
// @Router /authors/{id} [put]
func (c *AuthorController) UpdateAuthor(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateAuthorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	author := dto.CreateAuthorRequest{
		Name:     req.Name,
		Lastname: req.Lastname,
		Email:    req.Email,
		About:    req.About,
	}.ToModel()
	author.ID = id

	if err := c.authorService.UpdateAuthor(ctx, author); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromAuthor(author),
		Timestamp: time.Now(),
	})
}

// DeleteAuthor removes an author and their books. Refused while any owned
// book is rented.
// @Summary Delete an author
// @Tags authors
// @Produce json
// @Security BearerAuth
// @Param id path int true "Author ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Router /authors/{id} [delete]
func (c *AuthorController) DeleteAuthor(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.authorService.DeleteAuthor(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Author deleted successfully"},
		Timestamp: time.Now(),
	})
}

// parseIDParam parses a numeric path parameter, writing a 400 response on failure
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid ID").
			WithDetails("ID must be a positive number").
			WithField(name)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
