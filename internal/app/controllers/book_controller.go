package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/libraria/libraria/internal/app/models/dto"
	"github.com/libraria/libraria/internal/app/services"
	"github.com/libraria/libraria/internal/middleware"
	"github.com/libraria/libraria/internal/pkg/helpers"
)

// BookController handles book catalog endpoints
type BookController struct {
	bookService *services.BookService
}

// NewBookController creates a new BookController
func NewBookController(bookService *services.BookService) *BookController {
	return &BookController{
		bookService: bookService,
	}
}

// CreateBook handles book creation
// @Summary Create a new book
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateBookRequest true "Book information"
// @Success 201 {object} dto.APIResponse{data=dto.BookResponse}
// @Router /books [post]
func (c *BookController) CreateBook(ctx *gin.Context) {
	var req dto.CreateBookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	book := req.ToModel()
	if err := c.bookService.CreateBook(ctx, book); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.FromBook(book),
		Timestamp: time.Now(),
	})
}

// GetBookByID retrieves a book by ID
// @Summary Get book by ID
// @Tags books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} dto.APIResponse{data=dto.BookResponse}
// @Router /books/{id} [get]
func (c *BookController) GetBookByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	book, err := c.bookService.GetBookByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromBook(book),
		Timestamp: time.Now(),
	})
}

// GetBooks lists books. Without pagination parameters the full catalog is
// returned; with them, one page wrapped in the page envelope.
// @Summary List books
// @Tags books
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Param sort query string false "Sort criteria, e.g. title,desc"
// @Success 200 {object} dto.APIResponse
// @Router /books [get]
func (c *BookController) GetBooks(ctx *gin.Context) {
	if ctx.Query("page") == "" && ctx.Query("size") == "" {
		books, err := c.bookService.GetAllBooks(ctx)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}

		ctx.JSON(http.StatusOK, dto.APIResponse{
			Data:      dto.FromBooks(books),
			Timestamp: time.Now(),
		})
		return
	}

	page, size, sort := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	books, total, err := c.bookService.GetBookPage(ctx, offset, limit, sort)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      helpers.NewPage(dto.FromBooks(books), total, page, size, sort),
		Timestamp: time.Now(),
	})
}

// SearchBooks filters the catalog by any combination of book attributes.
// Absent parameters impose no constraint; title matches as a
// case-insensitive substring.
// @Summary Search books by attributes
// @Tags books
// @Produce json
// @Param id query int false "Book ID"
// @Param title query string false "Title substring, case-insensitive"
// @Param isbn query string false "Exact ISBN"
// @Param publishYear query int false "Exact publish year"
// @Param studentId query int false "Renting student ID"
// @Param status query string false "Book status (FREE or RENTED)"
// @Param authorId query int false "Author ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.BookResponse}
// @Router /books/search [get]
func (c *BookController) SearchBooks(ctx *gin.Context) {
	var req dto.BookSearchRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	books, err := c.bookService.SearchBooks(ctx, req.ToFilter())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromBooks(books),
		Timestamp: time.Now(),
	})
}

// SearchBooksByTitle finds books whose title contains the given text
// @Summary Search books by title
// @Tags books
// @Produce json
// @Param title query string true "Title substring, case-insensitive"
// @Success 200 {object} dto.APIResponse{data=[]dto.BookResponse}
// @Router /books/search/title [get]
func (c *BookController) SearchBooksByTitle(ctx *gin.Context) {
	title := ctx.Query("title")
	if title == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Missing title parameter")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	books, err := c.bookService.SearchBooksByTitle(ctx, title)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromBooks(books),
		Timestamp: time.Now(),
	})
}

// UpdateBook edits the catalog fields of a book. Rejected while the book
// is rented.
// @Summary Update a book
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Param request body dto.UpdateBookRequest true "Book information"
// @Success 200 {object} dto.APIResponse{data=dto.BookResponse}
// @Router /books/{id} [put]
func (c *BookController) UpdateBook(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateBookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	book := dto.CreateBookRequest{
		Title:       req.Title,
		ISBN:        req.ISBN,
		PublishYear: req.PublishYear,
		AuthorID:    req.AuthorID,
	}.ToModel()
	book.ID = id

	updated, err := c.bookService.UpdateBook(ctx, book)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromBook(updated),
		Timestamp: time.Now(),
	})
}

// DeleteBook removes a book from the catalog. Rejected while the book
// is rented.
// @Summary Delete a book
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Router /books/{id} [delete]
func (c *BookController) DeleteBook(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.bookService.DeleteBook(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Book deleted successfully"},
		Timestamp: time.Now(),
	})
}
