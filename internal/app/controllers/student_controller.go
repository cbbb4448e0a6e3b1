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

// StudentController handles student and lending endpoints
type StudentController struct {
	studentService *services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService) *StudentController {
	return &StudentController{
		studentService: studentService,
	}
}

// CreateStudent handles student registration
// @Summary Register a new student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student information"
// @Success 201 {object} dto.APIResponse{data=dto.StudentResponse}
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	student := req.ToModel()
	if err := c.studentService.CreateStudent(ctx, student); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.FromStudent(student),
		Timestamp: time.Now(),
	})
}

// GetStudentByID retrieves a student with the books they hold
// @Summary Get student by ID
// @Tags students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse}
// @Router /students/{id} [get]
func (c *StudentController) GetStudentByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	student, err := c.studentService.GetStudentByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromStudent(student),
		Timestamp: time.Now(),
	})
}

// GetStudents lists students. Without pagination parameters the full list
// is returned; with them, one page wrapped in the page envelope.
// @Summary List students
// @Tags students
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Param sort query string false "Sort criteria, e.g. fullname,asc"
// @Success 200 {object} dto.APIResponse
// @Router /students [get]
func (c *StudentController) GetStudents(ctx *gin.Context) {
	if ctx.Query("page") == "" && ctx.Query("size") == "" {
		students, err := c.studentService.GetAllStudents(ctx)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}

		ctx.JSON(http.StatusOK, dto.APIResponse{
			Data:      dto.FromStudents(students),
			Timestamp: time.Now(),
		})
		return
	}

	page, size, sort := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	students, total, err := c.studentService.GetStudentPage(ctx, offset, limit, sort)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      helpers.NewPage(dto.FromStudents(students), total, page, size, sort),
		Timestamp: time.Now(),
	})
}

// UpdateStudent updates an existing student
// @Summary Update a student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.UpdateStudentRequest true "Student information"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse}
// @Router /students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	student := dto.CreateStudentRequest{
		Registration: req.Registration,
		Fullname:     req.Fullname,
		Email:        req.Email,
		Phone:        req.Phone,
		University:   req.University,
		Course:       req.Course,
		Address:      req.Address,
	}.ToModel()
	student.ID = id

	if err := c.studentService.UpdateStudent(ctx, student); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromStudent(student),
		Timestamp: time.Now(),
	})
}

// DeleteStudent removes a student, releasing every book they hold in the
// same transaction.
// @Summary Delete a student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Router /students/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.studentService.DeleteStudent(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Student deleted successfully"},
		Timestamp: time.Now(),
	})
}

// AssignBook rents a free book to a student
// @Summary Assign a book to a student
// @Tags lendings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.LendingRequest true "Student and book"
// @Success 200 {object} dto.APIResponse{data=dto.BookResponse}
// @Failure 409 {object} dto.ErrorResponse "Book is already rented"
// @Router /lendings [post]
func (c *StudentController) AssignBook(ctx *gin.Context) {
	var req dto.LendingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	book, err := c.studentService.AssignBook(ctx, req.StudentID, req.BookID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromBook(book),
		Timestamp: time.Now(),
	})
}

// ReleaseBook returns a rented book. Only the student holding the book may
// return it.
// @Summary Return a book
// @Tags lendings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.LendingRequest true "Student and book"
// @Success 200 {object} dto.APIResponse{data=dto.BookResponse}
// @Failure 409 {object} dto.ErrorResponse "Book is not rented by this student"
// @Router /lendings/return [post]
func (c *StudentController) ReleaseBook(ctx *gin.Context) {
	var req dto.LendingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	book, err := c.studentService.ReleaseBook(ctx, req.StudentID, req.BookID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromBook(book),
		Timestamp: time.Now(),
	})
}
