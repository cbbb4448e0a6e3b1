package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/libraria/libraria/internal/app/controllers"
	"github.com/libraria/libraria/internal/app/models"
	"github.com/libraria/libraria/internal/middleware"
)

// SetupRouter wires all API routes. Read endpoints are public; every
// mutation requires a valid access token.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	authorController *controllers.AuthorController,
	bookController *controllers.BookController,
	studentController *controllers.StudentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.PUT("/password", authMiddleware.JWTAuth(), authController.ChangePassword)
	}

	authors := v1.Group("/authors")
	{
		authors.GET("", authorController.GetAuthors)
		authors.GET("/search", authorController.FindAuthorsByName)
		authors.GET("/:id", authorController.GetAuthorByID)

		authors.POST("", authMiddleware.JWTAuth(), authorController.CreateAuthor)
		authors.PUT("/:id", authMiddleware.JWTAuth(), authorController.UpdateAuthor)

		// Author deletion removes every owned book with it
		authors.DELETE("/:id",
			authMiddleware.JWTAuth(),
			authMiddleware.RoleRequired(string(models.RoleAdmin)),
			authorController.DeleteAuthor)
	}

	books := v1.Group("/books")
	{
		books.GET("", bookController.GetBooks)
		books.GET("/search", bookController.SearchBooks)
		books.GET("/search/title", bookController.SearchBooksByTitle)
		books.GET("/:id", bookController.GetBookByID)

		books.POST("", authMiddleware.JWTAuth(), bookController.CreateBook)
		books.PUT("/:id", authMiddleware.JWTAuth(), bookController.UpdateBook)
		books.DELETE("/:id", authMiddleware.JWTAuth(), bookController.DeleteBook)
	}

	students := v1.Group("/students")
	{
		students.GET("", studentController.GetStudents)
		students.GET("/:id", studentController.GetStudentByID)

		students.POST("", authMiddleware.JWTAuth(), studentController.CreateStudent)
		students.PUT("/:id", authMiddleware.JWTAuth(), studentController.UpdateStudent)
		students.DELETE("/:id", authMiddleware.JWTAuth(), studentController.DeleteStudent)
	}

	lendings := v1.Group("/lendings", authMiddleware.JWTAuth())
	{
		lendings.POST("", studentController.AssignBook)
		lendings.POST("/return", studentController.ReleaseBook)
	}
}
