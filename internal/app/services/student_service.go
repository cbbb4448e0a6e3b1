package services

import (
	"context"
	"fmt"

	"github.com/libraria/libraria/internal/app/models"
	"github.com/libraria/libraria/internal/pkg/apperrors"
	"github.com/libraria/libraria/internal/pkg/logger"
)

// StudentStore is the persistence surface the student service needs
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetAll(ctx context.Context) ([]*models.Student, error)
	GetPage(ctx context.Context, offset uint64, limit int, sort string) ([]*models.Student, int64, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
}

// LendingBookStore is the book persistence surface of the lending
// transitions. Rent and Return are conditional single-statement updates:
// they report false when the state precondition did not hold at the moment
// of the write.
type LendingBookStore interface {
	GetByID(ctx context.Context, id int64) (*models.Book, error)
	GetByStudentID(ctx context.Context, studentID int64) ([]*models.Book, error)
	Rent(ctx context.Context, bookID, studentID int64) (bool, error)
	Return(ctx context.Context, bookID, studentID int64) (bool, error)
	ReleaseAllForStudent(ctx context.Context, studentID int64) (int64, error)
}

// StudentService handles student operations and the lending state machine
type StudentService struct {
	studentRepo StudentStore
	bookRepo    LendingBookStore
	tx          TxRunner
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo StudentStore, bookRepo LendingBookStore, tx TxRunner) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		bookRepo:    bookRepo,
		tx:          tx,
	}
}

// CreateStudent registers a new student
func (s *StudentService) CreateStudent(ctx context.Context, student *models.Student) error {
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return err
	}

	logger.Info().Int64("studentId", student.ID).Str("registration", student.Registration).Msg("Student created")
	return nil
}

// GetStudentByID retrieves a student with the books they currently hold
func (s *StudentService) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	books, err := s.bookRepo.GetByStudentID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading books of student: %w", err)
	}
	student.Books = books

	return student, nil
}

// GetAllStudents retrieves all students
func (s *StudentService) GetAllStudents(ctx context.Context) ([]*models.Student, error) {
	return s.studentRepo.GetAll(ctx)
}

// GetStudentPage retrieves one page of students plus the total count
func (s *StudentService) GetStudentPage(ctx context.Context, offset uint64, limit int, sort string) ([]*models.Student, int64, error) {
	return s.studentRepo.GetPage(ctx, offset, limit, sort)
}

// UpdateStudent updates an existing student
func (s *StudentService) UpdateStudent(ctx context.Context, student *models.Student) error {
	if _, err := s.studentRepo.GetByID(ctx, student.ID); err != nil {
		return err
	}

	return s.studentRepo.Update(ctx, student)
}

// AssignBook rents a FREE book to a student. The FREE precondition and the
// transition to RENTED are applied as one indivisible store write, so of two
// concurrent assignments of the same book exactly one succeeds.
func (s *StudentService) AssignBook(ctx context.Context, studentID, bookID int64) (*models.Book, error) {
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	rented, err := s.bookRepo.Rent(ctx, bookID, studentID)
	if err != nil {
		return nil, err
	}
	if !rented {
		// The book exists, so the only failed precondition is its status.
		logger.Warn().Int64("bookId", bookID).Int64("studentId", studentID).Msg("Assign rejected: book already rented")
		return nil, apperrors.ErrBookAlreadyRented
	}

	book.Status = models.StatusRented
	book.StudentID = &studentID

	logger.Info().Int64("bookId", bookID).Int64("studentId", studentID).Msg("Book assigned to student")
	return book, nil
}

// ReleaseBook returns a RENTED book. Only the student who holds the book
// may return it; naming any other student leaves the book untouched and
// reports a conflict.
func (s *StudentService) ReleaseBook(ctx context.Context, studentID, bookID int64) (*models.Book, error) {
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	returned, err := s.bookRepo.Return(ctx, bookID, studentID)
	if err != nil {
		return nil, err
	}
	if !returned {
		// The book exists but is FREE or held by a different student.
		logger.Warn().Int64("bookId", bookID).Int64("studentId", studentID).Msg("Release rejected: book not rented by this student")
		return nil, apperrors.ErrBookNotRentedBy
	}

	book.Status = models.StatusFree
	book.StudentID = nil

	logger.Info().Int64("bookId", bookID).Int64("studentId", studentID).Msg("Book returned by student")
	return book, nil
}

// DeleteStudent removes a student. Every book the student holds is released
// in the same transaction as the deletion, so no book is ever left pointing
// at a deleted student.
func (s *StudentService) DeleteStudent(ctx context.Context, id int64) error {
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.studentRepo.GetByID(ctx, id); err != nil {
			return err
		}

		released, err := s.bookRepo.ReleaseAllForStudent(ctx, id)
		if err != nil {
			return err
		}
		if released > 0 {
			logger.Info().Int64("studentId", id).Int64("released", released).Msg("Released books of student before deletion")
		}

		return s.studentRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	logger.Info().Int64("studentId", id).Msg("Student deleted")
	return nil
}
