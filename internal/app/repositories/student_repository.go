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

var studentSortColumns = map[string]string{
	"id":           "id",
	"registration": "registration",
	"fullname":     "fullname",
	"email":        "email",
}

const studentColumns = "id, registration, fullname, email, phone, university, course, address"

// StudentRepository handles database operations for students
type StudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

func (r *StudentRepository) q(ctx context.Context) db.Querier {
	return db.QuerierFrom(ctx, r.pool)
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var student models.Student
	err := row.Scan(
		&student.ID,
		&student.Registration,
		&student.Fullname,
		&student.Email,
		&student.Phone,
		&student.University,
		&student.Course,
		&student.Address,
	)
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func collectStudents(rows pgx.Rows) ([]*models.Student, error) {
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// Create inserts a new student
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO student (registration, fullname, email, phone, university, course, address)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.q(ctx).QueryRow(ctx, query,
		student.Registration, student.Fullname, student.Email, student.Phone,
		student.University, student.Course, student.Address,
	).Scan(&student.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_student_email") {
			return apperrors.ErrStudentEmailExists
		}
		if dberrors.IsDuplicateConstraintError(err, "uq_student_registration") {
			return apperrors.ErrStudentRegistrationExists
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM student WHERE id = $1`

	student, err := scanStudent(r.q(ctx).QueryRow(ctx, query, id))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// GetAll retrieves all students ordered by id
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM student ORDER BY id ASC`

	rows, err := r.q(ctx).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}

	return collectStudents(rows)
}

// GetPage retrieves one page of students plus the total count
func (r *StudentRepository) GetPage(ctx context.Context, offset uint64, limit int, sort string) ([]*models.Student, int64, error) {
	var total int64
	if err := r.q(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM student`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM student ORDER BY %s LIMIT $1 OFFSET $2`,
		studentColumns, parseSort(sort, studentSortColumns))

	rows, err := r.q(ctx).Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error retrieving student page: %w", err)
	}

	students, err := collectStudents(rows)
	if err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

// Update updates an existing student
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE student
		SET registration = $1, fullname = $2, email = $3, phone = $4, university = $5, course = $6, address = $7
		WHERE id = $8
	`

	cmdTag, err := r.q(ctx).Exec(ctx, query,
		student.Registration, student.Fullname, student.Email, student.Phone,
		student.University, student.Course, student.Address, student.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_student_email") {
			return apperrors.ErrStudentEmailExists
		}
		if dberrors.IsDuplicateConstraintError(err, "uq_student_registration") {
			return apperrors.ErrStudentRegistrationExists
		}
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Delete removes a student by ID. Books held by the student must be
// released first, in the same transaction.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.q(ctx).Exec(ctx, `DELETE FROM student WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}
