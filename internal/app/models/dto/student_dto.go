package dto

import "github.com/libraria/libraria/internal/app/models"

// CreateStudentRequest carries the fields for registering a student
type CreateStudentRequest struct {
	Registration string  `json:"registration" binding:"required,max=11"`
	Fullname     string  `json:"fullname" binding:"required,max=100"`
	Email        string  `json:"email" binding:"required,email,max=100"`
	Phone        string  `json:"phone" binding:"required,max=100"`
	University   *string `json:"university,omitempty"`
	Course       *string `json:"course,omitempty"`
	Address      *string `json:"address,omitempty"`
}

// ToModel converts the request into a Student
func (r CreateStudentRequest) ToModel() *models.Student {
	return &models.Student{
		Registration: r.Registration,
		Fullname:     r.Fullname,
		Email:        r.Email,
		Phone:        r.Phone,
		University:   r.University,
		Course:       r.Course,
		Address:      r.Address,
	}
}

// UpdateStudentRequest carries the editable fields of a student
type UpdateStudentRequest struct {
	Registration string  `json:"registration" binding:"required,max=11"`
	Fullname     string  `json:"fullname" binding:"required,max=100"`
	Email        string  `json:"email" binding:"required,email,max=100"`
	Phone        string  `json:"phone" binding:"required,max=100"`
	University   *string `json:"university,omitempty"`
	Course       *string `json:"course,omitempty"`
	Address      *string `json:"address,omitempty"`
}

// LendingRequest names the student and the book of a lending transition.
// The same shape is used for both assignment and return.
type LendingRequest struct {
	StudentID int64 `json:"studentId" binding:"required"`
	BookID    int64 `json:"bookId" binding:"required"`
}

// StudentResponse is the API representation of a student
type StudentResponse struct {
	ID           int64          `json:"id"`
	Registration string         `json:"registration"`
	Fullname     string         `json:"fullname"`
	Email        string         `json:"email"`
	Phone        string         `json:"phone"`
	University   *string        `json:"university,omitempty"`
	Course       *string        `json:"course,omitempty"`
	Address      *string        `json:"address,omitempty"`
	Books        []BookResponse `json:"books,omitempty"`
}

// FromStudent converts a models.Student to a StudentResponse
func FromStudent(student *models.Student) StudentResponse {
	if student == nil {
		return StudentResponse{}
	}
	resp := StudentResponse{
		ID:           student.ID,
		Registration: student.Registration,
		Fullname:     student.Fullname,
		Email:        student.Email,
		Phone:        student.Phone,
		University:   student.University,
		Course:       student.Course,
		Address:      student.Address,
	}
	if len(student.Books) > 0 {
		resp.Books = FromBooks(student.Books)
	}
	return resp
}

// FromStudents converts a slice of students
func FromStudents(students []*models.Student) []StudentResponse {
	responses := make([]StudentResponse, 0, len(students))
	for _, student := range students {
		responses = append(responses, FromStudent(student))
	}
	return responses
}
