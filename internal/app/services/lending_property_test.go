package services

import (
	"context"
	"errors"
	"testing"

	"pgregory.net/rapid"

	"github.com/libraria/libraria/internal/app/models"
	"github.com/libraria/libraria/internal/pkg/apperrors"
)

// TestLendingStateMachine drives random operation sequences against the
// lending service and checks after every step that each book is either FREE
// with no renter or RENTED by exactly one existing student, and that the
// service verdict agrees with a shadow model of the expected holder.
func TestLendingStateMachine(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ctx := context.Background()
		studentStore := newFakeStudentStore()
		bookStore := newFakeBookStore()
		svc := NewStudentService(studentStore, bookStore, passthroughTx{})

		numStudents := rapid.IntRange(1, 4).Draw(rt, "numStudents")
		numBooks := rapid.IntRange(1, 6).Draw(rt, "numBooks")

		studentIDs := make([]int64, 0, numStudents)
		for i := 0; i < numStudents; i++ {
			studentIDs = append(studentIDs, seedStudent(rt, studentStore, i+1).ID)
		}
		bookIDs := make([]int64, 0, numBooks)
		for i := 0; i < numBooks; i++ {
			bookIDs = append(bookIDs, seedBook(rt, bookStore, i+1).ID)
		}

		// Shadow model: book id -> holder id, absent means FREE
		holders := make(map[int64]int64)
		alive := make(map[int64]bool)
		for _, id := range studentIDs {
			alive[id] = true
		}

		steps := rapid.IntRange(1, 40).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			studentID := rapid.SampledFrom(studentIDs).Draw(rt, "studentId")
			bookID := rapid.SampledFrom(bookIDs).Draw(rt, "bookId")

			switch rapid.IntRange(0, 2).Draw(rt, "op") {
			case 0: // assign
				_, err := svc.AssignBook(ctx, studentID, bookID)
				_, held := holders[bookID]
				switch {
				case !alive[studentID]:
					if !errors.Is(err, apperrors.ErrStudentNotFound) {
						rt.Fatalf("assign with deleted student %d: got %v", studentID, err)
					}
				case held:
					if !errors.Is(err, apperrors.ErrBookAlreadyRented) {
						rt.Fatalf("assign of held book %d: got %v", bookID, err)
					}
				default:
					if err != nil {
						rt.Fatalf("assign of free book %d: got %v", bookID, err)
					}
					holders[bookID] = studentID
				}

			case 1: // release
				_, err := svc.ReleaseBook(ctx, studentID, bookID)
				holder, held := holders[bookID]
				switch {
				case !alive[studentID]:
					if !errors.Is(err, apperrors.ErrStudentNotFound) {
						rt.Fatalf("release with deleted student %d: got %v", studentID, err)
					}
				case held && holder == studentID:
					if err != nil {
						rt.Fatalf("release by holder of book %d: got %v", bookID, err)
					}
					delete(holders, bookID)
				default:
					if !errors.Is(err, apperrors.ErrBookNotRentedBy) {
						rt.Fatalf("release by non-holder of book %d: got %v", bookID, err)
					}
				}

			case 2: // delete student
				err := svc.DeleteStudent(ctx, studentID)
				if !alive[studentID] {
					if !errors.Is(err, apperrors.ErrStudentNotFound) {
						rt.Fatalf("double delete of student %d: got %v", studentID, err)
					}
					break
				}
				if err != nil {
					rt.Fatalf("delete of student %d: got %v", studentID, err)
				}
				alive[studentID] = false
				for b, h := range holders {
					if h == studentID {
						delete(holders, b)
					}
				}
			}

			checkLendingInvariant(rt, bookStore, bookIDs, holders)
		}
	})
}

func checkLendingInvariant(rt *rapid.T, bookStore *fakeBookStore, bookIDs []int64, holders map[int64]int64) {
	ctx := context.Background()
	for _, id := range bookIDs {
		book, err := bookStore.GetByID(ctx, id)
		if err != nil {
			rt.Fatalf("book %d disappeared: %v", id, err)
		}

		switch book.Status {
		case models.StatusFree:
			if book.StudentID != nil {
				rt.Fatalf("book %d is FREE but has renter %d", id, *book.StudentID)
			}
			if holder, held := holders[id]; held {
				rt.Fatalf("book %d should be held by %d but is FREE", id, holder)
			}
		case models.StatusRented:
			if book.StudentID == nil {
				rt.Fatalf("book %d is RENTED but has no renter", id)
			}
			if holders[id] != *book.StudentID {
				rt.Fatalf("book %d held by %d, expected %d", id, *book.StudentID, holders[id])
			}
		default:
			rt.Fatalf("book %d has invalid status %q", id, book.Status)
		}
	}
}
