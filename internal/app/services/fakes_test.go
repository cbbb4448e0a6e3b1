package services

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/libraria/libraria/internal/app/models"
	"github.com/libraria/libraria/internal/pkg/apperrors"
)

// The fakes below back the service tests with in-memory state. Their
// conditional writes hold the mutex across the precondition check and the
// effect, mirroring the single-statement updates of the real store.

type passthroughTx struct{}

func (passthroughTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeStudentStore struct {
	mu       sync.Mutex
	students map[int64]*models.Student
	nextID   int64
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{students: make(map[int64]*models.Student), nextID: 1}
}

func (s *fakeStudentStore) Create(ctx context.Context, student *models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.students {
		if existing.Email == student.Email {
			return apperrors.ErrStudentEmailExists
		}
		if existing.Registration == student.Registration {
			return apperrors.ErrStudentRegistrationExists
		}
	}
	student.ID = s.nextID
	s.nextID++
	copied := *student
	s.students[student.ID] = &copied
	return nil
}

func (s *fakeStudentStore) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	student, ok := s.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	copied := *student
	return &copied, nil
}

func (s *fakeStudentStore) GetAll(ctx context.Context) ([]*models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Student, 0, len(s.students))
	for _, student := range s.students {
		copied := *student
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeStudentStore) GetPage(ctx context.Context, offset uint64, limit int, sortParam string) ([]*models.Student, int64, error) {
	all, _ := s.GetAll(ctx)
	total := int64(len(all))
	if offset >= uint64(len(all)) {
		return nil, total, nil
	}
	end := int(offset) + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (s *fakeStudentStore) Update(ctx context.Context, student *models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	copied := *student
	s.students[student.ID] = &copied
	return nil
}

func (s *fakeStudentStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(s.students, id)
	return nil
}

type fakeBookStore struct {
	mu     sync.Mutex
	books  map[int64]*models.Book
	nextID int64
}

func newFakeBookStore() *fakeBookStore {
	return &fakeBookStore{books: make(map[int64]*models.Book), nextID: 1}
}

func (s *fakeBookStore) Create(ctx context.Context, book *models.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.books {
		if existing.Title == book.Title || existing.ISBN == book.ISBN {
			return apperrors.ErrBookAlreadyExists
		}
	}
	book.ID = s.nextID
	s.nextID++
	copied := *book
	s.books[book.ID] = &copied
	return nil
}

func (s *fakeBookStore) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	book, ok := s.books[id]
	if !ok {
		return nil, apperrors.ErrBookNotFound
	}
	copied := *book
	return &copied, nil
}

func (s *fakeBookStore) GetAll(ctx context.Context) ([]*models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(func(*models.Book) bool { return true }), nil
}

func (s *fakeBookStore) snapshotLocked(match func(*models.Book) bool) []*models.Book {
	out := make([]*models.Book, 0, len(s.books))
	for _, book := range s.books {
		if match(book) {
			copied := *book
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *fakeBookStore) GetPage(ctx context.Context, offset uint64, limit int, sortParam string) ([]*models.Book, int64, error) {
	all, _ := s.GetAll(ctx)
	total := int64(len(all))
	if offset >= uint64(len(all)) {
		return nil, total, nil
	}
	end := int(offset) + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (s *fakeBookStore) GetByAuthorID(ctx context.Context, authorID int64) ([]*models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(func(b *models.Book) bool { return b.AuthorID == authorID }), nil
}

func (s *fakeBookStore) GetByStudentID(ctx context.Context, studentID int64) ([]*models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(func(b *models.Book) bool {
		return b.StudentID != nil && *b.StudentID == studentID
	}), nil
}

func (s *fakeBookStore) Search(ctx context.Context, filter models.BookFilter) ([]*models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(func(b *models.Book) bool {
		if filter.ID != nil && b.ID != *filter.ID {
			return false
		}
		if filter.Title != nil && !strings.Contains(strings.ToLower(b.Title), strings.ToLower(*filter.Title)) {
			return false
		}
		if filter.ISBN != nil && b.ISBN != *filter.ISBN {
			return false
		}
		if filter.PublishYear != nil && (b.PublishYear == nil || *b.PublishYear != *filter.PublishYear) {
			return false
		}
		if filter.StudentID != nil && (b.StudentID == nil || *b.StudentID != *filter.StudentID) {
			return false
		}
		if filter.Status != nil && b.Status != *filter.Status {
			return false
		}
		if filter.AuthorID != nil && b.AuthorID != *filter.AuthorID {
			return false
		}
		return true
	}), nil
}

func (s *fakeBookStore) Rent(ctx context.Context, bookID, studentID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	book, ok := s.books[bookID]
	if !ok || book.Status != models.StatusFree {
		return false, nil
	}
	book.Status = models.StatusRented
	book.StudentID = &studentID
	return true, nil
}

func (s *fakeBookStore) Return(ctx context.Context, bookID, studentID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	book, ok := s.books[bookID]
	if !ok || book.Status != models.StatusRented || book.StudentID == nil || *book.StudentID != studentID {
		return false, nil
	}
	book.Status = models.StatusFree
	book.StudentID = nil
	return true, nil
}

func (s *fakeBookStore) ReleaseAllForStudent(ctx context.Context, studentID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var released int64
	for _, book := range s.books {
		if book.StudentID != nil && *book.StudentID == studentID {
			book.Status = models.StatusFree
			book.StudentID = nil
			released++
		}
	}
	return released, nil
}

func (s *fakeBookStore) UpdateIfFree(ctx context.Context, book *models.Book) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.books[book.ID]
	if !ok || existing.Status != models.StatusFree {
		return false, nil
	}
	existing.Title = book.Title
	existing.ISBN = book.ISBN
	existing.PublishYear = book.PublishYear
	existing.AuthorID = book.AuthorID
	return true, nil
}

func (s *fakeBookStore) DeleteIfFree(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	book, ok := s.books[id]
	if !ok || book.Status != models.StatusFree {
		return false, nil
	}
	delete(s.books, id)
	return true, nil
}

func (s *fakeBookStore) CountRentedByAuthor(ctx context.Context, authorID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, book := range s.books {
		if book.AuthorID == authorID && book.Status == models.StatusRented {
			count++
		}
	}
	return count, nil
}

func (s *fakeBookStore) DeleteByAuthor(ctx context.Context, authorID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed int64
	for id, book := range s.books {
		if book.AuthorID == authorID {
			delete(s.books, id)
			removed++
		}
	}
	return removed, nil
}

func (s *fakeBookStore) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, book := range s.books {
		if book.Title == title {
			return true, nil
		}
	}
	return false, nil
}

type fakeAuthorStore struct {
	mu      sync.Mutex
	authors map[int64]*models.Author
	nextID  int64
}

func newFakeAuthorStore() *fakeAuthorStore {
	return &fakeAuthorStore{authors: make(map[int64]*models.Author), nextID: 1}
}

func (s *fakeAuthorStore) Create(ctx context.Context, author *models.Author) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	author.ID = s.nextID
	s.nextID++
	copied := *author
	s.authors[author.ID] = &copied
	return nil
}

func (s *fakeAuthorStore) GetByID(ctx context.Context, id int64) (*models.Author, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	author, ok := s.authors[id]
	if !ok {
		return nil, apperrors.ErrAuthorNotFound
	}
	copied := *author
	return &copied, nil
}

func (s *fakeAuthorStore) GetAll(ctx context.Context) ([]*models.Author, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Author, 0, len(s.authors))
	for _, author := range s.authors {
		copied := *author
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeAuthorStore) GetPage(ctx context.Context, offset uint64, limit int, sortParam string) ([]*models.Author, int64, error) {
	all, _ := s.GetAll(ctx)
	total := int64(len(all))
	if offset >= uint64(len(all)) {
		return nil, total, nil
	}
	end := int(offset) + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (s *fakeAuthorStore) FindByName(ctx context.Context, name string) ([]*models.Author, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Author, 0)
	for _, author := range s.authors {
		if author.Name == name || author.Lastname == name {
			copied := *author
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeAuthorStore) Update(ctx context.Context, author *models.Author) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.authors[author.ID]; !ok {
		return apperrors.ErrAuthorNotFound
	}
	copied := *author
	s.authors[author.ID] = &copied
	return nil
}

func (s *fakeAuthorStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.authors[id]; !ok {
		return apperrors.ErrAuthorNotFound
	}
	delete(s.authors, id)
	return nil
}

type fakeUserStore struct {
	mu     sync.Mutex
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*models.User), nextID: 1}
}

func (s *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	user.ID = s.nextID
	s.nextID++
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *fakeUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *fakeUserStore) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}
