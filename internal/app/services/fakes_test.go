package services

import (
	"context"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/medhashaala/erp/internal/app/models"
	"github.com/medhashaala/erp/internal/app/repositories"
	"github.com/medhashaala/erp/internal/db"
	"github.com/medhashaala/erp/internal/pkg/apperrors"
)

// restorable is implemented by the fake stores so fakeTxRunner can roll
// them back the way a real transaction would.
type restorable interface {
	snapshot() func()
}

// fakeTxRunner mimics transactional semantics over the in-memory stores:
// every store is snapshotted before the unit of work runs and restored
// when it fails.
type fakeTxRunner struct {
	stores []restorable
	runs   int
}

func (r *fakeTxRunner) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	r.runs++
	restores := make([]func(), 0, len(r.stores))
	for _, store := range r.stores {
		restores = append(restores, store.snapshot())
	}

	if err := fn(ctx, nil); err != nil {
		for _, restore := range restores {
			restore()
		}
		return err
	}
	return nil
}

var _ db.TxRunner = (*fakeTxRunner)(nil)

// fakeUserRepo is an in-memory IUserRepository.
type fakeUserRepo struct {
	users      map[int64]*models.User
	nextID     int64
	failCreate error
	failUpdate error
}

var _ repositories.IUserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*models.User), nextID: 1}
}

func (r *fakeUserRepo) snapshot() func() {
	users := make(map[int64]*models.User, len(r.users))
	for id, u := range r.users {
		clone := *u
		users[id] = &clone
	}
	nextID := r.nextID
	return func() {
		r.users = users
		r.nextID = nextID
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) CreateTx(ctx context.Context, tx pgx.Tx, user *models.User) error {
	return r.Create(ctx, user)
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	for _, user := range r.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) List(ctx context.Context, offset, limit uint64) ([]*models.User, error) {
	ids := make([]int64, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var users []*models.User
	for i, id := range ids {
		if uint64(i) < offset {
			continue
		}
		if uint64(len(users)) >= limit {
			break
		}
		clone := *r.users[id]
		users = append(users, &clone)
	}
	return users, nil
}

func (r *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	if r.failUpdate != nil {
		return r.failUpdate
	}
	if _, ok := r.users[user.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) UpdateTx(ctx context.Context, tx pgx.Tx, user *models.User) error {
	return r.Update(ctx, user)
}

func (r *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// fakeStudentRepo is an in-memory IStudentRepository. When wired with a
// fakeUserRepo it populates the identity relation on reads, like the SQL
// join does.
type fakeStudentRepo struct {
	students   map[int64]*models.Student
	nextID     int64
	users      *fakeUserRepo
	failCreate error
	failUpdate error
}

var _ repositories.IStudentRepository = (*fakeStudentRepo)(nil)

func newFakeStudentRepo(users *fakeUserRepo) *fakeStudentRepo {
	return &fakeStudentRepo{students: make(map[int64]*models.Student), nextID: 1, users: users}
}

func (r *fakeStudentRepo) snapshot() func() {
	students := make(map[int64]*models.Student, len(r.students))
	for id, s := range r.students {
		clone := *s
		students[id] = &clone
	}
	nextID := r.nextID
	return func() {
		r.students = students
		r.nextID = nextID
	}
}

func (r *fakeStudentRepo) Create(ctx context.Context, student *models.Student) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	for _, existing := range r.students {
		if existing.AdmissionNumber == student.AdmissionNumber {
			return apperrors.ErrAdmissionNumberAlreadyExists
		}
	}
	student.ID = r.nextID
	r.nextID++
	student.CreatedAt = time.Now()
	student.UpdatedAt = student.CreatedAt
	clone := *student
	clone.User = nil
	r.students[student.ID] = &clone
	return nil
}

func (r *fakeStudentRepo) CreateTx(ctx context.Context, tx pgx.Tx, student *models.Student) error {
	return r.Create(ctx, student)
}

func (r *fakeStudentRepo) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	student, ok := r.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	clone := *student
	if r.users != nil {
		if user, err := r.users.GetByID(ctx, clone.UserID); err == nil {
			clone.User = user
		}
	}
	return &clone, nil
}

func (r *fakeStudentRepo) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	for id, student := range r.students {
		if student.UserID == userID {
			return r.GetByID(ctx, id)
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (r *fakeStudentRepo) AdmissionNumberExists(ctx context.Context, admissionNumber string) (bool, error) {
	for _, student := range r.students {
		if student.AdmissionNumber == admissionNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeStudentRepo) List(ctx context.Context, activeOnly bool, offset, limit uint64) ([]*models.Student, error) {
	ids := make([]int64, 0, len(r.students))
	for id, student := range r.students {
		if activeOnly && !student.IsActive {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var students []*models.Student
	for i, id := range ids {
		if uint64(i) < offset {
			continue
		}
		if uint64(len(students)) >= limit {
			break
		}
		student, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}
	return students, nil
}

func (r *fakeStudentRepo) Count(ctx context.Context, activeOnly bool) (int64, error) {
	var count int64
	for _, student := range r.students {
		if activeOnly && !student.IsActive {
			continue
		}
		count++
	}
	return count, nil
}

func (r *fakeStudentRepo) Update(ctx context.Context, student *models.Student) error {
	if r.failUpdate != nil {
		return r.failUpdate
	}
	if _, ok := r.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	clone := *student
	clone.User = nil
	r.students[student.ID] = &clone
	return nil
}

func (r *fakeStudentRepo) UpdateTx(ctx context.Context, tx pgx.Tx, student *models.Student) error {
	return r.Update(ctx, student)
}

func (r *fakeStudentRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(r.students, id)
	return nil
}

// fakeTeacherRepo is an in-memory ITeacherRepository.
type fakeTeacherRepo struct {
	teachers   map[int64]*models.Teacher
	nextID     int64
	users      *fakeUserRepo
	failCreate error
}

var _ repositories.ITeacherRepository = (*fakeTeacherRepo)(nil)

func newFakeTeacherRepo(users *fakeUserRepo) *fakeTeacherRepo {
	return &fakeTeacherRepo{teachers: make(map[int64]*models.Teacher), nextID: 1, users: users}
}

func (r *fakeTeacherRepo) snapshot() func() {
	teachers := make(map[int64]*models.Teacher, len(r.teachers))
	for id, t := range r.teachers {
		clone := *t
		teachers[id] = &clone
	}
	nextID := r.nextID
	return func() {
		r.teachers = teachers
		r.nextID = nextID
	}
}

func (r *fakeTeacherRepo) Create(ctx context.Context, teacher *models.Teacher) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	for _, existing := range r.teachers {
		if existing.EmployeeID == teacher.EmployeeID {
			return apperrors.ErrEmployeeIDAlreadyExists
		}
	}
	teacher.ID = r.nextID
	r.nextID++
	teacher.CreatedAt = time.Now()
	teacher.UpdatedAt = teacher.CreatedAt
	clone := *teacher
	clone.User = nil
	r.teachers[teacher.ID] = &clone
	return nil
}

func (r *fakeTeacherRepo) CreateTx(ctx context.Context, tx pgx.Tx, teacher *models.Teacher) error {
	return r.Create(ctx, teacher)
}

func (r *fakeTeacherRepo) GetByID(ctx context.Context, id int64) (*models.Teacher, error) {
	teacher, ok := r.teachers[id]
	if !ok {
		return nil, apperrors.ErrTeacherNotFound
	}
	clone := *teacher
	if r.users != nil {
		if user, err := r.users.GetByID(ctx, clone.UserID); err == nil {
			clone.User = user
		}
	}
	return &clone, nil
}

func (r *fakeTeacherRepo) GetByUserID(ctx context.Context, userID int64) (*models.Teacher, error) {
	for id, teacher := range r.teachers {
		if teacher.UserID == userID {
			return r.GetByID(ctx, id)
		}
	}
	return nil, apperrors.ErrTeacherNotFound
}

func (r *fakeTeacherRepo) EmployeeIDExists(ctx context.Context, employeeID string) (bool, error) {
	for _, teacher := range r.teachers {
		if teacher.EmployeeID == employeeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTeacherRepo) List(ctx context.Context, activeOnly bool, offset, limit uint64) ([]*models.Teacher, error) {
	ids := make([]int64, 0, len(r.teachers))
	for id, teacher := range r.teachers {
		if activeOnly && !teacher.IsActive {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var teachers []*models.Teacher
	for i, id := range ids {
		if uint64(i) < offset {
			continue
		}
		if uint64(len(teachers)) >= limit {
			break
		}
		teacher, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		teachers = append(teachers, teacher)
	}
	return teachers, nil
}

func (r *fakeTeacherRepo) Count(ctx context.Context, activeOnly bool) (int64, error) {
	var count int64
	for _, teacher := range r.teachers {
		if activeOnly && !teacher.IsActive {
			continue
		}
		count++
	}
	return count, nil
}

func (r *fakeTeacherRepo) Update(ctx context.Context, teacher *models.Teacher) error {
	if _, ok := r.teachers[teacher.ID]; !ok {
		return apperrors.ErrTeacherNotFound
	}
	clone := *teacher
	clone.User = nil
	r.teachers[teacher.ID] = &clone
	return nil
}

func (r *fakeTeacherRepo) UpdateTx(ctx context.Context, tx pgx.Tx, teacher *models.Teacher) error {
	return r.Update(ctx, teacher)
}

func (r *fakeTeacherRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.teachers[id]; !ok {
		return apperrors.ErrTeacherNotFound
	}
	delete(r.teachers, id)
	return nil
}

// fakeAttendanceRepo is an in-memory IAttendanceRepository. Query support
// covers the filters the service actually sends.
type fakeAttendanceRepo struct {
	records map[int64]*models.Attendance
	nextID  int64
}

var _ repositories.IAttendanceRepository = (*fakeAttendanceRepo)(nil)

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[int64]*models.Attendance), nextID: 1}
}

func (r *fakeAttendanceRepo) Create(ctx context.Context, record *models.Attendance) error {
	for _, existing := range r.records {
		if existing.StudentID == record.StudentID &&
			int64PtrEqual(existing.ClassSubjectID, record.ClassSubjectID) &&
			existing.Date.Equal(record.Date) {
			return apperrors.ErrAttendanceAlreadyMarked
		}
	}
	record.ID = r.nextID
	r.nextID++
	clone := *record
	r.records[record.ID] = &clone
	return nil
}

func (r *fakeAttendanceRepo) GetByID(ctx context.Context, id int64) (*models.Attendance, error) {
	record, ok := r.records[id]
	if !ok {
		return nil, apperrors.ErrAttendanceNotFound
	}
	clone := *record
	return &clone, nil
}

func (r *fakeAttendanceRepo) matches(record *models.Attendance, query repositories.AttendanceQuery) bool {
	if query.StudentID != nil && record.StudentID != *query.StudentID {
		return false
	}
	if query.ClassSubjectID != nil && !int64PtrEqual(record.ClassSubjectID, query.ClassSubjectID) {
		return false
	}
	if query.Status != nil && string(record.Status) != *query.Status {
		return false
	}
	if query.Date != nil && record.Date.Format("2006-01-02") != *query.Date {
		return false
	}
	return true
}

func (r *fakeAttendanceRepo) List(ctx context.Context, query repositories.AttendanceQuery, offset, limit uint64) ([]*models.Attendance, error) {
	ids := make([]int64, 0, len(r.records))
	for id, record := range r.records {
		if r.matches(record, query) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var records []*models.Attendance
	for i, id := range ids {
		if uint64(i) < offset {
			continue
		}
		if uint64(len(records)) >= limit {
			break
		}
		clone := *r.records[id]
		records = append(records, &clone)
	}
	return records, nil
}

func (r *fakeAttendanceRepo) Count(ctx context.Context, query repositories.AttendanceQuery) (int64, error) {
	var count int64
	for _, record := range r.records {
		if r.matches(record, query) {
			count++
		}
	}
	return count, nil
}

func (r *fakeAttendanceRepo) Update(ctx context.Context, record *models.Attendance) error {
	stored, ok := r.records[record.ID]
	if !ok {
		return apperrors.ErrAttendanceNotFound
	}
	clone := *record
	// The SQL update never touches the recorder stamp.
	clone.MarkedByID = stored.MarkedByID
	r.records[record.ID] = &clone
	return nil
}

func (r *fakeAttendanceRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.records[id]; !ok {
		return apperrors.ErrAttendanceNotFound
	}
	delete(r.records, id)
	return nil
}

// fakeGradeRepo is an in-memory IGradeRepository. Reads populate the exam
// relation from the exams map, like the SQL join does.
type fakeGradeRepo struct {
	grades map[int64]*models.Grade
	exams  map[int64]*models.Exam
	nextID int64
}

var _ repositories.IGradeRepository = (*fakeGradeRepo)(nil)

func newFakeGradeRepo(exams ...*models.Exam) *fakeGradeRepo {
	repo := &fakeGradeRepo{
		grades: make(map[int64]*models.Grade),
		exams:  make(map[int64]*models.Exam),
		nextID: 1,
	}
	for _, exam := range exams {
		repo.exams[exam.ID] = exam
	}
	return repo
}

func (r *fakeGradeRepo) Create(ctx context.Context, grade *models.Grade) error {
	for _, existing := range r.grades {
		if existing.StudentID == grade.StudentID && existing.ExamID == grade.ExamID {
			return apperrors.ErrGradeAlreadyRecorded
		}
	}
	grade.ID = r.nextID
	r.nextID++
	clone := *grade
	clone.Exam = nil
	r.grades[grade.ID] = &clone
	return nil
}

func (r *fakeGradeRepo) GetByID(ctx context.Context, id int64) (*models.Grade, error) {
	grade, ok := r.grades[id]
	if !ok {
		return nil, apperrors.ErrGradeNotFound
	}
	clone := *grade
	clone.Exam = r.exams[clone.ExamID]
	return &clone, nil
}

func (r *fakeGradeRepo) matches(grade *models.Grade, query repositories.GradeQuery) bool {
	if query.StudentID != nil && grade.StudentID != *query.StudentID {
		return false
	}
	if query.ExamID != nil && grade.ExamID != *query.ExamID {
		return false
	}
	if query.ClassID != nil {
		exam, ok := r.exams[grade.ExamID]
		if !ok || exam.ClassID != *query.ClassID {
			return false
		}
	}
	return true
}

func (r *fakeGradeRepo) List(ctx context.Context, query repositories.GradeQuery, offset, limit uint64) ([]*models.Grade, error) {
	ids := make([]int64, 0, len(r.grades))
	for id, grade := range r.grades {
		if r.matches(grade, query) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var grades []*models.Grade
	for i, id := range ids {
		if uint64(i) < offset {
			continue
		}
		if uint64(len(grades)) >= limit {
			break
		}
		grade, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		grades = append(grades, grade)
	}
	return grades, nil
}

func (r *fakeGradeRepo) Count(ctx context.Context, query repositories.GradeQuery) (int64, error) {
	var count int64
	for _, grade := range r.grades {
		if r.matches(grade, query) {
			count++
		}
	}
	return count, nil
}

func (r *fakeGradeRepo) Update(ctx context.Context, grade *models.Grade) error {
	stored, ok := r.grades[grade.ID]
	if !ok {
		return apperrors.ErrGradeNotFound
	}
	clone := *grade
	clone.Exam = nil
	// The SQL update never touches the grader stamp.
	clone.GradedByID = stored.GradedByID
	r.grades[grade.ID] = &clone
	return nil
}

func (r *fakeGradeRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.grades[id]; !ok {
		return apperrors.ErrGradeNotFound
	}
	delete(r.grades, id)
	return nil
}

func int64PtrEqual(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func strPtr(s string) *string { return &s }

func int64Ptr(i int64) *int64 { return &i }

