package services

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medhashaala/erp/internal/app/models"
	"github.com/medhashaala/erp/internal/app/models/dto"
	"github.com/medhashaala/erp/internal/pkg/apperrors"
)

// fakeExamRepo is an in-memory IExamRepository.
type fakeExamRepo struct {
	exams  map[int64]*models.Exam
	nextID int64
}

func newFakeExamRepo() *fakeExamRepo {
	return &fakeExamRepo{exams: make(map[int64]*models.Exam), nextID: 1}
}

func (r *fakeExamRepo) Create(ctx context.Context, exam *models.Exam) error {
	exam.ID = r.nextID
	r.nextID++
	clone := *exam
	r.exams[exam.ID] = &clone
	return nil
}

func (r *fakeExamRepo) GetByID(ctx context.Context, id int64) (*models.Exam, error) {
	exam, ok := r.exams[id]
	if !ok {
		return nil, apperrors.ErrExamNotFound
	}
	clone := *exam
	return &clone, nil
}

func (r *fakeExamRepo) List(ctx context.Context, offset, limit uint64) ([]*models.Exam, error) {
	ids := make([]int64, 0, len(r.exams))
	for id := range r.exams {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var exams []*models.Exam
	for i, id := range ids {
		if uint64(i) < offset {
			continue
		}
		if uint64(len(exams)) >= limit {
			break
		}
		clone := *r.exams[id]
		exams = append(exams, &clone)
	}
	return exams, nil
}

func (r *fakeExamRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.exams)), nil
}

func (r *fakeExamRepo) Update(ctx context.Context, exam *models.Exam) error {
	if _, ok := r.exams[exam.ID]; !ok {
		return apperrors.ErrExamNotFound
	}
	clone := *exam
	r.exams[exam.ID] = &clone
	return nil
}

func (r *fakeExamRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.exams[id]; !ok {
		return apperrors.ErrExamNotFound
	}
	delete(r.exams, id)
	return nil
}

// fakeExamTypeRepo is an in-memory IExamTypeRepository.
type fakeExamTypeRepo struct {
	examTypes map[int64]*models.ExamType
	nextID    int64
}

func newFakeExamTypeRepo() *fakeExamTypeRepo {
	return &fakeExamTypeRepo{examTypes: make(map[int64]*models.ExamType), nextID: 1}
}

func (r *fakeExamTypeRepo) Create(ctx context.Context, examType *models.ExamType) error {
	examType.ID = r.nextID
	r.nextID++
	clone := *examType
	r.examTypes[examType.ID] = &clone
	return nil
}

func (r *fakeExamTypeRepo) GetByID(ctx context.Context, id int64) (*models.ExamType, error) {
	examType, ok := r.examTypes[id]
	if !ok {
		return nil, apperrors.ErrExamTypeNotFound
	}
	clone := *examType
	return &clone, nil
}

func (r *fakeExamTypeRepo) List(ctx context.Context, offset, limit uint64) ([]*models.ExamType, error) {
	ids := make([]int64, 0, len(r.examTypes))
	for id := range r.examTypes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var examTypes []*models.ExamType
	for i, id := range ids {
		if uint64(i) < offset {
			continue
		}
		if uint64(len(examTypes)) >= limit {
			break
		}
		clone := *r.examTypes[id]
		examTypes = append(examTypes, &clone)
	}
	return examTypes, nil
}

func (r *fakeExamTypeRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.examTypes)), nil
}

func (r *fakeExamTypeRepo) Update(ctx context.Context, examType *models.ExamType) error {
	if _, ok := r.examTypes[examType.ID]; !ok {
		return apperrors.ErrExamTypeNotFound
	}
	clone := *examType
	r.examTypes[examType.ID] = &clone
	return nil
}

func (r *fakeExamTypeRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.examTypes[id]; !ok {
		return apperrors.ErrExamTypeNotFound
	}
	delete(r.examTypes, id)
	return nil
}

func newExamServiceFixture() *ExamService {
	return NewExamService(newFakeExamTypeRepo(), newFakeExamRepo())
}

func createExamRequest() *dto.CreateExamRequest {
	return &dto.CreateExamRequest{
		Name:       "Mid-term Mathematics",
		ExamTypeID: 1,
		ClassID:    4,
		SubjectID:  2,
		Date:       "2025-09-20",
	}
}

func TestCreateExamAppliesMarkDefaults(t *testing.T) {
	svc := newExamServiceFixture()

	exam, err := svc.CreateExam(context.Background(), createExamRequest())
	require.NoError(t, err)

	assert.Equal(t, DefaultTotalMarks, exam.TotalMarks)
	assert.Equal(t, DefaultPassingMarks, exam.PassingMarks)
}

func TestCreateExamHonoursExplicitMarks(t *testing.T) {
	svc := newExamServiceFixture()

	total, passing := 50, 20
	req := createExamRequest()
	req.TotalMarks = &total
	req.PassingMarks = &passing
	exam, err := svc.CreateExam(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 50, exam.TotalMarks)
	assert.Equal(t, 20, exam.PassingMarks)
}

func TestCreateExamRejectsPassingAboveTotal(t *testing.T) {
	svc := newExamServiceFixture()

	total, passing := 50, 60
	req := createExamRequest()
	req.TotalMarks = &total
	req.PassingMarks = &passing
	_, err := svc.CreateExam(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUpdateExamRevalidatesMarks(t *testing.T) {
	svc := newExamServiceFixture()

	exam, err := svc.CreateExam(context.Background(), createExamRequest())
	require.NoError(t, err)

	// Lowering the total below the existing passing marks must fail.
	total := 20
	_, err = svc.UpdateExam(context.Background(), exam.ID, &dto.UpdateExamRequest{TotalMarks: &total})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	total, passing := 200, 80
	updated, err := svc.UpdateExam(context.Background(), exam.ID, &dto.UpdateExamRequest{
		TotalMarks:   &total,
		PassingMarks: &passing,
	})
	require.NoError(t, err)
	assert.Equal(t, 200, updated.TotalMarks)
	assert.Equal(t, 80, updated.PassingMarks)
}
