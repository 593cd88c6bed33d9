package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradePercentage(t *testing.T) {
	exam := &Exam{TotalMarks: 100, PassingMarks: 35}
	grade := &Grade{MarksObtained: 42}

	assert.InDelta(t, 42.0, grade.Percentage(exam), 0.001)

	exam.TotalMarks = 80
	assert.InDelta(t, 52.5, grade.Percentage(exam), 0.001)
}

func TestGradePercentageGuardsDivisionByZero(t *testing.T) {
	grade := &Grade{MarksObtained: 42}

	assert.Equal(t, 0.0, grade.Percentage(&Exam{TotalMarks: 0}))
	assert.Equal(t, 0.0, grade.Percentage(nil))
}

func TestGradeIsPass(t *testing.T) {
	exam := &Exam{TotalMarks: 100, PassingMarks: 35}

	assert.True(t, (&Grade{MarksObtained: 42}).IsPass(exam))
	assert.True(t, (&Grade{MarksObtained: 35}).IsPass(exam), "passing marks exactly reached")
	assert.False(t, (&Grade{MarksObtained: 34.5}).IsPass(exam))
	assert.False(t, (&Grade{MarksObtained: 42}).IsPass(nil))
}
