package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medhashaala/erp/internal/app/models"
)

func staffUser() *models.User {
	return &models.User{ID: 1, Role: models.RoleAdmin, IsStaff: true}
}

func teacherUser() *models.User {
	return &models.User{ID: 2, Role: models.RoleTeacher}
}

func studentUser() *models.User {
	return &models.User{ID: 3, Role: models.RoleStudent}
}

func TestDecideDeniesAnonymous(t *testing.T) {
	assert.Equal(t, Deny, Decide(nil, ActionList, ResourceStudent, nil))
	assert.Equal(t, Deny, Decide(nil, ActionCreate, ResourceGrade, nil))
}

func TestDecideStaffOverridesEverything(t *testing.T) {
	actor := staffUser()
	actions := []Action{
		ActionList, ActionRetrieve, ActionCreate, ActionUpdate,
		ActionPartialUpdate, ActionDestroy, ActionMe, ActionActive,
		ActionByStudent, ActionByClass, ActionGrades, ActionSubjects, ActionSections,
	}
	resources := []Resource{
		ResourceUser, ResourceStudent, ResourceTeacher, ResourceAcademicYear,
		ResourceClass, ResourceSubject, ResourceClassSubject, ResourceAttendance,
		ResourceExamType, ResourceExam, ResourceGrade, ResourceSection,
	}

	// Whatever any other role may do, staff may do too.
	for _, action := range actions {
		for _, resource := range resources {
			assert.Equal(t, Allow, Decide(actor, action, resource, nil),
				"staff denied %s on %s", action, resource)
		}
	}
}

func TestDecideReadsOpenToAuthenticated(t *testing.T) {
	for _, actor := range []*models.User{teacherUser(), studentUser()} {
		assert.Equal(t, Allow, Decide(actor, ActionList, ResourceStudent, nil))
		assert.Equal(t, Allow, Decide(actor, ActionRetrieve, ResourceGrade, nil))
		assert.Equal(t, Allow, Decide(actor, ActionActive, ResourceTeacher, nil))
		assert.Equal(t, Allow, Decide(actor, ActionByStudent, ResourceAttendance, nil))
		assert.Equal(t, Allow, Decide(actor, ActionSections, ResourceSection, nil))
	}
}

func TestDecideUserCollectionIsNotOpen(t *testing.T) {
	actor := studentUser()

	assert.Equal(t, Deny, Decide(actor, ActionList, ResourceUser, nil))

	otherID := int64(99)
	assert.Equal(t, Deny, Decide(actor, ActionRetrieve, ResourceUser, &otherID))

	ownID := actor.ID
	assert.Equal(t, Allow, Decide(actor, ActionRetrieve, ResourceUser, &ownID))
	assert.Equal(t, Allow, Decide(actor, ActionMe, ResourceUser, nil))
}

func TestDecideFactWritesAreRoleGated(t *testing.T) {
	teacher := teacherUser()
	student := studentUser()

	for _, resource := range []Resource{ResourceAttendance, ResourceExamType, ResourceExam, ResourceGrade} {
		for _, action := range []Action{ActionCreate, ActionUpdate, ActionPartialUpdate, ActionDestroy} {
			assert.Equal(t, Allow, Decide(teacher, action, resource, nil),
				"teacher denied %s on %s", action, resource)
			assert.Equal(t, Deny, Decide(student, action, resource, nil),
				"student allowed %s on %s", action, resource)
		}
	}
}

func TestDecideProfileCreationIsAsymmetric(t *testing.T) {
	teacher := teacherUser()
	student := studentUser()

	// Teachers enroll students but never other teachers.
	assert.Equal(t, Allow, Decide(teacher, ActionCreate, ResourceStudent, nil))
	assert.Equal(t, Deny, Decide(teacher, ActionCreate, ResourceTeacher, nil))

	assert.Equal(t, Deny, Decide(student, ActionCreate, ResourceStudent, nil))
	assert.Equal(t, Deny, Decide(student, ActionCreate, ResourceTeacher, nil))
}

func TestDecideOwnedWritesRequireOwner(t *testing.T) {
	actor := studentUser()
	ownID := actor.ID
	otherID := int64(42)

	for _, resource := range []Resource{ResourceUser, ResourceStudent, ResourceTeacher} {
		assert.Equal(t, Allow, Decide(actor, ActionPartialUpdate, resource, &ownID))
		assert.Equal(t, Deny, Decide(actor, ActionPartialUpdate, resource, &otherID))
		assert.Equal(t, Deny, Decide(actor, ActionPartialUpdate, resource, nil))
		assert.Equal(t, Allow, Decide(actor, ActionDestroy, resource, &ownID))
		assert.Equal(t, Deny, Decide(actor, ActionDestroy, resource, &otherID))
	}
}

func TestDecideOrgEntityWritesAreStaffOnly(t *testing.T) {
	teacher := teacherUser()

	for _, resource := range []Resource{ResourceAcademicYear, ResourceClass, ResourceSubject, ResourceClassSubject} {
		for _, action := range []Action{ActionCreate, ActionUpdate, ActionPartialUpdate, ActionDestroy} {
			assert.Equal(t, Deny, Decide(teacher, action, resource, nil),
				"teacher allowed %s on %s", action, resource)
		}
	}
}

func TestRequireMapsDecisionsToErrors(t *testing.T) {
	assert.Error(t, Require(nil, ActionList, ResourceStudent, nil))
	assert.Error(t, Require(studentUser(), ActionCreate, ResourceGrade, nil))
	assert.NoError(t, Require(teacherUser(), ActionCreate, ResourceGrade, nil))
	assert.NoError(t, Require(staffUser(), ActionDestroy, ResourceUser, nil))
}
