// Package auth holds the authorization policy: a single decision function
// consulted by every API operation. Role checks are never scattered across
// handlers; they all route through Decide.
package auth

import (
	"github.com/medhashaala/erp/internal/app/models"
	"github.com/medhashaala/erp/internal/pkg/apperrors"
)

// Action identifies the operation being attempted on a resource collection.
type Action string

const (
	ActionList          Action = "list"
	ActionRetrieve      Action = "retrieve"
	ActionCreate        Action = "create"
	ActionUpdate        Action = "update"
	ActionPartialUpdate Action = "partial_update"
	ActionDestroy       Action = "destroy"

	// Read-side actions exposed next to the plain CRUD verbs.
	ActionMe        Action = "me"
	ActionActive    Action = "active"
	ActionByStudent Action = "by_student"
	ActionByClass   Action = "by_class"
	ActionGrades    Action = "grades"
	ActionSubjects  Action = "subjects"
	ActionSections  Action = "sections"
)

// Resource identifies the collection an action targets.
type Resource string

const (
	ResourceUser         Resource = "user"
	ResourceStudent      Resource = "student"
	ResourceTeacher      Resource = "teacher"
	ResourceAcademicYear Resource = "academic_year"
	ResourceClass        Resource = "class"
	ResourceSubject      Resource = "subject"
	ResourceClassSubject Resource = "class_subject"
	ResourceAttendance   Resource = "attendance"
	ResourceExamType     Resource = "exam_type"
	ResourceExam         Resource = "exam"
	ResourceGrade        Resource = "grade"
	ResourceSection      Resource = "section"
)

// Decision is the outcome of a policy evaluation.
type Decision int

const (
	Deny Decision = iota
	Allow
)

// safeActions are read-only and open to any authenticated actor, with the
// exception of the user collection handled in Decide.
var safeActions = map[Action]bool{
	ActionList:      true,
	ActionRetrieve:  true,
	ActionMe:        true,
	ActionActive:    true,
	ActionByStudent: true,
	ActionByClass:   true,
	ActionGrades:    true,
	ActionSubjects:  true,
	ActionSections:  true,
}

// factResources take their write rules from the actor's role, not from
// record ownership: teachers and staff write, everyone else reads.
var factResources = map[Resource]bool{
	ResourceAttendance: true,
	ResourceExamType:   true,
	ResourceExam:       true,
	ResourceGrade:      true,
}

// ownedResources wrap an identity; writes require the owner or staff.
var ownedResources = map[Resource]bool{
	ResourceUser:    true,
	ResourceStudent: true,
	ResourceTeacher: true,
}

// Decide evaluates whether the actor may perform action on the resource.
// ownerID is the identity owning the target record, when the action targets
// a single record of an identity-wrapping resource; nil otherwise.
//
// Rules, in precedence order: staff override; open reads (identity records
// excepted); role-gated writes on fact records; owner-gated writes on
// identity-wrapping records; asymmetric profile creation (student profiles
// by teachers or staff, teacher profiles by staff only); default deny.
func Decide(actor *models.User, action Action, resource Resource, ownerID *int64) Decision {
	if actor == nil {
		return Deny
	}

	if actor.IsStaff {
		return Allow
	}

	if safeActions[action] {
		// Reading other identities is not universally open: the user
		// collection requires ownership for single records and staff
		// for the full listing. "me" always targets the actor itself.
		if resource == ResourceUser && action != ActionMe {
			if action == ActionRetrieve && isOwner(actor, ownerID) {
				return Allow
			}
			return Deny
		}
		return Allow
	}

	switch action {
	case ActionCreate:
		// Teacher profile creation stays staff-only while student
		// profile creation is open to teachers. Asymmetric on purpose.
		if resource == ResourceStudent && actor.IsTeacher() {
			return Allow
		}
		if factResources[resource] && actor.IsTeacher() {
			return Allow
		}
		return Deny

	case ActionUpdate, ActionPartialUpdate, ActionDestroy:
		if factResources[resource] && actor.IsTeacher() {
			return Allow
		}
		if ownedResources[resource] && isOwner(actor, ownerID) {
			return Allow
		}
		return Deny
	}

	return Deny
}

func isOwner(actor *models.User, ownerID *int64) bool {
	return ownerID != nil && *ownerID == actor.ID
}

// Require evaluates the policy and converts a denial into the permission
// error surfaced to the client.
func Require(actor *models.User, action Action, resource Resource, ownerID *int64) error {
	if actor == nil {
		return apperrors.ErrUnauthenticated
	}
	if Decide(actor, action, resource, ownerID) != Allow {
		return apperrors.ErrPermissionDenied
	}
	return nil
}
