package dto

// CreateUserRequest creates a standalone identity (staff only).
type CreateUserRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	UserType    string `json:"user_type" binding:"omitempty,oneof=admin teacher student"`
	IsStaff     bool   `json:"is_staff"`
}

// UpdateUserRequest patches an identity. Nil fields are left unchanged.
type UpdateUserRequest struct {
	Email       *string `json:"email" binding:"omitempty,email"`
	Password    *string `json:"password" binding:"omitempty,min=8"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	PhoneNumber *string `json:"phone_number"`
	Address     *string `json:"address"`
	UserType    *string `json:"user_type" binding:"omitempty,oneof=admin teacher student"`
	IsStaff     *bool   `json:"is_staff"`
	IsActive    *bool   `json:"is_active"`
}

// NestedUserPayload is the identity part of an enrollment request. When
// Password is empty a random credential is generated; the account then
// authenticates only after a password reset by an administrator.
type NestedUserPayload struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"omitempty,min=8"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

// NestedUserPatch is the identity part of a nested profile update.
type NestedUserPatch struct {
	Email       *string `json:"email" binding:"omitempty,email"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	PhoneNumber *string `json:"phone_number"`
	Address     *string `json:"address"`
}
