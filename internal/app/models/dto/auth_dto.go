package dto

// ObtainTokenRequest is the body of POST /api-token-auth/.
// Credentials are looked up by email; there is no separate username field.
type ObtainTokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ObtainTokenResponse is the success body of POST /api-token-auth/.
type ObtainTokenResponse struct {
	Token  string `json:"token"`
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}
