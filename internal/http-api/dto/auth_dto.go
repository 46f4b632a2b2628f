package dto

// Data Transfer Objects for the signup/token handshake

// SignUpRequest: payload for passwordless registration
type SignUpRequest struct {
	Username string `json:"username" binding:"required,max=150"`
	Email    string `json:"email" binding:"required,email,max=254"`
}

// SignUpResponse echoes the registered identity; the confirmation code
// travels out-of-band through the mailer
type SignUpResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TokenRequest: payload for exchanging a confirmation code for a bearer token
type TokenRequest struct {
	Username         string `json:"username" binding:"required"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

// TokenResponse: the signed bearer token
type TokenResponse struct {
	Token string `json:"token"`
}
