// Data transfer objects for the auth endpoints.
package auth

// LoginRequest represents the login request payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required" example:"alice"`
	Password string `json:"password" validate:"required" example:"strongpassword123"`
}

// LoginResponse is returned on a successful login. The field names match the
// shape clients of this API already consume.
type LoginResponse struct {
	Message  string `json:"message" example:"Login successful"`
	UserID   int    `json:"user_id" example:"1"`
	Username string `json:"username" example:"alice"`
	Refresh  string `json:"refresh" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	Access   string `json:"access" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// LogoutRequest carries the token to revoke.
type LogoutRequest struct {
	Token string `json:"token" validate:"required"`
}

// RefreshRequest carries a refresh token to exchange for a new access token.
type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// RefreshResponse carries the newly issued access token.
type RefreshResponse struct {
	Access string `json:"access"`
}

// MessageResponse is a generic success payload.
type MessageResponse struct {
	Message string `json:"message" example:"logged out successfully"`
}

// CSRFTokenResponse carries an opaque token for clients that pair this API
// with cookie-based forms.
type CSRFTokenResponse struct {
	CSRFToken string `json:"csrf_token"`
}
