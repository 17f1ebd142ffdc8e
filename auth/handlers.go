// HTTP handlers for the auth endpoints.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"

	"github.com/user/gamerack-go/apperror"
	"github.com/user/gamerack-go/validation"
)

// authService is the surface the handlers need from AuthService.
type authService interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, token string) error
	Refresh(ctx context.Context, refreshToken string) (*RefreshResponse, error)
}

// Handlers wraps the AuthService to provide HTTP handlers.
type Handlers struct {
	service authService
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *AuthService) *Handlers {
	return &Handlers{service: service}
}

// HandleLogin godoc
// @Summary User Login
// @Description Verifies credentials and returns an access/refresh token pair.
// @Tags Auth
// @Accept json
// @Produce json
// @Param loginBody body auth.LoginRequest true "User login credentials"
// @Success 200 {object} auth.LoginResponse "Login successful, tokens provided"
// @Failure 400 {object} apperror.ErrorResponse "Bad Request"
// @Failure 401 {object} auth.MessageResponse "Unauthorized - Invalid credentials"
// @Router /api/login [post]
func (h *Handlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := decodeJSON(r, &req); err != nil {
			WriteError(w, r, err)
			return
		}
		if err := validation.Struct(req); err != nil {
			WriteError(w, r, err)
			return
		}

		resp, err := h.service.Login(r.Context(), req)
		if err != nil {
			// Rejected logins reply under the "message" key, the shape
			// clients of this endpoint already consume.
			if appErr, ok := apperror.FromError(err); ok && appErr.Type == apperror.AuthError {
				writeJSON(w, appErr.StatusCode(), MessageResponse{Message: appErr.Message})
				return
			}
			WriteError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleLogout godoc
// @Summary User Logout
// @Description Revokes the supplied token. Revocation is unconditional and idempotent.
// @Tags Auth
// @Accept json
// @Produce json
// @Param logoutBody body auth.LogoutRequest true "Token to revoke"
// @Success 200 {object} auth.MessageResponse "Logged out"
// @Failure 400 {object} apperror.ErrorResponse "Bad Request"
// @Router /api/logout [post]
func (h *Handlers) HandleLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LogoutRequest
		if err := decodeJSON(r, &req); err != nil {
			WriteError(w, r, err)
			return
		}
		if err := validation.Struct(req); err != nil {
			WriteError(w, r, err)
			return
		}

		if err := h.service.Logout(r.Context(), req.Token); err != nil {
			WriteError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, MessageResponse{Message: "logged out successfully"})
	}
}

// HandleRefresh godoc
// @Summary Refresh Access Token
// @Description Exchanges a valid, non-revoked refresh token for a new access token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param refreshBody body auth.RefreshRequest true "Refresh token"
// @Success 200 {object} auth.RefreshResponse "New access token"
// @Failure 400 {object} apperror.ErrorResponse "Bad Request"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized - Invalid or revoked refresh token"
// @Router /api/refresh [post]
func (h *Handlers) HandleRefresh() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RefreshRequest
		if err := decodeJSON(r, &req); err != nil {
			WriteError(w, r, err)
			return
		}
		if err := validation.Struct(req); err != nil {
			WriteError(w, r, err)
			return
		}

		resp, err := h.service.Refresh(r.Context(), req.Refresh)
		if err != nil {
			WriteError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleCSRFToken godoc
// @Summary Issue a CSRF token
// @Description Returns an opaque random token for form-based clients.
// @Tags Auth
// @Produce json
// @Success 200 {object} auth.CSRFTokenResponse
// @Router /get-csrf-token [get]
func (h *Handlers) HandleCSRFToken() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			WriteError(w, r, apperror.NewInternalError("failed to generate csrf token", err))
			return
		}
		writeJSON(w, http.StatusOK, CSRFTokenResponse{CSRFToken: hex.EncodeToString(buf)})
	}
}

// decodeJSON decodes a request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return apperror.NewBadRequestError("invalid request body: "+err.Error(), err)
	}
	return nil
}

// writeJSON serializes data to the response with the given status.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
		}
	}
}

// WriteJSON is the exported response helper used by the other feature packages.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, data)
}

// DecodeJSON is the exported request decoding helper used by the other
// feature packages.
func DecodeJSON(r *http.Request, dst interface{}) error {
	return decodeJSON(r, dst)
}

// WriteError converts any error into a standardized apperror response.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("an unexpected error occurred", err)
	}
	writeJSON(w, appErr.StatusCode(), appErr.ToResponse())
}
