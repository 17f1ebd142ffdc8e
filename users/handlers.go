// HTTP handlers for the users module.
package users

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/gamerack-go/apperror"
	"github.com/user/gamerack-go/auth"
	"github.com/user/gamerack-go/validation"
)

// UserHandlers handles HTTP requests for user accounts.
type UserHandlers struct {
	service UserService
}

// NewUserHandlers creates new UserHandlers.
func NewUserHandlers(service UserService) *UserHandlers {
	return &UserHandlers{service: service}
}

func userIDParam(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil {
		return 0, apperror.NewNotFoundError("User not found", nil)
	}
	return id, nil
}

// HandleRegister godoc
// @Summary Register a new user
// @Description Public registration endpoint. The password is hashed before storage and never echoed back.
// @Tags Users
// @Accept json
// @Produce json
// @Param registerBody body users.RegisterRequest true "Registration payload"
// @Success 201 {object} users.RegisterResponse
// @Failure 400 {object} apperror.ErrorResponse "Field errors"
// @Router /new-user [post]
func (h *UserHandlers) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := auth.DecodeJSON(r, &req); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		if err := validation.Struct(req); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		user, err := h.service.Register(r.Context(), req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusCreated, RegisterResponse{
			Message:  "user created ok",
			UserData: *user,
		})
	}
}

// HandleListUsers godoc
// @Summary List users
// @Description Users ordered by join time, newest first.
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} auth.User
// @Failure 401 {object} apperror.ErrorResponse
// @Router /users [get]
func (h *UserHandlers) HandleListUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := h.service.ListUsers(r.Context())
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, list)
	}
}

// HandleGetUser godoc
// @Summary Retrieve a user with their games and reviews
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param userID path int true "User ID"
// @Success 200 {object} users.UserDetailResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse "User not found"
// @Router /users/{userID} [get]
func (h *UserHandlers) HandleGetUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDParam(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		detail, err := h.service.GetUserDetail(r.Context(), userID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, detail)
	}
}

// HandleDeleteUser godoc
// @Summary Delete a user account
// @Description Callers may only delete their own account. Owned games and reviews cascade with it.
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param userID path int true "User ID"
// @Success 204 "User deleted"
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse "Not the caller's account"
// @Failure 404 {object} apperror.ErrorResponse "User not found"
// @Router /users/{userID} [delete]
func (h *UserHandlers) HandleDeleteUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDParam(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		callerID, ok := auth.GetUserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("user identity missing from context", nil))
			return
		}

		if err := h.service.DeleteUser(r.Context(), userID, callerID); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
