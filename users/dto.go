// Data transfer objects for the users module.
package users

import (
	"github.com/user/gamerack-go/auth"
	"github.com/user/gamerack-go/games"
	"github.com/user/gamerack-go/reviews"
)

// RegisterRequest represents the registration payload.
type RegisterRequest struct {
	Username  string `json:"username" validate:"required" example:"newuser"`
	Email     string `json:"email" validate:"omitempty,email" example:"user@example.com"`
	FirstName string `json:"first_name" example:"New"`
	LastName  string `json:"last_name" example:"User"`
	Password  string `json:"password" validate:"required,min=8" example:"strongpassword123"`
}

// RegisterResponse is returned on successful registration.
type RegisterResponse struct {
	Message  string    `json:"message" example:"user created ok"`
	UserData auth.User `json:"user_data"`
}

// UserDetailResponse is the aggregate view of a user: the user record plus
// the games and reviews they own, in one call.
type UserDetailResponse struct {
	User    auth.User        `json:"user"`
	Games   []games.Game     `json:"games"`
	Reviews []reviews.Review `json:"reviews"`
}
