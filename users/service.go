// Package users implements the User resource: public registration, listing,
// the aggregate retrieve combining a user with their games and reviews, and
// self-deletion with cascade.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/gamerack-go/apperror"
	"github.com/user/gamerack-go/auth"
	"github.com/user/gamerack-go/games"
	"github.com/user/gamerack-go/reviews"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// UserService defines the operations on user accounts.
type UserService interface {
	Register(ctx context.Context, req RegisterRequest) (*auth.User, error)
	ListUsers(ctx context.Context) ([]auth.User, error)
	GetUserDetail(ctx context.Context, userID int) (*UserDetailResponse, error)
	DeleteUser(ctx context.Context, userID, callerID int) error
}

type userServiceImpl struct {
	db      *pgxpool.Pool
	games   games.GameService
	reviews reviews.ReviewService
}

// NewUserService creates a UserService. The game and review services supply
// the aggregate view's nested collections.
func NewUserService(db *pgxpool.Pool, gameService games.GameService, reviewService reviews.ReviewService) UserService {
	return &userServiceImpl{db: db, games: gameService, reviews: reviewService}
}

const userColumns = `id, username, email, first_name, last_name, joined_at`

// Register creates a new user with a bcrypt-hashed password. A duplicate
// username surfaces as a field-level validation error, matching the 400
// contract of the registration endpoint.
func (s *userServiceImpl) Register(ctx context.Context, req RegisterRequest) (*auth.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.NewInternalError("failed to hash password", err)
	}

	user := &auth.User{
		Username:  req.Username,
		Email:     strings.ToLower(req.Email),
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	query := fmt.Sprintf(`INSERT INTO users (username, email, first_name, last_name, password)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING %s`, userColumns)
	err = s.db.QueryRow(ctx, query,
		user.Username, user.Email, user.FirstName, user.LastName, string(hashedPassword),
	).Scan(&user.ID, &user.Username, &user.Email, &user.FirstName, &user.LastName, &user.JoinedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation && strings.Contains(pgErr.ConstraintName, "username") {
			return nil, apperror.NewValidationError(map[string][]string{
				"username": {"a user with that username already exists"},
			})
		}
		return nil, apperror.NewDatabaseError("failed to create user", err)
	}

	return user, nil
}

// ListUsers returns all users ordered by join time, newest first.
func (s *userServiceImpl) ListUsers(ctx context.Context) ([]auth.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY joined_at DESC`, userColumns)
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list users", err)
	}
	defer rows.Close()

	users := []auth.User{}
	for rows.Next() {
		var u auth.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.JoinedAt); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan user", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to read users", err)
	}
	return users, nil
}

// getUser loads one user or NotFound.
func (s *userServiceImpl) getUser(ctx context.Context, userID int) (*auth.User, error) {
	var u auth.User
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	err := s.db.QueryRow(ctx, query, userID).Scan(
		&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.JoinedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NewNotFoundError("User not found", nil)
	}
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}
	return &u, nil
}

// GetUserDetail returns the aggregate view: the user plus their games and
// reviews, via the owner-scoped repository queries.
func (s *userServiceImpl) GetUserDetail(ctx context.Context, userID int) (*UserDetailResponse, error) {
	u, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ownedGames, err := s.games.ListGamesByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	ownedReviews, err := s.reviews.ListReviewsByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UserDetailResponse{User: *u, Games: ownedGames, Reviews: ownedReviews}, nil
}

// DeleteUser removes the caller's own account. The schema cascades the
// deletion to every game and review the user owns.
func (s *userServiceImpl) DeleteUser(ctx context.Context, userID, callerID int) error {
	if userID != callerID {
		return apperror.NewForbiddenError("you can only delete your own account", nil)
	}
	tag, err := s.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return apperror.NewDatabaseError("failed to delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError("User not found", nil)
	}
	return nil
}
