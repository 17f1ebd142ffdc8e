package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/gamerack-go/apperror"
	"github.com/user/gamerack-go/config"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// AuthService verifies credentials, issues token pairs and drives the
// logout blacklist.
type AuthService struct {
	dbPool     *pgxpool.Pool
	authConfig config.AuthConfig
	blacklist  TokenBlacklist
}

// NewAuthService creates a new AuthService.
func NewAuthService(dbPool *pgxpool.Pool, authConfig config.AuthConfig, blacklist TokenBlacklist) *AuthService {
	return &AuthService{
		dbPool:     dbPool,
		authConfig: authConfig,
		blacklist:  blacklist,
	}
}

// CustomClaims is the JWT payload: the user's identity plus the token type,
// on top of the registered claims.
type CustomClaims struct {
	UserID    int    `json:"user_id"`
	Username  string `json:"username"`
	TokenType string `json:"token_type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// Login authenticates a user and returns a token pair. Both an unknown
// username and a wrong password produce the same "Invalid credentials"
// error, so the response never reveals which check failed.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.getUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewAuthError("Invalid credentials", nil)
		}
		log.Printf("database error looking up user during login: %v", err)
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		return nil, apperror.NewAuthError("Invalid credentials", nil)
	}

	access, refresh, err := s.issueTokens(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Message:  "Login successful",
		UserID:   user.ID,
		Username: user.Username,
		Refresh:  refresh,
		Access:   access,
	}, nil
}

// Logout revokes a token unconditionally. The token is not validated first:
// revoking garbage is harmless, and a client that wants its token dead gets
// exactly that.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.blacklist.Revoke(ctx, token)
}

// Refresh exchanges a valid, non-revoked refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*RefreshResponse, error) {
	claims, err := s.validateToken(refreshToken, tokenTypeRefresh)
	if err != nil {
		return nil, apperror.NewAuthError("invalid refresh token", err)
	}

	revoked, err := s.blacklist.IsRevoked(ctx, refreshToken)
	if err != nil {
		// Fail closed: if the blacklist cannot be consulted the token is unusable.
		return nil, apperror.NewAuthError("could not verify token revocation state", err)
	}
	if revoked {
		return nil, apperror.NewAuthError("token has been revoked", nil)
	}

	access, _, err := s.generateSpecificToken(claims.UserID, claims.Username, tokenTypeAccess, s.authConfig.AccessTokenDuration)
	if err != nil {
		return nil, apperror.NewInternalError("failed to generate access token", err)
	}

	return &RefreshResponse{Access: access}, nil
}

// issueTokens creates the access/refresh pair for a user identity.
func (s *AuthService) issueTokens(userID int, username string) (access, refresh string, err error) {
	access, _, err = s.generateSpecificToken(userID, username, tokenTypeAccess, s.authConfig.AccessTokenDuration)
	if err != nil {
		return "", "", apperror.NewInternalError("failed to generate access token", err)
	}

	refresh, _, err = s.generateSpecificToken(userID, username, tokenTypeRefresh, s.authConfig.RefreshTokenDuration)
	if err != nil {
		return "", "", apperror.NewInternalError("failed to generate refresh token", err)
	}

	return access, refresh, nil
}

// generateSpecificToken creates a signed JWT with the given type and duration.
func (s *AuthService) generateSpecificToken(userID int, username, tokenType string, duration time.Duration) (string, time.Time, error) {
	now := time.Now()
	expirationTime := now.Add(duration)
	claims := &CustomClaims{
		UserID:    userID,
		Username:  username,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "gamerack",
			Subject:   fmt.Sprintf("%d", userID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.authConfig.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, expirationTime, nil
}

// validateToken parses a JWT and checks its signature, expiry and type.
func (s *AuthService) validateToken(tokenString, expectedTokenType string) (*CustomClaims, error) {
	claims := &CustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.authConfig.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is invalid")
	}
	if claims.TokenType != expectedTokenType {
		return nil, fmt.Errorf("invalid token type: expected %s, got %s", expectedTokenType, claims.TokenType)
	}
	return claims, nil
}

// getUserByUsername loads a user's credentials row.
func (s *AuthService) getUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	query := `SELECT id, username, email, first_name, last_name, password, joined_at
              FROM users WHERE username = $1`
	err := s.dbPool.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.HashedPassword,
		&user.JoinedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
