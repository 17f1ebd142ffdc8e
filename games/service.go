// Business logic for the games module.
package games

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/gamerack-go/apperror"
	"github.com/user/gamerack-go/reviews"
)

// GameService defines the operations on games. Edit and delete are owner
// only: a caller that is not the game's owner is rejected with Forbidden.
type GameService interface {
	ListGames(ctx context.Context) ([]Game, error)
	ListGamesByOwner(ctx context.Context, userID int) ([]Game, error)
	CreateGame(ctx context.Context, req NewGameRequest, userID int) (*Game, error)
	GetGameDetail(ctx context.Context, gameID int) (*GameDetailResponse, error)
	UpdateGame(ctx context.Context, gameID int, req UpdateGameRequest, callerID int) (*Game, error)
	DeleteGame(ctx context.Context, gameID, callerID int) error
}

type gameServiceImpl struct {
	db      *pgxpool.Pool
	reviews reviews.ReviewService
}

// NewGameService creates a GameService. The review service supplies the
// aggregate view's nested collection.
func NewGameService(db *pgxpool.Pool, reviewService reviews.ReviewService) GameService {
	return &gameServiceImpl{db: db, reviews: reviewService}
}

const gameColumns = `id, title, genres, description, release_date, cover_url, user_id`

// scanGame scans one game row; release_date is normalized to YYYY-MM-DD.
func scanGame(row pgx.Row) (*Game, error) {
	var g Game
	var released time.Time
	if err := row.Scan(&g.ID, &g.Title, &g.Genres, &g.Description, &released, &g.CoverURL, &g.UserID); err != nil {
		return nil, err
	}
	g.ReleaseDate = released.Format("2006-01-02")
	return &g, nil
}

func (s *gameServiceImpl) listWhere(ctx context.Context, where string, args ...interface{}) ([]Game, error) {
	query := fmt.Sprintf(`SELECT %s FROM games %s ORDER BY id`, gameColumns, where)
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list games", err)
	}
	defer rows.Close()

	games := []Game{}
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, apperror.NewDatabaseError("failed to scan game", err)
		}
		games = append(games, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to read games", err)
	}
	return games, nil
}

// ListGames returns every game.
func (s *gameServiceImpl) ListGames(ctx context.Context) ([]Game, error) {
	return s.listWhere(ctx, "")
}

// ListGamesByOwner returns the games owned by one user.
func (s *gameServiceImpl) ListGamesByOwner(ctx context.Context, userID int) ([]Game, error) {
	return s.listWhere(ctx, "WHERE user_id = $1", userID)
}

// getGame loads one game or NotFound.
func (s *gameServiceImpl) getGame(ctx context.Context, gameID int) (*Game, error) {
	query := fmt.Sprintf(`SELECT %s FROM games WHERE id = $1`, gameColumns)
	g, err := scanGame(s.db.QueryRow(ctx, query, gameID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NewNotFoundError("Game not found", nil)
	}
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to get game", err)
	}
	return g, nil
}

// CreateGame persists a game owned by the caller.
func (s *gameServiceImpl) CreateGame(ctx context.Context, req NewGameRequest, userID int) (*Game, error) {
	query := fmt.Sprintf(`INSERT INTO games (title, genres, description, release_date, cover_url, user_id)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING %s`, gameColumns)
	g, err := scanGame(s.db.QueryRow(ctx, query,
		req.Title, req.Genres, req.Description, req.ReleaseDate, req.CoverURL, userID))
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to create game", err)
	}
	return g, nil
}

// GetGameDetail returns the aggregate view: the game plus its reviews.
func (s *gameServiceImpl) GetGameDetail(ctx context.Context, gameID int) (*GameDetailResponse, error) {
	g, err := s.getGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	gameReviews, err := s.reviews.ListReviewsByGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return &GameDetailResponse{Game: *g, Reviews: gameReviews}, nil
}

// UpdateGame applies a partial update to a game the caller owns. The owner
// column is never part of the SET clause.
func (s *gameServiceImpl) UpdateGame(ctx context.Context, gameID int, req UpdateGameRequest, callerID int) (*Game, error) {
	existing, err := s.getGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != callerID {
		return nil, apperror.NewForbiddenError("you do not own this game", nil)
	}

	var setClauses []string
	var args []interface{}
	argID := 1

	if req.Title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", argID))
		args = append(args, *req.Title)
		argID++
	}
	if req.Genres != nil {
		setClauses = append(setClauses, fmt.Sprintf("genres = $%d", argID))
		args = append(args, req.Genres)
		argID++
	}
	if req.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", argID))
		args = append(args, *req.Description)
		argID++
	}
	if req.ReleaseDate != nil {
		setClauses = append(setClauses, fmt.Sprintf("release_date = $%d", argID))
		args = append(args, *req.ReleaseDate)
		argID++
	}
	if req.CoverURL != nil {
		setClauses = append(setClauses, fmt.Sprintf("cover_url = $%d", argID))
		args = append(args, *req.CoverURL)
		argID++
	}

	if len(setClauses) == 0 {
		return existing, nil
	}

	args = append(args, gameID)
	query := fmt.Sprintf(`UPDATE games SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(setClauses, ", "), argID, gameColumns)

	g, err := scanGame(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to update game", err)
	}
	return g, nil
}

// DeleteGame removes a game the caller owns; its reviews go with it via the
// schema's cascade.
func (s *gameServiceImpl) DeleteGame(ctx context.Context, gameID, callerID int) error {
	existing, err := s.getGame(ctx, gameID)
	if err != nil {
		return err
	}
	if existing.UserID != callerID {
		return apperror.NewForbiddenError("you do not own this game", nil)
	}

	if _, err := s.db.Exec(ctx, `DELETE FROM games WHERE id = $1`, gameID); err != nil {
		return apperror.NewDatabaseError("failed to delete game", err)
	}
	return nil
}
