// Business logic for the reviews module.
package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/gamerack-go/apperror"
	"github.com/user/gamerack-go/validation"
)

// ReviewService defines the operations on reviews. The nested operations
// resolve the parent game before touching the review: an absent game, or a
// review belonging to a different game, is NotFound before anything else,
// including payload validation. Field errors are only reported for a payload
// aimed at a resolvable target, so create and update validate after the
// game (and review) lookup succeeds.
type ReviewService interface {
	ListReviews(ctx context.Context) ([]Review, error)
	ListReviewsByGame(ctx context.Context, gameID int) ([]Review, error)
	ListReviewsByOwner(ctx context.Context, userID int) ([]Review, error)
	CreateReview(ctx context.Context, gameID int, req NewReviewRequest, userID int) (*Review, error)
	UpdateReview(ctx context.Context, gameID, reviewID int, req UpdateReviewRequest, callerID int) (*Review, error)
	DeleteReview(ctx context.Context, gameID, reviewID, callerID int) error
}

type reviewServiceImpl struct {
	db *pgxpool.Pool
}

// NewReviewService creates a ReviewService backed by the given pool.
func NewReviewService(db *pgxpool.Pool) ReviewService {
	return &reviewServiceImpl{db: db}
}

const reviewColumns = `id, score, review, date_submitted, user_id, game_id`

// scanReview scans one review row; date_submitted is normalized to YYYY-MM-DD.
func scanReview(row pgx.Row) (*Review, error) {
	var rv Review
	var submitted time.Time
	if err := row.Scan(&rv.ID, &rv.Score, &rv.Review, &submitted, &rv.UserID, &rv.GameID); err != nil {
		return nil, err
	}
	rv.DateSubmitted = submitted.Format("2006-01-02")
	return &rv, nil
}

func (s *reviewServiceImpl) listWhere(ctx context.Context, where string, args ...interface{}) ([]Review, error) {
	query := fmt.Sprintf(`SELECT %s FROM reviews %s ORDER BY id`, reviewColumns, where)
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list reviews", err)
	}
	defer rows.Close()

	reviews := []Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, apperror.NewDatabaseError("failed to scan review", err)
		}
		reviews = append(reviews, *rv)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to read reviews", err)
	}
	return reviews, nil
}

// ListReviews returns every review.
func (s *reviewServiceImpl) ListReviews(ctx context.Context) ([]Review, error) {
	return s.listWhere(ctx, "")
}

// ListReviewsByGame returns the reviews belonging to one game.
func (s *reviewServiceImpl) ListReviewsByGame(ctx context.Context, gameID int) ([]Review, error) {
	return s.listWhere(ctx, "WHERE game_id = $1", gameID)
}

// ListReviewsByOwner returns the reviews written by one user.
func (s *reviewServiceImpl) ListReviewsByOwner(ctx context.Context, userID int) ([]Review, error) {
	return s.listWhere(ctx, "WHERE user_id = $1", userID)
}

// gameExists checks the parent game. The nested routes fail with
// "Game not found" before any review work happens.
func (s *reviewServiceImpl) gameExists(ctx context.Context, gameID int) error {
	var one int
	err := s.db.QueryRow(ctx, `SELECT 1 FROM games WHERE id = $1`, gameID).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.NewNotFoundError("Game not found", nil)
	}
	if err != nil {
		return apperror.NewDatabaseError("failed to look up game", err)
	}
	return nil
}

// getReviewScoped loads a review by id within its game. A review id that
// exists under a different game is NotFound, not Forbidden: scoping reviews
// under their game is an invariant, not a URL convenience.
func (s *reviewServiceImpl) getReviewScoped(ctx context.Context, gameID, reviewID int) (*Review, error) {
	query := fmt.Sprintf(`SELECT %s FROM reviews WHERE id = $1 AND game_id = $2`, reviewColumns)
	rv, err := scanReview(s.db.QueryRow(ctx, query, reviewID, gameID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NewNotFoundError("Review or Game not found", nil)
	}
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to get review", err)
	}
	return rv, nil
}

// CreateReview persists a review under an existing game, owned by the caller.
func (s *reviewServiceImpl) CreateReview(ctx context.Context, gameID int, req NewReviewRequest, userID int) (*Review, error) {
	if err := s.gameExists(ctx, gameID); err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`INSERT INTO reviews (score, review, date_submitted, user_id, game_id)
        VALUES ($1, $2, CURRENT_DATE, $3, $4)
        RETURNING %s`, reviewColumns)
	rv, err := scanReview(s.db.QueryRow(ctx, query, req.Score, req.Review, userID, gameID))
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to create review", err)
	}
	return rv, nil
}

// UpdateReview applies a partial update to a review the caller owns.
func (s *reviewServiceImpl) UpdateReview(ctx context.Context, gameID, reviewID int, req UpdateReviewRequest, callerID int) (*Review, error) {
	if err := s.gameExists(ctx, gameID); err != nil {
		return nil, err
	}
	existing, err := s.getReviewScoped(ctx, gameID, reviewID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != callerID {
		return nil, apperror.NewForbiddenError("you do not own this review", nil)
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	var setClauses []string
	var args []interface{}
	argID := 1

	if req.Score != nil {
		setClauses = append(setClauses, fmt.Sprintf("score = $%d", argID))
		args = append(args, *req.Score)
		argID++
	}
	if req.Review != nil {
		setClauses = append(setClauses, fmt.Sprintf("review = $%d", argID))
		args = append(args, *req.Review)
		argID++
	}

	if len(setClauses) == 0 {
		return existing, nil
	}

	args = append(args, reviewID, gameID)
	query := fmt.Sprintf(`UPDATE reviews SET %s WHERE id = $%d AND game_id = $%d RETURNING %s`,
		strings.Join(setClauses, ", "), argID, argID+1, reviewColumns)

	rv, err := scanReview(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to update review", err)
	}
	return rv, nil
}

// DeleteReview removes a review the caller owns. The deletion is immediate
// and irreversible.
func (s *reviewServiceImpl) DeleteReview(ctx context.Context, gameID, reviewID, callerID int) error {
	if err := s.gameExists(ctx, gameID); err != nil {
		return err
	}
	existing, err := s.getReviewScoped(ctx, gameID, reviewID)
	if err != nil {
		return err
	}
	if existing.UserID != callerID {
		return apperror.NewForbiddenError("you do not own this review", nil)
	}

	if _, err := s.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1 AND game_id = $2`, reviewID, gameID); err != nil {
		return apperror.NewDatabaseError("failed to delete review", err)
	}
	return nil
}
