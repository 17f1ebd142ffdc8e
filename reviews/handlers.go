// HTTP handlers for the reviews module.
package reviews

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/gamerack-go/apperror"
	"github.com/user/gamerack-go/auth"
)

// ReviewHandlers handles HTTP requests for reviews.
type ReviewHandlers struct {
	service ReviewService
}

// NewReviewHandlers creates new ReviewHandlers.
func NewReviewHandlers(service ReviewService) *ReviewHandlers {
	return &ReviewHandlers{service: service}
}

// idParam reads a numeric URL parameter. A non-numeric value can never
// address a resource, so it maps to NotFound.
func idParam(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, apperror.NewNotFoundError("Review or Game not found", nil)
	}
	return id, nil
}

// HandleListReviews godoc
// @Summary List reviews
// @Tags Reviews
// @Produce json
// @Security BearerAuth
// @Success 200 {array} reviews.Review
// @Failure 401 {object} apperror.ErrorResponse
// @Router /reviews [get]
func (h *ReviewHandlers) HandleListReviews() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := h.service.ListReviews(r.Context())
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, list)
	}
}

// HandleCreateReview godoc
// @Summary Create a review under a game
// @Description Resolves the parent game first; an unknown game is a 404 before any validation of the review payload is reported.
// @Tags Reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param gameID path int true "Game ID"
// @Param reviewBody body reviews.NewReviewRequest true "Review payload"
// @Success 201 {object} reviews.CreateReviewResponse
// @Failure 400 {object} apperror.ErrorResponse "Field errors"
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse "Game not found"
// @Router /games/{gameID}/new-review [post]
func (h *ReviewHandlers) HandleCreateReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, err := idParam(r, "gameID")
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		userID, ok := auth.GetUserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("user identity missing from context", nil))
			return
		}

		var req NewReviewRequest
		if err := auth.DecodeJSON(r, &req); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		// The service validates the payload only after the parent game
		// resolves, so an unknown game is a 404, never field errors.
		rv, err := h.service.CreateReview(r.Context(), gameID, req, userID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusCreated, CreateReviewResponse{
			Message:    "Review created ok",
			ReviewData: *rv,
		})
	}
}

// HandleUpdateReview godoc
// @Summary Update a review
// @Tags Reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param gameID path int true "Game ID"
// @Param reviewID path int true "Review ID"
// @Param reviewBody body reviews.UpdateReviewRequest true "Fields to update"
// @Success 200 {object} reviews.Review
// @Failure 400 {object} apperror.ErrorResponse "Field errors"
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse "Caller does not own the review"
// @Failure 404 {object} apperror.ErrorResponse "Review or Game not found"
// @Router /games/{gameID}/reviews/{reviewID} [put]
func (h *ReviewHandlers) HandleUpdateReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, err := idParam(r, "gameID")
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		reviewID, err := idParam(r, "reviewID")
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		callerID, ok := auth.GetUserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("user identity missing from context", nil))
			return
		}

		var req UpdateReviewRequest
		if err := auth.DecodeJSON(r, &req); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		rv, err := h.service.UpdateReview(r.Context(), gameID, reviewID, req, callerID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, rv)
	}
}

// HandleDeleteReview godoc
// @Summary Delete a review
// @Tags Reviews
// @Produce json
// @Security BearerAuth
// @Param gameID path int true "Game ID"
// @Param reviewID path int true "Review ID"
// @Success 204 "Review deleted"
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse "Caller does not own the review"
// @Failure 404 {object} apperror.ErrorResponse "Review or Game not found"
// @Router /games/{gameID}/reviews/{reviewID} [delete]
func (h *ReviewHandlers) HandleDeleteReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, err := idParam(r, "gameID")
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		reviewID, err := idParam(r, "reviewID")
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		callerID, ok := auth.GetUserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("user identity missing from context", nil))
			return
		}

		if err := h.service.DeleteReview(r.Context(), gameID, reviewID, callerID); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
