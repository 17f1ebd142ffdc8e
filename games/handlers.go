// HTTP handlers for the games module.
package games

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/gamerack-go/apperror"
	"github.com/user/gamerack-go/auth"
	"github.com/user/gamerack-go/validation"
)

// GameHandlers handles HTTP requests for games.
type GameHandlers struct {
	service GameService
}

// NewGameHandlers creates new GameHandlers.
func NewGameHandlers(service GameService) *GameHandlers {
	return &GameHandlers{service: service}
}

// gameIDParam reads the numeric game id from the URL. A non-numeric value
// can never address a game, so it maps to NotFound.
func gameIDParam(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "gameID"))
	if err != nil {
		return 0, apperror.NewNotFoundError("Game not found", nil)
	}
	return id, nil
}

// HandleListGames godoc
// @Summary List games
// @Tags Games
// @Produce json
// @Security BearerAuth
// @Success 200 {array} games.Game
// @Failure 401 {object} apperror.ErrorResponse
// @Router /games [get]
func (h *GameHandlers) HandleListGames() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := h.service.ListGames(r.Context())
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, list)
	}
}

// HandleCreateGame godoc
// @Summary Create a game
// @Description Creates a game owned by the authenticated caller.
// @Tags Games
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param gameBody body games.NewGameRequest true "Game payload"
// @Success 201 {object} games.CreateGameResponse
// @Failure 400 {object} apperror.ErrorResponse "Field errors"
// @Failure 401 {object} apperror.ErrorResponse
// @Router /new-game [post]
func (h *GameHandlers) HandleCreateGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.GetUserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("user identity missing from context", nil))
			return
		}

		var req NewGameRequest
		if err := auth.DecodeJSON(r, &req); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		req.Normalize()
		if err := validation.Struct(req); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		g, err := h.service.CreateGame(r.Context(), req, userID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusCreated, CreateGameResponse{
			Message:  "game created ok",
			UserData: *g,
		})
	}
}

// HandleGetGame godoc
// @Summary Retrieve a game with its reviews
// @Tags Games
// @Produce json
// @Security BearerAuth
// @Param gameID path int true "Game ID"
// @Success 200 {object} games.GameDetailResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse "Game not found"
// @Router /games/{gameID} [get]
func (h *GameHandlers) HandleGetGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, err := gameIDParam(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		detail, err := h.service.GetGameDetail(r.Context(), gameID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, detail)
	}
}

// HandleUpdateGame godoc
// @Summary Edit a game
// @Tags Games
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param gameID path int true "Game ID"
// @Param gameBody body games.UpdateGameRequest true "Fields to update"
// @Success 200 {object} games.Game
// @Failure 400 {object} apperror.ErrorResponse "Field errors"
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse "Caller does not own the game"
// @Failure 404 {object} apperror.ErrorResponse "Game not found"
// @Router /games/{gameID}/edit [put]
func (h *GameHandlers) HandleUpdateGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, err := gameIDParam(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		callerID, ok := auth.GetUserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("user identity missing from context", nil))
			return
		}

		var req UpdateGameRequest
		if err := auth.DecodeJSON(r, &req); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		req.Normalize()
		if err := validation.Struct(req); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		g, err := h.service.UpdateGame(r.Context(), gameID, req, callerID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, g)
	}
}

// HandleDeleteGame godoc
// @Summary Delete a game
// @Description Deletes a game the caller owns; its reviews cascade with it.
// @Tags Games
// @Produce json
// @Security BearerAuth
// @Param gameID path int true "Game ID"
// @Success 204 "Game deleted"
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse "Caller does not own the game"
// @Failure 404 {object} apperror.ErrorResponse "Game not found"
// @Router /games/{gameID} [delete]
func (h *GameHandlers) HandleDeleteGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, err := gameIDParam(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		callerID, ok := auth.GetUserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("user identity missing from context", nil))
			return
		}

		if err := h.service.DeleteGame(r.Context(), gameID, callerID); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
