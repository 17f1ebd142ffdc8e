// Data transfer objects for the games module.
package games

import "github.com/user/gamerack-go/reviews"

// NewGameRequest is the payload for creating a game. Older clients send a
// single "genre" tag instead of the "genres" list; Normalize folds it in.
type NewGameRequest struct {
	Title       string   `json:"title" validate:"required" example:"Hollow Knight"`
	Genres      []string `json:"genres" validate:"required,min=1,dive,required" example:"metroidvania"`
	Genre       string   `json:"genre,omitempty" validate:"-"`
	Description string   `json:"description" example:"A challenging 2D action-adventure."`
	ReleaseDate string   `json:"release_date" validate:"required,datetime=2006-01-02" example:"2017-02-24"`
	CoverURL    string   `json:"cover_url" validate:"omitempty,url" example:"https://example.com/hk.jpg"`
}

// Normalize folds the legacy single-genre field into the genres list.
// Call before validation.
func (r *NewGameRequest) Normalize() {
	if len(r.Genres) == 0 && r.Genre != "" {
		r.Genres = []string{r.Genre}
	}
	r.Genre = ""
}

// UpdateGameRequest supports partial updates: nil fields are left unchanged.
// The owner cannot be changed.
type UpdateGameRequest struct {
	Title       *string  `json:"title,omitempty"`
	Genres      []string `json:"genres,omitempty" validate:"omitempty,min=1,dive,required"`
	Genre       string   `json:"genre,omitempty" validate:"-"`
	Description *string  `json:"description,omitempty"`
	ReleaseDate *string  `json:"release_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	CoverURL    *string  `json:"cover_url,omitempty" validate:"omitempty,url"`
}

// Normalize folds the legacy single-genre field into the genres list.
func (r *UpdateGameRequest) Normalize() {
	if len(r.Genres) == 0 && r.Genre != "" {
		r.Genres = []string{r.Genre}
	}
	r.Genre = ""
}

// CreateGameResponse is returned on successful game creation. The payload
// key is "user_data" for compatibility with existing clients.
type CreateGameResponse struct {
	Message  string `json:"message" example:"game created ok"`
	UserData Game   `json:"user_data"`
}

// GameDetailResponse is the aggregate view of a game: the record plus its
// reviews in one call.
type GameDetailResponse struct {
	Game    Game             `json:"game"`
	Reviews []reviews.Review `json:"reviews"`
}
