// Package games implements the Game resource: list/create/retrieve/update/
// delete, with the caller as immutable owner and edit/delete restricted to
// that owner.
package games

// Game represents a catalog entry. Genres is a list of free-text tags; the
// "user" field carries the owning user's id, set at creation and immutable.
type Game struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Genres      []string `json:"genres"`
	Description string   `json:"description"`
	ReleaseDate string   `json:"release_date"`
	CoverURL    string   `json:"cover_url"`
	UserID      int      `json:"user"`
}
