// Package reviews implements the Review resource: listing, plus the nested
// create/update/delete operations scoped under a parent game. A review is
// addressed by the (game, review) pair; a review id alone never resolves a
// review that belongs to a different game.
package reviews

// Review represents a game review. The "user" and "game" fields carry the
// owning user's and parent game's ids.
type Review struct {
	ID    int `json:"id"`
	Score int `json:"score"`
	// Review is the free-text body.
	Review        string `json:"review"`
	DateSubmitted string `json:"date_submitted"`
	UserID        int    `json:"user"`
	GameID        int    `json:"game"`
}
