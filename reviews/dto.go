// Data transfer objects for the reviews module.
package reviews

// NewReviewRequest is the payload for creating a review. Score must be an
// integer in [1,5].
type NewReviewRequest struct {
	Score  int    `json:"score" validate:"required,min=1,max=5" example:"4"`
	Review string `json:"review" validate:"required" example:"Tight controls, brutal bosses."`
}

// UpdateReviewRequest supports partial updates: nil fields are left unchanged.
type UpdateReviewRequest struct {
	Score  *int    `json:"score,omitempty" validate:"omitempty,min=1,max=5"`
	Review *string `json:"review,omitempty"`
}

// CreateReviewResponse is returned on successful review creation.
type CreateReviewResponse struct {
	Message    string `json:"message" example:"Review created ok"`
	ReviewData Review `json:"review_data"`
}
