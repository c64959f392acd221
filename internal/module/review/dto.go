package review

// ReviewRequest represents the input for creating or updating a review.
type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

// RatingResponse represents a car's aggregate rating.
type RatingResponse struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}
