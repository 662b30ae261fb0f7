package models

import "time"

type Review struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ProductID int64     `json:"product_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReviewHelpful is one user's helpful/not-helpful vote on a review. A
// second vote by the same user replaces the first.
type ReviewHelpful struct {
	ID        int64     `json:"id"`
	ReviewID  int64     `json:"review_id"`
	UserID    int64     `json:"user_id"`
	IsHelpful bool      `json:"is_helpful"`
	CreatedAt time.Time `json:"created_at"`
}

type AddReviewRequest struct {
	UserID    int64  `json:"userId" binding:"required"`
	ProductID int64  `json:"productId" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

type ReviewHelpfulRequest struct {
	UserID    int64 `json:"userId" binding:"required"`
	IsHelpful *bool `json:"isHelpful" binding:"required"`
}
