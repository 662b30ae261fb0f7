package services

import (
	"mistica/internal/apperr"
	"mistica/internal/models"
	"mistica/internal/store"
)

type ReviewService struct {
	reviews store.ReviewRepository
	catalog store.CatalogRepository
}

func NewReviewService(reviews store.ReviewRepository, catalog store.CatalogRepository) *ReviewService {
	return &ReviewService{reviews: reviews, catalog: catalog}
}

func (s *ReviewService) Add(req models.AddReviewRequest) (models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return models.Review{}, apperr.Validation("rating must be between 1 and 5")
	}
	if _, ok := s.catalog.Product(req.ProductID); !ok {
		return models.Review{}, apperr.NotFound("product %d not found", req.ProductID)
	}
	return s.reviews.AddReview(models.Review{
		UserID:    req.UserID,
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}), nil
}

func (s *ReviewService) ForProduct(productID int64) []models.Review {
	return s.reviews.Reviews(productID)
}

// MarkHelpful records a user's helpful vote; voting again flips the
// existing vote instead of adding another.
func (s *ReviewService) MarkHelpful(reviewID, userID int64, isHelpful bool) (models.ReviewHelpful, error) {
	if _, ok := s.reviews.Review(reviewID); !ok {
		return models.ReviewHelpful{}, apperr.NotFound("review %d not found", reviewID)
	}
	return s.reviews.SetHelpful(reviewID, userID, isHelpful), nil
}
