package review

import (
	"context"
	"strings"

	"github.com/zharkyn/carmarket/internal/domain"
)

// reviewService implements domain.ReviewService.
type reviewService struct {
	repo domain.ReviewRepository
	cars domain.CarRepository
}

// NewService creates a new ReviewService with the given repositories.
func NewService(repo domain.ReviewRepository, cars domain.CarRepository) domain.ReviewService {
	return &reviewService{repo: repo, cars: cars}
}

// CreateReview adds the user's rating of a car. One review per user per car.
func (s *reviewService) CreateReview(ctx context.Context, actor domain.Actor, carID uint, rating int, comment string) (*domain.Review, error) {
	if err := validateRating(rating); err != nil {
		return nil, err
	}
	if _, err := s.cars.GetByID(ctx, carID); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByCarAndUser(ctx, carID, actor.ID); err == nil {
		return nil, domain.NewAppError(domain.CodeAlreadyExists, "you have already reviewed this car", nil)
	} else if !domain.IsNotFound(err) {
		return nil, err
	}

	review := &domain.Review{
		CarID:   carID,
		UserID:  actor.ID,
		Rating:  rating,
		Comment: strings.TrimSpace(comment),
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// ListByCar returns the reviews on a car.
func (s *reviewService) ListByCar(ctx context.Context, carID uint, req domain.PageRequest) (*domain.PageResult[domain.Review], error) {
	return s.repo.ListByCar(ctx, carID, req)
}

// CarRating returns the mean rating and review count for a car.
func (s *reviewService) CarRating(ctx context.Context, carID uint) (float64, int64, error) {
	return s.repo.AverageRating(ctx, carID)
}

// UpdateReview changes the user's own review.
func (s *reviewService) UpdateReview(ctx context.Context, actor domain.Actor, id uint, rating int, comment string) (*domain.Review, error) {
	if err := validateRating(rating); err != nil {
		return nil, err
	}

	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(review.UserID) {
		return nil, domain.ErrForbidden
	}

	review.Rating = rating
	review.Comment = strings.TrimSpace(comment)

	if err := s.repo.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// DeleteReview removes a review. Allowed for its author and for admins.
func (s *reviewService) DeleteReview(ctx context.Context, actor domain.Actor, id uint) error {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanManage(review.UserID) {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return domain.NewAppError(domain.CodeValidation, "rating must be between 1 and 5", nil)
	}
	return nil
}
