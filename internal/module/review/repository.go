package review

import (
	"context"

	"github.com/zharkyn/carmarket/internal/domain"
	"github.com/zharkyn/carmarket/internal/pkg"
	"gorm.io/gorm"
)

// reviewRepository implements domain.ReviewRepository using GORM.
type reviewRepository struct {
	db *gorm.DB
}

// NewRepository creates a new ReviewRepository backed by the given GORM database.
func NewRepository(db *gorm.DB) domain.ReviewRepository {
	return &reviewRepository{db: db}
}

// Create inserts a new review.
func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// GetByID retrieves a review by its primary key.
func (r *reviewRepository) GetByID(ctx context.Context, id uint) (*domain.Review, error) {
	var review domain.Review
	if err := r.db.WithContext(ctx).First(&review, id).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &review, nil
}

// GetByCarAndUser retrieves the user's review of a car, if any.
func (r *reviewRepository) GetByCarAndUser(ctx context.Context, carID, userID uint) (*domain.Review, error) {
	var review domain.Review
	err := r.db.WithContext(ctx).
		Where("car_id = ? AND user_id = ?", carID, userID).
		First(&review).Error
	if err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &review, nil
}

// ListByCar returns a paginated list of reviews on a car, newest first.
func (r *reviewRepository) ListByCar(ctx context.Context, carID uint, req domain.PageRequest) (*domain.PageResult[domain.Review], error) {
	base := r.db.WithContext(ctx).Model(&domain.Review{}).Where("car_id = ?", carID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	var reviews []domain.Review
	if err := base.Order("created_at DESC").
		Scopes(pkg.Paginate(req)).
		Find(&reviews).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	return pkg.NewPageResult(reviews, total, req), nil
}

// AverageRating returns the mean rating and review count for a car.
func (r *reviewRepository) AverageRating(ctx context.Context, carID uint) (float64, int64, error) {
	var result struct {
		Avg   float64
		Count int64
	}
	err := r.db.WithContext(ctx).Model(&domain.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("car_id = ?", carID).
		Scan(&result).Error
	if err != nil {
		return 0, 0, pkg.MapDBError(err)
	}
	return result.Avg, result.Count, nil
}

// Update saves changes to an existing review.
func (r *reviewRepository) Update(ctx context.Context, review *domain.Review) error {
	if err := r.db.WithContext(ctx).Save(review).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// Delete removes a review by ID.
func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Review{}, id)
	if result.Error != nil {
		return pkg.MapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
