package domain

import "context"

// Review is a user rating of a catalog car. Rating is 1 to 5; one review
// per user per car.
type Review struct {
	BaseModel
	CarID   uint   `gorm:"not null;index;uniqueIndex:idx_reviews_car_user" json:"car_id"`
	UserID  uint   `gorm:"not null;index;uniqueIndex:idx_reviews_car_user" json:"user_id"`
	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"size:2000" json:"comment"`
}

// ReviewRepository defines the data access interface for reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *Review) error
	GetByID(ctx context.Context, id uint) (*Review, error)
	GetByCarAndUser(ctx context.Context, carID, userID uint) (*Review, error)
	ListByCar(ctx context.Context, carID uint, req PageRequest) (*PageResult[Review], error)
	AverageRating(ctx context.Context, carID uint) (float64, int64, error)
	Update(ctx context.Context, review *Review) error
	Delete(ctx context.Context, id uint) error
}

// ReviewService defines the business logic interface for reviews.
type ReviewService interface {
	CreateReview(ctx context.Context, actor Actor, carID uint, rating int, comment string) (*Review, error)
	ListByCar(ctx context.Context, carID uint, req PageRequest) (*PageResult[Review], error)
	CarRating(ctx context.Context, carID uint) (avg float64, count int64, err error)
	UpdateReview(ctx context.Context, actor Actor, id uint, rating int, comment string) (*Review, error)
	DeleteReview(ctx context.Context, actor Actor, id uint) error
}
