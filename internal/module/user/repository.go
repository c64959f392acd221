package user

import (
	"context"

	"github.com/zharkyn/carmarket/internal/domain"
	"github.com/zharkyn/carmarket/internal/pkg"
	"gorm.io/gorm"
)

// Allowed fields for sorting and filtering in List queries.
var (
	allowedSortFields   = []string{"id", "username", "email", "created_at", "updated_at"}
	allowedFilterFields = []string{"username", "email", "role", "is_active"}
)

// userRepository implements domain.UserRepository using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewRepository creates a new UserRepository backed by the given GORM database.
func NewRepository(db *gorm.DB) domain.UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user into the database.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// GetByID retrieves a user by its primary key.
func (r *userRepository) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &user, nil
}

// GetByUsername retrieves a user by username.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by email.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &user, nil
}

// List returns a paginated, sorted, and filtered list of users.
func (r *userRepository) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.User], error) {
	var total int64
	base := r.db.WithContext(ctx).Model(&domain.User{}).
		Scopes(pkg.Filter(req, allowedFilterFields))

	if err := base.Count(&total).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	var users []domain.User
	if err := base.Scopes(
		pkg.Paginate(req),
		pkg.Sort(req, allowedSortFields),
	).Find(&users).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	return pkg.NewPageResult(users, total, req), nil
}

// Update saves changes to an existing user.
func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// Delete removes a user by ID.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.User{}, id)
	if result.Error != nil {
		return pkg.MapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddFavorite links a car to a user's favorites. Adding twice is a no-op.
func (r *userRepository) AddFavorite(ctx context.Context, userID, carID uint) error {
	err := r.db.WithContext(ctx).
		Exec("INSERT INTO favorites (user_id, car_id) VALUES (?, ?)", userID, carID).Error
	if err != nil {
		mapped := pkg.MapDBError(err)
		if domain.IsAlreadyExists(mapped) {
			return nil
		}
		return mapped
	}
	return nil
}

// RemoveFavorite unlinks a car from a user's favorites.
func (r *userRepository) RemoveFavorite(ctx context.Context, userID, carID uint) error {
	err := r.db.WithContext(ctx).
		Exec("DELETE FROM favorites WHERE user_id = ? AND car_id = ?", userID, carID).Error
	if err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// ListFavorites returns all cars a user has favorited.
func (r *userRepository) ListFavorites(ctx context.Context, userID uint) ([]domain.Car, error) {
	var cars []domain.Car
	err := r.db.WithContext(ctx).
		Joins("JOIN favorites ON favorites.car_id = cars.id").
		Where("favorites.user_id = ?", userID).
		Find(&cars).Error
	if err != nil {
		return nil, pkg.MapDBError(err)
	}
	return cars, nil
}

// IsFavorite reports whether the user has favorited the car.
func (r *userRepository) IsFavorite(ctx context.Context, userID, carID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("favorites").
		Where("user_id = ? AND car_id = ?", userID, carID).
		Count(&count).Error
	if err != nil {
		return false, pkg.MapDBError(err)
	}
	return count > 0, nil
}
