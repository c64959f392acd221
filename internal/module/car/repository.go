package car

import (
	"context"
	"strings"

	"github.com/zharkyn/carmarket/internal/domain"
	"github.com/zharkyn/carmarket/internal/filterquery"
	"github.com/zharkyn/carmarket/internal/pkg"
	"gorm.io/gorm"
)

// Allowed fields for sorting and filtering in List queries.
var (
	allowedSortFields   = []string{"id", "brand", "model", "price", "year", "mileage", "created_at"}
	allowedFilterFields = []string{"brand", "model", "category", "engine_type", "transmission", "body_type", "color"}
)

// carRepository implements domain.CarRepository using GORM.
type carRepository struct {
	db *gorm.DB
}

// NewRepository creates a new CarRepository backed by the given GORM database.
func NewRepository(db *gorm.DB) domain.CarRepository {
	return &carRepository{db: db}
}

// Create inserts a new car into the catalog.
func (r *carRepository) Create(ctx context.Context, car *domain.Car) error {
	if err := r.db.WithContext(ctx).Create(car).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// GetByID retrieves a car by its primary key.
func (r *carRepository) GetByID(ctx context.Context, id uint) (*domain.Car, error) {
	var car domain.Car
	if err := r.db.WithContext(ctx).First(&car, id).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &car, nil
}

// GetByExternalID retrieves a car by the marker linking it to a listing.
func (r *carRepository) GetByExternalID(ctx context.Context, externalID string) (*domain.Car, error) {
	var car domain.Car
	if err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&car).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &car, nil
}

// List returns a paginated, sorted, and filtered list of cars.
func (r *carRepository) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Car], error) {
	var total int64
	base := r.db.WithContext(ctx).Model(&domain.Car{}).
		Scopes(pkg.Filter(req, allowedFilterFields))

	if err := base.Count(&total).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	var cars []domain.Car
	if err := base.Scopes(
		pkg.Paginate(req),
		pkg.Sort(req, allowedSortFields),
	).Find(&cars).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	return pkg.NewPageResult(cars, total, req), nil
}

// Search returns a paginated list of cars matching the translated filter
// criteria. Text fields match case-insensitive substrings, range keys become
// inequalities, and everything else is an exact match.
func (r *carRepository) Search(ctx context.Context, q filterquery.Query, req domain.PageRequest) (*domain.PageResult[domain.Car], error) {
	base := r.db.WithContext(ctx).Model(&domain.Car{}).Scopes(searchScope(q))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	var cars []domain.Car
	if err := base.Scopes(
		pkg.Paginate(req),
		pkg.Sort(req, allowedSortFields),
	).Find(&cars).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	return pkg.NewPageResult(cars, total, req), nil
}

// searchScope translates the filter query into WHERE conditions.
func searchScope(q filterquery.Query) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, p := range q {
			value, ok := p.Value.(string)
			if !ok {
				continue
			}
			switch p.Key {
			case filterquery.KeyBrand:
				db = db.Where("LOWER(brand) LIKE ?", "%"+strings.ToLower(value)+"%")
			case filterquery.KeyModel:
				db = db.Where("LOWER(model) LIKE ?", "%"+strings.ToLower(value)+"%")
			case filterquery.KeyColor:
				db = db.Where("LOWER(color) LIKE ?", "%"+strings.ToLower(value)+"%")
			case filterquery.KeyCategory:
				db = db.Where("category = ?", value)
			case filterquery.KeyEngineType:
				db = db.Where("engine_type = ?", value)
			case filterquery.KeyTransmission:
				db = db.Where("transmission = ?", value)
			case filterquery.KeyBodyType:
				db = db.Where("body_type = ?", value)
			case filterquery.KeyDriveUnit:
				db = db.Where("drive_unit = ?", value)
			case filterquery.KeyPriceFrom:
				db = db.Where("price >= ?", value)
			case filterquery.KeyPriceTo:
				db = db.Where("price <= ?", value)
			case filterquery.KeyYearFrom:
				db = db.Where("year >= ?", value)
			case filterquery.KeyYearTo:
				db = db.Where("year <= ?", value)
			case filterquery.KeyMileageFrom:
				db = db.Where("mileage >= ?", value)
			case filterquery.KeyMileageTo:
				db = db.Where("mileage <= ?", value)
			}
		}
		return db
	}
}

// Update saves changes to an existing car.
func (r *carRepository) Update(ctx context.Context, car *domain.Car) error {
	if err := r.db.WithContext(ctx).Save(car).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// Delete removes a car by ID.
func (r *carRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Car{}, id)
	if result.Error != nil {
		return pkg.MapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
