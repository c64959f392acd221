package car

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zharkyn/carmarket/internal/domain"
	"github.com/zharkyn/carmarket/internal/filterquery"
)

// carService implements domain.CarService.
type carService struct {
	repo  domain.CarRepository
	cache *searchCache
}

// NewService creates a new CarService. rdb may be nil and cacheTTL zero to
// disable search caching.
func NewService(repo domain.CarRepository, rdb *redis.Client, cacheTTL time.Duration) domain.CarService {
	return &carService{
		repo:  repo,
		cache: newSearchCache(rdb, cacheTTL),
	}
}

// CreateCar validates and persists a new catalog entry.
func (s *carService) CreateCar(ctx context.Context, car *domain.Car) (*domain.Car, error) {
	if err := validateCar(car); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, car); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)

	return car, nil
}

// GetCar retrieves a car by ID.
func (s *carService) GetCar(ctx context.Context, id uint) (*domain.Car, error) {
	return s.repo.GetByID(ctx, id)
}

// ListCars returns a paginated list of cars.
func (s *carService) ListCars(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Car], error) {
	return s.repo.List(ctx, req)
}

// Search translates the submitted form into filter criteria, runs the
// catalog query, and pairs the result page with display tags describing the
// active filters. Results are served from the cache when possible.
func (s *carService) Search(ctx context.Context, form filterquery.Form, req domain.PageRequest) (*domain.SearchResult, error) {
	q := filterquery.ToQuery(form)
	tags := filterquery.DisplayTags(q)

	var cacheKey string
	if s.cache != nil {
		queryJSON, err := q.MarshalJSON()
		if err == nil {
			cacheKey = s.cache.key(ctx, queryJSON, req)
			if cached := s.cache.get(ctx, cacheKey); cached != nil {
				return cached, nil
			}
		}
	}

	page, err := s.repo.Search(ctx, q, req)
	if err != nil {
		return nil, err
	}

	result := &domain.SearchResult{Cars: page, Tags: tags}
	if s.cache != nil && cacheKey != "" {
		s.cache.set(ctx, cacheKey, result)
	}
	return result, nil
}

// UpdateCar loads an existing car, applies the new values, and persists them.
func (s *carService) UpdateCar(ctx context.Context, id uint, car *domain.Car) (*domain.Car, error) {
	if err := validateCar(car); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	car.ID = existing.ID
	car.CreatedAt = existing.CreatedAt
	car.ExternalID = existing.ExternalID

	if err := s.repo.Update(ctx, car); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)

	return car, nil
}

// DeleteCar removes a car from the catalog.
func (s *carService) DeleteCar(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *carService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		s.cache.invalidate(ctx)
	}
}

// validateCar checks the fields every catalog entry must carry.
func validateCar(car *domain.Car) error {
	if strings.TrimSpace(car.Brand) == "" {
		return domain.NewAppError(domain.CodeValidation, "brand is required", nil)
	}
	if strings.TrimSpace(car.Model) == "" {
		return domain.NewAppError(domain.CodeValidation, "model is required", nil)
	}
	if car.Price <= 0 {
		return domain.NewAppError(domain.CodeValidation, "price must be positive", nil)
	}
	if car.Year < 0 {
		return domain.NewAppError(domain.CodeValidation, "year must not be negative", nil)
	}
	if car.Mileage < 0 {
		return domain.NewAppError(domain.CodeValidation, "mileage must not be negative", nil)
	}
	return nil
}
