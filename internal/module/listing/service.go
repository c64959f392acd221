package listing

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/zharkyn/carmarket/internal/domain"
	"github.com/zharkyn/carmarket/internal/module/car"
	"github.com/zharkyn/carmarket/internal/pkg"
)

// listingService implements domain.ListingService.
//
// Moderation decisions touch both the listing and the car catalog, so they
// run inside a transaction with repositories scoped to it.
type listingService struct {
	db   *gorm.DB
	repo domain.ListingRepository
	rdb  *redis.Client
}

// NewService creates a new ListingService. rdb may be nil to disable event
// publishing and cache invalidation.
func NewService(db *gorm.DB, repo domain.ListingRepository, rdb *redis.Client) domain.ListingService {
	return &listingService{db: db, repo: repo, rdb: rdb}
}

// SubmitListing validates and persists a new listing. Whatever moderation
// state the payload carried is discarded: new submissions are always pending.
func (s *listingService) SubmitListing(ctx context.Context, actor domain.Actor, listing *domain.Listing) (*domain.Listing, error) {
	if err := validateListing(listing); err != nil {
		return nil, err
	}

	listing.CreatorID = actor.ID
	listing.CarID = nil
	listing.Submit()

	if err := s.repo.Create(ctx, listing); err != nil {
		return nil, err
	}

	return listing, nil
}

// GetListing retrieves a listing. Listings are visible to their creator and
// to admins only; the public sees promoted cars through the catalog instead.
func (s *listingService) GetListing(ctx context.Context, actor domain.Actor, id uint) (*domain.Listing, error) {
	listing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(listing.CreatorID) {
		return nil, domain.ErrForbidden
	}
	return listing, nil
}

// ListListings returns all listings. Admin only: this is the moderation queue.
func (s *listingService) ListListings(ctx context.Context, actor domain.Actor, req domain.PageRequest) (*domain.PageResult[domain.Listing], error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.repo.List(ctx, req)
}

// ListMyListings returns the listings submitted by the acting user.
func (s *listingService) ListMyListings(ctx context.Context, actor domain.Actor, req domain.PageRequest) (*domain.PageResult[domain.Listing], error) {
	return s.repo.ListByCreator(ctx, actor.ID, req)
}

// UpdateListing applies owner edits. Approved listings are frozen: they must
// be deleted and resubmitted. Any other edit resets the listing to pending
// and clears the previous moderation verdict.
func (s *listingService) UpdateListing(ctx context.Context, actor domain.Actor, id uint, upd *domain.Listing) (*domain.Listing, error) {
	if err := validateListing(upd); err != nil {
		return nil, err
	}

	listing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(listing.CreatorID) {
		return nil, domain.ErrForbidden
	}
	if err := listing.ResetForEdit(); err != nil {
		return nil, err
	}

	applyFields(listing, upd)

	if err := s.repo.Update(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// DeleteListing removes a listing and, if it was promoted, the catalog car
// that came from it.
func (s *listingService) DeleteListing(ctx context.Context, actor domain.Actor, id uint) error {
	listing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanManage(listing.CreatorID) {
		return domain.ErrForbidden
	}

	err = pkg.WithTx(s.db, func(tx *gorm.DB) error {
		txListings := NewRepository(tx)
		txCars := car.NewRepository(tx)

		if listing.CarID != nil {
			if err := txCars.Delete(ctx, *listing.CarID); err != nil && !domain.IsNotFound(err) {
				return err
			}
		}
		return txListings.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	if listing.CarID != nil {
		car.InvalidateSearchCache(ctx, s.rdb)
	}
	return nil
}

// Moderate applies an admin decision. Approval promotes the listing into the
// car catalog (or refreshes the already-promoted car); rejection removes the
// promoted car if one exists. The listing and catalog change together or not
// at all.
func (s *listingService) Moderate(ctx context.Context, actor domain.Actor, id uint, decision domain.ModerationStatus, comment string) (*domain.Listing, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	var moderated *domain.Listing
	err := pkg.WithTx(s.db, func(tx *gorm.DB) error {
		txListings := NewRepository(tx)
		txCars := car.NewRepository(tx)

		listing, err := txListings.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := listing.Decide(decision, actor.ID, comment); err != nil {
			return err
		}

		switch decision {
		case domain.StatusApproved:
			if err := promote(ctx, txCars, listing); err != nil {
				return err
			}
		case domain.StatusRejected:
			if listing.CarID != nil {
				if err := txCars.Delete(ctx, *listing.CarID); err != nil && !domain.IsNotFound(err) {
					return err
				}
				listing.CarID = nil
			}
		}

		if err := txListings.Update(ctx, listing); err != nil {
			return err
		}
		moderated = listing
		return nil
	})
	if err != nil {
		return nil, err
	}

	car.InvalidateSearchCache(ctx, s.rdb)
	publishModerationEvent(ctx, s.rdb, ModerationEvent{
		ListingID: moderated.ID,
		CreatorID: moderated.CreatorID,
		Status:    moderated.Status,
		Comment:   moderated.ModeratorComment,
		CarID:     moderated.CarID,
		At:        time.Now().UTC(),
	})

	return moderated, nil
}

// promote creates or refreshes the catalog car backing an approved listing.
func promote(ctx context.Context, cars domain.CarRepository, listing *domain.Listing) error {
	promoted := listing.ToCar()

	if listing.CarID != nil {
		existing, err := cars.GetByID(ctx, *listing.CarID)
		if err == nil {
			promoted.ID = existing.ID
			promoted.CreatedAt = existing.CreatedAt
			return cars.Update(ctx, promoted)
		}
		if !domain.IsNotFound(err) {
			return err
		}
		// The linked car is gone; fall through and recreate it.
	}

	if err := cars.Create(ctx, promoted); err != nil {
		return err
	}
	listing.CarID = &promoted.ID
	return nil
}

// applyFields copies the editable fields of upd onto listing.
func applyFields(listing, upd *domain.Listing) {
	listing.Brand = upd.Brand
	listing.Model = upd.Model
	listing.Category = upd.Category
	listing.Price = upd.Price
	listing.ShortDescription = upd.ShortDescription
	listing.Image = upd.Image
	listing.Gallery = upd.Gallery
	listing.Year = upd.Year
	listing.BodyType = upd.BodyType
	listing.EngineType = upd.EngineType
	listing.DriveUnit = upd.DriveUnit
	listing.EngineVolume = upd.EngineVolume
	listing.FuelConsumption = upd.FuelConsumption
	listing.Color = upd.Color
	listing.Mileage = upd.Mileage
	listing.BatteryCapacity = upd.BatteryCapacity
	listing.Range = upd.Range
	listing.Transmission = upd.Transmission
	listing.AdditionalFeatures = upd.AdditionalFeatures
}

// validateListing checks the fields every listing must carry.
func validateListing(listing *domain.Listing) error {
	if strings.TrimSpace(listing.Brand) == "" {
		return domain.NewAppError(domain.CodeValidation, "brand is required", nil)
	}
	if strings.TrimSpace(listing.Model) == "" {
		return domain.NewAppError(domain.CodeValidation, "model is required", nil)
	}
	if listing.Price <= 0 {
		return domain.NewAppError(domain.CodeValidation, "price must be positive", nil)
	}
	if listing.Mileage < 0 {
		return domain.NewAppError(domain.CodeValidation, "mileage must not be negative", nil)
	}
	return nil
}
