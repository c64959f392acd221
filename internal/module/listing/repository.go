package listing

import (
	"context"

	"github.com/zharkyn/carmarket/internal/domain"
	"github.com/zharkyn/carmarket/internal/pkg"
	"gorm.io/gorm"
)

// Allowed fields for sorting and filtering in List queries.
var (
	allowedSortFields   = []string{"id", "brand", "model", "price", "year", "status", "created_at", "updated_at"}
	allowedFilterFields = []string{"brand", "model", "category", "status", "creator_id"}
)

// listingRepository implements domain.ListingRepository using GORM.
type listingRepository struct {
	db *gorm.DB
}

// NewRepository creates a new ListingRepository backed by the given GORM
// database. Pass a transaction handle to scope the repository to it.
func NewRepository(db *gorm.DB) domain.ListingRepository {
	return &listingRepository{db: db}
}

// Create inserts a new listing.
func (r *listingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	if err := r.db.WithContext(ctx).Create(listing).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// GetByID retrieves a listing by its primary key.
func (r *listingRepository) GetByID(ctx context.Context, id uint) (*domain.Listing, error) {
	var listing domain.Listing
	if err := r.db.WithContext(ctx).First(&listing, id).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &listing, nil
}

// List returns a paginated, sorted, and filtered list of listings.
func (r *listingRepository) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Listing], error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&domain.Listing{}), req)
}

// ListByCreator returns the listings submitted by one user.
func (r *listingRepository) ListByCreator(ctx context.Context, creatorID uint, req domain.PageRequest) (*domain.PageResult[domain.Listing], error) {
	base := r.db.WithContext(ctx).Model(&domain.Listing{}).Where("creator_id = ?", creatorID)
	return r.list(ctx, base, req)
}

// ListByStatus returns the listings in one moderation state.
func (r *listingRepository) ListByStatus(ctx context.Context, status domain.ModerationStatus, req domain.PageRequest) (*domain.PageResult[domain.Listing], error) {
	base := r.db.WithContext(ctx).Model(&domain.Listing{}).Where("status = ?", status)
	return r.list(ctx, base, req)
}

func (r *listingRepository) list(ctx context.Context, base *gorm.DB, req domain.PageRequest) (*domain.PageResult[domain.Listing], error) {
	base = base.Scopes(pkg.Filter(req, allowedFilterFields))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	var listings []domain.Listing
	if err := base.Scopes(
		pkg.Paginate(req),
		pkg.Sort(req, allowedSortFields),
	).Find(&listings).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	return pkg.NewPageResult(listings, total, req), nil
}

// Update saves changes to an existing listing.
func (r *listingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	if err := r.db.WithContext(ctx).Save(listing).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// Delete removes a listing by ID.
func (r *listingRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Listing{}, id)
	if result.Error != nil {
		return pkg.MapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
