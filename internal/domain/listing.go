package domain

import (
	"context"
	"fmt"
)

// Listing is a user-submitted car offer awaiting moderation. On approval it
// is promoted into the public catalog; CarID links the promoted Car and the
// car's ExternalID links back here.
type Listing struct {
	BaseModel
	Moderation
	CreatorID uint  `gorm:"not null;index" json:"creator_id"`
	CarID     *uint `gorm:"index" json:"car_id,omitempty"`

	Brand              string   `gorm:"size:100;not null" json:"brand"`
	Model              string   `gorm:"size:100;not null" json:"model"`
	Category           string   `gorm:"size:50" json:"category"`
	Price              int64    `gorm:"not null" json:"price"`
	ShortDescription   string   `gorm:"size:1000" json:"short_description"`
	Image              string   `gorm:"size:500" json:"image"`
	Gallery            []string `gorm:"serializer:json" json:"gallery"`
	Year               int      `json:"year"`
	BodyType           string   `gorm:"size:50" json:"body_type"`
	EngineType         string   `gorm:"size:50" json:"engine_type"`
	DriveUnit          string   `gorm:"size:50" json:"drive_unit"`
	EngineVolume       string   `gorm:"size:20" json:"engine_volume"`
	FuelConsumption    string   `gorm:"size:20" json:"fuel_consumption"`
	Color              string   `gorm:"size:50" json:"color"`
	Mileage            int64    `json:"mileage"`
	BatteryCapacity    string   `gorm:"size:20" json:"battery_capacity"`
	Range              string   `gorm:"size:20" json:"range"`
	Transmission       string   `gorm:"size:50" json:"transmission"`
	AdditionalFeatures []string `gorm:"serializer:json" json:"additional_features"`
}

// ToCar builds the catalog entry a listing promotes into.
func (l *Listing) ToCar() *Car {
	return &Car{
		Brand:              l.Brand,
		Model:              l.Model,
		Category:           l.Category,
		Price:              l.Price,
		ShortDescription:   l.ShortDescription,
		Image:              l.Image,
		Gallery:            l.Gallery,
		Year:               l.Year,
		BodyType:           l.BodyType,
		EngineType:         l.EngineType,
		DriveUnit:          l.DriveUnit,
		EngineVolume:       l.EngineVolume,
		FuelConsumption:    l.FuelConsumption,
		Color:              l.Color,
		Mileage:            l.Mileage,
		BatteryCapacity:    l.BatteryCapacity,
		Range:              l.Range,
		Transmission:       l.Transmission,
		AdditionalFeatures: l.AdditionalFeatures,
		ExternalID:         l.ExternalID(),
	}
}

// ExternalID is the marker written into a promoted car so the listing it
// came from can be found again.
func (l *Listing) ExternalID() string {
	return fmt.Sprintf("listing_%d", l.ID)
}

// ListingRepository defines the data access interface for listings.
type ListingRepository interface {
	Create(ctx context.Context, listing *Listing) error
	GetByID(ctx context.Context, id uint) (*Listing, error)
	List(ctx context.Context, req PageRequest) (*PageResult[Listing], error)
	ListByCreator(ctx context.Context, creatorID uint, req PageRequest) (*PageResult[Listing], error)
	ListByStatus(ctx context.Context, status ModerationStatus, req PageRequest) (*PageResult[Listing], error)
	Update(ctx context.Context, listing *Listing) error
	Delete(ctx context.Context, id uint) error
}

// ListingService defines the business logic interface for listings.
type ListingService interface {
	SubmitListing(ctx context.Context, actor Actor, listing *Listing) (*Listing, error)
	GetListing(ctx context.Context, actor Actor, id uint) (*Listing, error)
	ListListings(ctx context.Context, actor Actor, req PageRequest) (*PageResult[Listing], error)
	ListMyListings(ctx context.Context, actor Actor, req PageRequest) (*PageResult[Listing], error)
	UpdateListing(ctx context.Context, actor Actor, id uint, listing *Listing) (*Listing, error)
	DeleteListing(ctx context.Context, actor Actor, id uint) error
	Moderate(ctx context.Context, actor Actor, id uint, decision ModerationStatus, comment string) (*Listing, error)
}
