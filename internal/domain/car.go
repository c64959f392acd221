package domain

import (
	"context"

	"github.com/zharkyn/carmarket/internal/filterquery"
)

// Car is a catalog entry. Cars come from two places: admins create them
// directly, and approved listings are promoted into them with ExternalID
// recording the source listing.
type Car struct {
	BaseModel
	Brand            string   `gorm:"size:100;not null;index" json:"brand"`
	Model            string   `gorm:"size:100;not null;index" json:"model"`
	Category         string   `gorm:"size:50;index" json:"category"`
	Price            int64    `gorm:"not null;index" json:"price"`
	ShortDescription string   `gorm:"size:1000" json:"short_description"`
	Image            string   `gorm:"size:500" json:"image"`
	Gallery          []string `gorm:"serializer:json" json:"gallery"`
	Year             int      `gorm:"index" json:"year"`
	BodyType         string   `gorm:"size:50" json:"body_type"`
	EngineType       string   `gorm:"size:50" json:"engine_type"`
	DriveUnit        string   `gorm:"size:50" json:"drive_unit"`
	EngineVolume     string   `gorm:"size:20" json:"engine_volume"`
	FuelConsumption  string   `gorm:"size:20" json:"fuel_consumption"`
	Color            string   `gorm:"size:50" json:"color"`
	Mileage          int64    `gorm:"index" json:"mileage"`
	BatteryCapacity  string   `gorm:"size:20" json:"battery_capacity"`
	Range            string   `gorm:"size:20" json:"range"`
	Transmission     string   `gorm:"size:50" json:"transmission"`
	AdditionalFeatures []string `gorm:"serializer:json" json:"additional_features"`
	ExternalID       string   `gorm:"size:100;index" json:"external_id,omitempty"`
}

// CarRepository defines the data access interface for the car catalog.
type CarRepository interface {
	Create(ctx context.Context, car *Car) error
	GetByID(ctx context.Context, id uint) (*Car, error)
	GetByExternalID(ctx context.Context, externalID string) (*Car, error)
	List(ctx context.Context, req PageRequest) (*PageResult[Car], error)
	Search(ctx context.Context, q filterquery.Query, req PageRequest) (*PageResult[Car], error)
	Update(ctx context.Context, car *Car) error
	Delete(ctx context.Context, id uint) error
}

// SearchResult is a filtered catalog page together with the display tags
// describing the criteria that produced it.
type SearchResult struct {
	Cars *PageResult[Car]  `json:"cars"`
	Tags []filterquery.Tag `json:"tags"`
}

// CarService defines the business logic interface for the car catalog.
type CarService interface {
	CreateCar(ctx context.Context, car *Car) (*Car, error)
	GetCar(ctx context.Context, id uint) (*Car, error)
	ListCars(ctx context.Context, req PageRequest) (*PageResult[Car], error)
	Search(ctx context.Context, form filterquery.Form, req PageRequest) (*SearchResult, error)
	UpdateCar(ctx context.Context, id uint, car *Car) (*Car, error)
	DeleteCar(ctx context.Context, id uint) error
}
