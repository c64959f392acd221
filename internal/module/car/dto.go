package car

import "github.com/zharkyn/carmarket/internal/domain"

// CarRequest represents the input for creating or updating a catalog entry.
type CarRequest struct {
	Brand              string   `json:"brand" binding:"required,max=100"`
	Model              string   `json:"model" binding:"required,max=100"`
	Category           string   `json:"category" binding:"max=50"`
	Price              int64    `json:"price" binding:"required,gt=0"`
	ShortDescription   string   `json:"short_description" binding:"max=1000"`
	Image              string   `json:"image" binding:"max=500"`
	Gallery            []string `json:"gallery"`
	Year               int      `json:"year" binding:"gte=0"`
	BodyType           string   `json:"body_type" binding:"max=50"`
	EngineType         string   `json:"engine_type" binding:"max=50"`
	DriveUnit          string   `json:"drive_unit" binding:"max=50"`
	EngineVolume       string   `json:"engine_volume" binding:"max=20"`
	FuelConsumption    string   `json:"fuel_consumption" binding:"max=20"`
	Color              string   `json:"color" binding:"max=50"`
	Mileage            int64    `json:"mileage" binding:"gte=0"`
	BatteryCapacity    string   `json:"battery_capacity" binding:"max=20"`
	Range              string   `json:"range" binding:"max=20"`
	Transmission       string   `json:"transmission" binding:"max=50"`
	AdditionalFeatures []string `json:"additional_features"`
}

// toDomain converts the request into a domain Car.
func (r CarRequest) toDomain() *domain.Car {
	return &domain.Car{
		Brand:              r.Brand,
		Model:              r.Model,
		Category:           r.Category,
		Price:              r.Price,
		ShortDescription:   r.ShortDescription,
		Image:              r.Image,
		Gallery:            r.Gallery,
		Year:               r.Year,
		BodyType:           r.BodyType,
		EngineType:         r.EngineType,
		DriveUnit:          r.DriveUnit,
		EngineVolume:       r.EngineVolume,
		FuelConsumption:    r.FuelConsumption,
		Color:              r.Color,
		Mileage:            r.Mileage,
		BatteryCapacity:    r.BatteryCapacity,
		Range:              r.Range,
		Transmission:       r.Transmission,
		AdditionalFeatures: r.AdditionalFeatures,
	}
}
