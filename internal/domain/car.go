package domain

import "errors"

// ErrNotFound is returned by car stores when no record matches an id.
var ErrNotFound = errors.New("car not found")

type Car struct {
	ID           string  `db:"id" json:"id" gorm:"primaryKey;size:36"`
	Name         string  `db:"name" json:"name" gorm:"size:200;not null"`
	Mileage      string  `db:"mileage" json:"mileage" gorm:"size:32"`
	ThumbnailURL string  `db:"thumbnail_url" json:"thumbnailUrl" gorm:"column:thumbnail_url;size:1024"`
	DailyPrice   float64 `db:"daily_price" json:"dailyPrice"`
	MonthlyPrice float64 `db:"monthly_price" json:"monthlyPrice"`
	GearType     string  `db:"gear_type" json:"gearType" gorm:"size:32"`
	Gas          string  `db:"gas" json:"gas" gorm:"size:32"` // fuel type: Petrol | Diesel | Electric ...
	CreatedAt    string  `db:"created_at" json:"createdAt,omitempty" gorm:"size:40;index"`
	UpdatedAt    string  `db:"updated_at" json:"updatedAt,omitempty" gorm:"size:40"`
}

// CarPatch carries the optional fields of a NewCarInput. Nil fields are left untouched.
type CarPatch struct {
	Name         *string
	Mileage      *string
	ThumbnailURL *string
	DailyPrice   *float64
	MonthlyPrice *float64
	GearType     *string
	Gas          *string
}

// Apply returns c with every non-nil field of p copied over it.
func (p CarPatch) Apply(c Car) Car {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Mileage != nil {
		c.Mileage = *p.Mileage
	}
	if p.ThumbnailURL != nil {
		c.ThumbnailURL = *p.ThumbnailURL
	}
	if p.DailyPrice != nil {
		c.DailyPrice = *p.DailyPrice
	}
	if p.MonthlyPrice != nil {
		c.MonthlyPrice = *p.MonthlyPrice
	}
	if p.GearType != nil {
		c.GearType = *p.GearType
	}
	if p.Gas != nil {
		c.Gas = *p.Gas
	}
	return c
}
