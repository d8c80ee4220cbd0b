package apartment

import (
	"time"
)

const ApartmentsTableName = "apartments"

// ApartmentModel is a row in the apartments table. Price, distances and url
// are nullable; ids are server-assigned and immutable.
type ApartmentModel struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	Price         *float64  `json:"price"`
	SquareFootage float64   `gorm:"column:square_footage" json:"square_footage"`
	Bedrooms      float64   `json:"bedrooms"`
	Bathrooms     float64   `json:"bathrooms"`
	Distance1     *float64  `json:"distance1"`
	Distance2     *float64  `json:"distance2"`
	URL           *string   `gorm:"column:url" json:"url"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"-"`
}

func (ApartmentModel) TableName() string {
	return ApartmentsTableName
}

// ListResponse is the GET /apartments payload. Field names are part of the
// wire contract.
type ListResponse struct {
	Rows  []ApartmentModel `json:"rows"`
	IsDev bool             `json:"isDev"`
}

// CreateResponse is the POST /apartments payload.
type CreateResponse struct {
	Success   bool           `json:"success"`
	Apartment ApartmentModel `json:"apartment"`
}

// CreateRequest is the validated input for POST /apartments. Pointer fields
// distinguish "missing" from zero values.
type CreateRequest struct {
	Name          *string  `json:"name"`
	Price         *float64 `json:"price"`
	SquareFootage *float64 `json:"square_footage"`
	Bedrooms      *float64 `json:"bedrooms"`
	Bathrooms     *float64 `json:"bathrooms"`
	Distance1     *float64 `json:"distance1"`
	Distance2     *float64 `json:"distance2"`
	URL           *string  `json:"url"`
}
