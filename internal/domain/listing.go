package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Listing status values. Transitions: active -> sold (availability hits zero),
// active -> cancelled (seller cancel). Sold and cancelled are terminal.
const (
	ListingStatusActive    = "active"
	ListingStatusSold      = "sold"
	ListingStatusCancelled = "cancelled"
)

// Listing is an offer to sell a fixed quantity of energy at a fixed unit price.
// Seller, Amount and PricePerKwh are immutable after creation; AvailableAmount
// only ever decreases and stays within [0, Amount].
type Listing struct {
	ListingID       uuid.UUID       `gorm:"column:listing_id;type:uuid;primaryKey" json:"listing_id"`
	Seller          string          `gorm:"column:seller;type:varchar(64);not null;index" json:"seller"`
	IPAssetID       string          `gorm:"column:ip_asset_id;type:varchar(64)" json:"ip_asset_id"`
	Amount          float64         `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	AvailableAmount float64         `gorm:"column:available_amount;type:decimal(18,2);not null" json:"available_amount"`
	PricePerKwh     decimal.Decimal `gorm:"column:price_per_kwh;type:decimal(30,18);not null" json:"price_per_kwh"`
	TotalValue      decimal.Decimal `gorm:"column:total_value;type:decimal(30,18);not null" json:"total_value"`
	EnergySource    string          `gorm:"column:energy_source;type:varchar(30);not null" json:"energy_source"`
	Location        string          `gorm:"column:location;not null" json:"location"`
	ProductionDate  string          `gorm:"column:production_date" json:"production_date"`
	CertificateURI  *string         `gorm:"column:certificate_uri" json:"certificate_uri,omitempty"`
	Status          string          `gorm:"column:status;type:varchar(20);not null;default:'active';index" json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (Listing) TableName() string {
	return "listings"
}

// BeforeCreate sets listing_id if not already set (DBs without default uuid).
func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ListingID == uuid.Nil {
		l.ListingID = uuid.New()
	}
	return nil
}
