package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Purchase is an immutable record of a completed buy against a listing.
// TotalPrice is fixed at purchase time (EnergyAmount x PricePerKwh); TxHash is
// an out-of-band settlement reference, not a real chain transaction.
type Purchase struct {
	PurchaseID   uuid.UUID       `gorm:"column:purchase_id;type:uuid;primaryKey" json:"purchase_id"`
	ListingID    uuid.UUID       `gorm:"column:listing_id;type:uuid;not null;index" json:"listing_id"`
	Buyer        string          `gorm:"column:buyer;type:varchar(64);not null;index" json:"buyer"`
	Seller       string          `gorm:"column:seller;type:varchar(64);not null;index" json:"seller"`
	EnergyAmount float64         `gorm:"column:energy_amount;type:decimal(18,2);not null" json:"energy_amount"`
	PricePerKwh  decimal.Decimal `gorm:"column:price_per_kwh;type:decimal(30,18);not null" json:"price_per_kwh"`
	TotalPrice   decimal.Decimal `gorm:"column:total_price;type:decimal(30,18);not null" json:"total_price"`
	TxHash       string          `gorm:"column:tx_hash;type:varchar(66);not null" json:"tx_hash"`
	CreatedAt    time.Time       `json:"timestamp"`
}

func (Purchase) TableName() string {
	return "purchases"
}

func (p *Purchase) BeforeCreate(tx *gorm.DB) error {
	if p.PurchaseID == uuid.Nil {
		p.PurchaseID = uuid.New()
	}
	return nil
}
