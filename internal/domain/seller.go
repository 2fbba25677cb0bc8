package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Seller is a registered energy producer, keyed by wallet address.
// Re-registering the same address overwrites the profile (last write wins).
// IPAssetID and RegistrationTx come from the external asset registrar.
type Seller struct {
	Address        string         `gorm:"column:address;type:varchar(64);primaryKey" json:"address"`
	IPAssetID      string         `gorm:"column:ip_asset_id;type:varchar(64);not null" json:"ip_asset_id"`
	RegistrationTx string         `gorm:"column:registration_tx;type:varchar(66)" json:"registration_tx"`
	Name           string         `gorm:"column:name;not null" json:"name"`
	Location       string         `gorm:"column:location;not null" json:"location"`
	CapacityKw     float64        `gorm:"column:capacity_kw;type:decimal(18,2);not null" json:"capacity_kw"`
	Certifications datatypes.JSON `gorm:"column:certifications;type:json" json:"certifications"`
	Description    string         `gorm:"column:description" json:"description"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (Seller) TableName() string {
	return "sellers"
}
