package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Listing event types, one per listing state transition plus PURCHASED per buy.
const (
	ListingEventCreated   = "CREATED"
	ListingEventPurchased = "PURCHASED"
	ListingEventSold      = "SOLD"
	ListingEventCancelled = "CANCELLED"
)

// ListingEvent is an audit record of a listing transition, written in the same
// transaction as the mutation it describes.
type ListingEvent struct {
	EventID   uuid.UUID      `gorm:"column:event_id;type:uuid;primaryKey" json:"event_id"`
	ListingID uuid.UUID      `gorm:"column:listing_id;type:uuid;not null;index" json:"listing_id"`
	EventType string         `gorm:"column:event_type;type:varchar(30);not null" json:"event_type"`
	Actor     string         `gorm:"column:actor;type:varchar(64)" json:"actor"`
	EventData datatypes.JSON `gorm:"column:event_data;type:json;not null" json:"event_data"`
	CreatedAt time.Time      `json:"created_at"`
}

func (ListingEvent) TableName() string {
	return "listing_events"
}

func (le *ListingEvent) BeforeCreate(tx *gorm.DB) error {
	if le.EventID == uuid.Nil {
		le.EventID = uuid.New()
	}
	return nil
}
