package trading

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"energy-trading-backend/internal/application/sellers"
	"energy-trading-backend/internal/domain"
	"energy-trading-backend/internal/pkg/hexref"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Validation failures surfaced by the ledger (mapped to 400 by handlers).
var (
	ErrInvalidAmount = errors.New("amount must be a positive multiple of 0.01 kWh")
	ErrInvalidPrice  = errors.New("price_per_kwh must be a positive decimal")
)

// Energy trades on a 0.01 kWh grid. Keeping every listing and purchase
// amount on the grid makes the availability decrement exact, so the sum of
// purchases never drifts past the listed amount.
func amountOnGrid(a float64) bool {
	if !(a > 0) || math.IsInf(a, 1) {
		return false
	}
	scaled := a * 100
	return math.Abs(scaled-math.Round(scaled)) < 1e-9
}

// Service is the listing/purchase ledger. It owns the authoritative state of
// all listings and purchases; every check-then-mutate sequence runs inside a
// single DB transaction so availability never goes negative under concurrent
// purchases.
type Service struct {
	DB      *gorm.DB
	Sellers *sellers.Service
}

type CreateListingInput struct {
	Seller         string
	Amount         float64
	PricePerKwh    decimal.Decimal
	EnergySource   string
	Location       string
	ProductionDate string
	CertificateURI *string
}

// CreateListing inserts a new active listing for a registered seller.
// TotalValue is computed once at creation, for display only.
func (s *Service) CreateListing(ctx context.Context, in CreateListingInput) (*domain.Listing, error) {
	if !amountOnGrid(in.Amount) {
		return nil, ErrInvalidAmount
	}
	if !in.PricePerKwh.IsPositive() {
		return nil, ErrInvalidPrice
	}

	seller, err := s.Sellers.GetSellerByAddress(ctx, in.Seller)
	if err != nil {
		return nil, err
	}
	if seller == nil {
		return nil, domain.ErrSellerNotRegistered
	}

	listing := &domain.Listing{
		Seller:          seller.Address,
		IPAssetID:       seller.IPAssetID,
		Amount:          in.Amount,
		AvailableAmount: in.Amount,
		PricePerKwh:     in.PricePerKwh,
		TotalValue:      in.PricePerKwh.Mul(decimal.NewFromFloat(in.Amount)),
		EnergySource:    in.EnergySource,
		Location:        in.Location,
		ProductionDate:  in.ProductionDate,
		CertificateURI:  in.CertificateURI,
		Status:          domain.ListingStatusActive,
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(listing).Error; err != nil {
			return err
		}
		return appendEvent(tx, listing.ListingID, domain.ListingEventCreated, listing.Seller, map[string]interface{}{
			"amount":        listing.Amount,
			"price_per_kwh": listing.PricePerKwh,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}
	return listing, nil
}

// PurchaseEnergy buys amount kWh from a listing. The availability check, the
// decrement, the sold transition and the purchase record are one transaction;
// on any failure the listing is left unchanged.
func (s *Service) PurchaseEnergy(ctx context.Context, listingID uuid.UUID, amount float64, buyer string) (*domain.Purchase, error) {
	if !amountOnGrid(amount) {
		return nil, ErrInvalidAmount
	}

	var purchase *domain.Purchase
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing domain.Listing
		if err := tx.Where("listing_id = ?", listingID).First(&listing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return domain.ErrListingNotFound
			}
			return err
		}

		if listing.Status == domain.ListingStatusCancelled {
			return domain.ErrListingNotActive
		}
		if listing.AvailableAmount < amount {
			return domain.ErrInsufficientEnergy
		}

		// Both operands sit on the 0.01 grid, so snapping the float
		// difference back to 2 decimals is the exact decrement.
		listing.AvailableAmount = math.Round((listing.AvailableAmount-amount)*100) / 100
		if listing.AvailableAmount == 0 {
			listing.Status = domain.ListingStatusSold
		}
		if err := tx.Save(&listing).Error; err != nil {
			return err
		}

		purchase = &domain.Purchase{
			ListingID:    listing.ListingID,
			Buyer:        buyer,
			Seller:       listing.Seller,
			EnergyAmount: amount,
			PricePerKwh:  listing.PricePerKwh,
			TotalPrice:   listing.PricePerKwh.Mul(decimal.NewFromFloat(amount)),
			TxHash:       hexref.NewTxHash(),
		}
		if err := tx.Create(purchase).Error; err != nil {
			return err
		}

		if err := appendEvent(tx, listing.ListingID, domain.ListingEventPurchased, buyer, map[string]interface{}{
			"energy_amount":    amount,
			"total_price":      purchase.TotalPrice,
			"available_amount": listing.AvailableAmount,
		}); err != nil {
			return err
		}
		if listing.Status == domain.ListingStatusSold {
			return appendEvent(tx, listing.ListingID, domain.ListingEventSold, buyer, map[string]interface{}{
				"amount": listing.Amount,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return purchase, nil
}

// CancelListing withdraws the remaining availability of an active listing.
// Only the owning seller may cancel; completed purchases stand. Cancelled is
// terminal.
func (s *Service) CancelListing(ctx context.Context, listingID uuid.UUID, seller string) (*domain.Listing, error) {
	var cancelled *domain.Listing
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing domain.Listing
		if err := tx.Where("listing_id = ?", listingID).First(&listing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return domain.ErrListingNotFound
			}
			return err
		}

		if listing.Seller != seller {
			return domain.ErrNotListingSeller
		}
		if listing.Status != domain.ListingStatusActive {
			return domain.ErrListingNotActive
		}

		listing.Status = domain.ListingStatusCancelled
		if err := tx.Save(&listing).Error; err != nil {
			return err
		}
		cancelled = &listing
		return appendEvent(tx, listing.ListingID, domain.ListingEventCancelled, seller, map[string]interface{}{
			"remaining_amount": listing.AvailableAmount,
		})
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

func (s *Service) GetAllListings(ctx context.Context) ([]domain.Listing, error) {
	var listings []domain.Listing
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&listings).Error; err != nil {
		return nil, fmt.Errorf("fetch listings: %w", err)
	}
	return listings, nil
}

func (s *Service) GetActiveListings(ctx context.Context) ([]domain.Listing, error) {
	var listings []domain.Listing
	if err := s.DB.WithContext(ctx).Where("status = ?", domain.ListingStatusActive).Order("created_at DESC").Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

func (s *Service) GetListingByID(ctx context.Context, listingID uuid.UUID) (*domain.Listing, error) {
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).First(&listing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrListingNotFound
		}
		return nil, err
	}
	return &listing, nil
}

func (s *Service) GetSellerListings(ctx context.Context, seller string) ([]domain.Listing, error) {
	var listings []domain.Listing
	if err := s.DB.WithContext(ctx).Where("seller = ?", seller).Order("created_at DESC").Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

// GetPurchaseHistory returns purchases where the address is buyer or seller.
func (s *Service) GetPurchaseHistory(ctx context.Context, address string) ([]domain.Purchase, error) {
	var purchases []domain.Purchase
	if err := s.DB.WithContext(ctx).Where("buyer = ? OR seller = ?", address, address).Order("created_at DESC").Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// MarketStatistics is a derived aggregate, recomputed on every call.
type MarketStatistics struct {
	TotalListings        int     `json:"total_listings"`
	ActiveListings       int     `json:"active_listings"`
	TotalEnergyAvailable float64 `json:"total_energy_available"`
	TotalEnergyTraded    float64 `json:"total_energy_traded"`
	TotalTransactions    int     `json:"total_transactions"`
	AveragePrice         string  `json:"average_price"`
}

func (s *Service) GetMarketStatistics(ctx context.Context) (*MarketStatistics, error) {
	var listings []domain.Listing
	if err := s.DB.WithContext(ctx).Find(&listings).Error; err != nil {
		return nil, err
	}
	var purchases []domain.Purchase
	if err := s.DB.WithContext(ctx).Find(&purchases).Error; err != nil {
		return nil, err
	}

	stats := &MarketStatistics{
		TotalListings:     len(listings),
		TotalTransactions: len(purchases),
		AveragePrice:      "0",
	}

	priceSum := decimal.Zero
	for _, l := range listings {
		if l.Status != domain.ListingStatusActive {
			continue
		}
		stats.ActiveListings++
		stats.TotalEnergyAvailable += l.AvailableAmount
		priceSum = priceSum.Add(l.PricePerKwh)
	}
	for _, p := range purchases {
		stats.TotalEnergyTraded += p.EnergyAmount
	}
	if stats.ActiveListings > 0 {
		stats.AveragePrice = priceSum.Div(decimal.NewFromInt(int64(stats.ActiveListings))).StringFixed(6)
	}
	return stats, nil
}

func appendEvent(tx *gorm.DB, listingID uuid.UUID, eventType, actor string, data map[string]interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return tx.Create(&domain.ListingEvent{
		ListingID: listingID,
		EventType: eventType,
		Actor:     actor,
		EventData: datatypes.JSON(payload),
	}).Error
}
