package app

import (
	"context"

	"energy-trading-backend/internal/application/sellers"
	"energy-trading-backend/internal/application/trading"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// SeedDemoData registers the demo seller and three solar listings. Failures
// are logged and returned but treated as non-fatal by callers.
func SeedDemoData(ctx context.Context, sellerService *sellers.Service, tradingService *trading.Service) error {
	const demoSeller = "0x89205A3A3b2A69De6Dbf7f01ED13B2108B2c43e7"

	seller, err := sellerService.RegisterSeller(ctx, sellers.RegisterSellerInput{
		Address:        demoSeller,
		Name:           "Green Solar Home",
		Location:       "San Francisco, CA",
		CapacityKw:     20,
		Certifications: []string{"ISO 50001"},
		Description:    "Community solar energy provider",
	})
	if err != nil {
		log.Warn().Err(err).Msg("could not seed demo seller")
		return err
	}

	demoListings := []trading.CreateListingInput{
		{
			Seller:         seller.Address,
			Amount:         50,
			PricePerKwh:    decimal.RequireFromString("0.00001"),
			EnergySource:   "solar",
			Location:       "San Francisco, CA",
			ProductionDate: "2025-12-10",
			CertificateURI: strPtr("ipfs://certificate-1"),
		},
		{
			Seller:         seller.Address,
			Amount:         75,
			PricePerKwh:    decimal.RequireFromString("0.00002"),
			EnergySource:   "solar",
			Location:       "Los Angeles, CA",
			ProductionDate: "2025-12-11",
			CertificateURI: strPtr("ipfs://certificate-2"),
		},
		{
			Seller:         seller.Address,
			Amount:         100,
			PricePerKwh:    decimal.RequireFromString("0.000015"),
			EnergySource:   "solar",
			Location:       "Austin, TX",
			ProductionDate: "2025-12-09",
			CertificateURI: strPtr("ipfs://certificate-3"),
		},
	}
	for _, in := range demoListings {
		if _, err := tradingService.CreateListing(ctx, in); err != nil {
			log.Warn().Err(err).Msg("could not seed demo listing")
			return err
		}
	}

	log.Info().Int("listings", len(demoListings)).Msg("demo data seeded")
	return nil
}

func strPtr(s string) *string {
	return &s
}
