package listings

import (
	"encoding/json"
	"errors"
	"fmt"

	lesvc "energy-trading-backend/internal/application/listingevents"
	tradesvc "energy-trading-backend/internal/application/trading"
	"energy-trading-backend/internal/domain"
	"energy-trading-backend/internal/pkg/response"
	"energy-trading-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *tradesvc.Service
	Events  *lesvc.Service
}

// POST /api/listings — 201 with { success, message, data }
func (h *Handlers) CreateListing(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return response.Error(c, "Invalid request body", 400)
	}

	required := []string{"seller", "amount", "price_per_kwh", "energy_source", "location", "production_date"}
	for _, f := range required {
		if body[f] == nil || body[f] == "" {
			return response.Error(c, fmt.Sprintf("Missing required field: %s", f), 400)
		}
	}
	seller := asString(body["seller"])
	if !validation.IsValidAddress(seller) {
		return response.Error(c, "Invalid seller address format", 400)
	}
	amount := asFloat(body["amount"])
	if !validation.IsPositiveAmount(amount) {
		return response.Error(c, "amount must be a positive number", 400)
	}
	price, ok := validation.ParsePrice(asString(body["price_per_kwh"]))
	if !ok {
		return response.Error(c, "price_per_kwh must be a positive decimal", 400)
	}
	var certURI *string
	if s := asString(body["certificate_uri"]); s != "" {
		certURI = &s
	}

	listing, err := h.Service.CreateListing(c.Context(), tradesvc.CreateListingInput{
		Seller:         seller,
		Amount:         amount,
		PricePerKwh:    price,
		EnergySource:   asString(body["energy_source"]),
		Location:       asString(body["location"]),
		ProductionDate: asString(body["production_date"]),
		CertificateURI: certURI,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return response.SuccessCreated(c, "Listing created successfully", listing)
}

// GET /api/listings — optional ?status=active filter
func (h *Handlers) GetAllListings(c *fiber.Ctx) error {
	var (
		listings []domain.Listing
		err      error
	)
	if c.Query("status") == domain.ListingStatusActive {
		listings, err = h.Service.GetActiveListings(c.Context())
	} else {
		listings, err = h.Service.GetAllListings(c.Context())
	}
	if err != nil {
		return response.Error(c, "Internal Server Error", 500)
	}
	return response.Success(c, "Listings fetched successfully", listings)
}

// GET /api/listings/:listing_id
func (h *Handlers) GetListingByID(c *fiber.Ctx) error {
	listingID, err := parseListingID(c)
	if err != nil {
		return response.Error(c, err.Error(), 400)
	}
	listing, err := h.Service.GetListingByID(c.Context(), listingID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return response.Success(c, "Listing fetched successfully", listing)
}

// GET /api/sellers/:address/listings
func (h *Handlers) GetSellerListings(c *fiber.Ctx) error {
	address := c.Params("address")
	if !validation.IsValidAddress(address) {
		return response.Error(c, "Invalid address format", 400)
	}
	listings, err := h.Service.GetSellerListings(c.Context(), address)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500)
	}
	return response.Success(c, "Seller listings fetched successfully", listings)
}

// POST /api/listings/:listing_id/cancel — body { seller }
func (h *Handlers) CancelListing(c *fiber.Ctx) error {
	listingID, err := parseListingID(c)
	if err != nil {
		return response.Error(c, err.Error(), 400)
	}
	var body struct {
		Seller string `json:"seller"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return response.Error(c, "Invalid request body", 400)
	}
	if !validation.IsValidAddress(body.Seller) {
		return response.Error(c, "Invalid seller address format", 400)
	}

	listing, err := h.Service.CancelListing(c.Context(), listingID, body.Seller)
	if err != nil {
		return respondServiceError(c, err)
	}
	return response.Success(c, "Listing cancelled successfully", listing)
}

// GET /api/listings/:listing_id/events
func (h *Handlers) GetListingEvents(c *fiber.Ctx) error {
	listingID, err := parseListingID(c)
	if err != nil {
		return response.Error(c, err.Error(), 400)
	}
	events, err := h.Events.GetListingEvents(c.Context(), listingID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return response.Success(c, "Listing events fetched successfully", events)
}

func parseListingID(c *fiber.Ctx) (uuid.UUID, error) {
	idStr := c.Params("listing_id")
	if idStr == "" {
		return uuid.Nil, errors.New("listing_id is required")
	}
	listingID, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, errors.New("Invalid listing_id format")
	}
	return listingID, nil
}

func respondServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrListingNotFound):
		return response.Error(c, err.Error(), 404)
	case errors.Is(err, domain.ErrSellerNotRegistered), errors.Is(err, domain.ErrNotListingSeller):
		return response.Error(c, err.Error(), 403)
	case errors.Is(err, domain.ErrInsufficientEnergy), errors.Is(err, domain.ErrListingNotActive):
		return response.Error(c, err.Error(), 409)
	case errors.Is(err, tradesvc.ErrInvalidAmount), errors.Is(err, tradesvc.ErrInvalidPrice):
		return response.Error(c, err.Error(), 400)
	default:
		return response.Error(c, "Internal Server Error", 500)
	}
}

func asString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	if v != nil {
		return fmt.Sprintf("%v", v)
	}
	return ""
}

func asFloat(v interface{}) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case int:
		return float64(x)
	}
	return 0
}
