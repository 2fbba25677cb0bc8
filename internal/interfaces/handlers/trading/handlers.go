package trading

import (
	"encoding/json"
	"errors"

	tradesvc "energy-trading-backend/internal/application/trading"
	"energy-trading-backend/internal/domain"
	"energy-trading-backend/internal/pkg/response"
	"energy-trading-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *tradesvc.Service
}

type purchaseRequest struct {
	ListingID    string  `json:"listing_id"`
	Amount       float64 `json:"amount"`
	BuyerAddress string  `json:"buyer_address"`
}

// POST /api/purchase — body { listing_id, amount, buyer_address }
func (h *Handlers) Purchase(c *fiber.Ctx) error {
	var body purchaseRequest
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return response.Error(c, "Invalid request body", 400)
	}
	listingID, err := uuid.Parse(body.ListingID)
	if err != nil {
		return response.Error(c, "Invalid listing_id format", 400)
	}
	if !validation.IsPositiveAmount(body.Amount) {
		return response.Error(c, "amount must be a positive number", 400)
	}
	if !validation.IsValidAddress(body.BuyerAddress) {
		return response.Error(c, "Invalid buyer_address format", 400)
	}

	purchase, err := h.Service.PurchaseEnergy(c.Context(), listingID, body.Amount, body.BuyerAddress)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrListingNotFound):
			return response.Error(c, err.Error(), 404)
		case errors.Is(err, domain.ErrInsufficientEnergy), errors.Is(err, domain.ErrListingNotActive):
			return response.Error(c, err.Error(), 409)
		case errors.Is(err, tradesvc.ErrInvalidAmount):
			return response.Error(c, err.Error(), 400)
		default:
			return response.Error(c, "Internal Server Error", 500)
		}
	}
	return response.SuccessCreated(c, "Purchase completed successfully", purchase)
}

// GET /api/purchases/:address
func (h *Handlers) GetPurchaseHistory(c *fiber.Ctx) error {
	address := c.Params("address")
	if !validation.IsValidAddress(address) {
		return response.Error(c, "Invalid address format", 400)
	}
	purchases, err := h.Service.GetPurchaseHistory(c.Context(), address)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500)
	}
	return response.Success(c, "Purchase history fetched successfully", purchases)
}

// GET /api/stats/market
func (h *Handlers) GetMarketStatistics(c *fiber.Ctx) error {
	stats, err := h.Service.GetMarketStatistics(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", 500)
	}
	return response.Success(c, "Market statistics fetched successfully", stats)
}
