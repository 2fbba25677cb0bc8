package sellers

import (
	"encoding/json"
	"errors"
	"fmt"

	sellersvc "energy-trading-backend/internal/application/sellers"
	"energy-trading-backend/internal/domain"
	"energy-trading-backend/internal/pkg/response"
	"energy-trading-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *sellersvc.Service
}

// POST /api/sellers/register
func (h *Handlers) Register(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return response.Error(c, "Invalid request body", 400)
	}

	for _, f := range []string{"address", "name", "location", "capacity"} {
		if body[f] == nil || body[f] == "" {
			return response.Error(c, fmt.Sprintf("Missing required field: %s", f), 400)
		}
	}
	address := asString(body["address"])
	if !validation.IsValidAddress(address) {
		return response.Error(c, "Invalid address format", 400)
	}
	capacity := asFloat(body["capacity"])
	if !validation.IsPositiveAmount(capacity) {
		return response.Error(c, "capacity must be a positive number", 400)
	}

	seller, err := h.Service.RegisterSeller(c.Context(), sellersvc.RegisterSellerInput{
		Address:        address,
		Name:           asString(body["name"]),
		Location:       asString(body["location"]),
		CapacityKw:     capacity,
		Certifications: asStringSlice(body["certifications"]),
		Description:    asString(body["description"]),
	})
	if err != nil {
		return response.Error(c, err.Error(), 500)
	}
	return response.SuccessCreated(c, "Seller registered successfully", seller)
}

// GET /api/sellers
func (h *Handlers) GetAll(c *fiber.Ctx) error {
	sellers, err := h.Service.GetAllSellers(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", 500)
	}
	return response.Success(c, "Sellers fetched successfully", sellers)
}

// GET /api/sellers/:address
func (h *Handlers) GetByAddress(c *fiber.Ctx) error {
	address := c.Params("address")
	if !validation.IsValidAddress(address) {
		return response.Error(c, "Invalid address format", 400)
	}
	seller, err := h.Service.GetSellerByAddress(c.Context(), address)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500)
	}
	if seller == nil {
		return response.Error(c, "Seller not found", 404)
	}
	return response.Success(c, "Seller fetched successfully", seller)
}

// PUT /api/sellers/:address
func (h *Handlers) Update(c *fiber.Ctx) error {
	address := c.Params("address")
	if !validation.IsValidAddress(address) {
		return response.Error(c, "Invalid address format", 400)
	}
	var body struct {
		Name     *string  `json:"name"`
		Location *string  `json:"location"`
		Capacity *float64 `json:"capacity"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return response.Error(c, "Invalid request body", 400)
	}
	if body.Capacity != nil && !validation.IsPositiveAmount(*body.Capacity) {
		return response.Error(c, "capacity must be a positive number", 400)
	}

	seller, err := h.Service.UpdateSeller(c.Context(), address, sellersvc.UpdateSellerInput{
		Name:       body.Name,
		Location:   body.Location,
		CapacityKw: body.Capacity,
	})
	if err != nil {
		if errors.Is(err, domain.ErrSellerNotFound) {
			return response.Error(c, err.Error(), 404)
		}
		return response.Error(c, "Internal Server Error", 500)
	}
	return response.Success(c, "Seller updated successfully", seller)
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

func asStringSlice(v interface{}) []string {
	arr, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		out = append(out, asString(e))
	}
	return out
}
