package sellers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"energy-trading-backend/internal/application/registrar"
	sellersvc "energy-trading-backend/internal/application/sellers"
	"energy-trading-backend/internal/domain"
	"energy-trading-backend/internal/infrastructure/database"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sellerAddr = "0x89205A3A3b2A69De6Dbf7f01ED13B2108B2c43e7"

type stubRegistrar struct {
	err error
}

func (s stubRegistrar) Register(ctx context.Context, meta registrar.SellerMetadata) (registrar.Registration, error) {
	if s.err != nil {
		return registrar.Registration{}, s.err
	}
	return registrar.Registration{AssetID: "0x1111111111111111111111111111111111111111", TxHash: "0xfeed"}, nil
}

func setupSellersTest(t *testing.T, reg registrar.AssetRegistrar) *Handlers {
	db, err := database.Open("")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return &Handlers{Service: &sellersvc.Service{DB: db, Registrar: reg}}
}

func registerBody() map[string]interface{} {
	return map[string]interface{}{
		"address":        sellerAddr,
		"name":           "Green Solar Home",
		"location":       "San Francisco, CA",
		"capacity":       20,
		"certifications": []string{"ISO 50001"},
		"description":    "Community solar energy provider",
	}
}

func TestRegister_Success(t *testing.T) {
	h := setupSellersTest(t, stubRegistrar{})
	app := fiber.New()
	app.Post("/api/sellers/register", h.Register)

	body, _ := json.Marshal(registerBody())
	req := httptest.NewRequest("POST", "/api/sellers/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	var result struct {
		Success bool          `json:"success"`
		Data    domain.Seller `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.True(t, result.Success)
	assert.Equal(t, sellerAddr, result.Data.Address)
	assert.Equal(t, "0x1111111111111111111111111111111111111111", result.Data.IPAssetID)
}

func TestRegister_MissingField(t *testing.T) {
	h := setupSellersTest(t, stubRegistrar{})
	app := fiber.New()
	app.Post("/api/sellers/register", h.Register)

	payload := registerBody()
	delete(payload, "name")
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/api/sellers/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestRegister_InvalidAddress(t *testing.T) {
	h := setupSellersTest(t, stubRegistrar{})
	app := fiber.New()
	app.Post("/api/sellers/register", h.Register)

	payload := registerBody()
	payload["address"] = "0xnothex"
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/api/sellers/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestRegister_RegistrarFailure(t *testing.T) {
	h := setupSellersTest(t, stubRegistrar{err: errors.New("insufficient funds")})
	app := fiber.New()
	app.Post("/api/sellers/register", h.Register)

	body, _ := json.Marshal(registerBody())
	req := httptest.NewRequest("POST", "/api/sellers/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
}

func TestGetByAddress_NotFound(t *testing.T) {
	h := setupSellersTest(t, stubRegistrar{})
	app := fiber.New()
	app.Get("/api/sellers/:address", h.GetByAddress)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/sellers/"+sellerAddr, nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestUpdate_NotFound(t *testing.T) {
	h := setupSellersTest(t, stubRegistrar{})
	app := fiber.New()
	app.Put("/api/sellers/:address", h.Update)

	body, _ := json.Marshal(map[string]string{"name": "Sunny Side"})
	req := httptest.NewRequest("PUT", "/api/sellers/"+sellerAddr, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}
