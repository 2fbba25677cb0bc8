package registrar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Register(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, registerPath, r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))

		var meta SellerMetadata
		require.NoError(t, json.NewDecoder(r.Body).Decode(&meta))
		assert.Equal(t, "Green Solar Home", meta.Name)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"ip_asset_id": "0x2222222222222222222222222222222222222222",
			"tx_hash":     "0xbeef",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret")
	reg, err := client.Register(context.Background(), SellerMetadata{
		Address: "0x89205A3A3b2A69De6Dbf7f01ED13B2108B2c43e7",
		Name:    "Green Solar Home",
	})
	require.NoError(t, err)
	assert.Equal(t, "0x2222222222222222222222222222222222222222", reg.AssetID)
	assert.Equal(t, "0xbeef", reg.TxHash)
}

func TestClient_Register_UpstreamErrorSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	_, err := client.Register(context.Background(), SellerMetadata{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestOffline_IssuesPlaceholderRefs(t *testing.T) {
	reg, err := Offline{}.Register(context.Background(), SellerMetadata{Address: "0xabc"})
	require.NoError(t, err)
	assert.Len(t, reg.AssetID, 42)
	assert.Equal(t, "0x", reg.AssetID[:2])
	assert.Len(t, reg.TxHash, 66)

	again, err := Offline{}.Register(context.Background(), SellerMetadata{Address: "0xabc"})
	require.NoError(t, err)
	assert.NotEqual(t, reg.AssetID, again.AssetID)
}
