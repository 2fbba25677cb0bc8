package registrar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

const registerPath = "/api/v1/ip-assets/register"

// Client calls a Story-style IP-asset registration HTTP API.
type Client struct {
	baseURL string
	apiKey  string
	http    *resty.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    resty.New(),
	}
}

type registerResponse struct {
	IPAssetID string `json:"ip_asset_id"`
	TxHash    string `json:"tx_hash"`
}

// Register mints the seller as an IP asset. Non-2xx answers are returned as
// errors with the upstream status; nothing is retried.
func (c *Client) Register(ctx context.Context, meta SellerMetadata) (Registration, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Api-Key", c.apiKey).
		SetBody(meta).
		Post(c.baseURL + registerPath)
	if err != nil {
		return Registration{}, fmt.Errorf("registrar request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusCreated {
		return Registration{}, fmt.Errorf("registrar request status: %d", resp.StatusCode())
	}

	var out registerResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return Registration{}, fmt.Errorf("registrar response: %w", err)
	}
	return Registration{AssetID: out.IPAssetID, TxHash: out.TxHash}, nil
}
