package registrar

import "context"

// SellerMetadata is the profile sent to the external asset registrar when a
// seller is registered as an IP asset.
type SellerMetadata struct {
	Address        string   `json:"address"`
	Name           string   `json:"name"`
	Location       string   `json:"location"`
	CapacityKw     float64  `json:"capacity_kw"`
	Certifications []string `json:"certifications,omitempty"`
	Description    string   `json:"description,omitempty"`
}

// Registration is the registrar's answer: the minted asset id and the
// transaction that registered it.
type Registration struct {
	AssetID string `json:"ip_asset_id"`
	TxHash  string `json:"tx_hash"`
}

// AssetRegistrar registers a seller profile with an external IP-asset service.
// Failures are surfaced to the caller and never retried here; a failed
// registration must leave the seller registry unchanged.
type AssetRegistrar interface {
	Register(ctx context.Context, meta SellerMetadata) (Registration, error)
}
