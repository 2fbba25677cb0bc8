package registrar

import (
	"context"

	"energy-trading-backend/internal/pkg/hexref"

	"github.com/rs/zerolog/log"
)

// Offline is the fallback registrar used when no registrar URL is configured.
// It fabricates placeholder asset ids so demo flows work without a chain.
type Offline struct{}

func (Offline) Register(ctx context.Context, meta SellerMetadata) (Registration, error) {
	reg := Registration{
		AssetID: hexref.NewAssetID(),
		TxHash:  hexref.NewTxHash(),
	}
	log.Warn().Str("seller", meta.Address).Str("ip_asset_id", reg.AssetID).
		Msg("no registrar configured, issued offline placeholder asset id")
	return reg, nil
}
