package sellers

import (
	"context"
	"errors"
	"testing"

	"energy-trading-backend/internal/application/registrar"
	"energy-trading-backend/internal/domain"
	"energy-trading-backend/internal/infrastructure/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sellerAddr = "0x89205A3A3b2A69De6Dbf7f01ED13B2108B2c43e7"

type stubRegistrar struct {
	reg registrar.Registration
	err error
}

func (s stubRegistrar) Register(ctx context.Context, meta registrar.SellerMetadata) (registrar.Registration, error) {
	return s.reg, s.err
}

func setupSellersTest(t *testing.T, reg registrar.AssetRegistrar) *Service {
	db, err := database.Open("")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return &Service{DB: db, Registrar: reg}
}

func TestRegisterSeller_StoresRegistrarResult(t *testing.T) {
	svc := setupSellersTest(t, stubRegistrar{reg: registrar.Registration{
		AssetID: "0x1111111111111111111111111111111111111111",
		TxHash:  "0xfeed",
	}})

	seller, err := svc.RegisterSeller(context.Background(), RegisterSellerInput{
		Address:        sellerAddr,
		Name:           "Green Solar Home",
		Location:       "San Francisco, CA",
		CapacityKw:     20,
		Certifications: []string{"ISO 50001"},
		Description:    "Community solar energy provider",
	})
	require.NoError(t, err)
	assert.Equal(t, "0x1111111111111111111111111111111111111111", seller.IPAssetID)
	assert.Equal(t, "0xfeed", seller.RegistrationTx)
	assert.JSONEq(t, `["ISO 50001"]`, string(seller.Certifications))

	stored, err := svc.GetSellerByAddress(context.Background(), sellerAddr)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Green Solar Home", stored.Name)
}

func TestRegisterSeller_RegistrarFailureWritesNothing(t *testing.T) {
	svc := setupSellersTest(t, stubRegistrar{err: errors.New("insufficient funds")})

	_, err := svc.RegisterSeller(context.Background(), RegisterSellerInput{
		Address: sellerAddr, Name: "Green Solar Home", Location: "SF", CapacityKw: 20,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient funds")

	stored, err := svc.GetSellerByAddress(context.Background(), sellerAddr)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestRegisterSeller_LastWriteWins(t *testing.T) {
	svc := setupSellersTest(t, stubRegistrar{reg: registrar.Registration{AssetID: "0xaa"}})

	_, err := svc.RegisterSeller(context.Background(), RegisterSellerInput{
		Address: sellerAddr, Name: "First", Location: "SF", CapacityKw: 10,
	})
	require.NoError(t, err)
	_, err = svc.RegisterSeller(context.Background(), RegisterSellerInput{
		Address: sellerAddr, Name: "Second", Location: "LA", CapacityKw: 30,
	})
	require.NoError(t, err)

	stored, err := svc.GetSellerByAddress(context.Background(), sellerAddr)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Second", stored.Name)
	assert.Equal(t, "LA", stored.Location)
	assert.Equal(t, 30.0, stored.CapacityKw)

	all, err := svc.GetAllSellers(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGetSellerByAddress_AbsenceIsNotAnError(t *testing.T) {
	svc := setupSellersTest(t, stubRegistrar{})

	seller, err := svc.GetSellerByAddress(context.Background(), sellerAddr)
	require.NoError(t, err)
	assert.Nil(t, seller)
}

func TestUpdateSeller(t *testing.T) {
	svc := setupSellersTest(t, stubRegistrar{reg: registrar.Registration{AssetID: "0xaa"}})

	_, err := svc.UpdateSeller(context.Background(), sellerAddr, UpdateSellerInput{})
	assert.ErrorIs(t, err, domain.ErrSellerNotFound)

	_, err = svc.RegisterSeller(context.Background(), RegisterSellerInput{
		Address: sellerAddr, Name: "Green Solar Home", Location: "SF", CapacityKw: 20,
	})
	require.NoError(t, err)

	name := "Sunny Side"
	updated, err := svc.UpdateSeller(context.Background(), sellerAddr, UpdateSellerInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Sunny Side", updated.Name)
	assert.Equal(t, "SF", updated.Location)
	assert.Equal(t, "0xaa", updated.IPAssetID, "registrar is not re-invoked on update")
}
