package sellers

import (
	"context"
	"encoding/json"
	"fmt"

	"energy-trading-backend/internal/application/registrar"
	"energy-trading-backend/internal/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service is the seller registry: wallet address -> registered profile.
type Service struct {
	DB        *gorm.DB
	Registrar registrar.AssetRegistrar
}

type RegisterSellerInput struct {
	Address        string
	Name           string
	Location       string
	CapacityKw     float64
	Certifications []string
	Description    string
}

// RegisterSeller registers the profile with the external asset registrar and
// upserts it into the registry. Re-registering an address overwrites the
// previous profile (last write wins). A registrar failure is surfaced and
// writes nothing.
func (s *Service) RegisterSeller(ctx context.Context, in RegisterSellerInput) (*domain.Seller, error) {
	reg, err := s.Registrar.Register(ctx, registrar.SellerMetadata{
		Address:        in.Address,
		Name:           in.Name,
		Location:       in.Location,
		CapacityKw:     in.CapacityKw,
		Certifications: in.Certifications,
		Description:    in.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("register seller: %w", err)
	}

	certs := in.Certifications
	if certs == nil {
		certs = []string{}
	}
	certsJSON, err := json.Marshal(certs)
	if err != nil {
		return nil, err
	}

	seller := &domain.Seller{
		Address:        in.Address,
		IPAssetID:      reg.AssetID,
		RegistrationTx: reg.TxHash,
		Name:           in.Name,
		Location:       in.Location,
		CapacityKw:     in.CapacityKw,
		Certifications: datatypes.JSON(certsJSON),
		Description:    in.Description,
	}
	if err := s.DB.WithContext(ctx).Save(seller).Error; err != nil {
		return nil, fmt.Errorf("store seller: %w", err)
	}
	return seller, nil
}

// GetSellerByAddress returns (nil, nil) for an unregistered address; absence
// is not an error. Callers gate on the nil before proceeding.
func (s *Service) GetSellerByAddress(ctx context.Context, address string) (*domain.Seller, error) {
	var seller domain.Seller
	err := s.DB.WithContext(ctx).Where("address = ?", address).First(&seller).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &seller, nil
}

func (s *Service) GetAllSellers(ctx context.Context) ([]domain.Seller, error) {
	var out []domain.Seller
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

type UpdateSellerInput struct {
	Name       *string
	Location   *string
	CapacityKw *float64
}

// UpdateSeller patches profile fields in place. The registrar is not
// re-invoked; the asset id from the original registration stands.
func (s *Service) UpdateSeller(ctx context.Context, address string, in UpdateSellerInput) (*domain.Seller, error) {
	var seller domain.Seller
	err := s.DB.WithContext(ctx).Where("address = ?", address).First(&seller).Error
	if err == gorm.ErrRecordNotFound {
		return nil, domain.ErrSellerNotFound
	}
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		seller.Name = *in.Name
	}
	if in.Location != nil {
		seller.Location = *in.Location
	}
	if in.CapacityKw != nil {
		seller.CapacityKw = *in.CapacityKw
	}
	if err := s.DB.WithContext(ctx).Save(&seller).Error; err != nil {
		return nil, err
	}
	return &seller, nil
}
