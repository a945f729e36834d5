package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ricardomonteiro/vitrine-backend/internal/dto"
	"github.com/ricardomonteiro/vitrine-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrAddressNotFound = errors.New("address not found")
	ErrAddressExists   = errors.New("user already has an address")
)

type AddressService struct {
	db *gorm.DB
}

func NewAddressService(db *gorm.DB) *AddressService {
	return &AddressService{db: db}
}

// Create enforces the one-address-per-user invariant with a pre-insert
// check on top of the unique index.
func (s *AddressService) Create(userID uuid.UUID, req *dto.AddressRequest) (*models.Address, error) {
	if req.Street == "" || req.City == "" || req.Zip == "" {
		return nil, errors.New("street, city and zip are required")
	}

	var existing models.Address
	if err := s.db.Where("user_id = ?", userID).First(&existing).Error; err == nil {
		return nil, ErrAddressExists
	}

	address := models.Address{
		ID:           uuid.New(),
		Street:       req.Street,
		City:         req.City,
		State:        req.State,
		Country:      req.Country,
		Zip:          req.Zip,
		HouseNumber:  req.HouseNumber,
		Complement:   req.Complement,
		Neighborhood: req.Neighborhood,
		UserID:       userID,
	}
	if err := s.db.Create(&address).Error; err != nil {
		return nil, fmt.Errorf("failed to create address: %w", err)
	}
	return &address, nil
}

func (s *AddressService) GetByUser(userID uuid.UUID) (*models.Address, error) {
	var address models.Address
	if err := s.db.Where("user_id = ?", userID).First(&address).Error; err != nil {
		return nil, ErrAddressNotFound
	}
	return &address, nil
}

func (s *AddressService) Update(userID uuid.UUID, req *dto.AddressRequest) (*models.Address, error) {
	var address models.Address
	if err := s.db.Where("user_id = ?", userID).First(&address).Error; err != nil {
		return nil, ErrAddressNotFound
	}

	err := s.db.Model(&address).Updates(map[string]interface{}{
		"street":       req.Street,
		"city":         req.City,
		"state":        req.State,
		"country":      req.Country,
		"zip":          req.Zip,
		"house_number": req.HouseNumber,
		"complement":   req.Complement,
		"neighborhood": req.Neighborhood,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update address: %w", err)
	}
	return &address, nil
}

func (s *AddressService) Delete(userID uuid.UUID) error {
	var address models.Address
	if err := s.db.Where("user_id = ?", userID).First(&address).Error; err != nil {
		return ErrAddressNotFound
	}
	return s.db.Delete(&address).Error
}
