package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ricardomonteiro/vitrine-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrStoreNotFound = errors.New("store not found")
	ErrStoreExists   = errors.New("user already owns a store")
	ErrNotStoreOwner = errors.New("store does not belong to this user")
)

type StoreService struct {
	db *gorm.DB
}

func NewStoreService(db *gorm.DB) *StoreService {
	return &StoreService{db: db}
}

func (s *StoreService) Create(userID uuid.UUID, name string) (*models.Store, error) {
	if name == "" {
		return nil, errors.New("store name is required")
	}

	var existing models.Store
	if err := s.db.Where("user_id = ?", userID).First(&existing).Error; err == nil {
		return nil, ErrStoreExists
	}

	store := models.Store{ID: uuid.New(), Name: name, UserID: userID}
	if err := s.db.Create(&store).Error; err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}
	return &store, nil
}

func (s *StoreService) List() ([]models.Store, error) {
	var stores []models.Store
	if err := s.db.Find(&stores).Error; err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	return stores, nil
}

func (s *StoreService) Get(id uuid.UUID) (*models.Store, error) {
	var store models.Store
	if err := s.db.Preload("Products.Images").First(&store, "id = ?", id).Error; err != nil {
		return nil, ErrStoreNotFound
	}
	return &store, nil
}

func (s *StoreService) Update(id, userID uuid.UUID, name string) (*models.Store, error) {
	var store models.Store
	if err := s.db.First(&store, "id = ?", id).Error; err != nil {
		return nil, ErrStoreNotFound
	}

	if store.UserID != userID {
		return nil, ErrNotStoreOwner
	}

	if err := s.db.Model(&store).Update("name", name).Error; err != nil {
		return nil, fmt.Errorf("failed to update store: %w", err)
	}
	return &store, nil
}

func (s *StoreService) Delete(id, userID uuid.UUID) error {
	var store models.Store
	if err := s.db.First(&store, "id = ?", id).Error; err != nil {
		return ErrStoreNotFound
	}

	if store.UserID != userID {
		return ErrNotStoreOwner
	}

	return s.db.Delete(&store).Error
}
