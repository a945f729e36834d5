package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ricardomonteiro/vitrine-backend/internal/models"
	"gorm.io/gorm"
)

var ErrAccessNameTaken = errors.New("access level already exists")

type AccessService struct {
	db *gorm.DB
}

func NewAccessService(db *gorm.DB) *AccessService {
	return &AccessService{db: db}
}

func (s *AccessService) Create(name string) (*models.Access, error) {
	if name == "" {
		return nil, errors.New("access name is required")
	}

	var existing models.Access
	if err := s.db.Where("name = ?", name).First(&existing).Error; err == nil {
		return nil, ErrAccessNameTaken
	}

	access := models.Access{ID: uuid.New(), Name: name}
	if err := s.db.Create(&access).Error; err != nil {
		return nil, fmt.Errorf("failed to create access: %w", err)
	}
	return &access, nil
}

func (s *AccessService) List() ([]models.Access, error) {
	var accesses []models.Access
	if err := s.db.Find(&accesses).Error; err != nil {
		return nil, fmt.Errorf("failed to list accesses: %w", err)
	}
	return accesses, nil
}
