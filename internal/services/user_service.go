package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/ricardomonteiro/vitrine-backend/internal/dto"
	"github.com/ricardomonteiro/vitrine-backend/internal/models"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) List() ([]dto.UserResponse, error) {
	var users []models.User
	if err := s.db.Preload("Accesses.Access").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out, nil
}

func (s *UserService) Get(id uuid.UUID) (*dto.UserResponse, error) {
	var user models.User
	err := s.db.Preload("Accesses.Access").Preload("Store").First(&user, "id = ?", id).Error
	if err != nil {
		return nil, ErrUserNotFound
	}

	resp := toUserResponse(&user)
	return &resp, nil
}

func (s *UserService) Delete(id uuid.UUID) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return ErrUserNotFound
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		tx.Where("user_id = ?", id).Delete(&models.UserAccess{})
		tx.Where("user_id = ?", id).Delete(&models.Address{})
		tx.Where("user_id = ?", id).Delete(&models.PasswordResetToken{})
		return tx.Delete(&user).Error
	})
}

func toUserResponse(user *models.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Roles: user.RoleNames(),
	}
	if user.Store != nil {
		resp.Store = &dto.StoreSummary{ID: user.Store.ID, Name: user.Store.Name}
	}
	return resp
}
