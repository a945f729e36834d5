package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ricardomonteiro/vitrine-backend/internal/config"
	"github.com/ricardomonteiro/vitrine-backend/internal/dto"
	"github.com/ricardomonteiro/vitrine-backend/internal/mailer"
	"github.com/ricardomonteiro/vitrine-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrAccessNotFound     = errors.New("access level does not exist")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("incorrect password")
	ErrInvalidResetToken  = errors.New("invalid or expired token")
	ErrMailDelivery       = errors.New("failed to send email")
)

type AuthService struct {
	db     *gorm.DB
	cfg    *config.Config
	mailer mailer.Mailer
}

func NewAuthService(db *gorm.DB, cfg *config.Config, mailer mailer.Mailer) *AuthService {
	return &AuthService{db: db, cfg: cfg, mailer: mailer}
}

func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.UserResponse, error) {
	if req.Name == "" || req.Email == "" || len(req.Password) < 8 {
		return nil, errors.New("name and email required, password must be at least 8 characters")
	}

	var access models.Access
	if err := s.db.Where("name = ?", req.AccessName).First(&access).Error; err != nil {
		return nil, ErrAccessNotFound
	}

	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&models.UserAccess{
			ID:       uuid.New(),
			UserID:   user.ID,
			AccessID: access.ID,
		}).Error
	}); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &dto.UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Roles: []string{access.Name},
	}, nil
}

// SignIn verifies the credentials and issues a signed token carrying the
// user id and role name claims. No refresh or revocation mechanism.
func (s *AuthService) SignIn(req *dto.SignInRequest) (string, error) {
	var user models.User
	err := s.db.Preload("Accesses.Access").Where("email = ?", req.Email).First(&user).Error
	if err != nil {
		return "", ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"roles": user.RoleNames(),
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.TokenExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// RequestPasswordReset issues a single-use 256-bit token with a 1-hour
// expiry and mails the reset link.
func (s *AuthService) RequestPasswordReset(email string) error {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return ErrUserNotFound
	}

	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return fmt.Errorf("failed to generate random bytes: %w", err)
	}
	token := hex.EncodeToString(rawBytes)

	record := models.PasswordResetToken{
		ID:        uuid.New(),
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	resetLink := fmt.Sprintf("%s/reset-password/%s", s.cfg.FrontendURL, token)
	if err := s.mailer.SendPasswordReset(user.Email, resetLink); err != nil {
		return ErrMailDelivery
	}
	return nil
}

// ResetPassword consumes the token: rehashes the password and deletes the
// token row.
func (s *AuthService) ResetPassword(req *dto.ResetPasswordRequest) error {
	var record models.PasswordResetToken
	if err := s.db.Where("token = ?", req.Token).First(&record).Error; err != nil {
		return ErrInvalidResetToken
	}

	if time.Now().After(record.ExpiresAt) {
		s.db.Delete(&record)
		return ErrInvalidResetToken
	}

	if len(req.NewPassword) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", record.UserID).
			Update("password", string(hash)).Error; err != nil {
			return err
		}
		return tx.Delete(&record).Error
	})
}
