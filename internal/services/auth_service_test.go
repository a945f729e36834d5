package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ricardomonteiro/vitrine-backend/internal/dto"
	"github.com/ricardomonteiro/vitrine-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig(), &fakeMailer{})

	t.Run("creates user with role", func(t *testing.T) {
		resp, err := svc.Register(&dto.RegisterRequest{
			Name: "Ana", Email: "ana@example.com", Password: "supersecret", AccessName: "buyer",
		})
		if err != nil {
			t.Fatalf("register: %v", err)
		}
		if resp.Email != "ana@example.com" {
			t.Errorf("email = %q", resp.Email)
		}
		if len(resp.Roles) != 1 || resp.Roles[0] != "buyer" {
			t.Errorf("roles = %v, want [buyer]", resp.Roles)
		}

		var stored models.User
		if err := db.Where("email = ?", "ana@example.com").First(&stored).Error; err != nil {
			t.Fatalf("load stored user: %v", err)
		}
		if stored.Password == "supersecret" {
			t.Error("password stored in plaintext")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("supersecret")); err != nil {
			t.Errorf("stored hash does not match password: %v", err)
		}
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		_, err := svc.Register(&dto.RegisterRequest{
			Name: "Ana Again", Email: "ana@example.com", Password: "supersecret", AccessName: "buyer",
		})
		if !errors.Is(err, ErrEmailTaken) {
			t.Errorf("err = %v, want ErrEmailTaken", err)
		}
	})

	t.Run("rejects unknown access", func(t *testing.T) {
		_, err := svc.Register(&dto.RegisterRequest{
			Name: "Bob", Email: "bob@example.com", Password: "supersecret", AccessName: "superuser",
		})
		if !errors.Is(err, ErrAccessNotFound) {
			t.Errorf("err = %v, want ErrAccessNotFound", err)
		}
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := svc.Register(&dto.RegisterRequest{
			Name: "Bob", Email: "bob@example.com", Password: "short", AccessName: "buyer",
		})
		if err == nil {
			t.Error("expected validation error")
		}
	})
}

func TestSignIn(t *testing.T) {
	db := newTestDB(t)
	cfg := testConfig()
	svc := NewAuthService(db, cfg, &fakeMailer{})
	user := createTestUser(t, db, "Carla", "carla@example.com", "seller")

	t.Run("issues token with id and roles", func(t *testing.T) {
		tokenString, err := svc.SignIn(&dto.SignInRequest{Email: "carla@example.com", Password: "password123"})
		if err != nil {
			t.Fatalf("sign in: %v", err)
		}

		token, err := jwt.Parse(tokenString, func(*jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			t.Fatalf("parse token: %v", err)
		}

		claims := token.Claims.(jwt.MapClaims)
		if claims["sub"] != user.ID.String() {
			t.Errorf("sub = %v, want %s", claims["sub"], user.ID)
		}
		roles, _ := claims["roles"].([]interface{})
		if len(roles) != 1 || roles[0] != "seller" {
			t.Errorf("roles = %v, want [seller]", roles)
		}

		exp, _ := claims.GetExpirationTime()
		if exp == nil || time.Until(exp.Time) < 719*time.Hour {
			t.Errorf("exp = %v, want ~720h out", exp)
		}
	})

	t.Run("wrong password yields no token", func(t *testing.T) {
		tokenString, err := svc.SignIn(&dto.SignInRequest{Email: "carla@example.com", Password: "wrong"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("err = %v, want ErrInvalidCredentials", err)
		}
		if tokenString != "" {
			t.Error("token issued for wrong password")
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.SignIn(&dto.SignInRequest{Email: "nobody@example.com", Password: "password123"})
		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("err = %v, want ErrUserNotFound", err)
		}
	})
}

func TestPasswordReset(t *testing.T) {
	db := newTestDB(t)
	cfg := testConfig()
	mail := &fakeMailer{}
	svc := NewAuthService(db, cfg, mail)
	user := createTestUser(t, db, "Davi", "davi@example.com", "buyer")

	t.Run("request stores token and mails link", func(t *testing.T) {
		if err := svc.RequestPasswordReset("davi@example.com"); err != nil {
			t.Fatalf("request reset: %v", err)
		}

		var record models.PasswordResetToken
		if err := db.Where("user_id = ?", user.ID).First(&record).Error; err != nil {
			t.Fatalf("load token: %v", err)
		}
		if len(record.Token) != 64 {
			t.Errorf("token length = %d, want 64 hex chars", len(record.Token))
		}
		if remaining := time.Until(record.ExpiresAt); remaining > time.Hour || remaining < 55*time.Minute {
			t.Errorf("expiry %v out, want ~1h", remaining)
		}

		if len(mail.to) != 1 || mail.to[0] != "davi@example.com" {
			t.Fatalf("mail recipients = %v", mail.to)
		}
		if want := cfg.FrontendURL + "/reset-password/" + record.Token; mail.links[0] != want {
			t.Errorf("reset link = %q, want %q", mail.links[0], want)
		}
	})

	t.Run("reset consumes token and changes password", func(t *testing.T) {
		var record models.PasswordResetToken
		if err := db.Where("user_id = ?", user.ID).First(&record).Error; err != nil {
			t.Fatalf("load token: %v", err)
		}

		err := svc.ResetPassword(&dto.ResetPasswordRequest{Token: record.Token, NewPassword: "newpassword1"})
		if err != nil {
			t.Fatalf("reset: %v", err)
		}

		if _, err := svc.SignIn(&dto.SignInRequest{Email: "davi@example.com", Password: "newpassword1"}); err != nil {
			t.Errorf("sign in with new password: %v", err)
		}
		if _, err := svc.SignIn(&dto.SignInRequest{Email: "davi@example.com", Password: "password123"}); !errors.Is(err, ErrInvalidCredentials) {
			t.Error("old password still accepted")
		}

		err = svc.ResetPassword(&dto.ResetPasswordRequest{Token: record.Token, NewPassword: "anotherpass1"})
		if !errors.Is(err, ErrInvalidResetToken) {
			t.Errorf("reused token err = %v, want ErrInvalidResetToken", err)
		}
	})

	t.Run("expired token is rejected and deleted", func(t *testing.T) {
		expired := models.PasswordResetToken{
			ID:        uuid.New(),
			Token:     strings.Repeat("ab", 32),
			UserID:    user.ID,
			ExpiresAt: time.Now().Add(-time.Minute),
		}
		if err := db.Create(&expired).Error; err != nil {
			t.Fatalf("create expired token: %v", err)
		}

		err := svc.ResetPassword(&dto.ResetPasswordRequest{Token: expired.Token, NewPassword: "newpassword1"})
		if !errors.Is(err, ErrInvalidResetToken) {
			t.Errorf("err = %v, want ErrInvalidResetToken", err)
		}

		var count int64
		db.Model(&models.PasswordResetToken{}).Where("token = ?", expired.Token).Count(&count)
		if count != 0 {
			t.Error("expired token not deleted")
		}
	})

	t.Run("mail failure surfaces", func(t *testing.T) {
		mail.fail = true
		defer func() { mail.fail = false }()
		if err := svc.RequestPasswordReset("davi@example.com"); !errors.Is(err, ErrMailDelivery) {
			t.Errorf("err = %v, want ErrMailDelivery", err)
		}
	})
}
