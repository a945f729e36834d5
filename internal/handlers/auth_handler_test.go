package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/ricardomonteiro/vitrine-backend/internal/dto"
	"github.com/ricardomonteiro/vitrine-backend/internal/services"
)

type noopMailer struct{}

func (noopMailer) SendPasswordReset(to, resetLink string) error { return nil }

func newAuthApp(t *testing.T) *fiber.App {
	t.Helper()

	db := newTestDB(t)
	authService := services.NewAuthService(db, testConfig(), noopMailer{})
	h := NewAuthHandler(authService)

	app := fiber.New()
	app.Post("/api/register", h.Register)
	app.Post("/api/sign-in", h.SignIn)
	return app
}

func TestRegisterEndpoint(t *testing.T) {
	app := newAuthApp(t)

	t.Run("created response carries no password material", func(t *testing.T) {
		resp := postJSON(t, app, "/api/register", dto.RegisterRequest{
			Name: "Ana", Email: "ana@example.com", Password: "supersecret", AccessName: "buyer",
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status = %d, want 201", resp.StatusCode)
		}

		body := readBody(t, resp)
		if strings.Contains(strings.ToLower(string(body)), "password") {
			t.Errorf("response leaks password field: %s", body)
		}
		if strings.Contains(string(body), "supersecret") {
			t.Error("response leaks raw password")
		}

		var user dto.UserResponse
		if err := json.Unmarshal(body, &user); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if user.Email != "ana@example.com" || len(user.Roles) != 1 || user.Roles[0] != "buyer" {
			t.Errorf("user = %+v", user)
		}
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		resp := postJSON(t, app, "/api/register", dto.RegisterRequest{
			Name: "Ana Again", Email: "ana@example.com", Password: "supersecret", AccessName: "buyer",
		})
		if resp.StatusCode != http.StatusConflict {
			t.Errorf("status = %d, want 409", resp.StatusCode)
		}
		readBody(t, resp)
	})

	t.Run("unknown access is a bad request", func(t *testing.T) {
		resp := postJSON(t, app, "/api/register", dto.RegisterRequest{
			Name: "Bob", Email: "bob@example.com", Password: "supersecret", AccessName: "root",
		})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
		readBody(t, resp)
	})
}

func TestSignInEndpoint(t *testing.T) {
	app := newAuthApp(t)

	resp := postJSON(t, app, "/api/register", dto.RegisterRequest{
		Name: "Carla", Email: "carla@example.com", Password: "supersecret", AccessName: "seller",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d", resp.StatusCode)
	}
	readBody(t, resp)

	t.Run("valid credentials return a token", func(t *testing.T) {
		resp := postJSON(t, app, "/api/sign-in", dto.SignInRequest{
			Email: "carla@example.com", Password: "supersecret",
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}

		var out dto.SignInResponse
		if err := json.Unmarshal(readBody(t, resp), &out); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if out.Token == "" {
			t.Error("empty token")
		}
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		resp := postJSON(t, app, "/api/sign-in", dto.SignInRequest{
			Email: "carla@example.com", Password: "wrong",
		})
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", resp.StatusCode)
		}
		if strings.Contains(string(readBody(t, resp)), "token") {
			t.Error("token issued on wrong password")
		}
	})

	t.Run("unknown email is not found", func(t *testing.T) {
		resp := postJSON(t, app, "/api/sign-in", dto.SignInRequest{
			Email: "ghost@example.com", Password: "supersecret",
		})
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %d, want 404", resp.StatusCode)
		}
		readBody(t, resp)
	})
}
