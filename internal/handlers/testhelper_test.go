package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/ricardomonteiro/vitrine-backend/internal/config"
	"github.com/ricardomonteiro/vitrine-backend/internal/models"
	"github.com/ricardomonteiro/vitrine-backend/internal/payments"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Access{},
		&models.UserAccess{},
		&models.Store{},
		&models.Product{},
		&models.ProductImage{},
		&models.Address{},
		&models.Sale{},
		&models.SaleProduct{},
		&models.PasswordResetToken{},
		&models.CheckoutIntent{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	for _, name := range []string{"admin", "seller", "buyer"} {
		if err := db.Create(&models.Access{ID: uuid.New(), Name: name}).Error; err != nil {
			t.Fatalf("seed access %s: %v", name, err)
		}
	}
	return db
}

func testConfig() *config.Config {
	cfg := config.Load()
	cfg.JWTSecret = "test-secret"
	cfg.FrontendURL = "http://localhost:3000"
	return cfg
}

func seedUser(t *testing.T, db *gorm.DB, name, email, role string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{ID: uuid.New(), Name: name, Email: email, Password: string(hash)}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	var access models.Access
	if err := db.Where("name = ?", role).First(&access).Error; err != nil {
		t.Fatalf("find access: %v", err)
	}
	if err := db.Create(&models.UserAccess{ID: uuid.New(), UserID: user.ID, AccessID: access.ID}).Error; err != nil {
		t.Fatalf("assign access: %v", err)
	}
	return user
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func readBody(t *testing.T, resp *http.Response) []byte {
	t.Helper()

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return body
}

// stubGateway lets webhook tests dictate what ConstructEvent returns.
type stubGateway struct {
	event    *payments.Event
	eventErr error
	sessions map[string]*payments.Session
}

func (g *stubGateway) CreateSession(params *payments.SessionParams) (*payments.Session, error) {
	sess := &payments.Session{ID: "cs_stub", Metadata: params.Metadata}
	if g.sessions == nil {
		g.sessions = make(map[string]*payments.Session)
	}
	g.sessions[sess.ID] = sess
	return sess, nil
}

func (g *stubGateway) GetSession(id string) (*payments.Session, error) {
	if sess, ok := g.sessions[id]; ok {
		return sess, nil
	}
	return nil, errors.New("no such session")
}

func (g *stubGateway) ConstructEvent(payload []byte, sigHeader string) (*payments.Event, error) {
	if g.eventErr != nil {
		return nil, g.eventErr
	}
	return g.event, nil
}
