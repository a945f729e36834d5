package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

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

	// In-memory sqlite lives on a single connection.
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

func createTestUser(t *testing.T, db *gorm.DB, name, email, role string) models.User {
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
		t.Fatalf("find access %s: %v", role, err)
	}
	if err := db.Create(&models.UserAccess{ID: uuid.New(), UserID: user.ID, AccessID: access.ID}).Error; err != nil {
		t.Fatalf("assign access: %v", err)
	}
	return user
}

func createTestStore(t *testing.T, db *gorm.DB, owner models.User) models.Store {
	t.Helper()

	store := models.Store{ID: uuid.New(), Name: owner.Name + "'s store", UserID: owner.ID}
	if err := db.Create(&store).Error; err != nil {
		t.Fatalf("create store: %v", err)
	}
	return store
}

func createTestProduct(t *testing.T, db *gorm.DB, store models.Store, name string, price float64, amount int) models.Product {
	t.Helper()

	product := models.Product{
		ID:      uuid.New(),
		Name:    name,
		Price:   price,
		Amount:  amount,
		StoreID: store.ID,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

// fakeGateway records calls instead of talking to the payment provider.
type fakeGateway struct {
	createCalls int
	lastParams  *payments.SessionParams
	sessions    map[string]*payments.Session
	failCreate  bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{sessions: make(map[string]*payments.Session)}
}

func (g *fakeGateway) CreateSession(params *payments.SessionParams) (*payments.Session, error) {
	g.createCalls++
	g.lastParams = params
	if g.failCreate {
		return nil, errors.New("gateway unavailable")
	}
	sess := &payments.Session{
		ID:       fmt.Sprintf("cs_test_%d", g.createCalls),
		Metadata: params.Metadata,
	}
	g.sessions[sess.ID] = sess
	return sess, nil
}

func (g *fakeGateway) GetSession(id string) (*payments.Session, error) {
	sess, ok := g.sessions[id]
	if !ok {
		return nil, errors.New("no such session")
	}
	return sess, nil
}

func (g *fakeGateway) ConstructEvent(payload []byte, sigHeader string) (*payments.Event, error) {
	return nil, errors.New("not used in service tests")
}

type fakeMailer struct {
	mu    sync.Mutex
	to    []string
	links []string
	fail  bool
}

func (m *fakeMailer) SendPasswordReset(to, resetLink string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("smtp down")
	}
	m.to = append(m.to, to)
	m.links = append(m.links, resetLink)
	return nil
}

type fakeUploader struct {
	mu    sync.Mutex
	names []string
	fail  bool
}

func (u *fakeUploader) Upload(_ context.Context, filename, contentType string, data []byte) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.fail {
		return "", errors.New("bucket unavailable")
	}
	u.names = append(u.names, filename)
	return "https://storage.example.com/bucket/" + filename, nil
}
