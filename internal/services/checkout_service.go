package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/ricardomonteiro/vitrine-backend/internal/config"
	"github.com/ricardomonteiro/vitrine-backend/internal/dto"
	"github.com/ricardomonteiro/vitrine-backend/internal/models"
	"github.com/ricardomonteiro/vitrine-backend/internal/payments"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrIntentNotFound = errors.New("checkout intent not found")
	ErrSaleNotFound   = errors.New("sale not found")
	ErrGateway        = errors.New("payment gateway error")
)

// CheckoutService orchestrates the asynchronous order path: it creates the
// gateway session against a locally persisted checkout intent and, when the
// completion webhook arrives, reconciles the intent into a durable Sale.
type CheckoutService struct {
	db      *gorm.DB
	gateway payments.Gateway
	cfg     *config.Config
}

func NewCheckoutService(db *gorm.DB, gateway payments.Gateway, cfg *config.Config) *CheckoutService {
	return &CheckoutService{db: db, gateway: gateway, cfg: cfg}
}

// CreateSession validates the cart, persists a CheckoutIntent and opens a
// gateway session whose metadata carries only the intent id. Prices are
// fixed gateway-side at session creation; the webhook re-reads them at
// fulfillment time.
func (s *CheckoutService) CreateSession(buyerID uuid.UUID, req *dto.CreateCheckoutSessionRequest) (*dto.CheckoutSessionResponse, error) {
	if len(req.Products) == 0 {
		return nil, ErrProductsRequired
	}
	if req.SellerID == uuid.Nil {
		return nil, ErrSellerRequired
	}

	var seller models.User
	if err := s.db.First(&seller, "id = ?", req.SellerID).Error; err != nil {
		return nil, ErrSellerNotFound
	}

	var buyer models.User
	if err := s.db.First(&buyer, "id = ?", buyerID).Error; err != nil {
		return nil, ErrBuyerNotFound
	}

	products, err := resolveProducts(s.db, req.Products)
	if err != nil {
		return nil, err
	}

	lineItems := make([]payments.LineItem, 0, len(products))
	for _, product := range products {
		lineItems = append(lineItems, payments.LineItem{
			Name:       product.Name,
			UnitAmount: int64(math.Round(product.Price * 100)),
			Quantity:   int64(quantityFor(req.Products, product.ID)),
		})
	}

	intent := models.CheckoutIntent{
		ID:       uuid.New(),
		BuyerID:  buyerID,
		SellerID: req.SellerID,
	}

	// The buyer's address is optional; snapshot its id when present.
	var address models.Address
	if err := s.db.Where("user_id = ?", buyerID).First(&address).Error; err == nil {
		intent.AddressID = &address.ID
	}

	snapshot, err := json.Marshal(req.Products)
	if err != nil {
		return nil, fmt.Errorf("failed to encode product snapshot: %w", err)
	}
	intent.Products = datatypes.JSON(snapshot)

	if err := s.db.Create(&intent).Error; err != nil {
		return nil, fmt.Errorf("failed to persist checkout intent: %w", err)
	}

	sess, err := s.gateway.CreateSession(&payments.SessionParams{
		LineItems:  lineItems,
		SuccessURL: s.cfg.FrontendURL + "/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  s.cfg.FrontendURL + "/cancel",
		Metadata:   map[string]string{"intent_id": intent.ID.String()},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	formatted := make([]dto.CheckoutLineItem, 0, len(lineItems))
	for _, item := range lineItems {
		formatted = append(formatted, dto.CheckoutLineItem{
			Name:       item.Name,
			UnitAmount: formatPrice(item.UnitAmount),
			Quantity:   int(item.Quantity),
		})
	}

	return &dto.CheckoutSessionResponse{
		SessionID: sess.ID,
		LineItems: formatted,
		Seller:    dto.UserSummary{ID: seller.ID, Name: seller.Name},
		Buyer:     dto.UserSummary{ID: buyer.ID, Name: buyer.Name},
	}, nil
}

// HandleCompletedSession reconciles a completed gateway session into a Sale:
// load the intent referenced by the session metadata, re-resolve the
// products at current prices, recompute the total, then transactionally
// create the sale, decrement stock and stamp the session id.
func (s *CheckoutService) HandleCompletedSession(sess *payments.Session) error {
	rawIntentID, ok := sess.Metadata["intent_id"]
	if !ok || rawIntentID == "" {
		return ErrIntentNotFound
	}
	intentID, err := uuid.Parse(rawIntentID)
	if err != nil {
		return ErrIntentNotFound
	}

	var intent models.CheckoutIntent
	if err := s.db.First(&intent, "id = ?", intentID).Error; err != nil {
		return ErrIntentNotFound
	}

	if intent.BuyerID == intent.SellerID {
		return ErrSameBuyerSeller
	}

	var requested []dto.CheckoutProduct
	if err := json.Unmarshal(intent.Products, &requested); err != nil {
		return fmt.Errorf("failed to decode product snapshot: %w", err)
	}

	products, err := resolveProducts(s.db, requested)
	if err != nil {
		return err
	}

	total := saleTotal(products, requested)

	sale := models.Sale{
		ID:              uuid.New(),
		TotalValue:      total,
		BuyerID:         intent.BuyerID,
		SellerID:        intent.SellerID,
		AddressID:       intent.AddressID,
		StripeSessionID: &sess.ID,
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		return persistSale(tx, &sale, products, requested)
	})
}

// OrderDetails re-fetches the gateway session and loads the Sale the
// webhook linked to it. Not found until the completion webhook has landed.
func (s *CheckoutService) OrderDetails(sessionID string) (*models.Sale, error) {
	sess, err := s.gateway.GetSession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	var sale models.Sale
	err = s.db.Preload("Buyer").Preload("Seller").Preload("Address").
		Preload("Products.Product").
		First(&sale, "stripe_session_id = ?", sess.ID).Error
	if err != nil {
		return nil, ErrSaleNotFound
	}
	return &sale, nil
}

// AdminOrders lists every sale with its buyer, seller, address and line
// items.
func (s *CheckoutService) AdminOrders() ([]models.Sale, error) {
	var sales []models.Sale
	err := s.db.Preload("Buyer").Preload("Seller").Preload("Address").
		Preload("Products.Product").
		Find(&sales).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return sales, nil
}

// formatPrice renders centavos as a pt-BR currency string ("R$ 10,00").
func formatPrice(cents int64) string {
	value := fmt.Sprintf("%.2f", float64(cents)/100)
	return "R$ " + strings.Replace(value, ".", ",", 1)
}
