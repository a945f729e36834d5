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
	ErrProductsRequired = errors.New("products are required")
	ErrSellerRequired   = errors.New("seller id is required")
	ErrSellerNotFound   = errors.New("seller not found")
	ErrBuyerNotFound    = errors.New("buyer not found")
	ErrProductsNotFound = errors.New("some products not found in database")
	ErrSameBuyerSeller  = errors.New("buyer and seller cannot be the same user")
)

type SaleService struct {
	db *gorm.DB
}

func NewSaleService(db *gorm.DB) *SaleService {
	return &SaleService{db: db}
}

// Create is the synchronous sale path: resolve the products, recompute the
// total from current prices, create the sale with its line items and
// decrement stock, all in one transaction.
func (s *SaleService) Create(buyerID uuid.UUID, req *dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(req.Products) == 0 {
		return nil, ErrProductsRequired
	}
	if req.SellerID == uuid.Nil {
		return nil, ErrSellerRequired
	}
	if buyerID == req.SellerID {
		return nil, ErrSameBuyerSeller
	}

	products, err := resolveProducts(s.db, req.Products)
	if err != nil {
		return nil, err
	}

	total := saleTotal(products, req.Products)

	sale := models.Sale{
		ID:         uuid.New(),
		TotalValue: total,
		BuyerID:    buyerID,
		SellerID:   req.SellerID,
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return persistSale(tx, &sale, products, req.Products)
	}); err != nil {
		return nil, fmt.Errorf("failed to create sale: %w", err)
	}

	return s.toResponse(sale.ID)
}

func (s *SaleService) ListAll() ([]dto.SaleResponse, error) {
	return s.list(s.db)
}

func (s *SaleService) ListByBuyer(buyerID uuid.UUID) ([]dto.SaleResponse, error) {
	return s.list(s.db.Where("buyer_id = ?", buyerID))
}

func (s *SaleService) ListBySeller(sellerID uuid.UUID) ([]dto.SaleResponse, error) {
	return s.list(s.db.Where("seller_id = ?", sellerID))
}

func (s *SaleService) list(query *gorm.DB) ([]dto.SaleResponse, error) {
	var sales []models.Sale
	err := query.Preload("Buyer").Preload("Seller").Preload("Products.Product").
		Find(&sales).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}

	out := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		out = append(out, toSaleResponse(&sales[i]))
	}
	return out, nil
}

func (s *SaleService) toResponse(saleID uuid.UUID) (*dto.SaleResponse, error) {
	var sale models.Sale
	err := s.db.Preload("Buyer").Preload("Seller").Preload("Products.Product").
		First(&sale, "id = ?", saleID).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load sale: %w", err)
	}
	resp := toSaleResponse(&sale)
	return &resp, nil
}

// resolveProducts loads the requested catalog rows. A partial match rejects
// the whole request.
func resolveProducts(db *gorm.DB, requested []dto.CheckoutProduct) ([]models.Product, error) {
	ids := make([]uuid.UUID, 0, len(requested))
	for _, p := range requested {
		ids = append(ids, p.ID)
	}

	var products []models.Product
	if err := db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to resolve products: %w", err)
	}
	if len(products) != len(requested) {
		return nil, ErrProductsNotFound
	}
	return products, nil
}

func quantityFor(requested []dto.CheckoutProduct, productID uuid.UUID) int {
	for _, p := range requested {
		if p.ID == productID {
			return p.Quantity
		}
	}
	return 0
}

func saleTotal(products []models.Product, requested []dto.CheckoutProduct) float64 {
	var total float64
	for _, product := range products {
		total += product.Price * float64(quantityFor(requested, product.ID))
	}
	return total
}

// persistSale writes the sale row, its line items, and decrements stock.
// Decrements are SQL expressions; stock can go negative under concurrent
// completions.
func persistSale(tx *gorm.DB, sale *models.Sale, products []models.Product, requested []dto.CheckoutProduct) error {
	if err := tx.Create(sale).Error; err != nil {
		return err
	}

	for _, product := range products {
		quantity := quantityFor(requested, product.ID)
		item := models.SaleProduct{
			ID:        uuid.New(),
			SaleID:    sale.ID,
			ProductID: product.ID,
			Quantity:  quantity,
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		err := tx.Model(&models.Product{}).Where("id = ?", product.ID).
			Update("amount", gorm.Expr("amount - ?", quantity)).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func toSaleResponse(sale *models.Sale) dto.SaleResponse {
	items := make([]dto.SaleLineItem, 0, len(sale.Products))
	for _, sp := range sale.Products {
		items = append(items, dto.SaleLineItem{
			ProductID: sp.ProductID,
			Name:      sp.Product.Name,
			Price:     sp.Product.Price,
			Quantity:  sp.Quantity,
		})
	}
	return dto.SaleResponse{
		ID:         sale.ID,
		TotalValue: sale.TotalValue,
		Seller:     dto.UserSummary{ID: sale.Seller.ID, Name: sale.Seller.Name},
		Buyer:      dto.UserSummary{ID: sale.Buyer.ID, Name: sale.Buyer.Name},
		Products:   items,
		CreatedAt:  sale.CreatedAt,
	}
}
