package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/ricardomonteiro/vitrine-backend/internal/dto"
	"github.com/ricardomonteiro/vitrine-backend/internal/models"
	"github.com/ricardomonteiro/vitrine-backend/internal/storage"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrNotProductOwner  = errors.New("product does not belong to this user")
	ErrTooManyImages    = errors.New("at most 5 images per product")
	ErrUploaderDisabled = errors.New("image uploads are not configured")
)

type ProductService struct {
	db       *gorm.DB
	uploader storage.Uploader
}

func NewProductService(db *gorm.DB, uploader storage.Uploader) *ProductService {
	return &ProductService{db: db, uploader: uploader}
}

func (s *ProductService) Create(storeID, userID uuid.UUID, req *dto.CreateProductRequest) (*models.Product, error) {
	if req.Name == "" || req.Price <= 0 {
		return nil, errors.New("product name and a positive price are required")
	}

	var store models.Store
	if err := s.db.First(&store, "id = ?", storeID).Error; err != nil {
		return nil, ErrStoreNotFound
	}
	if store.UserID != userID {
		return nil, ErrNotStoreOwner
	}

	product := models.Product{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Amount:      req.Amount,
		StoreID:     storeID,
	}
	if err := s.db.Create(&product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &product, nil
}

// AttachImages uploads the buffers concurrently and records each resulting
// URL against the product. Uploads that fail are logged and skipped; the
// product itself is not rolled back.
func (s *ProductService) AttachImages(ctx context.Context, productID uuid.UUID, uploads []dto.ImageUpload) error {
	if len(uploads) == 0 {
		return nil
	}
	if len(uploads) > 5 {
		return ErrTooManyImages
	}
	if s.uploader == nil {
		return ErrUploaderDisabled
	}

	var wg sync.WaitGroup
	for _, upload := range uploads {
		wg.Add(1)
		go func(upload dto.ImageUpload) {
			defer wg.Done()

			url, err := s.uploader.Upload(ctx, upload.Name, upload.ContentType, upload.Data)
			if err != nil {
				slog.Error("image upload failed", "product_id", productID, "file", upload.Name, "error", err)
				return
			}

			image := models.ProductImage{ID: uuid.New(), ImageURL: url, ProductID: productID}
			if err := s.db.Create(&image).Error; err != nil {
				slog.Error("failed to record product image", "product_id", productID, "url", url, "error", err)
			}
		}(upload)
	}
	wg.Wait()
	return nil
}

func (s *ProductService) List(page, perPage int) ([]models.Product, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	var products []models.Product
	err := s.db.Preload("Images").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *ProductService) Get(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Images").First(&product, "id = ?", id).Error; err != nil {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

func (s *ProductService) Update(id, userID uuid.UUID, req *dto.UpdateProductRequest) (*models.Product, error) {
	product, err := s.ownedProduct(id, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Amount != nil {
		updates["amount"] = *req.Amount
	}

	if len(updates) > 0 {
		if err := s.db.Model(product).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}
	return product, nil
}

// Delete removes the product and its images. Images go first so a crash
// cannot orphan them.
func (s *ProductService) Delete(id, userID uuid.UUID) error {
	product, err := s.ownedProduct(id, userID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(product).Error
	})
}

func (s *ProductService) ownedProduct(id, userID uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Store").First(&product, "id = ?", id).Error; err != nil {
		return nil, ErrProductNotFound
	}
	if product.Store.UserID != userID {
		return nil, ErrNotProductOwner
	}
	return &product, nil
}
