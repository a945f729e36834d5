package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/ricardomonteiro/vitrine-backend/internal/dto"
	"github.com/ricardomonteiro/vitrine-backend/internal/models"
)

func TestSaleCreate(t *testing.T) {
	db := newTestDB(t)
	svc := NewSaleService(db)

	seller := createTestUser(t, db, "Seller", "seller@example.com", "seller")
	buyer := createTestUser(t, db, "Buyer", "buyer@example.com", "buyer")
	store := createTestStore(t, db, seller)
	coffee := createTestProduct(t, db, store, "Coffee", 12.50, 10)
	mug := createTestProduct(t, db, store, "Mug", 30.00, 4)

	t.Run("totals from current prices and decrements stock", func(t *testing.T) {
		resp, err := svc.Create(buyer.ID, &dto.CreateSaleRequest{
			Products: []dto.CheckoutProduct{
				{ID: coffee.ID, Quantity: 2},
				{ID: mug.ID, Quantity: 1},
			},
			SellerID: seller.ID,
		})
		if err != nil {
			t.Fatalf("create sale: %v", err)
		}

		if want := 2*12.50 + 30.00; resp.TotalValue != want {
			t.Errorf("total = %v, want %v", resp.TotalValue, want)
		}
		if resp.Buyer.ID != buyer.ID || resp.Seller.ID != seller.ID {
			t.Error("buyer/seller not echoed back")
		}
		if len(resp.Products) != 2 {
			t.Fatalf("line items = %d, want 2", len(resp.Products))
		}

		var after models.Product
		db.First(&after, "id = ?", coffee.ID)
		if after.Amount != 8 {
			t.Errorf("coffee stock = %d, want 8", after.Amount)
		}
		// Fresh destination struct: reusing `after` would carry coffee's
		// primary key into the query conditions and match nothing.
		var afterMug models.Product
		db.First(&afterMug, "id = ?", mug.ID)
		if afterMug.Amount != 3 {
			t.Errorf("mug stock = %d, want 3", afterMug.Amount)
		}
	})

	t.Run("rejects buyer equals seller", func(t *testing.T) {
		_, err := svc.Create(seller.ID, &dto.CreateSaleRequest{
			Products: []dto.CheckoutProduct{{ID: coffee.ID, Quantity: 1}},
			SellerID: seller.ID,
		})
		if !errors.Is(err, ErrSameBuyerSeller) {
			t.Errorf("err = %v, want ErrSameBuyerSeller", err)
		}
	})

	t.Run("partial product match rejects whole request", func(t *testing.T) {
		var before int64
		db.Model(&models.Sale{}).Count(&before)

		_, err := svc.Create(buyer.ID, &dto.CreateSaleRequest{
			Products: []dto.CheckoutProduct{
				{ID: coffee.ID, Quantity: 1},
				{ID: uuid.New(), Quantity: 1},
			},
			SellerID: seller.ID,
		})
		if !errors.Is(err, ErrProductsNotFound) {
			t.Errorf("err = %v, want ErrProductsNotFound", err)
		}

		var after int64
		db.Model(&models.Sale{}).Count(&after)
		if after != before {
			t.Error("sale created despite unknown product")
		}

		var coffeeAfter models.Product
		db.First(&coffeeAfter, "id = ?", coffee.ID)
		if coffeeAfter.Amount != 8 {
			t.Errorf("stock touched on rejected request: %d", coffeeAfter.Amount)
		}
	})

	t.Run("requires products and seller", func(t *testing.T) {
		if _, err := svc.Create(buyer.ID, &dto.CreateSaleRequest{SellerID: seller.ID}); !errors.Is(err, ErrProductsRequired) {
			t.Errorf("err = %v, want ErrProductsRequired", err)
		}
		req := &dto.CreateSaleRequest{Products: []dto.CheckoutProduct{{ID: coffee.ID, Quantity: 1}}}
		if _, err := svc.Create(buyer.ID, req); !errors.Is(err, ErrSellerRequired) {
			t.Errorf("err = %v, want ErrSellerRequired", err)
		}
	})
}

func TestSaleListing(t *testing.T) {
	db := newTestDB(t)
	svc := NewSaleService(db)

	seller := createTestUser(t, db, "Seller", "seller@example.com", "seller")
	buyerA := createTestUser(t, db, "Buyer A", "a@example.com", "buyer")
	buyerB := createTestUser(t, db, "Buyer B", "b@example.com", "buyer")
	store := createTestStore(t, db, seller)
	product := createTestProduct(t, db, store, "Plant", 45.90, 20)

	buy := func(buyerID uuid.UUID, qty int) {
		t.Helper()
		_, err := svc.Create(buyerID, &dto.CreateSaleRequest{
			Products: []dto.CheckoutProduct{{ID: product.ID, Quantity: qty}},
			SellerID: seller.ID,
		})
		if err != nil {
			t.Fatalf("create sale: %v", err)
		}
	}
	buy(buyerA.ID, 1)
	buy(buyerA.ID, 2)
	buy(buyerB.ID, 1)

	all, err := svc.ListAll()
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("all sales = %d, want 3", len(all))
	}

	forA, err := svc.ListByBuyer(buyerA.ID)
	if err != nil {
		t.Fatalf("list by buyer: %v", err)
	}
	if len(forA) != 2 {
		t.Errorf("buyer A sales = %d, want 2", len(forA))
	}
	for _, sale := range forA {
		if sale.Buyer.ID != buyerA.ID {
			t.Errorf("sale %s belongs to %s", sale.ID, sale.Buyer.ID)
		}
	}

	bySeller, err := svc.ListBySeller(seller.ID)
	if err != nil {
		t.Fatalf("list by seller: %v", err)
	}
	if len(bySeller) != 3 {
		t.Errorf("seller sales = %d, want 3", len(bySeller))
	}
}
