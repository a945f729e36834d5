package services

import (
	"errors"
	"testing"
)

func TestStoreService(t *testing.T) {
	db := newTestDB(t)
	svc := NewStoreService(db)

	alice := createTestUser(t, db, "Alice", "alice@example.com", "seller")
	mallory := createTestUser(t, db, "Mallory", "mallory@example.com", "seller")

	store, err := svc.Create(alice.ID, "Alice Crafts")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	t.Run("one store per user", func(t *testing.T) {
		if _, err := svc.Create(alice.ID, "Second Shop"); !errors.Is(err, ErrStoreExists) {
			t.Errorf("err = %v, want ErrStoreExists", err)
		}
	})

	t.Run("update restricted to owner", func(t *testing.T) {
		if _, err := svc.Update(store.ID, mallory.ID, "Taken Over"); !errors.Is(err, ErrNotStoreOwner) {
			t.Errorf("err = %v, want ErrNotStoreOwner", err)
		}

		updated, err := svc.Update(store.ID, alice.ID, "Alice Artesanato")
		if err != nil {
			t.Fatalf("owner update: %v", err)
		}
		if updated.Name != "Alice Artesanato" {
			t.Errorf("name = %q", updated.Name)
		}
	})

	t.Run("delete restricted to owner", func(t *testing.T) {
		if err := svc.Delete(store.ID, mallory.ID); !errors.Is(err, ErrNotStoreOwner) {
			t.Errorf("err = %v, want ErrNotStoreOwner", err)
		}
		if err := svc.Delete(store.ID, alice.ID); err != nil {
			t.Fatalf("owner delete: %v", err)
		}
		if _, err := svc.Get(store.ID); !errors.Is(err, ErrStoreNotFound) {
			t.Errorf("err = %v, want ErrStoreNotFound", err)
		}
	})

	t.Run("name required", func(t *testing.T) {
		if _, err := svc.Create(mallory.ID, ""); err == nil {
			t.Error("expected validation error")
		}
	})
}
