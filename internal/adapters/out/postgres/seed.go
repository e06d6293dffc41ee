package postgres

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"foodcourt/internal/adapters/out/postgres/catalogrepo"
	"foodcourt/internal/adapters/out/postgres/identityrepo"
	"foodcourt/internal/adapters/out/postgres/orderrepo"
	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/services"
	"foodcourt/internal/core/ports"
)

// Fixed identities for the demo dataset, so seeded rows keep the same IDs
// across environments and restarts.
const (
	seedStoreID       = "8a0a1c4e-3f21-4a8e-9e01-000000000000"
	seedAdminID       = "8a0a1c4e-3f21-4a8e-9e01-111111111111"
	seedCourierID     = "8a0a1c4e-3f21-4a8e-9e01-222222222222"
	seedCustomerID    = "8a0a1c4e-3f21-4a8e-9e01-333333333333"
	seedCardID        = "8a0a1c4e-3f21-4a8e-9e01-444444444444"
	seedPadThaiID     = "8a0a1c4e-3f21-4a8e-9e01-555555555555"
	seedGreenCurryID  = "8a0a1c4e-3f21-4a8e-9e01-666666666666"
	seedSpringRollsID = "8a0a1c4e-3f21-4a8e-9e01-777777777777"
)

// Migrate creates or updates the database schema for every persisted table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&orderrepo.StatusHistoryDTO{},
		&orderrepo.UserOrderLinkDTO{},
		&catalogrepo.StoreDTO{},
		&catalogrepo.ProductDTO{},
		&identityrepo.UserDTO{},
		&identityrepo.CardDTO{},
	)
}

// Seed loads the demo catalog and identity data when the database is empty.
// Emptiness is decided by the store table in the database itself, never by an
// in-process flag, so restarting the service against a populated database
// changes nothing.
func Seed(ctx context.Context, db *gorm.DB, logger *slog.Logger) error {
	logger = logger.With("component", "seed")

	storeRepo := catalogrepo.NewGormStoreRepository(db)

	seeded, err := storeRepo.Any(ctx)
	if err != nil {
		return err
	}
	if seeded {
		logger.InfoContext(ctx, "Database already seeded, skipping")
		return nil
	}

	if err = seedCatalog(ctx, db); err != nil {
		return err
	}
	if err = seedIdentity(ctx, db); err != nil {
		return err
	}

	logger.InfoContext(ctx, "Database seeded with demo data")
	return nil
}

func seedCatalog(ctx context.Context, db *gorm.DB) error {
	storeRepo := catalogrepo.NewGormStoreRepository(db)
	productRepo := catalogrepo.NewGormProductRepository(db)

	storeID, err := kernel.UUIDFromString(seedStoreID)
	if err != nil {
		return err
	}

	if err = storeRepo.Add(ctx, ports.Store{
		ID:   storeID,
		Name: "Thai Palace",
		Logo: "https://cdn.foodcourt.example/logos/thai-palace.png",
	}); err != nil {
		return err
	}

	products := []struct {
		id          string
		name        string
		description string
		price       string
	}{
		{seedPadThaiID, "Pad Thai", "Rice noodles with tamarind sauce and peanuts", "12.50"},
		{seedGreenCurryID, "Green Curry", "Coconut curry with thai basil", "14.00"},
		{seedSpringRollsID, "Spring Rolls", "Crispy vegetable rolls, four pieces", "6.25"},
	}

	for _, p := range products {
		id, idErr := kernel.UUIDFromString(p.id)
		if idErr != nil {
			return idErr
		}

		price, priceErr := kernel.MoneyFromString(p.price)
		if priceErr != nil {
			return priceErr
		}

		if err = productRepo.Add(ctx, ports.Product{
			ID:          id,
			StoreID:     storeID,
			Name:        p.name,
			Description: p.description,
			Price:       price,
		}); err != nil {
			return err
		}
	}

	return nil
}

func seedIdentity(ctx context.Context, db *gorm.DB) error {
	userRepo := identityrepo.NewGormUserRepository(db)
	cardRepo := identityrepo.NewGormCardRepository(db)

	registeredAt := time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)

	users := []struct {
		id   string
		role services.Role
	}{
		{seedAdminID, services.RoleAdmin},
		{seedCourierID, services.RoleCourier},
		{seedCustomerID, services.RoleCustomer},
	}

	for i, u := range users {
		id, err := kernel.UUIDFromString(u.id)
		if err != nil {
			return err
		}

		if err = userRepo.Add(ctx, ports.User{
			ID:           id,
			Role:         u.role,
			RegisteredAt: registeredAt.Add(time.Duration(i) * time.Hour),
		}); err != nil {
			return err
		}
	}

	cardID, err := kernel.UUIDFromString(seedCardID)
	if err != nil {
		return err
	}
	customerID, err := kernel.UUIDFromString(seedCustomerID)
	if err != nil {
		return err
	}

	return cardRepo.Add(ctx, ports.Card{ID: cardID, OwnerID: customerID})
}
