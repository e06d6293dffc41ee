// Package catalogrepo provides persistence for the store and product catalog
// the order core reads from. The catalog is reference data here: orders
// snapshot product prices at creation, so catalog rows are looked up during
// order placement and written only by seeding.
package catalogrepo

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/ports"
)

// StoreDTO represents the database structure for store records.
type StoreDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"type:varchar(255);not null"`
	Logo string    `gorm:"type:varchar(512)"`
}

// TableName specifies the database table name for store entities.
func (StoreDTO) TableName() string {
	return "stores"
}

// ProductDTO represents the database structure for product records.
type ProductDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	StoreID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name        string          `gorm:"type:varchar(255);not null"`
	Description string          `gorm:"type:text"`
	Image       string          `gorm:"type:varchar(512)"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

func storeFromDomain(store ports.Store) StoreDTO {
	return StoreDTO{
		ID:   store.ID.Bytes(),
		Name: store.Name,
		Logo: store.Logo,
	}
}

func storeToDomain(dto StoreDTO) (*ports.Store, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return &ports.Store{
		ID:   id,
		Name: dto.Name,
		Logo: dto.Logo,
	}, nil
}

func productFromDomain(product ports.Product) ProductDTO {
	return ProductDTO{
		ID:          product.ID.Bytes(),
		StoreID:     product.StoreID.Bytes(),
		Name:        product.Name,
		Description: product.Description,
		Image:       product.Image,
		Price:       product.Price.Decimal(),
	}
}

func productToDomain(dto ProductDTO) (*ports.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}

	return &ports.Product{
		ID:          id,
		StoreID:     storeID,
		Name:        dto.Name,
		Description: dto.Description,
		Image:       dto.Image,
		Price:       price,
	}, nil
}
