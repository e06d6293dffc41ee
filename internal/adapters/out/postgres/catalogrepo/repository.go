package catalogrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/ports"
	"foodcourt/internal/pkg/errs"
)

// GormStoreRepository implements StoreRepository using GORM.
type GormStoreRepository struct {
	db *gorm.DB
}

// NewGormStoreRepository creates a new GORM store repository.
func NewGormStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

// Add saves a new store record. Used by database seeding.
func (r *GormStoreRepository) Add(ctx context.Context, store ports.Store) error {
	if err := store.ID.Validate(); err != nil {
		return err
	}

	dto := storeFromDomain(store)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves a store by ID.
func (r *GormStoreRepository) Get(ctx context.Context, id kernel.UUID) (*ports.Store, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto StoreDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("storeId", id.String())
		}
		return nil, err
	}

	return storeToDomain(dto)
}

// Any retrieves whether the store table holds at least one row.
// Seeding uses it to decide whether demo data is needed.
func (r *GormStoreRepository) Any(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&StoreDTO{}).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GormProductRepository implements ProductRepository using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM product repository.
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Add saves a new product record. Used by database seeding.
func (r *GormProductRepository) Add(ctx context.Context, product ports.Product) error {
	if err := product.ID.Validate(); err != nil {
		return err
	}
	if err := product.StoreID.Validate(); err != nil {
		return err
	}

	dto := productFromDomain(product)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves a product by ID scoped to a store. A product that exists but
// belongs to a different store is reported as not found.
func (r *GormProductRepository) Get(ctx context.Context, id, storeID kernel.UUID) (*ports.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := storeID.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND store_id = ?", id.Bytes(), storeID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("productId", id.String())
		}
		return nil, err
	}

	return productToDomain(dto)
}
