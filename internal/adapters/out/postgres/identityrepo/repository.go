package identityrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/services"
	"foodcourt/internal/core/ports"
	"foodcourt/internal/pkg/errs"
)

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM user repository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Add saves a new user record. Used by database seeding.
func (r *GormUserRepository) Add(ctx context.Context, user ports.User) error {
	if err := user.ID.Validate(); err != nil {
		return err
	}
	if err := user.Role.Validate(); err != nil {
		return err
	}

	dto := userFromDomain(user)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves a user by ID.
func (r *GormUserRepository) Get(ctx context.Context, id kernel.UUID) (*ports.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("userId", id.String())
		}
		return nil, err
	}

	return userToDomain(dto)
}

// GetAllCouriers retrieves every courier ordered by registration time
// ascending, so the first candidate is the earliest-registered one.
func (r *GormUserRepository) GetAllCouriers(ctx context.Context) ([]services.CourierCandidate, error) {
	var dtos []UserDTO
	err := r.db.WithContext(ctx).
		Where("role = ?", string(services.RoleCourier)).
		Order("registered_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	candidates := make([]services.CourierCandidate, 0, len(dtos))
	for _, dto := range dtos {
		id, idErr := kernel.UUIDFromBytes(dto.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		candidates = append(candidates, services.CourierCandidate{
			ID:           id,
			RegisteredAt: dto.RegisteredAt,
		})
	}

	return candidates, nil
}

// GormCardRepository implements CardRepository using GORM.
type GormCardRepository struct {
	db *gorm.DB
}

// NewGormCardRepository creates a new GORM card repository.
func NewGormCardRepository(db *gorm.DB) *GormCardRepository {
	return &GormCardRepository{db: db}
}

// Add saves a new card record. Used by database seeding.
func (r *GormCardRepository) Add(ctx context.Context, card ports.Card) error {
	if err := card.ID.Validate(); err != nil {
		return err
	}
	if err := card.OwnerID.Validate(); err != nil {
		return err
	}

	dto := cardFromDomain(card)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves a card by ID.
func (r *GormCardRepository) Get(ctx context.Context, id kernel.UUID) (*ports.Card, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CardDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("cardId", id.String())
		}
		return nil, err
	}

	return cardToDomain(dto)
}
