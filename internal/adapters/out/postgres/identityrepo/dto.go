// Package identityrepo provides persistence for the user and payment card
// records the order core reads from. Identity is reference data here: users
// and cards are looked up during order placement and access checks, and
// written only by seeding.
package identityrepo

import (
	"time"

	"github.com/google/uuid"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/services"
	"foodcourt/internal/core/ports"
)

// UserDTO represents the database structure for user records.
type UserDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role         string    `gorm:"type:varchar(16);not null;index"`
	RegisteredAt time.Time `gorm:"not null"`
}

// TableName specifies the database table name for user entities.
func (UserDTO) TableName() string {
	return "users"
}

// CardDTO represents the database structure for payment card records. Only
// identity and ownership are stored; actual card data lives elsewhere.
type CardDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName specifies the database table name for card entities.
func (CardDTO) TableName() string {
	return "cards"
}

func userFromDomain(user ports.User) UserDTO {
	return UserDTO{
		ID:           user.ID.Bytes(),
		Role:         string(user.Role),
		RegisteredAt: user.RegisteredAt,
	}
}

func userToDomain(dto UserDTO) (*ports.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	role, err := services.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}

	return &ports.User{
		ID:           id,
		Role:         role,
		RegisteredAt: dto.RegisteredAt,
	}, nil
}

func cardFromDomain(card ports.Card) CardDTO {
	return CardDTO{
		ID:      card.ID.Bytes(),
		OwnerID: card.OwnerID.Bytes(),
	}
}

func cardToDomain(dto CardDTO) (*ports.Card, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	return &ports.Card{
		ID:      id,
		OwnerID: ownerID,
	}, nil
}
