package orderrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/model/order"
	"foodcourt/internal/pkg/errs"
)

// Postgres error codes that indicate a concurrency conflict rather than a
// programming error: unique_violation and serialization_failure.
const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
)

// GormOrderRepository implements OrderRepository using GORM.
// The aggregate spans four tables (orders, order_items, order_status_history,
// user_order_links) and is always read and written as one unit.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order aggregate with its items, history, and links.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return mapConflict("add order", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order aggregate. Header fields are rewritten and
// new history entries and links are inserted; existing child rows keep their
// primary keys, so the upsert never duplicates them.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	// Session with FullSaveAssociations upserts items, history, and links
	// alongside the header row in one statement batch.
	result := r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(&dto)
	if result.Error != nil {
		return mapConflict("update order", result.Error)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves the complete order aggregate by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate retrieves the complete order aggregate while holding an
// exclusive lock on the order row for the rest of the transaction. Callers
// must run inside a transaction for the lock to have any effect.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, id, true)
}

func (r *GormOrderRepository) get(ctx context.Context, id kernel.UUID, forUpdate bool) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	if forUpdate {
		// The lock lands on the orders row only; child rows are guarded by
		// the transaction's isolation level.
		db = db.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "orders"}})
	}

	var dto OrderDTO
	err := db.
		Preload("Items").
		Preload("History").
		Preload("Links").
		First(&dto, "id = ?", id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("orderId", id.String())
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// GetAllUnassigned retrieves non-terminal orders that have no courier link,
// newest first.
func (r *GormOrderRepository) GetAllUnassigned(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("History").
		Preload("Links").
		Table("orders").
		Select("orders.*").
		Joins("LEFT JOIN user_order_links ON user_order_links.order_id = orders.id AND user_order_links.is_courier").
		Where("user_order_links.id IS NULL").
		Where("orders.status NOT IN ?", []string{
			order.StatusDelivered.String(),
			order.StatusCanceled.String(),
		}).
		Order("orders.created_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// mapConflict translates postgres concurrency failures into the domain's
// storage conflict error so callers can surface them as retryable.
func mapConflict(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgUniqueViolation || pgErr.Code == pgSerializationFailure {
			return errs.NewStorageConflictError(operation, err)
		}
	}
	return err
}
