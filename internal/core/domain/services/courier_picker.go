package services

import (
	"time"

	"foodcourt/internal/core/domain/model/kernel"
)

// CourierCandidate is the slice of a courier's identity record this policy
// needs: who they are and when they registered.
type CourierCandidate struct {
	ID           kernel.UUID
	RegisteredAt time.Time
}

// CourierPicker selects which courier gets a newly created order. The current
// policy is the earliest-registered courier, with registration timestamp
// ascending as the deterministic tie-break. It is deliberately isolated in a
// single service so a real dispatch or routing algorithm can replace it
// without touching the transactional core.
//
// Example:
//
//	picker := services.NewCourierPicker()
//	if candidate := picker.Pick(couriers); candidate != nil {
//	    _ = order.AssignCourier(candidate.ID)
//	}
type CourierPicker struct{}

// NewCourierPicker creates a new CourierPicker instance.
func NewCourierPicker() CourierPicker {
	return CourierPicker{}
}

// Pick returns the earliest-registered candidate, or nil when the slice is
// empty. Having no courier available is not an error: the order is simply
// left without a courier link.
func (p CourierPicker) Pick(candidates []CourierCandidate) *CourierCandidate {
	var best *CourierCandidate
	for i := range candidates {
		c := &candidates[i]
		if best == nil || c.RegisteredAt.Before(best.RegisteredAt) {
			best = c
		}
	}

	if best == nil {
		return nil
	}

	picked := *best
	return &picked
}
