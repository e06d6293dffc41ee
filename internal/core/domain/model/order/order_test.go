package order_test

import (
	"testing"
	"time"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/model/order"
	"foodcourt/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func mustItem(t *testing.T, price string, quantity int) order.Item {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), quantity, mustMoney(t, price))
	require.NoError(t, err)
	return item
}

func newTestOrder(t *testing.T, items ...order.Item) *order.Order {
	t.Helper()
	if len(items) == 0 {
		items = []order.Item{mustItem(t, "10.00", 2), mustItem(t, "5.00", 1)}
	}
	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		nil,
		kernel.NewUUID(),
		"12 Baker Street",
		"ring twice",
		items,
		time.Now(),
	)
	require.NoError(t, err)
	return o
}

func TestNewItem(t *testing.T) {
	t.Run("snapshots_price_and_computes_subtotal", func(t *testing.T) {
		productID := kernel.NewUUID()
		item, err := order.NewItem(productID, 3, mustMoney(t, "4.50"))

		require.NoError(t, err)
		require.NoError(t, item.Validate())
		assert.True(t, item.ProductID().IsEqual(productID))
		assert.Equal(t, 3, item.Quantity())
		assert.Equal(t, "4.50", item.UnitPrice().String())
		assert.Equal(t, "13.50", item.Subtotal().String())
	})

	t.Run("rejects_zero_quantity", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), 0, mustMoney(t, "4.50"))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_negative_quantity", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), -1, mustMoney(t, "4.50"))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero_value_is_not_constructed", func(t *testing.T) {
		var item order.Item
		assert.Equal(t, order.ErrItemIsNotConstructed, item.Validate())
	})
}

func TestUserLink(t *testing.T) {
	t.Run("owner_link_carries_owner_flag_only", func(t *testing.T) {
		userID := kernel.NewUUID()
		link, err := order.NewOwnerLink(userID)

		require.NoError(t, err)
		assert.True(t, link.IsOwner())
		assert.False(t, link.IsCourier())
		assert.True(t, link.UserID().IsEqual(userID))
	})

	t.Run("courier_link_carries_courier_flag_only", func(t *testing.T) {
		link, err := order.NewCourierLink(kernel.NewUUID())

		require.NoError(t, err)
		assert.False(t, link.IsOwner())
		assert.True(t, link.IsCourier())
	})

	t.Run("rejects_invalid_user_id", func(t *testing.T) {
		_, err := order.NewOwnerLink(kernel.UUID{})
		require.Error(t, err)
	})
}

func TestNewOrder(t *testing.T) {
	t.Run("creates_pending_order_with_derived_total", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.Validate())
		assert.Equal(t, order.StatusPending, o.Status())
		assert.False(t, o.Resolved())
		assert.Equal(t, "25.00", o.Total().String())
		require.NoError(t, o.TrackingCode().Validate())
	})

	t.Run("writes_initial_pending_history_entry", func(t *testing.T) {
		o := newTestOrder(t)

		history := o.History()
		require.Len(t, history, 1)
		assert.Equal(t, order.StatusPending, history[0].Status())
	})

	t.Run("creates_exactly_one_owner_link_and_no_courier", func(t *testing.T) {
		o := newTestOrder(t)

		links := o.Links()
		require.Len(t, links, 1)
		assert.True(t, links[0].IsOwner())
		assert.Nil(t, o.CourierID())
	})

	t.Run("rejects_empty_item_list", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), nil, kernel.NewUUID(),
			"addr", "", nil, time.Now(),
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("keeps_optional_card_reference", func(t *testing.T) {
		cardID := kernel.NewUUID()
		o, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), &cardID, kernel.NewUUID(),
			"addr", "", []order.Item{mustItem(t, "1.00", 1)}, time.Now(),
		)

		require.NoError(t, err)
		require.NotNil(t, o.CardID())
		assert.True(t, o.CardID().IsEqual(cardID))
	})

	t.Run("distinct_orders_get_distinct_tracking_codes", func(t *testing.T) {
		first := newTestOrder(t)
		second := newTestOrder(t)

		assert.False(t, first.TrackingCode().IsEqual(second.TrackingCode()))
	})
}

func TestOrder_TotalInvariant(t *testing.T) {
	t.Run("total_is_sum_of_quantity_times_unit_price", func(t *testing.T) {
		o := newTestOrder(t,
			mustItem(t, "3.33", 3), // 9.99
			mustItem(t, "0.01", 7), // 0.07
		)

		assert.Equal(t, "10.06", o.Total().String())
	})

	t.Run("items_are_copies_and_cannot_mutate_the_aggregate", func(t *testing.T) {
		o := newTestOrder(t)

		items := o.Items()
		items[0] = order.Item{}

		assert.Equal(t, "25.00", o.Total().String())
		require.NoError(t, o.Items()[0].Validate())
	})
}

func TestOrder_ChangeStatus(t *testing.T) {
	table := order.PolicyOrdered.Table()

	t.Run("forward_transition_appends_history", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.ChangeStatus(order.StatusAccepted, table, "store confirmed", time.Now())

		require.NoError(t, err)
		assert.Equal(t, order.StatusAccepted, o.Status())
		history := o.History()
		require.Len(t, history, 2)
		assert.Equal(t, order.StatusAccepted, history[1].Status())
		assert.Equal(t, "store confirmed", history[1].Comment())
	})

	t.Run("same_status_is_noop_without_history_entry", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.ChangeStatus(order.StatusPending, table, "", time.Now())

		require.NoError(t, err)
		assert.Len(t, o.History(), 1)
	})

	t.Run("skipping_to_delivered_sets_resolved", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.ChangeStatus(order.StatusDelivered, table, "", time.Now())

		require.NoError(t, err)
		assert.True(t, o.Resolved())
		assert.Equal(t, order.StatusDelivered, o.Status())
	})

	t.Run("backward_transition_is_rejected", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.ChangeStatus(order.StatusOnRoute, table, "", time.Now()))

		err := o.ChangeStatus(order.StatusAccepted, table, "", time.Now())

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.StatusOnRoute, o.Status())
	})

	t.Run("no_transition_leaves_delivered", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.ChangeStatus(order.StatusDelivered, table, "", time.Now()))

		err := o.ChangeStatus(order.StatusPending, table, "", time.Now())
		require.ErrorIs(t, err, errs.ErrInvalidTransition)

		err = o.ChangeStatus(order.StatusCanceled, table, "", time.Now())
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("cancel_from_any_non_terminal_state", func(t *testing.T) {
		for _, intermediate := range []order.Status{
			order.StatusPending, order.StatusAccepted, order.StatusPicked, order.StatusOnRoute,
		} {
			o := newTestOrder(t)
			if intermediate != order.StatusPending {
				require.NoError(t, o.ChangeStatus(intermediate, table, "", time.Now()))
			}

			err := o.ChangeStatus(order.StatusCanceled, table, "changed my mind", time.Now())

			require.NoError(t, err, intermediate.String())
			assert.Equal(t, order.StatusCanceled, o.Status())
		}
	})

	t.Run("unknown_target_is_rejected", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.ChangeStatus(order.Status(42), table, "", time.Now())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_AssignCourier(t *testing.T) {
	t.Run("adds_single_courier_link", func(t *testing.T) {
		o := newTestOrder(t)
		courierID := kernel.NewUUID()

		require.NoError(t, o.AssignCourier(courierID))

		require.NotNil(t, o.CourierID())
		assert.True(t, o.CourierID().IsEqual(courierID))
		assert.Len(t, o.Links(), 2)
	})

	t.Run("second_assignment_is_rejected", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AssignCourier(kernel.NewUUID()))

		err := o.AssignCourier(kernel.NewUUID())

		assert.Equal(t, order.ErrCourierAlreadyAssigned, err)
	})

	t.Run("terminal_order_cannot_be_assigned", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.ChangeStatus(order.StatusCanceled, order.PolicyOrdered.Table(), "", time.Now()))

		err := o.AssignCourier(kernel.NewUUID())

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestRestoreOrder(t *testing.T) {
	restore := func(t *testing.T, o *order.Order) (*order.Order, error) {
		t.Helper()
		return order.RestoreOrder(
			o.ID(), o.TrackingCode(), o.StoreID(), o.CardID(),
			o.Status(), o.Resolved(), o.Address(), o.Notes(), o.CreatedAt(),
			o.Items(), o.History(), o.Links(),
		)
	}

	t.Run("round_trips_the_aggregate", func(t *testing.T) {
		original := newTestOrder(t)
		require.NoError(t, original.ChangeStatus(order.StatusAccepted, order.PolicyOrdered.Table(), "ok", time.Now()))

		restored, err := restore(t, original)

		require.NoError(t, err)
		assert.True(t, original.IsEqual(restored))
		assert.Equal(t, original.Status(), restored.Status())
		assert.Equal(t, original.Total().String(), restored.Total().String())
		assert.Len(t, restored.History(), 2)
		assert.Len(t, restored.Links(), 1)
	})

	t.Run("total_is_recomputed_from_items", func(t *testing.T) {
		original := newTestOrder(t)

		restored, err := restore(t, original)

		require.NoError(t, err)
		assert.Equal(t, "25.00", restored.Total().String())
	})

	t.Run("rejects_missing_history", func(t *testing.T) {
		o := newTestOrder(t)

		_, err := order.RestoreOrder(
			o.ID(), o.TrackingCode(), o.StoreID(), nil,
			o.Status(), false, o.Address(), o.Notes(), o.CreatedAt(),
			o.Items(), nil, o.Links(),
		)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects_missing_owner_link", func(t *testing.T) {
		o := newTestOrder(t)
		courierOnly, err := order.NewCourierLink(kernel.NewUUID())
		require.NoError(t, err)

		_, err = order.RestoreOrder(
			o.ID(), o.TrackingCode(), o.StoreID(), nil,
			o.Status(), false, o.Address(), o.Notes(), o.CreatedAt(),
			o.Items(), o.History(), []order.UserLink{courierOnly},
		)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_HistoryOrdering(t *testing.T) {
	t.Run("history_is_sorted_ascending_by_timestamp", func(t *testing.T) {
		base := time.Now()
		o := newTestOrder(t)
		table := order.PolicyOrdered.Table()

		require.NoError(t, o.ChangeStatus(order.StatusAccepted, table, "", base.Add(2*time.Minute)))
		require.NoError(t, o.ChangeStatus(order.StatusPicked, table, "", base.Add(5*time.Minute)))

		history := o.History()
		require.Len(t, history, 3)
		for i := 1; i < len(history); i++ {
			assert.False(t, history[i].OccurredAt().Before(history[i-1].OccurredAt()))
		}
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("nil_and_zero_value_are_not_constructed", func(t *testing.T) {
		var o *order.Order
		assert.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())

		assert.Equal(t, order.ErrOrderIsNotConstructed, (&order.Order{}).Validate())
	})
}
