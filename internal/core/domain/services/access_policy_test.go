package services_test

import (
	"testing"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/model/order"
	"foodcourt/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ownerLink(t *testing.T, userID kernel.UUID) order.UserLink {
	t.Helper()
	link, err := order.NewOwnerLink(userID)
	require.NoError(t, err)
	return link
}

func courierLink(t *testing.T, userID kernel.UUID) order.UserLink {
	t.Helper()
	link, err := order.NewCourierLink(userID)
	require.NoError(t, err)
	return link
}

func TestParseRole(t *testing.T) {
	t.Run("recognizes_all_roles", func(t *testing.T) {
		for _, s := range []string{"admin", "courier", "customer"} {
			role, err := services.ParseRole(s)
			require.NoError(t, err)
			assert.Equal(t, s, string(role))
		}
	})

	t.Run("rejects_unknown_role", func(t *testing.T) {
		_, err := services.ParseRole("manager")
		require.Error(t, err)
	})
}

func TestNewActor(t *testing.T) {
	t.Run("valid_actor", func(t *testing.T) {
		actor, err := services.NewActor(kernel.NewUUID(), services.RoleCustomer)
		require.NoError(t, err)
		assert.Equal(t, services.RoleCustomer, actor.Role)
	})

	t.Run("rejects_zero_id", func(t *testing.T) {
		_, err := services.NewActor(kernel.UUID{}, services.RoleCustomer)
		require.Error(t, err)
	})

	t.Run("rejects_unknown_role", func(t *testing.T) {
		_, err := services.NewActor(kernel.NewUUID(), services.Role("manager"))
		require.Error(t, err)
	})
}

func TestAccessPolicy_Admin(t *testing.T) {
	policy := services.NewAccessPolicy()
	admin := services.Actor{ID: kernel.NewUUID(), Role: services.RoleAdmin}

	t.Run("sees_and_mutates_everything", func(t *testing.T) {
		assert.True(t, policy.CanView(admin, nil))
		assert.True(t, policy.CanMutate(admin, nil))

		links := []order.UserLink{ownerLink(t, kernel.NewUUID())}
		assert.True(t, policy.CanView(admin, links))
		assert.True(t, policy.CanMutate(admin, links))
	})
}

func TestAccessPolicy_Customer(t *testing.T) {
	policy := services.NewAccessPolicy()
	customerID := kernel.NewUUID()
	customer := services.Actor{ID: customerID, Role: services.RoleCustomer}

	t.Run("allowed_with_owner_link", func(t *testing.T) {
		links := []order.UserLink{ownerLink(t, customerID)}

		assert.True(t, policy.CanView(customer, links))
		assert.True(t, policy.CanMutate(customer, links))
	})

	t.Run("denied_without_any_link", func(t *testing.T) {
		links := []order.UserLink{ownerLink(t, kernel.NewUUID())}

		assert.False(t, policy.CanView(customer, links))
		assert.False(t, policy.CanMutate(customer, links))
	})

	t.Run("courier_link_does_not_grant_customer_access", func(t *testing.T) {
		links := []order.UserLink{
			ownerLink(t, kernel.NewUUID()),
			courierLink(t, customerID),
		}

		assert.False(t, policy.CanView(customer, links))
	})
}

func TestAccessPolicy_Courier(t *testing.T) {
	policy := services.NewAccessPolicy()
	courierID := kernel.NewUUID()
	courier := services.Actor{ID: courierID, Role: services.RoleCourier}

	t.Run("allowed_with_courier_link", func(t *testing.T) {
		links := []order.UserLink{
			ownerLink(t, kernel.NewUUID()),
			courierLink(t, courierID),
		}

		assert.True(t, policy.CanView(courier, links))
		assert.True(t, policy.CanMutate(courier, links))
	})

	t.Run("allowed_with_owner_link", func(t *testing.T) {
		links := []order.UserLink{ownerLink(t, courierID)}

		assert.True(t, policy.CanView(courier, links))
	})

	t.Run("denied_when_linked_to_someone_else", func(t *testing.T) {
		links := []order.UserLink{
			ownerLink(t, kernel.NewUUID()),
			courierLink(t, kernel.NewUUID()),
		}

		assert.False(t, policy.CanView(courier, links))
		assert.False(t, policy.CanMutate(courier, links))
	})
}

func TestAccessPolicy_UnknownRole(t *testing.T) {
	policy := services.NewAccessPolicy()
	actor := services.Actor{ID: kernel.NewUUID(), Role: services.Role("manager")}

	assert.False(t, policy.CanView(actor, []order.UserLink{ownerLink(t, actor.ID)}))
	assert.False(t, policy.CanMutate(actor, []order.UserLink{ownerLink(t, actor.ID)}))
}
