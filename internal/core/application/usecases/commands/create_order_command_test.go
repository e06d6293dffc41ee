package commands_test

import (
	"testing"

	"foodcourt/internal/core/application/usecases/commands"
	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderLine_ValidInput(t *testing.T) {
	productID := kernel.NewUUID()
	line, err := commands.NewOrderLine(productID, 3)
	require.NoError(t, err)
	assert.Equal(t, productID, line.ProductID())
	assert.Equal(t, 3, line.Quantity())
}

func TestNewOrderLine_InvalidProductID(t *testing.T) {
	_, err := commands.NewOrderLine(kernel.UUID{}, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewOrderLine_ZeroQuantity(t *testing.T) {
	_, err := commands.NewOrderLine(kernel.NewUUID(), 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewOrderLine_NegativeQuantity(t *testing.T) {
	_, err := commands.NewOrderLine(kernel.NewUUID(), -2)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	customerID := kernel.NewUUID()
	storeID := kernel.NewUUID()
	cardID := kernel.NewUUID()
	line, err := commands.NewOrderLine(kernel.NewUUID(), 2)
	require.NoError(t, err)

	cmd, err := commands.NewCreateOrderCommand(
		customerID, storeID, []commands.OrderLine{line}, &cardID, "12 Baker Street", "leave at door",
	)
	require.NoError(t, err)
	assert.Equal(t, customerID, cmd.CustomerID())
	assert.Equal(t, storeID, cmd.StoreID())
	assert.Len(t, cmd.Lines(), 1)
	require.NotNil(t, cmd.CardID())
	assert.True(t, cmd.CardID().IsEqual(cardID))
	assert.Equal(t, "12 Baker Street", cmd.Address())
	assert.Equal(t, "leave at door", cmd.Notes())
}

func TestNewCreateOrderCommand_NilCard(t *testing.T) {
	line, err := commands.NewOrderLine(kernel.NewUUID(), 1)
	require.NoError(t, err)

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), []commands.OrderLine{line}, nil, "12 Baker Street", "",
	)
	require.NoError(t, err)
	assert.Nil(t, cmd.CardID())
}

func TestNewCreateOrderCommand_EmptyLines(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), nil, nil, "12 Baker Street", "",
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewCreateOrderCommand_UnconstructedLine(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), []commands.OrderLine{{}}, nil, "12 Baker Street", "",
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrOrderLineIsNotConstructed)
}

func TestNewCreateOrderCommand_InvalidCustomerID(t *testing.T) {
	line, err := commands.NewOrderLine(kernel.NewUUID(), 1)
	require.NoError(t, err)

	_, err = commands.NewCreateOrderCommand(
		kernel.UUID{}, kernel.NewUUID(), []commands.OrderLine{line}, nil, "12 Baker Street", "",
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCreateOrderCommand_InvalidStoreID(t *testing.T) {
	line, err := commands.NewOrderLine(kernel.NewUUID(), 1)
	require.NoError(t, err)

	_, err = commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.UUID{}, []commands.OrderLine{line}, nil, "12 Baker Street", "",
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCreateOrderCommand_InvalidCardID(t *testing.T) {
	line, err := commands.NewOrderLine(kernel.NewUUID(), 1)
	require.NoError(t, err)

	invalidCard := kernel.UUID{}
	_, err = commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), []commands.OrderLine{line}, &invalidCard, "12 Baker Street", "",
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestCreateOrderCommand_Validate_ZeroValue(t *testing.T) {
	cmd := commands.CreateOrderCommand{}
	err := cmd.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
}
