package commands_test

import (
	"testing"

	"forwarding/internal/core/application/usecases/commands"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/order"
	"forwarding/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dims(t *testing.T, w, h, d, weight string) kernel.Dimensions {
	t.Helper()
	result, err := kernel.NewDimensions(
		decimal.RequireFromString(w),
		decimal.RequireFromString(h),
		decimal.RequireFromString(d),
		decimal.RequireFromString(weight),
	)
	require.NoError(t, err)
	return result
}

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	boxes := []commands.BoxSpec{{ID: kernel.NewUUID(), Dimensions: dims(t, "60", "40", "30", "12")}}

	cmd, err := commands.NewCreateOrderCommand(
		orderID, "M-1024", true, "USD", order.ShippingModeSea, boxes, nil, decimal.NullDecimal{},
	)

	require.NoError(t, err)
	assert.NoError(t, cmd.Validate())
	assert.True(t, cmd.OrderID().IsEqual(orderID))
	assert.Equal(t, "M-1024", cmd.MemberCode())
	assert.Len(t, cmd.Boxes(), 1)
	assert.False(t, cmd.ReferenceAmount().Valid)
}

func TestNewCreateOrderCommand_InvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		orderID   kernel.UUID
		mode      order.ShippingMode
		boxes     []commands.BoxSpec
		reference decimal.NullDecimal
	}{
		{
			name:    "zero order id",
			orderID: kernel.UUID{},
			mode:    order.ShippingModeSea,
		},
		{
			name:    "unknown shipping mode",
			orderID: kernel.NewUUID(),
			mode:    order.ShippingModeUnknown,
		},
		{
			name:    "box without dimensions",
			orderID: kernel.NewUUID(),
			mode:    order.ShippingModeAir,
			boxes:   []commands.BoxSpec{{ID: kernel.NewUUID()}},
		},
		{
			name:      "negative reference amount",
			orderID:   kernel.NewUUID(),
			mode:      order.ShippingModeSea,
			reference: decimal.NewNullDecimal(decimal.NewFromInt(-1)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := commands.NewCreateOrderCommand(tt.orderID, "M-1", true, "USD", tt.mode, tt.boxes, nil, tt.reference)

			require.Error(t, err)
			assert.Error(t, cmd.Validate())
		})
	}
}

func TestNewCreateOrderCommand_NegativeReferenceIsValidationError(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), "M-1", true, "THB", order.ShippingModeSea, nil, nil,
		decimal.NewNullDecimal(decimal.NewFromInt(-5)),
	)

	assert.True(t, errs.IsValidation(err))
}

func TestCreateOrderCommand_ZeroValueIsNotConstructed(t *testing.T) {
	var cmd commands.CreateOrderCommand

	assert.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
