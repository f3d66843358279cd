package order_test

import (
	"testing"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/order"
	"forwarding/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newDimensions(t *testing.T, w, h, d, weight string) kernel.Dimensions {
	t.Helper()
	dims, err := kernel.NewDimensions(dec(w), dec(h), dec(d), dec(weight))
	require.NoError(t, err)
	return dims
}

func newBox(t *testing.T, w, h, d, weight string) *order.Box {
	t.Helper()
	box, err := order.NewBox(kernel.NewUUID(), newDimensions(t, w, h, d, weight))
	require.NoError(t, err)
	return box
}

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "M-1024", true, "usd", order.ShippingModeSea, now)
	require.NoError(t, err)
	return o
}

func assertVolumeIsSum(t *testing.T, o *order.Order) {
	t.Helper()
	sum := decimal.Zero
	for _, b := range o.Boxes() {
		sum = sum.Add(b.VolumeM3())
	}
	assert.True(t, sum.Equal(o.TotalVolume()), "total %s, sum %s", o.TotalVolume(), sum)
}

func TestNewOrder(t *testing.T) {
	t.Run("should create received order", func(t *testing.T) {
		id := kernel.NewUUID()

		o, err := order.NewOrder(id, " M-1 ", false, "krw", order.ShippingModeAir, now)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, "M-1", o.MemberCode())
		assert.Equal(t, "KRW", o.Currency())
		assert.Equal(t, order.Received, o.Status())
		assert.Equal(t, order.ShippingModeAir, o.ShippingMode())
		assert.True(t, o.TotalVolume().IsZero())
		assert.Empty(t, o.Boxes())
		assert.Equal(t, int64(0), o.Version())
		assert.Equal(t, now, o.CreatedAt())
	})

	t.Run("should join all validation errors", func(t *testing.T) {
		o, err := order.NewOrder(kernel.UUID{}, "", true, "dollars", order.ShippingModeUnknown, now)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.True(t, errs.IsValidation(err))
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "currency is invalid")
		assert.Contains(t, err.Error(), "shipping mode is invalid")
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var o *order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
		require.ErrorIs(t, (&order.Order{}).Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_Boxes(t *testing.T) {
	t.Run("twelve standard cartons sum to 0.288", func(t *testing.T) {
		o := newOrder(t)

		for range 12 {
			box := newBox(t, "40", "30", "20", "5")
			require.True(t, dec("0.024").Equal(box.VolumeM3()))
			require.NoError(t, o.AddBox(box, now))
		}

		assert.True(t, dec("0.288").Equal(o.TotalVolume()))
		assert.True(t, dec("60").Equal(o.TotalWeight()))
		assertVolumeIsSum(t, o)
	})

	t.Run("update and remove keep the sum invariant", func(t *testing.T) {
		o := newOrder(t)
		first := newBox(t, "40", "30", "20", "5")
		second := newBox(t, "100", "100", "100", "50")
		require.NoError(t, o.AddBox(first, now))
		require.NoError(t, o.AddBox(second, now))
		assertVolumeIsSum(t, o)

		require.NoError(t, o.UpdateBox(first.ID(), newDimensions(t, "50", "50", "50", "8"), now))
		assert.True(t, dec("1.125").Equal(o.TotalVolume()))
		assertVolumeIsSum(t, o)

		require.NoError(t, o.RemoveBox(second.ID(), now))
		assert.True(t, dec("0.125").Equal(o.TotalVolume()))
		assert.True(t, dec("8").Equal(o.TotalWeight()))
		assertVolumeIsSum(t, o)
	})

	t.Run("unknown box is not found", func(t *testing.T) {
		o := newOrder(t)

		err := o.RemoveBox(kernel.NewUUID(), now)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("duplicate box is rejected", func(t *testing.T) {
		o := newOrder(t)
		box := newBox(t, "10", "10", "10", "1")
		require.NoError(t, o.AddBox(box, now))

		require.ErrorIs(t, o.AddBox(box, now), errs.ErrValueIsInvalid)
		assert.Len(t, o.Boxes(), 1)
	})

	t.Run("boxes are frozen after confirmation", func(t *testing.T) {
		o := newOrder(t)
		box := newBox(t, "10", "10", "10", "1")
		require.NoError(t, o.AddBox(box, now))
		require.NoError(t, o.TransitionTo(order.Confirmed, now))

		err := o.AddBox(newBox(t, "10", "10", "10", "1"), now)

		require.ErrorIs(t, err, errs.ErrBusinessRuleViolation)
		assert.Len(t, o.Boxes(), 1)
		require.ErrorIs(t, o.RemoveBox(box.ID(), now), errs.ErrBusinessRuleViolation)
	})
}

func TestOrder_LineItems(t *testing.T) {
	o := newOrder(t)
	dims := newDimensions(t, "10", "10", "10", "0.2")
	shirt, err := order.NewLineItem(kernel.NewUUID(), "T-shirt", 3, dec("19.995"), "6109.10-00", &dims)
	require.NoError(t, err)
	mug, err := order.NewLineItem(kernel.NewUUID(), "Mug", 2, dec("7.50"), "", nil)
	require.NoError(t, err)

	require.NoError(t, o.AddLineItem(shirt, now))
	require.NoError(t, o.AddLineItem(mug, now))

	assert.True(t, dec("59.99").Equal(shirt.LineTotal()), shirt.LineTotal().String())
	assert.True(t, dec("0.001").Equal(shirt.UnitVolumeM3()))
	assert.True(t, mug.UnitVolumeM3().IsZero())
	assert.Equal(t, "61091000", shirt.HSCode())
	assert.True(t, dec("74.99").Equal(o.TotalAmount()), o.TotalAmount().String())
	assert.Equal(t, []string{"61091000"}, o.HSCodes())

	require.NoError(t, o.RemoveLineItem(mug.ID(), now))
	assert.True(t, dec("59.99").Equal(o.TotalAmount()))
}

func TestOrder_RecordReferenceAmount(t *testing.T) {
	t.Run("rounds and keeps the amount", func(t *testing.T) {
		o := newOrder(t)

		require.NoError(t, o.RecordReferenceAmount(decimal.NewNullDecimal(dec("1499.995"))))

		require.True(t, o.ReferenceAmount().Valid)
		assert.True(t, dec("1500").Equal(o.ReferenceAmount().Decimal))
	})

	t.Run("missing amount leaves the stored one", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.RecordReferenceAmount(decimal.NewNullDecimal(dec("800"))))

		require.NoError(t, o.RecordReferenceAmount(decimal.NullDecimal{}))

		assert.True(t, dec("800").Equal(o.ReferenceAmount().Decimal))
	})

	t.Run("negative amount is rejected", func(t *testing.T) {
		o := newOrder(t)

		err := o.RecordReferenceAmount(decimal.NewNullDecimal(dec("-1")))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.False(t, o.ReferenceAmount().Valid)
	})

	t.Run("line item changes clear the amount", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.RecordReferenceAmount(decimal.NewNullDecimal(dec("800"))))
		mug, err := order.NewLineItem(kernel.NewUUID(), "Mug", 1, dec("7.50"), "", nil)
		require.NoError(t, err)

		require.NoError(t, o.AddLineItem(mug, now))
		assert.False(t, o.ReferenceAmount().Valid)

		require.NoError(t, o.RecordReferenceAmount(decimal.NewNullDecimal(dec("10"))))
		require.NoError(t, o.RemoveLineItem(mug.ID(), now))
		assert.False(t, o.ReferenceAmount().Valid)
	})

	t.Run("box changes keep the amount", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.RecordReferenceAmount(decimal.NewNullDecimal(dec("800"))))

		require.NoError(t, o.AddBox(newBox(t, "40", "30", "20", "1"), now))

		assert.True(t, dec("800").Equal(o.ReferenceAmount().Decimal))
	})
}

func TestNewLineItem_Validation(t *testing.T) {
	_, err := order.NewLineItem(kernel.NewUUID(), " ", 0, dec("-1"), "", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "description")
	assert.Contains(t, err.Error(), "quantity is invalid")
	assert.Contains(t, err.Error(), "unit price is invalid")
}

func TestOrder_TransitionTo(t *testing.T) {
	t.Run("illegal transition leaves order unchanged", func(t *testing.T) {
		o := newOrder(t)

		err := o.TransitionTo(order.Shipping, now.Add(time.Hour))

		require.ErrorIs(t, err, errs.ErrBusinessRuleViolation)
		assert.Equal(t, order.Received, o.Status())
		assert.Equal(t, now, o.UpdatedAt())
	})

	t.Run("cancelled order rejects everything", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.Cancel(now))

		for _, target := range order.AllStatuses() {
			require.ErrorIs(t, o.TransitionTo(target, now), errs.ErrBusinessRuleViolation)
			assert.Equal(t, order.Cancelled, o.Status())
		}
	})

	t.Run("walks the happy path", func(t *testing.T) {
		o := newOrder(t)
		path := []order.Status{
			order.Confirmed, order.Arrived, order.InWarehouse, order.Repacking, order.Shipping,
			order.Delivered, order.Billing, order.PaymentPending, order.PaymentConfirmed, order.Completed,
		}

		for _, next := range path {
			require.NoError(t, o.TransitionTo(next, now))
		}
		assert.Equal(t, order.Completed, o.Status())
	})
}

func TestOrder_ApplyRuleOutcome(t *testing.T) {
	outcome := order.RuleOutcome{
		ForceAir:               true,
		RequiresExtraRecipient: true,
		HasNoMemberCode:        true,
		Delay:                  true,
		Warnings: []order.Warning{
			order.NewMeasuredWarning(order.WarningVolumeExceeded, "volume", dec("30.5"), dec("29")),
			order.NewWarning(order.WarningMemberCodeRequired, "member code"),
		},
	}

	t.Run("applies flags, mode and delay", func(t *testing.T) {
		o := newOrder(t)

		require.NoError(t, o.ApplyRuleOutcome(outcome, now))

		assert.Equal(t, order.ShippingModeAir, o.ShippingMode())
		assert.Equal(t, order.Delayed, o.Status())
		assert.True(t, o.RequiresExtraRecipient())
		assert.True(t, o.HasNoMemberCode())
		assert.False(t, o.HSCodeValidated())
		assert.Len(t, o.Warnings(), 2)
	})

	t.Run("is idempotent", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.ApplyRuleOutcome(outcome, now))
		first := o.Warnings()

		require.NoError(t, o.ApplyRuleOutcome(outcome, now))

		assert.Equal(t, order.Delayed, o.Status())
		assert.Equal(t, first, o.Warnings())
	})

	t.Run("never reverts air", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.ApplyRuleOutcome(outcome, now))

		require.NoError(t, o.ApplyRuleOutcome(order.RuleOutcome{}, now))

		assert.Equal(t, order.ShippingModeAir, o.ShippingMode())
		assert.False(t, o.RequiresExtraRecipient())
		assert.Empty(t, o.Warnings())
	})

	t.Run("delay is ignored outside received and confirmed", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.TransitionTo(order.Confirmed, now))
		require.NoError(t, o.TransitionTo(order.Arrived, now))

		require.NoError(t, o.ApplyRuleOutcome(order.RuleOutcome{Delay: true}, now))

		assert.Equal(t, order.Arrived, o.Status())
	})
}

func TestRestoreOrder(t *testing.T) {
	box := newBox(t, "40", "30", "20", "5")
	id := kernel.NewUUID()

	o, err := order.RestoreOrder(order.Snapshot{
		ID:              id,
		MemberCode:      "M-7",
		Currency:        "THB",
		Status:          order.InWarehouse,
		ShippingMode:    order.ShippingModeAir,
		Boxes:           []*order.Box{box},
		HSCodeValidated: true,
		Warnings:        []order.Warning{order.NewWarning(order.WarningApprovalRequired, "approval")},
		CreatedAt:       now,
		UpdatedAt:       now,
		Version:         4,
	})

	require.NoError(t, err)
	assert.Equal(t, order.InWarehouse, o.Status())
	assert.True(t, dec("0.024").Equal(o.TotalVolume()))
	assert.True(t, o.HSCodeValidated())
	assert.Equal(t, int64(4), o.Version())

	o.SyncVersion(5)
	assert.Equal(t, int64(5), o.Version())

	_, err = order.RestoreOrder(order.Snapshot{ID: id, Currency: "THB", ShippingMode: order.ShippingModeAir})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
