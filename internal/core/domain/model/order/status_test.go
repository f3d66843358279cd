package order_test

import (
	"fmt"
	"testing"

	"forwarding/internal/core/domain/model/order"
	"forwarding/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "RECEIVED", order.Received.String())
	assert.Equal(t, "IN_WAREHOUSE", order.InWarehouse.String())
	assert.Equal(t, "PAYMENT_CONFIRMED", order.PaymentConfirmed.String())
	assert.Equal(t, "UNKNOWN", order.Status(99).String())
}

func TestParseStatus(t *testing.T) {
	for _, status := range order.AllStatuses() {
		t.Run(status.String(), func(t *testing.T) {
			parsed, err := order.ParseStatus(status.String())

			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		})
	}

	t.Run("should be case insensitive", func(t *testing.T) {
		parsed, err := order.ParseStatus(" payment_pending ")

		require.NoError(t, err)
		assert.Equal(t, order.PaymentPending, parsed)
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		_, err := order.ParseStatus("UNKNOWN")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_Validate(t *testing.T) {
	for _, status := range order.AllStatuses() {
		require.NoError(t, status.Validate(), status.String())
	}

	require.ErrorIs(t, order.Unknown.Validate(), errs.ErrValueIsInvalid)
	require.ErrorIs(t, order.Status(42).Validate(), errs.ErrValueIsInvalid)
}

func TestStatus_IsTerminal(t *testing.T) {
	for _, status := range order.AllStatuses() {
		want := status == order.Completed || status == order.Cancelled
		assert.Equal(t, want, status.IsTerminal(), status.String())
	}
}

func TestStatus_TransitionTo_Edges(t *testing.T) {
	edges := map[order.Status][]order.Status{
		order.Received:         {order.Confirmed, order.Delayed, order.Cancelled},
		order.Confirmed:        {order.Arrived, order.Delayed, order.Cancelled},
		order.Delayed:          {order.Confirmed, order.Cancelled},
		order.Arrived:          {order.InWarehouse, order.Cancelled},
		order.InWarehouse:      {order.Repacking, order.Hold, order.Shipping, order.Cancelled},
		order.Repacking:        {order.Shipping, order.Cancelled},
		order.Hold:             {order.InWarehouse, order.Cancelled},
		order.Shipping:         {order.Delivered, order.Cancelled},
		order.Delivered:        {order.Billing, order.Cancelled},
		order.Billing:          {order.PaymentPending, order.Cancelled},
		order.PaymentPending:   {order.PaymentConfirmed, order.Cancelled},
		order.PaymentConfirmed: {order.Completed, order.Cancelled},
		order.Completed:        {},
		order.Cancelled:        {},
	}

	for _, from := range order.AllStatuses() {
		assert.ElementsMatch(t, edges[from], from.AllowedTransitions(), from.String())

		for _, to := range order.AllStatuses() {
			isEdge := false
			for _, allowed := range edges[from] {
				if allowed == to {
					isEdge = true
				}
			}

			t.Run(fmt.Sprintf("%s to %s", from, to), func(t *testing.T) {
				next, err := from.TransitionTo(to)

				if isEdge {
					require.NoError(t, err)
					assert.Equal(t, to, next)
					return
				}

				require.ErrorIs(t, err, errs.ErrBusinessRuleViolation)
				var violation *errs.BusinessRuleViolationError
				require.ErrorAs(t, err, &violation)
				assert.Equal(t, from.String(), violation.Current)
				assert.Equal(t, to.String(), violation.Attempted)
			})
		}
	}
}

func TestStatus_TransitionTo_InvalidTarget(t *testing.T) {
	_, err := order.Received.TransitionTo(order.Unknown)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_AllowedTransitions_ReturnsCopy(t *testing.T) {
	allowed := order.Received.AllowedTransitions()
	allowed[0] = order.Completed

	assert.False(t, order.Received.CanTransitionTo(order.Completed))
}
