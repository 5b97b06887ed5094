package services_test

import (
	"fmt"
	"testing"

	"marketplace/internal/core/domain/model/suborder"
	"marketplace/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func TestStatusNormalizer_Normalize(t *testing.T) {
	normalizer := services.NewStatusNormalizer()

	t.Run("should map known carrier statuses to canonical statuses", func(t *testing.T) {
		testCases := []struct {
			rawStatus string
			expected  suborder.Status
		}{
			{"ready_to_ship", suborder.ReadyForPickup},
			{"pickup_scheduled", suborder.ReadyForPickup},
			{"picked_up", suborder.Shipped},
			{"shipped", suborder.Shipped},
			{"in_transit", suborder.Shipped},
			{"out_for_delivery", suborder.Shipped},
			{"delivered", suborder.Delivered},
		}

		for _, tc := range testCases {
			t.Run(fmt.Sprintf("should map %s to %s", tc.rawStatus, tc.expected.String()), func(t *testing.T) {
				signal := normalizer.Normalize(tc.rawStatus, "")

				assert.True(t, signal.Recognized)
				assert.Equal(t, tc.expected, signal.Target)
				assert.Empty(t, signal.NDRReason)
			})
		}
	})

	t.Run("should be case and whitespace insensitive", func(t *testing.T) {
		for _, raw := range []string{"Delivered", "DELIVERED", "  delivered  ", "In_Transit"} {
			signal := normalizer.Normalize(raw, "")

			assert.True(t, signal.Recognized, "raw status %q should be recognized", raw)
		}
	})

	t.Run("should report unrecognized statuses without a target", func(t *testing.T) {
		for _, raw := range []string{"", "unknown_future_status", "rto_initiated", "lost"} {
			signal := normalizer.Normalize(raw, "")

			assert.False(t, signal.Recognized, "raw status %q should not be recognized", raw)
			assert.Equal(t, suborder.Unknown, signal.Target)
		}
	})

	t.Run("should canonicalize known NDR labels", func(t *testing.T) {
		testCases := []struct {
			rawNDR   string
			expected string
		}{
			{"customer_unavailable", "customer unavailable"},
			{"address_not_found", "address not found"},
			{"refused_by_customer", "refused by customer"},
			{"attempt_failed", "delivery attempt failed"},
		}

		for _, tc := range testCases {
			signal := normalizer.Normalize("out_for_delivery", tc.rawNDR)

			assert.Equal(t, tc.expected, signal.NDRReason)
		}
	})

	t.Run("should pass unknown NDR labels through lower-cased", func(t *testing.T) {
		signal := normalizer.Normalize("out_for_delivery", "Dog_Ate_Parcel")

		assert.Equal(t, "dog_ate_parcel", signal.NDRReason)
	})

	t.Run("should keep NDR reason even when primary status is unrecognized", func(t *testing.T) {
		signal := normalizer.Normalize("weird_carrier_code", "attempt_failed")

		assert.False(t, signal.Recognized)
		assert.Equal(t, "delivery attempt failed", signal.NDRReason)
	})

	t.Run("should leave NDR empty when the carrier reported none", func(t *testing.T) {
		signal := normalizer.Normalize("delivered", "")

		assert.Empty(t, signal.NDRReason)
	})
}
