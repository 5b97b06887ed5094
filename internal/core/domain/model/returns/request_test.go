package returns_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/returns"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, amount int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(amount)
	require.NoError(t, err)
	return m
}

func makeClaimItems(t *testing.T, sellerID kernel.UUID) []order.LineItem {
	t.Helper()
	item, err := order.NewLineItem("sku-2001", sellerID, 1, mustMoney(t, 30000))
	require.NoError(t, err)
	return []order.LineItem{item}
}

func newTestRequest(t *testing.T) *returns.Request {
	t.Helper()

	sellerID := kernel.NewUUID()
	r, err := returns.NewRequest(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), sellerID,
		"damaged", "screen cracked on arrival", []string{"img/evidence-1.jpg"},
		makeClaimItems(t, sellerID), mustMoney(t, 30000), time.Now().UTC())
	require.NoError(t, err)
	return r
}

func TestNewRequest(t *testing.T) {
	t.Run("should create request in Pending with an initial history entry", func(t *testing.T) {
		// Given
		sellerID := kernel.NewUUID()
		customerID := kernel.NewUUID()
		requestedAt := time.Now().UTC()

		// When
		r, err := returns.NewRequest(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), customerID, sellerID,
			"damaged", "screen cracked on arrival", []string{"img/evidence-1.jpg"},
			makeClaimItems(t, sellerID), mustMoney(t, 30000), requestedAt)

		// Then
		require.NoError(t, err)
		assert.Equal(t, returns.Pending, r.Status())
		assert.True(t, r.CustomerID().IsEqual(customerID))
		assert.Equal(t, "damaged", r.Reason())
		assert.Equal(t, "screen cracked on arrival", r.Description())
		assert.Equal(t, []string{"img/evidence-1.jpg"}, r.Evidence())
		assert.Equal(t, int64(30000), r.RefundAmount().Amount())
		assert.Equal(t, requestedAt, r.RequestedAt())
		assert.Nil(t, r.ResolvedAt())
		require.NoError(t, r.Validate())

		history := r.History()
		require.Len(t, history, 1)
		assert.Equal(t, returns.Pending, history[0].Status)
		assert.Equal(t, returns.ActorCustomer, history[0].ActorType)
		assert.Equal(t, "damaged", history[0].Note)
	})

	t.Run("should reject request without reason", func(t *testing.T) {
		sellerID := kernel.NewUUID()

		_, err := returns.NewRequest(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), sellerID,
			"", "", nil, makeClaimItems(t, sellerID), mustMoney(t, 30000), time.Now().UTC())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "reason")
	})

	t.Run("should reject request without items", func(t *testing.T) {
		_, err := returns.NewRequest(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"damaged", "", nil, nil, mustMoney(t, 30000), time.Now().UTC())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "items")
	})

	t.Run("should reject zero refund amount", func(t *testing.T) {
		sellerID := kernel.NewUUID()

		_, err := returns.NewRequest(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), sellerID,
			"damaged", "", nil, makeClaimItems(t, sellerID), kernel.Zero(), time.Now().UTC())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "refundAmount")
	})
}

func TestRequest_Validate(t *testing.T) {
	t.Run("should fail for request not created via constructor", func(t *testing.T) {
		r := &returns.Request{}

		err := r.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, returns.ErrRequestIsNotConstructed)
	})

	t.Run("should fail for nil request", func(t *testing.T) {
		var r *returns.Request

		require.Error(t, r.Validate())
	})
}

func TestRequest_Approve(t *testing.T) {
	t.Run("should approve pending claim and stamp resolution time", func(t *testing.T) {
		r := newTestRequest(t)
		now := time.Now().UTC()

		err := r.Approve(returns.ActorSeller, "claim verified", now)

		require.NoError(t, err)
		assert.Equal(t, returns.Approved, r.Status())
		require.NotNil(t, r.ResolvedAt())
		assert.Equal(t, now, *r.ResolvedAt())

		history := r.History()
		require.Len(t, history, 2)
		assert.Equal(t, returns.Approved, history[1].Status)
		assert.Equal(t, returns.ActorSeller, history[1].ActorType)
		assert.Equal(t, "claim verified", history[1].Note)
	})

	t.Run("should reject double approval", func(t *testing.T) {
		r := newTestRequest(t)
		require.NoError(t, r.Approve(returns.ActorSeller, "", time.Now().UTC()))

		err := r.Approve(returns.ActorAdmin, "", time.Now().UTC())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Approved is not a valid status to approve")
	})

	t.Run("should reject an unknown actor", func(t *testing.T) {
		r := newTestRequest(t)

		err := r.Approve(returns.ActorUnknown, "", time.Now().UTC())

		require.Error(t, err)
		assert.Equal(t, returns.Pending, r.Status())
	})
}

func TestRequest_Reject(t *testing.T) {
	t.Run("should reject pending claim and stamp resolution time", func(t *testing.T) {
		r := newTestRequest(t)
		now := time.Now().UTC()

		err := r.Reject(returns.ActorAdmin, "no evidence of damage", now)

		require.NoError(t, err)
		assert.Equal(t, returns.Rejected, r.Status())
		require.NotNil(t, r.ResolvedAt())
		assert.Len(t, r.History(), 2)
	})

	t.Run("should refuse rejection after approval", func(t *testing.T) {
		r := newTestRequest(t)
		require.NoError(t, r.Approve(returns.ActorSeller, "", time.Now().UTC()))

		err := r.Reject(returns.ActorSeller, "", time.Now().UTC())

		require.Error(t, err)
	})
}

func TestRequest_ProcessingAndCompletion(t *testing.T) {
	t.Run("should walk an approved claim through processing to completion", func(t *testing.T) {
		r := newTestRequest(t)
		now := time.Now().UTC()
		require.NoError(t, r.Approve(returns.ActorSeller, "claim verified", now))

		err := r.StartProcessing(returns.ActorSeller, "return label issued", now.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, returns.Processing, r.Status())

		err = r.Complete(returns.ActorSeller, "goods received", now.Add(48*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, returns.Completed, r.Status())
		assert.Len(t, r.History(), 4)
	})

	t.Run("should not move resolution time on completion", func(t *testing.T) {
		r := newTestRequest(t)
		decidedAt := time.Now().UTC()
		require.NoError(t, r.Approve(returns.ActorSeller, "", decidedAt))

		require.NoError(t, r.Complete(returns.ActorSeller, "", decidedAt.Add(72*time.Hour)))

		require.NotNil(t, r.ResolvedAt())
		assert.Equal(t, decidedAt, *r.ResolvedAt())
	})

	t.Run("should refuse processing of an undecided claim", func(t *testing.T) {
		r := newTestRequest(t)

		err := r.StartProcessing(returns.ActorSeller, "", time.Now().UTC())

		require.Error(t, err)
	})
}

func TestRestoreRequest(t *testing.T) {
	t.Run("should restore request with stored state and history", func(t *testing.T) {
		sellerID := kernel.NewUUID()
		requestedAt := time.Now().UTC().Add(-48 * time.Hour)
		resolvedAt := time.Now().UTC()
		history := []returns.HistoryEntry{
			{Status: returns.Pending, ActorType: returns.ActorCustomer, At: requestedAt},
			{Status: returns.Approved, ActorType: returns.ActorSeller, At: resolvedAt},
		}

		r, err := returns.RestoreRequest(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), sellerID,
			returns.Approved, "damaged", "", nil, makeClaimItems(t, sellerID),
			mustMoney(t, 30000), requestedAt, &resolvedAt, history)

		require.NoError(t, err)
		assert.Equal(t, returns.Approved, r.Status())
		assert.Len(t, r.History(), 2)
		require.NotNil(t, r.ResolvedAt())
	})

	t.Run("should reject restoring with invalid status", func(t *testing.T) {
		sellerID := kernel.NewUUID()

		_, err := returns.RestoreRequest(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), sellerID,
			returns.Unknown, "damaged", "", nil, makeClaimItems(t, sellerID),
			mustMoney(t, 30000), time.Now().UTC(), nil, nil)

		require.Error(t, err)
	})
}
