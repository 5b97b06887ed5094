package payment_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPayment(t *testing.T) *payment.Payment {
	t.Helper()

	amount, err := kernel.NewMoney(55000)
	require.NoError(t, err)

	p, err := payment.NewPayment(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		kernel.NewUUID(), amount, time.Now().UTC())
	require.NoError(t, err)
	return p
}

func TestNewPayment(t *testing.T) {
	t.Run("should create payment in Escrow with an initial history entry", func(t *testing.T) {
		// Given
		id := kernel.NewUUID()
		sellerID := kernel.NewUUID()
		amount, err := kernel.NewMoney(55000)
		require.NoError(t, err)
		createdAt := time.Now().UTC()

		// When
		p, err := payment.NewPayment(id, kernel.NewUUID(), kernel.NewUUID(), sellerID, amount, createdAt)

		// Then
		require.NoError(t, err)
		assert.True(t, p.ID().IsEqual(id))
		assert.True(t, p.SellerID().IsEqual(sellerID))
		assert.Equal(t, payment.Escrow, p.Status())
		assert.Equal(t, int64(55000), p.Amount().Amount())
		assert.Nil(t, p.ReleasedAt())
		assert.Nil(t, p.RefundedAt())
		require.NoError(t, p.Validate())

		history := p.History()
		require.Len(t, history, 1)
		assert.Equal(t, payment.Escrow, history[0].Status)
		assert.Equal(t, payment.ActorSystem, history[0].ActorType)
		assert.Equal(t, createdAt, history[0].At)
	})

	t.Run("should reject invalid amount", func(t *testing.T) {
		_, err := payment.NewPayment(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			kernel.NewUUID(), kernel.Money{}, time.Now().UTC())

		require.Error(t, err)
	})

	t.Run("should reject invalid identifiers", func(t *testing.T) {
		amount, err := kernel.NewMoney(100)
		require.NoError(t, err)

		_, err = payment.NewPayment(kernel.UUID{}, kernel.NewUUID(), kernel.NewUUID(),
			kernel.NewUUID(), amount, time.Now().UTC())

		require.Error(t, err)
	})
}

func TestPayment_Validate(t *testing.T) {
	t.Run("should fail for payment not created via constructor", func(t *testing.T) {
		p := &payment.Payment{}

		err := p.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, payment.ErrPaymentIsNotConstructed)
	})

	t.Run("should fail for nil payment", func(t *testing.T) {
		var p *payment.Payment

		require.Error(t, p.Validate())
	})
}

func TestPayment_Release(t *testing.T) {
	t.Run("should release escrowed payment and record history", func(t *testing.T) {
		p := newTestPayment(t)
		now := time.Now().UTC()

		changed, err := p.Release(payment.ActorSystem, "delivery confirmed", now)

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, payment.Released, p.Status())
		assert.True(t, p.IsReleased())
		require.NotNil(t, p.ReleasedAt())
		assert.Equal(t, now, *p.ReleasedAt())

		history := p.History()
		require.Len(t, history, 2)
		assert.Equal(t, payment.Released, history[1].Status)
		assert.Equal(t, "delivery confirmed", history[1].Note)
	})

	t.Run("should be a no-op on an already released payment", func(t *testing.T) {
		p := newTestPayment(t)
		firstRelease := time.Now().UTC()
		changed, err := p.Release(payment.ActorSystem, "delivery confirmed", firstRelease)
		require.NoError(t, err)
		require.True(t, changed)

		changed, err = p.Release(payment.ActorSystem, "retry", firstRelease.Add(time.Minute))

		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, payment.Released, p.Status())
		require.NotNil(t, p.ReleasedAt())
		assert.Equal(t, firstRelease, *p.ReleasedAt(), "retry must not move the payout timestamp")
		assert.Len(t, p.History(), 2, "retry must not append history")
	})

	t.Run("should refuse release on a refunded payment even by admin", func(t *testing.T) {
		p := newTestPayment(t)
		require.NoError(t, p.Refund(payment.ActorSystem, "suborder cancelled", time.Now().UTC()))

		changed, err := p.Release(payment.ActorAdmin, "forced payout", time.Now().UTC())

		require.Error(t, err)
		assert.False(t, changed)
		assert.ErrorIs(t, err, payment.ErrPaymentAlreadyRefunded)
		assert.Equal(t, payment.Refunded, p.Status())
	})

	t.Run("should reject an unknown actor", func(t *testing.T) {
		p := newTestPayment(t)

		changed, err := p.Release(payment.ActorUnknown, "", time.Now().UTC())

		require.Error(t, err)
		assert.False(t, changed)
		assert.Equal(t, payment.Escrow, p.Status())
	})
}

func TestPayment_Refund(t *testing.T) {
	t.Run("should refund escrowed payment and record history", func(t *testing.T) {
		p := newTestPayment(t)
		now := time.Now().UTC()

		err := p.Refund(payment.ActorSystem, "suborder cancelled", now)

		require.NoError(t, err)
		assert.Equal(t, payment.Refunded, p.Status())
		require.NotNil(t, p.RefundedAt())
		assert.Equal(t, now, *p.RefundedAt())

		history := p.History()
		require.Len(t, history, 2)
		assert.Equal(t, payment.Refunded, history[1].Status)
	})

	t.Run("should claw back a released payment", func(t *testing.T) {
		p := newTestPayment(t)
		_, err := p.Release(payment.ActorSystem, "delivery confirmed", time.Now().UTC())
		require.NoError(t, err)

		err = p.Refund(payment.ActorSystem, "return approved", time.Now().UTC())

		require.NoError(t, err)
		assert.Equal(t, payment.Refunded, p.Status())
		assert.Len(t, p.History(), 3)
	})

	t.Run("should reject double refund", func(t *testing.T) {
		p := newTestPayment(t)
		require.NoError(t, p.Refund(payment.ActorSystem, "suborder cancelled", time.Now().UTC()))

		err := p.Refund(payment.ActorAdmin, "again", time.Now().UTC())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Refunded is not a valid status to refund")
	})
}

func TestRestorePayment(t *testing.T) {
	t.Run("should restore payment with stored state and history", func(t *testing.T) {
		amount, err := kernel.NewMoney(30000)
		require.NoError(t, err)
		releasedAt := time.Now().UTC()
		history := []payment.HistoryEntry{
			{Status: payment.Escrow, ActorType: payment.ActorSystem, At: releasedAt.Add(-time.Hour)},
			{Status: payment.Released, ActorType: payment.ActorAdmin, Note: "forced payout", At: releasedAt},
		}

		p, err := payment.RestorePayment(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			kernel.NewUUID(), amount, payment.Released, &releasedAt, nil,
			releasedAt.Add(-time.Hour), history)

		require.NoError(t, err)
		assert.Equal(t, payment.Released, p.Status())
		assert.True(t, p.IsReleased())
		assert.Len(t, p.History(), 2)
	})

	t.Run("should reject restoring with invalid status", func(t *testing.T) {
		amount, err := kernel.NewMoney(30000)
		require.NoError(t, err)

		_, err = payment.RestorePayment(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			kernel.NewUUID(), amount, payment.Unknown, nil, nil, time.Now().UTC(), nil)

		require.Error(t, err)
	})
}

func TestPayment_History(t *testing.T) {
	t.Run("should return a copy of the history", func(t *testing.T) {
		p := newTestPayment(t)

		history := p.History()
		history[0].Note = "tampered"

		assert.NotEqual(t, "tampered", p.History()[0].Note)
	})
}
