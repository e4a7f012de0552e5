package subscription_test

import (
	"testing"
	"time"

	"tracker/internal/core/domain/model/order"
	"tracker/internal/core/domain/model/subscription"
	"tracker/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestNewSubscription(t *testing.T) {
	t.Run("should record current status as sent", func(t *testing.T) {
		s, err := subscription.NewSubscription(42, " CN-12345 ", "выкуплен", now)

		require.NoError(t, err)
		require.NoError(t, s.Validate())
		assert.Equal(t, "CN-12345", s.OrderID())
		assert.Equal(t, order.Status("выкуплен"), s.LastSentStatus())
		assert.False(t, s.ShouldNotify("выкуплен"))
	})

	t.Run("should require keys", func(t *testing.T) {
		_, err := subscription.NewSubscription(0, "", "", now)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "user_id")
		assert.Contains(t, err.Error(), "order_id")
	})
}

func TestSubscription_ShouldNotify(t *testing.T) {
	s, err := subscription.NewSubscription(42, "CN-12345", "выкуплен", now)
	require.NoError(t, err)

	assert.True(t, s.ShouldNotify("едет на адрес"))
	assert.True(t, s.ShouldNotify("Выкуплен"), "comparison is case-sensitive")
	assert.False(t, s.ShouldNotify(""))

	s.MarkSent("едет на адрес", now.Add(time.Minute))

	assert.False(t, s.ShouldNotify("едет на адрес"))
	assert.Equal(t, now.Add(time.Minute), s.UpdatedAt())
	assert.Equal(t, now, s.CreatedAt())
}

func TestSubscription_Matches(t *testing.T) {
	s, err := subscription.NewSubscription(42, "CN-12345", "", now)
	require.NoError(t, err)

	assert.True(t, s.Matches(42, "cn-12345"))
	assert.False(t, s.Matches(43, "CN-12345"))
	assert.True(t, s.ForOrder("cn-12345"))
}

func TestRestoreSubscription(t *testing.T) {
	snap := subscription.Snapshot{UserID: 1, OrderID: "KR-001", LastSentStatus: "получен", CreatedAt: now, UpdatedAt: now.Add(time.Hour)}

	s, err := subscription.RestoreSubscription(snap)

	require.NoError(t, err)
	assert.Equal(t, snap, s.Snapshot())
}
