package order_test

import (
	"testing"
	"time"

	"tracker/internal/core/domain/model/order"
	"tracker/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestNewOrder(t *testing.T) {
	t.Run("should create valid order with canonical id", func(t *testing.T) {
		o, err := order.NewOrder("cn 12345", " @alice_k ", "cn", "Выкуплен", "", now)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, "CN-12345", o.ID())
		assert.Equal(t, "@alice_k", o.ClientName())
		assert.Equal(t, order.China, o.Country())
		assert.Equal(t, order.Status("выкуплен"), o.Status())
		assert.Empty(t, o.Note())
		assert.Equal(t, now, o.UpdatedAt())
	})

	t.Run("should fail with unparsable id", func(t *testing.T) {
		o, err := order.NewOrder("hello", "x", order.China, "выкуплен", "", now)

		require.Error(t, err)
		assert.Nil(t, o)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "order_id")
	})

	t.Run("should handle multiple validation errors", func(t *testing.T) {
		o, err := order.NewOrder("", "x", "US", "потерян", "", now)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "order_id")
		assert.Contains(t, err.Error(), "country")
		assert.Contains(t, err.Error(), "status")
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should accept statuses outside the catalog", func(t *testing.T) {
		o, err := order.RestoreOrder(order.Snapshot{ID: "cn-1", Origin: "Китай", Status: "на складе"})

		require.NoError(t, err)
		assert.Equal(t, "cn-1", o.ID())
		assert.Equal(t, order.Status("на складе"), o.Status())
		assert.Equal(t, "Китай", o.Source())
	})

	t.Run("should require id", func(t *testing.T) {
		_, err := order.RestoreOrder(order.Snapshot{ID: "  "})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("snapshot round trip", func(t *testing.T) {
		s := order.Snapshot{ID: "KR-100", ClientName: "Ann", Phone: "8700", Country: order.Korea, Status: "доставлен", Note: "n", UpdatedAt: now}
		o, err := order.RestoreOrder(s)

		require.NoError(t, err)
		assert.Equal(t, s, o.Snapshot())
		assert.Equal(t, "KR", o.Source())
	})
}

func TestOrder_Validate(t *testing.T) {
	var o order.Order
	require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)

	var nilOrder *order.Order
	require.ErrorIs(t, nilOrder.Validate(), order.ErrOrderIsNotConstructed)
}

func TestOrder_SetStatus(t *testing.T) {
	o, err := order.NewOrder("CN-12345", "x", order.China, "выкуплен", "", now)
	require.NoError(t, err)

	later := now.Add(time.Hour)
	o.SetStatus(" любой текст ", later)

	assert.Equal(t, order.Status("любой текст"), o.Status())
	assert.Equal(t, later, o.UpdatedAt())
}

func TestOrder_Mentions(t *testing.T) {
	o, err := order.NewOrder("CN-12345", "@Alice_K и @bob_b", order.China, "выкуплен", "ещё @alice_k, @carol_c", now)
	require.NoError(t, err)

	assert.Equal(t, []string{"Alice_K", "bob_b", "carol_c"}, o.Mentions())
	assert.True(t, o.MentionsUsername("@ALICE_K"))
	assert.True(t, o.MentionsUsername("carol_c"))
	assert.False(t, o.MentionsUsername("dave_d"))
	assert.False(t, o.MentionsUsername(""))
}

func TestOrder_HasID(t *testing.T) {
	o, err := order.RestoreOrder(order.Snapshot{ID: "CN-12345"})
	require.NoError(t, err)

	assert.True(t, o.HasID("cn-12345"))
	assert.False(t, o.HasID("CN-1234"))
}
