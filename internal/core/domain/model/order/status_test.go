package order_test

import (
	"testing"

	"tracker/internal/core/domain/model/order"
	"tracker/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected order.Status
		err      error
	}{
		{"exact", "выкуплен", "выкуплен", nil},
		{"upper case", "ДОСТАВЛЕН", "доставлен", nil},
		{"mixed case with parentheses", "Приехал На Адрес (китай)", "приехал на адрес (Китай)", nil},
		{"surrounding spaces", "  получен ", "получен", nil},
		{"unknown", "потерян", "", errs.ErrValueIsInvalid},
		{"empty", "", "", errs.ErrValueIsRequired},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := order.ParseStatus(tc.input)

			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, s)
		})
	}
}

func TestStatuses(t *testing.T) {
	statuses := order.Statuses()

	require.Len(t, statuses, 14)
	assert.Equal(t, order.Status("выкуплен"), statuses[0])
	assert.Equal(t, order.Unpaid, statuses[13])

	statuses[0] = "changed"
	assert.Equal(t, order.Status("выкуплен"), order.Statuses()[0])
}

func TestStatusAt(t *testing.T) {
	s, err := order.StatusAt(11)
	require.NoError(t, err)
	assert.Equal(t, order.Status("доставлен"), s)

	_, err = order.StatusAt(14)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = order.StatusAt(-1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestStatus_IsValid(t *testing.T) {
	assert.True(t, order.Status("Доставка не оплачена").IsValid())
	assert.False(t, order.Status("").IsValid())
	assert.True(t, order.Status("").IsEmpty())
}

func TestParseCountry(t *testing.T) {
	c, err := order.ParseCountry(" kr ")
	require.NoError(t, err)
	assert.Equal(t, order.Korea, c)

	_, err = order.ParseCountry("US")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
