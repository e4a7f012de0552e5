package address_test

import (
	"testing"
	"time"

	"tracker/internal/core/domain/model/address"
	"tracker/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestNormalizePhone(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
		err      error
	}{
		{"plus seven with spaces and dashes", "+7 701 123-45-67", "87011234567", nil},
		{"leading seven", "77011234567", "87011234567", nil},
		{"already normalized", "87011234567", "87011234567", nil},
		{"too short", "8701123", "", errs.ErrValueIsInvalid},
		{"wrong prefix", "97011234567", "", errs.ErrValueIsInvalid},
		{"letters", "8701abc4567", "", errs.ErrValueIsInvalid},
		{"empty", " ", "", errs.ErrValueIsRequired},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := address.NormalizePhone(tc.input)

			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, p)
		})
	}
}

func TestValidatePostcode(t *testing.T) {
	for _, ok := range []string{"01000", "050000", " 123456 "} {
		_, err := address.ValidatePostcode(ok)
		require.NoError(t, err, ok)
	}
	for _, bad := range []string{"1234", "1234567", "12a45"} {
		_, err := address.ValidatePostcode(bad)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid, bad)
	}
}

func TestNewAddress(t *testing.T) {
	t.Run("should normalize username and phone", func(t *testing.T) {
		a, err := address.NewAddress(42, "@Alice_K", "Алиса К", "+7 701 123 45 67", "Астана", "ул. Абая 1", "010000", now)

		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.Equal(t, int64(42), a.UserID())
		assert.Equal(t, "alice_k", a.Username())
		assert.Equal(t, "87011234567", a.Phone())
		assert.Equal(t, "010000", a.Postcode())
		assert.Equal(t, now, a.CreatedAt())
	})

	t.Run("should join validation errors", func(t *testing.T) {
		a, err := address.NewAddress(0, "", "", "1", "", "", "x", now)

		require.Error(t, err)
		assert.Nil(t, a)
		for _, field := range []string{"user_id", "full_name", "phone", "city", "address", "postcode"} {
			assert.Contains(t, err.Error(), field)
		}
	})
}

func TestAddress_ReplaceOf(t *testing.T) {
	old, err := address.RestoreAddress(address.Snapshot{UserID: 42, CreatedAt: now.Add(-24 * time.Hour)})
	require.NoError(t, err)

	fresh, err := address.NewAddress(42, "alice_k", "A", "87011234567", "C", "S", "12345", now)
	require.NoError(t, err)

	fresh.ReplaceOf(old)

	assert.Equal(t, now.Add(-24*time.Hour), fresh.CreatedAt())
	assert.Equal(t, now, fresh.UpdatedAt())
}

func TestRestoreAddress(t *testing.T) {
	_, err := address.RestoreAddress(address.Snapshot{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	a, err := address.RestoreAddress(address.Snapshot{UserID: 7, Username: "@Bob_B", Phone: "garbage"})
	require.NoError(t, err)
	assert.Equal(t, "bob_b", a.Username())
	assert.Equal(t, "garbage", a.Phone())
}
