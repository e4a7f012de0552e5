package kernel_test

import (
	"testing"

	"tracker/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
)

func TestExtractOrderID(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{"canonical", "CN-12345", "CN-12345", true},
		{"lower case", "cn-12345", "CN-12345", true},
		{"space separator", "kr 00077", "KR-00077", true},
		{"no separator", "CN12345", "CN-12345", true},
		{"en dash", "CN–12345", "CN-12345", true},
		{"em dash with space", "CN— 12345", "CN-12345", true},
		{"cyrillic prefix", "кр-555", "КР-555", true},
		{"embedded in text", "где мой заказ CN-1001?", "CN-1001", true},
		{"too few digits", "CN-12", "", false},
		{"no letters", "12345", "", false},
		{"empty", "   ", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, ok := kernel.ExtractOrderID(tc.input)

			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, id)
		})
	}
}

func TestExtractOrderID_IsIdempotent(t *testing.T) {
	for _, raw := range []string{"CN-12345", "cn 777", "КР-00001", "a1234"} {
		first, ok := kernel.ExtractOrderID(raw)
		assert.True(t, ok)

		second, ok := kernel.ExtractOrderID(first)
		assert.True(t, ok)
		assert.Equal(t, first, second)
		assert.True(t, kernel.IsCanonicalOrderID(second))
	}
}

func TestNormalizeOrderID(t *testing.T) {
	assert.Equal(t, "CN-12345", kernel.NormalizeOrderID(" cn12345 "))
	assert.Equal(t, "custom", kernel.NormalizeOrderID(" custom "))
}

func TestSameKey(t *testing.T) {
	assert.True(t, kernel.SameKey("CN-12345", "cn-12345"))
	assert.True(t, kernel.SameKey("КР-1", "кр-1"))
	assert.True(t, kernel.SameKey(" Выкуплен ", "выкуплен"))
	assert.False(t, kernel.SameKey("CN-1", "CN-2"))
}
