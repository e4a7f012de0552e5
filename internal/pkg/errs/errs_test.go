package errs_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"tracker/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorsMatchTheirSentinel(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"order not found", errs.NewObjectNotFoundError("order_id", "KR-00077"), errs.ErrObjectNotFound},
		{"bad postcode", errs.NewValueIsInvalidError("postcode"), errs.ErrValueIsInvalid},
		{"stale catalog button", errs.NewValueIsOutOfRangeError("status index", 14, 0, 13), errs.ErrValueIsOutOfRange},
		{"empty order id", errs.NewValueIsRequiredError("order_id"), errs.ErrValueIsRequired},
		{"duplicate order", errs.NewDuplicateKeyError("orders", "CN-12345"), errs.ErrDuplicateKey},
		{"sheet unreachable", errs.NewBackendIOError("write", "subscriptions", context.DeadlineExceeded), errs.ErrBackendIO},
		{"chat blocked", errs.NewDeliveryFailedError(42, "blocked", nil), errs.ErrDeliveryFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.err, tt.sentinel)
			require.ErrorIs(t, fmt.Errorf("handle update: %w", tt.err), tt.sentinel)
		})
	}
}

func TestDuplicateKeyError_OrderID(t *testing.T) {
	err := errs.NewDuplicateKeyError("orders", "CN-12345")

	assert.Equal(t, "duplicate key: CN-12345 already exists in orders", err.Error())

	var dup *errs.DuplicateKeyError
	require.ErrorAs(t, fmt.Errorf("add order: %w", err), &dup)
	assert.Equal(t, "orders", dup.Table)
	assert.Equal(t, "CN-12345", dup.Key)
	assert.NotErrorIs(t, err, errs.ErrBackendIO)
}

func TestBackendIOError(t *testing.T) {
	t.Run("keeps the cause reachable", func(t *testing.T) {
		err := errs.NewBackendIOError("read", "orders", context.DeadlineExceeded)

		assert.Equal(t, "backend i/o failure: read orders (cause: context deadline exceeded)", err.Error())
		require.ErrorIs(t, err, context.DeadlineExceeded)
		assert.NotErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("transport call has no table", func(t *testing.T) {
		err := errs.NewBackendIOError("setWebhook", "", errors.New("connection refused"))

		assert.Equal(t, "backend i/o failure: setWebhook (cause: connection refused)", err.Error())
	})
}

func TestDeliveryFailedError_Reasons(t *testing.T) {
	causes := map[string]error{
		"blocked":      errors.New("Forbidden: bot was blocked by the user"),
		"not_found":    errors.New("Bad Request: chat not found"),
		"rate_limited": errors.New("Too Many Requests: retry after 3"),
		"timeout":      context.DeadlineExceeded,
	}

	for reason, cause := range causes {
		t.Run(reason, func(t *testing.T) {
			err := errs.NewDeliveryFailedError(7001, reason, cause)

			var failed *errs.DeliveryFailedError
			require.ErrorAs(t, error(err), &failed)
			assert.Equal(t, reason, failed.Reason)
			assert.Equal(t, int64(7001), failed.Recipient)
			require.ErrorIs(t, err, cause)
			assert.Contains(t, err.Error(), "recipient 7001, reason "+reason)
		})
	}

	t.Run("without cause", func(t *testing.T) {
		err := errs.NewDeliveryFailedError(7001, "other", nil)
		assert.Equal(t, "delivery failed: recipient 7001, reason other", err.Error())
	})
}

func TestWizardInputErrors(t *testing.T) {
	t.Run("phone with cause", func(t *testing.T) {
		err := errs.NewValueIsInvalidErrorWithCause("phone", errors.New("must be 11 digits starting with 8"))
		assert.Equal(t, "value is invalid: phone (cause: must be 11 digits starting with 8)", err.Error())
	})

	t.Run("order id not found in text", func(t *testing.T) {
		err := errs.NewObjectNotFoundErrorWithCause("order_id", "KR-00077", errors.New("sheet is empty"))
		assert.Equal(t,
			"object not found: param is: order_id, ID is: KR-00077 (cause: sheet is empty)",
			err.Error())
	})

	t.Run("status index of a stale button", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeErrorWithCause("status index", 20, 0, 13, errors.New("catalog changed"))
		assert.Equal(t,
			"value is invalid: 20 is status index, min value is 0, max value is 13 (cause: catalog changed)",
			err.Error())
	})
}

func TestUserInputStaysOnOneLine(t *testing.T) {
	multiline := errors.New("Астана\nул. Абая 1")

	for _, err := range []error{
		errs.NewValueIsInvalidErrorWithCause("address", multiline),
		errs.NewDuplicateKeyError("orders", "CN-1\nCN-2"),
		errs.NewDeliveryFailedError(1, "bad_request", multiline),
		errs.NewValueIsOutOfRangeError("status index", "1\n2", 0, 13),
	} {
		assert.False(t, strings.Contains(err.Error(), "\n"), err.Error())
	}
}
