package commands_test

import (
	"testing"

	"tracker/internal/core/application/usecases/commands"
	"tracker/internal/core/domain/services"
	"tracker/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewUpdateOrderStatusCommand(t *testing.T) {
	cmd, err := commands.NewUpdateOrderStatusCommand("cn101", "ДОСТАВЛЕН")
	require.NoError(t, err)
	assert.Equal(t, "CN-101", cmd.OrderID())
	assert.Equal(t, delivered, cmd.Status())

	_, err = commands.NewUpdateOrderStatusCommand("cn101", "потерян")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = commands.NewUpdateOrderStatusCommand("?", delivered)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestUpdateOrderStatusCommandHandler_Handle(t *testing.T) {
	t.Run("should update and notify subscribers once", func(t *testing.T) {
		f := newFixture(t)
		f.addOrder(t, "CN-101", "x", bought)
		f.subscribe(t, 7, "CN-101")
		f.messenger.On("SendMessage", mock.Anything, int64(7),
			services.StatusNotification("CN-101", delivered), markdown).Return(nil).Once()
		handler := commands.NewUpdateOrderStatusCommandHandler(f.repos.Orders, f.notifyHandler(), nil)
		cmd, err := commands.NewUpdateOrderStatusCommand("cn-101", delivered)
		require.NoError(t, err)

		result, err := handler.Handle(f.ctx, cmd)

		require.NoError(t, err)
		assert.True(t, result.Found)
		assert.Equal(t, 1, result.Notified.Sent())
		assert.Equal(t, delivered, f.lastSent(t, 7, "CN-101"))

		sweep, err := f.sweepHandler(false).Handle(f.ctx, commands.NewSweepStatusChangesCommand())
		require.NoError(t, err)
		assert.Empty(t, sweep.Changes)
		f.messenger.AssertExpectations(t)
	})

	t.Run("should report missing order", func(t *testing.T) {
		f := newFixture(t)
		handler := commands.NewUpdateOrderStatusCommandHandler(f.repos.Orders, f.notifyHandler(), nil)
		cmd, err := commands.NewUpdateOrderStatusCommand("CN-999", delivered)
		require.NoError(t, err)

		result, err := handler.Handle(f.ctx, cmd)

		require.NoError(t, err)
		assert.False(t, result.Found)
	})
}

func TestNotifyOrderSubscribersCommandHandler_Handle(t *testing.T) {
	t.Run("should return not found for missing order", func(t *testing.T) {
		f := newFixture(t)
		cmd, err := commands.NewNotifyOrderSubscribersCommand("CN-999")
		require.NoError(t, err)

		_, err = f.notifyHandler().Handle(f.ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should skip subscribers that already have the status", func(t *testing.T) {
		f := newFixture(t)
		f.addOrder(t, "CN-101", "x", bought)
		f.subscribe(t, 7, "CN-101")
		cmd, err := commands.NewNotifyOrderSubscribersCommand("CN-101")
		require.NoError(t, err)

		report, err := f.notifyHandler().Handle(f.ctx, cmd)

		require.NoError(t, err)
		assert.Zero(t, report.Total())
	})

	t.Run("should require order id", func(t *testing.T) {
		_, err := commands.NewNotifyOrderSubscribersCommand("  ")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
