package commands_test

import (
	"testing"

	"tracker/internal/core/application/usecases/commands"
	"tracker/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewMassUpdateStatusCommand(t *testing.T) {
	t.Run("should split on whitespace and separators", func(t *testing.T) {
		cmd, err := commands.NewMassUpdateStatusCommand(delivered, "CN-1001, cn1002;\nKR-077  ")

		require.NoError(t, err)
		assert.Equal(t, []string{"CN-1001", "cn1002", "KR-077"}, cmd.Tokens())
	})

	t.Run("should require ids", func(t *testing.T) {
		_, err := commands.NewMassUpdateStatusCommand(delivered, " ,; ")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should require catalog status", func(t *testing.T) {
		_, err := commands.NewMassUpdateStatusCommand("потерян", "CN-1001")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestMassUpdateStatusCommandHandler_Handle(t *testing.T) {
	t.Run("should update found orders and report the rest", func(t *testing.T) {
		f := newFixture(t)
		f.addOrder(t, "CN-1001", "x", bought)
		f.subscribe(t, 7, "CN-1001")
		f.messenger.On("SendMessage", mock.Anything, int64(7), mock.Anything, markdown).Return(nil).Once()
		handler := commands.NewMassUpdateStatusCommandHandler(f.repos.Orders, f.notifyHandler(), nil)
		cmd, err := commands.NewMassUpdateStatusCommand(delivered, "CN-1001 CN-9999 hello")
		require.NoError(t, err)

		report, err := handler.Handle(f.ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, []commands.MassUpdateLine{
			{Input: "CN-1001", OrderID: "CN-1001", Outcome: commands.OutcomeUpdated},
			{Input: "CN-9999", OrderID: "CN-9999", Outcome: commands.OutcomeNotFound},
			{Input: "hello", Outcome: commands.OutcomeInvalid},
		}, report.Lines)
		assert.Equal(t, 1, report.Count(commands.OutcomeUpdated))

		o, ok, err := f.repos.Orders.Get(f.ctx, "CN-1001")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, delivered, o.Status())
		f.messenger.AssertExpectations(t)
	})
}
