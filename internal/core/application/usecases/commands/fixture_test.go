package commands_test

import (
	"context"
	"testing"
	"time"

	"tracker/internal/adapters/out/tabular"
	"tracker/internal/adapters/out/tabular/addressrepo"
	"tracker/internal/adapters/out/tabular/memory"
	"tracker/internal/adapters/out/tabular/orderrepo"
	"tracker/internal/adapters/out/tabular/participantrepo"
	"tracker/internal/adapters/out/tabular/subscriptionrepo"
	"tracker/internal/core/application/usecases/commands"
	"tracker/internal/core/domain/model/address"
	"tracker/internal/core/domain/model/order"
	"tracker/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMessenger struct{ mock.Mock }

func (m *MockMessenger) SendMessage(ctx context.Context, chatID int64, text string, opts ports.SendOptions) error {
	args := m.Called(ctx, chatID, text, opts)
	return args.Error(0)
}

func (m *MockMessenger) AnswerCallback(ctx context.Context, callbackID, text string) error {
	args := m.Called(ctx, callbackID, text)
	return args.Error(0)
}

func (m *MockMessenger) EditReplyMarkup(ctx context.Context, chatID int64, messageID int, markup ports.InlineKeyboard) error {
	args := m.Called(ctx, chatID, messageID, markup)
	return args.Error(0)
}

type MockMetrics struct{ mock.Mock }

func (m *MockMetrics) SweepCompleted(d time.Duration, changes int, err error) {
	m.Called(d, changes, err)
}

func (m *MockMetrics) DeliveryRecorded(kind string, failure ports.DeliveryFailure) {
	m.Called(kind, failure)
}

// fixture wires the table repositories over an in-memory backend.
type fixture struct {
	ctx       context.Context
	backend   *memory.Store
	repos     commands.Repositories
	messenger *MockMessenger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	backend := memory.NewStore()
	store := tabular.NewStore(backend)
	return &fixture{
		ctx:     t.Context(),
		backend: backend,
		repos: commands.Repositories{
			Orders:        orderrepo.NewRepository(store),
			Addresses:     addressrepo.NewRepository(store),
			Subscriptions: subscriptionrepo.NewRepository(store),
			Participants:  participantrepo.NewRepository(store),
		},
		messenger: new(MockMessenger),
	}
}

func (f *fixture) addOrder(t *testing.T, id, client string, status order.Status) {
	t.Helper()
	o, err := order.NewOrder(id, client, order.China, status, "", time.Now())
	require.NoError(t, err)
	require.NoError(t, f.repos.Orders.Add(f.ctx, o))
}

func (f *fixture) addAddress(t *testing.T, userID int64, username string) {
	t.Helper()
	a, err := address.NewAddress(userID, username, "Full Name", "87011234567", "Астана", "Street 1", "010000", time.Now())
	require.NoError(t, err)
	require.NoError(t, f.repos.Addresses.Upsert(f.ctx, a))
}

func (f *fixture) subscribe(t *testing.T, userID int64, orderID string) {
	t.Helper()
	require.NoError(t, f.repos.Subscriptions.Subscribe(f.ctx, userID, orderID))
}

func (f *fixture) lastSent(t *testing.T, userID int64, orderID string) order.Status {
	t.Helper()
	subs, err := f.repos.Subscriptions.ListByUser(f.ctx, userID)
	require.NoError(t, err)
	for _, s := range subs {
		if s.ForOrder(orderID) {
			return s.LastSentStatus()
		}
	}
	t.Fatalf("user %d is not subscribed to %s", userID, orderID)
	return ""
}

func (f *fixture) notifyHandler() commands.NotifyOrderSubscribersCommandHandler {
	return commands.NewNotifyOrderSubscribersCommandHandler(f.repos.Orders, f.repos.Subscriptions, f.messenger, nil, nil)
}

var markdown = ports.SendOptions{Markdown: true}
