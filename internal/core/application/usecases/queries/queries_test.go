package queries_test

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
	"tracker/internal/core/application/usecases/queries"
	"tracker/internal/core/domain/model/address"
	"tracker/internal/core/domain/model/order"
	"tracker/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type QueriesTestSuite struct {
	suite.Suite
	ctx           context.Context
	orders        *orderrepo.Repository
	addresses     *addressrepo.Repository
	subscriptions *subscriptionrepo.Repository
	participants  *participantrepo.Repository
}

func TestQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesTestSuite))
}

func (s *QueriesTestSuite) SetupTest() {
	s.ctx = context.Background()
	store := tabular.NewStore(memory.NewStore())
	s.orders = orderrepo.NewRepository(store)
	s.addresses = addressrepo.NewRepository(store)
	s.subscriptions = subscriptionrepo.NewRepository(store)
	s.participants = participantrepo.NewRepository(store)
}

func (s *QueriesTestSuite) addOrder(id, client string, status order.Status) {
	o, err := order.NewOrder(id, client, order.Korea, status, "хрупкое", time.Now())
	s.Require().NoError(err)
	s.Require().NoError(s.orders.Add(s.ctx, o))
}

func (s *QueriesTestSuite) addAddress(userID int64, username string) {
	a, err := address.NewAddress(userID, username, "Иванов Иван", "87011234567", "Астана", "Кенесары 1", "010000", time.Now())
	s.Require().NoError(err)
	s.Require().NoError(s.addresses.Upsert(s.ctx, a))
}

func (s *QueriesTestSuite) TestGetOrder_ReturnsCardWithParticipants() {
	s.addOrder("KR-555", "@alice_k @bob_bb", "выкуплен")
	_, err := s.participants.Ensure(s.ctx, "KR-555", []string{"alice_k", "bob_bb"})
	s.Require().NoError(err)
	_, _, err = s.participants.TogglePaid(s.ctx, "KR-555", "bob_bb")
	s.Require().NoError(err)
	s.Require().NoError(s.subscriptions.Subscribe(s.ctx, 7, "KR-555"))
	handler := queries.NewGetOrderQueryHandler(s.orders, s.participants, s.subscriptions)

	query, err := queries.NewGetOrderQuery("kr 555", 7)
	s.Require().NoError(err)
	card, err := handler.Handle(s.ctx, query)

	s.Require().NoError(err)
	s.Equal("KR-555", card.ID)
	s.Equal(order.Korea, card.Country)
	s.Equal("KR", card.Source)
	s.Equal(order.Status("выкуплен"), card.Status)
	s.Equal("хрупкое", card.Note)
	s.Equal([]queries.ParticipantView{
		{Username: "alice_k", Paid: false},
		{Username: "bob_bb", Paid: true},
	}, card.Participants)
	s.True(card.Subscribed)

	query, err = queries.NewGetOrderQuery("KR-555", 8)
	s.Require().NoError(err)
	card, err = handler.Handle(s.ctx, query)
	s.Require().NoError(err)
	s.False(card.Subscribed)
}

func (s *QueriesTestSuite) TestGetOrder_MissingOrder() {
	handler := queries.NewGetOrderQueryHandler(s.orders, s.participants, s.subscriptions)
	query, err := queries.NewGetOrderQuery("CN-404", 0)
	s.Require().NoError(err)

	_, err = handler.Handle(s.ctx, query)

	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *QueriesTestSuite) TestGetOrder_RequiresConstructor() {
	handler := queries.NewGetOrderQueryHandler(s.orders, s.participants, s.subscriptions)

	_, err := handler.Handle(s.ctx, queries.GetOrderQuery{})

	s.Require().ErrorIs(err, queries.ErrGetOrderQueryIsNotConstructed)
	_, err = queries.NewGetOrderQuery("   ", 0)
	s.Require().ErrorIs(err, errs.ErrValueIsRequired)
}

func (s *QueriesTestSuite) TestListSubscriptions_JoinsCurrentStatus() {
	s.addOrder("CN-101", "-", "выкуплен")
	s.Require().NoError(s.subscriptions.Subscribe(s.ctx, 7, "CN-101"))
	s.Require().NoError(s.subscriptions.Subscribe(s.ctx, 7, "CN-999"))
	_, err := s.orders.UpdateStatus(s.ctx, "CN-101", "доставлен")
	s.Require().NoError(err)
	handler := queries.NewListSubscriptionsQueryHandler(s.subscriptions, s.orders)

	query, err := queries.NewListSubscriptionsQuery(7)
	s.Require().NoError(err)
	views, err := handler.Handle(s.ctx, query)

	s.Require().NoError(err)
	s.Equal([]queries.SubscriptionView{
		{OrderID: "CN-101", LastSentStatus: "выкуплен", CurrentStatus: "доставлен"},
		{OrderID: "CN-999"},
	}, views)
}

func (s *QueriesTestSuite) TestListSubscriptions_Empty() {
	handler := queries.NewListSubscriptionsQueryHandler(s.subscriptions, s.orders)
	query, err := queries.NewListSubscriptionsQuery(7)
	s.Require().NoError(err)

	views, err := handler.Handle(s.ctx, query)

	s.Require().NoError(err)
	s.NotNil(views)
	s.Empty(views)
}

func (s *QueriesTestSuite) TestGetAddress() {
	s.addAddress(42, "@Alice_K")
	handler := queries.NewGetAddressQueryHandler(s.addresses)

	query, err := queries.NewGetAddressQuery(42)
	s.Require().NoError(err)
	view, err := handler.Handle(s.ctx, query)
	s.Require().NoError(err)
	s.Equal("alice_k", view.Username)
	s.Equal("010000", view.Postcode)

	query, err = queries.NewGetAddressQuery(43)
	s.Require().NoError(err)
	_, err = handler.Handle(s.ctx, query)
	s.Require().ErrorIs(err, errs.ErrObjectNotFound)

	_, err = queries.NewGetAddressQuery(0)
	s.Require().ErrorIs(err, errs.ErrValueIsRequired)
}

func (s *QueriesTestSuite) TestFindAddressesByUsernames_KeepsInputOrder() {
	s.addAddress(1, "alice_k")
	s.addAddress(2, "carol_c")
	handler := queries.NewFindAddressesByUsernamesQueryHandler(s.addresses)

	query, err := queries.NewFindAddressesByUsernamesQuery("@carol_c,\n@ghost_x @ALICE_K")
	s.Require().NoError(err)
	lines, err := handler.Handle(s.ctx, query)

	s.Require().NoError(err)
	s.Require().Len(lines, 3)
	s.Equal("carol_c", lines[0].Username)
	s.Require().NotNil(lines[0].Address)
	s.Equal(int64(2), lines[0].Address.UserID)
	s.Equal("ghost_x", lines[1].Username)
	s.Nil(lines[1].Address)
	s.Equal("alice_k", lines[2].Username)
	s.Require().NotNil(lines[2].Address)
	s.Equal(int64(1), lines[2].Address.UserID)
}

func (s *QueriesTestSuite) TestFindAddressesByUsernames_RequiresMention() {
	_, err := queries.NewFindAddressesByUsernamesQuery("alice_k без собаки")

	s.Require().ErrorIs(err, errs.ErrValueIsRequired)
}
