package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpadapter "tracker/internal/adapters/in/http"
	"tracker/internal/core/application/conversation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockEventRouter struct {
	mock.Mock
}

func (m *MockEventRouter) HandleText(ctx context.Context, ev conversation.TextEvent) error {
	return m.Called(ctx, ev).Error(0)
}

func (m *MockEventRouter) HandleButton(ctx context.Context, ev conversation.ButtonEvent) error {
	return m.Called(ctx, ev).Error(0)
}

func post(s http.Handler, body, secret string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/telegram", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set(httpadapter.SecretHeader, secret)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

const textUpdate = `{
	"update_id": 1,
	"message": {
		"message_id": 10,
		"from": {"id": 42, "is_bot": false, "first_name": "Alice", "username": "alice_k"},
		"chat": {"id": 42, "type": "private"},
		"text": "CN-12345"
	}
}`

const callbackUpdate = `{
	"update_id": 2,
	"callback_query": {
		"id": "cb-1",
		"from": {"id": 42, "is_bot": false, "first_name": "Alice", "username": "alice_k"},
		"message": {"message_id": 77, "chat": {"id": -100, "type": "group"}},
		"data": "sub:CN-12345"
	}
}`

func TestWebhook_Message(t *testing.T) {
	router := new(MockEventRouter)
	router.On("HandleText", mock.Anything, conversation.TextEvent{
		ChatID: 42, SenderID: 42, Username: "alice_k", FirstName: "Alice", Text: "CN-12345",
	}).Return(nil).Once()
	s := httpadapter.NewServer(router, "", nil, nil)

	rec := post(s, textUpdate, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	router.AssertExpectations(t)
}

func TestWebhook_CallbackQuery(t *testing.T) {
	router := new(MockEventRouter)
	router.On("HandleButton", mock.Anything, conversation.ButtonEvent{
		ChatID: -100, SenderID: 42, Username: "alice_k", CallbackID: "cb-1", MessageID: 77, Token: "sub:CN-12345",
	}).Return(nil).Once()
	s := httpadapter.NewServer(router, "", nil, nil)

	rec := post(s, callbackUpdate, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	router.AssertExpectations(t)
}

func TestWebhook_RoutingErrorIsAcknowledged(t *testing.T) {
	router := new(MockEventRouter)
	router.On("HandleText", mock.Anything, mock.Anything).Return(errors.New("send failed")).Once()
	s := httpadapter.NewServer(router, "", nil, nil)

	rec := post(s, textUpdate, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	router.AssertExpectations(t)
}

func TestWebhook_Secret(t *testing.T) {
	router := new(MockEventRouter)
	router.On("HandleText", mock.Anything, mock.Anything).Return(nil).Once()
	s := httpadapter.NewServer(router, "s3cret", nil, nil)

	assert.Equal(t, http.StatusUnauthorized, post(s, textUpdate, "").Code)
	assert.Equal(t, http.StatusUnauthorized, post(s, textUpdate, "wrong").Code)
	assert.Equal(t, http.StatusOK, post(s, textUpdate, "s3cret").Code)
	router.AssertExpectations(t)
}

func TestWebhook_IgnoredUpdates(t *testing.T) {
	router := new(MockEventRouter)
	s := httpadapter.NewServer(router, "", nil, nil)

	testCases := []struct {
		name string
		body string
	}{
		{name: "edited message", body: `{"update_id": 3, "edited_message": {"message_id": 1}}`},
		{name: "sticker", body: `{"update_id": 4, "message": {"message_id": 1, "from": {"id": 1}, "chat": {"id": 1}}}`},
		{name: "bot author", body: `{"update_id": 5, "message": {"message_id": 1, "from": {"id": 1, "is_bot": true}, "chat": {"id": 1}, "text": "hi"}}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, http.StatusOK, post(s, tc.body, "").Code)
		})
	}
	router.AssertNotCalled(t, "HandleText", mock.Anything, mock.Anything)
	router.AssertNotCalled(t, "HandleButton", mock.Anything, mock.Anything)
}

func TestWebhook_BadPayload(t *testing.T) {
	s := httpadapter.NewServer(new(MockEventRouter), "", nil, nil)

	assert.Equal(t, http.StatusBadRequest, post(s, "{not json", "").Code)
}

func TestHealthAndMetrics(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("tracker_sweeps_total 1\n"))
	})
	s := httpadapter.NewServer(new(MockEventRouter), "", metrics, nil)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tracker_sweeps_total 1")
}

func TestButtonEventOf_WithoutMessage(t *testing.T) {
	body := `{"update_id": 6, "callback_query": {"id": "cb-2", "from": {"id": 9}, "data": "addr:add"}}`
	router := new(MockEventRouter)
	router.On("HandleButton", mock.Anything, conversation.ButtonEvent{
		ChatID: 9, SenderID: 9, CallbackID: "cb-2", Token: "addr:add",
	}).Return(nil).Once()

	assert.Equal(t, http.StatusOK, post(httpadapter.NewServer(router, "", nil, nil), body, "").Code)
	router.AssertExpectations(t)
}
