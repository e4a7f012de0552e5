// Package telegram is the Bot API transport: outgoing messages, callback
// acknowledgements and the webhook update payload.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"tracker/internal/core/ports"
	"tracker/internal/pkg/errs"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	DefaultAPIURL  = "https://api.telegram.org"
	defaultTimeout = 10 * time.Second
)

// apiResponse is the envelope of every Bot API reply.
type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
	Parameters  *struct {
		RetryAfter int `json:"retry_after,omitempty"`
	} `json:"parameters,omitempty"`
}

// apiError is a Bot API call that came back with ok=false or a transport failure.
type apiError struct {
	Method      string
	StatusCode  int
	Description string
	RetryAfter  int
	Cause       error
}

func (e *apiError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("telegram %s: %v", e.Method, e.Cause)
	}
	return fmt.Sprintf("telegram %s: %d %s", e.Method, e.StatusCode, e.Description)
}

func (e *apiError) Unwrap() error {
	return e.Cause
}

// Client implements ports.Messenger over the Bot HTTP API.
type Client struct {
	http   *resty.Client
	token  string
	logger *zap.Logger
}

// NewClient creates a client for the bot with token. An empty apiURL uses
// the public Bot API endpoint.
func NewClient(apiURL, token string, timeout time.Duration, logger *zap.Logger) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(apiURL, "/")).
			SetTimeout(timeout).
			SetHeader("Content-Type", "application/json"),
		token:  token,
		logger: logger.With(zap.String("component", "telegram")),
	}
}

type sendMessageRequest struct {
	ChatID      int64  `json:"chat_id"`
	Text        string `json:"text"`
	ParseMode   string `json:"parse_mode,omitempty"`
	ReplyMarkup any    `json:"reply_markup,omitempty"`
}

// SendMessage sends text to chatID. Failures are *errs.DeliveryFailedError.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, opts ports.SendOptions) error {
	req := sendMessageRequest{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: replyMarkup(opts),
	}
	if opts.Markdown {
		req.ParseMode = "Markdown"
	}

	if err := c.call(ctx, "sendMessage", req); err != nil {
		reason := Classify(err)
		c.logger.Debug("send failed",
			zap.Int64("chat_id", chatID),
			zap.String("reason", string(reason)),
			zap.Error(err))
		return errs.NewDeliveryFailedError(chatID, string(reason), err)
	}
	return nil
}

type answerCallbackRequest struct {
	CallbackQueryID string `json:"callback_query_id"`
	Text            string `json:"text,omitempty"`
}

func (c *Client) AnswerCallback(ctx context.Context, callbackID, text string) error {
	if callbackID == "" {
		return nil
	}
	return c.call(ctx, "answerCallbackQuery", answerCallbackRequest{CallbackQueryID: callbackID, Text: text})
}

type editMarkupRequest struct {
	ChatID      int64          `json:"chat_id"`
	MessageID   int            `json:"message_id"`
	ReplyMarkup inlineKeyboard `json:"reply_markup"`
}

// EditReplyMarkup replaces the inline keyboard of a message. An unchanged
// keyboard is not an error.
func (c *Client) EditReplyMarkup(ctx context.Context, chatID int64, messageID int, markup ports.InlineKeyboard) error {
	err := c.call(ctx, "editMessageReplyMarkup", editMarkupRequest{
		ChatID:      chatID,
		MessageID:   messageID,
		ReplyMarkup: toInlineKeyboard(markup),
	})

	var apiErr *apiError
	if errors.As(err, &apiErr) && strings.Contains(apiErr.Description, "message is not modified") {
		return nil
	}
	return err
}

type setWebhookRequest struct {
	URL            string   `json:"url"`
	SecretToken    string   `json:"secret_token,omitempty"`
	AllowedUpdates []string `json:"allowed_updates"`
}

// SetWebhook points the bot at url; secret is echoed back by Telegram in
// the X-Telegram-Bot-Api-Secret-Token header.
func (c *Client) SetWebhook(ctx context.Context, url, secret string) error {
	return c.call(ctx, "setWebhook", setWebhookRequest{
		URL:            url,
		SecretToken:    secret,
		AllowedUpdates: []string{"message", "callback_query"},
	})
}

func (c *Client) call(ctx context.Context, method string, body any) error {
	var out apiResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		SetError(&out).
		Post("/bot" + c.token + "/" + method)
	if err != nil {
		return &apiError{Method: method, Cause: err}
	}

	if resp.IsError() || !out.OK {
		apiErr := &apiError{
			Method:      method,
			StatusCode:  resp.StatusCode(),
			Description: out.Description,
		}
		if out.ErrorCode != 0 {
			apiErr.StatusCode = out.ErrorCode
		}
		if out.Parameters != nil {
			apiErr.RetryAfter = out.Parameters.RetryAfter
		}
		return apiErr
	}
	return nil
}

// Classify maps a failed Bot API call to a delivery failure code.
func Classify(err error) ports.DeliveryFailure {
	if err == nil {
		return ""
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return ports.FailureTimeout
	}

	var apiErr *apiError
	if !errors.As(err, &apiErr) || apiErr.Cause != nil {
		return ports.FailureOther
	}

	desc := strings.ToLower(apiErr.Description)
	switch {
	case apiErr.StatusCode == http.StatusForbidden:
		return ports.FailureBlocked
	case strings.Contains(desc, "chat not found"), strings.Contains(desc, "user not found"):
		return ports.FailureNotFound
	case apiErr.StatusCode == http.StatusTooManyRequests:
		return ports.FailureRateLimited
	case apiErr.StatusCode == http.StatusBadRequest:
		return ports.FailureBadRequest
	default:
		return ports.FailureOther
	}
}
