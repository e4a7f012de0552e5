package ports

import "context"

// InlineButton is a button attached to a message; Data is the callback token.
type InlineButton struct {
	Text string
	Data string
}

// InlineKeyboard is a grid of inline buttons, row by row.
type InlineKeyboard [][]InlineButton

// ReplyKeyboard is a grid of menu button labels shown under the input field.
type ReplyKeyboard [][]string

// SendOptions controls the formatting and keyboard of an outgoing message.
// At most one of Inline, Reply and RemoveKeyboard should be set.
type SendOptions struct {
	Markdown       bool
	Inline         InlineKeyboard
	Reply          ReplyKeyboard
	RemoveKeyboard bool
}

// DeliveryFailure is the short reason code of a failed send.
type DeliveryFailure string

const (
	FailureBlocked     DeliveryFailure = "blocked"
	FailureNotFound    DeliveryFailure = "not_found"
	FailureBadRequest  DeliveryFailure = "bad_request"
	FailureRateLimited DeliveryFailure = "rate_limited"
	FailureTimeout     DeliveryFailure = "timeout"
	FailureOther       DeliveryFailure = "other"
)

// Messenger is the outbound transport.
//
// SendMessage failures for a recipient are returned as *errs.DeliveryFailedError
// whose Reason is one of the DeliveryFailure codes.
type Messenger interface {
	SendMessage(ctx context.Context, chatID int64, text string, opts SendOptions) error

	// AnswerCallback acknowledges a button press; text may be empty.
	AnswerCallback(ctx context.Context, callbackID, text string) error

	// EditReplyMarkup replaces the inline keyboard of a sent message.
	EditReplyMarkup(ctx context.Context, chatID int64, messageID int, markup InlineKeyboard) error
}
